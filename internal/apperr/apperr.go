// Package apperr defines the application error taxonomy and the mapping
// from store-driver errors onto it. Handlers attach these to the gin
// context; the error middleware renders them as the JSON envelope.
package apperr

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-sql-driver/mysql"
)

// Machine-readable error codes carried in the response envelope.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeInvalidReference = "INVALID_REFERENCE"
	CodeDuplicateEntry   = "DUPLICATE_ENTRY"
	CodeInternal         = "INTERNAL_ERROR"
)

// MySQL server error numbers we classify on. Matching on the number
// keeps the classification stable across driver message changes.
const (
	mysqlErrDuplicateEntry  = 1062 // ER_DUP_ENTRY
	mysqlErrRowIsReferenced = 1451 // ER_ROW_IS_REFERENCED_2
	mysqlErrNoReferencedRow = 1452 // ER_NO_REFERENCED_ROW_2
)

// Error is an application-level error with an explicit HTTP status, a
// machine-readable code and a human message safe to show to clients.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// New builds an Error with an explicit status and code.
func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// NotFound is the standard 404 for a missing entity.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, CodeNotFound, message)
}

// BadRequest is the standard 400 for invalid input.
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, CodeInvalidInput, message)
}

// InvalidReference is the 400 raised when an id points at a row that
// does not exist, or a delete would orphan dependents.
func InvalidReference(message string) *Error {
	return New(http.StatusBadRequest, CodeInvalidReference, message)
}

// Duplicate is the 409 raised on uniqueness violations.
func Duplicate(message string) *Error {
	return New(http.StatusConflict, CodeDuplicateEntry, message)
}

// Classify maps an arbitrary error onto the taxonomy. Already-typed
// *Error values pass through. Driver errors are switched on the MySQL
// error number, never on message text. Anything unrecognized becomes a
// 500 INTERNAL_ERROR whose message carries no internal detail.
func Classify(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	if errors.Is(err, sql.ErrNoRows) {
		return NotFound("resource not found")
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlErrDuplicateEntry:
			return Duplicate("an entry with the same unique value already exists")
		case mysqlErrRowIsReferenced:
			return InvalidReference("the record is still referenced by other records")
		case mysqlErrNoReferencedRow:
			return InvalidReference("a referenced record does not exist")
		}
	}

	return New(http.StatusInternalServerError, CodeInternal, "internal server error")
}
