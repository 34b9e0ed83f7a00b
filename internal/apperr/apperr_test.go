package apperr

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestClassifyPassesThroughTypedErrors(t *testing.T) {
	orig := NotFound("wall not found")

	got := Classify(fmt.Errorf("handler: %w", orig))

	assert.Equal(t, orig, got)
	assert.Equal(t, http.StatusNotFound, got.Status)
}

func TestClassifyNoRows(t *testing.T) {
	got := Classify(sql.ErrNoRows)

	assert.Equal(t, CodeNotFound, got.Code)
	assert.Equal(t, http.StatusNotFound, got.Status)
}

func TestClassifyMySQLErrorNumbers(t *testing.T) {
	tests := []struct {
		number     uint16
		wantCode   string
		wantStatus int
	}{
		{1062, CodeDuplicateEntry, http.StatusConflict},
		{1451, CodeInvalidReference, http.StatusBadRequest},
		{1452, CodeInvalidReference, http.StatusBadRequest},
		// An unmapped driver error must fall through to a 500.
		{1205, CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		err := &mysql.MySQLError{Number: tt.number, Message: "Cannot add or update: secret table detail"}
		got := Classify(err)

		assert.Equal(t, tt.wantCode, got.Code, "number %d", tt.number)
		assert.Equal(t, tt.wantStatus, got.Status, "number %d", tt.number)
		// The driver message must never reach the client.
		assert.NotContains(t, got.Message, "secret table detail")
	}
}

func TestClassifyUnknownErrorIsOpaque(t *testing.T) {
	got := Classify(errors.New("pq: something leaked from the engine"))

	assert.Equal(t, CodeInternal, got.Code)
	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.Equal(t, "internal server error", got.Message)
}
