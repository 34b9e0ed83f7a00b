package handlers_test

import (
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partwall/partwall-golang/internal/apperr"
	"github.com/partwall/partwall-golang/internal/models"
)

var wallCols = []string{"id", "name", "description", "created_at", "updated_at"}

func TestCreateThenGetWallRoundTrip(t *testing.T) {
	router, mock, _ := newTestAPI(t)
	now := time.Now()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO walls")).
		WithArgs("Garage", nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(3, 1))

	w := doRequest(t, router, http.MethodPost, "/api/v1/walls", map[string]interface{}{"name": "Garage"})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Wall
	decodeData(t, w, &created)
	assert.Equal(t, int64(3), created.ID)
	assert.Equal(t, "Garage", created.Name)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, description, created_at, updated_at FROM walls WHERE id = ?")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(wallCols).AddRow(3, "Garage", nil, now, now))

	w = doRequest(t, router, http.MethodGet, "/api/v1/walls/3", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched models.Wall
	decodeData(t, w, &fetched)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Name, fetched.Name)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetWallNotFound(t *testing.T) {
	router, mock, _ := newTestAPI(t)

	mock.ExpectQuery("SELECT .+ FROM walls WHERE id").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(wallCols))

	w := doRequest(t, router, http.MethodGet, "/api/v1/walls/99", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, apperr.CodeNotFound, env.Error.Code)
}

func TestCreateWallRequiresName(t *testing.T) {
	router, _, _ := newTestAPI(t)

	w := doRequest(t, router, http.MethodPost, "/api/v1/walls", map[string]interface{}{"description": "no name"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, apperr.CodeInvalidInput, env.Error.Code)
}

func TestUpdateWallPartial(t *testing.T) {
	router, mock, _ := newTestAPI(t)
	now := time.Now()

	mock.ExpectQuery("SELECT .+ FROM walls WHERE id").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(wallCols).AddRow(5, "Old name", "keep me", now, now))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE walls SET updated_at = ?, name = ? WHERE id = ?")).
		WithArgs(sqlmock.AnyArg(), "New name", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT .+ FROM walls WHERE id").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(wallCols).AddRow(5, "New name", "keep me", now, now))

	w := doRequest(t, router, http.MethodPut, "/api/v1/walls/5", map[string]interface{}{"name": "New name"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Wall
	decodeData(t, w, &updated)
	assert.Equal(t, "New name", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "keep me", *updated.Description)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteWallWithCasesIsRejected(t *testing.T) {
	router, mock, _ := newTestAPI(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM walls WHERE id = ?")).
		WithArgs(int64(1)).
		WillReturnError(&mysql.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row"})

	w := doRequest(t, router, http.MethodDelete, "/api/v1/walls/1", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, apperr.CodeInvalidReference, env.Error.Code)
}

func TestDeleteWallPublishesEvent(t *testing.T) {
	router, mock, hub := newTestAPI(t)
	id, ch := hub.Subscribe()
	defer hub.Unsubscribe(id)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM walls WHERE id = ?")).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := doRequest(t, router, http.MethodDelete, "/api/v1/walls/4", nil)
	require.Equal(t, http.StatusOK, w.Code)

	select {
	case ev := <-ch:
		assert.Equal(t, "wall", ev.Entity)
		assert.Equal(t, "deleted", ev.Action)
		assert.Equal(t, int64(4), ev.ID)
	default:
		t.Fatal("expected a deletion event on the hub")
	}
}
