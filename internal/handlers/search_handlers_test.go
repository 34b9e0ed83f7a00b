package handlers_test

import (
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partwall/partwall-golang/internal/models"
)

var categoryCols = []string{"id", "name", "slug", "created_at", "updated_at"}

func TestSearchEmptyQueryReturnsNothing(t *testing.T) {
	router, mock, _ := newTestAPI(t)

	// No SQL runs for a blank query.
	w := doRequest(t, router, http.MethodGet, "/api/v1/search?q=+", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result models.SearchResult
	decodeData(t, w, &result)
	assert.Empty(t, result.Parts)
	assert.Empty(t, result.Categories)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchMatchesPartsBySubstring(t *testing.T) {
	router, mock, _ := newTestAPI(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE (p.name LIKE ? OR p.description LIKE ?)")).
		WithArgs("%bolt%", "%bolt%", 50).
		WillReturnRows(sqlmock.NewRows(partCols).
			AddRow(1, 8, "M3 bolt", nil, 40, 10, now, now).
			AddRow(2, 8, "Carriage bolt", "zinc plated", 12, 0, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM categories WHERE name LIKE ?")).
		WithArgs("%bolt%", 50).
		WillReturnRows(sqlmock.NewRows(categoryCols))

	w := doRequest(t, router, http.MethodGet, "/api/v1/search?q=bolt", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result models.SearchResult
	decodeData(t, w, &result)
	assert.Equal(t, "bolt", result.Query)
	require.Len(t, result.Parts, 2)
	assert.Equal(t, "M3 bolt", result.Parts[0].Name)
	assert.Empty(t, result.Categories)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchLimitOneReturnsAtMostOne(t *testing.T) {
	router, mock, _ := newTestAPI(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("LIMIT ?")).
		WithArgs("%bolt%", "%bolt%", 1).
		WillReturnRows(sqlmock.NewRows(partCols).AddRow(1, 8, "M3 bolt", nil, 40, 10, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM categories WHERE name LIKE ?")).
		WithArgs("%bolt%", 1).
		WillReturnRows(sqlmock.NewRows(categoryCols))

	w := doRequest(t, router, http.MethodGet, "/api/v1/search?q=bolt&limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result models.SearchResult
	decodeData(t, w, &result)
	assert.Len(t, result.Parts, 1)
}

func TestSearchLimitIsClamped(t *testing.T) {
	router, mock, _ := newTestAPI(t)

	// 99999 must arrive at the store as the 200 cap.
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT ?")).
		WithArgs("%nut%", "%nut%", 200).
		WillReturnRows(sqlmock.NewRows(partCols))
	mock.ExpectQuery(regexp.QuoteMeta("FROM categories WHERE name LIKE ?")).
		WithArgs("%nut%", 200).
		WillReturnRows(sqlmock.NewRows(categoryCols))

	w := doRequest(t, router, http.MethodGet, "/api/v1/search?q=nut&limit=99999", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchWithCategoryScopesPartsAndSkipsCategories(t *testing.T) {
	router, mock, _ := newTestAPI(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("JOIN drawer_categories dc ON p.drawer_id = dc.drawer_id")).
		WithArgs("%bolt%", "%bolt%", "3", 50).
		WillReturnRows(sqlmock.NewRows(partCols).AddRow(1, 8, "M3 bolt", nil, 40, 10, now, now))

	w := doRequest(t, router, http.MethodGet, "/api/v1/search?q=bolt&category=3", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result models.SearchResult
	decodeData(t, w, &result)
	require.Len(t, result.Parts, 1)
	assert.Empty(t, result.Categories)

	require.NoError(t, mock.ExpectationsWereMet())
}
