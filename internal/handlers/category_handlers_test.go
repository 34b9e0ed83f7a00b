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

func TestCreateCategoryDerivesSlug(t *testing.T) {
	router, mock, _ := newTestAPI(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO categories")).
		WithArgs("Small Fasteners", "small-fasteners", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(6, 1))

	w := doRequest(t, router, http.MethodPost, "/api/v1/categories", map[string]interface{}{"name": "Small Fasteners"})
	require.Equal(t, http.StatusCreated, w.Code)

	var cat models.Category
	decodeData(t, w, &cat)
	assert.Equal(t, "small-fasteners", cat.Slug)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCategoryDuplicateSlug(t *testing.T) {
	router, mock, _ := newTestAPI(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO categories")).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'small-fasteners'"})

	w := doRequest(t, router, http.MethodPost, "/api/v1/categories", map[string]interface{}{"name": "Small Fasteners"})

	assert.Equal(t, http.StatusConflict, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, apperr.CodeDuplicateEntry, env.Error.Code)
}

func TestGetCategoryDrawers(t *testing.T) {
	router, mock, _ := newTestAPI(t)
	now := time.Now()

	mock.ExpectQuery("SELECT .+ FROM categories WHERE id").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(categoryCols).AddRow(3, "Fasteners", "fasteners", now, now))

	drawerCols := []string{"id", "case_id", "size_id", "row_pos", "col_pos", "label", "created_at", "updated_at"}
	mock.ExpectQuery(regexp.QuoteMeta("JOIN drawer_categories dc ON d.id = dc.drawer_id")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(drawerCols).
			AddRow(8, 7, 10, 0, 0, "bolts", now, now).
			AddRow(9, 7, 10, 0, 1, nil, now, now))

	w := doRequest(t, router, http.MethodGet, "/api/v1/categories/3/drawers", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var drawers []models.Drawer
	decodeData(t, w, &drawers)
	require.Len(t, drawers, 2)
	assert.Equal(t, int64(8), drawers[0].ID)
}
