package database

import (
	"context"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestEnsureSchemaExecutesAllStatements(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// One Exec per CREATE TABLE in schema.sql.
	tables := strings.Count(schemaSQL, "CREATE TABLE")
	require.Greater(t, tables, 0)
	for i := 0; i < tables; i++ {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, EnsureSchema(context.Background(), db))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchemaStopsOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS").WillReturnError(context.DeadlineExceeded)

	err = EnsureSchema(context.Background(), db)
	require.Error(t, err)
	require.Contains(t, err.Error(), "applying schema statement")
}
