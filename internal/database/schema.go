package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
)

// The schema ships inside the binary so a fresh database bootstraps
// itself on first start. Statements use CREATE TABLE IF NOT EXISTS and
// are safe to re-run.
//
//go:embed schema.sql
var schemaSQL string

// EnsureSchema applies the embedded DDL, one statement at a time in
// declaration order (parents before children, FKs depend on it).
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema statement: %w", err)
		}
	}
	return nil
}
