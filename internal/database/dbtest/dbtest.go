// Package dbtest opens throwaway in-memory SQLite databases with the users
// schema applied.
package dbtest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	"account-portal/internal/database"
)

// Open returns a migrated database private to the calling test.
func Open(t testing.TB) *sqlx.DB {
	t.Helper()
	goose.SetLogger(goose.NopLogger())

	ctx := context.Background()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := database.NewConnection(ctx, "sqlite", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.RunMigrations(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
