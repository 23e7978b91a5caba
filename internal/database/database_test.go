package database

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	goose.SetLogger(goose.NopLogger())
	m.Run()
}

func TestRunMigrations_SQLite(t *testing.T) {
	ctx := context.Background()
	db, err := NewConnection(ctx, "sqlite", "file:migrations_test?mode=memory&cache=shared")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db))
	// Re-running is a no-op.
	require.NoError(t, RunMigrations(ctx, db))

	_, err = db.ExecContext(ctx, `INSERT INTO users (fullname, email, password_hash) VALUES (?, ?, ?)`, "Alice", "a@x.com", "h")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO users (fullname, email, password_hash) VALUES (?, ?, ?)`, "Alice2", "a@x.com", "h2")
	require.Error(t, err, "email must be unique")

	var count int
	require.NoError(t, db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`))
	assert.Equal(t, 1, count)
}

func TestRunMigrations_UnknownDriver(t *testing.T) {
	db := sqlx.NewDb(nil, "mysql")
	err := RunMigrations(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no migrations for driver "mysql"`)
}

func TestNewConnection_BadDriver(t *testing.T) {
	_, err := NewConnection(context.Background(), "nosuchdriver", "whatever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open database")
}
