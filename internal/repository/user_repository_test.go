package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"account-portal/internal/database/dbtest"
)

func newRepoWithMock(t *testing.T) (UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return NewUserRepository(sqlx.NewDb(mockDB, "postgres")), mock
}

func TestFindIDByEmail_PostgresPlaceholders(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^SELECT id FROM users WHERE email = \$1 LIMIT 1$`).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := repo.FindIDByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindIDByEmail_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT id FROM users`).
		WithArgs("a@x.com").
		WillReturnError(errors.New("db down"))

	_, err := repo.FindIDByEmail(context.Background(), "a@x.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserNotFound)
	assert.Contains(t, err.Error(), "failed to look up email: db down")
}

func TestFindByEmail_DuplicateRows(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows([]string{"id", "fullname", "email", "password_hash"}).
		AddRow(int64(1), "Alice", "a@x.com", "h1").
		AddRow(int64(2), "Alice", "a@x.com", "h2")
	mock.ExpectQuery(`(?s)SELECT\s+id, fullname, email, password_hash\s+FROM users\s+WHERE email = \$1\s+LIMIT 2`).
		WithArgs("a@x.com").
		WillReturnRows(rows)

	_, err := repo.FindByEmail(context.Background(), "a@x.com")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestCreate_PostgresUniqueViolation(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)INSERT INTO users \(fullname, email, password_hash\)\s+VALUES \(\$1, \$2, \$3\)\s+RETURNING id`).
		WithArgs("Alice", "a@x.com", "hash").
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	_, err := repo.Create(context.Background(), "Alice", "a@x.com", "hash")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestCreate_OtherPostgresError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("Alice", "a@x.com", "hash").
		WillReturnError(&pq.Error{Code: "23502", Message: "null value in column"})

	_, err := repo.Create(context.Background(), "Alice", "a@x.com", "hash")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmailTaken)
	assert.Contains(t, err.Error(), "failed to create user")
}

func TestUserRepository_SQLite(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(dbtest.Open(t))

	_, err := repo.FindIDByEmail(ctx, "a@x.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = repo.FindByEmail(ctx, "a@x.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	created, err := repo.Create(ctx, "Alice", "a@x.com", "hash")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	id, err := repo.FindIDByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, id)

	got, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, *created, *got)

	_, err = repo.Create(ctx, "Alice2", "a@x.com", "other")
	assert.ErrorIs(t, err, ErrEmailTaken)

	second, err := repo.Create(ctx, "Bob", "b@x.com", "hash")
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, second.ID)
}
