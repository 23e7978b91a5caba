package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"account-portal/internal/entities"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
	// ErrDuplicateEmail means more than one row carries the same email.
	ErrDuplicateEmail = errors.New("email matches more than one user")
)

// UserRepository defines the interface for user database operations
type UserRepository interface {
	FindIDByEmail(ctx context.Context, email string) (int64, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	Create(ctx context.Context, fullname, email, passwordHash string) (*entities.User, error)
}

type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository. Queries are written with
// '?' placeholders and rebound for the handle's driver.
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// FindIDByEmail returns the id of the user registered with email
func (r *userRepository) FindIDByEmail(ctx context.Context, email string) (int64, error) {
	query := r.db.Rebind(`SELECT id FROM users WHERE email = ? LIMIT 1`)

	var id int64
	err := r.db.GetContext(ctx, &id, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up email: %w", err)
	}
	return id, nil
}

// FindByEmail loads the credentials row for email. Two rows are read so a
// broken uniqueness invariant is reported instead of silently picking one.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := r.db.Rebind(`
		SELECT id, fullname, email, password_hash
		FROM users
		WHERE email = ?
		LIMIT 2
	`)

	var users []entities.User
	if err := r.db.SelectContext(ctx, &users, query, email); err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	switch len(users) {
	case 0:
		return nil, ErrUserNotFound
	case 1:
		return &users[0], nil
	default:
		return nil, ErrDuplicateEmail
	}
}

// Create inserts a new user and returns it with the store-assigned id
func (r *userRepository) Create(ctx context.Context, fullname, email, passwordHash string) (*entities.User, error) {
	query := r.db.Rebind(`
		INSERT INTO users (fullname, email, password_hash)
		VALUES (?, ?, ?)
		RETURNING id
	`)

	user := entities.User{
		Fullname:     fullname,
		Email:        email,
		PasswordHash: passwordHash,
	}
	err := r.db.QueryRowxContext(ctx, query, fullname, email, passwordHash).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}
