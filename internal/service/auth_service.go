package service

import (
	"context"
	"errors"
	"fmt"

	"account-portal/internal/entities"
	"account-portal/internal/models"
	"account-portal/internal/repository"
)

var (
	ErrEmailExists       = errors.New("email already exists")
	ErrAccountNotFound   = errors.New("no account found with that email")
	ErrIncorrectPassword = errors.New("incorrect password")
)

// AuthService defines the interface for account creation and login
type AuthService interface {
	CreateAccount(ctx context.Context, req *models.CreateAccountRequest) (*entities.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*entities.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	hasher   *PasswordHasher
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, hasher *PasswordHasher) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// CreateAccount stores a new user. Input fields are taken as-is; no format
// or strength rules apply.
func (s *authService) CreateAccount(ctx context.Context, req *models.CreateAccountRequest) (*entities.User, error) {
	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	_, err = s.userRepo.FindIDByEmail(ctx, req.Email)
	if err == nil {
		return nil, ErrEmailExists
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	user, err := s.userRepo.Create(ctx, req.Fullname, req.Email, hashedPassword)
	if errors.Is(err, repository.ErrEmailTaken) {
		// Lost the race against a concurrent registration.
		return nil, ErrEmailExists
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Login returns the user whose stored hash matches the password.
// repository.ErrDuplicateEmail is passed through untouched.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*entities.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(user.PasswordHash, req.Password) {
		return nil, ErrIncorrectPassword
	}

	return user, nil
}
