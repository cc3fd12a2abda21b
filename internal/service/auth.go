package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"portfolio-api/internal/apperr"
	"portfolio-api/internal/model"
	"portfolio-api/internal/repository"
	"portfolio-api/internal/token"
)

// AuthService defines the use cases around the admin credential.
type AuthService interface {
	// Login verifies the email/password pair and issues a signed token.
	// Unknown email and wrong password are indistinguishable to the caller.
	Login(ctx context.Context, email, password string) (string, *model.User, error)

	// GetUser returns the account behind a verified token subject.
	GetUser(ctx context.Context, id string) (*model.User, error)

	// UpdatePassword swaps the stored hash after checking the current password.
	UpdatePassword(ctx context.Context, id, currentPassword, newPassword string) error
}

type authService struct {
	users  repository.UserRepository
	tokens *token.Manager
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users repository.UserRepository, tokens *token.Manager) AuthService {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, apperr.Unauthorized("Invalid credentials")
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperr.Unauthorized("Invalid credentials")
	}

	signed, err := s.tokens.Sign(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, user, nil
}

func (s *authService) GetUser(ctx context.Context, id string) (*model.User, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) UpdatePassword(ctx context.Context, id, currentPassword, newPassword string) error {
	if err := validateID(id); err != nil {
		return err
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("User")
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.UpdatePassword(ctx, id, string(hash))
}
