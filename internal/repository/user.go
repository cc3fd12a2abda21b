package repository

import (
	"context"

	"portfolio-api/internal/model"
)

// UserRepository is data access for the single admin account. FindByEmail and
// FindByID both return the bcrypt hash in model.User.Password; callers decide
// whether it may travel further (it is json:"-" either way).
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
