package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// UserRepository describes persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, login, email, passwordHash string) (*model.User, error)
	// CreatePending stores an inactive user without a password; the account
	// is activated through the set-password link carrying uid.
	CreatePending(ctx context.Context, login, email, uid string) (*model.User, error)
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByResetUID(ctx context.Context, uid string) (*model.User, error)
	SetResetUID(ctx context.Context, userID int64, uid string) error
	// UpdatePassword stores a new hash, clears the reset uid and activates the user.
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}
