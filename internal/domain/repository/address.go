package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// AddressRepository stores customer address books.
type AddressRepository interface {
	Create(ctx context.Context, address model.Address) (*model.Address, error)
	GetByID(ctx context.Context, id int64) (*model.Address, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Address, error)
	Update(ctx context.Context, address model.Address) error
	Delete(ctx context.Context, id int64) error
}
