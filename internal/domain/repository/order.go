package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Create stores the order together with its lines and returns it with assigned ids.
	Create(ctx context.Context, order model.Order) (*model.Order, error)
	// GetByToken returns the order with its lines loaded.
	GetByToken(ctx context.Context, token string) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, ship model.ShipStatus) error
}
