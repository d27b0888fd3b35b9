package repository

import (
	"context"
	"time"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// PaymentRepository manages the payment record attached to an order.
type PaymentRepository interface {
	GetByOrder(ctx context.Context, orderID int64) (*model.OrderPayment, error)
	// Upsert creates the payment of an order or overwrites the existing one.
	Upsert(ctx context.Context, payment model.OrderPayment) (*model.OrderPayment, error)
	// ApplySettlement moves the order and its payment to the settlement statuses
	// atomically. ErrNotFound when either row is missing; nothing is written then.
	ApplySettlement(ctx context.Context, orderID int64, s model.Settlement, at time.Time) error
}
