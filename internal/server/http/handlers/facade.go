package handlers

import (
	"context"

	"github.com/polkiloo/storefront/internal/adapter/payment"
	"github.com/polkiloo/storefront/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, email, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
	RequestPasswordReset(ctx context.Context, email string) error
	SetPassword(ctx context.Context, uid, password string) (string, error)
	Signup(ctx context.Context, login, email string) error
	ChangePassword(ctx context.Context, userID int64, password, confirmation string) error
}

// AddressFacade manages the address book of the signed-in user.
type AddressFacade interface {
	Addresses(ctx context.Context, userID int64) ([]model.Address, error)
	SaveAddress(ctx context.Context, userID int64, address model.Address) (*model.Address, error)
	DeleteAddress(ctx context.Context, userID, id int64) error
}

// CatalogFacade serves product reads.
type CatalogFacade interface {
	Product(ctx context.Context, id int64, force bool) (*model.Product, error)
	Products(ctx context.Context, filter model.ProductFilter, rawQuery string, force bool) ([]model.Product, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	Checkout(ctx context.Context, userID int64, items []model.CartItem) (*model.Order, error)
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	Order(ctx context.Context, userID int64, token string) (*model.Order, error)
	Pay(ctx context.Context, userID int64, processor, token, customerIP string) (*payment.Checkout, error)
	TestPay(ctx context.Context, userID int64, token, customerIP string) (*model.Order, error)
	CancelOrder(ctx context.Context, userID int64, token string) (*model.Order, error)
	ReceiveOrder(ctx context.Context, userID int64, token string) (*model.Order, error)
}

// WebhookFacade applies payment processor notifications.
type WebhookFacade interface {
	PaymentWebhook(ctx context.Context, processor string, payload []byte, signature string) (model.WebhookOutcome, error)
}

// HealthFacade reports readiness of backing services.
type HealthFacade interface {
	Health(ctx context.Context) error
}

// StoreFacade aggregates the full set of operations used across handlers.
type StoreFacade interface {
	AuthFacade
	CatalogFacade
	OrderFacade
	WebhookFacade
	AddressFacade
	HealthFacade
}
