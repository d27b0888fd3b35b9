package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/polkiloo/storefront/internal/adapter/payment"
	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/metrics"
	"github.com/polkiloo/storefront/internal/usecase"
)

// HealthChecker reports whether backing services answer.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// StoreFacade exposes use cases to the HTTP layer.
type StoreFacade struct {
	auth     *usecase.AuthUseCase
	orders   *usecase.OrderUseCase
	catalog  *usecase.CatalogUseCase
	address  *usecase.AddressUseCase
	gateways *payment.Registry
	metrics  *metrics.Metrics
	health   HealthChecker
}

func NewStoreFacade(
	auth *usecase.AuthUseCase,
	orders *usecase.OrderUseCase,
	catalog *usecase.CatalogUseCase,
	addresses *usecase.AddressUseCase,
	gateways *payment.Registry,
	m *metrics.Metrics,
	health HealthChecker,
) *StoreFacade {
	return &StoreFacade{
		auth:     auth,
		orders:   orders,
		catalog:  catalog,
		address:  addresses,
		gateways: gateways,
		metrics:  m,
		health:   health,
	}
}

func (f *StoreFacade) Register(ctx context.Context, login, email, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, email, password)
	return token, err
}

func (f *StoreFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *StoreFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *StoreFacade) RequestPasswordReset(ctx context.Context, email string) error {
	return f.auth.RequestPasswordReset(ctx, email)
}

func (f *StoreFacade) SetPassword(ctx context.Context, uid, password string) (string, error) {
	_, token, err := f.auth.SetPassword(ctx, uid, password)
	return token, err
}

func (f *StoreFacade) Signup(ctx context.Context, login, email string) error {
	_, err := f.auth.Signup(ctx, login, email)
	return err
}

func (f *StoreFacade) ChangePassword(ctx context.Context, userID int64, password, confirmation string) error {
	return f.auth.ChangePassword(ctx, userID, password, confirmation)
}

func (f *StoreFacade) Addresses(ctx context.Context, userID int64) ([]model.Address, error) {
	return f.address.List(ctx, userID)
}

func (f *StoreFacade) SaveAddress(ctx context.Context, userID int64, address model.Address) (*model.Address, error) {
	return f.address.Save(ctx, userID, address)
}

func (f *StoreFacade) DeleteAddress(ctx context.Context, userID, id int64) error {
	return f.address.Delete(ctx, userID, id)
}

func (f *StoreFacade) Product(ctx context.Context, id int64, force bool) (*model.Product, error) {
	return f.catalog.Product(ctx, id, force)
}

func (f *StoreFacade) Products(ctx context.Context, filter model.ProductFilter, rawQuery string, force bool) ([]model.Product, error) {
	return f.catalog.Products(ctx, filter, rawQuery, force)
}

func (f *StoreFacade) Checkout(ctx context.Context, userID int64, items []model.CartItem) (*model.Order, error) {
	return f.orders.Checkout(ctx, userID, items)
}

func (f *StoreFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *StoreFacade) Order(ctx context.Context, userID int64, token string) (*model.Order, error) {
	return f.orders.Get(ctx, userID, token)
}

// Pay records a waiting payment and opens the processor's checkout page for it.
func (f *StoreFacade) Pay(ctx context.Context, userID int64, processor, token, customerIP string) (*payment.Checkout, error) {
	gateway, err := f.gateways.Get(processor)
	if err != nil {
		return nil, err
	}

	attempt, err := f.orders.CreateOrUpdatePayment(ctx, userID, token, gateway.Name(), customerIP)
	if err != nil {
		return nil, err
	}

	var email string
	user, err := f.auth.GetByID(ctx, userID)
	switch {
	case err == nil:
		email = user.Email
	case !errors.Is(err, domainErrors.ErrNotFound):
		return nil, fmt.Errorf("load customer: %w", err)
	}

	return gateway.CreateCheckout(ctx, payment.CheckoutRequest{Order: attempt.Order, CustomerEmail: email})
}

func (f *StoreFacade) TestPay(ctx context.Context, userID int64, token, customerIP string) (*model.Order, error) {
	return f.orders.TestPay(ctx, userID, token, customerIP)
}

func (f *StoreFacade) CancelOrder(ctx context.Context, userID int64, token string) (*model.Order, error) {
	return f.orders.Cancel(ctx, userID, token)
}

func (f *StoreFacade) ReceiveOrder(ctx context.Context, userID int64, token string) (*model.Order, error) {
	return f.orders.Receive(ctx, userID, token)
}

// PaymentWebhook decodes a processor notification and applies it to the order it names.
func (f *StoreFacade) PaymentWebhook(ctx context.Context, processor string, payload []byte, signature string) (model.WebhookOutcome, error) {
	gateway, err := f.gateways.Get(processor)
	if err != nil {
		return "", err
	}

	event, err := gateway.ParseEvent(payload, signature)
	if err != nil {
		f.metrics.WebhookEvent("unknown", "malformed")
		return "", err
	}

	outcome, err := f.orders.ApplyPaymentWebhook(ctx, event)
	if err != nil {
		f.metrics.WebhookEvent(eventLabel(event.Type), "failed")
		return "", err
	}
	f.metrics.WebhookEvent(eventLabel(event.Type), string(outcome))
	return outcome, nil
}

// eventLabel keeps metric cardinality bounded for unauthenticated webhooks.
func eventLabel(t model.PaymentEventType) string {
	if _, ok := t.Settlement(); ok {
		return string(t)
	}
	return "other"
}

func (f *StoreFacade) Health(ctx context.Context) error {
	if f.health == nil {
		return nil
	}
	return f.health.HealthCheck(ctx)
}
