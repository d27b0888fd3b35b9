package test

import (
	"context"

	"github.com/polkiloo/storefront/internal/adapter/payment"
	"github.com/polkiloo/storefront/internal/domain/model"
)

// CatalogFacadeStub serves catalog reads from overrides.
type CatalogFacadeStub struct {
	ProductFn  func(context.Context, int64, bool) (*model.Product, error)
	ProductsFn func(context.Context, model.ProductFilter, string, bool) ([]model.Product, error)
}

// Product returns the override result or a product with the requested ID.
func (s CatalogFacadeStub) Product(ctx context.Context, id int64, force bool) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id, force)
	}
	return &model.Product{ID: id, Title: "product", OnSale: true}, nil
}

// Products returns the override result or a single product page.
func (s CatalogFacadeStub) Products(ctx context.Context, filter model.ProductFilter, rawQuery string, force bool) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, filter, rawQuery, force)
	}
	return []model.Product{{ID: 1, Title: "product", OnSale: true}}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CheckoutFn func(context.Context, int64, []model.CartItem) (*model.Order, error)
	OrdersFn   func(context.Context, int64) ([]model.Order, error)
	OrderFn    func(context.Context, int64, string) (*model.Order, error)
	PayFn      func(context.Context, int64, string, string, string) (*payment.Checkout, error)
	TestPayFn  func(context.Context, int64, string, string) (*model.Order, error)
	CancelFn   func(context.Context, int64, string) (*model.Order, error)
	ReceiveFn  func(context.Context, int64, string) (*model.Order, error)
}

// Checkout delegates to override or returns an unfulfilled order.
func (s OrderFacadeStub) Checkout(ctx context.Context, userID int64, items []model.CartItem) (*model.Order, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, userID, items)
	}
	return &model.Order{Token: "token", UserID: userID, Status: model.OrderStatusUnfulfilled}, nil
}

// Orders returns predefined orders for given user.
func (s OrderFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.Order{{Token: "token", UserID: userID, Status: model.OrderStatusUnfulfilled}}, nil
}

// Order returns a single order.
func (s OrderFacadeStub) Order(ctx context.Context, userID int64, token string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, userID, token)
	}
	return &model.Order{Token: token, UserID: userID, Status: model.OrderStatusUnfulfilled}, nil
}

// Pay returns a checkout page.
func (s OrderFacadeStub) Pay(ctx context.Context, userID int64, processor, token, ip string) (*payment.Checkout, error) {
	if s.PayFn != nil {
		return s.PayFn(ctx, userID, processor, token, ip)
	}
	return &payment.Checkout{SessionID: "cs_test", URL: "https://pay.example/cs_test"}, nil
}

// TestPay returns a fulfilled order.
func (s OrderFacadeStub) TestPay(ctx context.Context, userID int64, token, ip string) (*model.Order, error) {
	if s.TestPayFn != nil {
		return s.TestPayFn(ctx, userID, token, ip)
	}
	return &model.Order{Token: token, UserID: userID, Status: model.OrderStatusFulfilled}, nil
}

// CancelOrder returns a canceled order.
func (s OrderFacadeStub) CancelOrder(ctx context.Context, userID int64, token string) (*model.Order, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, userID, token)
	}
	return &model.Order{Token: token, UserID: userID, Status: model.OrderStatusCanceled}, nil
}

// ReceiveOrder returns a completed order.
func (s OrderFacadeStub) ReceiveOrder(ctx context.Context, userID int64, token string) (*model.Order, error) {
	if s.ReceiveFn != nil {
		return s.ReceiveFn(ctx, userID, token)
	}
	return &model.Order{
		Token:      token,
		UserID:     userID,
		Status:     model.OrderStatusCompleted,
		ShipStatus: model.ShipStatusReceived,
	}, nil
}

// WebhookFacadeStub records webhook deliveries.
type WebhookFacadeStub struct {
	WebhookFn func(context.Context, string, []byte, string) (model.WebhookOutcome, error)
}

// PaymentWebhook delegates to override or reports the event as applied.
func (s WebhookFacadeStub) PaymentWebhook(ctx context.Context, processor string, payload []byte, signature string) (model.WebhookOutcome, error) {
	if s.WebhookFn != nil {
		return s.WebhookFn(ctx, processor, payload, signature)
	}
	return model.WebhookApplied, nil
}

// HealthFacadeStub returns a fixed health result.
type HealthFacadeStub struct {
	Err error
}

// Health returns the configured error.
func (s HealthFacadeStub) Health(context.Context) error {
	return s.Err
}

// GatewayStub is a payment processor with scripted answers.
type GatewayStub struct {
	NameVal    string
	CheckoutFn func(context.Context, payment.CheckoutRequest) (*payment.Checkout, error)
	ParseFn    func([]byte, string) (model.PaymentEvent, error)
	Requests   []payment.CheckoutRequest
}

// Name returns configured processor name, "stub" by default.
func (s *GatewayStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// CreateCheckout records the request.
func (s *GatewayStub) CreateCheckout(ctx context.Context, req payment.CheckoutRequest) (*payment.Checkout, error) {
	s.Requests = append(s.Requests, req)
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, req)
	}
	return &payment.Checkout{SessionID: "cs_stub", URL: "https://pay.example/cs_stub"}, nil
}

// ParseEvent delegates to override or reports a succeeded payment for order "token".
func (s *GatewayStub) ParseEvent(payload []byte, signature string) (model.PaymentEvent, error) {
	if s.ParseFn != nil {
		return s.ParseFn(payload, signature)
	}
	return model.PaymentEvent{ID: "evt", Type: model.PaymentEventSucceeded, OrderToken: "token"}, nil
}

var _ payment.Gateway = (*GatewayStub)(nil)

// AddressFacadeStub serves address book calls from overrides.
type AddressFacadeStub struct {
	AddressesFn     func(context.Context, int64) ([]model.Address, error)
	SaveAddressFn   func(context.Context, int64, model.Address) (*model.Address, error)
	DeleteAddressFn func(context.Context, int64, int64) error
}

// Addresses returns the override result or a single address.
func (s AddressFacadeStub) Addresses(ctx context.Context, userID int64) ([]model.Address, error) {
	if s.AddressesFn != nil {
		return s.AddressesFn(ctx, userID)
	}
	return []model.Address{{ID: 1, UserID: userID, City: "Oakton"}}, nil
}

// SaveAddress echoes the address, assigning an id to new ones.
func (s AddressFacadeStub) SaveAddress(ctx context.Context, userID int64, address model.Address) (*model.Address, error) {
	if s.SaveAddressFn != nil {
		return s.SaveAddressFn(ctx, userID, address)
	}
	if address.ID == 0 {
		address.ID = 1
	}
	address.UserID = userID
	return &address, nil
}

// DeleteAddress succeeds unless overridden.
func (s AddressFacadeStub) DeleteAddress(ctx context.Context, userID, id int64) error {
	if s.DeleteAddressFn != nil {
		return s.DeleteAddressFn(ctx, userID, id)
	}
	return nil
}

// MailerStub records outgoing mail.
type MailerStub struct {
	Sent []model.MailMessage
	Err  error
}

// Send records the message and returns the configured error.
func (m *MailerStub) Send(ctx context.Context, msg model.MailMessage) error {
	m.Sent = append(m.Sent, msg)
	return m.Err
}
