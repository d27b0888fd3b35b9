package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/polkiloo/storefront/internal/adapter/payment"
	"github.com/polkiloo/storefront/internal/cache"
	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/metrics"
	testhelpers "github.com/polkiloo/storefront/internal/test"
	"github.com/polkiloo/storefront/internal/usecase"
)

type healthStub struct {
	err error
}

func (h healthStub) HealthCheck(context.Context) error { return h.err }

type facadeFixture struct {
	facade  *StoreFacade
	users   *testhelpers.UserRepositoryStub
	orders  *testhelpers.OrderRepositoryStub
	gateway *testhelpers.GatewayStub
	mailer  *testhelpers.MailerStub
	metrics *metrics.Metrics
}

func newFacade(t *testing.T, health HealthChecker) facadeFixture {
	t.Helper()

	users := testhelpers.NewUserRepositoryStub()
	strategy := testhelpers.StrategyStub{ParseFn: func(string) (int64, error) { return 99, nil }}
	mailer := &testhelpers.MailerStub{}
	authUC := usecase.NewAuthUseCase(users, testhelpers.HasherStub{}, strategy, mailer, usecase.AuthSettings{BaseURL: "https://shop.example"}, nil)
	addressUC := usecase.NewAddressUseCase(testhelpers.NewAddressRepositoryStub(), nil)

	products := testhelpers.NewProductRepositoryStub(
		model.Product{ID: 1, Title: "Notebook", Price: 19.99, OnSale: true, CategoryID: 1},
	)
	orders := testhelpers.NewOrderRepositoryStub(model.Order{
		Token:  "abc123",
		UserID: 1,
		Total:  49.99,
		Status: model.OrderStatusUnfulfilled,
	})
	payments := testhelpers.NewPaymentRepositoryStub(orders)
	orderUC := usecase.NewOrderUseCase(orders, payments, products, nil)

	catalogUC, err := usecase.NewCatalogUseCase(products, cache.New(cache.NopStore{}), nil)
	if err != nil {
		t.Fatalf("catalog use case: %v", err)
	}

	gateway := &testhelpers.GatewayStub{NameVal: "stripe"}
	m := metrics.New()

	return facadeFixture{
		facade:  NewStoreFacade(authUC, orderUC, catalogUC, addressUC, payment.NewRegistry(gateway), m, health),
		users:   users,
		orders:  orders,
		gateway: gateway,
		mailer:  mailer,
		metrics: m,
	}
}

func TestStoreFacadeAuth(t *testing.T) {
	fix := newFacade(t, nil)
	ctx := context.Background()

	token, err := fix.facade.Register(ctx, "user", "user@example.com", "pass")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if token != "token" {
		t.Fatalf("unexpected token %q", token)
	}

	stored, err := fix.users.GetByLogin(ctx, "user")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if stored.Email != "user@example.com" {
		t.Fatalf("unexpected stored email %q", stored.Email)
	}

	if _, err := fix.facade.Authenticate(ctx, "user", "pass"); err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if _, err := fix.facade.Authenticate(ctx, "user", "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}

	id, err := fix.facade.ParseToken("anything")
	if err != nil || id != 99 {
		t.Fatalf("unexpected parse result %d, %v", id, err)
	}

	if err := fix.facade.RequestPasswordReset(ctx, "nobody@example.com"); err != nil {
		t.Fatalf("reset for unknown address returned error: %v", err)
	}
	if _, err := fix.facade.SetPassword(ctx, "missing", "pwd"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for unknown reset link, got %v", err)
	}
}

func TestStoreFacadeAccount(t *testing.T) {
	fix := newFacade(t, nil)
	ctx := context.Background()

	if err := fix.facade.Signup(ctx, "nora", "nora@example.com"); err != nil {
		t.Fatalf("signup returned error: %v", err)
	}
	if len(fix.mailer.Sent) != 1 || fix.mailer.Sent[0].Template != model.MailTemplateSignupConfirmation {
		t.Fatalf("unexpected mail: %+v", fix.mailer.Sent)
	}
	pending, err := fix.users.GetByLogin(ctx, "nora")
	if err != nil || pending.IsActive {
		t.Fatalf("expected inactive account, got %+v err=%v", pending, err)
	}
	if !strings.HasSuffix(fix.mailer.Sent[0].Data["set_password_url"], pending.ResetPasswordUID) {
		t.Fatalf("link does not carry uid: %q", fix.mailer.Sent[0].Data["set_password_url"])
	}
	if err := fix.facade.Signup(ctx, "nora", "nora@example.com"); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}

	if err := fix.facade.ChangePassword(ctx, pending.ID, "secret9", "secret9"); err != nil {
		t.Fatalf("change password returned error: %v", err)
	}
	if _, err := fix.facade.Authenticate(ctx, "nora", "secret9"); err != nil {
		t.Fatalf("authenticate after change returned error: %v", err)
	}

	saved, err := fix.facade.SaveAddress(ctx, pending.ID, model.Address{
		Province: "North", City: "Oakton", District: "Old town", Address: "1 Main St",
		ContactName: "Nora", ContactPhone: "5550001111",
	})
	if err != nil {
		t.Fatalf("save address returned error: %v", err)
	}
	list, err := fix.facade.Addresses(ctx, pending.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("unexpected addresses %+v err=%v", list, err)
	}
	if err := fix.facade.DeleteAddress(ctx, pending.ID+1, saved.ID); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := fix.facade.DeleteAddress(ctx, pending.ID, saved.ID); err != nil {
		t.Fatalf("delete address returned error: %v", err)
	}
}

func TestStoreFacadeCatalog(t *testing.T) {
	fix := newFacade(t, nil)
	ctx := context.Background()

	p, err := fix.facade.Product(ctx, 1, false)
	if err != nil {
		t.Fatalf("product returned error: %v", err)
	}
	if p.Title != "Notebook" {
		t.Fatalf("unexpected product %q", p.Title)
	}

	if _, err := fix.facade.Product(ctx, 42, false); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	list, err := fix.facade.Products(ctx, model.ProductFilter{}, "", true)
	if err != nil {
		t.Fatalf("products returned error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 product, got %d", len(list))
	}
}

func TestStoreFacadeOrders(t *testing.T) {
	fix := newFacade(t, nil)
	ctx := context.Background()

	created, err := fix.facade.Checkout(ctx, 2, []model.CartItem{{ProductID: 1, Quantity: 2}})
	if err != nil {
		t.Fatalf("checkout returned error: %v", err)
	}
	if created.Total != 39.98 {
		t.Fatalf("unexpected total %v", created.Total)
	}

	list, err := fix.facade.Orders(ctx, 2)
	if err != nil || len(list) != 1 {
		t.Fatalf("unexpected orders %v, %v", list, err)
	}

	if _, err := fix.facade.Order(ctx, 2, "abc123"); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden for foreign order, got %v", err)
	}

	canceled, err := fix.facade.CancelOrder(ctx, 2, created.Token)
	if err != nil {
		t.Fatalf("cancel returned error: %v", err)
	}
	if canceled.Status != model.OrderStatusCanceled {
		t.Fatalf("unexpected status %q", canceled.Status)
	}

	if _, err := fix.facade.ReceiveOrder(ctx, 2, created.Token); !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestStoreFacadePay(t *testing.T) {
	fix := newFacade(t, nil)
	ctx := context.Background()

	if _, err := fix.users.Create(ctx, "owner", "owner@example.com", "hash:pwd"); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	checkout, err := fix.facade.Pay(ctx, 1, "stripe", "abc123", "127.0.0.1")
	if err != nil {
		t.Fatalf("pay returned error: %v", err)
	}
	if checkout.URL == "" {
		t.Fatalf("expected checkout url")
	}
	if len(fix.gateway.Requests) != 1 {
		t.Fatalf("expected one checkout request, got %d", len(fix.gateway.Requests))
	}
	req := fix.gateway.Requests[0]
	if req.Order.Token != "abc123" || req.CustomerEmail != "owner@example.com" {
		t.Fatalf("unexpected checkout request %+v", req)
	}

	if _, err := fix.facade.Pay(ctx, 1, "paypal", "abc123", ""); !errors.Is(err, domainErrors.ErrUnsupportedProcessor) {
		t.Fatalf("expected unsupported processor, got %v", err)
	}
}

func TestStoreFacadePayGatewayError(t *testing.T) {
	fix := newFacade(t, nil)
	fix.gateway.CheckoutFn = func(context.Context, payment.CheckoutRequest) (*payment.Checkout, error) {
		return nil, payment.ErrNotConfigured
	}

	if _, err := fix.facade.Pay(context.Background(), 1, "stripe", "abc123", ""); !errors.Is(err, payment.ErrNotConfigured) {
		t.Fatalf("expected not configured, got %v", err)
	}
}

func TestStoreFacadeTestPayAndReceive(t *testing.T) {
	fix := newFacade(t, nil)
	ctx := context.Background()

	paid, err := fix.facade.TestPay(ctx, 1, "abc123", "")
	if err != nil {
		t.Fatalf("testpay returned error: %v", err)
	}
	if paid.Status != model.OrderStatusFulfilled {
		t.Fatalf("unexpected status %q", paid.Status)
	}

	received, err := fix.facade.ReceiveOrder(ctx, 1, "abc123")
	if err != nil {
		t.Fatalf("receive returned error: %v", err)
	}
	if received.Status != model.OrderStatusCompleted || received.ShipStatus != model.ShipStatusReceived {
		t.Fatalf("unexpected order state %q/%q", received.Status, received.ShipStatus)
	}
}

func TestStoreFacadePaymentWebhook(t *testing.T) {
	fix := newFacade(t, nil)
	ctx := context.Background()

	if _, err := fix.facade.Pay(ctx, 1, "stripe", "abc123", ""); err != nil {
		t.Fatalf("pay returned error: %v", err)
	}

	events := []model.PaymentEvent{
		{ID: "evt_1", Type: model.PaymentEventSucceeded, OrderToken: "abc123"},
		{ID: "evt_2", Type: model.PaymentEventSucceeded, OrderToken: "missing"},
		{ID: "evt_3", Type: "charge.refunded", OrderToken: "abc123"},
	}
	next := 0
	fix.gateway.ParseFn = func([]byte, string) (model.PaymentEvent, error) {
		ev := events[next]
		next++
		return ev, nil
	}

	expected := []model.WebhookOutcome{model.WebhookApplied, model.WebhookIgnored, model.WebhookIgnored}
	for i, want := range expected {
		got, err := fix.facade.PaymentWebhook(ctx, "stripe", []byte("{}"), "sig")
		if err != nil {
			t.Fatalf("event %d returned error: %v", i, err)
		}
		if got != want {
			t.Fatalf("event %d: expected %q, got %q", i, want, got)
		}
	}

	if got := fix.orders.Order("abc123").Status; got != model.OrderStatusFulfilled {
		t.Fatalf("expected fulfilled order, got %q", got)
	}

	fix.gateway.ParseFn = func([]byte, string) (model.PaymentEvent, error) {
		return model.PaymentEvent{}, domainErrors.ErrMalformedEvent
	}
	if _, err := fix.facade.PaymentWebhook(ctx, "stripe", []byte("garbage"), ""); !errors.Is(err, domainErrors.ErrMalformedEvent) {
		t.Fatalf("expected malformed event, got %v", err)
	}

	if _, err := fix.facade.PaymentWebhook(ctx, "paypal", nil, ""); !errors.Is(err, domainErrors.ErrUnsupportedProcessor) {
		t.Fatalf("expected unsupported processor, got %v", err)
	}

	exposition := `
# HELP storefront_payments_webhook_events_total Payment webhook events by type and outcome.
# TYPE storefront_payments_webhook_events_total counter
storefront_payments_webhook_events_total{outcome="applied",type="payment_intent.succeeded"} 1
storefront_payments_webhook_events_total{outcome="ignored",type="other"} 1
storefront_payments_webhook_events_total{outcome="ignored",type="payment_intent.succeeded"} 1
storefront_payments_webhook_events_total{outcome="malformed",type="unknown"} 1
`
	if err := testutil.GatherAndCompare(fix.metrics.Registry(), strings.NewReader(exposition), "storefront_payments_webhook_events_total"); err != nil {
		t.Fatalf("unexpected webhook metrics: %v", err)
	}
}

func TestStoreFacadeHealth(t *testing.T) {
	if err := newFacade(t, nil).facade.Health(context.Background()); err != nil {
		t.Fatalf("expected healthy without checker, got %v", err)
	}

	down := errors.New("db down")
	if err := newFacade(t, healthStub{err: down}).facade.Health(context.Background()); !errors.Is(err, down) {
		t.Fatalf("expected checker error, got %v", err)
	}
}
