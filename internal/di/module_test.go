package di

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/polkiloo/storefront/internal/adapter/payment"
	"github.com/polkiloo/storefront/internal/app"
	"github.com/polkiloo/storefront/internal/cache"
	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
	"github.com/polkiloo/storefront/internal/storage/postgres"
	"github.com/polkiloo/storefront/internal/test"
	"github.com/polkiloo/storefront/internal/usecase"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:      ":0",
		DatabaseURI:     "postgres://stub",
		JWTSecret:       "secret",
		TokenTTL:        time.Hour,
		ShutdownTimeout: time.Millisecond,
		CacheBackend:    config.CacheBackendMemory,
		CacheSize:       8,
		CacheTTL:        time.Minute,
		BaseURL:         "http://localhost",
		TestPayEnabled:  true,
	}
	orders := test.NewOrderRepositoryStub()
	products := test.NewProductRepositoryStub(model.Product{ID: 1, Title: "Lamp", Price: 49.99, OnSale: true})

	var (
		facade   *app.StoreFacade
		registry *payment.Registry
		mailer   usecase.Mailer
		store    cache.Store
		engine   *gin.Engine
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(zap.NewNop()),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(fx.Annotate(test.NewUserRepositoryStub(), fx.As(new(repository.UserRepository)))),
			fx.Replace(fx.Annotate(orders, fx.As(new(repository.OrderRepository)))),
			fx.Replace(fx.Annotate(test.NewPaymentRepositoryStub(orders), fx.As(new(repository.PaymentRepository)))),
			fx.Replace(fx.Annotate(products, fx.As(new(repository.ProductRepository)))),
			fx.Replace(fx.Annotate(test.NewAddressRepositoryStub(), fx.As(new(repository.AddressRepository)))),
		),
		fx.Populate(&facade, &registry, &mailer, &store, &engine),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })

	if facade == nil || engine == nil {
		t.Fatal("expected facade and router instances")
	}
	if names := registry.Names(); len(names) != 1 || names[0] != model.PaymentMethodStripe {
		t.Fatalf("unexpected processors %v", names)
	}
	if _, ok := store.(*cache.MemoryStore); !ok {
		t.Fatalf("expected memory cache store, got %T", store)
	}
	if mailer == nil {
		t.Fatal("expected mailer")
	}

	order, err := facade.Checkout(context.Background(), 1, []model.CartItem{{ProductID: 1, Quantity: 1}})
	if err != nil {
		t.Fatalf("checkout through graph: %v", err)
	}
	if order.Total != 49.99 {
		t.Fatalf("unexpected total %v", order.Total)
	}
}
