package payment

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/polkiloo/storefront/internal/config"
)

// Module exposes configured payment gateways to fx graph.
var Module = fx.Provide(newRegistry)

type registryParams struct {
	fx.In

	Config *config.Config
	Logger *zap.Logger
}

func newRegistry(p registryParams) *Registry {
	stripeGateway := NewStripeGateway(StripeSettings{
		SecretKey:     p.Config.StripeSecretKey,
		WebhookSecret: p.Config.StripeWebhookSecret,
		BaseURL:       p.Config.BaseURL,
	}, p.Logger.Named("payment"))
	return NewRegistry(stripeGateway)
}
