package payment

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/polkiloo/storefront/internal/config"
)

func TestNewRegistryUsesConfig(t *testing.T) {
	cfg := &config.Config{
		StripeSecretKey:     "sk_test",
		StripeWebhookSecret: "whsec",
		BaseURL:             "https://shop.example",
	}
	r := newRegistry(registryParams{Config: cfg, Logger: zap.NewNop()})

	g, err := r.Get("stripe")
	require.NoError(t, err)
	sg, ok := g.(*StripeGateway)
	require.True(t, ok)
	require.Equal(t, StripeSettings{SecretKey: "sk_test", WebhookSecret: "whsec", BaseURL: "https://shop.example"}, sg.settings)
	require.NotNil(t, sg.newSession)
}
