package payment

import (
	"testing"

	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
)

func TestRegistry(t *testing.T) {
	stripeGateway := NewStripeGateway(StripeSettings{}, nil)
	r := NewRegistry(stripeGateway)

	g, err := r.Get("stripe")
	require.NoError(t, err)
	require.Same(t, stripeGateway, g)

	_, err = r.Get("alipay")
	require.ErrorIs(t, err, domainErrors.ErrUnsupportedProcessor)
	require.Equal(t, []string{"stripe"}, r.Names())

	var empty *Registry
	_, err = empty.Get("stripe")
	require.ErrorIs(t, err, domainErrors.ErrUnsupportedProcessor)
	require.Nil(t, empty.Names())
}
