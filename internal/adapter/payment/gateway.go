package payment

import (
	"context"
	"errors"
	"sort"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

// ErrNotConfigured is returned when a processor lacks credentials.
var ErrNotConfigured = errors.New("payment processor is not configured")

// CheckoutRequest describes the order a hosted checkout page is opened for.
type CheckoutRequest struct {
	Order         *model.Order
	CustomerEmail string
}

// Checkout is a hosted payment page the customer is redirected to.
type Checkout struct {
	SessionID string
	URL       string
}

// Gateway is an external payment processor.
type Gateway interface {
	Name() string
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error)
	// ParseEvent verifies and decodes a webhook body. Undecodable or
	// unsigned payloads yield ErrMalformedEvent.
	ParseEvent(payload []byte, signature string) (model.PaymentEvent, error)
}

// Registry resolves gateways by processor name.
type Registry struct {
	gateways map[string]Gateway
}

// NewRegistry indexes gateways by their names.
func NewRegistry(gateways ...Gateway) *Registry {
	r := &Registry{gateways: make(map[string]Gateway, len(gateways))}
	for _, g := range gateways {
		r.gateways[g.Name()] = g
	}
	return r
}

// Get returns the gateway registered under name.
func (r *Registry) Get(name string) (Gateway, error) {
	if r != nil {
		if g, ok := r.gateways[name]; ok {
			return g, nil
		}
	}
	return nil, domainErrors.ErrUnsupportedProcessor
}

// Names lists registered processors in alphabetical order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.gateways))
	for name := range r.gateways {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
