package payment

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/goccy/go-json"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
	"go.uber.org/zap"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

const (
	stripeCurrency      = "usd"
	orderTokenMetadata  = "order_token"
	paymentSuccessPath  = "/orders/payment_success"
	paymentErrorPath    = "/orders/payment_error"
	checkoutLineDivider = ","
)

// StripeSettings configures the Stripe gateway.
type StripeSettings struct {
	SecretKey     string
	WebhookSecret string
	BaseURL       string
}

type sessionCreator func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)

// StripeGateway opens Stripe checkout sessions and decodes Stripe webhooks.
type StripeGateway struct {
	settings   StripeSettings
	newSession sessionCreator
	logger     *zap.Logger
}

// NewStripeGateway builds a gateway backed by the Stripe API.
func NewStripeGateway(settings StripeSettings, logger *zap.Logger) *StripeGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := session.Client{B: stripe.GetBackend(stripe.APIBackend), Key: settings.SecretKey}
	return &StripeGateway{
		settings:   settings,
		newSession: client.New,
		logger:     logger.Named("stripe"),
	}
}

// Name returns the processor name used in routes.
func (g *StripeGateway) Name() string {
	return model.PaymentMethodStripe
}

// CreateCheckout opens a checkout session charging the order total. The
// order token travels in the payment intent metadata and comes back with
// every payment_intent webhook.
func (g *StripeGateway) CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error) {
	if g.settings.SecretKey == "" {
		return nil, ErrNotConfigured
	}
	if req.Order == nil {
		return nil, domainErrors.ErrInvalidOrder
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(g.settings.BaseURL + paymentSuccessPath),
		CancelURL:          stripe.String(g.settings.BaseURL + paymentErrorPath),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(stripeCurrency),
				UnitAmount: stripe.Int64(toCents(req.Order.Total)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(lineItemName(req.Order)),
				},
			},
			Quantity: stripe.Int64(1),
		}},
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: map[string]string{orderTokenMetadata: req.Order.Token},
		},
	}
	params.Context = ctx
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
		params.PaymentIntentData.ReceiptEmail = stripe.String(req.CustomerEmail)
	}

	s, err := g.newSession(params)
	if err != nil {
		return nil, fmt.Errorf("create stripe checkout session: %w", err)
	}

	g.logger.Info("checkout session created", zap.String("session_id", s.ID), zap.String("token", req.Order.Token))
	return &Checkout{SessionID: s.ID, URL: s.URL}, nil
}

type stripeEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			Metadata map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// ParseEvent decodes a webhook body. The Stripe-Signature header is checked
// when a webhook secret is configured. Only undecodable bodies are malformed;
// missing fields come back empty and are ignored downstream.
func (g *StripeGateway) ParseEvent(payload []byte, signature string) (model.PaymentEvent, error) {
	if g.settings.WebhookSecret != "" {
		if err := webhook.ValidatePayload(payload, signature, g.settings.WebhookSecret); err != nil {
			g.logger.Warn("webhook signature rejected", zap.Error(err))
			return model.PaymentEvent{}, fmt.Errorf("%w: %v", domainErrors.ErrMalformedEvent, err)
		}
	}

	var raw stripeEvent
	if err := json.Unmarshal(payload, &raw); err != nil {
		return model.PaymentEvent{}, fmt.Errorf("%w: %v", domainErrors.ErrMalformedEvent, err)
	}

	return model.PaymentEvent{
		ID:         raw.ID,
		Type:       model.PaymentEventType(raw.Type),
		OrderToken: raw.Data.Object.Metadata[orderTokenMetadata],
	}, nil
}

func lineItemName(o *model.Order) string {
	names := make([]string, 0, len(o.Lines))
	for _, line := range o.Lines {
		names = append(names, line.ProductName)
	}
	if len(names) == 0 {
		return "Order " + o.Token
	}
	return strings.Join(names, checkoutLineDivider)
}

func toCents(total float64) int64 {
	return int64(math.Round(total * 100))
}
