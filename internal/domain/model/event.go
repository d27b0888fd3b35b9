package model

// PaymentEventType is the event name reported by the payment processor.
type PaymentEventType string

const (
	PaymentEventSucceeded PaymentEventType = "payment_intent.succeeded"
	PaymentEventCanceled  PaymentEventType = "payment_intent.canceled"
	PaymentEventFailed    PaymentEventType = "payment_intent.payment_failed"
)

// Settlement maps the event onto order and payment statuses. Unknown types report false.
func (t PaymentEventType) Settlement() (Settlement, bool) {
	switch t {
	case PaymentEventSucceeded:
		return SettlementConfirmed, true
	case PaymentEventCanceled, PaymentEventFailed:
		return SettlementRejected, true
	default:
		return Settlement{}, false
	}
}

// PaymentEvent is a webhook notification reduced to the fields the shop acts on.
type PaymentEvent struct {
	ID         string
	Type       PaymentEventType
	OrderToken string
}

// WebhookOutcome tells whether a payment event changed any state.
type WebhookOutcome string

const (
	WebhookApplied WebhookOutcome = "applied"
	WebhookIgnored WebhookOutcome = "ignored"
)
