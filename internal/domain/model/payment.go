package model

import "time"

// PaymentStatus describes a single payment attempt.
type PaymentStatus string

const (
	PaymentStatusWaiting   PaymentStatus = "waiting"
	PaymentStatusConfirmed PaymentStatus = "confirmed"
	PaymentStatusRejected  PaymentStatus = "rejected"
)

const (
	PaymentMethodStripe  = "stripe"
	PaymentMethodTestPay = "testpay"
)

// Terminal reports whether the attempt is finished.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusConfirmed || s == PaymentStatusRejected
}

// OrderPayment is the single payment record of an order.
type OrderPayment struct {
	ID         int64
	OrderID    int64
	Method     string
	PaymentNo  string
	Total      float64
	CustomerIP string
	Status     PaymentStatus
	PaidAt     *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Settlement is the pair of statuses a payment outcome moves an order and its payment into.
type Settlement struct {
	Order   OrderStatus
	Payment PaymentStatus
}

var (
	SettlementConfirmed = Settlement{Order: OrderStatusFulfilled, Payment: PaymentStatusConfirmed}
	SettlementRejected  = Settlement{Order: OrderStatusUnfulfilled, Payment: PaymentStatusRejected}
)
