package model

import "time"

// OrderStatus describes order lifecycle.
type OrderStatus string

const (
	OrderStatusUnfulfilled OrderStatus = "unfulfilled"
	OrderStatusFulfilled   OrderStatus = "fulfilled"
	OrderStatusCanceled    OrderStatus = "canceled"
	OrderStatusCompleted   OrderStatus = "completed"
)

// ShipStatus describes delivery progress of an order.
type ShipStatus string

const (
	ShipStatusNotShipped ShipStatus = "not_shipped"
	ShipStatusShipped    ShipStatus = "shipped"
	ShipStatusReceived   ShipStatus = "received"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusUnfulfilled: {OrderStatusFulfilled, OrderStatusCanceled},
	OrderStatusFulfilled:   {OrderStatusCompleted},
}

// CanTransition reports whether an order may move from s to next.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s OrderStatus) Terminal() bool {
	return len(orderTransitions[s]) == 0
}

// Order is a checked out cart owned by a user.
type Order struct {
	ID         int64
	Token      string
	UserID     int64
	Total      float64
	Status     OrderStatus
	ShipStatus ShipStatus
	Lines      []OrderLine
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OrderLine is a price snapshot of a product at checkout time.
type OrderLine struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductName string
	Quantity    int
	UnitPrice   float64
}

// CartItem is a product requested at checkout.
type CartItem struct {
	ProductID int64
	Quantity  int
}

// OwnedBy reports whether the order belongs to the user.
func (o *Order) OwnedBy(userID int64) bool {
	return o != nil && o.UserID == userID
}

// Payable reports whether a payment may be initiated for the order.
func (o *Order) Payable() bool {
	return o.Status == OrderStatusUnfulfilled
}

// Accepts reports whether a payment settlement may be applied to the order.
// A confirmed settlement is idempotent for an already fulfilled order, a
// rejected one only applies while the order still waits for payment.
func (o *Order) Accepts(s Settlement) bool {
	switch s.Order {
	case OrderStatusFulfilled:
		return o.Status == OrderStatusFulfilled || o.Status.CanTransition(OrderStatusFulfilled)
	case OrderStatusUnfulfilled:
		return o.Status == OrderStatusUnfulfilled
	default:
		return false
	}
}
