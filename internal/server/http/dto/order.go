package dto

import "time"

// CheckoutItem is a single cart position.
type CheckoutItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// CheckoutRequest turns a cart into an order.
type CheckoutRequest struct {
	Items []CheckoutItem `json:"items" binding:"required"`
}

// PayRequest names the order to open a checkout page for.
type PayRequest struct {
	Token string `json:"token" binding:"required"`
}

// PayResponse points the customer at the processor's checkout page.
type PayResponse struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// OrderLineResponse describes a purchased product.
type OrderLineResponse struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// OrderResponse describes an order.
type OrderResponse struct {
	Token      string              `json:"token"`
	Status     string              `json:"status"`
	ShipStatus string              `json:"ship_status"`
	Total      float64             `json:"total"`
	Lines      []OrderLineResponse `json:"lines,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}

// WebhookResponse reports what a payment notification changed.
type WebhookResponse struct {
	Outcome string `json:"outcome"`
}
