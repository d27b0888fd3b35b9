package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/adapter/payment"
	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Checkout handles POST /orders.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	items := make([]model.CartItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, model.CartItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	order, err := h.facade.Checkout(c.Request.Context(), CurrentUserID(c), items)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidOrder) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// List handles GET /orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}

	c.JSON(http.StatusOK, response)
}

// Show handles GET /orders/:token.
func (h *OrderHandler) Show(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), CurrentUserID(c), c.Param("token"))
	if err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Pay handles POST /orders/pay/:processor.
func (h *OrderHandler) Pay(c *gin.Context) {
	var req dto.PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	checkout, err := h.facade.Pay(c.Request.Context(), CurrentUserID(c), c.Param("processor"), req.Token, c.ClientIP())
	if err != nil {
		if errors.Is(err, payment.ErrNotConfigured) {
			c.Status(http.StatusServiceUnavailable)
			return
		}
		writeOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PayResponse{SessionID: checkout.SessionID, URL: checkout.URL})
}

// TestPay handles GET /orders/pay/:token/testpay.
func (h *OrderHandler) TestPay(c *gin.Context) {
	order, err := h.facade.TestPay(c.Request.Context(), CurrentUserID(c), c.Param("token"), c.ClientIP())
	if err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Cancel handles GET /orders/cancel/:token.
func (h *OrderHandler) Cancel(c *gin.Context) {
	order, err := h.facade.CancelOrder(c.Request.Context(), CurrentUserID(c), c.Param("token"))
	if err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Receive handles GET /orders/receive/:token.
func (h *OrderHandler) Receive(c *gin.Context) {
	order, err := h.facade.ReceiveOrder(c.Request.Context(), CurrentUserID(c), c.Param("token"))
	if err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

func writeOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound), errors.Is(err, domainErrors.ErrUnsupportedProcessor):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrForbidden):
		c.Status(http.StatusForbidden)
	case errors.Is(err, domainErrors.ErrCannotPay), errors.Is(err, domainErrors.ErrInvalidTransition):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: err.Error()})
	default:
		c.Status(http.StatusInternalServerError)
	}
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		Token:      order.Token,
		Status:     string(order.Status),
		ShipStatus: string(order.ShipStatus),
		Total:      order.Total,
		CreatedAt:  order.CreatedAt,
	}
	for _, l := range order.Lines {
		resp.Lines = append(resp.Lines, dto.OrderLineResponse{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		})
	}
	return resp
}
