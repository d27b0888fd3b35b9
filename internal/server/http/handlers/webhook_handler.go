package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

const (
	signatureHeader = "Stripe-Signature"
	maxWebhookBody  = 256 << 10
)

// WebhookHandler accepts payment processor notifications.
type WebhookHandler struct {
	facade WebhookFacade
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(facade WebhookFacade) *WebhookHandler {
	return &WebhookHandler{facade: facade}
}

// Payment handles POST /orders/pay/:processor/webhook. Anything but a
// storage failure is acknowledged so the processor stops retrying.
func (h *WebhookHandler) Payment(c *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusBadRequest)
		return
	}

	outcome, err := h.facade.PaymentWebhook(c.Request.Context(), c.Param("processor"), payload, c.GetHeader(signatureHeader))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrMalformedEvent):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrUnsupportedProcessor):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.WebhookResponse{Outcome: string(outcome)})
}
