package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// PaymentAttempt is a freshly initiated payment together with the order it pays for.
type PaymentAttempt struct {
	Order   *model.Order
	Payment *model.OrderPayment
}

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders   repository.OrderRepository
	payments repository.PaymentRepository
	products repository.ProductRepository
	logger   *zap.Logger

	now      func() time.Time
	newToken func() string
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	payments repository.PaymentRepository,
	products repository.ProductRepository,
	logger *zap.Logger,
) *OrderUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderUseCase{
		orders:   orders,
		payments: payments,
		products: products,
		logger:   logger.Named("orders"),
		now:      time.Now,
		newToken: uuid.NewString,
	}
}

// Checkout turns cart items into an unfulfilled order with price snapshots.
func (u *OrderUseCase) Checkout(ctx context.Context, userID int64, items []model.CartItem) (*model.Order, error) {
	if !validateCart(items) {
		return nil, domainErrors.ErrInvalidOrder
	}

	order := model.Order{
		Token:      u.newToken(),
		UserID:     userID,
		Status:     model.OrderStatusUnfulfilled,
		ShipStatus: model.ShipStatusNotShipped,
		Lines:      make([]model.OrderLine, 0, len(items)),
	}

	var total float64
	for _, item := range items {
		product, err := u.products.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return nil, fmt.Errorf("product %d: %w", item.ProductID, domainErrors.ErrInvalidOrder)
			}
			return nil, fmt.Errorf("load product %d: %w", item.ProductID, err)
		}
		if !product.OnSale {
			return nil, fmt.Errorf("product %d is not on sale: %w", item.ProductID, domainErrors.ErrInvalidOrder)
		}
		order.Lines = append(order.Lines, model.OrderLine{
			ProductID:   product.ID,
			ProductName: product.Title,
			Quantity:    item.Quantity,
			UnitPrice:   product.Price,
		})
		total += product.Price * float64(item.Quantity)
	}
	order.Total = roundCents(total)

	created, err := u.orders.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	u.logger.Info("order created",
		zap.String("token", created.Token),
		zap.Int64("user_id", userID),
		zap.Float64("total", created.Total),
	)
	return created, nil
}

// Get returns order details for its owner.
func (u *OrderUseCase) Get(ctx context.Context, userID int64, token string) (*model.Order, error) {
	return u.ownedOrder(ctx, userID, token)
}

// ListByUser returns orders newest first.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// CreateOrUpdatePayment starts a payment for an unfulfilled order. A previous
// attempt is overwritten and reset to waiting.
func (u *OrderUseCase) CreateOrUpdatePayment(ctx context.Context, userID int64, token, method, customerIP string) (*PaymentAttempt, error) {
	order, err := u.ownedOrder(ctx, userID, token)
	if err != nil {
		return nil, err
	}
	if !order.Payable() {
		return nil, domainErrors.ErrCannotPay
	}

	payment, err := u.payments.Upsert(ctx, model.OrderPayment{
		OrderID:    order.ID,
		Method:     method,
		PaymentNo:  fmt.Sprintf("%d%d", u.now().Unix(), userID),
		Total:      order.Total,
		CustomerIP: customerIP,
		Status:     model.PaymentStatusWaiting,
	})
	if err != nil {
		return nil, fmt.Errorf("save payment: %w", err)
	}

	u.logger.Info("payment initiated",
		zap.String("token", order.Token),
		zap.String("method", method),
		zap.String("payment_no", payment.PaymentNo),
	)
	return &PaymentAttempt{Order: order, Payment: payment}, nil
}

// TestPay initiates a payment and confirms it at once.
func (u *OrderUseCase) TestPay(ctx context.Context, userID int64, token, customerIP string) (*model.Order, error) {
	attempt, err := u.CreateOrUpdatePayment(ctx, userID, token, model.PaymentMethodTestPay, customerIP)
	if err != nil {
		return nil, err
	}
	if err := u.payments.ApplySettlement(ctx, attempt.Order.ID, model.SettlementConfirmed, u.now()); err != nil {
		return nil, fmt.Errorf("confirm payment: %w", err)
	}
	order := attempt.Order
	order.Status = model.SettlementConfirmed.Order
	return order, nil
}

// ApplyPaymentWebhook settles the order named by a processor event. Events
// that cannot be matched to a pending order are ignored; only storage
// failures are returned.
func (u *OrderUseCase) ApplyPaymentWebhook(ctx context.Context, event model.PaymentEvent) (model.WebhookOutcome, error) {
	log := u.logger.With(
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("token", event.OrderToken),
	)

	settlement, ok := event.Type.Settlement()
	if !ok {
		log.Debug("payment event skipped")
		return model.WebhookIgnored, nil
	}
	if event.OrderToken == "" {
		log.Warn("payment event without order token")
		return model.WebhookIgnored, nil
	}

	order, err := u.orders.GetByToken(ctx, event.OrderToken)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			log.Warn("payment event for unknown order")
			return model.WebhookIgnored, nil
		}
		return "", fmt.Errorf("load order: %w", err)
	}

	if !order.Accepts(settlement) {
		log.Warn("payment event does not apply to order", zap.String("status", string(order.Status)))
		return model.WebhookIgnored, nil
	}

	if err := u.payments.ApplySettlement(ctx, order.ID, settlement, u.now()); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			log.Warn("no payment attempt recorded for order")
			return model.WebhookIgnored, nil
		}
		return "", fmt.Errorf("apply settlement: %w", err)
	}

	log.Info("payment event applied",
		zap.String("order_status", string(settlement.Order)),
		zap.String("payment_status", string(settlement.Payment)),
	)
	return model.WebhookApplied, nil
}

// Cancel cancels an order that has not been paid yet.
func (u *OrderUseCase) Cancel(ctx context.Context, userID int64, token string) (*model.Order, error) {
	order, err := u.ownedOrder(ctx, userID, token)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransition(model.OrderStatusCanceled) {
		return nil, domainErrors.ErrInvalidTransition
	}
	if err := u.orders.UpdateStatus(ctx, order.ID, model.OrderStatusCanceled, order.ShipStatus); err != nil {
		return nil, fmt.Errorf("cancel order: %w", err)
	}
	order.Status = model.OrderStatusCanceled
	u.logger.Info("order canceled", zap.String("token", order.Token))
	return order, nil
}

// Receive marks a paid order as delivered. Receiving a completed order again changes nothing.
func (u *OrderUseCase) Receive(ctx context.Context, userID int64, token string) (*model.Order, error) {
	order, err := u.ownedOrder(ctx, userID, token)
	if err != nil {
		return nil, err
	}
	if order.Status == model.OrderStatusCompleted {
		return order, nil
	}
	if !order.Status.CanTransition(model.OrderStatusCompleted) {
		return nil, domainErrors.ErrInvalidTransition
	}
	if err := u.orders.UpdateStatus(ctx, order.ID, model.OrderStatusCompleted, model.ShipStatusReceived); err != nil {
		return nil, fmt.Errorf("receive order: %w", err)
	}
	order.Status = model.OrderStatusCompleted
	order.ShipStatus = model.ShipStatusReceived
	u.logger.Info("order received", zap.String("token", order.Token))
	return order, nil
}

func (u *OrderUseCase) ownedOrder(ctx context.Context, userID int64, token string) (*model.Order, error) {
	if !ValidateOrderToken(token) {
		return nil, domainErrors.ErrNotFound
	}
	order, err := u.orders.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if !order.OwnedBy(userID) {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
