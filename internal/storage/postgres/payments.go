package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

func (r *paymentRepository) GetByOrder(ctx context.Context, orderID int64) (*model.OrderPayment, error) {
	const query = `SELECT id, order_id, payment_method, payment_no, total, customer_ip_address, status, paid_at, created_at, updated_at
                   FROM order_payments WHERE order_id=$1`
	var p model.OrderPayment
	err := r.storage.pool.QueryRow(ctx, query, orderID).Scan(
		&p.ID, &p.OrderID, &p.Method, &p.PaymentNo, &p.Total, &p.CustomerIP, &p.Status, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepository) Upsert(ctx context.Context, payment model.OrderPayment) (*model.OrderPayment, error) {
	const query = `INSERT INTO order_payments (order_id, payment_method, payment_no, total, customer_ip_address, status)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   ON CONFLICT (order_id) DO UPDATE
                   SET payment_method = EXCLUDED.payment_method,
                       payment_no = EXCLUDED.payment_no,
                       total = EXCLUDED.total,
                       customer_ip_address = EXCLUDED.customer_ip_address,
                       status = EXCLUDED.status,
                       updated_at = NOW()
                   RETURNING id, created_at, updated_at`
	stored := payment
	err := r.storage.pool.QueryRow(ctx, query,
		payment.OrderID, payment.Method, payment.PaymentNo, payment.Total, payment.CustomerIP, payment.Status,
	).Scan(&stored.ID, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *paymentRepository) ApplySettlement(ctx context.Context, orderID int64, s model.Settlement, at time.Time) error {
	var paidAt *time.Time
	if s.Payment == model.PaymentStatusConfirmed {
		paidAt = &at
	}

	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const updateOrder = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`
		tag, err := tx.Exec(ctx, updateOrder, s.Order, orderID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}

		const updatePayment = `UPDATE order_payments SET status=$1, paid_at=COALESCE(paid_at, $2), updated_at=NOW() WHERE order_id=$3`
		tag, err = tx.Exec(ctx, updatePayment, s.Payment, paidAt, orderID)
		if err != nil {
			return err
		}
		// no payment attempt on record: the order must not move either
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		return nil
	})
}
