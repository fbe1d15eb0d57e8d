package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ayambakarnusantara/action-server/internal/database"
	"github.com/ayambakarnusantara/action-server/internal/models"
)

// GetPaymentByOrderID returns the order's payment, or database.ErrNotFound
// when none has been created yet.
func (s *Store) GetPaymentByOrderID(ctx context.Context, orderID int64) (*models.Payment, error) {
	query := `
	SELECT p.id, p.orderId, p.amount, p.paymentType, p.vaNumber,
	       p.status, p.statusOrder, p.expiryTime, p.createdAt
	FROM Payment p
	WHERE p.orderId = ?`

	var p models.Payment
	err := s.read(ctx, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, query, orderID).Scan(
			&p.ID, &p.OrderID, &p.Amount, &p.PaymentType, &p.VANumber,
			&p.Status, &p.StatusOrder, &p.ExpiryTime, &p.CreatedAt,
		)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get payment by order id: %w", err)
	}
	return &p, nil
}

// GetPaymentStatus returns the compact status view for an order's payment,
// with the derived expiry flag and, for a still-pending payment, the time
// left before it lapses.
func (s *Store) GetPaymentStatus(ctx context.Context, orderID int64) (*models.PaymentStatus, error) {
	payment, err := s.GetPaymentByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	status := &models.PaymentStatus{
		Status:      payment.Status,
		StatusOrder: payment.StatusOrder,
		ExpiryTime:  payment.ExpiryTime,
	}
	if payment.ExpiryTime != nil {
		now := s.now()
		expired := payment.Expired(now)
		status.IsExpired = &expired
		if !expired && payment.Status != models.PaymentStatusPaid {
			remaining := payment.ExpiryTime.Sub(now)
			status.TimeRemaining = &remaining
		}
	}
	return status, nil
}

// CreatePayment opens a pending payment for an order. Payments are
// one-to-one with orders. A zero expiry defaults to 24 hours out.
func (s *Store) CreatePayment(ctx context.Context, orderID int64, paymentType string, amount decimal.Decimal, vaNumber *string, expiryTime *time.Time) error {
	if expiryTime == nil {
		t := s.now().Add(24 * time.Hour)
		expiryTime = &t
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO Payment (orderId, amount, paymentType, vaNumber, status, statusOrder,
			                      expiryTime, createdAt, updatedAt)
			 VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
			orderID, amount, paymentType, vaNumber,
			models.PaymentStatusPending, models.PaymentStatusPending, expiryTime)
		return err
	})
	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

// UpdatePaymentStatus transitions an order's payment status, and optionally
// its secondary order-side status. Marking a payment paid also moves the
// parent Order to paid inside the same transaction; the two writes can
// never be observed diverged. Writing an already-set status is a no-op in
// effect, so the transition is safe to repeat.
func (s *Store) UpdatePaymentStatus(ctx context.Context, orderID int64, status string, statusOrder *string) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		if statusOrder != nil {
			_, err = tx.ExecContext(ctx,
				`UPDATE Payment SET status = ?, statusOrder = ?, updatedAt = NOW() WHERE orderId = ?`,
				status, *statusOrder, orderID)
		} else {
			_, err = tx.ExecContext(ctx,
				`UPDATE Payment SET status = ?, updatedAt = NOW() WHERE orderId = ?`,
				status, orderID)
		}
		if err != nil {
			return err
		}

		if status == models.PaymentStatusPaid {
			_, err = tx.ExecContext(ctx,
				`UPDATE `+"`Order`"+` SET status = ?, updatedAt = NOW() WHERE id = ?`,
				models.OrderStatusPaid, orderID)
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	return nil
}
