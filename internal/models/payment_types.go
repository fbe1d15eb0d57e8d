package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment status values.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusSuccess  = "success"
	PaymentStatusFailed   = "failed"
	PaymentStatusExpired  = "expired"
	PaymentStatusCanceled = "canceled"
)

// Payment is the model for the 'Payment' table, one-to-one with Order.
// PaymentType and VANumber stay nil until the user picks a method.
type Payment struct {
	ID          int64           `json:"id" db:"id"`
	OrderID     int64           `json:"orderId" db:"orderId"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	PaymentType *string         `json:"paymentType,omitempty" db:"paymentType"`
	VANumber    *string         `json:"vaNumber,omitempty" db:"vaNumber"`
	Status      string          `json:"status" db:"status"`
	StatusOrder string          `json:"statusOrder" db:"statusOrder"`
	ExpiryTime  *time.Time      `json:"expiryTime,omitempty" db:"expiryTime"`
	CreatedAt   time.Time       `json:"createdAt" db:"createdAt"`
}

// Expired reports whether the payment window has lapsed without the payment
// being made. Derived, never persisted.
func (p Payment) Expired(now time.Time) bool {
	return p.ExpiryTime != nil && now.After(*p.ExpiryTime) && p.Status != PaymentStatusPaid
}

// PaymentStatus is the compact status view used by the payment-status action.
type PaymentStatus struct {
	Status        string         `json:"status"`
	StatusOrder   string         `json:"statusOrder"`
	ExpiryTime    *time.Time     `json:"expiryTime,omitempty"`
	IsExpired     *bool          `json:"isExpired,omitempty"`
	TimeRemaining *time.Duration `json:"timeRemaining,omitempty"`
}
