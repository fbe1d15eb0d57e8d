package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order status values.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order is the model for the 'Order' table. TotalAmount is frozen at order
// creation; later catalog price changes do not touch it.
type Order struct {
	ID          int64           `json:"id" db:"id"`
	UserID      int64           `json:"userId" db:"userId"`
	TotalAmount decimal.Decimal `json:"totalAmount" db:"totalAmount"`
	Status      string          `json:"status" db:"status"`
	CreatedAt   time.Time       `json:"createdAt" db:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updatedAt"`
}

// OrderItem is one order line. Price is the snapshot taken at order time,
// not a live reference to the product.
type OrderItem struct {
	ID           int64           `json:"id" db:"id"`
	OrderID      int64           `json:"orderId" db:"orderId"`
	ProductID    int64           `json:"productId" db:"productId"`
	ProductName  string          `json:"productName" db:"product_name"`
	ProductPhoto *string         `json:"productPhoto,omitempty" db:"photoProduct"`
	Quantity     int             `json:"quantity" db:"quantity"`
	Price        decimal.Decimal `json:"price" db:"price"`
}

// OrderDetail is the full order view: the order, its buyer, its items and
// its payment if one exists.
type OrderDetail struct {
	Order
	Username    string      `json:"username" db:"username"`
	FullName    string      `json:"fullName" db:"fullName"`
	Email       string      `json:"email" db:"email"`
	PhoneNumber *string     `json:"phoneNumber,omitempty" db:"phoneNumber"`
	Address     *string     `json:"address,omitempty" db:"address"`
	Items       []OrderItem `json:"items"`
	Payment     *Payment    `json:"payment,omitempty"`
}

// OrderSummary is one row of an order listing. The buyer fields are filled
// only by the cross-user listing; per-user listings leave them nil.
type OrderSummary struct {
	ID            int64           `json:"id" db:"id"`
	TotalAmount   decimal.Decimal `json:"totalAmount" db:"totalAmount"`
	Status        string          `json:"status" db:"status"`
	TotalItems    int             `json:"totalItems" db:"total_items"`
	PaymentStatus *string         `json:"paymentStatus,omitempty" db:"payment_status"`
	Username      *string         `json:"username,omitempty" db:"username"`
	FullName      *string         `json:"fullName,omitempty" db:"fullName"`
	Email         *string         `json:"email,omitempty" db:"email"`
	CreatedAt     time.Time       `json:"createdAt" db:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt" db:"updatedAt"`
}
