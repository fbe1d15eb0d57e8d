package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is the model for the 'Cart' table. At most one per user; created
// lazily on the first add-to-cart and kept when its items are cleared.
type Cart struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"userId"`
	CreatedAt time.Time `json:"createdAt" db:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" db:"updatedAt"`
}

// CartItem is one cart line joined with its product. Subtotal is computed
// from the current product price, never stored.
type CartItem struct {
	ID          int64           `json:"id" db:"id"`
	ProductID   int64           `json:"productId" db:"productId"`
	ProductName string          `json:"productName" db:"product_name"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Stock       int             `json:"stock" db:"stock"`
	Photo       *string         `json:"photo,omitempty" db:"photoProduct"`
	ShopID      int64           `json:"shopId" db:"shopId"`
	ShopName    string          `json:"shopName" db:"shop_name"`
	Quantity    int             `json:"quantity" db:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	CreatedAt   time.Time       `json:"createdAt" db:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updatedAt"`
}

// CartTotal summarizes a cart: total amount, distinct lines, summed quantity.
type CartTotal struct {
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	TotalItems    int             `json:"totalItems"`
	TotalQuantity int             `json:"totalQuantity"`
}
