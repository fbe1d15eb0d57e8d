package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductSummary is one row of a product listing or search result.
// MatchPriority carries the search tier (1 exact, 2 prefix, 3 substring,
// 4 broad-LIKE fallback, 5 description-only in full search).
// AverageRating is nil when the product has no ratings yet; only the
// presentation layer turns that into 0.0.
type ProductSummary struct {
	ID            int64           `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	Description   string          `json:"description" db:"description"`
	Price         decimal.Decimal `json:"price" db:"price"`
	Stock         int             `json:"stock" db:"stock"`
	Photo         *string         `json:"photo,omitempty" db:"photoProduct"`
	ShopID        int64           `json:"shopId" db:"shopId"`
	ShopName      string          `json:"shopName" db:"shop_name"`
	AverageRating *float64        `json:"averageRating,omitempty"`
	RatingCount   int             `json:"ratingCount"`
	MatchPriority int             `json:"-"`
}

// ProductDetail is the single-product view, with timestamps.
type ProductDetail struct {
	ProductSummary
	CreatedAt time.Time `json:"createdAt" db:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" db:"updatedAt"`
}

// ProductSort selects the ordering for GetAllProducts.
type ProductSort string

const (
	SortNewest    ProductSort = "newest"
	SortPriceLow  ProductSort = "price_low"
	SortPriceHigh ProductSort = "price_high"
	SortRating    ProductSort = "rating"
)
