package models

import "github.com/shopspring/decimal"

// TopSeller is one row of the best-seller listing, ranked by units sold
// across non-cancelled orders.
type TopSeller struct {
	ID         int64           `json:"id" db:"id"`
	Name       string          `json:"name" db:"name"`
	Photo      *string         `json:"photo,omitempty" db:"photoProduct"`
	Price      decimal.Decimal `json:"price" db:"price"`
	Stock      int             `json:"stock" db:"stock"`
	TotalSold  int             `json:"totalSold" db:"total_sold"`
	OrderCount int             `json:"orderCount" db:"order_count"`
}

// SalesSummary aggregates completed orders, with a same-day slice.
type SalesSummary struct {
	TotalOrders       int             `json:"totalOrders"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
	TodayOrders       int             `json:"todayOrders"`
	TodayRevenue      decimal.Decimal `json:"todayRevenue"`
}
