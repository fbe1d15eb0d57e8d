package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ayambakarnusantara/action-server/internal/models"
)

// GetTopSellingProducts ranks products by units sold across every order
// that was not cancelled.
func (s *Store) GetTopSellingProducts(ctx context.Context, limit int) ([]models.TopSeller, error) {
	query := `
	SELECT p.id, p.name, p.photoProduct, p.price, p.stock,
	       SUM(oi.quantity) AS total_sold,
	       COUNT(DISTINCT o.id) AS order_count
	FROM Product p
	JOIN OrderItem oi ON p.id = oi.productId
	JOIN ` + "`Order`" + ` o ON oi.orderId = o.id
	WHERE o.status != ?
	GROUP BY p.id, p.name, p.photoProduct, p.price, p.stock
	ORDER BY total_sold DESC
	LIMIT ?`

	var sellers []models.TopSeller
	err := s.read(ctx, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, query, models.OrderStatusCancelled, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		sellers = sellers[:0]
		for rows.Next() {
			var ts models.TopSeller
			if err := rows.Scan(&ts.ID, &ts.Name, &ts.Photo, &ts.Price, &ts.Stock,
				&ts.TotalSold, &ts.OrderCount); err != nil {
				return err
			}
			sellers = append(sellers, ts)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("top selling products: %w", err)
	}
	return sellers, nil
}

// GetSalesSummary aggregates completed orders, plus the slice of them
// created today (server date).
func (s *Store) GetSalesSummary(ctx context.Context) (*models.SalesSummary, error) {
	totalQuery := `
	SELECT COUNT(id) AS total_orders,
	       SUM(totalAmount) AS total_revenue,
	       AVG(totalAmount) AS average_order_value
	FROM ` + "`Order`" + `
	WHERE status = ?`

	todayQuery := `
	SELECT COUNT(id) AS today_orders,
	       SUM(totalAmount) AS today_revenue
	FROM ` + "`Order`" + `
	WHERE status = ? AND DATE(createdAt) = CURDATE()`

	summary := &models.SalesSummary{
		TotalRevenue:      decimal.Zero,
		AverageOrderValue: decimal.Zero,
		TodayRevenue:      decimal.Zero,
	}
	err := s.read(ctx, func(ctx context.Context) error {
		var revenue, avg decimal.NullDecimal
		err := s.db.QueryRowContext(ctx, totalQuery, models.OrderStatusCompleted).
			Scan(&summary.TotalOrders, &revenue, &avg)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if summary.TotalOrders == 0 {
			return nil
		}
		summary.TotalRevenue = revenue.Decimal
		summary.AverageOrderValue = avg.Decimal

		var todayRevenue decimal.NullDecimal
		err = s.db.QueryRowContext(ctx, todayQuery, models.OrderStatusCompleted).
			Scan(&summary.TodayOrders, &todayRevenue)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if todayRevenue.Valid {
			summary.TodayRevenue = todayRevenue.Decimal
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}
	return summary, nil
}
