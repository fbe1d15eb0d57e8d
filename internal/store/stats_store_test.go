package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayambakarnusantara/action-server/internal/models"
)

func TestGetTopSellingProductsExcludesCancelled(t *testing.T) {
	s, mock := newTestStore(t)

	rows := sqlmock.NewRows([]string{
		"id", "name", "photoProduct", "price", "stock", "total_sold", "order_count",
	}).AddRow(1, "Ayam Bakar", nil, "25000.00", 10, 30, 12)
	mock.ExpectQuery("SUM").
		WithArgs(models.OrderStatusCancelled, 5).
		WillReturnRows(rows)

	sellers, err := s.GetTopSellingProducts(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, sellers, 1)
	assert.Equal(t, 30, sellers[0].TotalSold)
	assert.Equal(t, 12, sellers[0].OrderCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSalesSummaryWithNoCompletedOrders(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery("total_orders").
		WithArgs(models.OrderStatusCompleted).
		WillReturnRows(sqlmock.NewRows([]string{"total_orders", "total_revenue", "average_order_value"}).
			AddRow(0, nil, nil))

	summary, err := s.GetSalesSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalOrders)
	assert.True(t, summary.TotalRevenue.IsZero())
	assert.True(t, summary.AverageOrderValue.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSalesSummaryIncludesToday(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery("total_orders").
		WithArgs(models.OrderStatusCompleted).
		WillReturnRows(sqlmock.NewRows([]string{"total_orders", "total_revenue", "average_order_value"}).
			AddRow(8, "440000.00", "55000.00"))
	mock.ExpectQuery("today_orders").
		WithArgs(models.OrderStatusCompleted).
		WillReturnRows(sqlmock.NewRows([]string{"today_orders", "today_revenue"}).
			AddRow(2, "110000.00"))

	summary, err := s.GetSalesSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, summary.TotalOrders)
	assert.Equal(t, "440000", summary.TotalRevenue.String())
	assert.Equal(t, 2, summary.TodayOrders)
	assert.Equal(t, "110000", summary.TodayRevenue.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
