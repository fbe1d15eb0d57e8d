package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayambakarnusantara/action-server/internal/database"
)

func TestCreateOrderFromCartWithoutCart(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM Cart WHERE userId").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := s.CreateOrderFromCart(context.Background(), 7)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderFromCartWithEmptyCart(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM Cart WHERE userId").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"productId", "quantity", "price", "stock"}))
	mock.ExpectRollback()

	_, err := s.CreateOrderFromCart(context.Background(), 7)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderFromCartCommitsEverythingTogether(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM Cart WHERE userId").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"productId", "quantity", "price", "stock"}).
			AddRow(1, 2, "25000.00", 10).
			AddRow(4, 1, "5000.00", 3))
	mock.ExpectExec("INSERT INTO `Order`").
		WithArgs(int64(7), sqlmock.AnyArg(), "pending").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("INSERT INTO OrderItem").
		WithArgs(int64(42), int64(1), 2, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE Product SET stock = stock").
		WithArgs(2, int64(1), 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO OrderItem").
		WithArgs(int64(42), int64(4), 1, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("UPDATE Product SET stock = stock").
		WithArgs(1, int64(4), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM CartItem").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	orderID, err := s.CreateOrderFromCart(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(42), orderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A line whose stock shrank after it was added fails checkout before any
// write happens.
func TestCreateOrderFromCartRejectsStaleCartLine(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM Cart WHERE userId").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"productId", "quantity", "price", "stock"}).
			AddRow(1, 5, "25000.00", 2))
	mock.ExpectRollback()

	_, err := s.CreateOrderFromCart(context.Background(), 7)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The guarded decrement is the second line of defense: when it touches no
// row the whole order rolls back, order row and all.
func TestCreateOrderFromCartRollsBackOnGuardedDecrement(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM Cart WHERE userId").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"productId", "quantity", "price", "stock"}).
			AddRow(1, 2, "25000.00", 2))
	mock.ExpectExec("INSERT INTO `Order`").
		WithArgs(int64(7), sqlmock.AnyArg(), "pending").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("INSERT INTO OrderItem").
		WithArgs(int64(42), int64(1), 2, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE Product SET stock = stock").
		WithArgs(2, int64(1), 2).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := s.CreateOrderFromCart(context.Background(), 7)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrderStatusNotFound(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery("SELECT status FROM").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}))

	_, err := s.GetOrderStatus(context.Background(), 99)
	assert.ErrorIs(t, err, database.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrderByIDToleratesMissingPayment(t *testing.T) {
	s, mock := newTestStore(t)

	now := time.Now()
	mock.ExpectQuery("JOIN User u ON o.userId").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "userId", "totalAmount", "status", "createdAt", "updatedAt",
			"username", "fullName", "email", "phoneNumber", "address",
		}).AddRow(42, 7, "55000.00", "pending", now, now,
			"budi", "Budi Santoso", "budi@example.com", nil, nil))
	mock.ExpectQuery("FROM OrderItem oi").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "orderId", "productId", "product_name", "photoProduct", "quantity", "price",
		}).AddRow(1, 42, 1, "Ayam Bakar", nil, 2, "25000.00"))
	mock.ExpectQuery("FROM Payment p").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "orderId", "amount", "paymentType", "vaNumber",
			"status", "statusOrder", "expiryTime", "createdAt",
		}))

	detail, err := s.GetOrderByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "budi", detail.Username)
	require.Len(t, detail.Items, 1)
	assert.Nil(t, detail.Payment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRecentOrdersIncludesBuyer(t *testing.T) {
	s, mock := newTestStore(t)

	now := time.Now()
	cols := []string{"id", "totalAmount", "status", "createdAt", "updatedAt",
		"username", "fullName", "email", "total_items", "payment_status"}
	mock.ExpectQuery("JOIN User u ON o.userId = u.id").
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(42, "75000.00", "pending", now, now,
				"budi", "Budi Santoso", "budi@example.com", 2, "pending"))

	orders, err := s.GetRecentOrders(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	o := orders[0]
	assert.Equal(t, int64(42), o.ID)
	require.NotNil(t, o.Username)
	assert.Equal(t, "budi", *o.Username)
	require.NotNil(t, o.FullName)
	assert.Equal(t, "Budi Santoso", *o.FullName)
	require.NotNil(t, o.Email)
	assert.Equal(t, "budi@example.com", *o.Email)
	assert.Equal(t, 2, o.TotalItems)
	assert.NoError(t, mock.ExpectationsWereMet())
}
