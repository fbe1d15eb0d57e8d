package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ayambakarnusantara/action-server/internal/database"
	"github.com/ayambakarnusantara/action-server/internal/models"
)

// checkoutLine is one cart line read under lock during checkout.
type checkoutLine struct {
	productID int64
	quantity  int
	price     decimal.Decimal
	stock     int
}

// CreateOrderFromCart turns the user's cart into an order as one atomic unit:
// the Order row, one OrderItem per cart line with the price frozen at this
// moment, the stock decrements, and the cart clear all commit together or
// not at all. Product rows are locked for the duration and the decrement is
// additionally guarded with stock >= quantity, so two orders racing for the
// last unit cannot both win.
//
// Returns the new order's id, ErrEmptyCart when there is nothing to order,
// or ErrInsufficientStock when any line outgrew its product's stock since it
// was added.
func (s *Store) CreateOrderFromCart(ctx context.Context, userID int64) (int64, error) {
	var orderID int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var cartID int64
		err := tx.QueryRowContext(ctx, `SELECT id FROM Cart WHERE userId = ?`, userID).Scan(&cartID)
		if err == sql.ErrNoRows {
			return ErrEmptyCart
		}
		if err != nil {
			return err
		}

		lines, err := lockCartLines(ctx, tx, cartID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		total := decimal.Zero
		for _, line := range lines {
			if line.stock < line.quantity {
				return fmt.Errorf("product %d: %w", line.productID, ErrInsufficientStock)
			}
			total = total.Add(line.price.Mul(decimalFromInt(line.quantity)))
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO `+"`Order`"+` (userId, totalAmount, status, createdAt, updatedAt)
			 VALUES (?, ?, ?, NOW(), NOW())`,
			userID, total, models.OrderStatusPending)
		if err != nil {
			return err
		}
		orderID, err = res.LastInsertId()
		if err != nil {
			return err
		}

		for _, line := range lines {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO OrderItem (orderId, productId, quantity, price, createdAt, updatedAt)
				 VALUES (?, ?, ?, ?, NOW(), NOW())`,
				orderID, line.productID, line.quantity, line.price)
			if err != nil {
				return err
			}

			res, err := tx.ExecContext(ctx,
				`UPDATE Product SET stock = stock - ? WHERE id = ? AND stock >= ?`,
				line.quantity, line.productID, line.quantity)
			if err != nil {
				return err
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if affected == 0 {
				return fmt.Errorf("product %d: %w", line.productID, ErrInsufficientStock)
			}
		}

		_, err = tx.ExecContext(ctx, `DELETE FROM CartItem WHERE cartId = ?`, cartID)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrEmptyCart) || errors.Is(err, ErrInsufficientStock) {
			return 0, err
		}
		return 0, fmt.Errorf("create order from cart: %w", err)
	}
	return orderID, nil
}

// lockCartLines reads the cart's lines joined with their products, locking
// the product rows until the surrounding transaction ends.
func lockCartLines(ctx context.Context, tx *sql.Tx, cartID int64) ([]checkoutLine, error) {
	rows, err := tx.QueryContext(ctx, `
	SELECT ci.productId, ci.quantity, p.price, p.stock
	FROM CartItem ci
	JOIN Product p ON ci.productId = p.id
	WHERE ci.cartId = ?
	FOR UPDATE`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []checkoutLine
	for rows.Next() {
		var line checkoutLine
		if err := rows.Scan(&line.productID, &line.quantity, &line.price, &line.stock); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// GetOrderByID returns the full order view: buyer, items, and payment when
// one exists. Returns database.ErrNotFound for an unknown id.
func (s *Store) GetOrderByID(ctx context.Context, orderID int64) (*models.OrderDetail, error) {
	orderQuery := `
	SELECT o.id, o.userId, o.totalAmount, o.status, o.createdAt, o.updatedAt,
	       u.username, u.fullName, u.email, u.phoneNumber, u.address
	FROM ` + "`Order`" + ` o
	JOIN User u ON o.userId = u.id
	WHERE o.id = ?`

	itemsQuery := `
	SELECT oi.id, oi.orderId, oi.productId, p.name AS product_name, p.photoProduct,
	       oi.quantity, oi.price
	FROM OrderItem oi
	JOIN Product p ON oi.productId = p.id
	WHERE oi.orderId = ?`

	var detail models.OrderDetail
	err := s.read(ctx, func(ctx context.Context) error {
		err := s.db.QueryRowContext(ctx, orderQuery, orderID).Scan(
			&detail.ID, &detail.UserID, &detail.TotalAmount, &detail.Status,
			&detail.CreatedAt, &detail.UpdatedAt,
			&detail.Username, &detail.FullName, &detail.Email,
			&detail.PhoneNumber, &detail.Address,
		)
		if err != nil {
			return err
		}

		rows, err := s.db.QueryContext(ctx, itemsQuery, orderID)
		if err != nil {
			return err
		}
		defer rows.Close()

		detail.Items = detail.Items[:0]
		for rows.Next() {
			var it models.OrderItem
			if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName,
				&it.ProductPhoto, &it.Quantity, &it.Price); err != nil {
				return err
			}
			detail.Items = append(detail.Items, it)
		}
		return rows.Err()
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order by id: %w", err)
	}

	payment, err := s.GetPaymentByOrderID(ctx, orderID)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}
	detail.Payment = payment
	return &detail, nil
}

// GetOrderStatus returns just the status string for an order.
func (s *Store) GetOrderStatus(ctx context.Context, orderID int64) (string, error) {
	var status string
	err := s.read(ctx, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx,
			`SELECT status FROM `+"`Order`"+` WHERE id = ?`, orderID).Scan(&status)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return "", database.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get order status: %w", err)
	}
	return status, nil
}

// GetRecentOrders lists the latest orders across all users, with buyer info
// and item counts.
func (s *Store) GetRecentOrders(ctx context.Context, limit, offset int) ([]models.OrderSummary, error) {
	query := `
	SELECT o.id, o.totalAmount, o.status, o.createdAt, o.updatedAt,
	       u.username, u.fullName, u.email,
	       COUNT(oi.id) AS total_items,
	       MAX(pay.status) AS payment_status
	FROM ` + "`Order`" + ` o
	JOIN User u ON o.userId = u.id
	JOIN OrderItem oi ON o.id = oi.orderId
	LEFT JOIN Payment pay ON o.id = pay.orderId
	GROUP BY o.id, o.totalAmount, o.status, o.createdAt, o.updatedAt,
	         u.username, u.fullName, u.email
	ORDER BY o.createdAt DESC
	LIMIT ? OFFSET ?`

	var orders []models.OrderSummary
	err := s.read(ctx, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, query, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()

		orders = orders[:0]
		for rows.Next() {
			var o models.OrderSummary
			if err := rows.Scan(&o.ID, &o.TotalAmount, &o.Status, &o.CreatedAt, &o.UpdatedAt,
				&o.Username, &o.FullName, &o.Email,
				&o.TotalItems, &o.PaymentStatus); err != nil {
				return err
			}
			orders = append(orders, o)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("get recent orders: %w", err)
	}
	return orders, nil
}

// GetUserOrders lists a user's orders, newest first, with item counts and
// the payment status when a payment exists.
func (s *Store) GetUserOrders(ctx context.Context, userID int64, limit, offset int) ([]models.OrderSummary, error) {
	query := `
	SELECT o.id, o.totalAmount, o.status, o.createdAt, o.updatedAt,
	       COUNT(oi.id) AS total_items,
	       MAX(pay.status) AS payment_status
	FROM ` + "`Order`" + ` o
	JOIN OrderItem oi ON o.id = oi.orderId
	LEFT JOIN Payment pay ON o.id = pay.orderId
	WHERE o.userId = ?
	GROUP BY o.id, o.totalAmount, o.status, o.createdAt, o.updatedAt
	ORDER BY o.createdAt DESC
	LIMIT ? OFFSET ?`

	var orders []models.OrderSummary
	err := s.read(ctx, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, query, userID, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()

		orders = orders[:0]
		for rows.Next() {
			var o models.OrderSummary
			if err := rows.Scan(&o.ID, &o.TotalAmount, &o.Status, &o.CreatedAt, &o.UpdatedAt,
				&o.TotalItems, &o.PaymentStatus); err != nil {
				return err
			}
			orders = append(orders, o)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("get user orders: %w", err)
	}
	return orders, nil
}
