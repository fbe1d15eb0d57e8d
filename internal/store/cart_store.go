package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ayambakarnusantara/action-server/internal/database"
	"github.com/ayambakarnusantara/action-server/internal/models"
)

// Cart and checkout failure modes the action layer turns into specific
// user-facing messages.
var (
	// ErrInsufficientStock indicates the requested quantity exceeds what is
	// on hand, counting what the cart already holds.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrEmptyCart indicates checkout was attempted on a cart with no items.
	ErrEmptyCart = errors.New("cart is empty")
)

// GetUserCart returns the user's cart contents with per-line subtotals
// computed from current prices. A user without a cart gets an empty slice.
func (s *Store) GetUserCart(ctx context.Context, userID int64) ([]models.CartItem, error) {
	query := `
	SELECT ci.id, ci.productId, p.name AS product_name, p.price, p.stock, p.photoProduct,
	       s.id AS shopId, s.name AS shop_name,
	       ci.quantity, ci.createdAt, ci.updatedAt
	FROM CartItem ci
	JOIN Product p ON ci.productId = p.id
	JOIN Shop s ON p.shopId = s.id
	WHERE ci.cartId = ?
	ORDER BY ci.updatedAt DESC`

	var items []models.CartItem
	err := s.read(ctx, func(ctx context.Context) error {
		cartID, err := s.cartIDForUser(ctx, userID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				items = nil
				return nil
			}
			return err
		}

		rows, err := s.db.QueryContext(ctx, query, cartID)
		if err != nil {
			return err
		}
		defer rows.Close()

		items = items[:0]
		for rows.Next() {
			var it models.CartItem
			if err := rows.Scan(&it.ID, &it.ProductID, &it.ProductName, &it.Price, &it.Stock,
				&it.Photo, &it.ShopID, &it.ShopName,
				&it.Quantity, &it.CreatedAt, &it.UpdatedAt); err != nil {
				return err
			}
			it.Subtotal = it.Price.Mul(decimalFromInt(it.Quantity))
			items = append(items, it)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("get user cart: %w", err)
	}
	return items, nil
}

// GetCartTotal summarizes the user's cart. A missing cart is an empty cart.
func (s *Store) GetCartTotal(ctx context.Context, userID int64) (models.CartTotal, error) {
	var total models.CartTotal
	items, err := s.GetUserCart(ctx, userID)
	if err != nil {
		return total, err
	}
	for _, it := range items {
		total.TotalAmount = total.TotalAmount.Add(it.Subtotal)
		total.TotalItems++
		total.TotalQuantity += it.Quantity
	}
	return total, nil
}

// AddToCart puts quantity units of a product into the user's cart, creating
// the cart lazily and folding repeat adds into the existing line. The stock
// guard is cumulative: what the cart already holds plus the new request must
// fit within current stock, so a cart can never ask for more than exists.
func (s *Store) AddToCart(ctx context.Context, userID, productID int64, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be positive, got %d", quantity)
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var stock int
		err := tx.QueryRowContext(ctx,
			`SELECT stock FROM Product WHERE id = ? FOR UPDATE`, productID).Scan(&stock)
		if err == sql.ErrNoRows {
			return database.ErrNotFound
		}
		if err != nil {
			return err
		}

		cartID, err := s.getOrCreateCartID(ctx, tx, userID)
		if err != nil {
			return err
		}

		var itemID int64
		var existing int
		err = tx.QueryRowContext(ctx,
			`SELECT id, quantity FROM CartItem WHERE cartId = ? AND productId = ?`,
			cartID, productID).Scan(&itemID, &existing)
		if err != nil && err != sql.ErrNoRows {
			return err
		}

		if stock < existing+quantity {
			return ErrInsufficientStock
		}

		if err == sql.ErrNoRows {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO CartItem (cartId, productId, quantity, createdAt, updatedAt)
				 VALUES (?, ?, ?, NOW(), NOW())`,
				cartID, productID, quantity)
			return err
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE CartItem SET quantity = ?, updatedAt = NOW() WHERE id = ?`,
			existing+quantity, itemID)
		return err
	})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) || errors.Is(err, ErrInsufficientStock) {
			return err
		}
		return fmt.Errorf("add to cart: %w", err)
	}
	return nil
}

// UpdateCartItem sets a cart line's quantity; zero or negative removes the
// line entirely.
func (s *Store) UpdateCartItem(ctx context.Context, cartItemID int64, quantity int) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if quantity <= 0 {
			_, err := tx.ExecContext(ctx, `DELETE FROM CartItem WHERE id = ?`, cartItemID)
			return err
		}
		_, err := tx.ExecContext(ctx,
			`UPDATE CartItem SET quantity = ?, updatedAt = NOW() WHERE id = ?`,
			quantity, cartItemID)
		return err
	})
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	return nil
}

// RemoveFromCart deletes one cart line.
func (s *Store) RemoveFromCart(ctx context.Context, cartItemID int64) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM CartItem WHERE id = ?`, cartItemID)
		return err
	})
	if err != nil {
		return fmt.Errorf("remove from cart: %w", err)
	}
	return nil
}

// ClearCart empties the user's cart, keeping the Cart row itself. A user
// without a cart counts as already cleared.
func (s *Store) ClearCart(ctx context.Context, userID int64) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var cartID int64
		err := tx.QueryRowContext(ctx, `SELECT id FROM Cart WHERE userId = ?`, userID).Scan(&cartID)
		if err == sql.ErrNoRows {
			return nil
		}
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `DELETE FROM CartItem WHERE cartId = ?`, cartID)
		return err
	})
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// cartIDForUser finds the user's cart outside a transaction. Returns
// sql.ErrNoRows when the user has no cart.
func (s *Store) cartIDForUser(ctx context.Context, userID int64) (int64, error) {
	var cartID int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM Cart WHERE userId = ?`, userID).Scan(&cartID)
	return cartID, err
}

// getOrCreateCartID finds the user's cart or creates it, inside the caller's
// transaction.
func (s *Store) getOrCreateCartID(ctx context.Context, tx *sql.Tx, userID int64) (int64, error) {
	var cartID int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM Cart WHERE userId = ?`, userID).Scan(&cartID)
	if err == nil {
		return cartID, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO Cart (userId, createdAt, updatedAt) VALUES (?, NOW(), NOW())`, userID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
