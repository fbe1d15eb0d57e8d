package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ayambakarnusantara/action-server/internal/database"
	"github.com/ayambakarnusantara/action-server/internal/models"
)

// GetShopByID returns one shop with its admin, average rating, and product
// count, or database.ErrNotFound.
func (s *Store) GetShopByID(ctx context.Context, shopID int64) (*models.Shop, error) {
	return s.getShop(ctx, "get shop by id", `WHERE s.id = ?`, shopID)
}

// GetShopByName returns the first shop whose name contains the term,
// case-insensitively, or database.ErrNotFound.
func (s *Store) GetShopByName(ctx context.Context, name string) (*models.Shop, error) {
	return s.getShop(ctx, "get shop by name", `WHERE LOWER(s.name) LIKE LOWER(?)`, "%"+name+"%")
}

func (s *Store) getShop(ctx context.Context, op, where string, arg any) (*models.Shop, error) {
	query := `
	SELECT s.id, s.name, s.address, s.photoShop, s.createdAt, s.updatedAt,
	       a.id AS adminId, a.username AS admin_username,
	       (SELECT AVG(r.value) FROM Rating r JOIN Product p ON r.productId = p.id
	        WHERE p.shopId = s.id) AS average_rating,
	       (SELECT COUNT(*) FROM Product WHERE shopId = s.id) AS product_count
	FROM Shop s
	JOIN Admin a ON s.adminId = a.id
	` + where + `
	LIMIT 1`

	var shop models.Shop
	err := s.read(ctx, func(ctx context.Context) error {
		var avg sql.NullFloat64
		err := s.db.QueryRowContext(ctx, query, arg).Scan(
			&shop.ID, &shop.Name, &shop.Address, &shop.Photo,
			&shop.CreatedAt, &shop.UpdatedAt,
			&shop.AdminID, &shop.AdminUsername,
			&avg, &shop.ProductCount,
		)
		if err != nil {
			return err
		}
		shop.AverageRating = nullFloat(avg)
		return nil
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &shop, nil
}
