package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ayambakarnusantara/action-server/internal/models"
)

// GetProductRatings lists a product's ratings, newest first, joined with
// their authors.
func (s *Store) GetProductRatings(ctx context.Context, productID int64, limit, offset int) ([]models.Rating, error) {
	query := `
	SELECT r.id, r.value, r.comment, r.createdAt, r.updatedAt,
	       u.id AS userId, u.username, u.fullName, u.photoUser
	FROM Rating r
	JOIN User u ON r.userId = u.id
	WHERE r.productId = ?
	ORDER BY r.createdAt DESC
	LIMIT ? OFFSET ?`

	var ratings []models.Rating
	err := s.read(ctx, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, query, productID, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()

		ratings = ratings[:0]
		for rows.Next() {
			var r models.Rating
			if err := rows.Scan(&r.ID, &r.Value, &r.Comment, &r.CreatedAt, &r.UpdatedAt,
				&r.UserID, &r.Username, &r.FullName, &r.UserPhoto); err != nil {
				return err
			}
			ratings = append(ratings, r)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("get product ratings: %w", err)
	}
	return ratings, nil
}

// GetProductAverageRating returns the mean rating value for a product, or
// nil when nobody has rated it. "No rating" and 0.0 are different answers;
// the data layer only ever gives the former.
func (s *Store) GetProductAverageRating(ctx context.Context, productID int64) (*float64, error) {
	return s.averageRating(ctx, "get product average rating",
		`SELECT AVG(value) FROM Rating WHERE productId = ?`, productID)
}

// GetShopAverageRating returns the mean rating across all of a shop's
// products, or nil when none of them have ratings.
func (s *Store) GetShopAverageRating(ctx context.Context, shopID int64) (*float64, error) {
	return s.averageRating(ctx, "get shop average rating",
		`SELECT AVG(r.value) FROM Rating r JOIN Product p ON r.productId = p.id WHERE p.shopId = ?`, shopID)
}

func (s *Store) averageRating(ctx context.Context, op, query string, id int64) (*float64, error) {
	var avg sql.NullFloat64
	err := s.read(ctx, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, query, id).Scan(&avg)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return nullFloat(avg), nil
}

// GetProductRatingCount returns how many ratings a product holds.
func (s *Store) GetProductRatingCount(ctx context.Context, productID int64) (int, error) {
	var count int
	err := s.read(ctx, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM Rating WHERE productId = ?`, productID).Scan(&count)
	})
	if err != nil {
		return 0, fmt.Errorf("get product rating count: %w", err)
	}
	return count, nil
}

// GetUserRatings lists the ratings a user has written, newest first.
func (s *Store) GetUserRatings(ctx context.Context, userID int64, limit, offset int) ([]models.UserRating, error) {
	query := `
	SELECT r.id, r.value, r.comment, r.createdAt, r.updatedAt,
	       p.id AS productId, p.name AS product_name, p.photoProduct,
	       s.id AS shopId, s.name AS shop_name
	FROM Rating r
	JOIN Product p ON r.productId = p.id
	JOIN Shop s ON p.shopId = s.id
	WHERE r.userId = ?
	ORDER BY r.createdAt DESC
	LIMIT ? OFFSET ?`

	var ratings []models.UserRating
	err := s.read(ctx, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, query, userID, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()

		ratings = ratings[:0]
		for rows.Next() {
			var r models.UserRating
			if err := rows.Scan(&r.ID, &r.Value, &r.Comment, &r.CreatedAt, &r.UpdatedAt,
				&r.ProductID, &r.ProductName, &r.ProductPhoto,
				&r.ShopID, &r.ShopName); err != nil {
				return err
			}
			ratings = append(ratings, r)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("get user ratings: %w", err)
	}
	return ratings, nil
}

// UpsertProductRating records a user's rating of a product: at most one
// Rating row per (user, product) pair, so an existing row is updated in
// place. The check and the write share one transaction. The value is
// re-validated here even though the action layer already screens it.
func (s *Store) UpsertProductRating(ctx context.Context, userID, productID int64, value int, comment *string) error {
	if !models.ValidRatingValue(value) {
		return fmt.Errorf("rating value %d out of range %d-%d", value, models.RatingMin, models.RatingMax)
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var ratingID int64
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM Rating WHERE userId = ? AND productId = ?`,
			userID, productID).Scan(&ratingID)

		switch {
		case err == nil:
			_, err = tx.ExecContext(ctx,
				`UPDATE Rating SET value = ?, comment = ?, updatedAt = NOW() WHERE id = ?`,
				value, comment, ratingID)
			return err
		case err == sql.ErrNoRows:
			_, err = tx.ExecContext(ctx,
				`INSERT INTO Rating (value, comment, userId, productId, createdAt, updatedAt)
				 VALUES (?, ?, ?, ?, NOW(), NOW())`,
				value, comment, userID, productID)
			return err
		default:
			return err
		}
	})
	if err != nil {
		return fmt.Errorf("upsert product rating: %w", err)
	}
	return nil
}
