package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ayambakarnusantara/action-server/internal/database"
	"github.com/ayambakarnusantara/action-server/internal/models"
)

// productColumns is the shared SELECT head for product listings: the product
// row, its shop, and the rating aggregates. average_rating stays NULL when
// the product has no ratings.
const productColumns = `
	SELECT p.id, p.name, p.description, p.price, p.stock, p.photoProduct,
	       s.id AS shopId, s.name AS shop_name,
	       (SELECT AVG(r.value) FROM Rating r WHERE r.productId = p.id) AS average_rating,
	       (SELECT COUNT(r.id) FROM Rating r WHERE r.productId = p.id) AS rating_count`

// GetProductByID returns one product with its rating aggregates, or
// database.ErrNotFound.
func (s *Store) GetProductByID(ctx context.Context, productID int64) (*models.ProductDetail, error) {
	query := productColumns + `,
	       p.createdAt, p.updatedAt
	FROM Product p
	JOIN Shop s ON p.shopId = s.id
	WHERE p.id = ?`

	var p models.ProductDetail
	err := s.read(ctx, func(ctx context.Context) error {
		var avg sql.NullFloat64
		err := s.db.QueryRowContext(ctx, query, productID).Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Photo,
			&p.ShopID, &p.ShopName, &avg, &p.RatingCount,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return err
		}
		p.AverageRating = nullFloat(avg)
		return nil
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return &p, nil
}

// GetProductByName returns the product whose name matches exactly,
// case-insensitively, or database.ErrNotFound.
func (s *Store) GetProductByName(ctx context.Context, name string) (*models.ProductDetail, error) {
	query := productColumns + `,
	       p.createdAt, p.updatedAt
	FROM Product p
	JOIN Shop s ON p.shopId = s.id
	WHERE LOWER(p.name) = LOWER(?)
	LIMIT 1`

	var p models.ProductDetail
	err := s.read(ctx, func(ctx context.Context) error {
		var avg sql.NullFloat64
		err := s.db.QueryRowContext(ctx, query, name).Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Photo,
			&p.ShopID, &p.ShopName, &avg, &p.RatingCount,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return err
		}
		p.AverageRating = nullFloat(avg)
		return nil
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product by name: %w", err)
	}
	return &p, nil
}

// SearchProductsByName searches products by partial name. Results are ranked
// by the fixed four-tier priority (exact, prefix, substring, broad LIKE
// fallback), then in-stock first, then average rating descending. This
// ordering is a business rule, not a relevance heuristic.
func (s *Store) SearchProductsByName(ctx context.Context, name string, limit, offset int) ([]models.ProductSummary, error) {
	query := productColumns + `,
	       CASE
	           WHEN LOWER(p.name) = LOWER(?) THEN 1
	           WHEN p.name LIKE CONCAT(?, '%') THEN 2
	           WHEN p.name LIKE CONCAT('%', ?, '%') THEN 3
	           ELSE 4
	       END AS match_priority
	FROM Product p
	JOIN Shop s ON p.shopId = s.id
	WHERE p.name LIKE ?
	ORDER BY match_priority, p.stock > 0 DESC, average_rating DESC
	LIMIT ? OFFSET ?`

	return s.queryProducts(ctx, "search products by name", query,
		name, name, name, "%"+name+"%", limit, offset)
}

// SearchProductsFull extends the name search with a fifth tier that matches
// against description text, for when name matches come up empty.
func (s *Store) SearchProductsFull(ctx context.Context, term string, limit int) ([]models.ProductSummary, error) {
	query := productColumns + `,
	       CASE
	           WHEN LOWER(p.name) = LOWER(?) THEN 1
	           WHEN p.name LIKE CONCAT(?, '%') THEN 2
	           WHEN p.name LIKE CONCAT('%', ?, '%') THEN 3
	           WHEN p.description LIKE CONCAT('%', ?, '%') THEN 4
	           ELSE 5
	       END AS match_priority
	FROM Product p
	JOIN Shop s ON p.shopId = s.id
	WHERE LOWER(p.name) LIKE ?
	   OR LOWER(p.description) LIKE ?
	ORDER BY match_priority, p.stock > 0 DESC, average_rating DESC
	LIMIT ?`

	like := "%" + term + "%"
	return s.queryProducts(ctx, "full product search", query,
		term, term, term, term, like, like, limit)
}

// GetAllProducts lists products with the requested ordering. Out-of-stock
// products always sink to the bottom.
func (s *Store) GetAllProducts(ctx context.Context, limit, offset int, sortBy models.ProductSort) ([]models.ProductSummary, error) {
	var orderClause string
	switch sortBy {
	case models.SortPriceLow:
		orderClause = "p.price ASC"
	case models.SortPriceHigh:
		orderClause = "p.price DESC"
	case models.SortRating:
		orderClause = "average_rating DESC, rating_count DESC"
	default:
		orderClause = "p.createdAt DESC"
	}

	query := productColumns + `
	FROM Product p
	JOIN Shop s ON p.shopId = s.id
	ORDER BY p.stock > 0 DESC, ` + orderClause + `
	LIMIT ? OFFSET ?`

	return s.queryProducts(ctx, "get all products", query, limit, offset)
}

// GetProductsByShop lists a shop's products, newest first.
func (s *Store) GetProductsByShop(ctx context.Context, shopID int64, limit, offset int) ([]models.ProductSummary, error) {
	query := `
	SELECT p.id, p.name, p.description, p.price, p.stock, p.photoProduct,
	       p.shopId, s.name AS shop_name,
	       (SELECT AVG(r.value) FROM Rating r WHERE r.productId = p.id) AS average_rating,
	       (SELECT COUNT(r.id) FROM Rating r WHERE r.productId = p.id) AS rating_count
	FROM Product p
	JOIN Shop s ON p.shopId = s.id
	WHERE p.shopId = ?
	ORDER BY p.createdAt DESC
	LIMIT ? OFFSET ?`

	return s.queryProducts(ctx, "get products by shop", query, shopID, limit, offset)
}

// GetTopRatedProducts lists in-stock products holding at least minRatings
// ratings, best average first, rating count breaking ties.
func (s *Store) GetTopRatedProducts(ctx context.Context, limit, minRatings int) ([]models.ProductSummary, error) {
	query := `
	SELECT p.id, p.name, p.description, p.price, p.stock, p.photoProduct,
	       s.id AS shopId, s.name AS shop_name,
	       AVG(r.value) AS average_rating,
	       COUNT(r.id) AS rating_count
	FROM Product p
	JOIN Shop s ON p.shopId = s.id
	JOIN Rating r ON p.id = r.productId
	GROUP BY p.id, p.name, p.description, p.price, p.stock, p.photoProduct, s.id, s.name
	HAVING COUNT(r.id) >= ? AND p.stock > 0
	ORDER BY average_rating DESC, rating_count DESC
	LIMIT ?`

	return s.queryProducts(ctx, "get top rated products", query, minRatings, limit)
}

// queryProducts runs a product listing query and scans its rows. Queries
// carrying a match_priority column get it scanned into the summary.
func (s *Store) queryProducts(ctx context.Context, op, query string, args ...any) ([]models.ProductSummary, error) {
	var products []models.ProductSummary
	err := s.read(ctx, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		cols, err := rows.Columns()
		if err != nil {
			return err
		}
		withPriority := cols[len(cols)-1] == "match_priority"

		products = products[:0]
		for rows.Next() {
			var p models.ProductSummary
			var avg sql.NullFloat64

			dest := []any{
				&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Photo,
				&p.ShopID, &p.ShopName, &avg, &p.RatingCount,
			}
			if withPriority {
				dest = append(dest, &p.MatchPriority)
			}
			if err := rows.Scan(dest...); err != nil {
				return err
			}
			p.AverageRating = nullFloat(avg)
			products = append(products, p)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}
