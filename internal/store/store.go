// Package store holds the fixed catalog of queries the action server runs
// against the e-commerce schema (Product, Shop, User, Rating, Cart, Order,
// Payment). It is deliberately not a query builder: every operation is one
// named method with its own statement.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ayambakarnusantara/action-server/internal/database"
)

// Store runs the query catalog on a shared pool. Each call acquires and
// releases its own pooled connection, so concurrent sessions never share
// a cursor.
type Store struct {
	db  *database.DB
	log *zap.SugaredLogger

	// now is swapped out by tests that pin payment expiry times.
	now func() time.Time
}

// New creates a Store on top of an opened pool.
func New(db *database.DB, log *zap.SugaredLogger) *Store {
	return &Store{db: db, log: log, now: time.Now}
}

// withTx runs fn inside a transaction with the shared retry budget. The
// deferred rollback is a safety net: it is a no-op once fn's work has been
// committed, and it undoes everything when fn or the commit fails.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return s.db.WithRetry(ctx, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		if err := fn(tx); err != nil {
			return err
		}
		return tx.Commit()
	})
}

// read runs fn with the shared retry budget, for single- and multi-row reads.
func (s *Store) read(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.db.WithRetry(ctx, fn)
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

// nullFloat converts an aggregate column to a pointer; nil means the
// aggregate had no rows, which callers must not confuse with 0.0.
func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
