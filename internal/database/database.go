package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/ayambakarnusantara/action-server/internal/config"
)

// Standard errors for database operations. Check with errors.Is.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConnection indicates the database link is down or was reset.
	ErrConnection = errors.New("database connection error")

	// ErrMaxRetries indicates an operation gave up after the configured
	// number of attempts.
	ErrMaxRetries = errors.New("maximum retry attempts exceeded")
)

// DB wraps the connection pool with the retry budget every operation shares.
// *sql.DB already hands each call its own pooled connection, so a retry sleep
// here only blocks the request that hit the error.
type DB struct {
	*sql.DB

	maxRetries int
	retryDelay time.Duration
	log        *zap.SugaredLogger
}

// New wraps an existing pool. Used directly by tests; production code goes
// through Open.
func New(pool *sql.DB, maxRetries int, retryDelay time.Duration, log *zap.SugaredLogger) *DB {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &DB{DB: pool, maxRetries: maxRetries, retryDelay: retryDelay, log: log}
}

// Open establishes the connection pool, retrying up to cfg.MaxRetries times
// with a fixed delay between attempts. Exhausting the retries is fatal to
// startup: the caller gets an error and no pool.
func Open(cfg config.DatabaseConfig, log *zap.SugaredLogger) (*DB, error) {
	return openWithRetry(cfg, log, func() (*sql.DB, error) {
		return openPool(cfg.DSN())
	})
}

func openWithRetry(cfg config.DatabaseConfig, log *zap.SugaredLogger, open func() (*sql.DB, error)) (*DB, error) {
	var lastErr error
	for attempt := 1; attempt <= cfg.MaxRetries; attempt++ {
		pool, err := open()
		if err == nil {
			log.Infow("mysql connection established",
				"database", cfg.Name, "host", cfg.Host, "port", cfg.Port)
			return New(pool, cfg.MaxRetries, cfg.RetryDelay, log), nil
		}
		lastErr = err
		log.Warnf("mysql connection attempt %d failed: %v", attempt, err)
		if attempt < cfg.MaxRetries {
			log.Infof("retrying in %s...", cfg.RetryDelay)
			time.Sleep(cfg.RetryDelay)
		}
	}
	return nil, fmt.Errorf("all connection attempts failed after %d retries: %w", cfg.MaxRetries, lastErr)
}

// openPool opens and verifies a single pool.
func openPool(dsn string) (*sql.DB, error) {
	pool, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	pool.SetMaxOpenConns(25)
	pool.SetMaxIdleConns(25)
	pool.SetConnMaxLifetime(5 * time.Minute)

	if err := pool.Ping(); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// EnsureLive verifies the link before a unit of work. database/sql reopens
// dead pooled connections on ping, so a passing ping doubles as the reconnect.
func (db *DB) EnsureLive(ctx context.Context) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

// WithRetry runs fn, retrying the whole operation (liveness check included)
// on connection-class errors up to the configured maximum. Non-connection
// errors are returned immediately; nothing panics past this boundary.
func (db *DB) WithRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= db.maxRetries; attempt++ {
		if err := db.EnsureLive(ctx); err != nil {
			lastErr = err
		} else if err := fn(ctx); err != nil {
			if !IsConnErr(err) {
				return err
			}
			lastErr = err
		} else {
			return nil
		}

		db.log.Warnf("database operation attempt %d failed: %v", attempt, lastErr)
		if attempt < db.maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(db.retryDelay):
			}
		}
	}
	return fmt.Errorf("%w (%d attempts): %v", ErrMaxRetries, db.maxRetries, lastErr)
}

// IsConnErr reports whether err is a connection-class failure, as opposed to
// a malformed statement or constraint violation.
func IsConnErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, mysql.ErrInvalidConn) ||
		errors.Is(err, ErrConnection) ||
		errors.Is(err, io.EOF) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
