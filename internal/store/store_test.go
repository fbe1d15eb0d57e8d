package store

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ayambakarnusantara/action-server/internal/database"
)

// newTestStore builds a Store over a sqlmock pool with a one-shot retry
// budget, so query tests see each statement exactly once.
func newTestStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	pool, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	log := zap.NewNop().Sugar()
	db := database.New(pool, 1, time.Millisecond, log)
	return New(db, log), mock
}
