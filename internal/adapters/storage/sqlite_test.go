package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hedgepair/hedgepair/internal/domain"
	"github.com/hedgepair/hedgepair/internal/ports"
)

func openTestDB(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "trades.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStorage_SaveFill(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()

	order := domain.Order{
		ID:          "ord-1",
		Side:        domain.SideYes,
		Price:       0.46,
		Qty:         100,
		Status:      domain.StatusFilled,
		FilledQty:   80,
		FilledPrice: 0.46,
		PlacedAt:    time.Now().UTC(),
	}
	require.NoError(t, s.SaveFill(ctx, "sess-1", order))

	var side string
	var filledQty float64
	err := s.db.QueryRow(
		`SELECT side, filled_qty FROM fills WHERE order_id = ?`, "ord-1",
	).Scan(&side, &filledQty)
	require.NoError(t, err)
	assert.Equal(t, "YES", side)
	assert.Equal(t, 80.0, filledQty)
}

func TestSQLiteStorage_SaveFillIdempotent(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()

	order := domain.Order{ID: "ord-1", Side: domain.SideNo, Price: 0.40, Qty: 50, FilledQty: 50, FilledPrice: 0.40, PlacedAt: time.Now().UTC()}
	require.NoError(t, s.SaveFill(ctx, "sess-1", order))
	order.FilledQty = 60
	require.NoError(t, s.SaveFill(ctx, "sess-1", order))

	var count int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM fills`).Scan(&count))
	assert.Equal(t, 1, count)

	var filledQty float64
	require.NoError(t, s.db.QueryRow(`SELECT filled_qty FROM fills WHERE order_id = ?`, "ord-1").Scan(&filledQty))
	assert.Equal(t, 60.0, filledQty)
}

func TestSQLiteStorage_SaveSessionSummary(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()

	sum := ports.SessionSummary{
		SessionID:  "sess-1",
		YesQty:     120,
		YesCost:    54,
		NoQty:      100,
		NoCost:     40,
		PairCost:   0.85,
		Profitable: true,
		StopType:   "profit_locked",
		StopReason: "profit locked: min qty 100.00 > total cost 94.00",
	}
	require.NoError(t, s.SaveSessionSummary(ctx, sum))

	var stopType string
	var profitable int
	err := s.db.QueryRow(
		`SELECT stop_type, profitable FROM sessions WHERE session_id = ?`, "sess-1",
	).Scan(&stopType, &profitable)
	require.NoError(t, err)
	assert.Equal(t, "profit_locked", stopType)
	assert.Equal(t, 1, profitable)
}
