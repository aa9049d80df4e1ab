package storage

// sqlite.go — write-only trade history.
//
// Two tables:
//   - `fills`: one row per simulated fill, keyed by order ID.
//   - `sessions`: one row per trading session, written when the session ends
//     (stop condition or shutdown).
//
// The engine never reads this back: every session starts with an empty
// ledger, and the database exists purely for post-hoc inspection.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hedgepair/hedgepair/internal/domain"
	"github.com/hedgepair/hedgepair/internal/ports"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS fills (
    order_id     TEXT PRIMARY KEY,
    session_id   TEXT     NOT NULL,
    side         TEXT     NOT NULL,
    price        REAL     NOT NULL,
    qty          REAL     NOT NULL,
    filled_qty   REAL     NOT NULL,
    filled_price REAL     NOT NULL,
    placed_at    DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
    session_id  TEXT PRIMARY KEY,
    ended_at    DATETIME NOT NULL,
    yes_qty     REAL     NOT NULL DEFAULT 0,
    yes_cost    REAL     NOT NULL DEFAULT 0,
    no_qty      REAL     NOT NULL DEFAULT 0,
    no_cost     REAL     NOT NULL DEFAULT 0,
    pair_cost   REAL     NOT NULL DEFAULT 0,
    profitable  INTEGER  NOT NULL DEFAULT 0,
    stop_type   TEXT,
    stop_reason TEXT
);

CREATE INDEX IF NOT EXISTS idx_fills_session ON fills(session_id);
CREATE INDEX IF NOT EXISTS idx_sessions_end  ON sessions(ended_at DESC);
`

// SQLiteStorage implements ports.TradeStorage using SQLite (pure Go, no CGo).
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens (or creates) the database at the given path and
// applies the schema.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}
	return &SQLiteStorage{db: db}, nil
}

// SaveFill persists one filled order. Replays of the same order ID overwrite
// rather than duplicate.
func (s *SQLiteStorage) SaveFill(ctx context.Context, sessionID string, order domain.Order) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO fills
			(order_id, session_id, side, price, qty, filled_qty, filled_price, placed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(order_id) DO UPDATE SET
			filled_qty   = excluded.filled_qty,
			filled_price = excluded.filled_price
	`,
		order.ID,
		sessionID,
		order.Side.String(),
		order.Price,
		order.Qty,
		order.FilledQty,
		order.FilledPrice,
		order.PlacedAt.UTC(),
	); err != nil {
		return fmt.Errorf("storage.SaveFill: upsert %s: %w", order.ID, err)
	}
	return nil
}

// SaveSessionSummary persists the final state of a trading session.
func (s *SQLiteStorage) SaveSessionSummary(ctx context.Context, sum ports.SessionSummary) error {
	profitable := 0
	if sum.Profitable {
		profitable = 1
	}
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions
			(session_id, ended_at, yes_qty, yes_cost, no_qty, no_cost,
			 pair_cost, profitable, stop_type, stop_reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			ended_at    = excluded.ended_at,
			yes_qty     = excluded.yes_qty,
			yes_cost    = excluded.yes_cost,
			no_qty      = excluded.no_qty,
			no_cost     = excluded.no_cost,
			pair_cost   = excluded.pair_cost,
			profitable  = excluded.profitable,
			stop_type   = excluded.stop_type,
			stop_reason = excluded.stop_reason
	`,
		sum.SessionID,
		time.Now().UTC(),
		sum.YesQty,
		sum.YesCost,
		sum.NoQty,
		sum.NoCost,
		sum.PairCost,
		profitable,
		sum.StopType,
		sum.StopReason,
	); err != nil {
		return fmt.Errorf("storage.SaveSessionSummary: upsert %s: %w", sum.SessionID, err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
