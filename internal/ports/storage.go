package ports

import (
	"context"

	"github.com/hedgepair/hedgepair/internal/domain"
)

// SessionSummary is the end-of-session record written when a market window
// closes or a stop condition fires.
type SessionSummary struct {
	SessionID  string
	YesQty     float64
	YesCost    float64
	NoQty      float64
	NoCost     float64
	PairCost   float64
	Profitable bool
	StopType   string
	StopReason string
}

// TradeStorage records simulated fills and session summaries for later
// inspection. It is a write-only sink from the engine's point of view: the
// ledger always starts a session empty and is never rebuilt from storage.
type TradeStorage interface {
	// SaveFill persists one filled order.
	SaveFill(ctx context.Context, sessionID string, order domain.Order) error

	// SaveSessionSummary persists the final state of a trading session.
	SaveSessionSummary(ctx context.Context, s SessionSummary) error

	// Close releases the underlying database.
	Close() error
}
