package ports

import (
	"context"

	"github.com/hedgepair/hedgepair/internal/domain"
)

// BookProvider supplies paired order-book snapshots for one market.
// Implementations own all network I/O and timeouts; the engine treats a
// failed fetch as "no data this tick" and never retries internally.
type BookProvider interface {
	// FetchOrderBook returns the current snapshot for the market.
	FetchOrderBook(ctx context.Context) (domain.OrderBook, error)
}
