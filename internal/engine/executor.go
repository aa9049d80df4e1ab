package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hedgepair/hedgepair/internal/domain"
	"github.com/hedgepair/hedgepair/internal/ports"
)

// Executor simulates order execution against order-book snapshots. No real
// order ever leaves this process: a placement either fills immediately at
// the best ask or is rejected, and a successful fill mutates the ledger.
type Executor struct {
	books    ports.BookProvider
	position *domain.PairPosition

	book    *domain.OrderBook
	pending []*domain.Order
	filled  []domain.Order

	now func() time.Time
}

// NewExecutor creates a simulator bound to one ledger. books may be used to
// fetch a snapshot on demand when none has been supplied this tick.
func NewExecutor(books ports.BookProvider, position *domain.PairPosition) *Executor {
	return &Executor{
		books:    books,
		position: position,
		now:      time.Now,
	}
}

// UpdateOrderBook replaces the current snapshot. Called once per tick by
// the engine before any placement.
func (e *Executor) UpdateOrderBook(book domain.OrderBook) {
	e.book = &book
}

// PlaceLimitOrder attempts an immediate simulated buy of qty units on side
// at up to maxPrice. Returns (nil, nil) when the order cannot fill: no
// snapshot available, no resting ask, or maxPrice below the best ask. There
// is no worse-price fill and no resting order; each call is fill-or-reject.
func (e *Executor) PlaceLimitOrder(ctx context.Context, side domain.Side, qty, maxPrice float64) (*domain.Order, error) {
	if !side.Valid() {
		return nil, fmt.Errorf("engine.PlaceLimitOrder: %w: %q", domain.ErrInvalidSide, side)
	}
	if qty <= 0 {
		return nil, fmt.Errorf("engine.PlaceLimitOrder: quantity must be positive, got %v", qty)
	}

	if e.book == nil {
		book, err := e.books.FetchOrderBook(ctx)
		if err != nil {
			slog.Warn("order rejected: no order book available", "side", side, "err", err)
			return nil, nil
		}
		e.book = &book
	}

	bestAsk, ok := e.book.BestAsk(side)
	if !ok {
		slog.Warn("order rejected: no resting ask", "side", side)
		return nil, nil
	}
	if maxPrice < bestAsk.Price {
		slog.Warn("order rejected: limit below best ask",
			"side", side,
			"max_price", fmt.Sprintf("%.4f", maxPrice),
			"best_ask", fmt.Sprintf("%.4f", bestAsk.Price),
		)
		return nil, nil
	}

	// Price at the best ask so the fill is immediately marketable.
	order := &domain.Order{
		ID:       uuid.New().String(),
		Side:     side,
		Price:    bestAsk.Price,
		Qty:      qty,
		Status:   domain.StatusPending,
		PlacedAt: e.now().UTC(),
	}
	e.pending = append(e.pending, order)
	e.fill(order, bestAsk)
	return order, nil
}

// fill resolves a pending order against the best ask: the fill takes at
// most the resting quantity and updates the ledger.
func (e *Executor) fill(order *domain.Order, bestAsk domain.BookEntry) {
	order.Status = domain.StatusFilled
	order.FilledQty = min(order.Qty, bestAsk.Size)
	order.FilledPrice = bestAsk.Price

	e.position.AddFill(order.Side, order.FilledQty, order.FilledPrice)

	side := e.position.Side(order.Side)
	slog.Info("order filled",
		"side", order.Side,
		"qty", fmt.Sprintf("%.2f", order.FilledQty),
		"price", fmt.Sprintf("%.4f", order.FilledPrice),
		"side_qty", fmt.Sprintf("%.2f", side.Qty),
		"side_cost", fmt.Sprintf("%.2f", side.Cost),
		"side_avg", fmt.Sprintf("%.4f", side.AveragePrice()),
	)

	e.removePending(order)
	e.filled = append(e.filled, *order)
}

// CancelAll transitions every still-pending order to CANCELLED and clears
// the pending set. Called when the risk controller mandates a stop.
func (e *Executor) CancelAll() {
	for _, o := range e.pending {
		if o.Status == domain.StatusPending {
			o.Status = domain.StatusCancelled
		}
	}
	if len(e.pending) > 0 {
		slog.Info("cancelled pending orders", "count", len(e.pending))
	}
	e.pending = nil
}

// FilledOrders returns a copy of the fill history for this session.
func (e *Executor) FilledOrders() []domain.Order {
	out := make([]domain.Order, len(e.filled))
	copy(out, e.filled)
	return out
}

// Reset drops the snapshot and order history for a new market window.
// The ledger is reset by its owner, not here.
func (e *Executor) Reset() {
	e.book = nil
	e.pending = nil
	e.filled = nil
}

func (e *Executor) removePending(order *domain.Order) {
	for i, o := range e.pending {
		if o == order {
			e.pending = append(e.pending[:i], e.pending[i+1:]...)
			return
		}
	}
}
