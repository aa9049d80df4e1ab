package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hedgepair/hedgepair/config"
	"github.com/hedgepair/hedgepair/internal/domain"
	"github.com/hedgepair/hedgepair/internal/ports"
)

// Engine drives one paired market: each tick it runs the risk controller
// first, then lets the price monitor or rebalancer nominate a buy, gates
// it through admission, bounds the price, and hands it to the executor.
// One Engine owns one PairPosition; ticks must not overlap.
type Engine struct {
	cfg config.Config

	position   *domain.PairPosition
	executor   *Executor
	monitor    *PriceBandMonitor
	rebalancer *Rebalancer
	risk       *RiskController

	store    ports.TradeStorage
	notifier ports.Notifier

	sessionID  string
	settlement time.Time
	stopped    bool
}

// TickResult is what one tick produced, for the caller and presentation.
type TickResult struct {
	Stop      domain.StopConditionResult
	Triggered string // "band", "rebalance", or ""
	Order     *domain.Order
}

// New wires an engine from its collaborators. store and notifier may be nil
// (headless tests run without either).
func New(cfg config.Config, books ports.BookProvider, store ports.TradeStorage, notifier ports.Notifier) *Engine {
	position := domain.NewPairPosition()
	return &Engine{
		cfg:        cfg,
		position:   position,
		executor:   NewExecutor(books, position),
		monitor:    NewPriceBandMonitor(cfg.Trading.EntryPriceMin, cfg.Trading.EntryPriceMax),
		rebalancer: NewRebalancer(cfg.Trading.ImbalanceThreshold),
		risk:       NewRiskController(cfg.Risk),
		store:      store,
		notifier:   notifier,
		sessionID:  uuid.New().String(),
	}
}

// SetSettlement records the market's settlement time for the risk checks.
func (e *Engine) SetSettlement(t time.Time) {
	e.settlement = t.UTC()
}

// Position exposes the ledger read-only for presentation layers.
func (e *Engine) Position() *domain.PairPosition {
	return e.position
}

// FilledOrders exposes the session fill history.
func (e *Engine) FilledOrders() []domain.Order {
	return e.executor.FilledOrders()
}

// Stopped reports whether a stop condition has ended the session.
func (e *Engine) Stopped() bool {
	return e.stopped
}

// Tick processes one order-book update through the full pipeline. After a
// stop has fired the engine stays stopped until ResetForMarket.
func (e *Engine) Tick(ctx context.Context, book domain.OrderBook) (TickResult, error) {
	if e.stopped {
		return TickResult{Stop: domain.StopConditionResult{ShouldStop: true, Reason: "session stopped"}}, nil
	}

	e.executor.UpdateOrderBook(book)

	stop := e.risk.CheckStopConditions(e.position, &book, e.settlement)
	if stop.ShouldStop {
		e.stop(ctx, stop)
		return TickResult{Stop: stop}, nil
	}

	result := TickResult{Stop: stop}

	side, triggered := e.chooseBuy(book)
	if !triggered {
		e.notifyTick(result, book)
		return result, nil
	}
	result.Triggered = side.trigger

	order, err := e.tryBuy(ctx, side.side, side.qty, book)
	if err != nil {
		return result, fmt.Errorf("engine.Tick: %w", err)
	}
	result.Order = order

	if order != nil && e.store != nil {
		if err := e.store.SaveFill(ctx, e.sessionID, *order); err != nil {
			slog.Warn("failed to persist fill", "err", err)
		}
	}

	e.notifyTick(result, book)
	return result, nil
}

// buyIntent is one component's nomination for this tick.
type buyIntent struct {
	side    domain.Side
	qty     float64
	trigger string
}

// chooseBuy asks the rebalancer first (holdings drifting apart outranks new
// entries), then the band monitor. A rebalance buy still respects the entry
// band: topping up the lagging side at a price outside it would just move
// the imbalance into the cost basis.
func (e *Engine) chooseBuy(book domain.OrderBook) (buyIntent, bool) {
	// The monitor observes every tick regardless of outcome; skipping a
	// tick would blind its edge detection.
	bandSide, bandOK := e.monitor.CheckPrice(book)

	if e.rebalancer.ShouldRebalance(e.position) {
		side := e.rebalancer.PrioritySide(e.position)
		mid := book.Mid(side)
		if mid >= e.cfg.Trading.EntryPriceMin && mid <= e.cfg.Trading.EntryPriceMax {
			return buyIntent{side: side, qty: e.cfg.Trading.RebalanceOrderSize, trigger: "rebalance"}, true
		}
	}
	if bandOK {
		return buyIntent{side: bandSide, qty: e.cfg.Trading.DefaultOrderSize, trigger: "band"}, true
	}
	return buyIntent{}, false
}

// tryBuy gates the intent through admission, bounds the limit price by the
// target-price inverse, and places the simulated order.
func (e *Engine) tryBuy(ctx context.Context, side domain.Side, qty float64, book domain.OrderBook) (*domain.Order, error) {
	bestAsk, ok := book.BestAsk(side)
	if !ok {
		slog.Debug("no ask to buy against", "side", side)
		return nil, nil
	}

	// Opposite reference: the opposite ledger average when real fills back
	// it, otherwise the live opposite mid. Explicit substitution, per the
	// admission formula's contract.
	oppRef := e.position.OppositeReference(side)
	if e.position.Side(side.Opposite()).Qty == 0 {
		oppRef = book.Mid(side.Opposite())
	}

	if !domain.CanBuy(e.position, side, qty, bestAsk.Price, oppRef) {
		slog.Debug("admission rejected buy",
			"side", side,
			"price", fmt.Sprintf("%.4f", bestAsk.Price),
			"opp_ref", fmt.Sprintf("%.4f", oppRef),
		)
		return nil, nil
	}

	limit := domain.TargetPrice(e.position, side, qty, oppRef)
	if limit <= 0 {
		return nil, nil
	}

	return e.executor.PlaceLimitOrder(ctx, side, qty, limit)
}

// stop finalizes the session: cancels pending orders, persists the summary,
// and notifies.
func (e *Engine) stop(ctx context.Context, stop domain.StopConditionResult) {
	e.stopped = true
	e.executor.CancelAll()

	slog.Info("session stopped", "type", string(stop.Type), "reason", stop.Reason)

	if e.store != nil {
		summary := ports.SessionSummary{
			SessionID:  e.sessionID,
			YesQty:     e.position.Yes.Qty,
			YesCost:    e.position.Yes.Cost,
			NoQty:      e.position.No.Qty,
			NoCost:     e.position.No.Cost,
			PairCost:   e.position.PairCost(),
			Profitable: e.position.IsProfitable(),
			StopType:   string(stop.Type),
			StopReason: stop.Reason,
		}
		if err := e.store.SaveSessionSummary(ctx, summary); err != nil {
			slog.Warn("failed to persist session summary", "err", err)
		}
	}

	if e.notifier != nil {
		e.notifier.NotifyStop(stop, e.position, e.executor.FilledOrders())
	}
}

func (e *Engine) notifyTick(result TickResult, book domain.OrderBook) {
	if e.notifier == nil {
		return
	}
	status := ports.TickStatus{
		Position:  e.position,
		Stop:      result.Stop,
		YesMid:    book.Mid(domain.SideYes),
		NoMid:     book.Mid(domain.SideNo),
		Triggered: result.Triggered,
	}
	if result.Order != nil {
		status.NewFills = []domain.Order{*result.Order}
	}
	e.notifier.NotifyTick(status)
}

// ResetForMarket clears all per-market state to trade a new window.
func (e *Engine) ResetForMarket(settlement time.Time) {
	e.position.Reset()
	e.executor.Reset()
	e.monitor.Reset()
	e.risk.Reset()
	e.settlement = settlement.UTC()
	e.sessionID = uuid.New().String()
	e.stopped = false
	slog.Info("engine reset for new market window", "session", e.sessionID, "settlement", e.settlement)
}
