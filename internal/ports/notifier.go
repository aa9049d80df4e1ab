package ports

import (
	"github.com/hedgepair/hedgepair/internal/domain"
)

// TickStatus bundles what the presentation layer needs after one tick.
type TickStatus struct {
	Position  *domain.PairPosition
	Stop      domain.StopConditionResult
	NewFills  []domain.Order
	YesMid    float64
	NoMid     float64
	Triggered string // which component asked for the buy, if any
}

// Notifier presents tick results to the user.
type Notifier interface {
	// NotifyTick renders the state after one engine tick.
	NotifyTick(status TickStatus)

	// NotifyStop renders the final stop decision with its details map.
	NotifyStop(stop domain.StopConditionResult, position *domain.PairPosition, fills []domain.Order)
}
