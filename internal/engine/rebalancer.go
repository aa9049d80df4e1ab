package engine

import (
	"github.com/hedgepair/hedgepair/internal/domain"
)

// Rebalancer decides when holdings have drifted far enough apart to favor
// one side, and which side to buy first.
type Rebalancer struct {
	threshold float64
}

// NewRebalancer creates a rebalancer with the given imbalance threshold.
func NewRebalancer(threshold float64) *Rebalancer {
	return &Rebalancer{threshold: threshold}
}

// ShouldRebalance reports whether the imbalance ratio exceeds the threshold.
func (r *Rebalancer) ShouldRebalance(pp *domain.PairPosition) bool {
	return pp.ImbalanceRatio() > r.threshold
}

// PrioritySide returns the side to buy next: the ledger's target side when
// one lags badly, otherwise whichever side holds fewer units.
func (r *Rebalancer) PrioritySide(pp *domain.PairPosition) domain.Side {
	if side, ok := pp.TargetSide(); ok {
		return side
	}
	if pp.Yes.Qty < pp.No.Qty {
		return domain.SideYes
	}
	return domain.SideNo
}
