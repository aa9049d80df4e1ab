package domain

// NeutralPrice stands in for the average price of a side that holds nothing.
// Both outcomes of a binary market are worth 0.5 in expectation before any
// information, so an empty side neither helps nor hurts a pair-sum check.
const NeutralPrice = 0.5

// targetSideRatio is the quantity ratio above which the larger side is
// considered to have run away from the smaller one. It is deliberately
// distinct from the rebalance trigger threshold: the trigger says "act",
// this says "which side".
const targetSideRatio = 1.2

// SidePosition is the running ledger of one side: total units held and the
// total cash spent acquiring them. Average price is derived, never stored.
type SidePosition struct {
	Qty  float64
	Cost float64
}

// AveragePrice returns Cost/Qty, or NeutralPrice for an empty side.
func (p *SidePosition) AveragePrice() float64 {
	if p.Qty <= 0 {
		return NeutralPrice
	}
	return p.Cost / p.Qty
}

func (p *SidePosition) addFill(qty, price float64) {
	p.Qty += qty
	p.Cost += qty * price
}

// PairPosition is the full two-sided ledger of one trading session.
type PairPosition struct {
	Yes SidePosition
	No  SidePosition
}

// NewPairPosition returns an empty ledger.
func NewPairPosition() *PairPosition {
	return &PairPosition{}
}

// Side returns the ledger entry for one side.
func (pp *PairPosition) Side(s Side) *SidePosition {
	if s == SideYes {
		return &pp.Yes
	}
	return &pp.No
}

// AddFill records a fill of qty units at price on the given side.
func (pp *PairPosition) AddFill(s Side, qty, price float64) {
	pp.Side(s).addFill(qty, price)
}

// TotalCost returns the cash deployed across both sides.
func (pp *PairPosition) TotalCost() float64 {
	return pp.Yes.Cost + pp.No.Cost
}

// MinQty returns the number of complete pairs held: the smaller of the two
// side quantities. Only complete pairs have a guaranteed payout.
func (pp *PairPosition) MinQty() float64 {
	if pp.Yes.Qty < pp.No.Qty {
		return pp.Yes.Qty
	}
	return pp.No.Qty
}

// PairCost returns the sum of the two average prices. Empty sides count at
// NeutralPrice, so an empty ledger reads 1.0.
func (pp *PairPosition) PairCost() float64 {
	return pp.Yes.AveragePrice() + pp.No.AveragePrice()
}

// IsProfitable reports whether the guaranteed payout of the complete pairs
// exceeds everything spent so far. One complete pair pays out 1 regardless
// of the outcome, so profit is locked once MinQty > TotalCost.
func (pp *PairPosition) IsProfitable() bool {
	minQty := pp.MinQty()
	return minQty > 0 && minQty > pp.TotalCost()
}

// ImbalanceRatio returns |yes−no| / (yes+no), or 0 for an empty ledger.
func (pp *PairPosition) ImbalanceRatio() float64 {
	total := pp.Yes.Qty + pp.No.Qty
	if total <= 0 {
		return 0
	}
	diff := pp.Yes.Qty - pp.No.Qty
	if diff < 0 {
		diff = -diff
	}
	return diff / total
}

// TargetSide returns the side that needs topping up when the other has run
// more than targetSideRatio ahead of it, and false when neither has.
func (pp *PairPosition) TargetSide() (Side, bool) {
	switch {
	case pp.Yes.Qty > pp.No.Qty*targetSideRatio:
		return SideNo, true
	case pp.No.Qty > pp.Yes.Qty*targetSideRatio:
		return SideYes, true
	}
	return "", false
}

// IsUnhedged returns the held side and true when exactly one side holds
// units. A flat or two-sided ledger is not unhedged.
func (pp *PairPosition) IsUnhedged() (Side, bool) {
	switch {
	case pp.Yes.Qty > 0 && pp.No.Qty == 0:
		return SideYes, true
	case pp.No.Qty > 0 && pp.Yes.Qty == 0:
		return SideNo, true
	}
	return "", false
}

// Reset empties the ledger for a new session.
func (pp *PairPosition) Reset() {
	*pp = PairPosition{}
}
