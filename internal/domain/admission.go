package domain

// MaxPairSum is the fee-adjusted ceiling on the sum of the two average
// prices. A pair bought below this sum pays for itself at settlement with
// room for fees; the admission comparison against it is strictly less-than.
const MaxPairSum = 0.98

// approxSafetyMargin shades the approximate target price on sides that
// already hold units, compensating for the averaging the approximation
// ignores.
const approxSafetyMargin = 0.95

// CanBuy reports whether filling qty units at price on side s would keep
// the pair sum under MaxPairSum. The check runs against the hypothetical
// post-fill average of s, not the fill price itself, paired with
// oppositeRef (the opposite side's average, or a live reference when that
// side is empty).
func CanBuy(pp *PairPosition, s Side, qty, price, oppositeRef float64) bool {
	if qty <= 0 {
		return false
	}
	side := pp.Side(s)
	newAvg := (side.Cost + qty*price) / (side.Qty + qty)
	return newAvg+oppositeRef < MaxPairSum
}

// OppositeReference returns the reference price for the side opposite s:
// its average when it holds units, NeutralPrice otherwise. Callers with a
// live book should substitute the opposite mid instead of the neutral
// fallback.
func (pp *PairPosition) OppositeReference(s Side) float64 {
	opp := pp.Side(s.Opposite())
	if opp.Qty > 0 {
		return opp.AveragePrice()
	}
	return NeutralPrice
}

// TargetPrice returns the highest fill price for qty units on side s that
// keeps the post-fill pair sum exactly at MaxPairSum. It inverts the
// weighted-average admission check, so filling strictly below the returned
// price always passes CanBuy with the same arguments. A side holding units
// cheaper than the bound can afford a price above it on a small top-up.
func TargetPrice(pp *PairPosition, s Side, qty, oppositeRef float64) float64 {
	if qty <= 0 {
		return 0
	}
	maxNewAvg := MaxPairSum - oppositeRef
	side := pp.Side(s)
	return (maxNewAvg*(side.Qty+qty) - side.Cost) / qty
}

// TargetPriceApprox is the quantity-free approximation of TargetPrice: the
// raw bound for an empty side, shaded by approxSafetyMargin for a held one.
// It can overshoot when the held average already exceeds the bound, which
// is why admission still gates every fill.
func TargetPriceApprox(pp *PairPosition, s Side, oppositeRef float64) float64 {
	bound := MaxPairSum - oppositeRef
	if pp.Side(s).Qty == 0 {
		return bound
	}
	return bound * approxSafetyMargin
}
