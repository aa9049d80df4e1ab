package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanBuy_EmptyPositionRejectsExpensivePair(t *testing.T) {
	// New YES avg would be 0.60; 0.60 + 0.45 = 1.05 ≥ 0.98 → reject.
	pp := NewPairPosition()
	assert.False(t, CanBuy(pp, SideYes, 100, 0.60, 0.45))
}

func TestCanBuy_AdmitsProfitablePair(t *testing.T) {
	pp := NewPairPosition()
	assert.True(t, CanBuy(pp, SideYes, 100, 0.45, 0.50))
}

func TestCanBuy_StrictBoundary(t *testing.T) {
	// Exactly 0.98 must be rejected: the comparison is strictly-less-than.
	pp := NewPairPosition()
	assert.False(t, CanBuy(pp, SideYes, 100, 0.48, 0.50))
	assert.True(t, CanBuy(pp, SideYes, 100, 0.4799, 0.50))
}

func TestCanBuy_UsesHypotheticalNewAverage(t *testing.T) {
	// Existing YES 100@0.40; buying 100@0.60 moves the avg to 0.50.
	// 0.50 + 0.47 = 0.97 < 0.98 → admitted even though 0.60 + 0.47 ≥ 0.98.
	pp := NewPairPosition()
	pp.AddFill(SideYes, 100, 0.40)
	assert.True(t, CanBuy(pp, SideYes, 100, 0.60, 0.47))
	assert.False(t, CanBuy(pp, SideYes, 100, 0.63, 0.47))
}

func TestCanBuy_ZeroQty(t *testing.T) {
	pp := NewPairPosition()
	assert.False(t, CanBuy(pp, SideYes, 0, 0.40, 0.40))
}

func TestOppositeReference_DefaultsToNeutral(t *testing.T) {
	pp := NewPairPosition()
	assert.Equal(t, 0.5, pp.OppositeReference(SideYes))

	pp.AddFill(SideNo, 100, 0.42)
	assert.InDelta(t, 0.42, pp.OppositeReference(SideYes), 1e-9)
	assert.Equal(t, 0.5, pp.OppositeReference(SideNo)) // YES still empty
}

func TestTargetPrice_EmptySide(t *testing.T) {
	pp := NewPairPosition()
	assert.InDelta(t, 0.53, TargetPrice(pp, SideYes, 100, 0.45), 1e-9)
}

func TestTargetPrice_ExactInversePreservesInvariant(t *testing.T) {
	pp := NewPairPosition()
	pp.AddFill(SideYes, 100, 0.40)

	oppRef := 0.45
	qty := 50.0
	limit := TargetPrice(pp, SideYes, qty, oppRef)

	// Filling exactly at the limit lands the new average exactly on the
	// bound, so admission must reject at the limit and admit just below.
	assert.False(t, CanBuy(pp, SideYes, qty, limit, oppRef))
	assert.True(t, CanBuy(pp, SideYes, qty, limit-0.0001, oppRef))

	// And a fill just below the limit keeps the pair profitable post-fill.
	pp.AddFill(SideYes, qty, limit-0.0001)
	assert.Less(t, pp.Yes.AveragePrice()+oppRef, MaxPairSum)
}

func TestTargetPrice_CheaperAverageRaisesLimit(t *testing.T) {
	// A side sitting below the bound can afford to pay above it on a small
	// top-up; the weighted average absorbs the difference.
	pp := NewPairPosition()
	pp.AddFill(SideYes, 100, 0.30)
	limit := TargetPrice(pp, SideYes, 10, 0.45)
	assert.Greater(t, limit, 0.53)
}

func TestTargetPriceApprox(t *testing.T) {
	pp := NewPairPosition()
	assert.InDelta(t, 0.53, TargetPriceApprox(pp, SideYes, 0.45), 1e-9)

	pp.AddFill(SideYes, 100, 0.40)
	assert.InDelta(t, 0.53*0.95, TargetPriceApprox(pp, SideYes, 0.45), 1e-9)
}
