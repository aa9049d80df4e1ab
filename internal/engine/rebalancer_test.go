package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hedgepair/hedgepair/internal/domain"
)

func TestRebalancer_BelowThreshold(t *testing.T) {
	// 130 vs 100 → ratio ~13%, under 20%.
	pp := domain.NewPairPosition()
	pp.AddFill(domain.SideYes, 130, 0.40)
	pp.AddFill(domain.SideNo, 100, 0.40)

	r := NewRebalancer(0.2)
	assert.False(t, r.ShouldRebalance(pp))

	// Not worth a rebalance trade, but the priority side is still NO.
	assert.Equal(t, domain.SideNo, r.PrioritySide(pp))
}

func TestRebalancer_FallbackToSmallerSide(t *testing.T) {
	// 110 vs 100 is inside the 1.2 target ratio, so PrioritySide falls
	// back to whichever side holds fewer units.
	pp := domain.NewPairPosition()
	pp.AddFill(domain.SideYes, 110, 0.40)
	pp.AddFill(domain.SideNo, 100, 0.40)

	r := NewRebalancer(0.2)
	assert.Equal(t, domain.SideNo, r.PrioritySide(pp))
}

func TestRebalancer_AboveThreshold(t *testing.T) {
	// 200 vs 100 → ratio ~33%.
	pp := domain.NewPairPosition()
	pp.AddFill(domain.SideYes, 200, 0.40)
	pp.AddFill(domain.SideNo, 100, 0.40)

	r := NewRebalancer(0.2)
	assert.True(t, r.ShouldRebalance(pp))
	assert.Equal(t, domain.SideNo, r.PrioritySide(pp))
}

func TestRebalancer_EmptyPosition(t *testing.T) {
	pp := domain.NewPairPosition()
	r := NewRebalancer(0.2)
	assert.False(t, r.ShouldRebalance(pp))
	// Equal (zero) quantities fall back to NO.
	assert.Equal(t, domain.SideNo, r.PrioritySide(pp))
}
