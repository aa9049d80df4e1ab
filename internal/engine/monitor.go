package engine

import (
	"github.com/hedgepair/hedgepair/internal/domain"
)

// PriceBandMonitor watches mid-prices and fires when one side's price
// enters the configured entry band. The trigger is edge-based: it fires on
// the tick the price crosses into [min, max] and stays quiet while the
// price sits inside, so the engine does not re-buy every tick.
type PriceBandMonitor struct {
	min float64
	max float64

	lastYes float64
	lastNo  float64
}

// NewPriceBandMonitor creates a monitor for the given entry band.
// The last-seen prices start at the neutral reference, so a market already
// inside the band at startup triggers only if 0.5 is outside the band.
func NewPriceBandMonitor(min, max float64) *PriceBandMonitor {
	return &PriceBandMonitor{
		min:     min,
		max:     max,
		lastYes: domain.NeutralPrice,
		lastNo:  domain.NeutralPrice,
	}
}

// CheckPrice returns the side whose mid-price just entered the band, or
// false when nothing newly entered this tick. YES wins if both sides enter
// on the same tick.
func (m *PriceBandMonitor) CheckPrice(book domain.OrderBook) (domain.Side, bool) {
	yesMid := book.Mid(domain.SideYes)
	noMid := book.Mid(domain.SideNo)

	yesEntered := m.inBand(yesMid) && !m.inBand(m.lastYes)
	noEntered := m.inBand(noMid) && !m.inBand(m.lastNo)

	m.lastYes = yesMid
	m.lastNo = noMid

	switch {
	case yesEntered:
		return domain.SideYes, true
	case noEntered:
		return domain.SideNo, true
	default:
		return "", false
	}
}

func (m *PriceBandMonitor) inBand(p float64) bool {
	return p >= m.min && p <= m.max
}

// Reset clears the price memory for a new market window.
func (m *PriceBandMonitor) Reset() {
	m.lastYes = domain.NeutralPrice
	m.lastNo = domain.NeutralPrice
}
