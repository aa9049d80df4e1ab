// Package marketsim generates a synthetic paired market: a random-walk YES
// price with complementary NO, spread ladders on both books, and a fixed
// settlement time. It stands in for the live CLOB during dry runs and tests.
package marketsim

import (
	"context"
	"math/rand"
	"time"

	"github.com/hedgepair/hedgepair/internal/domain"
)

const (
	levels     = 5
	baseSpread = 0.01
	minPrice   = 0.1
	maxPrice   = 0.9
)

// Simulator implements ports.BookProvider with generated data.
type Simulator struct {
	rng        *rand.Rand
	yesPrice   float64
	volatility float64
	settlement time.Time
}

// New creates a simulator starting at the given YES price with a settlement
// deadline the given window from now. seed fixes the walk for tests; pass 0
// for a time-derived seed.
func New(initialYesPrice float64, window time.Duration, seed int64) *Simulator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Simulator{
		rng:        rand.New(rand.NewSource(seed)),
		yesPrice:   initialYesPrice,
		volatility: 0.05,
		settlement: time.Now().UTC().Add(window),
	}
}

// Settlement returns the simulated market's end time.
func (s *Simulator) Settlement() time.Time {
	return s.settlement
}

// FetchOrderBook advances the random walk one step and returns the books
// around the new price.
func (s *Simulator) FetchOrderBook(_ context.Context) (domain.OrderBook, error) {
	s.step()
	return s.snapshot(), nil
}

// step moves the YES price by a Gaussian increment, clamped away from the
// extremes so both books always have room for a ladder.
func (s *Simulator) step() {
	change := s.rng.NormFloat64() * s.volatility * 0.1
	s.yesPrice = clamp(s.yesPrice+change, minPrice, maxPrice)
}

// snapshot builds five-level ladders on both sides of both books.
func (s *Simulator) snapshot() domain.OrderBook {
	return domain.OrderBook{
		Yes:       s.ladder(s.yesPrice),
		No:        s.ladder(1 - s.yesPrice),
		Timestamp: time.Now().UTC(),
	}
}

func (s *Simulator) ladder(mid float64) domain.Book {
	var book domain.Book
	for i := 0; i < levels; i++ {
		offset := baseSpread*float64(i+1) + 0.01*float64(i)
		size := 50 + s.rng.Float64()*150

		if bid := mid - offset; bid > 0 {
			book.Bids = append(book.Bids, domain.BookEntry{Price: bid, Size: size})
		}
		if ask := mid + offset; ask < 1 {
			book.Asks = append(book.Asks, domain.BookEntry{Price: ask, Size: 50 + s.rng.Float64()*150})
		}
	}
	return book
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
