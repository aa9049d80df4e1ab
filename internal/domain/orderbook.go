package domain

import "time"

// BookEntry is one price level in an order book.
type BookEntry struct {
	Price float64
	Size  float64
}

// Book holds one token's resting orders.
// Bids are sorted highest price first, asks lowest first.
type Book struct {
	Bids []BookEntry
	Asks []BookEntry
}

// BestAsk returns the lowest resting ask and true, or false when the ask
// side is empty.
func (b Book) BestAsk() (BookEntry, bool) {
	if len(b.Asks) == 0 {
		return BookEntry{}, false
	}
	return b.Asks[0], true
}

// BestBid returns the highest resting bid and true, or false when the bid
// side is empty.
func (b Book) BestBid() (BookEntry, bool) {
	if len(b.Bids) == 0 {
		return BookEntry{}, false
	}
	return b.Bids[0], true
}

// Mid returns the midpoint between best bid and best ask, or NeutralPrice
// when either side is empty.
func (b Book) Mid() float64 {
	bid, okBid := b.BestBid()
	ask, okAsk := b.BestAsk()
	if !okBid || !okAsk {
		return NeutralPrice
	}
	return (bid.Price + ask.Price) / 2
}

// OrderBook is a point-in-time snapshot of both sides of a paired market.
// YES and NO mids are expected to sum to roughly 1; that is a property of
// the market, not enforced here.
type OrderBook struct {
	Yes       Book
	No        Book
	Timestamp time.Time
}

// SideBook returns the book for one side.
func (ob OrderBook) SideBook(s Side) Book {
	if s == SideYes {
		return ob.Yes
	}
	return ob.No
}

// BestAsk returns the lowest resting ask on the given side.
func (ob OrderBook) BestAsk(s Side) (BookEntry, bool) {
	return ob.SideBook(s).BestAsk()
}

// Mid returns the mid-price for the given side.
func (ob OrderBook) Mid(s Side) float64 {
	return ob.SideBook(s).Mid()
}
