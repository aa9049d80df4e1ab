package polymarket

import (
	"sort"
	"strconv"

	"github.com/hedgepair/hedgepair/internal/domain"
)

// mapBook converts one raw book into a domain.Book with bids highest-first
// and asks lowest-first, the ordering the rest of the system assumes.
func mapBook(r orderBookResponse) domain.Book {
	return domain.Book{
		Bids: mapBookEntries(r.Bids, false),
		Asks: mapBookEntries(r.Asks, true),
	}
}

// mapBookEntries parses raw levels and sorts them.
// ascending=true → lowest first (asks), ascending=false → highest first (bids).
func mapBookEntries(raw []bookEntryRaw, ascending bool) []domain.BookEntry {
	entries := make([]domain.BookEntry, 0, len(raw))
	for _, r := range raw {
		price, _ := strconv.ParseFloat(r.Price, 64)
		size, _ := strconv.ParseFloat(r.Size, 64)
		if price <= 0 || size <= 0 {
			continue
		}
		entries = append(entries, domain.BookEntry{Price: price, Size: size})
	}

	sort.Slice(entries, func(i, j int) bool {
		if ascending {
			return entries[i].Price < entries[j].Price
		}
		return entries[i].Price > entries[j].Price
	})

	return entries
}
