package polymarket

// books.go — paired book fetching for one binary market.
//
// The engine trades exactly one YES token and one NO token, so the provider
// resolves both token IDs up front (from the condition ID when not
// configured) and batches both into a single POST /books per tick.

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hedgepair/hedgepair/internal/domain"
)

const (
	marketsPath = "/markets/"
	booksPath   = "/books"
)

// MarketInfo is the resolved metadata of one binary market.
type MarketInfo struct {
	ConditionID string
	Question    string
	YesTokenID  string
	NoTokenID   string
	EndDate     time.Time
}

// FetchMarket resolves a market's outcome tokens and end date from its
// condition ID.
func (c *Client) FetchMarket(ctx context.Context, conditionID string) (MarketInfo, error) {
	var raw clobMarket
	url := c.base + marketsPath + conditionID
	if err := c.get(ctx, c.limiter, url, &raw); err != nil {
		return MarketInfo{}, fmt.Errorf("polymarket.FetchMarket: %w", err)
	}
	if raw.Closed {
		return MarketInfo{}, fmt.Errorf("polymarket.FetchMarket: market %s is closed", conditionID)
	}

	info := MarketInfo{
		ConditionID: raw.ConditionID,
		Question:    raw.Question,
	}
	for _, tok := range raw.Tokens {
		switch strings.ToUpper(tok.Outcome) {
		case "YES":
			info.YesTokenID = tok.TokenID
		case "NO":
			info.NoTokenID = tok.TokenID
		}
	}
	if info.YesTokenID == "" || info.NoTokenID == "" {
		return MarketInfo{}, fmt.Errorf("polymarket.FetchMarket: market %s is not binary YES/NO", conditionID)
	}

	if raw.EndDateISO != "" {
		end, err := time.Parse(time.RFC3339, raw.EndDateISO)
		if err != nil {
			return MarketInfo{}, fmt.Errorf("polymarket.FetchMarket: parse end date %q: %w", raw.EndDateISO, err)
		}
		info.EndDate = end.UTC()
	}

	slog.Info("market resolved",
		"condition_id", info.ConditionID,
		"question", info.Question,
		"end_date", info.EndDate,
	)
	return info, nil
}

// BookProvider implements ports.BookProvider for one live market.
type BookProvider struct {
	client     *Client
	yesTokenID string
	noTokenID  string
}

// NewBookProvider creates a provider bound to the given token pair.
func NewBookProvider(client *Client, yesTokenID, noTokenID string) *BookProvider {
	return &BookProvider{client: client, yesTokenID: yesTokenID, noTokenID: noTokenID}
}

// FetchOrderBook fetches both books in one batch request.
func (p *BookProvider) FetchOrderBook(ctx context.Context) (domain.OrderBook, error) {
	body := []orderBookRequest{
		{TokenID: p.yesTokenID},
		{TokenID: p.noTokenID},
	}

	var resp []orderBookResponse
	url := p.client.base + booksPath
	if err := p.client.post(ctx, p.client.booksLimiter, url, body, &resp); err != nil {
		return domain.OrderBook{}, fmt.Errorf("polymarket.FetchOrderBook: POST /books: %w", err)
	}

	book := domain.OrderBook{Timestamp: time.Now().UTC()}
	seen := 0
	for _, r := range resp {
		switch r.AssetID {
		case p.yesTokenID:
			book.Yes = mapBook(r)
			seen++
		case p.noTokenID:
			book.No = mapBook(r)
			seen++
		}
	}
	if seen < 2 {
		return domain.OrderBook{}, fmt.Errorf("polymarket.FetchOrderBook: got %d of 2 books", seen)
	}
	return book, nil
}
