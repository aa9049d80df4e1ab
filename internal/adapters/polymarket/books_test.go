package polymarket_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hedgepair/hedgepair/internal/adapters/polymarket"
)

const marketJSON = `{
	"condition_id": "0xabc123",
	"question": "Will it rain tomorrow?",
	"end_date_iso": "2026-09-01T12:00:00Z",
	"active": true,
	"closed": false,
	"tokens": [
		{"token_id": "tok_yes", "outcome": "Yes", "price": 0.45},
		{"token_id": "tok_no", "outcome": "No", "price": 0.55}
	]
}`

const booksJSON = `[
	{
		"asset_id": "tok_yes",
		"bids": [{"price": "0.44", "size": "120"}, {"price": "0.43", "size": "300"}],
		"asks": [{"price": "0.47", "size": "80"}, {"price": "0.46", "size": "150"}]
	},
	{
		"asset_id": "tok_no",
		"bids": [{"price": "0.53", "size": "90"}],
		"asks": [{"price": "0.56", "size": "200"}]
	}
]`

func TestFetchMarket(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/markets/0xabc123", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(marketJSON))
	}))
	defer srv.Close()

	client := polymarket.NewClient(srv.URL)
	info, err := client.FetchMarket(context.Background(), "0xabc123")
	require.NoError(t, err)

	assert.Equal(t, "tok_yes", info.YesTokenID)
	assert.Equal(t, "tok_no", info.NoTokenID)
	assert.Equal(t, "Will it rain tomorrow?", info.Question)
	assert.Equal(t, 2026, info.EndDate.Year())
	assert.Equal(t, "UTC", info.EndDate.Location().String())
}

func TestFetchMarket_Closed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"condition_id": "0xdead", "closed": true, "tokens": []}`))
	}))
	defer srv.Close()

	client := polymarket.NewClient(srv.URL)
	_, err := client.FetchMarket(context.Background(), "0xdead")
	assert.ErrorContains(t, err, "closed")
}

func TestBookProvider_FetchOrderBook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/books", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(booksJSON))
	}))
	defer srv.Close()

	provider := polymarket.NewBookProvider(polymarket.NewClient(srv.URL), "tok_yes", "tok_no")
	book, err := provider.FetchOrderBook(context.Background())
	require.NoError(t, err)

	// Asks come back unsorted from the API; mapping sorts lowest-first.
	ask, ok := book.Yes.BestAsk()
	require.True(t, ok)
	assert.Equal(t, 0.46, ask.Price)
	assert.Equal(t, 150.0, ask.Size)

	bid, ok := book.Yes.BestBid()
	require.True(t, ok)
	assert.Equal(t, 0.44, bid.Price)

	noAsk, ok := book.No.BestAsk()
	require.True(t, ok)
	assert.Equal(t, 0.56, noAsk.Price)
	assert.False(t, book.Timestamp.IsZero())
}

func TestBookProvider_MissingBook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"asset_id": "tok_yes", "bids": [], "asks": []}]`))
	}))
	defer srv.Close()

	provider := polymarket.NewBookProvider(polymarket.NewClient(srv.URL), "tok_yes", "tok_no")
	_, err := provider.FetchOrderBook(context.Background())
	assert.ErrorContains(t, err, "1 of 2")
}

func TestClient_ServerErrorRetriesExhausted(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := polymarket.NewClient(srv.URL)
	_, err := client.FetchMarket(context.Background(), "0xabc")
	assert.Error(t, err)
	assert.Equal(t, 4, hits) // initial attempt + 3 retries
}
