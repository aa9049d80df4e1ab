package polymarket

// Raw DTOs from the Polymarket CLOB API, used only inside this package.
// Conversion to domain entities lives in mapping.go.

// clobMarket is the response of GET /markets/{condition_id}.
type clobMarket struct {
	ConditionID string      `json:"condition_id"`
	Question    string      `json:"question"`
	EndDateISO  string      `json:"end_date_iso"`
	Active      bool        `json:"active"`
	Closed      bool        `json:"closed"`
	Tokens      []clobToken `json:"tokens"`
}

// clobToken represents one outcome token (Yes/No) of a market.
type clobToken struct {
	TokenID string  `json:"token_id"`
	Outcome string  `json:"outcome"`
	Price   float64 `json:"price"`
}

// orderBookRequest is one item of the POST /books batch body.
type orderBookRequest struct {
	TokenID string `json:"token_id"`
}

// orderBookResponse is one book in the POST /books response.
type orderBookResponse struct {
	AssetID string         `json:"asset_id"`
	Bids    []bookEntryRaw `json:"bids"`
	Asks    []bookEntryRaw `json:"asks"`
}

// bookEntryRaw is a raw price level (strings for precision).
type bookEntryRaw struct {
	Price string `json:"price"`
	Size  string `json:"size"`
}
