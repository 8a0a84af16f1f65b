package dto

// TradeRequest defines the payload for a buy or sell operation.
type TradeRequest struct {
	CurrencyCode string  `json:"currencyCode" binding:"required,currencycode"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
}

// TradeResult is the structured record of one executed trade. It is both the
// API response and the payload the trade log line is built from.
type TradeResult struct {
	Action        string  `json:"action"`
	CurrencyCode  string  `json:"currencyCode"`
	Amount        float64 `json:"amount"`
	Rate          float64 `json:"rate"`
	QuoteAmount   float64 `json:"quoteAmount"`
	BeforeBalance float64 `json:"beforeBalance"`
	AfterBalance  float64 `json:"afterBalance"`
	BaseBalance   float64 `json:"baseBalance"`
}

// WalletValuation is one wallet line of a portfolio view, valued in the base currency.
type WalletValuation struct {
	CurrencyCode string  `json:"currencyCode"`
	Balance      float64 `json:"balance"`
	BaseValue    float64 `json:"baseValue"`
}

// PortfolioResponse is the full portfolio view: every wallet plus the total
// value in the base currency, all judged against one cache snapshot.
type PortfolioResponse struct {
	UserID       string            `json:"userID"`
	BaseCurrency string            `json:"baseCurrency"`
	Wallets      []WalletValuation `json:"wallets"`
	TotalValue   float64           `json:"totalValue"`
}
