package models

// BaseCurrencyCode is the trading counter-currency. Every trade settles its
// second leg in this wallet and every registered portfolio starts with it.
const BaseCurrencyCode = "USD"

// InitialBaseBalance is the balance seeded into the base wallet at registration.
const InitialBaseBalance = 100.0

// Wallet holds one per-currency balance inside a portfolio.
type Wallet struct {
	CurrencyCode string  `json:"currency_code"`
	Balance      float64 `json:"balance"`
}

// Portfolio is the per-user balance map. It references its owner by user ID
// only; user identity lives with the auth side.
type Portfolio struct {
	UserID  string            `json:"user_id"`
	Wallets map[string]Wallet `json:"wallets"`
}

// NewPortfolio creates a registration-time portfolio with the seeded base wallet.
func NewPortfolio(userID string) Portfolio {
	return Portfolio{
		UserID: userID,
		Wallets: map[string]Wallet{
			BaseCurrencyCode: {CurrencyCode: BaseCurrencyCode, Balance: InitialBaseBalance},
		},
	}
}
