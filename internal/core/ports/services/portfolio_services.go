package services

import (
	"context"

	"github.com/valutatrade/valutatrade_hub/internal/dto"
)

// PortfolioReaderSvc defines read operations over a user's portfolio.
type PortfolioReaderSvc interface {
	// GetPortfolio returns every wallet with its valuation in the base
	// currency. The whole view is priced against one cache snapshot and
	// aborts if any held pair is stale or unavailable.
	GetPortfolio(ctx context.Context, userID string) (*dto.PortfolioResponse, error)
}

// PortfolioTraderSvc defines the trade operations.
type PortfolioTraderSvc interface {
	// Buy credits amount of the given currency and debits the base wallet by
	// rate*amount, both legs applied together or not at all.
	Buy(ctx context.Context, userID, currencyCode string, amount float64) (*dto.TradeResult, error)

	// Sell debits amount of the given currency and credits the base wallet by
	// rate*amount, both legs applied together or not at all.
	Sell(ctx context.Context, userID, currencyCode string, amount float64) (*dto.TradeResult, error)
}

// PortfolioSvcFacade combines all portfolio-related service interfaces.
type PortfolioSvcFacade interface {
	PortfolioReaderSvc
	PortfolioTraderSvc
}
