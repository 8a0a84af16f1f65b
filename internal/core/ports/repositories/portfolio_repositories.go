package repositories

import (
	"context"

	"github.com/valutatrade/valutatrade_hub/internal/models"
)

// PortfolioReader defines read operations for portfolio data.
type PortfolioReader interface {
	// FindPortfolioByUserID retrieves the portfolio owned by the given user.
	// Returns apperrors.ErrNotFound if the user has no portfolio.
	FindPortfolioByUserID(ctx context.Context, userID string) (*models.Portfolio, error)
}

// PortfolioWriter defines write operations for portfolio data.
type PortfolioWriter interface {
	// SavePortfolio persists the portfolio, replacing any existing one for the
	// same user. The whole portfolio set is written in one atomic swap.
	SavePortfolio(ctx context.Context, portfolio models.Portfolio) error
}

// PortfolioRepositoryFacade combines all portfolio repository interfaces.
type PortfolioRepositoryFacade interface {
	PortfolioReader
	PortfolioWriter
}
