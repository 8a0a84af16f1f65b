package jsonfile

import (
	"context"
	"fmt"

	"github.com/valutatrade/valutatrade_hub/internal/apperrors"
	"github.com/valutatrade/valutatrade_hub/internal/models"
)

// PortfolioRepository persists all portfolios as a single JSON array
// (portfolios.json). A save rewrites the whole set in one atomic swap, which
// is what makes a two-leg trade all-or-nothing on disk.
type PortfolioRepository struct {
	path string
}

// NewPortfolioRepository creates a repository writing to the given file path.
func NewPortfolioRepository(path string) *PortfolioRepository {
	return &PortfolioRepository{path: path}
}

func (r *PortfolioRepository) loadAll() []models.Portfolio {
	var portfolios []models.Portfolio
	if !readDocument(r.path, &portfolios) {
		return []models.Portfolio{}
	}
	return portfolios
}

// FindPortfolioByUserID retrieves the portfolio owned by the given user.
func (r *PortfolioRepository) FindPortfolioByUserID(ctx context.Context, userID string) (*models.Portfolio, error) {
	for _, p := range r.loadAll() {
		if p.UserID == userID {
			if p.Wallets == nil {
				p.Wallets = make(map[string]models.Wallet)
			}
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: portfolio for user %s", apperrors.ErrNotFound, userID)
}

// SavePortfolio replaces (or adds) the portfolio for its user and persists
// the whole set atomically.
func (r *PortfolioRepository) SavePortfolio(ctx context.Context, portfolio models.Portfolio) error {
	portfolios := r.loadAll()

	replaced := false
	for i, p := range portfolios {
		if p.UserID == portfolio.UserID {
			portfolios[i] = portfolio
			replaced = true
			break
		}
	}
	if !replaced {
		portfolios = append(portfolios, portfolio)
	}

	if err := writeDocumentAtomic(r.path, portfolios); err != nil {
		return fmt.Errorf("failed to persist portfolios: %w", err)
	}
	return nil
}
