package services

import (
	"context"

	"github.com/valutatrade/valutatrade_hub/internal/models"
)

// CurrencySvcFacade exposes the static currency registry.
type CurrencySvcFacade interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	// Returns apperrors.ErrNotFound for codes outside the registry.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*models.Currency, error)

	// ListCurrencies retrieves all supported currencies.
	ListCurrencies(ctx context.Context) ([]models.Currency, error)
}
