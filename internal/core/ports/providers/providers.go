package providers

import (
	"context"

	"github.com/valutatrade/valutatrade_hub/internal/models"
)

// RateProvider fetches quotes from one external rate source. Implementations
// translate the provider response into normalized quotes (always CODE_BASE
// direction) and never touch storage. Any transport or non-2xx failure is
// surfaced as *apperrors.ProviderError.
type RateProvider interface {
	// Name is the selector used to address this provider in an update call.
	Name() string

	// Fetch performs one request against the provider and returns the quotes
	// for every currency code this provider is responsible for.
	Fetch(ctx context.Context) ([]models.Quote, error)
}
