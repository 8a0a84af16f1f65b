package services

import (
	"context"

	"github.com/valutatrade/valutatrade_hub/internal/dto"
	"github.com/valutatrade/valutatrade_hub/internal/models"
)

// RateReaderSvc defines rate resolution operations.
type RateReaderSvc interface {
	// GetRate resolves the current rate for one pair, loading the cached
	// snapshot and enforcing the freshness policy.
	GetRate(ctx context.Context, fromCode, toCode string) (float64, error)

	// GetRateDetail resolves one pair for display, including the inverse rate.
	GetRateDetail(ctx context.Context, fromCode, toCode string) (*dto.RateResponse, error)

	// ResolveRate resolves one pair against an already-loaded snapshot so a
	// multi-pair operation gets a single consistent staleness judgment.
	ResolveRate(doc models.RateCacheDocument, fromCode, toCode string) (float64, error)

	// LoadSnapshot returns the current cached document for callers that will
	// resolve several pairs against it.
	LoadSnapshot(ctx context.Context) (models.RateCacheDocument, error)
}

// RateSvcFacade combines all rate resolution interfaces.
type RateSvcFacade interface {
	RateReaderSvc
}

// RateUpdateSvcFacade runs one best-effort fetch-and-merge pass over the
// configured providers.
type RateUpdateSvcFacade interface {
	// Update invokes the selected providers (all of them when source is
	// empty), merges their quotes into the cache and history, and reports the
	// outcome. When every provider fails it returns *apperrors.AggregateFetchError
	// and leaves the cache untouched.
	Update(ctx context.Context, source string) (*dto.RateUpdateReport, error)
}
