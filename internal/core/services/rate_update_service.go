package services

import (
	"context"
	"fmt"

	"github.com/valutatrade/valutatrade_hub/internal/apperrors"
	portsproviders "github.com/valutatrade/valutatrade_hub/internal/core/ports/providers"
	"github.com/valutatrade/valutatrade_hub/internal/core/ports/repositories"
	"github.com/valutatrade/valutatrade_hub/internal/dto"
	"github.com/valutatrade/valutatrade_hub/internal/models"
)

// RateUpdateService runs one best-effort fetch-and-merge pass over the
// configured rate providers. There is no automatic retry; the caller decides
// whether to invoke another pass.
type RateUpdateService struct {
	providers   []portsproviders.RateProvider
	cacheRepo   repositories.RateCacheRepositoryFacade
	historyRepo repositories.RateHistoryRepositoryFacade
}

// NewRateUpdateService creates a new RateUpdateService.
func NewRateUpdateService(
	rateProviders []portsproviders.RateProvider,
	cacheRepo repositories.RateCacheRepositoryFacade,
	historyRepo repositories.RateHistoryRepositoryFacade,
) *RateUpdateService {
	return &RateUpdateService{
		providers:   rateProviders,
		cacheRepo:   cacheRepo,
		historyRepo: historyRepo,
	}
}

// Update invokes the selected providers, merges their quotes and hands the
// batch to the cache and history. A failing provider is recorded and does not
// block the others. Only when every selected provider fails is the whole pass
// a failure; the previous snapshot is then left untouched.
func (s *RateUpdateService) Update(ctx context.Context, source string) (*dto.RateUpdateReport, error) {
	selected := s.providers
	if source != "" {
		selected = nil
		for _, p := range s.providers {
			if p.Name() == source {
				selected = append(selected, p)
			}
		}
		if len(selected) == 0 {
			return nil, fmt.Errorf("%w: unknown rate source %q", apperrors.ErrNotFound, source)
		}
	}

	// Later providers overwrite earlier ones for the same pair within this
	// run; the recency rule is applied by the cache merge afterwards.
	batch := make(map[string]models.Quote)
	order := make([]string, 0)
	var sourceErrors []dto.SourceError
	var causes []error

	for _, p := range selected {
		quotes, err := p.Fetch(ctx)
		if err != nil {
			causes = append(causes, err)
			sourceErrors = append(sourceErrors, dto.SourceError{Source: p.Name(), Reason: err.Error()})
			continue
		}
		for _, q := range quotes {
			key := q.PairKey()
			if _, ok := batch[key]; !ok {
				order = append(order, key)
			}
			batch[key] = q
		}
	}

	if len(causes) == len(selected) {
		return nil, &apperrors.AggregateFetchError{Causes: causes}
	}

	merged := make([]models.Quote, 0, len(batch))
	for _, key := range order {
		merged = append(merged, batch[key])
	}

	updated, doc, err := s.cacheRepo.Merge(ctx, merged)
	if err != nil {
		return nil, fmt.Errorf("failed to merge quotes into cache: %w", err)
	}
	if _, err := s.historyRepo.Append(ctx, merged); err != nil {
		return nil, fmt.Errorf("failed to append quotes to history: %w", err)
	}

	return &dto.RateUpdateReport{
		QuotesFetched: len(merged),
		PairsUpdated:  updated,
		LastRefresh:   doc.LastRefresh,
		SourceErrors:  sourceErrors,
	}, nil
}
