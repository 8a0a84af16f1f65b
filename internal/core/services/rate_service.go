package services

import (
	"context"
	"fmt"
	"time"

	"github.com/valutatrade/valutatrade_hub/internal/apperrors"
	"github.com/valutatrade/valutatrade_hub/internal/core/ports/repositories"
	"github.com/valutatrade/valutatrade_hub/internal/dto"
	"github.com/valutatrade/valutatrade_hub/internal/models"
)

// RateService resolves current rates from the cached snapshot while enforcing
// the freshness policy.
type RateService struct {
	cacheRepo repositories.RateCacheRepositoryFacade
	ttl       time.Duration
	now       func() time.Time
}

// NewRateService creates a new RateService with the given freshness window.
func NewRateService(cacheRepo repositories.RateCacheRepositoryFacade, ttl time.Duration) *RateService {
	return &RateService{cacheRepo: cacheRepo, ttl: ttl, now: time.Now}
}

// LoadSnapshot returns the current cached document for callers that resolve
// several pairs against one consistent snapshot.
func (s *RateService) LoadSnapshot(ctx context.Context) (models.RateCacheDocument, error) {
	return s.cacheRepo.Load(ctx)
}

// ResolveRate resolves one pair against an already-loaded snapshot.
//
// The identity pair always resolves to 1.0 without consulting the snapshot.
// A missing pair is RateUnavailableError. A present pair whose document is
// older than the TTL is StaleRatesError; freshness is judged on the
// document-wide last refresh, not the pair's own update time.
func (s *RateService) ResolveRate(doc models.RateCacheDocument, fromCode, toCode string) (float64, error) {
	if err := models.ValidateCurrencyCode(fromCode); err != nil {
		return 0, err
	}
	if err := models.ValidateCurrencyCode(toCode); err != nil {
		return 0, err
	}
	if fromCode == toCode {
		return 1.0, nil
	}

	entry, ok := doc.Pairs[models.PairKey(fromCode, toCode)]
	if !ok {
		return 0, &apperrors.RateUnavailableError{From: fromCode, To: toCode}
	}
	if s.now().Sub(doc.LastRefresh) > s.ttl {
		return 0, &apperrors.StaleRatesError{LastRefresh: doc.LastRefresh, TTL: s.ttl}
	}
	return entry.Rate, nil
}

// GetRate loads the cached snapshot and resolves one pair. The identity pair
// short-circuits before any I/O.
func (s *RateService) GetRate(ctx context.Context, fromCode, toCode string) (float64, error) {
	if err := models.ValidateCurrencyCode(fromCode); err != nil {
		return 0, err
	}
	if err := models.ValidateCurrencyCode(toCode); err != nil {
		return 0, err
	}
	if fromCode == toCode {
		return 1.0, nil
	}

	doc, err := s.cacheRepo.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load rate cache: %w", err)
	}
	return s.ResolveRate(doc, fromCode, toCode)
}

// GetRateDetail resolves one pair for display, including the inverse rate.
func (s *RateService) GetRateDetail(ctx context.Context, fromCode, toCode string) (*dto.RateResponse, error) {
	if err := models.ValidateCurrencyCode(fromCode); err != nil {
		return nil, err
	}
	if err := models.ValidateCurrencyCode(toCode); err != nil {
		return nil, err
	}
	if fromCode == toCode {
		return &dto.RateResponse{From: fromCode, To: toCode, Rate: 1.0, InverseRate: 1.0}, nil
	}

	doc, err := s.cacheRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rate cache: %w", err)
	}
	rate, err := s.ResolveRate(doc, fromCode, toCode)
	if err != nil {
		return nil, err
	}

	resp := &dto.RateResponse{
		From:        fromCode,
		To:          toCode,
		Rate:        rate,
		InverseRate: 1 / rate,
	}
	if entry, ok := doc.Pairs[models.PairKey(fromCode, toCode)]; ok {
		resp.UpdatedAt = entry.UpdatedAt
		resp.Source = entry.Source
	}
	return resp, nil
}
