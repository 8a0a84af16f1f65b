package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/valutatrade/valutatrade_hub/internal/apperrors"
	portsproviders "github.com/valutatrade/valutatrade_hub/internal/core/ports/providers"
	portssvc "github.com/valutatrade/valutatrade_hub/internal/core/ports/services"
	"github.com/valutatrade/valutatrade_hub/internal/core/services"
	"github.com/valutatrade/valutatrade_hub/internal/models"
)

// --- Test Suite ---

type RateUpdateServiceTestSuite struct {
	suite.Suite
	mockCacheRepo   *MockRateCacheRepository
	mockHistoryRepo *MockRateHistoryRepository
	mockCrypto      *MockRateProvider
	mockFiat        *MockRateProvider
	service         portssvc.RateUpdateSvcFacade
}

func (suite *RateUpdateServiceTestSuite) SetupTest() {
	suite.mockCacheRepo = new(MockRateCacheRepository)
	suite.mockHistoryRepo = new(MockRateHistoryRepository)
	suite.mockCrypto = new(MockRateProvider)
	suite.mockFiat = new(MockRateProvider)
	suite.mockCrypto.On("Name").Return("coingecko").Maybe()
	suite.mockFiat.On("Name").Return("exchangerate").Maybe()

	suite.service = services.NewRateUpdateService(
		[]portsproviders.RateProvider{suite.mockCrypto, suite.mockFiat},
		suite.mockCacheRepo,
		suite.mockHistoryRepo,
	)
}

func mustQuote(suite *RateUpdateServiceTestSuite, from string, rate float64, source string, observedAt time.Time) models.Quote {
	q, err := models.NewQuote(from, "USD", rate, source, observedAt, models.QuoteMeta{})
	suite.Require().NoError(err)
	return q
}

// --- Test Cases ---

func (suite *RateUpdateServiceTestSuite) TestUpdate_MergesAllProviders() {
	ctx := context.Background()
	now := time.Now().UTC()
	cryptoQuotes := []models.Quote{
		mustQuote(suite, "BTC", 59000, "CoinGecko", now),
		mustQuote(suite, "ETH", 2500, "CoinGecko", now),
	}
	fiatQuotes := []models.Quote{
		mustQuote(suite, "EUR", 1.08, "ExchangeRate-API", now),
	}
	suite.mockCrypto.On("Fetch", ctx).Return(cryptoQuotes, nil).Once()
	suite.mockFiat.On("Fetch", ctx).Return(fiatQuotes, nil).Once()

	mergedDoc := models.RateCacheDocument{Pairs: map[string]models.RateEntry{}, LastRefresh: now}
	suite.mockCacheRepo.On("Merge", ctx, mock.MatchedBy(func(quotes []models.Quote) bool {
		return len(quotes) == 3
	})).Return(3, mergedDoc, nil).Once()
	suite.mockHistoryRepo.On("Append", ctx, mock.Anything).Return(3, nil).Once()

	report, err := suite.service.Update(ctx, "")

	suite.Require().NoError(err)
	suite.Equal(3, report.QuotesFetched)
	suite.Equal(3, report.PairsUpdated)
	suite.WithinDuration(now, report.LastRefresh, time.Second)
	suite.Empty(report.SourceErrors)
	suite.mockCacheRepo.AssertExpectations(suite.T())
	suite.mockHistoryRepo.AssertExpectations(suite.T())
}

func (suite *RateUpdateServiceTestSuite) TestUpdate_OneProviderFailingDoesNotBlockTheOther() {
	ctx := context.Background()
	now := time.Now().UTC()
	fiatQuotes := []models.Quote{
		mustQuote(suite, "EUR", 1.08, "ExchangeRate-API", now),
	}
	suite.mockCrypto.On("Fetch", ctx).Return(nil, &apperrors.ProviderError{Source: "CoinGecko", Reason: "timeout"}).Once()
	suite.mockFiat.On("Fetch", ctx).Return(fiatQuotes, nil).Once()

	doc := models.RateCacheDocument{Pairs: map[string]models.RateEntry{}, LastRefresh: now}
	suite.mockCacheRepo.On("Merge", ctx, mock.MatchedBy(func(quotes []models.Quote) bool {
		return len(quotes) == 1 && quotes[0].From == "EUR"
	})).Return(1, doc, nil).Once()
	suite.mockHistoryRepo.On("Append", ctx, mock.Anything).Return(1, nil).Once()

	report, err := suite.service.Update(ctx, "")

	suite.Require().NoError(err)
	suite.Equal(1, report.QuotesFetched)
	suite.Require().Len(report.SourceErrors, 1)
	suite.Equal("coingecko", report.SourceErrors[0].Source)
	suite.Contains(report.SourceErrors[0].Reason, "timeout")
}

func (suite *RateUpdateServiceTestSuite) TestUpdate_AllProvidersFailingLeavesCacheUntouched() {
	ctx := context.Background()
	suite.mockCrypto.On("Fetch", ctx).Return(nil, &apperrors.ProviderError{Source: "CoinGecko", Reason: "timeout"}).Once()
	suite.mockFiat.On("Fetch", ctx).Return(nil, &apperrors.ProviderError{Source: "ExchangeRate-API", Reason: "status 500"}).Once()

	report, err := suite.service.Update(ctx, "")

	suite.Require().Error(err)
	suite.Nil(report)
	var aggregate *apperrors.AggregateFetchError
	suite.Require().ErrorAs(err, &aggregate)
	suite.Len(aggregate.Causes, 2)
	suite.mockCacheRepo.AssertNotCalled(suite.T(), "Merge", mock.Anything, mock.Anything)
	suite.mockHistoryRepo.AssertNotCalled(suite.T(), "Append", mock.Anything, mock.Anything)
}

func (suite *RateUpdateServiceTestSuite) TestUpdate_UnknownSource() {
	ctx := context.Background()

	report, err := suite.service.Update(ctx, "bloomberg")

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(report)
	suite.mockCrypto.AssertNotCalled(suite.T(), "Fetch", mock.Anything)
	suite.mockFiat.AssertNotCalled(suite.T(), "Fetch", mock.Anything)
}

func (suite *RateUpdateServiceTestSuite) TestUpdate_SourceSelectorRunsOnlyThatProvider() {
	ctx := context.Background()
	now := time.Now().UTC()
	fiatQuotes := []models.Quote{
		mustQuote(suite, "EUR", 1.08, "ExchangeRate-API", now),
	}
	suite.mockFiat.On("Fetch", ctx).Return(fiatQuotes, nil).Once()

	doc := models.RateCacheDocument{Pairs: map[string]models.RateEntry{}, LastRefresh: now}
	suite.mockCacheRepo.On("Merge", ctx, mock.Anything).Return(1, doc, nil).Once()
	suite.mockHistoryRepo.On("Append", ctx, mock.Anything).Return(1, nil).Once()

	report, err := suite.service.Update(ctx, "exchangerate")

	suite.Require().NoError(err)
	suite.Equal(1, report.QuotesFetched)
	suite.mockCrypto.AssertNotCalled(suite.T(), "Fetch", mock.Anything)
}

// When two providers quote the same pair within one pass, the later one wins
// before the batch ever reaches the cache.
func (suite *RateUpdateServiceTestSuite) TestUpdate_LastProviderWinsForSamePair() {
	ctx := context.Background()
	now := time.Now().UTC()
	suite.mockCrypto.On("Fetch", ctx).Return([]models.Quote{
		mustQuote(suite, "EUR", 1.05, "CoinGecko", now.Add(-time.Second)),
	}, nil).Once()
	suite.mockFiat.On("Fetch", ctx).Return([]models.Quote{
		mustQuote(suite, "EUR", 1.08, "ExchangeRate-API", now),
	}, nil).Once()

	doc := models.RateCacheDocument{Pairs: map[string]models.RateEntry{}, LastRefresh: now}
	suite.mockCacheRepo.On("Merge", ctx, mock.MatchedBy(func(quotes []models.Quote) bool {
		return len(quotes) == 1 && quotes[0].Rate == 1.08 && quotes[0].Source == "ExchangeRate-API"
	})).Return(1, doc, nil).Once()
	suite.mockHistoryRepo.On("Append", ctx, mock.Anything).Return(1, nil).Once()

	report, err := suite.service.Update(ctx, "")

	suite.Require().NoError(err)
	suite.Equal(1, report.QuotesFetched)
	suite.mockCacheRepo.AssertExpectations(suite.T())
}

// A provider that succeeds with zero quotes still counts as a successful
// pass; the refresh stamp moves forward even though nothing changed.
func (suite *RateUpdateServiceTestSuite) TestUpdate_EmptySuccessfulFetchStillMerges() {
	ctx := context.Background()
	suite.mockCrypto.On("Fetch", ctx).Return([]models.Quote{}, nil).Once()
	suite.mockFiat.On("Fetch", ctx).Return([]models.Quote{}, nil).Once()

	doc := models.RateCacheDocument{Pairs: map[string]models.RateEntry{}, LastRefresh: time.Now()}
	suite.mockCacheRepo.On("Merge", ctx, mock.MatchedBy(func(quotes []models.Quote) bool {
		return len(quotes) == 0
	})).Return(0, doc, nil).Once()
	suite.mockHistoryRepo.On("Append", ctx, mock.Anything).Return(0, nil).Once()

	report, err := suite.service.Update(ctx, "")

	suite.Require().NoError(err)
	suite.Equal(0, report.QuotesFetched)
	suite.Equal(0, report.PairsUpdated)
	suite.mockCacheRepo.AssertExpectations(suite.T())
}

func TestRateUpdateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RateUpdateServiceTestSuite))
}
