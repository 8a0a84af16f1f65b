package services_test

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/valutatrade/valutatrade_hub/internal/apperrors"
	portssvc "github.com/valutatrade/valutatrade_hub/internal/core/ports/services"
	"github.com/valutatrade/valutatrade_hub/internal/core/services"
	"github.com/valutatrade/valutatrade_hub/internal/models"
)

// --- Test Suite ---

type PortfolioServiceTestSuite struct {
	suite.Suite
	mockPortfolioRepo *MockPortfolioRepository
	mockRateService   *MockRateService
	service           portssvc.PortfolioSvcFacade
	userID            string
}

func (suite *PortfolioServiceTestSuite) SetupTest() {
	suite.mockPortfolioRepo = new(MockPortfolioRepository)
	suite.mockRateService = new(MockRateService)
	suite.service = services.NewPortfolioService(suite.mockPortfolioRepo, suite.mockRateService, models.BaseCurrencyCode)
	suite.userID = uuid.NewString()
}

func (suite *PortfolioServiceTestSuite) freshPortfolio() *models.Portfolio {
	p := models.NewPortfolio(suite.userID)
	return &p
}

// --- Test Cases ---

func (suite *PortfolioServiceTestSuite) TestBuy_Success() {
	ctx := context.Background()
	suite.mockPortfolioRepo.On("FindPortfolioByUserID", ctx, suite.userID).Return(suite.freshPortfolio(), nil).Once()
	suite.mockRateService.On("GetRate", ctx, "BTC", "USD").Return(50000.0, nil).Once()
	suite.mockPortfolioRepo.On("SavePortfolio", ctx, mock.MatchedBy(func(p models.Portfolio) bool {
		usd := p.Wallets["USD"]
		btc := p.Wallets["BTC"]
		return math.Abs(usd.Balance-50.0) < 1e-9 &&
			math.Abs(btc.Balance-0.001) < 1e-12 &&
			btc.CurrencyCode == "BTC"
	})).Return(nil).Once()

	result, err := suite.service.Buy(ctx, suite.userID, "BTC", 0.001)

	suite.Require().NoError(err)
	suite.Equal("BUY", result.Action)
	suite.Equal("BTC", result.CurrencyCode)
	suite.Equal(0.001, result.Amount)
	suite.Equal(50000.0, result.Rate)
	suite.InDelta(50.0, result.QuoteAmount, 1e-9)
	suite.Equal(0.0, result.BeforeBalance)
	suite.InDelta(0.001, result.AfterBalance, 1e-12)
	suite.InDelta(50.0, result.BaseBalance, 1e-9)
	suite.mockPortfolioRepo.AssertExpectations(suite.T())
}

func (suite *PortfolioServiceTestSuite) TestBuy_InsufficientFundsLeavesBalancesUntouched() {
	ctx := context.Background()
	suite.mockPortfolioRepo.On("FindPortfolioByUserID", ctx, suite.userID).Return(suite.freshPortfolio(), nil).Once()
	suite.mockRateService.On("GetRate", ctx, "BTC", "USD").Return(50000.0, nil).Once()

	result, err := suite.service.Buy(ctx, suite.userID, "BTC", 0.01)

	suite.Require().Error(err)
	suite.Nil(result)
	var insufficient *apperrors.InsufficientFundsError
	suite.Require().ErrorAs(err, &insufficient)
	suite.Equal(100.0, insufficient.Available)
	suite.InDelta(500.0, insufficient.Required, 1e-9)
	suite.Equal("USD", insufficient.Code)
	suite.mockPortfolioRepo.AssertNotCalled(suite.T(), "SavePortfolio", mock.Anything, mock.Anything)
}

func (suite *PortfolioServiceTestSuite) TestBuy_InvalidInputSkipsRepositories() {
	ctx := context.Background()

	_, err := suite.service.Buy(ctx, suite.userID, "BTC", -1)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.Buy(ctx, suite.userID, "btc", 1)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)

	suite.mockPortfolioRepo.AssertNotCalled(suite.T(), "FindPortfolioByUserID", mock.Anything, mock.Anything)
	suite.mockRateService.AssertNotCalled(suite.T(), "GetRate", mock.Anything, mock.Anything, mock.Anything)
}

// Trading the base currency against itself is a net-zero operation: both
// legs hit the same wallet and must cancel out exactly.
func (suite *PortfolioServiceTestSuite) TestBuy_BaseCurrencyNetsToZero() {
	ctx := context.Background()
	suite.mockPortfolioRepo.On("FindPortfolioByUserID", ctx, suite.userID).Return(suite.freshPortfolio(), nil).Once()
	suite.mockRateService.On("GetRate", ctx, "USD", "USD").Return(1.0, nil).Once()
	suite.mockPortfolioRepo.On("SavePortfolio", ctx, mock.MatchedBy(func(p models.Portfolio) bool {
		return p.Wallets["USD"].Balance == 100.0 && len(p.Wallets) == 1
	})).Return(nil).Once()

	result, err := suite.service.Buy(ctx, suite.userID, "USD", 10)

	suite.Require().NoError(err)
	suite.Equal(100.0, result.BeforeBalance)
	suite.Equal(100.0, result.AfterBalance)
	suite.Equal(100.0, result.BaseBalance)
	suite.Equal(10.0, result.QuoteAmount)
	suite.mockPortfolioRepo.AssertExpectations(suite.T())
}

func (suite *PortfolioServiceTestSuite) TestSell_BaseCurrencyNetsToZero() {
	ctx := context.Background()
	suite.mockPortfolioRepo.On("FindPortfolioByUserID", ctx, suite.userID).Return(suite.freshPortfolio(), nil).Once()
	suite.mockRateService.On("GetRate", ctx, "USD", "USD").Return(1.0, nil).Once()
	suite.mockPortfolioRepo.On("SavePortfolio", ctx, mock.MatchedBy(func(p models.Portfolio) bool {
		return p.Wallets["USD"].Balance == 100.0
	})).Return(nil).Once()

	result, err := suite.service.Sell(ctx, suite.userID, "USD", 10)

	suite.Require().NoError(err)
	suite.Equal(100.0, result.BeforeBalance)
	suite.Equal(100.0, result.AfterBalance)
	suite.Equal(100.0, result.BaseBalance)
	suite.mockPortfolioRepo.AssertExpectations(suite.T())
}

func (suite *PortfolioServiceTestSuite) TestBuy_RateErrorAbortsTrade() {
	ctx := context.Background()
	suite.mockPortfolioRepo.On("FindPortfolioByUserID", ctx, suite.userID).Return(suite.freshPortfolio(), nil).Once()
	suite.mockRateService.On("GetRate", ctx, "BTC", "USD").
		Return(0.0, &apperrors.StaleRatesError{LastRefresh: time.Now().Add(-time.Hour), TTL: 5 * time.Minute}).Once()

	_, err := suite.service.Buy(ctx, suite.userID, "BTC", 0.001)

	var stale *apperrors.StaleRatesError
	suite.Require().ErrorAs(err, &stale)
	suite.mockPortfolioRepo.AssertNotCalled(suite.T(), "SavePortfolio", mock.Anything, mock.Anything)
}

func (suite *PortfolioServiceTestSuite) TestSell_Success() {
	ctx := context.Background()
	portfolio := &models.Portfolio{
		UserID: suite.userID,
		Wallets: map[string]models.Wallet{
			"USD": {CurrencyCode: "USD", Balance: 50},
			"BTC": {CurrencyCode: "BTC", Balance: 0.002},
		},
	}
	suite.mockPortfolioRepo.On("FindPortfolioByUserID", ctx, suite.userID).Return(portfolio, nil).Once()
	suite.mockRateService.On("GetRate", ctx, "BTC", "USD").Return(50000.0, nil).Once()
	suite.mockPortfolioRepo.On("SavePortfolio", ctx, mock.MatchedBy(func(p models.Portfolio) bool {
		return math.Abs(p.Wallets["USD"].Balance-100.0) < 1e-9 &&
			math.Abs(p.Wallets["BTC"].Balance-0.001) < 1e-12
	})).Return(nil).Once()

	result, err := suite.service.Sell(ctx, suite.userID, "BTC", 0.001)

	suite.Require().NoError(err)
	suite.Equal("SELL", result.Action)
	suite.InDelta(50.0, result.QuoteAmount, 1e-9)
	suite.Equal(0.002, result.BeforeBalance)
	suite.InDelta(0.001, result.AfterBalance, 1e-12)
	suite.InDelta(100.0, result.BaseBalance, 1e-9)
	suite.mockPortfolioRepo.AssertExpectations(suite.T())
}

func (suite *PortfolioServiceTestSuite) TestSell_NoWallet() {
	ctx := context.Background()
	suite.mockPortfolioRepo.On("FindPortfolioByUserID", ctx, suite.userID).Return(suite.freshPortfolio(), nil).Once()
	suite.mockRateService.On("GetRate", ctx, "ETH", "USD").Return(2500.0, nil).Once()

	_, err := suite.service.Sell(ctx, suite.userID, "ETH", 1)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockPortfolioRepo.AssertNotCalled(suite.T(), "SavePortfolio", mock.Anything, mock.Anything)
}

func (suite *PortfolioServiceTestSuite) TestSell_InsufficientHoldings() {
	ctx := context.Background()
	portfolio := &models.Portfolio{
		UserID: suite.userID,
		Wallets: map[string]models.Wallet{
			"USD": {CurrencyCode: "USD", Balance: 50},
			"BTC": {CurrencyCode: "BTC", Balance: 0.0005},
		},
	}
	suite.mockPortfolioRepo.On("FindPortfolioByUserID", ctx, suite.userID).Return(portfolio, nil).Once()
	suite.mockRateService.On("GetRate", ctx, "BTC", "USD").Return(50000.0, nil).Once()

	_, err := suite.service.Sell(ctx, suite.userID, "BTC", 0.001)

	var insufficient *apperrors.InsufficientFundsError
	suite.Require().ErrorAs(err, &insufficient)
	suite.Equal(0.0005, insufficient.Available)
	suite.Equal(0.001, insufficient.Required)
	suite.Equal("BTC", insufficient.Code)
	suite.mockPortfolioRepo.AssertNotCalled(suite.T(), "SavePortfolio", mock.Anything, mock.Anything)
}

func (suite *PortfolioServiceTestSuite) TestGetPortfolio_ValuesAgainstOneSnapshot() {
	ctx := context.Background()
	portfolio := &models.Portfolio{
		UserID: suite.userID,
		Wallets: map[string]models.Wallet{
			"USD": {CurrencyCode: "USD", Balance: 50},
			"BTC": {CurrencyCode: "BTC", Balance: 0.001},
		},
	}
	doc := models.RateCacheDocument{
		Pairs: map[string]models.RateEntry{
			models.PairKey("BTC", "USD"): {Rate: 50000, UpdatedAt: time.Now()},
		},
		LastRefresh: time.Now(),
	}
	suite.mockPortfolioRepo.On("FindPortfolioByUserID", ctx, suite.userID).Return(portfolio, nil).Once()
	suite.mockRateService.On("LoadSnapshot", ctx).Return(doc, nil).Once()
	suite.mockRateService.On("ResolveRate", doc, "BTC", "USD").Return(50000.0, nil).Once()
	suite.mockRateService.On("ResolveRate", doc, "USD", "USD").Return(1.0, nil).Once()

	resp, err := suite.service.GetPortfolio(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(suite.userID, resp.UserID)
	suite.Equal("USD", resp.BaseCurrency)
	suite.Require().Len(resp.Wallets, 2)
	suite.Equal("BTC", resp.Wallets[0].CurrencyCode)
	suite.InDelta(50.0, resp.Wallets[0].BaseValue, 1e-9)
	suite.Equal("USD", resp.Wallets[1].CurrencyCode)
	suite.InDelta(50.0, resp.Wallets[1].BaseValue, 1e-9)
	suite.InDelta(100.0, resp.TotalValue, 1e-9)
	suite.mockRateService.AssertExpectations(suite.T())
}

// A single unpriceable wallet aborts the whole view rather than understating
// the total.
func (suite *PortfolioServiceTestSuite) TestGetPortfolio_AbortsOnUnavailablePair() {
	ctx := context.Background()
	portfolio := &models.Portfolio{
		UserID: suite.userID,
		Wallets: map[string]models.Wallet{
			"USD": {CurrencyCode: "USD", Balance: 50},
			"SOL": {CurrencyCode: "SOL", Balance: 3},
		},
	}
	doc := models.EmptyRateCacheDocument()
	suite.mockPortfolioRepo.On("FindPortfolioByUserID", ctx, suite.userID).Return(portfolio, nil).Once()
	suite.mockRateService.On("LoadSnapshot", ctx).Return(doc, nil).Once()
	suite.mockRateService.On("ResolveRate", doc, "SOL", "USD").
		Return(0.0, &apperrors.RateUnavailableError{From: "SOL", To: "USD"}).Once()

	resp, err := suite.service.GetPortfolio(ctx, suite.userID)

	suite.Require().Error(err)
	suite.Nil(resp)
	var unavailable *apperrors.RateUnavailableError
	suite.Require().ErrorAs(err, &unavailable)
}

func (suite *PortfolioServiceTestSuite) TestGetPortfolio_UnknownUser() {
	ctx := context.Background()
	suite.mockPortfolioRepo.On("FindPortfolioByUserID", ctx, suite.userID).
		Return(nil, fmt.Errorf("%w: portfolio for user %s", apperrors.ErrNotFound, suite.userID)).Once()

	_, err := suite.service.GetPortfolio(ctx, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRateService.AssertNotCalled(suite.T(), "LoadSnapshot", mock.Anything)
}

func TestPortfolioServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PortfolioServiceTestSuite))
}
