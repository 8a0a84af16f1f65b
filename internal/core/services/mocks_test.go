package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/valutatrade/valutatrade_hub/internal/dto"
	"github.com/valutatrade/valutatrade_hub/internal/models"
)

// --- Mock RateCacheRepository ---

type MockRateCacheRepository struct {
	mock.Mock
}

func (m *MockRateCacheRepository) Load(ctx context.Context) (models.RateCacheDocument, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.RateCacheDocument), args.Error(1)
}

func (m *MockRateCacheRepository) Merge(ctx context.Context, quotes []models.Quote) (int, models.RateCacheDocument, error) {
	args := m.Called(ctx, quotes)
	return args.Int(0), args.Get(1).(models.RateCacheDocument), args.Error(2)
}

// --- Mock RateHistoryRepository ---

type MockRateHistoryRepository struct {
	mock.Mock
}

func (m *MockRateHistoryRepository) Append(ctx context.Context, quotes []models.Quote) (int, error) {
	args := m.Called(ctx, quotes)
	return args.Int(0), args.Error(1)
}

func (m *MockRateHistoryRepository) List(ctx context.Context) ([]models.HistoryRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.HistoryRecord), args.Error(1)
}

// --- Mock PortfolioRepository ---

type MockPortfolioRepository struct {
	mock.Mock
}

func (m *MockPortfolioRepository) FindPortfolioByUserID(ctx context.Context, userID string) (*models.Portfolio, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Portfolio), args.Error(1)
}

func (m *MockPortfolioRepository) SavePortfolio(ctx context.Context, portfolio models.Portfolio) error {
	args := m.Called(ctx, portfolio)
	return args.Error(0)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Mock RateService ---

type MockRateService struct {
	mock.Mock
}

func (m *MockRateService) GetRate(ctx context.Context, fromCode, toCode string) (float64, error) {
	args := m.Called(ctx, fromCode, toCode)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockRateService) GetRateDetail(ctx context.Context, fromCode, toCode string) (*dto.RateResponse, error) {
	args := m.Called(ctx, fromCode, toCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RateResponse), args.Error(1)
}

func (m *MockRateService) ResolveRate(doc models.RateCacheDocument, fromCode, toCode string) (float64, error) {
	args := m.Called(doc, fromCode, toCode)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockRateService) LoadSnapshot(ctx context.Context) (models.RateCacheDocument, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.RateCacheDocument), args.Error(1)
}

// --- Mock RateProvider ---

type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) Name() string {
	return m.Called().String(0)
}

func (m *MockRateProvider) Fetch(ctx context.Context) ([]models.Quote, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Quote), args.Error(1)
}
