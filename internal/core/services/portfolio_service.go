package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/valutatrade/valutatrade_hub/internal/apperrors"
	"github.com/valutatrade/valutatrade_hub/internal/core/ports/repositories"
	portssvc "github.com/valutatrade/valutatrade_hub/internal/core/ports/services"
	"github.com/valutatrade/valutatrade_hub/internal/dto"
	"github.com/valutatrade/valutatrade_hub/internal/models"
)

// PortfolioService executes trades against resolved rates and values whole
// portfolios. A trade is a two-leg balance mutation: the traded wallet and
// the base wallet change together and are persisted in one write, or not at
// all.
type PortfolioService struct {
	portfolioRepo repositories.PortfolioRepositoryFacade
	rateService   portssvc.RateSvcFacade
	baseCurrency  string
}

// NewPortfolioService creates a new PortfolioService.
func NewPortfolioService(
	portfolioRepo repositories.PortfolioRepositoryFacade,
	rateService portssvc.RateSvcFacade,
	baseCurrency string,
) *PortfolioService {
	return &PortfolioService{
		portfolioRepo: portfolioRepo,
		rateService:   rateService,
		baseCurrency:  baseCurrency,
	}
}

func validateTradeInput(currencyCode string, amount float64) error {
	if err := models.ValidateCurrencyCode(currencyCode); err != nil {
		return err
	}
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	return nil
}

// Buy credits amount of the given currency, debiting the base wallet by
// rate*amount. The target wallet is created on first purchase.
func (s *PortfolioService) Buy(ctx context.Context, userID, currencyCode string, amount float64) (*dto.TradeResult, error) {
	if err := validateTradeInput(currencyCode, amount); err != nil {
		return nil, err
	}

	portfolio, err := s.portfolioRepo.FindPortfolioByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	rate, err := s.rateService.GetRate(ctx, currencyCode, s.baseCurrency)
	if err != nil {
		return nil, err
	}

	cost := rate * amount
	baseWallet := portfolio.Wallets[s.baseCurrency]
	if baseWallet.Balance < cost {
		return nil, &apperrors.InsufficientFundsError{
			Available: baseWallet.Balance,
			Required:  cost,
			Code:      s.baseCurrency,
		}
	}

	target := portfolio.Wallets[currencyCode]
	before := target.Balance

	target.CurrencyCode = currencyCode
	target.Balance += amount
	if currencyCode == s.baseCurrency {
		// Both legs land on the base wallet. Apply the debit to the
		// same struct before the single map write so the legs net out.
		target.Balance -= cost
		baseWallet = target
	} else {
		baseWallet.CurrencyCode = s.baseCurrency
		baseWallet.Balance -= cost
		portfolio.Wallets[s.baseCurrency] = baseWallet
	}
	portfolio.Wallets[currencyCode] = target

	if err := s.portfolioRepo.SavePortfolio(ctx, *portfolio); err != nil {
		return nil, fmt.Errorf("failed to persist portfolio after buy: %w", err)
	}

	return &dto.TradeResult{
		Action:        "BUY",
		CurrencyCode:  currencyCode,
		Amount:        amount,
		Rate:          rate,
		QuoteAmount:   cost,
		BeforeBalance: before,
		AfterBalance:  target.Balance,
		BaseBalance:   baseWallet.Balance,
	}, nil
}

// Sell debits amount of the given currency, crediting the base wallet by
// rate*amount. Selling requires the wallet to exist: a prior buy created it.
func (s *PortfolioService) Sell(ctx context.Context, userID, currencyCode string, amount float64) (*dto.TradeResult, error) {
	if err := validateTradeInput(currencyCode, amount); err != nil {
		return nil, err
	}

	portfolio, err := s.portfolioRepo.FindPortfolioByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	rate, err := s.rateService.GetRate(ctx, currencyCode, s.baseCurrency)
	if err != nil {
		return nil, err
	}

	target, ok := portfolio.Wallets[currencyCode]
	if !ok {
		return nil, fmt.Errorf("%w: no %s wallet, it is created by a first buy", apperrors.ErrNotFound, currencyCode)
	}
	if amount > target.Balance {
		return nil, &apperrors.InsufficientFundsError{
			Available: target.Balance,
			Required:  amount,
			Code:      currencyCode,
		}
	}

	proceeds := rate * amount
	before := target.Balance
	baseWallet := portfolio.Wallets[s.baseCurrency]

	target.Balance -= amount
	if currencyCode == s.baseCurrency {
		// Both legs land on the base wallet. Apply the credit to the
		// same struct before the single map write so the legs net out.
		target.Balance += proceeds
		baseWallet = target
	} else {
		baseWallet.CurrencyCode = s.baseCurrency
		baseWallet.Balance += proceeds
		portfolio.Wallets[s.baseCurrency] = baseWallet
	}
	portfolio.Wallets[currencyCode] = target

	if err := s.portfolioRepo.SavePortfolio(ctx, *portfolio); err != nil {
		return nil, fmt.Errorf("failed to persist portfolio after sell: %w", err)
	}

	return &dto.TradeResult{
		Action:        "SELL",
		CurrencyCode:  currencyCode,
		Amount:        amount,
		Rate:          rate,
		QuoteAmount:   proceeds,
		BeforeBalance: before,
		AfterBalance:  target.Balance,
		BaseBalance:   baseWallet.Balance,
	}, nil
}

// GetPortfolio returns every wallet valued in the base currency. All pairs
// are resolved against one loaded snapshot so the whole view shares a single
// staleness judgment; any stale or unavailable pair aborts the valuation
// rather than understating the total.
func (s *PortfolioService) GetPortfolio(ctx context.Context, userID string) (*dto.PortfolioResponse, error) {
	portfolio, err := s.portfolioRepo.FindPortfolioByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	doc, err := s.rateService.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rate cache: %w", err)
	}

	codes := make([]string, 0, len(portfolio.Wallets))
	for code := range portfolio.Wallets {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	resp := &dto.PortfolioResponse{
		UserID:       portfolio.UserID,
		BaseCurrency: s.baseCurrency,
		Wallets:      make([]dto.WalletValuation, 0, len(codes)),
	}
	for _, code := range codes {
		wallet := portfolio.Wallets[code]
		rate, err := s.rateService.ResolveRate(doc, code, s.baseCurrency)
		if err != nil {
			return nil, err
		}
		value := rate * wallet.Balance
		resp.Wallets = append(resp.Wallets, dto.WalletValuation{
			CurrencyCode: code,
			Balance:      wallet.Balance,
			BaseValue:    value,
		})
		resp.TotalValue += value
	}
	return resp, nil
}
