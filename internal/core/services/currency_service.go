package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/valutatrade/valutatrade_hub/internal/apperrors"
	"github.com/valutatrade/valutatrade_hub/internal/models"
)

// CurrencyService exposes the static registry of supported currencies.
type CurrencyService struct {
	registry map[string]models.Currency
}

// NewCurrencyService builds the service with the built-in registry.
func NewCurrencyService() *CurrencyService {
	registry := make(map[string]models.Currency)
	for _, c := range builtinCurrencies() {
		registry[c.Code] = c
	}
	return &CurrencyService{registry: registry}
}

func builtinCurrencies() []models.Currency {
	mustFiat := func(code, name, country string) models.Currency {
		c, err := models.NewFiatCurrency(code, name, country)
		if err != nil {
			panic(fmt.Sprintf("invalid builtin currency %s: %v", code, err))
		}
		return c
	}
	mustCrypto := func(code, name, algo string, mcap float64) models.Currency {
		c, err := models.NewCryptoCurrency(code, name, algo, mcap)
		if err != nil {
			panic(fmt.Sprintf("invalid builtin currency %s: %v", code, err))
		}
		return c
	}
	return []models.Currency{
		mustFiat("USD", "US Dollar", "United States"),
		mustFiat("EUR", "Euro", "Eurozone"),
		mustFiat("GBP", "Pound Sterling", "United Kingdom"),
		mustFiat("JPY", "Japanese Yen", "Japan"),
		mustFiat("CNY", "Renminbi", "China"),
		mustFiat("RUB", "Russian Ruble", "Russia"),
		mustCrypto("BTC", "Bitcoin", "SHA-256", 1159299359324.63),
		mustCrypto("ETH", "Ethereum", "Ethash", 208687511047),
		mustCrypto("SOL", "Solana", "Proof of History", 64249817954),
		mustCrypto("DOGE", "Dogecoin", "Scrypt", 23509533481),
	}
}

// GetCurrencyByCode retrieves a specific currency by its code.
func (s *CurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*models.Currency, error) {
	if err := models.ValidateCurrencyCode(currencyCode); err != nil {
		return nil, err
	}
	currency, ok := s.registry[currencyCode]
	if !ok {
		return nil, fmt.Errorf("%w: unknown currency %q", apperrors.ErrNotFound, currencyCode)
	}
	return &currency, nil
}

// ListCurrencies retrieves all supported currencies ordered by code.
func (s *CurrencyService) ListCurrencies(ctx context.Context) ([]models.Currency, error) {
	currencies := make([]models.Currency, 0, len(s.registry))
	for _, c := range s.registry {
		currencies = append(currencies, c)
	}
	sort.Slice(currencies, func(i, j int) bool { return currencies[i].Code < currencies[j].Code })
	return currencies, nil
}
