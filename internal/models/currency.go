package models

import (
	"fmt"

	"github.com/valutatrade/valutatrade_hub/internal/apperrors"
)

// CurrencyKind tags a currency as fiat or crypto. Behaviour that differs
// between the two is dispatched by switching on the kind.
type CurrencyKind string

const (
	KindFiat   CurrencyKind = "FIAT"
	KindCrypto CurrencyKind = "CRYPTO"
)

// Currency describes a tradable currency. Fiat currencies carry the issuing
// country; crypto currencies carry the hash algorithm and market cap.
type Currency struct {
	Code string       `json:"code"`
	Name string       `json:"name"`
	Kind CurrencyKind `json:"kind"`

	IssuingCountry string  `json:"issuingCountry,omitempty"`
	Algorithm      string  `json:"algorithm,omitempty"`
	MarketCap      float64 `json:"marketCap,omitempty"`
}

// ValidateCurrencyCode checks the canonical code format: 2-5 characters,
// uppercase, no whitespace.
func ValidateCurrencyCode(code string) error {
	if code == "" {
		return fmt.Errorf("%w: currency code must not be empty", apperrors.ErrValidation)
	}
	if len(code) < 2 || len(code) > 5 {
		return fmt.Errorf("%w: currency code must be 2-5 characters", apperrors.ErrValidation)
	}
	for _, r := range code {
		if r == ' ' {
			return fmt.Errorf("%w: currency code must not contain whitespace", apperrors.ErrValidation)
		}
		if r < 'A' || r > 'Z' {
			return fmt.Errorf("%w: currency code must be uppercase letters", apperrors.ErrValidation)
		}
	}
	return nil
}

// NewFiatCurrency builds a fiat currency, enforcing code and name invariants.
func NewFiatCurrency(code, name, issuingCountry string) (Currency, error) {
	if err := ValidateCurrencyCode(code); err != nil {
		return Currency{}, err
	}
	if name == "" {
		return Currency{}, fmt.Errorf("%w: currency name must not be empty", apperrors.ErrValidation)
	}
	return Currency{
		Code:           code,
		Name:           name,
		Kind:           KindFiat,
		IssuingCountry: issuingCountry,
	}, nil
}

// NewCryptoCurrency builds a crypto currency, enforcing code and name invariants.
func NewCryptoCurrency(code, name, algorithm string, marketCap float64) (Currency, error) {
	if err := ValidateCurrencyCode(code); err != nil {
		return Currency{}, err
	}
	if name == "" {
		return Currency{}, fmt.Errorf("%w: currency name must not be empty", apperrors.ErrValidation)
	}
	if marketCap < 0 {
		return Currency{}, fmt.Errorf("%w: market cap must not be negative", apperrors.ErrValidation)
	}
	return Currency{
		Code:      code,
		Name:      name,
		Kind:      KindCrypto,
		Algorithm: algorithm,
		MarketCap: marketCap,
	}, nil
}

// DisplayInfo renders the currency for UI and log lines.
func (c Currency) DisplayInfo() string {
	switch c.Kind {
	case KindCrypto:
		return fmt.Sprintf("[CRYPTO] %s — %s (Algo: %s, MCAP: %.2e)", c.Code, c.Name, c.Algorithm, c.MarketCap)
	default:
		return fmt.Sprintf("[FIAT] %s — %s (Issuing: %s)", c.Code, c.Name, c.IssuingCountry)
	}
}
