package dto

import (
	"github.com/valutatrade/valutatrade_hub/internal/models"
)

// CurrencyResponse defines the structure for API responses containing currency details.
type CurrencyResponse struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Kind        string  `json:"kind"`
	Issuing     string  `json:"issuingCountry,omitempty"`
	Algorithm   string  `json:"algorithm,omitempty"`
	MarketCap   float64 `json:"marketCap,omitempty"`
	DisplayInfo string  `json:"displayInfo"`
}

// ToCurrencyResponse converts a models.Currency to a CurrencyResponse DTO.
func ToCurrencyResponse(c models.Currency) CurrencyResponse {
	return CurrencyResponse{
		Code:        c.Code,
		Name:        c.Name,
		Kind:        string(c.Kind),
		Issuing:     c.IssuingCountry,
		Algorithm:   c.Algorithm,
		MarketCap:   c.MarketCap,
		DisplayInfo: c.DisplayInfo(),
	}
}

// ListCurrenciesResponse wraps the list of supported currencies.
type ListCurrenciesResponse struct {
	Currencies []CurrencyResponse `json:"currencies"`
}

// ToListCurrenciesResponse converts a slice of models.Currency to the list DTO.
func ToListCurrenciesResponse(currencies []models.Currency) ListCurrenciesResponse {
	responses := make([]CurrencyResponse, len(currencies))
	for i, c := range currencies {
		responses[i] = ToCurrencyResponse(c)
	}
	return ListCurrenciesResponse{Currencies: responses}
}
