package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/valutatrade/valutatrade_hub/internal/apperrors"
	"github.com/valutatrade/valutatrade_hub/internal/models"
)

// ExchangeRateAPISource is the source label stored with quotes from this client.
const ExchangeRateAPISource = "ExchangeRate-API"

// DefaultFiatCodes is the fiat partition the client is responsible for by default.
var DefaultFiatCodes = []string{"EUR", "GBP", "JPY", "CNY", "RUB"}

// ExchangeRateAPIClient fetches fiat quotes from an ExchangeRate-API-style
// endpoint: a GET keyed by API key and base currency in the path, answered
// with a status field and a conversion_rates map holding units of each
// currency per one base unit. Stored rates follow the CODE_BASE convention,
// so each conversion rate is inverted.
type ExchangeRateAPIClient struct {
	baseURL      string
	apiKey       string
	baseCurrency string
	codes        []string
	client       *http.Client
}

// NewExchangeRateAPIClient builds a client responsible for the given currency codes.
func NewExchangeRateAPIClient(baseURL, apiKey, baseCurrency string, codes []string, timeout time.Duration) *ExchangeRateAPIClient {
	return &ExchangeRateAPIClient{
		baseURL:      baseURL,
		apiKey:       apiKey,
		baseCurrency: baseCurrency,
		codes:        codes,
		client:       &http.Client{Timeout: timeout},
	}
}

// Name returns the selector used to address this provider in an update call.
func (c *ExchangeRateAPIClient) Name() string {
	return "exchangerate"
}

type exchangeRateAPIResponse struct {
	Result             string             `json:"result"`
	TimeLastUpdateUnix int64              `json:"time_last_update_unix"`
	ConversionRates    map[string]float64 `json:"conversion_rates"`
}

// Fetch performs one request and returns the normalized quotes.
func (c *ExchangeRateAPIClient) Fetch(ctx context.Context) ([]models.Quote, error) {
	if c.apiKey == "" {
		return nil, &apperrors.ProviderError{Source: ExchangeRateAPISource, Reason: "api key not configured"}
	}

	reqURL := fmt.Sprintf("%s/%s/latest/%s", c.baseURL, c.apiKey, c.baseCurrency)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &apperrors.ProviderError{Source: ExchangeRateAPISource, Reason: err.Error()}
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &apperrors.ProviderError{Source: ExchangeRateAPISource, Reason: err.Error()}
	}
	defer resp.Body.Close()
	latency := time.Since(start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &apperrors.ProviderError{
			Source: ExchangeRateAPISource,
			Reason: fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}
	}

	var payload exchangeRateAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &apperrors.ProviderError{Source: ExchangeRateAPISource, Reason: "malformed response: " + err.Error()}
	}
	if payload.Result != "success" {
		return nil, &apperrors.ProviderError{
			Source: ExchangeRateAPISource,
			Reason: fmt.Sprintf("provider reported result %q", payload.Result),
		}
	}

	observedAt := time.Now().UTC()
	if payload.TimeLastUpdateUnix > 0 {
		observedAt = time.Unix(payload.TimeLastUpdateUnix, 0).UTC()
	}

	quotes := make([]models.Quote, 0, len(c.codes))
	for _, code := range c.codes {
		perBase, ok := payload.ConversionRates[code]
		if !ok || perBase <= 0 {
			continue
		}
		quote, err := models.NewQuote(code, c.baseCurrency, 1/perBase, ExchangeRateAPISource, observedAt, models.QuoteMeta{
			RawID:      code,
			RequestMS:  latency.Milliseconds(),
			StatusCode: resp.StatusCode,
			ETag:       resp.Header.Get("ETag"),
		})
		if err != nil {
			return nil, &apperrors.ProviderError{
				Source: ExchangeRateAPISource,
				Reason: fmt.Sprintf("invalid quote for %s: %v", code, err),
			}
		}
		quotes = append(quotes, quote)
	}
	return quotes, nil
}
