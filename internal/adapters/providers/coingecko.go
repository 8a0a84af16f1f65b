// Package providers contains the outbound rate source clients. Each client
// performs one GET against its provider, normalizes the response into
// CODE_BASE quotes and reports transport or HTTP failures as
// *apperrors.ProviderError. Clients never touch storage.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/valutatrade/valutatrade_hub/internal/apperrors"
	"github.com/valutatrade/valutatrade_hub/internal/models"
)

// CoinGeckoSource is the source label stored with quotes from this client.
const CoinGeckoSource = "CoinGecko"

// DefaultCryptoIDs maps system currency codes to CoinGecko asset identifiers.
var DefaultCryptoIDs = map[string]string{
	"BTC":  "bitcoin",
	"ETH":  "ethereum",
	"SOL":  "solana",
	"DOGE": "dogecoin",
}

// CoinGeckoClient fetches crypto quotes from a CoinGecko-style simple-price
// endpoint: one GET selecting asset ids and the quote currency, answered with
// an id -> {currency: rate} map.
type CoinGeckoClient struct {
	baseURL      string
	baseCurrency string
	codes        []string
	idMap        map[string]string
	client       *http.Client
}

// NewCoinGeckoClient builds a client responsible for the given currency codes.
func NewCoinGeckoClient(baseURL, baseCurrency string, codes []string, idMap map[string]string, timeout time.Duration) *CoinGeckoClient {
	if idMap == nil {
		idMap = DefaultCryptoIDs
	}
	return &CoinGeckoClient{
		baseURL:      baseURL,
		baseCurrency: baseCurrency,
		codes:        codes,
		idMap:        idMap,
		client:       &http.Client{Timeout: timeout},
	}
}

// Name returns the selector used to address this provider in an update call.
func (c *CoinGeckoClient) Name() string {
	return "coingecko"
}

// Fetch performs one request and returns the normalized quotes.
func (c *CoinGeckoClient) Fetch(ctx context.Context) ([]models.Quote, error) {
	ids := make([]string, 0, len(c.codes))
	for _, code := range c.codes {
		if id, ok := c.idMap[code]; ok {
			ids = append(ids, id)
		}
	}

	params := url.Values{}
	params.Set("ids", strings.Join(ids, ","))
	params.Set("vs_currencies", strings.ToLower(c.baseCurrency))
	reqURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &apperrors.ProviderError{Source: CoinGeckoSource, Reason: err.Error()}
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &apperrors.ProviderError{Source: CoinGeckoSource, Reason: err.Error()}
	}
	defer resp.Body.Close()
	latency := time.Since(start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &apperrors.ProviderError{
			Source: CoinGeckoSource,
			Reason: fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}
	}

	var payload map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &apperrors.ProviderError{Source: CoinGeckoSource, Reason: "malformed response: " + err.Error()}
	}

	observedAt := time.Now().UTC()
	vsKey := strings.ToLower(c.baseCurrency)

	quotes := make([]models.Quote, 0, len(c.codes))
	for _, code := range c.codes {
		id, ok := c.idMap[code]
		if !ok {
			continue
		}
		rate, ok := payload[id][vsKey]
		if !ok {
			continue
		}
		quote, err := models.NewQuote(code, c.baseCurrency, rate, CoinGeckoSource, observedAt, models.QuoteMeta{
			RawID:      id,
			RequestMS:  latency.Milliseconds(),
			StatusCode: resp.StatusCode,
			ETag:       resp.Header.Get("ETag"),
		})
		if err != nil {
			return nil, &apperrors.ProviderError{
				Source: CoinGeckoSource,
				Reason: fmt.Sprintf("invalid quote for %s: %v", code, err),
			}
		}
		quotes = append(quotes, quote)
	}
	return quotes, nil
}
