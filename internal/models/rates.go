package models

import (
	"fmt"
	"time"

	"github.com/valutatrade/valutatrade_hub/internal/apperrors"
)

// QuoteMeta carries request observability data attached to a fetched quote.
type QuoteMeta struct {
	RawID      string `json:"raw_id"`
	RequestMS  int64  `json:"request_ms"`
	StatusCode int    `json:"status_code"`
	ETag       string `json:"etag"`
}

// Quote is one observed exchange rate for a directed pair from one provider
// at one instant. Quotes are consumed into the cache and history immediately
// after a fetch and not retained.
type Quote struct {
	From       string
	To         string
	Rate       float64
	Source     string
	ObservedAt time.Time
	Meta       QuoteMeta
}

// NewQuote validates the quote invariants at creation time: positive rate,
// well-formed codes, distinct sides.
func NewQuote(from, to string, rate float64, source string, observedAt time.Time, meta QuoteMeta) (Quote, error) {
	if err := ValidateCurrencyCode(from); err != nil {
		return Quote{}, err
	}
	if err := ValidateCurrencyCode(to); err != nil {
		return Quote{}, err
	}
	if from == to {
		return Quote{}, fmt.Errorf("%w: quote sides must differ", apperrors.ErrValidation)
	}
	if rate <= 0 {
		return Quote{}, fmt.Errorf("%w: quote rate must be positive", apperrors.ErrValidation)
	}
	return Quote{From: from, To: to, Rate: rate, Source: source, ObservedAt: observedAt, Meta: meta}, nil
}

// PairKey returns the canonical FROM_TO identifier for the quote's pair.
func (q Quote) PairKey() string {
	return PairKey(q.From, q.To)
}

// HistoryID returns the dedup key for the append-only history log.
func (q Quote) HistoryID() string {
	return fmt.Sprintf("%s_%s_%s", q.From, q.To, q.ObservedAt.UTC().Format(time.RFC3339))
}

// PairKey builds the canonical FROM_TO identifier for a directed conversion.
func PairKey(from, to string) string {
	return from + "_" + to
}

// RateEntry is the latest accepted observation for one pair in the cache.
type RateEntry struct {
	Rate      float64   `json:"rate"`
	UpdatedAt time.Time `json:"updated_at"`
	Source    string    `json:"source"`
}

// RateCacheDocument is the authoritative persisted rate snapshot. It is loaded
// whole at the start of every operation and rewritten whole on every merge.
type RateCacheDocument struct {
	Pairs       map[string]RateEntry `json:"pairs"`
	LastRefresh time.Time            `json:"last_refresh"`
}

// EmptyRateCacheDocument is the cold-start snapshot: no pairs, epoch-zero
// last refresh so any TTL check immediately reports staleness.
func EmptyRateCacheDocument() RateCacheDocument {
	return RateCacheDocument{Pairs: make(map[string]RateEntry)}
}

// HistoryRecord is one immutable entry in the append-only quote log.
type HistoryRecord struct {
	ID           string    `json:"id"`
	FromCurrency string    `json:"from_currency"`
	ToCurrency   string    `json:"to_currency"`
	Rate         float64   `json:"rate"`
	Timestamp    time.Time `json:"timestamp"`
	Source       string    `json:"source"`
	Meta         QuoteMeta `json:"meta"`
}

// HistoryRecordFromQuote maps a fetched quote onto its history representation.
func HistoryRecordFromQuote(q Quote) HistoryRecord {
	return HistoryRecord{
		ID:           q.HistoryID(),
		FromCurrency: q.From,
		ToCurrency:   q.To,
		Rate:         q.Rate,
		Timestamp:    q.ObservedAt,
		Source:       q.Source,
		Meta:         q.Meta,
	}
}
