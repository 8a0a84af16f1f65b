package apperrors

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates the caller is not authenticated or not allowed to act.
var ErrUnauthorized = errors.New("unauthorized")

// InsufficientFundsError is returned when a trade requires more of a currency
// than the wallet holds. It carries the exact numbers so callers can report them.
type InsufficientFundsError struct {
	Available float64
	Required  float64
	Code      string
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: available %.8f %s, required %.8f %s",
		e.Available, e.Code, e.Required, e.Code)
}

// RateUnavailableError is returned when a currency pair has never been fetched.
// Distinct from StaleRatesError: the pair is simply absent from the cache.
type RateUnavailableError struct {
	From string
	To   string
}

func (e *RateUnavailableError) Error() string {
	return fmt.Sprintf("rate %s->%s is unavailable, try a rates refresh first", e.From, e.To)
}

// StaleRatesError is returned when the cached snapshot as a whole is older than
// the configured TTL. Freshness is judged on the document-wide last refresh.
type StaleRatesError struct {
	LastRefresh time.Time
	TTL         time.Duration
}

func (e *StaleRatesError) Error() string {
	return fmt.Sprintf("cached rates are stale (last refresh %s, ttl %s), run a rates refresh",
		e.LastRefresh.Format(time.RFC3339), e.TTL)
}

// ProviderError wraps a transport or HTTP failure from one rate provider.
type ProviderError struct {
	Source string
	Reason string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Source, e.Reason)
}

// AggregateFetchError is returned when every selected provider failed in a
// single update pass and nothing could be merged.
type AggregateFetchError struct {
	Causes []error
}

func (e *AggregateFetchError) Error() string {
	return fmt.Sprintf("no rates fetched: all %d providers failed", len(e.Causes))
}

func (e *AggregateFetchError) Unwrap() []error {
	return e.Causes
}
