package dto

import "time"

// RateResponse carries a resolved rate plus its inverse for display.
// The inverse is presentation only; callers compute with Rate.
type RateResponse struct {
	From        string    `json:"from"`
	To          string    `json:"to"`
	Rate        float64   `json:"rate"`
	InverseRate float64   `json:"inverseRate"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Source      string    `json:"source"`
}

// SourceError reports one provider failure inside an update pass.
type SourceError struct {
	Source string `json:"source"`
	Reason string `json:"reason"`
}

// RateUpdateReport summarizes one best-effort update pass over the providers.
type RateUpdateReport struct {
	QuotesFetched int           `json:"quotesFetched"`
	PairsUpdated  int           `json:"pairsUpdated"`
	LastRefresh   time.Time     `json:"lastRefresh"`
	SourceErrors  []SourceError `json:"sourceErrors,omitempty"`
}
