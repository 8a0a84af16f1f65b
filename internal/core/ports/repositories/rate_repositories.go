package repositories

import (
	"context"

	"github.com/valutatrade/valutatrade_hub/internal/models"
)

// RateCacheReader defines read operations for the persisted rate snapshot.
type RateCacheReader interface {
	// Load returns the last persisted snapshot. A missing or corrupt file is
	// a cold start: an empty document, never an error.
	Load(ctx context.Context) (models.RateCacheDocument, error)
}

// RateCacheWriter defines write operations for the persisted rate snapshot.
type RateCacheWriter interface {
	// Merge folds a batch of quotes into the snapshot, keeping the strictly
	// newer observation per pair, and atomically rewrites the whole document
	// with a fresh last-refresh stamp. It returns the number of pairs actually
	// replaced and the document as persisted.
	Merge(ctx context.Context, quotes []models.Quote) (int, models.RateCacheDocument, error)
}

// RateCacheRepositoryFacade combines all rate cache repository interfaces.
type RateCacheRepositoryFacade interface {
	RateCacheReader
	RateCacheWriter
}

// RateHistoryRepositoryFacade is the append-only quote audit log.
type RateHistoryRepositoryFacade interface {
	// Append adds quotes whose dedup id is not yet present and returns the
	// number of records actually appended. Existing records are never touched.
	Append(ctx context.Context, quotes []models.Quote) (int, error)

	// List returns the full ordered log.
	List(ctx context.Context) ([]models.HistoryRecord, error)
}
