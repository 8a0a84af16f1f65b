package jsonfile

import (
	"context"
	"fmt"
	"time"

	"github.com/valutatrade/valutatrade_hub/internal/models"
)

// RateCacheRepository persists the authoritative rate snapshot (rates.json).
type RateCacheRepository struct {
	path string
	now  func() time.Time
}

// NewRateCacheRepository creates a repository writing to the given file path.
func NewRateCacheRepository(path string) *RateCacheRepository {
	return &RateCacheRepository{path: path, now: time.Now}
}

// Load returns the last persisted snapshot, or an empty cold-start document
// when the file is missing or corrupt.
func (r *RateCacheRepository) Load(ctx context.Context) (models.RateCacheDocument, error) {
	var doc models.RateCacheDocument
	if !readDocument(r.path, &doc) {
		return models.EmptyRateCacheDocument(), nil
	}
	if doc.Pairs == nil {
		doc.Pairs = make(map[string]models.RateEntry)
	}
	return doc, nil
}

// Merge folds quotes into the snapshot. A pair is replaced only when the new
// observation is strictly newer than the stored one (epoch-zero for absent
// pairs). The document is always rewritten with last_refresh set to now, so a
// zero-pair update still records that a refresh happened.
func (r *RateCacheRepository) Merge(ctx context.Context, quotes []models.Quote) (int, models.RateCacheDocument, error) {
	doc, err := r.Load(ctx)
	if err != nil {
		return 0, models.RateCacheDocument{}, err
	}

	updated := 0
	for _, q := range quotes {
		key := q.PairKey()
		existing := doc.Pairs[key]
		if q.ObservedAt.After(existing.UpdatedAt) {
			doc.Pairs[key] = models.RateEntry{
				Rate:      q.Rate,
				UpdatedAt: q.ObservedAt,
				Source:    q.Source,
			}
			updated++
		}
	}

	doc.LastRefresh = r.now()
	if err := writeDocumentAtomic(r.path, doc); err != nil {
		return 0, models.RateCacheDocument{}, fmt.Errorf("failed to persist rate cache: %w", err)
	}
	return updated, doc, nil
}
