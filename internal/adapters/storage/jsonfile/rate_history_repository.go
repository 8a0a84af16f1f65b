package jsonfile

import (
	"context"
	"fmt"

	"github.com/valutatrade/valutatrade_hub/internal/models"
)

// RateHistoryRepository persists the append-only quote log (rate_history.json).
// The log grows monotonically; records are never mutated or removed.
type RateHistoryRepository struct {
	path string
}

// NewRateHistoryRepository creates a repository writing to the given file path.
func NewRateHistoryRepository(path string) *RateHistoryRepository {
	return &RateHistoryRepository{path: path}
}

// List returns the full ordered log, empty on cold start.
func (r *RateHistoryRepository) List(ctx context.Context) ([]models.HistoryRecord, error) {
	var history []models.HistoryRecord
	if !readDocument(r.path, &history) {
		return []models.HistoryRecord{}, nil
	}
	return history, nil
}

// Append adds the quotes whose dedup id is not yet present. Appending the
// same batch twice leaves the log unchanged the second time.
func (r *RateHistoryRepository) Append(ctx context.Context, quotes []models.Quote) (int, error) {
	history, err := r.List(ctx)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]struct{}, len(history))
	for _, rec := range history {
		seen[rec.ID] = struct{}{}
	}

	appended := 0
	for _, q := range quotes {
		id := q.HistoryID()
		if _, ok := seen[id]; ok {
			continue
		}
		history = append(history, models.HistoryRecordFromQuote(q))
		seen[id] = struct{}{}
		appended++
	}

	if appended == 0 {
		return 0, nil
	}
	if err := writeDocumentAtomic(r.path, history); err != nil {
		return 0, fmt.Errorf("failed to persist rate history: %w", err)
	}
	return appended, nil
}
