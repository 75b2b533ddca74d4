// ABOUTME: Storage interfaces for persisting domain entities
// ABOUTME: Defines contracts for data persistence operations

package interfaces

import (
	"context"

	"competitor-monitor-api/core/domain"
)

// HistoryStorage persists the whole history sequence at once
type HistoryStorage interface {
	// Load returns the persisted entries, newest first. A missing backing
	// store is reported as an empty slice with no error.
	Load(ctx context.Context) ([]domain.HistoryEntry, error)

	// Save replaces the persisted entries
	Save(ctx context.Context, entries []domain.HistoryEntry) error
}
