// ABOUTME: History service keeps the bounded newest-first log of pipeline invocations
// ABOUTME: Mutations are serialized and the whole log is rewritten through the storage port

package history

import (
	"context"
	"sync"

	"competitor-monitor-api/core/domain"
	"competitor-monitor-api/core/interfaces"
)

// Service implements interfaces.HistoryStore
type Service struct {
	storage  interfaces.HistoryStorage
	logger   interfaces.Logger
	maxItems int
	mu       sync.Mutex
}

// NewService creates a history service capped at maxItems entries.
// A non-positive maxItems uses domain.DefaultMaxHistoryItems.
func NewService(storage interfaces.HistoryStorage, logger interfaces.Logger, maxItems int) *Service {
	if maxItems <= 0 {
		maxItems = domain.DefaultMaxHistoryItems
	}
	return &Service{
		storage:  storage,
		logger:   logger,
		maxItems: maxItems,
	}
}

// Append records a new entry at the head of the log and trims the tail
func (s *Service) Append(ctx context.Context, kind domain.RequestType, requestSummary, responseSummary string) (domain.HistoryEntry, error) {
	entry := domain.NewHistoryEntry(kind, requestSummary, responseSummary)

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.load(ctx)
	updated := make([]domain.HistoryEntry, 0, len(entries)+1)
	updated = append(updated, entry)
	updated = append(updated, entries...)
	if len(updated) > s.maxItems {
		updated = updated[:s.maxItems]
	}

	if err := s.storage.Save(ctx, updated); err != nil {
		s.logger.Error("Failed to save history", map[string]interface{}{
			"error": err.Error(),
		})
		return entry, err
	}

	s.logger.Debug("History entry added", map[string]interface{}{
		"id":    entry.ID,
		"type":  string(kind),
		"total": len(updated),
	})
	return entry, nil
}

// List returns the log, newest first
func (s *Service) List(ctx context.Context) []domain.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Clear empties the log
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Save(ctx, []domain.HistoryEntry{}); err != nil {
		s.logger.Error("Failed to clear history", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	s.logger.Info("History cleared", nil)
	return nil
}

// load reads the persisted log; unreadable data is treated as empty
func (s *Service) load(ctx context.Context) []domain.HistoryEntry {
	entries, err := s.storage.Load(ctx)
	if err != nil {
		s.logger.Warn("Could not read history, starting empty", map[string]interface{}{
			"error": err.Error(),
		})
		return []domain.HistoryEntry{}
	}
	if entries == nil {
		return []domain.HistoryEntry{}
	}
	if len(entries) > s.maxItems {
		entries = entries[:s.maxItems]
	}
	return entries
}
