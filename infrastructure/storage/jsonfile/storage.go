// ABOUTME: JSON file backed history storage
// ABOUTME: Reads tolerate hand edits via json5, writes replace the file atomically

package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	json5 "github.com/yosuke-furukawa/json5/encoding/json5"

	"competitor-monitor-api/core/domain"
)

// Storage implements interfaces.HistoryStorage on a single JSON array file
type Storage struct {
	path string
}

// New creates a storage for path. The file is not touched until used.
func New(path string) *Storage {
	return &Storage{path: path}
}

// Path returns the backing file path
func (s *Storage) Path() string {
	return s.path
}

// EnsureFile creates the file holding an empty array when it does not exist
func (s *Storage) EnsureFile() error {
	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat history file: %w", err)
	}
	return s.write([]byte("[]"))
}

// Load reads every entry. A missing or empty file yields an empty slice.
func (s *Storage) Load(ctx context.Context) ([]domain.HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.HistoryEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history file: %w", err)
	}
	if len(data) == 0 {
		return []domain.HistoryEntry{}, nil
	}

	var entries []domain.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		// Hand-edited files may carry comments or trailing commas
		if err5 := json5.Unmarshal(data, &entries); err5 != nil {
			return nil, fmt.Errorf("decode history file: %w", err)
		}
	}
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	return entries, nil
}

// Save replaces the file with entries as an indented JSON array
func (s *Storage) Save(ctx context.Context, entries []domain.HistoryEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	return s.write(data)
}

// write stores data through a temp file renamed into place
func (s *Storage) write(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace history file: %w", err)
	}
	return nil
}
