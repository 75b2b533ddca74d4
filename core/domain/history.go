// ABOUTME: History domain model records one past pipeline invocation
// ABOUTME: Entries are immutable once created and capped in a newest-first log

package domain

import (
	"time"

	"competitor-monitor-api/pkg/utils/text"
	"github.com/google/uuid"
)

// RequestType identifies which pipeline produced a history entry
type RequestType string

const (
	RequestTypeText  RequestType = "text"
	RequestTypeImage RequestType = "image"
	RequestTypeParse RequestType = "parse"
)

// Valid reports whether t is one of the known request types
func (t RequestType) Valid() bool {
	switch t {
	case RequestTypeText, RequestTypeImage, RequestTypeParse:
		return true
	}
	return false
}

// Summary field limits, in runes
const (
	MaxRequestSummaryLength  = 200
	MaxResponseSummaryLength = 500
	DefaultMaxHistoryItems   = 10
)

// HistoryEntry is one record of the history log
type HistoryEntry struct {
	ID              string      `json:"id"`
	Timestamp       time.Time   `json:"timestamp"`
	RequestType     RequestType `json:"request_type"`
	RequestSummary  string      `json:"request_summary"`
	ResponseSummary string      `json:"response_summary"`
}

// NewHistoryEntry creates an entry with a fresh id and timestamp and the
// summaries cut to their field limits
func NewHistoryEntry(kind RequestType, requestSummary, responseSummary string) HistoryEntry {
	return HistoryEntry{
		ID:              uuid.New().String(),
		Timestamp:       time.Now(),
		RequestType:     kind,
		RequestSummary:  text.Truncate(requestSummary, MaxRequestSummaryLength),
		ResponseSummary: text.Truncate(responseSummary, MaxResponseSummaryLength),
	}
}
