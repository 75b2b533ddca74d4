// ABOUTME: Browserless page engine that parses raw HTML with goquery
// ABOUTME: Used where Chrome is unavailable; it never produces screenshots

package static

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
	"time"

	"github.com/PuerkitoBio/goquery"

	coreerrors "competitor-monitor-api/core/errors"
	"competitor-monitor-api/core/interfaces"
)

// Chrome net error codes, reused so the fetcher classifies both engines alike
const (
	errNameNotResolved    = "net::ERR_NAME_NOT_RESOLVED"
	errConnectionRefused  = "net::ERR_CONNECTION_REFUSED"
	errConnectionTimedOut = "net::ERR_CONNECTION_TIMED_OUT"
)

// Launcher implements interfaces.BrowserLauncher over plain HTTP
type Launcher struct {
	client interfaces.HTTPClient
}

// NewLauncher creates a static engine using client for page downloads
func NewLauncher(client interfaces.HTTPClient) *Launcher {
	return &Launcher{client: client}
}

// Launch returns a session; no process is started
func (l *Launcher) Launch(_ context.Context, _ interfaces.BrowserOptions) (interfaces.BrowserSession, error) {
	return &Session{client: l.client}, nil
}

// Session holds the parsed document of the last navigation
type Session struct {
	client interfaces.HTTPClient
	doc    *goquery.Document
}

// Navigate downloads and parses url. Any HTTP status is accepted, the same
// way a browser renders error pages.
func (s *Session) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := s.client.Get(ctx, url)
	if err != nil {
		return mapError(ctx, err)
	}
	defer resp.Body().Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body())
	if err != nil {
		if ctx.Err() != nil {
			return mapError(ctx, err)
		}
		return &coreerrors.BrowserError{Op: "parse", Err: err}
	}

	s.doc = doc
	return nil
}

// WaitForElement reports whether the document has an element with tag;
// a static document never changes, so there is nothing to wait for
func (s *Session) WaitForElement(_ context.Context, tag string, _ time.Duration) error {
	if s.doc == nil {
		return &coreerrors.BrowserError{Op: "wait for " + tag, Err: errors.New("no document loaded")}
	}
	if s.doc.Find(tag).Length() == 0 {
		return &coreerrors.BrowserError{Op: "wait for " + tag, Err: fmt.Errorf("element %q not found", tag)}
	}
	return nil
}

// ElementTexts returns the text of every element matching tag
func (s *Session) ElementTexts(_ context.Context, tag string) ([]string, error) {
	if s.doc == nil {
		return nil, &coreerrors.BrowserError{Op: "query " + tag, Err: errors.New("no document loaded")}
	}

	var texts []string
	s.doc.Find(tag).Each(func(_ int, sel *goquery.Selection) {
		texts = append(texts, sel.Text())
	})
	return texts, nil
}

// Title returns the text of the document's title element
func (s *Session) Title(_ context.Context) (string, error) {
	if s.doc == nil {
		return "", &coreerrors.BrowserError{Op: "title", Err: errors.New("no document loaded")}
	}
	return strings.TrimSpace(s.doc.Find("title").First().Text()), nil
}

// Screenshot is unsupported and always returns nil
func (s *Session) Screenshot(_ context.Context) ([]byte, error) {
	return nil, nil
}

// Quit drops the parsed document
func (s *Session) Quit() error {
	s.doc = nil
	return nil
}

// mapError translates transport failures into Chrome-style browser errors
func mapError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("navigate: %w", coreerrors.ErrNavigationTimeout)
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &coreerrors.BrowserError{Op: "navigate", Err: fmt.Errorf("%s: %w", errNameNotResolved, err)}
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return &coreerrors.BrowserError{Op: "navigate", Err: fmt.Errorf("%s: %w", errConnectionRefused, err)}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &coreerrors.BrowserError{Op: "navigate", Err: fmt.Errorf("%s: %w", errConnectionTimedOut, err)}
	}

	return &coreerrors.BrowserError{Op: "navigate", Err: err}
}
