// ABOUTME: Page fetcher driving a browser session through load, extraction and screenshot
// ABOUTME: Every failure becomes a human-readable ParsedPage error, never a returned error

package fetcher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"competitor-monitor-api/core/domain"
	"competitor-monitor-api/core/interfaces"
	"competitor-monitor-api/pkg/utils/text"
)

// Default fetch settings
const (
	DefaultPageLoadTimeout = 10 * time.Second
	DefaultSettleDelay     = 2 * time.Second
	DefaultViewportWidth   = 1920
	DefaultViewportHeight  = 1080
	DefaultUserAgent       = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Config holds fetcher settings
type Config struct {
	PageLoadTimeout time.Duration
	SettleDelay     time.Duration
	UserAgent       string
	ViewportWidth   int
	ViewportHeight  int
	NoSandbox       bool
}

// DefaultConfig returns the fetcher defaults
func DefaultConfig() Config {
	return Config{
		PageLoadTimeout: DefaultPageLoadTimeout,
		SettleDelay:     DefaultSettleDelay,
		UserAgent:       DefaultUserAgent,
		ViewportWidth:   DefaultViewportWidth,
		ViewportHeight:  DefaultViewportHeight,
		NoSandbox:       true,
	}
}

// Fetcher loads pages through a BrowserLauncher
type Fetcher struct {
	launcher interfaces.BrowserLauncher
	logger   interfaces.Logger
	config   Config
}

// NewFetcher creates a fetcher. Zero config fields fall back to defaults.
func NewFetcher(launcher interfaces.BrowserLauncher, logger interfaces.Logger, config Config) *Fetcher {
	defaults := DefaultConfig()
	if config.PageLoadTimeout <= 0 {
		config.PageLoadTimeout = defaults.PageLoadTimeout
	}
	if config.SettleDelay < 0 {
		config.SettleDelay = 0
	}
	if config.UserAgent == "" {
		config.UserAgent = defaults.UserAgent
	}
	if config.ViewportWidth <= 0 {
		config.ViewportWidth = defaults.ViewportWidth
	}
	if config.ViewportHeight <= 0 {
		config.ViewportHeight = defaults.ViewportHeight
	}
	return &Fetcher{launcher: launcher, logger: logger, config: config}
}

// NormalizeURL trims the input and prepends https:// when no http(s) scheme
// is present
func NormalizeURL(raw string) string {
	u := strings.TrimSpace(raw)
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return "https://" + u
}

// Fetch loads url and extracts its title, first h1, first substantial
// paragraph and a screenshot. The returned error is always nil; failures
// are reported through ParsedPage.Error.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (domain.ParsedPage, error) {
	url := NormalizeURL(rawURL)
	start := time.Now()

	page, err := f.fetch(ctx, url, start)
	if err != nil {
		message := Classify(err)
		f.logger.Warn("Page fetch failed", map[string]interface{}{
			"url":        url,
			"error":      err.Error(),
			"message":    message,
			"elapsed_ms": time.Since(start).Milliseconds(),
		})
		return domain.ParsedPage{URL: url, Error: message}, nil
	}

	f.logger.Info("Page fetched", map[string]interface{}{
		"url":             url,
		"title":           page.Title,
		"screenshot_size": len(page.Screenshot),
		"elapsed_ms":      time.Since(start).Milliseconds(),
	})
	return page, nil
}

func (f *Fetcher) fetch(ctx context.Context, url string, start time.Time) (page domain.ParsedPage, err error) {
	var session interfaces.BrowserSession

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
			page = domain.ParsedPage{}
		}
		if session != nil {
			if quitErr := session.Quit(); quitErr != nil {
				f.logger.Debug("Browser quit failed", map[string]interface{}{
					"url":   url,
					"error": quitErr.Error(),
				})
			}
		}
		f.transition(url, "closed", start)
	}()

	f.transition(url, "launching", start)
	session, err = f.launcher.Launch(ctx, interfaces.BrowserOptions{
		ViewportWidth:  f.config.ViewportWidth,
		ViewportHeight: f.config.ViewportHeight,
		UserAgent:      f.config.UserAgent,
		Headless:       true,
		NoSandbox:      f.config.NoSandbox,
	})
	if err != nil {
		return domain.ParsedPage{}, err
	}

	f.transition(url, "navigating", start)
	if err = session.Navigate(ctx, url, f.config.PageLoadTimeout); err != nil {
		return domain.ParsedPage{}, err
	}

	f.transition(url, "waiting_for_body", start)
	if err = session.WaitForElement(ctx, "body", f.config.PageLoadTimeout); err != nil {
		return domain.ParsedPage{}, err
	}

	f.transition(url, "settling", start)
	if err = settle(ctx, f.config.SettleDelay); err != nil {
		return domain.ParsedPage{}, err
	}

	f.transition(url, "extracting", start)
	page = domain.ParsedPage{URL: url}
	if page.Title, err = session.Title(ctx); err != nil {
		return domain.ParsedPage{}, err
	}
	page.H1 = f.firstHeading(ctx, session, url)
	page.FirstParagraph = f.firstParagraph(ctx, session, url)

	f.transition(url, "screenshotting", start)
	if page.Screenshot, err = session.Screenshot(ctx); err != nil {
		return domain.ParsedPage{}, err
	}

	return page, nil
}

func (f *Fetcher) firstHeading(ctx context.Context, session interfaces.BrowserSession, url string) string {
	texts, err := session.ElementTexts(ctx, "h1")
	if err != nil {
		f.logger.Debug("Heading extraction failed", map[string]interface{}{"url": url, "error": err.Error()})
		return ""
	}
	if len(texts) == 0 {
		return ""
	}
	return strings.TrimSpace(texts[0])
}

func (f *Fetcher) firstParagraph(ctx context.Context, session interfaces.BrowserSession, url string) string {
	texts, err := session.ElementTexts(ctx, "p")
	if err != nil {
		f.logger.Debug("Paragraph extraction failed", map[string]interface{}{"url": url, "error": err.Error()})
		return ""
	}
	return SelectParagraph(texts)
}

func (f *Fetcher) transition(url, state string, start time.Time) {
	f.logger.Debug("Fetch state", map[string]interface{}{
		"url":        url,
		"state":      state,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
}

// SelectParagraph returns the first paragraph whose trimmed text is longer
// than domain.MinParagraphLength, cut to domain.MaxParagraphLength
func SelectParagraph(texts []string) string {
	for _, t := range texts {
		trimmed := strings.TrimSpace(t)
		if text.Len(trimmed) > domain.MinParagraphLength {
			return text.Truncate(trimmed, domain.MaxParagraphLength)
		}
	}
	return ""
}

func settle(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
