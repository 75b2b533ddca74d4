// ABOUTME: Browser engine ports used by the page fetcher
// ABOUTME: A launcher starts an isolated session, the session drives one page

package interfaces

import (
	"context"
	"time"
)

// BrowserOptions configures a browser session launch
type BrowserOptions struct {
	ViewportWidth  int
	ViewportHeight int
	UserAgent      string
	Headless       bool
	NoSandbox      bool
}

// BrowserLauncher starts isolated browser sessions
type BrowserLauncher interface {
	Launch(ctx context.Context, opts BrowserOptions) (BrowserSession, error)
}

// BrowserSession drives a single page of a launched browser.
//
// Engines report navigation and wait timeouts with errors.ErrNavigationTimeout
// and engine-level failures as *errors.BrowserError. Quit must always be safe
// to call, including after a failed navigation.
type BrowserSession interface {
	// Navigate loads url and waits for the load event up to timeout
	Navigate(ctx context.Context, url string, timeout time.Duration) error

	// WaitForElement waits until an element with the given tag exists
	WaitForElement(ctx context.Context, tag string, timeout time.Duration) error

	// ElementTexts returns the rendered text of every element with the given
	// tag, in document order
	ElementTexts(ctx context.Context, tag string) ([]string, error)

	// Title returns the page title
	Title(ctx context.Context) (string, error)

	// Screenshot captures the full page; engines without rendering return nil
	Screenshot(ctx context.Context) ([]byte, error)

	// Quit releases every resource held by the session
	Quit() error
}
