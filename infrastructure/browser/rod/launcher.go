// ABOUTME: Headless Chrome engine built on go-rod
// ABOUTME: Each Launch starts a dedicated browser process with an incognito page

package rod

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"

	coreerrors "competitor-monitor-api/core/errors"
	"competitor-monitor-api/core/interfaces"
)

// Launcher implements interfaces.BrowserLauncher with a fresh Chrome
// process per session
type Launcher struct {
	// Bin is the Chrome binary; empty lets rod find or download one
	Bin string
}

// NewLauncher creates a rod launcher
func NewLauncher(bin string) *Launcher {
	return &Launcher{Bin: bin}
}

// Launch starts Chrome and opens an incognito page with the requested
// viewport and user agent
func (l *Launcher) Launch(ctx context.Context, opts interfaces.BrowserOptions) (interfaces.BrowserSession, error) {
	proc := newProcess(l.Bin, opts).Context(ctx)

	controlURL, err := proc.Launch()
	if err != nil {
		proc.Kill()
		return nil, &coreerrors.BrowserError{Op: "launch", Err: err}
	}

	session := &Session{launcher: proc}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		session.Quit()
		return nil, &coreerrors.BrowserError{Op: "connect", Err: err}
	}
	session.browser = browser

	incognito, err := browser.Incognito()
	if err != nil {
		session.Quit()
		return nil, &coreerrors.BrowserError{Op: "incognito", Err: err}
	}

	page, err := incognito.Page(proto.TargetCreateTarget{})
	if err != nil {
		session.Quit()
		return nil, &coreerrors.BrowserError{Op: "create page", Err: err}
	}
	session.page = page

	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             opts.ViewportWidth,
		Height:            opts.ViewportHeight,
		DeviceScaleFactor: 1.0,
		Mobile:            false,
	}).Call(page); err != nil {
		session.Quit()
		return nil, &coreerrors.BrowserError{Op: "viewport", Err: err}
	}

	if opts.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: opts.UserAgent}); err != nil {
			session.Quit()
			return nil, &coreerrors.BrowserError{Op: "user agent", Err: err}
		}
	}

	return session, nil
}

// newProcess configures the Chrome command line
func newProcess(bin string, opts interfaces.BrowserOptions) *launcher.Launcher {
	proc := launcher.New().
		Headless(opts.Headless).
		NoSandbox(opts.NoSandbox).
		Set(flags.Flag("disable-dev-shm-usage")).
		Set(flags.Flag("disable-gpu")).
		Set(flags.Flag("window-size"), fmt.Sprintf("%d,%d", opts.ViewportWidth, opts.ViewportHeight)).
		Set(flags.Flag("disable-blink-features"), "AutomationControlled").
		Delete(flags.Flag("enable-automation"))

	if opts.UserAgent != "" {
		proc = proc.Set(flags.Flag("user-agent"), opts.UserAgent)
	}
	if bin != "" {
		proc = proc.Bin(bin)
	}
	return proc
}

// Session drives one page of a launched Chrome
type Session struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
}

// Navigate loads url and waits for the load event
func (s *Session) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	page := s.page.Context(ctx).Timeout(timeout)
	defer page.CancelTimeout()

	if err := page.Navigate(url); err != nil {
		return wrapError("navigate", err)
	}
	if err := page.WaitLoad(); err != nil {
		return wrapError("wait load", err)
	}
	return nil
}

// WaitForElement waits for the first element matching tag
func (s *Session) WaitForElement(ctx context.Context, tag string, timeout time.Duration) error {
	page := s.page.Context(ctx).Timeout(timeout)
	defer page.CancelTimeout()

	if _, err := page.Element(tag); err != nil {
		return wrapError("wait for "+tag, err)
	}
	return nil
}

// ElementTexts returns the rendered text of every element matching tag
func (s *Session) ElementTexts(ctx context.Context, tag string) ([]string, error) {
	elements, err := s.page.Context(ctx).Elements(tag)
	if err != nil {
		return nil, wrapError("query "+tag, err)
	}

	texts := make([]string, 0, len(elements))
	for _, el := range elements {
		text, err := el.Text()
		if err != nil {
			return nil, wrapError("read "+tag, err)
		}
		texts = append(texts, text)
	}
	return texts, nil
}

// Title returns the page title
func (s *Session) Title(ctx context.Context) (string, error) {
	info, err := s.page.Context(ctx).Info()
	if err != nil {
		return "", wrapError("title", err)
	}
	return info.Title, nil
}

// Screenshot captures the full page as JPEG
func (s *Session) Screenshot(ctx context.Context) ([]byte, error) {
	data, err := s.page.Context(ctx).Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatJpeg,
	})
	if err != nil {
		return nil, wrapError("screenshot", err)
	}
	return data, nil
}

// Quit closes the browser and removes the Chrome process and its profile
func (s *Session) Quit() error {
	var err error
	if s.browser != nil {
		err = s.browser.Close()
	}
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher.Cleanup()
	}
	return err
}

// wrapError maps rod failures onto the fetcher's error contract
func wrapError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, coreerrors.ErrNavigationTimeout)
	}
	return &coreerrors.BrowserError{Op: op, Err: err}
}
