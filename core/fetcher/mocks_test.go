package fetcher

import (
	"context"
	"errors"
	"sync"
	"time"

	"competitor-monitor-api/core/domain"
	"competitor-monitor-api/core/interfaces"
)

// mockLauncher is a mock implementation of the BrowserLauncher interface
type mockLauncher struct {
	launchFunc func(ctx context.Context, opts interfaces.BrowserOptions) (interfaces.BrowserSession, error)
	launches   int
}

func (m *mockLauncher) Launch(ctx context.Context, opts interfaces.BrowserOptions) (interfaces.BrowserSession, error) {
	m.launches++
	if m.launchFunc != nil {
		return m.launchFunc(ctx, opts)
	}
	return &mockSession{}, nil
}

// mockSession is a mock implementation of the BrowserSession interface
type mockSession struct {
	navigateFunc     func(ctx context.Context, url string, timeout time.Duration) error
	waitFunc         func(ctx context.Context, tag string, timeout time.Duration) error
	elementTextsFunc func(ctx context.Context, tag string) ([]string, error)
	title            string
	screenshot       []byte
	screenshotErr    error
	quits            int
}

func (m *mockSession) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	if m.navigateFunc != nil {
		return m.navigateFunc(ctx, url, timeout)
	}
	return nil
}

func (m *mockSession) WaitForElement(ctx context.Context, tag string, timeout time.Duration) error {
	if m.waitFunc != nil {
		return m.waitFunc(ctx, tag, timeout)
	}
	return nil
}

func (m *mockSession) ElementTexts(ctx context.Context, tag string) ([]string, error) {
	if m.elementTextsFunc != nil {
		return m.elementTextsFunc(ctx, tag)
	}
	return nil, nil
}

func (m *mockSession) Title(ctx context.Context) (string, error) {
	return m.title, nil
}

func (m *mockSession) Screenshot(ctx context.Context) ([]byte, error) {
	return m.screenshot, m.screenshotErr
}

func (m *mockSession) Quit() error {
	m.quits++
	return nil
}

// mockLogger discards everything
type mockLogger struct{}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}

// mockCache is a map-backed implementation of the Cache interface
type mockCache struct {
	mu      sync.Mutex
	items   map[string][]byte
	setErr  error
	setKeys []string
}

func newMockCache() *mockCache {
	return &mockCache{items: make(map[string][]byte)}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	if !ok {
		return nil, errors.New("key not found")
	}
	return v, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setKeys = append(m.setKeys, key)
	if m.setErr != nil {
		return m.setErr
	}
	m.items[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// mockSource is a mock implementation of the PageSource interface
type mockSource struct {
	fetchFunc func(ctx context.Context, url string) (domain.ParsedPage, error)
	calls     int
}

func (m *mockSource) Fetch(ctx context.Context, url string) (domain.ParsedPage, error) {
	m.calls++
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, url)
	}
	return domain.ParsedPage{URL: url}, nil
}
