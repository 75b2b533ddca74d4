package workers

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"competitor-monitor-api/core/domain"
)

// mockSource records how many fetches run at once
type mockSource struct {
	delay   time.Duration
	active  int32
	peak    int32
	calls   int32
	release chan struct{}
}

func (m *mockSource) Fetch(ctx context.Context, url string) (domain.ParsedPage, error) {
	n := atomic.AddInt32(&m.active, 1)
	defer atomic.AddInt32(&m.active, -1)
	atomic.AddInt32(&m.calls, 1)
	for {
		peak := atomic.LoadInt32(&m.peak)
		if n <= peak || atomic.CompareAndSwapInt32(&m.peak, peak, n) {
			break
		}
	}
	if m.release != nil {
		<-m.release
	}
	time.Sleep(m.delay)
	return domain.ParsedPage{URL: url, Title: "title for " + url}, nil
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}

func TestNewBrowserPool_Defaults(t *testing.T) {
	pool := NewBrowserPool(&mockSource{}, &mockLogger{}, PoolConfig{})
	assert.Equal(t, 2, pool.maxWorkers)
	assert.Equal(t, 32, pool.queueSize)
	assert.Equal(t, 32, cap(pool.jobQueue))
}

func TestBrowserPool_BoundsConcurrency(t *testing.T) {
	source := &mockSource{delay: 50 * time.Millisecond}
	pool := NewBrowserPool(source, &mockLogger{}, PoolConfig{MaxWorkers: 2, QueueSize: 4})
	require.NoError(t, pool.Start())
	defer pool.Stop()

	urls := []string{"https://a.example", "https://b.example", "https://c.example"}
	pages := make([]domain.ParsedPage, len(urls))

	var wg sync.WaitGroup
	for i, u := range urls {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			page, err := pool.Fetch(context.Background(), u)
			assert.NoError(t, err)
			pages[i] = page
		}(i, u)
	}
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&source.peak), int32(2))
	assert.Equal(t, int32(3), atomic.LoadInt32(&source.calls))
	for i, u := range urls {
		assert.Equal(t, u, pages[i].URL)
	}
}

func TestBrowserPool_NotRunning(t *testing.T) {
	pool := NewBrowserPool(&mockSource{}, &mockLogger{}, PoolConfig{})

	_, err := pool.Fetch(context.Background(), "https://example.com")
	assert.ErrorIs(t, err, ErrPoolNotRunning)

	require.NoError(t, pool.Start())
	require.NoError(t, pool.Start())
	require.NoError(t, pool.Stop())
	require.NoError(t, pool.Stop())

	_, err = pool.Fetch(context.Background(), "https://example.com")
	assert.ErrorIs(t, err, ErrPoolNotRunning)
}

func TestBrowserPool_CallerCancellation(t *testing.T) {
	source := &mockSource{release: make(chan struct{})}
	pool := NewBrowserPool(source, &mockLogger{}, PoolConfig{MaxWorkers: 1, QueueSize: 1})
	require.NoError(t, pool.Start())

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := pool.Fetch(ctx, "https://slow.example")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// The in-flight fetch is still running and finishes once released
	close(source.release)
	require.NoError(t, pool.Stop())
	assert.Equal(t, int32(1), atomic.LoadInt32(&source.calls))
}
