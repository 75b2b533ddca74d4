package fetcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"competitor-monitor-api/core/domain"
)

func TestCachedSource_SecondFetchIsServedFromCache(t *testing.T) {
	launcher := &mockLauncher{}
	inner := NewFetcher(launcher, &mockLogger{}, Config{SettleDelay: 0})
	cache := newMockCache()
	src := NewCachedSource(inner, cache, 5*time.Minute, &mockLogger{})

	first, err := src.Fetch(context.Background(), "example.com")
	require.NoError(t, err)
	second, err := src.Fetch(context.Background(), "https://example.com")
	require.NoError(t, err)

	assert.Equal(t, 1, launcher.launches)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"page:https://example.com"}, cache.setKeys)
}

func TestCachedSource_FailedPagesAreNotCached(t *testing.T) {
	source := &mockSource{
		fetchFunc: func(ctx context.Context, url string) (domain.ParsedPage, error) {
			return domain.ParsedPage{URL: url, Error: MessageTimeout}, nil
		},
	}
	cache := newMockCache()
	src := NewCachedSource(source, cache, time.Minute, &mockLogger{})

	for i := 0; i < 2; i++ {
		page, err := src.Fetch(context.Background(), "example.com")
		require.NoError(t, err)
		assert.True(t, page.Failed())
	}
	assert.Equal(t, 2, source.calls)
	assert.Empty(t, cache.setKeys)
}

func TestCachedSource_SetErrorIsIgnored(t *testing.T) {
	source := &mockSource{}
	cache := newMockCache()
	cache.setErr = errors.New("redis down")
	src := NewCachedSource(source, cache, time.Minute, &mockLogger{})

	page, err := src.Fetch(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, "example.com", page.URL)
}

func TestCachedSource_CorruptEntryFallsThrough(t *testing.T) {
	source := &mockSource{}
	cache := newMockCache()
	cache.items[CacheKey("example.com")] = []byte("not json")
	src := NewCachedSource(source, cache, time.Minute, &mockLogger{})

	_, err := src.Fetch(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, source.calls)
}
