package standard

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, body io.ReadCloser) string {
	t.Helper()
	defer body.Close()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	return string(data)
}

func TestNewStandardHTTPClient(t *testing.T) {
	client := NewStandardHTTPClient(15 * time.Second)
	require.NotNil(t, client)
	assert.Equal(t, 15*time.Second, client.client.Timeout)
	assert.Equal(t, defaultUserAgent, client.userAgent)

	client = NewStandardHTTPClient(time.Second, WithUserAgent(""))
	assert.Equal(t, defaultUserAgent, client.userAgent, "empty agent keeps the default")
}

func TestGet_ReturnsCompetitorPage(t *testing.T) {
	var agent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		agent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<title>Acme Pricing</title>"))
	}))
	defer server.Close()

	resp, err := NewStandardHTTPClient(5*time.Second).Get(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "text/html", resp.Header("content-type"))
	assert.Equal(t, "<title>Acme Pricing</title>", readAll(t, resp.Body()))
	assert.Contains(t, agent, "CompetitorMonitor")
}

func TestGet_CustomUserAgent(t *testing.T) {
	var agent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	client := NewStandardHTTPClient(5*time.Second, WithUserAgent("Mozilla/5.0 (X11; Linux x86_64)"))
	resp, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)
	resp.Body().Close()

	assert.Equal(t, "Mozilla/5.0 (X11; Linux x86_64)", agent)
}

func TestGet_Retries(t *testing.T) {
	tests := []struct {
		name         string
		statuses     []int
		wantAttempts int32
		wantStatus   int
	}{
		{"recovers after transient 503", []int{503, 502, 200}, 3, http.StatusOK},
		{"returns last 5xx after max retries", []int{503, 503, 503, 503}, 3, http.StatusServiceUnavailable},
		{"no retry on 4xx", []int{404, 200}, 1, http.StatusNotFound},
		{"no retry on success", []int{200, 200}, 1, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var attempts atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := attempts.Add(1)
				w.WriteHeader(tt.statuses[n-1])
			}))
			defer server.Close()

			resp, err := NewStandardHTTPClient(5*time.Second).Get(context.Background(), server.URL)
			require.NoError(t, err)
			resp.Body().Close()

			assert.Equal(t, tt.wantAttempts, attempts.Load())
			assert.Equal(t, tt.wantStatus, resp.StatusCode())
		})
	}
}

func TestGet_ContextDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewStandardHTTPClient(5*time.Second).Get(ctx, server.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGet_InvalidURL(t *testing.T) {
	_, err := NewStandardHTTPClient(time.Second).Get(context.Background(), "://no-scheme")
	assert.Error(t, err)
}

func TestPost_SendsBodyOnce(t *testing.T) {
	var attempts atomic.Int32
	var body, contentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		contentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	resp, err := NewStandardHTTPClient(5*time.Second).Post(context.Background(), server.URL,
		"application/json", strings.NewReader(`{"text":"Acme launches a cheaper plan"}`))
	require.NoError(t, err)
	resp.Body().Close()

	assert.Equal(t, int32(1), attempts.Load(), "posts are never retried")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode())
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, `{"text":"Acme launches a cheaper plan"}`, body)
}

func TestDelete(t *testing.T) {
	var method string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		_, _ = w.Write([]byte(`{"message":"History cleared"}`))
	}))
	defer server.Close()

	resp, err := NewStandardHTTPClient(5*time.Second).Delete(context.Background(), server.URL+"/history")
	require.NoError(t, err)

	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, `{"message":"History cleared"}`, readAll(t, resp.Body()))
}
