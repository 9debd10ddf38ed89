package oauthclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() Config {
	return Config{
		ConsumerKey:    "ck",
		ConsumerSecret: "cs",
		Token:          "tok",
		TokenSecret:    "ts",
	}
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := New(testConfig(), time.Second, 1000, zap.NewNop())
	require.NoError(t, err)
	// Keep retries fast in tests.
	client.baseDelay = time.Millisecond
	return client
}

func TestNew_RequiresAllCredentials(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"missing consumer key", Config{ConsumerSecret: "cs", Token: "tok", TokenSecret: "ts"}},
		{"missing consumer secret", Config{ConsumerKey: "ck", Token: "tok", TokenSecret: "ts"}},
		{"missing token", Config{ConsumerKey: "ck", ConsumerSecret: "cs", TokenSecret: "ts"}},
		{"missing token secret", Config{ConsumerKey: "ck", ConsumerSecret: "cs", Token: "tok"}},
		{"all empty", Config{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.cfg, time.Second, 1, zap.NewNop())
			assert.Error(t, err)
		})
	}
}

func TestGetJSON_SignsRequests(t *testing.T) {
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := newTestClient(t)

	var resp struct {
		OK bool `json:"ok"`
	}
	err := client.GetJSON(context.Background(), server.URL, nil, &resp)
	require.NoError(t, err)
	assert.True(t, resp.OK)

	assert.True(t, strings.HasPrefix(authHeader, "OAuth "), "expected OAuth authorization header, got %q", authHeader)
	assert.Contains(t, authHeader, `oauth_consumer_key="ck"`)
	assert.Contains(t, authHeader, `oauth_token="tok"`)
	assert.Contains(t, authHeader, "oauth_signature=")
}

func TestGetJSON_MergesQueryParams(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t)

	var resp map[string]any
	err := client.GetJSON(context.Background(), server.URL, url.Values{"break_minifigs": {"true"}}, &resp)
	require.NoError(t, err)
	assert.Equal(t, "true", gotQuery.Get("break_minifigs"))
}

func TestGetJSON_StatusErrorsAreNotRetried(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusNotFound, http.StatusTooManyRequests, http.StatusInternalServerError} {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(status)
		}))

		client := newTestClient(t)

		var resp map[string]any
		err := client.GetJSON(context.Background(), server.URL, nil, &resp)
		server.Close()

		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, status, statusErr.Code)
		assert.Equal(t, 1, calls, "status %d must not be retried", status)
	}
}

func TestGetJSON_RetriesConnectionFailures(t *testing.T) {
	// A server that is already closed yields connection refused on every
	// attempt; the client should exhaust its attempt budget.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	client := newTestClient(t)

	var resp map[string]any
	err := client.GetJSON(context.Background(), addr, nil, &resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
}

func TestGetJSON_ContextCancelStopsRetry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	client := newTestClient(t)
	client.baseDelay = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	var resp map[string]any
	err := client.GetJSON(ctx, addr, nil, &resp)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPostJSON_SendsBody(t *testing.T) {
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := newTestClient(t)

	var resp map[string]any
	err := client.PostJSON(context.Background(), server.URL, map[string]string{"k": "v"}, &resp)
	require.NoError(t, err)
	assert.Equal(t, "application/json", gotContentType)
}

func TestHealthCheck_SwallowsErrors(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer healthy.Close()

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer broken.Close()

	client := newTestClient(t)

	assert.True(t, client.HealthCheck(context.Background(), healthy.URL))
	assert.False(t, client.HealthCheck(context.Background(), broken.URL))
	assert.False(t, client.HealthCheck(context.Background(), "http://127.0.0.1:1"))
}

func TestIsTimeout(t *testing.T) {
	assert.True(t, IsTimeout(context.DeadlineExceeded))
	assert.False(t, IsTimeout(context.Canceled))
	assert.False(t, IsTimeout(&StatusError{Code: 500}))
	assert.False(t, IsTimeout(nil))
}
