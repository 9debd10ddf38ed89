// Package oauthclient is a generic OAuth 1.0a signed JSON HTTP client.
// It handles request signing, transient-failure retries and rate limiting,
// and is not tied to any specific provider API.
package oauthclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dghubble/oauth1"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Config holds the long-lived OAuth 1.0a credentials.
type Config struct {
	ConsumerKey    string
	ConsumerSecret string
	Token          string
	TokenSecret    string
}

func (c Config) Validate() error {
	if c.ConsumerKey == "" || c.ConsumerSecret == "" || c.Token == "" || c.TokenSecret == "" {
		return errors.New("all OAuth credentials must be provided")
	}
	return nil
}

// StatusError reports a non-2xx HTTP response. Status errors are never
// retried; callers classify them by Code.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Code)
}

type Client struct {
	httpClient  *http.Client
	limiter     *rate.Limiter
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
	log         *zap.Logger
}

// New creates a signed client. It fails fast if any credential is empty.
func New(cfg Config, timeout time.Duration, rps int, logger *zap.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if rps <= 0 {
		rps = 5
	}

	oauthCfg := oauth1.NewConfig(cfg.ConsumerKey, cfg.ConsumerSecret)
	token := oauth1.NewToken(cfg.Token, cfg.TokenSecret)
	httpClient := oauthCfg.Client(oauth1.NoContext, token)
	httpClient.Timeout = timeout

	return &Client{
		httpClient:  httpClient,
		limiter:     rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
		maxAttempts: 3,
		baseDelay:   2 * time.Second,
		maxDelay:    10 * time.Second,
		log:         logger,
	}, nil
}

// GetJSON performs a signed GET and decodes the response body into v.
// Query values are merged into the URL before signing.
func (c *Client) GetJSON(ctx context.Context, rawURL string, query url.Values, v any) error {
	u := rawURL
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		u = rawURL + sep + query.Encode()
	}
	return c.do(ctx, http.MethodGet, u, nil, v)
}

// PostJSON performs a signed POST with a JSON body and decodes the response
// into v.
func (c *Client) PostJSON(ctx context.Context, rawURL string, body any, v any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, rawURL, payload, v)
}

// HealthCheck reports whether the endpoint is reachable through a signed
// request. It swallows all errors.
func (c *Client) HealthCheck(ctx context.Context, rawURL string) bool {
	var v any
	if err := c.GetJSON(ctx, rawURL, nil, &v); err != nil {
		c.log.Warn("health check failed", zap.Error(err))
		return false
	}
	return true
}

func (c *Client) do(ctx context.Context, method, url string, body []byte, v any) error {
	var lastErr error
	for i := 0; i < c.maxAttempts; i++ {
		if i > 0 {
			// Backoff: 2s, 4s, ... capped at maxDelay.
			delay := c.baseDelay << uint(i-1)
			if delay > c.maxDelay {
				delay = c.maxDelay
			}
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		var reqBody io.Reader
		if body != nil {
			reqBody = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
		if err != nil {
			return err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		// Do not log query params, they may carry sensitive data.
		c.log.Debug("signed request", zap.String("method", method))

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			// Let the caller classify status failures; never retry them.
			return &StatusError{Code: resp.StatusCode}
		}

		err = json.NewDecoder(resp.Body).Decode(v)
		resp.Body.Close()
		return err
	}
	return fmt.Errorf("after %d attempts: %w", c.maxAttempts, lastErr)
}

// IsTimeout reports whether err was caused by a network timeout, as opposed
// to a refused connection or a status failure.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
