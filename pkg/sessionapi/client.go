// Package sessionapi fetches sessions from an upstream session
// service over HTTP, with retries and short-lived response caching.
package sessionapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/maypok86/otter/v2"

	"github.com/codeGROOVE-dev/steady/pkg/session"
	"github.com/codeGROOVE-dev/steady/pkg/store"
)

const (
	requestTimeout = 30 * time.Second
	cacheTTL       = 5 * time.Minute
	cacheCapacity  = 10_000
)

// Client implements store.Store against a remote session service.
type Client struct {
	base       *url.URL
	httpClient *http.Client
	cache      *otter.Cache[string, []session.Session]
	logger     *slog.Logger
}

var _ store.Store = (*Client)(nil)

// New builds a client for the service at baseURL, e.g.
// "https://sessions.internal:8443".
func New(baseURL string, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing session service URL: %w", err)
	}

	cache := otter.Must(&otter.Options[string, []session.Session]{
		MaximumSize:      cacheCapacity,
		ExpiryCalculator: otter.ExpiryWriting[string, []session.Session](cacheTTL),
	})

	return &Client{
		base:       base,
		httpClient: &http.Client{Timeout: requestTimeout},
		cache:      cache,
		logger:     logger,
	}, nil
}

// SessionsForUser fetches all sessions for userID started within
// [from, to]. Responses are cached briefly per exact request so that
// repeated scoring of the same user does not hammer the upstream.
func (c *Client) SessionsForUser(ctx context.Context, userID string, from, to time.Time) ([]session.Session, error) {
	endpoint := c.base.JoinPath("users", userID, "sessions")
	query := endpoint.Query()
	query.Set("from", from.UTC().Format(time.RFC3339))
	query.Set("to", to.UTC().Format(time.RFC3339))
	endpoint.RawQuery = query.Encode()
	requestURL := endpoint.String()

	if cached, found := c.cache.GetIfPresent(requestURL); found {
		c.logger.Debug("session cache hit", "user_id", userID, "count", len(cached))
		return cached, nil
	}

	body, err := c.getWithRetry(ctx, requestURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrUnavailable, err)
	}

	var sessions []session.Session
	if err := json.Unmarshal(body, &sessions); err != nil {
		return nil, fmt.Errorf("%w: decoding session list: %w", store.ErrUnavailable, err)
	}

	c.cache.Set(requestURL, sessions)
	c.logger.Debug("sessions fetched from upstream", "user_id", userID, "count", len(sessions))
	return sessions, nil
}

// getWithRetry performs a GET with exponential backoff and jitter.
// Client errors are not retried; server errors and transport failures
// are.
func (c *Client) getWithRetry(ctx context.Context, requestURL string) ([]byte, error) {
	start := time.Now()
	var body []byte

	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("building request: %w", err))
			}
			req.Header.Set("Accept", "application/json")

			resp, err := c.httpClient.Do(req)
			if err != nil {
				c.logger.Warn("session service request failed", "url", requestURL, "error", err)
				return err
			}
			defer func() {
				if closeErr := resp.Body.Close(); closeErr != nil {
					c.logger.Debug("failed to close response body", "error", closeErr)
				}
			}()

			if resp.StatusCode >= 500 {
				c.logger.Warn("session service server error", "url", requestURL, "status", resp.StatusCode)
				return fmt.Errorf("server error from session service: %d", resp.StatusCode)
			}
			if resp.StatusCode != http.StatusOK {
				return retry.Unrecoverable(fmt.Errorf("session service returned %d", resp.StatusCode))
			}

			body, err = io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("reading response body: %w", err)
			}
			return nil
		},
		retry.Attempts(4),
		retry.Delay(500*time.Millisecond),
		retry.MaxDelay(10*time.Second),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Info("retrying session service request", "url", requestURL, "attempt", n+1, "error", err)
		}),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		c.logger.Error("session service request failed after retries",
			"url", requestURL, "error", err, "duration", time.Since(start))
		return nil, err
	}

	return body, nil
}
