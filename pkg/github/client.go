package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// Client reads public event feeds from the GitHub REST API.
type Client struct {
	baseURL    string
	token      string
	inHeader   bool
	limiter    *rate.Limiter
	httpClient *http.Client
}

// NewClient creates a new events API client.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := &http.Client{Timeout: timeout}
	if cfg.Token != "" && cfg.TokenInHeader {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(context.Background(), src)
		httpClient.Timeout = timeout
	}

	limit := rate.Inf
	burst := cfg.Burst
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		baseURL:    baseURL,
		token:      cfg.Token,
		inHeader:   cfg.TokenInHeader,
		limiter:    rate.NewLimiter(limit, burst),
		httpClient: httpClient,
	}
}

// FeedURL returns the full URL for a feed path such as /users/octocat/events,
// including the access_token query parameter when a token is configured.
func (c *Client) FeedURL(path string) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if c.token != "" && !c.inHeader {
		q := url.Values{}
		q.Set(accessTokenParam, c.token)
		u += "?" + q.Encode()
	}
	return u
}

// ListEvents fetches one page of a feed. Events come back newest first.
func (c *Client) ListEvents(ctx context.Context, path string) ([]Event, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.FeedURL(path), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build events request: %w", err)
	}
	httpReq.Header.Set("Accept", acceptHeader)
	httpReq.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call github events API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w %d for %s: %s", ErrUnexpectedStatus, resp.StatusCode, path, strings.TrimSpace(string(raw)))
	}

	var events []Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("failed to decode events for %s: %w", path, err)
	}
	return events, nil
}
