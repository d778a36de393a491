package gitio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultURL     = "https://git.io"
	defaultTimeout = 10 * time.Second
	maxCodeLength  = 256
)

var (
	// ErrEmptyCode is returned when the service answers without a short code.
	ErrEmptyCode = errors.New("shortener returned an empty code")
)

// Client talks to a git.io compatible URL shortener.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a shortener client for baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Shorten posts fullURL to <base>/create and returns <base>/<code>.
func (c *Client) Shorten(ctx context.Context, fullURL string) (string, error) {
	form := url.Values{}
	form.Set("url", fullURL)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/create", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build shorten request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to call shortener: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxCodeLength))
	if err != nil {
		return "", fmt.Errorf("failed to read shortener response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("shortener error %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	code := strings.TrimSpace(string(raw))
	if code == "" {
		return "", ErrEmptyCode
	}

	return fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(code)), nil
}
