package theoddsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/XavierBriggs/Hermes/pkg/contracts"
	"github.com/XavierBriggs/Hermes/pkg/models"
)

const (
	defaultBaseURL = "https://api.the-odds-api.com"
	apiVersion     = "v4"
	userAgent      = "Hermes/1.0 (Betting Tips Bot)"
	timeout        = 30 * time.Second
	maxRetries     = 3
	retryDelay     = 2 * time.Second
)

// ErrMissingAPIKey is returned when no credential is configured.
// Checked before any network call is attempted.
var ErrMissingAPIKey = errors.New("odds api key is not configured")

// Client implements the OddsProvider interface for The Odds API
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	rateLimits *models.RateLimits
	mu         sync.RWMutex
}

// Ensure Client implements OddsProvider
var _ contracts.OddsProvider = (*Client)(nil)

// NewClient creates a new The Odds API client
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		rateLimits: &models.RateLimits{
			RequestsRemaining: 500, // Default free-tier quota
			RequestsUsed:      0,
		},
	}
}

// NewClientWithBaseURL creates a client pointed at a custom base URL.
// Used by tests to point at a fake vendor.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

// FetchOdds retrieves h2h odds for a sport and returns the vendor response
// unmodified
func (c *Client) FetchOdds(ctx context.Context, opts *models.FetchOddsOptions) ([]models.OddsEvent, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	endpoint := fmt.Sprintf("%s/%s/sports/%s/odds", c.baseURL, apiVersion, opts.Sport)

	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("regions", strings.Join(opts.Regions, ","))
	params.Set("markets", strings.Join(opts.Markets, ","))
	params.Set("oddsFormat", "decimal")
	params.Set("dateFormat", "iso")

	fullURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	body, err := c.doRequestWithRetry(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("fetch odds failed: %w", err)
	}

	var events []models.OddsEvent
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("parse odds response: %w", err)
	}

	return events, nil
}

// SupportsMarket checks if this adapter supports a given market
func (c *Client) SupportsMarket(market string) bool {
	supportedMarkets := map[string]bool{
		"h2h":     true,
		"spreads": true,
		"totals":  true,
	}
	return supportedMarkets[market]
}

// GetRateLimits returns current rate limit information
func (c *Client) GetRateLimits() *models.RateLimits {
	c.mu.RLock()
	defer c.mu.RUnlock()

	limits := *c.rateLimits
	return &limits
}

// doRequestWithRetry performs HTTP request with retry logic
func (c *Client) doRequestWithRetry(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff
			backoff := retryDelay * time.Duration(1<<uint(attempt-1))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		body, err := c.doRequest(ctx, fullURL)
		if err == nil {
			return body, nil
		}

		lastErr = err

		// Don't retry on client errors (4xx except 429)
		var reqErr *RequestError
		if errors.As(err, &reqErr) {
			if reqErr.StatusCode >= 400 && reqErr.StatusCode < 500 && reqErr.StatusCode != http.StatusTooManyRequests {
				return nil, err
			}
		}
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// doRequest performs a single HTTP request
func (c *Client) doRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	// Update rate limits from headers
	c.updateRateLimits(resp.Header)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &RequestError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	return body, nil
}

// updateRateLimits extracts rate limit info from response headers
func (c *Client) updateRateLimits(headers http.Header) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if remaining := headers.Get("x-requests-remaining"); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			c.rateLimits.RequestsRemaining = val
		}
	}

	if used := headers.Get("x-requests-used"); used != "" {
		if val, err := strconv.Atoi(used); err == nil {
			c.rateLimits.RequestsUsed = val
		}
	}
}

// RequestError represents a failed vendor request with status code
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}
