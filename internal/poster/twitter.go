// Package poster publishes tips to the Twitter/X v2 API using OAuth1
// user-context authentication. Posting is fire-and-forget: no exactly-once
// guarantee and no cross-run deduplication.
package poster

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/XavierBriggs/Hermes/pkg/contracts"
	"github.com/XavierBriggs/Hermes/pkg/models"
	"github.com/dghubble/oauth1"
)

const (
	defaultBaseURL = "https://api.twitter.com"
	timeout        = 15 * time.Second
)

// ErrMissingCredentials is returned when any of the four OAuth1 values is
// absent. Checked before any network call.
var ErrMissingCredentials = errors.New("twitter credentials are not fully configured")

// TwitterPoster posts tweets via the v2 API
type TwitterPoster struct {
	baseURL    string
	httpClient *http.Client
}

var _ contracts.TipPoster = (*TwitterPoster)(nil)

// NewTwitterPoster creates a poster with OAuth1 request signing
func NewTwitterPoster(creds models.TwitterCredentials) (*TwitterPoster, error) {
	if !creds.Complete() {
		return nil, ErrMissingCredentials
	}

	config := oauth1.NewConfig(creds.APIKey, creds.APISecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessTokenSecret)

	httpClient := config.Client(oauth1.NoContext, token)
	httpClient.Timeout = timeout

	return &TwitterPoster{
		baseURL:    defaultBaseURL,
		httpClient: httpClient,
	}, nil
}

// NewTwitterPosterWithBaseURL points the poster at a custom base URL.
// Used by tests to post against a fake API.
func NewTwitterPosterWithBaseURL(creds models.TwitterCredentials, baseURL string) (*TwitterPoster, error) {
	p, err := NewTwitterPoster(creds)
	if err != nil {
		return nil, err
	}
	p.baseURL = strings.TrimSuffix(baseURL, "/")
	return p, nil
}

// PostTweet publishes the given text and returns the created tweet's ID and URL
func (p *TwitterPoster) PostTweet(ctx context.Context, text string) (*models.PostResult, error) {
	reqBody := tweetRequest{Text: text}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal tweet request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/2/tweets", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, &PostError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	var tweetResp tweetResponse
	if err := json.Unmarshal(body, &tweetResp); err != nil {
		return nil, fmt.Errorf("parse tweet response: %w", err)
	}

	if tweetResp.Data.ID == "" {
		return nil, fmt.Errorf("tweet response contained no id")
	}

	return &models.PostResult{
		TweetID: tweetResp.Data.ID,
		URL:     fmt.Sprintf("https://twitter.com/i/status/%s", tweetResp.Data.ID),
	}, nil
}

// PostError represents a failed post with status code
type PostError struct {
	StatusCode int
	Message    string
}

func (e *PostError) Error() string {
	return fmt.Sprintf("twitter HTTP %d: %s", e.StatusCode, e.Message)
}

// Request/response structures matching the v2 tweets endpoint

type tweetRequest struct {
	Text string `json:"text"`
}

type tweetResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}
