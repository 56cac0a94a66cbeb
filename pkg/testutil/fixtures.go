package testutil

import (
	"context"
	"time"

	"github.com/XavierBriggs/Hermes/pkg/models"
)

// NewTestEvent creates a test event without bookmakers
func NewTestEvent(eventID, homeTeam, awayTeam string, hoursUntilStart float64) models.OddsEvent {
	return models.OddsEvent{
		ID:           eventID,
		SportKey:     "soccer_epl",
		SportTitle:   "EPL",
		CommenceTime: time.Now().Add(time.Duration(hoursUntilStart * float64(time.Hour))).UTC().Truncate(time.Second),
		HomeTeam:     homeTeam,
		AwayTeam:     awayTeam,
	}
}

// NewTestBook creates a bookmaker with a single h2h market priced per outcome
func NewTestBook(bookKey string, prices map[string]float64) models.Bookmaker {
	now := time.Now().UTC().Truncate(time.Second)

	outcomes := make([]models.Outcome, 0, len(prices))
	for name, price := range prices {
		outcomes = append(outcomes, models.Outcome{Name: name, Price: price})
	}

	return models.Bookmaker{
		Key:        bookKey,
		Title:      bookKey,
		LastUpdate: now,
		Markets: []models.Market{
			{
				Key:        "h2h",
				LastUpdate: now,
				Outcomes:   outcomes,
			},
		},
	}
}

// MockOddsProvider is a test provider that returns predetermined odds
type MockOddsProvider struct {
	FetchOddsFunc      func(opts *models.FetchOddsOptions) ([]models.OddsEvent, error)
	SupportsMarketFunc func(market string) bool
}

func (m *MockOddsProvider) FetchOdds(ctx context.Context, opts *models.FetchOddsOptions) ([]models.OddsEvent, error) {
	if m.FetchOddsFunc != nil {
		return m.FetchOddsFunc(opts)
	}
	return []models.OddsEvent{}, nil
}

func (m *MockOddsProvider) SupportsMarket(market string) bool {
	if m.SupportsMarketFunc != nil {
		return m.SupportsMarketFunc(market)
	}
	return true
}

func (m *MockOddsProvider) GetRateLimits() *models.RateLimits {
	return &models.RateLimits{
		RequestsRemaining: 500,
		RequestsUsed:      0,
	}
}

// MockCompleter returns a fixed completion
type MockCompleter struct {
	Response string
	Err      error
	Calls    int
}

func (m *MockCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.Calls++
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// MockPoster records posted tweets
type MockPoster struct {
	Posted []string
	Err    error
}

func (m *MockPoster) PostTweet(ctx context.Context, text string) (*models.PostResult, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.Posted = append(m.Posted, text)
	return &models.PostResult{
		TweetID: "1234567890",
		URL:     "https://twitter.com/i/status/1234567890",
	}, nil
}
