package models

import "time"

// Tip is a derived betting recommendation for a single outcome
type Tip struct {
	EventID      string    `json:"event_id"`
	SportKey     string    `json:"sport_key"`
	LeagueName   string    `json:"league_name"`
	HomeTeam     string    `json:"home_team"`
	AwayTeam     string    `json:"away_team"`
	CommenceTime time.Time `json:"commence_time"`

	Outcome     string  `json:"outcome"`
	BestPrice   float64 `json:"best_price"`
	BestBook    string  `json:"best_book"`
	ImpliedProb float64 `json:"implied_prob"` // from the best price
	FairProb    float64 `json:"fair_prob"`    // no-vig consensus
	EdgePercent float64 `json:"edge_percent"`
	BookCount   int     `json:"book_count"`
}

// TwitterCredentials holds the four OAuth1 user-context values
type TwitterCredentials struct {
	APIKey            string
	APISecret         string
	AccessToken       string
	AccessTokenSecret string
}

// Complete reports whether all four credential values are present
func (c TwitterCredentials) Complete() bool {
	return c.APIKey != "" && c.APISecret != "" && c.AccessToken != "" && c.AccessTokenSecret != ""
}

// PostResult is the outcome of posting a tweet
type PostResult struct {
	TweetID string `json:"tweet_id"`
	URL     string `json:"url"`
}

// RunResult captures one full pipeline run for persistence and /status
type RunResult struct {
	Timestamp    time.Time      `json:"timestamp"`
	SportKeys    []string       `json:"sport_keys"`
	EventCounts  map[string]int `json:"event_counts"`
	SnapshotPath string         `json:"snapshot_path,omitempty"`
	Movements    []Movement     `json:"movements,omitempty"`
	Tip          *Tip           `json:"tip,omitempty"`
	Tweet        string         `json:"tweet,omitempty"`
	Post         *PostResult    `json:"post,omitempty"`
	Skipped      bool           `json:"skipped"`
	SkipReason   string         `json:"skip_reason,omitempty"`
	Error        string         `json:"error,omitempty"`
}
