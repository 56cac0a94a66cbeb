package models

import "time"

// OddsEvent is one event as returned by The Odds API, mapped verbatim.
// Prices are decimal odds (oddsFormat=decimal).
type OddsEvent struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	SportTitle   string      `json:"sport_title"`
	CommenceTime time.Time   `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// Bookmaker is one book's markets for an event
type Bookmaker struct {
	Key        string    `json:"key"`
	Title      string    `json:"title"`
	LastUpdate time.Time `json:"last_update"`
	Markets    []Market  `json:"markets"`
}

// Market is a single betting market (h2h for the leagues we poll)
type Market struct {
	Key        string    `json:"key"`
	LastUpdate time.Time `json:"last_update"`
	Outcomes   []Outcome `json:"outcomes"`
}

// Outcome is one side of a market with its decimal price
type Outcome struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// FetchOddsOptions contains parameters for fetching odds
type FetchOddsOptions struct {
	Sport   string
	Regions []string
	Markets []string
}

// RateLimits contains rate limiting information reported by the vendor
type RateLimits struct {
	RequestsRemaining int
	RequestsUsed      int
}

// Movement describes how one outcome's price drifted since the previous run
type Movement struct {
	EventID     string    `json:"event_id"`
	BookKey     string    `json:"book_key"`
	MarketKey   string    `json:"market_key"`
	OutcomeName string    `json:"outcome_name"`
	OldPrice    float64   `json:"old_price"`
	NewPrice    float64   `json:"new_price"`
	SeenAt      time.Time `json:"seen_at"`
}

// Drift returns the signed price change since the previous observation
func (m Movement) Drift() float64 {
	return m.NewPrice - m.OldPrice
}
