package contracts

import "github.com/XavierBriggs/Hermes/pkg/models"

// LeagueModule defines league-specific polling and tip-selection parameters.
// This lets Hermes cover multiple leagues without hardcoding them into the
// pipeline.
type LeagueModule interface {
	// GetSportKey returns the vendor sport key (e.g., "soccer_epl")
	GetSportKey() string

	// GetDisplayName returns the human-readable name (e.g., "Premier League")
	GetDisplayName() string

	// GetRegions returns the bookmaker regions to request (e.g., ["us", "uk"])
	GetRegions() []string

	// GetMarkets returns the markets to request (h2h on the free tier)
	GetMarkets() []string

	// GetMinBookmakers returns how many books must price an outcome before
	// it can be tipped
	GetMinBookmakers() int

	// GetMinEdge returns the minimum edge (fraction, e.g. 0.03) for a tip
	GetMinEdge() float64

	// ValidateEvent performs minimal shape checks on a fetched event
	ValidateEvent(event *models.OddsEvent) error
}
