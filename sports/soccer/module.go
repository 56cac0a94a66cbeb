package soccer

import (
	"github.com/XavierBriggs/Hermes/pkg/contracts"
	"github.com/XavierBriggs/Hermes/pkg/models"
)

// League implements the LeagueModule interface for one soccer league
type League struct {
	config *Config
}

var _ contracts.LeagueModule = (*League)(nil)

// NewLeague creates a league module from its configuration
func NewLeague(config *Config) *League {
	return &League{config: config}
}

// PriorityLeagues returns modules for the leagues Hermes polls by default
func PriorityLeagues() []*League {
	configs := PriorityConfigs()
	leagues := make([]*League, 0, len(configs))
	for _, cfg := range configs {
		leagues = append(leagues, NewLeague(cfg))
	}
	return leagues
}

// GetSportKey returns the vendor sport key
func (l *League) GetSportKey() string {
	return l.config.SportKey
}

// GetDisplayName returns the human-readable league name
func (l *League) GetDisplayName() string {
	return l.config.DisplayName
}

// GetRegions returns the bookmaker regions to request
func (l *League) GetRegions() []string {
	return l.config.Regions
}

// GetMarkets returns the markets to request
func (l *League) GetMarkets() []string {
	return l.config.Markets
}

// GetMinBookmakers returns the coverage threshold for tips
func (l *League) GetMinBookmakers() int {
	return l.config.MinBookmakers
}

// GetMinEdge returns the minimum edge for tips
func (l *League) GetMinEdge() float64 {
	return l.config.MinEdge
}

// ValidateEvent performs minimal shape checks on a fetched event
func (l *League) ValidateEvent(event *models.OddsEvent) error {
	return ValidateEvent(l.config.SportKey, event)
}
