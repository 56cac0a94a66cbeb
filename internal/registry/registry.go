package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/XavierBriggs/Hermes/pkg/contracts"
)

// LeagueRegistry manages registered league modules
type LeagueRegistry struct {
	leagues map[string]contracts.LeagueModule
	order   []string
	mu      sync.RWMutex
}

// NewLeagueRegistry creates a new league registry
func NewLeagueRegistry() *LeagueRegistry {
	return &LeagueRegistry{
		leagues: make(map[string]contracts.LeagueModule),
	}
}

// Register adds a league module to the registry
func (r *LeagueRegistry) Register(league contracts.LeagueModule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sportKey := league.GetSportKey()
	if _, exists := r.leagues[sportKey]; exists {
		return fmt.Errorf("league %s is already registered", sportKey)
	}

	r.leagues[sportKey] = league
	r.order = append(r.order, sportKey)
	return nil
}

// Get retrieves a league module by sport key
func (r *LeagueRegistry) Get(sportKey string) (contracts.LeagueModule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	league, exists := r.leagues[sportKey]
	return league, exists
}

// GetAll returns all registered leagues in registration order
func (r *LeagueRegistry) GetAll() []contracts.LeagueModule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	leagues := make([]contracts.LeagueModule, 0, len(r.order))
	for _, key := range r.order {
		leagues = append(leagues, r.leagues[key])
	}
	return leagues
}

// SportKeys returns the registered sport keys, sorted
func (r *LeagueRegistry) SportKeys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.leagues))
	for key := range r.leagues {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Count returns the number of registered leagues
func (r *LeagueRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.leagues)
}
