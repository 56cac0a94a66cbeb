package soccer

// Config contains league-specific polling and tip-selection parameters
type Config struct {
	// League identification
	SportKey    string
	DisplayName string

	// Bookmaker regions to request
	Regions []string

	// Markets to request (h2h on the free tier)
	Markets []string

	// Tip selection thresholds
	MinBookmakers int
	MinEdge       float64 // fraction, e.g. 0.03 for 3%
}

// EPLConfig returns the English Premier League configuration
func EPLConfig() *Config {
	return &Config{
		SportKey:      "soccer_epl",
		DisplayName:   "Premier League",
		Regions:       []string{"us", "uk"},
		Markets:       []string{"h2h"},
		MinBookmakers: 3,
		MinEdge:       0.03,
	}
}

// LaLigaConfig returns the Spanish La Liga configuration
func LaLigaConfig() *Config {
	return &Config{
		SportKey:      "soccer_spain_la_liga",
		DisplayName:   "La Liga",
		Regions:       []string{"us", "uk"},
		Markets:       []string{"h2h"},
		MinBookmakers: 3,
		MinEdge:       0.03,
	}
}

// BundesligaConfig returns the German Bundesliga configuration
func BundesligaConfig() *Config {
	return &Config{
		SportKey:      "soccer_germany_bundesliga1",
		DisplayName:   "Bundesliga",
		Regions:       []string{"us", "uk"},
		Markets:       []string{"h2h"},
		MinBookmakers: 3,
		MinEdge:       0.03,
	}
}

// PriorityConfigs returns the leagues Hermes polls, in priority order
func PriorityConfigs() []*Config {
	return []*Config{
		EPLConfig(),
		LaLigaConfig(),
		BundesligaConfig(),
	}
}
