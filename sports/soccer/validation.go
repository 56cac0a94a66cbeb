package soccer

import (
	"fmt"

	"github.com/XavierBriggs/Hermes/pkg/models"
)

// ValidateEvent checks the basic shape of a fetched soccer event. These are
// deliberately minimal checks; betting-market semantics are the vendor's
// problem.
func ValidateEvent(sportKey string, event *models.OddsEvent) error {
	if event.SportKey != sportKey {
		return fmt.Errorf("invalid sport key: expected %s, got %s", sportKey, event.SportKey)
	}

	if event.HomeTeam == "" {
		return fmt.Errorf("home team cannot be empty")
	}

	if event.AwayTeam == "" {
		return fmt.Errorf("away team cannot be empty")
	}

	if event.HomeTeam == event.AwayTeam {
		return fmt.Errorf("home and away teams cannot be the same")
	}

	for _, book := range event.Bookmakers {
		for _, market := range book.Markets {
			if market.Key != "h2h" {
				continue
			}
			// Soccer h2h is a three-way market, but some books omit the draw
			if len(market.Outcomes) < 2 || len(market.Outcomes) > 3 {
				return fmt.Errorf("book %s: h2h market has %d outcomes", book.Key, len(market.Outcomes))
			}
			for _, outcome := range market.Outcomes {
				if outcome.Price <= 1.0 {
					return fmt.Errorf("book %s: invalid decimal price %.2f for %s", book.Key, outcome.Price, outcome.Name)
				}
			}
		}
	}

	return nil
}
