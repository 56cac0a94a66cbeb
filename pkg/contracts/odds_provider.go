package contracts

import (
	"context"

	"github.com/XavierBriggs/Hermes/pkg/models"
)

// OddsProvider defines the interface for fetching odds from external vendors.
// Keeping this stable lets us swap in other aggregators without touching the
// pipeline.
type OddsProvider interface {
	// FetchOdds retrieves odds for the given sport, regions and markets.
	// The returned events are the vendor's response, unmodified.
	FetchOdds(ctx context.Context, opts *models.FetchOddsOptions) ([]models.OddsEvent, error)

	// SupportsMarket checks if this provider supports a given market
	SupportsMarket(market string) bool

	// GetRateLimits returns current rate limit information
	GetRateLimits() *models.RateLimits
}
