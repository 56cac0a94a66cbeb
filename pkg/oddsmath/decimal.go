package oddsmath

import (
	"fmt"
	"math"
)

// ImpliedProbability converts decimal odds to implied probability
// Decimal 2.00 → 0.50 (50%)
// Decimal 1.50 → 0.667 (66.7%)
func ImpliedProbability(decimal float64) (float64, error) {
	if decimal <= 1.0 {
		return 0, fmt.Errorf("invalid decimal odds: must be > 1.0")
	}

	return 1.0 / decimal, nil
}

// ProbabilityToDecimal converts probability to decimal odds
// 0.50 (50%) → Decimal 2.00
func ProbabilityToDecimal(probability float64) (float64, error) {
	if probability <= 0 || probability >= 1 {
		return 0, fmt.Errorf("invalid probability: must be between 0 and 1")
	}

	return 1.0 / probability, nil
}

// RoundToNearestCent rounds a probability to the nearest 0.01%
// Useful for display purposes
func RoundToNearestCent(probability float64) float64 {
	return math.Round(probability*10000) / 10000
}
