package oddsmath

import "fmt"

// RemoveVigProportional removes vig from an n-way market by normalizing each
// implied probability against the overround. This is the standard method for
// soccer h2h markets (home/draw/away).
//
// Formula:
// 1. totalProb = sum of implied probabilities (typically > 1.0)
// 2. fairProb_i = prob_i / totalProb
// 3. Fair probabilities now sum to 1.0
//
// Example:
// Home 2.10 (47.6%) | Draw 3.40 (29.4%) | Away 3.60 (27.8%)
// Overround: 104.8% → fair: 45.4% / 28.1% / 26.5%
func RemoveVigProportional(probabilities []float64) ([]float64, error) {
	if len(probabilities) < 2 {
		return nil, fmt.Errorf("need at least 2 outcomes")
	}

	totalProb := 0.0
	for _, prob := range probabilities {
		if prob <= 0 || prob >= 1 {
			return nil, fmt.Errorf("all probabilities must be between 0 and 1")
		}
		totalProb += prob
	}

	if totalProb <= 1.0 {
		return nil, fmt.Errorf("no vig detected: probabilities sum to <= 1.0")
	}

	fairProbs := make([]float64, len(probabilities))
	for i, prob := range probabilities {
		fairProbs[i] = prob / totalProb
	}

	return fairProbs, nil
}

// CalculateEdge calculates the fractional edge of offered odds vs fair probability
// Edge = (Fair Probability / Implied Probability) - 1
//
// Example:
// Fair Probability: 50% (0.50)
// Offered implied: 47.6%
// Edge: (0.50 / 0.476) - 1 = 0.05 = 5% edge
//
// Positive edge = +EV bet
func CalculateEdge(fairProbability, impliedProbability float64) (float64, error) {
	if fairProbability <= 0 || fairProbability >= 1 {
		return 0, fmt.Errorf("fair probability must be between 0 and 1")
	}

	if impliedProbability <= 0 || impliedProbability >= 1 {
		return 0, fmt.Errorf("implied probability must be between 0 and 1")
	}

	return (fairProbability / impliedProbability) - 1.0, nil
}

// CalculateVigPercentage calculates the vig (overround) percentage in a market
// Vig% = (TotalProb - 1.0) * 100
func CalculateVigPercentage(probabilities []float64) (float64, error) {
	if len(probabilities) == 0 {
		return 0, fmt.Errorf("no probabilities provided")
	}

	totalProb := 0.0
	for _, prob := range probabilities {
		if prob <= 0 || prob >= 1 {
			return 0, fmt.Errorf("all probabilities must be between 0 and 1")
		}
		totalProb += prob
	}

	if totalProb <= 1.0 {
		return 0, nil // No vig
	}

	return (totalProb - 1.0) * 100.0, nil
}
