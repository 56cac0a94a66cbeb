// Package analyzer derives betting value from fetched odds. For every event
// it computes best and average prices per outcome, implied probabilities,
// the no-vig consensus, and the edge of the best available price against
// that consensus. The highest-edge outcome with enough bookmaker coverage
// becomes the tip.
package analyzer

import (
	"sort"

	"github.com/XavierBriggs/Hermes/pkg/models"
	"github.com/XavierBriggs/Hermes/pkg/oddsmath"
)

// MatchAnalysis holds the computed statistics for one event
type MatchAnalysis struct {
	Event models.OddsEvent

	// Per-outcome statistics, keyed by outcome name
	BestPrice    map[string]float64
	BestBook     map[string]string
	AvgPrice     map[string]float64
	PriceSpread  map[string]float64 // max - min across books
	ImpliedProb  map[string]float64 // from the best price
	FairProb     map[string]float64 // no-vig consensus from average prices
	Edge         map[string]float64 // fair vs best-price implied
	BookCount    int
	VigPercent   float64
}

// OutcomeNames returns the analyzed outcome names in deterministic order
func (a *MatchAnalysis) OutcomeNames() []string {
	names := make([]string, 0, len(a.BestPrice))
	for name := range a.BestPrice {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AnalyzeEvent computes per-outcome statistics for one event's h2h market.
// Returns nil when the event carries no usable h2h prices.
func AnalyzeEvent(event models.OddsEvent) *MatchAnalysis {
	analysis := &MatchAnalysis{
		Event:       event,
		BestPrice:   make(map[string]float64),
		BestBook:    make(map[string]string),
		AvgPrice:    make(map[string]float64),
		PriceSpread: make(map[string]float64),
		ImpliedProb: make(map[string]float64),
		FairProb:    make(map[string]float64),
		Edge:        make(map[string]float64),
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	minPrice := make(map[string]float64)

	for _, book := range event.Bookmakers {
		priced := false
		for _, market := range book.Markets {
			if market.Key != "h2h" {
				continue
			}
			for _, outcome := range market.Outcomes {
				if outcome.Price <= 1.0 {
					continue
				}
				priced = true

				sums[outcome.Name] += outcome.Price
				counts[outcome.Name]++

				if outcome.Price > analysis.BestPrice[outcome.Name] {
					analysis.BestPrice[outcome.Name] = outcome.Price
					analysis.BestBook[outcome.Name] = book.Key
				}

				if cur, ok := minPrice[outcome.Name]; !ok || outcome.Price < cur {
					minPrice[outcome.Name] = outcome.Price
				}
			}
		}
		if priced {
			analysis.BookCount++
		}
	}

	if len(sums) == 0 {
		return nil
	}

	names := make([]string, 0, len(sums))
	for name := range sums {
		names = append(names, name)
	}
	sort.Strings(names)

	avgImplied := make([]float64, 0, len(names))
	for _, name := range names {
		avg := sums[name] / float64(counts[name])
		analysis.AvgPrice[name] = avg
		analysis.PriceSpread[name] = analysis.BestPrice[name] - minPrice[name]

		if implied, err := oddsmath.ImpliedProbability(analysis.BestPrice[name]); err == nil {
			analysis.ImpliedProb[name] = implied
		}

		implied, err := oddsmath.ImpliedProbability(avg)
		if err != nil {
			return nil
		}
		avgImplied = append(avgImplied, implied)
	}

	fair, err := oddsmath.RemoveVigProportional(avgImplied)
	if err != nil {
		// Market carries no overround (or is malformed); fall back to the
		// raw average-implied probabilities
		fair = avgImplied
	}

	for i, name := range names {
		analysis.FairProb[name] = fair[i]

		implied := analysis.ImpliedProb[name]
		if implied <= 0 {
			continue
		}
		if edge, err := oddsmath.CalculateEdge(fair[i], implied); err == nil {
			analysis.Edge[name] = edge
		}
	}

	if vig, err := oddsmath.CalculateVigPercentage(avgImplied); err == nil {
		analysis.VigPercent = vig
	}

	return analysis
}

// AnalyzeEvents analyzes a batch of events, skipping the unusable ones
func AnalyzeEvents(events []models.OddsEvent) []*MatchAnalysis {
	analyses := make([]*MatchAnalysis, 0, len(events))
	for _, event := range events {
		if a := AnalyzeEvent(event); a != nil {
			analyses = append(analyses, a)
		}
	}
	return analyses
}

// PickTip selects the highest-edge outcome across all analyses that clears
// the bookmaker-coverage and minimum-edge thresholds. Returns nil when
// nothing qualifies.
func PickTip(analyses []*MatchAnalysis, leagueName string, minBooks int, minEdge float64) *models.Tip {
	var best *models.Tip

	for _, a := range analyses {
		if a.BookCount < minBooks {
			continue
		}

		for _, name := range a.OutcomeNames() {
			edge := a.Edge[name]
			if edge < minEdge {
				continue
			}

			if best == nil || edge > best.EdgePercent/100.0 {
				best = &models.Tip{
					EventID:      a.Event.ID,
					SportKey:     a.Event.SportKey,
					LeagueName:   leagueName,
					HomeTeam:     a.Event.HomeTeam,
					AwayTeam:     a.Event.AwayTeam,
					CommenceTime: a.Event.CommenceTime,
					Outcome:      name,
					BestPrice:    a.BestPrice[name],
					BestBook:     a.BestBook[name],
					ImpliedProb:  a.ImpliedProb[name],
					FairProb:     a.FairProb[name],
					EdgePercent:  edge * 100.0,
					BookCount:    a.BookCount,
				}
			}
		}
	}

	return best
}
