package analyzer_test

import (
	"math"
	"testing"

	"github.com/XavierBriggs/Hermes/internal/analyzer"
	"github.com/XavierBriggs/Hermes/pkg/models"
	"github.com/XavierBriggs/Hermes/pkg/testutil"
)

func TestAnalyzeEvent_BestAndAverage(t *testing.T) {
	event := testutil.NewTestEvent("ev1", "Arsenal", "Chelsea", 24)
	event.Bookmakers = []models.Bookmaker{
		testutil.NewTestBook("williamhill", map[string]float64{
			"Arsenal": 2.10, "Chelsea": 3.60, "Draw": 3.40,
		}),
		testutil.NewTestBook("bet365", map[string]float64{
			"Arsenal": 2.30, "Chelsea": 3.40, "Draw": 3.30,
		}),
	}

	a := analyzer.AnalyzeEvent(event)
	if a == nil {
		t.Fatal("expected analysis, got nil")
	}

	if a.BookCount != 2 {
		t.Errorf("expected 2 books, got %d", a.BookCount)
	}

	if a.BestPrice["Arsenal"] != 2.30 {
		t.Errorf("expected best Arsenal price 2.30, got %.2f", a.BestPrice["Arsenal"])
	}

	if a.BestBook["Arsenal"] != "bet365" {
		t.Errorf("expected best book bet365, got %s", a.BestBook["Arsenal"])
	}

	if math.Abs(a.AvgPrice["Arsenal"]-2.20) > 0.001 {
		t.Errorf("expected avg Arsenal price 2.20, got %.3f", a.AvgPrice["Arsenal"])
	}

	if math.Abs(a.PriceSpread["Arsenal"]-0.20) > 0.001 {
		t.Errorf("expected Arsenal spread 0.20, got %.3f", a.PriceSpread["Arsenal"])
	}
}

func TestAnalyzeEvent_FairProbsSumToOne(t *testing.T) {
	event := testutil.NewTestEvent("ev1", "Arsenal", "Chelsea", 24)
	event.Bookmakers = []models.Bookmaker{
		testutil.NewTestBook("williamhill", map[string]float64{
			"Arsenal": 2.10, "Chelsea": 3.60, "Draw": 3.40,
		}),
	}

	a := analyzer.AnalyzeEvent(event)
	if a == nil {
		t.Fatal("expected analysis, got nil")
	}

	sum := 0.0
	for _, name := range a.OutcomeNames() {
		sum += a.FairProb[name]
	}

	if math.Abs(sum-1.0) > 0.0001 {
		t.Errorf("fair probabilities should sum to 1.0, got %.4f", sum)
	}

	if a.VigPercent <= 0 {
		t.Errorf("expected positive vig for a priced market, got %.2f", a.VigPercent)
	}
}

func TestAnalyzeEvent_NoUsableMarket(t *testing.T) {
	event := testutil.NewTestEvent("ev1", "Arsenal", "Chelsea", 24)
	event.Bookmakers = nil

	if a := analyzer.AnalyzeEvent(event); a != nil {
		t.Errorf("expected nil analysis for event without bookmakers, got %+v", a)
	}
}

func TestPickTip_SelectsHighestEdge(t *testing.T) {
	// One book prices Arsenal well above the market average: that outcome
	// carries the largest edge against the no-vig consensus
	event := testutil.NewTestEvent("ev1", "Arsenal", "Chelsea", 24)
	event.Bookmakers = []models.Bookmaker{
		testutil.NewTestBook("williamhill", map[string]float64{
			"Arsenal": 2.10, "Chelsea": 3.60, "Draw": 3.40,
		}),
		testutil.NewTestBook("bet365", map[string]float64{
			"Arsenal": 2.60, "Chelsea": 3.40, "Draw": 3.30,
		}),
	}

	analyses := analyzer.AnalyzeEvents([]models.OddsEvent{event})
	tip := analyzer.PickTip(analyses, "Premier League", 2, 0.01)

	if tip == nil {
		t.Fatal("expected a tip, got nil")
	}

	if tip.Outcome != "Arsenal" {
		t.Errorf("expected Arsenal tip, got %s", tip.Outcome)
	}

	if tip.BestBook != "bet365" || tip.BestPrice != 2.60 {
		t.Errorf("expected bet365 @ 2.60, got %s @ %.2f", tip.BestBook, tip.BestPrice)
	}

	if tip.EdgePercent <= 1.0 {
		t.Errorf("expected edge above threshold, got %.2f%%", tip.EdgePercent)
	}

	if tip.LeagueName != "Premier League" {
		t.Errorf("expected league name carried through, got %s", tip.LeagueName)
	}
}

func TestPickTip_RespectsMinBookmakers(t *testing.T) {
	event := testutil.NewTestEvent("ev1", "Arsenal", "Chelsea", 24)
	event.Bookmakers = []models.Bookmaker{
		testutil.NewTestBook("williamhill", map[string]float64{
			"Arsenal": 2.60, "Chelsea": 3.40, "Draw": 3.30,
		}),
	}

	analyses := analyzer.AnalyzeEvents([]models.OddsEvent{event})

	if tip := analyzer.PickTip(analyses, "Premier League", 3, 0.0); tip != nil {
		t.Errorf("expected no tip with only 1 book, got %+v", tip)
	}
}

func TestPickTip_RespectsMinEdge(t *testing.T) {
	// A uniform market has negative edge everywhere (the vig)
	event := testutil.NewTestEvent("ev1", "Arsenal", "Chelsea", 24)
	event.Bookmakers = []models.Bookmaker{
		testutil.NewTestBook("williamhill", map[string]float64{
			"Arsenal": 2.10, "Chelsea": 3.60, "Draw": 3.40,
		}),
		testutil.NewTestBook("bet365", map[string]float64{
			"Arsenal": 2.10, "Chelsea": 3.60, "Draw": 3.40,
		}),
	}

	analyses := analyzer.AnalyzeEvents([]models.OddsEvent{event})

	if tip := analyzer.PickTip(analyses, "Premier League", 2, 0.02); tip != nil {
		t.Errorf("expected no tip in a vig-only market, got %+v", tip)
	}
}
