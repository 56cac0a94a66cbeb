package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
	"time"

	"github.com/XavierBriggs/Hermes/pkg/models"
)

func testEvents() []models.OddsEvent {
	commence := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	update := time.Date(2026, 8, 29, 9, 30, 0, 0, time.UTC)

	return []models.OddsEvent{
		{
			ID:           "abc123",
			SportKey:     "soccer_epl",
			SportTitle:   "EPL",
			CommenceTime: commence,
			HomeTeam:     "Arsenal",
			AwayTeam:     "Chelsea",
			Bookmakers: []models.Bookmaker{
				{
					Key:        "williamhill",
					Title:      "William Hill",
					LastUpdate: update,
					Markets: []models.Market{
						{
							Key:        "h2h",
							LastUpdate: update,
							Outcomes: []models.Outcome{
								{Name: "Arsenal", Price: 2.10},
								{Name: "Chelsea", Price: 3.60},
								{Name: "Draw", Price: 3.40},
							},
						},
					},
				},
			},
		},
	}
}

func TestSaveOdds_RoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())
	events := testEvents()

	path, err := store.SaveOdds(events)
	if err != nil {
		t.Fatalf("SaveOdds failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}

	var got []models.OddsEvent
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("parsing snapshot: %v", err)
	}

	if !reflect.DeepEqual(got, events) {
		t.Errorf("snapshot does not deep-equal input:\ngot  %+v\nwant %+v", got, events)
	}
}

func TestSaveOdds_FilenamePattern(t *testing.T) {
	store := NewStore(t.TempDir())

	path, err := store.SaveOdds(testEvents())
	if err != nil {
		t.Fatalf("SaveOdds failed: %v", err)
	}

	if filepath.Base(filepath.Dir(path)) != "data" {
		t.Errorf("expected snapshot under data/, got %s", path)
	}

	name := filepath.Base(path)
	if len(name) < len("odds_.json") || name[:5] != "odds_" || filepath.Ext(name) != ".json" {
		t.Errorf("unexpected snapshot filename: %s", name)
	}
}

func TestSaveOdds_ConsecutiveSavesDistinctFiles(t *testing.T) {
	store := NewStore(t.TempDir())

	// Freeze the clock so both saves see the same timestamp and only the
	// collision bump can separate them
	fixed := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	first, err := store.SaveOdds(testEvents())
	if err != nil {
		t.Fatalf("first SaveOdds failed: %v", err)
	}

	second, err := store.SaveOdds(testEvents())
	if err != nil {
		t.Fatalf("second SaveOdds failed: %v", err)
	}

	if first == second {
		t.Errorf("consecutive saves produced the same file: %s", first)
	}
}

func TestSaveOdds_UnwritableDir(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission checks not enforceable here")
	}

	base := t.TempDir()
	if err := os.Chmod(base, 0o500); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	defer os.Chmod(base, 0o755)

	store := NewStore(base)

	if _, err := store.SaveOdds(testEvents()); err == nil {
		t.Fatal("expected error for unwritable directory")
	}
}

func TestSaveRun(t *testing.T) {
	store := NewStore(t.TempDir())

	result := &models.RunResult{
		Timestamp:   time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
		SportKeys:   []string{"soccer_epl"},
		EventCounts: map[string]int{"soccer_epl": 3},
		Tweet:       "Arsenal look undervalued at 2.10 today",
	}

	path, err := store.SaveRun(result)
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading run result: %v", err)
	}

	var got models.RunResult
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("parsing run result: %v", err)
	}

	if got.Tweet != result.Tweet {
		t.Errorf("expected tweet %q, got %q", result.Tweet, got.Tweet)
	}

	if filepath.Base(filepath.Dir(path)) != "analysis" {
		t.Errorf("expected run result under analysis/, got %s", path)
	}
}
