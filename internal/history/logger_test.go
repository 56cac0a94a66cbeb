//go:build integration

package history_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/XavierBriggs/Hermes/internal/history"
	"github.com/XavierBriggs/Hermes/pkg/models"
	_ "github.com/lib/pq"
)

const schema = `
	CREATE TABLE IF NOT EXISTS tip_posts (
		id BIGSERIAL PRIMARY KEY,
		posted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		sport_key TEXT NOT NULL,
		event_id TEXT NOT NULL,
		home_team TEXT NOT NULL,
		away_team TEXT NOT NULL,
		commence_time TIMESTAMPTZ NOT NULL,
		outcome TEXT NOT NULL,
		best_price DOUBLE PRECISION NOT NULL,
		best_book TEXT NOT NULL,
		edge_percent DOUBLE PRECISION NOT NULL,
		book_count INT NOT NULL,
		tweet_text TEXT NOT NULL,
		tweet_id TEXT,
		status TEXT NOT NULL,
		error_message TEXT
	)
`

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("HERMES_TEST_DSN")
	if dsn == "" {
		t.Skip("HERMES_TEST_DSN not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("opening test DB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("creating schema: %v", err)
	}
	if _, err := db.Exec("TRUNCATE tip_posts"); err != nil {
		t.Fatalf("truncating: %v", err)
	}

	return db
}

func testTip() *models.Tip {
	return &models.Tip{
		EventID:      "ev1",
		SportKey:     "soccer_epl",
		HomeTeam:     "Arsenal",
		AwayTeam:     "Chelsea",
		CommenceTime: time.Now().Add(24 * time.Hour),
		Outcome:      "Arsenal",
		BestPrice:    2.60,
		BestBook:     "bet365",
		EdgePercent:  14.3,
		BookCount:    5,
	}
}

func TestLogPost(t *testing.T) {
	db := testDB(t)
	logger := history.NewLogger(db)
	ctx := context.Background()

	err := logger.LogPost(ctx, testTip(), "Arsenal @ 2.60 #EPL", &models.PostResult{
		TweetID: "1234567890",
	})
	if err != nil {
		t.Fatalf("LogPost failed: %v", err)
	}

	var status, tweetID string
	row := db.QueryRow("SELECT status, tweet_id FROM tip_posts WHERE event_id = 'ev1'")
	if err := row.Scan(&status, &tweetID); err != nil {
		t.Fatalf("reading back: %v", err)
	}

	if status != "posted" || tweetID != "1234567890" {
		t.Errorf("expected posted/1234567890, got %s/%s", status, tweetID)
	}
}

func TestLogFailure(t *testing.T) {
	db := testDB(t)
	logger := history.NewLogger(db)
	ctx := context.Background()

	err := logger.LogFailure(ctx, testTip(), "Arsenal @ 2.60 #EPL", errors.New("twitter HTTP 403: duplicate"))
	if err != nil {
		t.Fatalf("LogFailure failed: %v", err)
	}

	var status string
	var errMsg sql.NullString
	row := db.QueryRow("SELECT status, error_message FROM tip_posts WHERE event_id = 'ev1'")
	if err := row.Scan(&status, &errMsg); err != nil {
		t.Fatalf("reading back: %v", err)
	}

	if status != "failed" || !errMsg.Valid {
		t.Errorf("expected failed with error message, got %s/%v", status, errMsg)
	}
}
