// Package history logs posting attempts to the tip_posts table so past tips
// can be audited and graded after results come in.
package history

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/XavierBriggs/Hermes/pkg/models"
	_ "github.com/lib/pq"
)

// Logger records posting attempts in Postgres
type Logger struct {
	db *sql.DB
}

// NewLogger creates a history logger on an open connection
func NewLogger(db *sql.DB) *Logger {
	return &Logger{db: db}
}

// entry is one posting attempt
type entry struct {
	tip          *models.Tip
	tweetText    string
	tweetID      string
	status       string // "posted", "failed", "dry_run"
	errorMessage string
}

// LogPost records a successful post
func (l *Logger) LogPost(ctx context.Context, tip *models.Tip, tweetText string, result *models.PostResult) error {
	return l.insert(ctx, &entry{
		tip:       tip,
		tweetText: tweetText,
		tweetID:   result.TweetID,
		status:    "posted",
	})
}

// LogFailure records a failed posting attempt
func (l *Logger) LogFailure(ctx context.Context, tip *models.Tip, tweetText string, postErr error) error {
	return l.insert(ctx, &entry{
		tip:          tip,
		tweetText:    tweetText,
		status:       "failed",
		errorMessage: postErr.Error(),
	})
}

// LogDryRun records a tip that was generated but deliberately not posted
func (l *Logger) LogDryRun(ctx context.Context, tip *models.Tip, tweetText string) error {
	return l.insert(ctx, &entry{
		tip:       tip,
		tweetText: tweetText,
		status:    "dry_run",
	})
}

func (l *Logger) insert(ctx context.Context, e *entry) error {
	query := `
		INSERT INTO tip_posts (
			sport_key, event_id, home_team, away_team, commence_time,
			outcome, best_price, best_book, edge_percent, book_count,
			tweet_text, tweet_id, status, error_message
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := l.db.ExecContext(ctx, query,
		e.tip.SportKey,
		e.tip.EventID,
		e.tip.HomeTeam,
		e.tip.AwayTeam,
		e.tip.CommenceTime,
		e.tip.Outcome,
		e.tip.BestPrice,
		e.tip.BestBook,
		e.tip.EdgePercent,
		e.tip.BookCount,
		e.tweetText,
		nullIfEmpty(e.tweetID),
		e.status,
		nullIfEmpty(e.errorMessage),
	)

	if err != nil {
		return fmt.Errorf("failed to log tip post: %w", err)
	}

	return nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
