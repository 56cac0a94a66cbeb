// Package bot orchestrates one full pipeline run: fetch odds for every
// registered league, persist the snapshot, annotate price movement, pick the
// best-value tip, generate tweet copy and post it.
package bot

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/XavierBriggs/Hermes/internal/analyzer"
	"github.com/XavierBriggs/Hermes/internal/history"
	"github.com/XavierBriggs/Hermes/internal/movement"
	"github.com/XavierBriggs/Hermes/internal/registry"
	"github.com/XavierBriggs/Hermes/internal/snapshot"
	"github.com/XavierBriggs/Hermes/internal/tipgen"
	"github.com/XavierBriggs/Hermes/pkg/contracts"
	"github.com/XavierBriggs/Hermes/pkg/models"
)

// Bot wires the pipeline components together
type Bot struct {
	provider  contracts.OddsProvider
	leagues   *registry.LeagueRegistry
	store     *snapshot.Store
	movements *movement.Engine // optional
	generator *tipgen.Generator
	poster    contracts.TipPoster
	history   *history.Logger // optional
	dryRun    bool
}

// Config holds the bot's dependencies
type Config struct {
	Provider  contracts.OddsProvider
	Leagues   *registry.LeagueRegistry
	Store     *snapshot.Store
	Movements *movement.Engine // nil disables movement tracking
	Generator *tipgen.Generator
	Poster    contracts.TipPoster
	History   *history.Logger // nil disables history logging
	DryRun    bool
}

// New creates a bot from its dependencies
func New(cfg Config) *Bot {
	return &Bot{
		provider:  cfg.Provider,
		leagues:   cfg.Leagues,
		store:     cfg.Store,
		movements: cfg.Movements,
		generator: cfg.Generator,
		poster:    cfg.Poster,
		history:   cfg.History,
		dryRun:    cfg.DryRun,
	}
}

// RunOnce executes the full analysis and posting pipeline. The returned
// RunResult is always non-nil and is persisted under the analysis directory
// even when the run is skipped or fails partway.
func (b *Bot) RunOnce(ctx context.Context) (*models.RunResult, error) {
	result := &models.RunResult{
		Timestamp:   time.Now().UTC(),
		SportKeys:   b.leagues.SportKeys(),
		EventCounts: make(map[string]int),
	}

	eventsByLeague, err := b.fetchAll(ctx, result)
	if err != nil {
		result.Error = err.Error()
		b.saveRun(result)
		return result, err
	}

	total := 0
	var allEvents []models.OddsEvent
	for _, events := range eventsByLeague {
		total += len(events)
		allEvents = append(allEvents, events...)
	}

	if total == 0 {
		log.Printf("[Bot] no odds data available, skipping analysis")
		result.Skipped = true
		result.SkipReason = "no odds data available"
		b.saveRun(result)
		return result, nil
	}

	path, err := b.store.SaveOdds(allEvents)
	if err != nil {
		result.Error = err.Error()
		b.saveRun(result)
		return result, fmt.Errorf("save odds snapshot: %w", err)
	}
	result.SnapshotPath = path
	log.Printf("[Bot] saved %d events to %s", total, path)

	if b.movements != nil {
		movements, err := b.movements.Annotate(ctx, allEvents)
		if err != nil {
			// Movement tracking is best effort
			log.Printf("[Bot] movement annotation error: %v", err)
		} else {
			result.Movements = movements
			log.Printf("[Bot] observed %d price movements since last run", len(movements))
		}
	}

	tip := b.pickBestTip(eventsByLeague)
	if tip == nil {
		log.Printf("[Bot] no outcome cleared the edge threshold, nothing to post")
		result.Skipped = true
		result.SkipReason = "no qualifying tip"
		b.saveRun(result)
		return result, nil
	}
	result.Tip = tip
	log.Printf("[Bot] tip: %s @ %.2f (%s, edge %.1f%%)", tip.Outcome, tip.BestPrice, tip.BestBook, tip.EdgePercent)

	tweet, err := b.generator.Generate(ctx, tip, result.Movements)
	if err != nil {
		result.Error = err.Error()
		b.saveRun(result)
		return result, fmt.Errorf("generate tweet: %w", err)
	}
	result.Tweet = tweet

	if b.dryRun {
		log.Printf("[Bot] dry run, not posting: %s", tweet)
		result.Skipped = true
		result.SkipReason = "dry run"
		b.logHistory(ctx, func(l *history.Logger) error {
			return l.LogDryRun(ctx, tip, tweet)
		})
		b.saveRun(result)
		return result, nil
	}

	post, err := b.poster.PostTweet(ctx, tweet)
	if err != nil {
		result.Error = err.Error()
		b.logHistory(ctx, func(l *history.Logger) error {
			return l.LogFailure(ctx, tip, tweet, err)
		})
		b.saveRun(result)
		return result, fmt.Errorf("post tweet: %w", err)
	}
	result.Post = post
	log.Printf("[Bot] tweet posted: %s", post.URL)

	b.logHistory(ctx, func(l *history.Logger) error {
		return l.LogPost(ctx, tip, tweet, post)
	})
	b.saveRun(result)

	return result, nil
}

// fetchAll retrieves odds for every registered league. A league whose fetch
// fails is logged and skipped; the run fails only when every league fails.
func (b *Bot) fetchAll(ctx context.Context, result *models.RunResult) (map[string][]models.OddsEvent, error) {
	leagues := b.leagues.GetAll()
	if len(leagues) == 0 {
		return nil, fmt.Errorf("no leagues registered")
	}

	eventsByLeague := make(map[string][]models.OddsEvent)
	var lastErr error
	failures := 0

	for _, league := range leagues {
		events, err := b.provider.FetchOdds(ctx, &models.FetchOddsOptions{
			Sport:   league.GetSportKey(),
			Regions: league.GetRegions(),
			Markets: league.GetMarkets(),
		})
		if err != nil {
			log.Printf("[Bot] fetch %s error: %v", league.GetSportKey(), err)
			lastErr = err
			failures++
			continue
		}

		valid := events[:0]
		for i := range events {
			if err := league.ValidateEvent(&events[i]); err != nil {
				log.Printf("[Bot] dropping invalid event %s: %v", events[i].ID, err)
				continue
			}
			valid = append(valid, events[i])
		}

		eventsByLeague[league.GetSportKey()] = valid
		result.EventCounts[league.GetSportKey()] = len(valid)
		log.Printf("[Bot] %s: %d events", league.GetDisplayName(), len(valid))
	}

	if failures == len(leagues) {
		return nil, fmt.Errorf("all league fetches failed: %w", lastErr)
	}

	return eventsByLeague, nil
}

// pickBestTip runs the analyzer per league and keeps the highest-edge tip
func (b *Bot) pickBestTip(eventsByLeague map[string][]models.OddsEvent) *models.Tip {
	var best *models.Tip

	for _, league := range b.leagues.GetAll() {
		events := eventsByLeague[league.GetSportKey()]
		if len(events) == 0 {
			continue
		}

		analyses := analyzer.AnalyzeEvents(events)
		tip := analyzer.PickTip(analyses, league.GetDisplayName(), league.GetMinBookmakers(), league.GetMinEdge())
		if tip == nil {
			continue
		}

		if best == nil || tip.EdgePercent > best.EdgePercent {
			best = tip
		}
	}

	return best
}

func (b *Bot) logHistory(ctx context.Context, fn func(*history.Logger) error) {
	if b.history == nil {
		return
	}
	if err := fn(b.history); err != nil {
		log.Printf("[Bot] history logging error: %v", err)
	}
}

func (b *Bot) saveRun(result *models.RunResult) {
	if _, err := b.store.SaveRun(result); err != nil {
		log.Printf("[Bot] save run result error: %v", err)
	}
}
