// Package movement tracks how prices drift between runs by comparing each
// fetch against the last observed prices kept in Redis. Movement information
// enriches the analysis prompt; it is observational only and never gates a
// post.
package movement

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/XavierBriggs/Hermes/pkg/models"
	"github.com/redis/go-redis/v9"
)

const priceEpsilon = 0.001

// Engine compares fetched odds against the last observed prices in Redis
type Engine struct {
	redis *redis.Client
	ttl   time.Duration
}

// cachedPrice is the minimal data stored in Redis for comparison
type cachedPrice struct {
	Price  float64   `json:"price"`
	SeenAt time.Time `json:"seen_at"`
}

// NewEngine creates a new movement engine
func NewEngine(redisClient *redis.Client, ttl time.Duration) *Engine {
	return &Engine{
		redis: redisClient,
		ttl:   ttl,
	}
}

type observation struct {
	key string
	mv  models.Movement
}

// Annotate compares the fetched events against the last observed prices and
// returns the outcomes whose price moved. The cache is updated with the new
// prices afterwards.
func (e *Engine) Annotate(ctx context.Context, events []models.OddsEvent) ([]models.Movement, error) {
	var observations []observation
	for _, event := range events {
		for _, book := range event.Bookmakers {
			for _, market := range book.Markets {
				for _, outcome := range market.Outcomes {
					observations = append(observations, observation{
						key: e.buildKey(event.ID, book.Key, market.Key, outcome.Name),
						mv: models.Movement{
							EventID:     event.ID,
							BookKey:     book.Key,
							MarketKey:   market.Key,
							OutcomeName: outcome.Name,
							NewPrice:    outcome.Price,
						},
					})
				}
			}
		}
	}

	if len(observations) == 0 {
		return nil, nil
	}

	keys := make([]string, len(observations))
	for i, obs := range observations {
		keys[i] = obs.key
	}

	cachedValues, err := e.redis.MGet(ctx, keys...).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("redis mget: %w", err)
	}

	var movements []models.Movement
	for i, obs := range observations {
		cached, ok := e.parseCached(cachedValues[i])
		if !ok {
			continue // first observation, nothing to compare
		}

		diff := obs.mv.NewPrice - cached.Price
		if diff < 0 {
			diff = -diff
		}
		if diff <= priceEpsilon {
			continue
		}

		mv := obs.mv
		mv.OldPrice = cached.Price
		mv.SeenAt = cached.SeenAt
		movements = append(movements, mv)
	}

	if err := e.updateCache(ctx, observations); err != nil {
		return nil, err
	}

	return movements, nil
}

func (e *Engine) updateCache(ctx context.Context, observations []observation) error {
	pipe := e.redis.Pipeline()
	now := time.Now()

	for _, obs := range observations {
		data, err := json.Marshal(cachedPrice{
			Price:  obs.mv.NewPrice,
			SeenAt: now,
		})
		if err != nil {
			return fmt.Errorf("marshal cached price: %w", err)
		}

		pipe.Set(ctx, obs.key, data, e.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis pipeline exec: %w", err)
	}

	return nil
}

func (e *Engine) parseCached(value interface{}) (cachedPrice, bool) {
	if value == nil {
		return cachedPrice{}, false
	}

	str, ok := value.(string)
	if !ok {
		return cachedPrice{}, false
	}

	var cached cachedPrice
	if err := json.Unmarshal([]byte(str), &cached); err != nil {
		// Cache corruption, treat as first observation
		return cachedPrice{}, false
	}

	return cached, true
}

// buildKey creates a Redis key for one outcome
// Format: odds:last:{event_id}:{book_key}:{market_key}:{outcome_name}
func (e *Engine) buildKey(eventID, bookKey, marketKey, outcomeName string) string {
	return fmt.Sprintf("odds:last:%s:%s:%s:%s", eventID, bookKey, marketKey, outcomeName)
}
