package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/XavierBriggs/Hermes/adapters/theoddsapi"
	"github.com/XavierBriggs/Hermes/internal/bot"
	"github.com/XavierBriggs/Hermes/internal/history"
	"github.com/XavierBriggs/Hermes/internal/movement"
	"github.com/XavierBriggs/Hermes/internal/openai"
	"github.com/XavierBriggs/Hermes/internal/poster"
	"github.com/XavierBriggs/Hermes/internal/registry"
	"github.com/XavierBriggs/Hermes/internal/scheduler"
	"github.com/XavierBriggs/Hermes/internal/server"
	"github.com/XavierBriggs/Hermes/internal/snapshot"
	"github.com/XavierBriggs/Hermes/internal/tipgen"
	"github.com/XavierBriggs/Hermes/pkg/contracts"
	"github.com/XavierBriggs/Hermes/pkg/models"
	"github.com/XavierBriggs/Hermes/sports/soccer"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

func main() {
	fmt.Println("=== Hermes Betting Tips Bot ===")

	// Load .env if present; real env vars take precedence
	if err := godotenv.Load(); err == nil {
		fmt.Println("✓ Loaded .env file")
	}

	config := loadConfig()
	ctx := context.Background()

	// Initialize The Odds API adapter
	oddsClient := theoddsapi.NewClient(config.OddsAPIKey)
	fmt.Println("✓ Initialized The Odds API adapter")

	// Initialize snapshot store
	store := snapshot.NewStore(config.DataDir)
	fmt.Printf("✓ Snapshot store at %s\n", config.DataDir)

	// Initialize movement engine (optional, needs Redis)
	var movements *movement.Engine
	if config.RedisURL != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     config.RedisURL,
			Password: config.RedisPassword,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			fmt.Printf("✗ Failed to connect to Redis: %v\n", err)
			os.Exit(1)
		}
		movements = movement.NewEngine(redisClient, config.MovementTTL)
		fmt.Println("✓ Connected to Redis - movement tracking enabled")
	} else {
		fmt.Println("⚠ REDIS_URL not set - movement tracking disabled")
	}

	// Initialize tip history logger (optional, needs Postgres)
	var historyLogger *history.Logger
	if config.DatabaseDSN != "" {
		db, err := sql.Open("postgres", config.DatabaseDSN)
		if err != nil {
			fmt.Printf("✗ Failed to open tip history DB: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := db.PingContext(ctx); err != nil {
			fmt.Printf("✗ Failed to ping tip history DB: %v\n", err)
			os.Exit(1)
		}
		historyLogger = history.NewLogger(db)
		fmt.Println("✓ Connected to tip history DB")
	} else {
		fmt.Println("⚠ HERMES_DB_DSN not set - tip history disabled")
	}

	// Initialize OpenAI tweet generation
	aiClient := openai.NewClient(openai.Config{
		APIKey: config.OpenAIAPIKey,
		Model:  config.OpenAIModel,
	})
	generator := tipgen.NewGenerator(aiClient)
	fmt.Printf("✓ Initialized tweet generation (model: %s)\n", config.OpenAIModel)

	// Initialize Twitter poster
	var tipPoster contracts.TipPoster
	if config.DryRun {
		fmt.Println("⚠ Dry run mode - tweets will be generated but not posted")
	} else {
		twitterPoster, err := poster.NewTwitterPoster(config.TwitterCreds)
		if err != nil {
			fmt.Printf("✗ Twitter credentials incomplete: %v\n", err)
			os.Exit(1)
		}
		tipPoster = twitterPoster
		fmt.Println("✓ Initialized Twitter poster")
	}

	// Register priority leagues
	leagues := registry.NewLeagueRegistry()
	for _, league := range soccer.PriorityLeagues() {
		if err := leagues.Register(league); err != nil {
			fmt.Printf("✗ Failed to register league: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("✓ Registered %d league(s)\n", leagues.Count())
	for _, league := range leagues.GetAll() {
		fmt.Printf("  [%s] regions=%v markets=%v\n",
			league.GetDisplayName(), league.GetRegions(), league.GetMarkets())
	}

	// Wire the pipeline
	hermesBot := bot.New(bot.Config{
		Provider:  oddsClient,
		Leagues:   leagues,
		Store:     store,
		Movements: movements,
		Generator: generator,
		Poster:    tipPoster,
		History:   historyLogger,
		DryRun:    config.DryRun,
	})

	// Scheduler drives periodic runs; control plane starts and stops it
	sched := scheduler.NewScheduler(hermesBot, config.PollInterval, config.ErrorBackoff)
	sched.Start(ctx)
	fmt.Printf("✓ Scheduler started (interval: %v, error backoff: %v)\n",
		config.PollInterval, config.ErrorBackoff)

	// Control-plane HTTP server
	handler := server.NewHandler(ctx, sched, oddsClient)
	srv := &http.Server{
		Addr:         config.HTTPAddr,
		Handler:      handler.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		fmt.Printf("✓ Control plane listening on %s\n", config.HTTPAddr)
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		fmt.Printf("✗ Server error: %v\n", err)
		os.Exit(1)

	case sig := <-shutdown:
		fmt.Printf("\n⚠ Received signal: %v\n", sig)

		sched.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("⚠ Graceful shutdown failed: %v\n", err)
			if err := srv.Close(); err != nil {
				fmt.Printf("✗ Could not stop server: %v\n", err)
			}
		}
	}

	fmt.Println("✓ Hermes stopped")
}

// Config holds Hermes configuration
type Config struct {
	OddsAPIKey    string
	OpenAIAPIKey  string
	OpenAIModel   string
	TwitterCreds  models.TwitterCredentials
	RedisURL      string
	RedisPassword string
	DatabaseDSN   string
	DataDir       string
	PollInterval  time.Duration
	ErrorBackoff  time.Duration
	MovementTTL   time.Duration
	HTTPAddr      string
	DryRun        bool
}

// loadConfig loads configuration from environment variables
func loadConfig() Config {
	config := Config{
		OddsAPIKey:   getEnv("ODDS_API_KEY", ""),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o"),
		TwitterCreds: models.TwitterCredentials{
			APIKey:            os.Getenv("TWITTER_API_KEY"),
			APISecret:         os.Getenv("TWITTER_API_SECRET"),
			AccessToken:       os.Getenv("TWITTER_ACCESS_TOKEN"),
			AccessTokenSecret: os.Getenv("TWITTER_ACCESS_TOKEN_SECRET"),
		},
		RedisURL:      os.Getenv("REDIS_URL"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		DatabaseDSN:   os.Getenv("HERMES_DB_DSN"),
		DataDir:       getEnv("HERMES_DATA_DIR", "."),
		PollInterval:  getDuration("HERMES_POLL_INTERVAL", 2*time.Hour),
		ErrorBackoff:  getDuration("HERMES_ERROR_BACKOFF", 5*time.Minute),
		MovementTTL:   getDuration("HERMES_MOVEMENT_TTL", 24*time.Hour),
		HTTPAddr:      getEnv("HERMES_HTTP_ADDR", ":8000"),
		DryRun:        os.Getenv("HERMES_DRY_RUN") == "true",
	}

	if config.OddsAPIKey == "" {
		fmt.Println("✗ ODDS_API_KEY environment variable is required")
		os.Exit(1)
	}
	if config.OpenAIAPIKey == "" {
		fmt.Println("✗ OPENAI_API_KEY environment variable is required")
		os.Exit(1)
	}

	return config
}

// getEnv gets an environment variable with a default fallback
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration parses a duration environment variable with a default fallback
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		fmt.Printf("⚠ Invalid %s '%s', using default %v\n", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
