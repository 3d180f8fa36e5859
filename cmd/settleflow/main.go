package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/progami/settleflow/internal/adapter/feed"
	"github.com/progami/settleflow/internal/config"
	"github.com/progami/settleflow/internal/usecase/journal"
	"github.com/progami/settleflow/internal/usecase/pnl"
	"github.com/progami/settleflow/internal/usecase/reconcile"
	"github.com/progami/settleflow/internal/usecase/segmenter"
)

// getEnv gets environment variable with fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	// Optional .env for local runs; absence is fine.
	_ = godotenv.Load()

	var (
		configPath = flag.String("config", getEnv("SETTLEFLOW_CONFIG", "settleflow.yaml"), "path to the YAML configuration")
		feedPath   = flag.String("feed", getEnv("SETTLEFLOW_FEED", ""), "path to the materialized feed JSON export")
		groupID    = flag.String("group", "", "event group to reconcile (default: all groups in the feed)")
	)
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if *feedPath == "" {
		log.Fatal().Msg("-feed is required")
	}

	// 1. Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	zone, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to resolve time zone")
	}

	// 2. Load the materialized feed
	eventFeed, err := feed.NewFile(*feedPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load feed")
	}

	// 3. Wire the pipeline
	service := reconcile.NewService(
		eventFeed,
		segmenter.New(zone, cfg.Region, log),
		journal.NewBuilder(cfg.Accounts, cfg.BankAccount, cfg.PayableAccount),
		pnl.NewAllocator(cfg),
		log,
	)

	// 4. Reconcile the requested groups and print the drafts
	ctx := context.Background()
	groups, err := eventFeed.ListEventGroups(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list event groups")
	}

	var results []*reconcile.Result
	for _, group := range groups {
		if *groupID != "" && group.ID != *groupID {
			continue
		}
		result, err := service.Reconcile(ctx, group)
		if err != nil {
			log.Fatal().Err(err).Str("group_id", group.ID).Msg("Reconciliation failed")
		}
		results = append(results, result)
	}

	if len(results) == 0 {
		log.Fatal().Str("group_id", *groupID).Msg("No matching event groups in feed")
	}

	out := json.NewEncoder(os.Stdout)
	out.SetIndent("", "  ")
	if err := out.Encode(results); err != nil {
		log.Fatal().Err(err).Msg("Failed to encode results")
	}
}
