package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"songdex/internal/ai"
	"songdex/internal/collect"
	"songdex/internal/config"
	"songdex/internal/constants"
	"songdex/internal/domain"
	"songdex/internal/enrich"
	"songdex/internal/logger"
	"songdex/internal/store"
	"songdex/internal/youtube"
)

type channelList []string

func (c *channelList) String() string { return strings.Join(*c, ",") }

func (c *channelList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

func main() {
	var channels channelList
	flag.Var(&channels, "channel", "channel reference (id, URL, @handle); repeatable")
	maxVideos := flag.Int("max-videos", 0, "stop after this many videos per channel (0 = all)")
	collectOnly := flag.Bool("collect-only", false, "collect raw metadata, skip enrichment")
	enrichOnly := flag.Bool("enrich-only", false, "enrich stored videos, skip collection")
	flag.Parse()

	cfg := config.Load()
	if err := cfg.ValidateCollector(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if *collectOnly && *enrichOnly {
		log.Fatal("-collect-only and -enrich-only are mutually exclusive")
	}

	refs := []string(channels)
	if len(refs) == 0 {
		refs = cfg.TargetChannelIDs
	}
	if len(refs) == 0 {
		log.Fatal("no channels given: pass -channel or set TARGET_CHANNEL_IDS")
	}

	os.Exit(run(cfg, refs, *maxVideos, *collectOnly, *enrichOnly))
}

// run carries the whole pass and reports the process exit code, so the
// deferred cleanup always happens before exiting.
func run(cfg *config.Config, refs []string, maxVideos int, collectOnly, enrichOnly bool) int {
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	db, err := store.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to init DB", "error", err)
		return 1
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ytClient, err := youtube.NewClient(ctx, cfg.YouTubeAPIKey, appLogger)
	if err != nil {
		appLogger.Error("Failed to init YouTube client", "error", err)
		return 1
	}

	videos := store.NewVideoStore(db)
	singers := store.NewSingerIndexStore(db)
	cachedDir := youtube.NewCachedDirectory(ytClient, db, constants.DefaultCacheTTL)
	resolver := youtube.NewResolver(cachedDir, appLogger)
	aiClient := ai.NewClient(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel, appLogger)

	collector := collect.New(videos, cachedDir, resolver, appLogger)
	enricher := enrich.New(videos, singers, aiClient, ytClient, cfg.EnrichDelay, appLogger)

	exitCode := 0

	if !enrichOnly {
		summaries, err := collector.Run(ctx, refs, maxVideos)
		if err != nil {
			appLogger.Error("collection finished with failures", "error", err)
			exitCode = 1
		}
		for _, s := range summaries {
			fmt.Printf("%s (%s): %d listed, %d new, %d stored, %d livestreams skipped\n",
				s.ChannelName, s.ChannelID, s.Listed, s.New, s.Stored, s.SkippedLive)
		}
	}

	if !collectOnly {
		for _, ref := range refs {
			channelID, err := resolver.ResolveChannelID(ctx, ref)
			if err != nil {
				appLogger.Error("resolution failed, skipping enrichment", "ref", ref, "error", err)
				exitCode = 1
				continue
			}
			results, err := enricher.EnrichChannel(ctx, channelID)
			if err != nil {
				appLogger.Error("enrichment failed", "channel_id", channelID, "error", err)
				exitCode = 1
				continue
			}
			songs := 0
			for _, r := range results {
				if r.VideoType == domain.VideoTypeSong && !r.Partial {
					songs++
				}
			}
			fmt.Printf("%s: %d videos enriched, %d songs indexed\n", channelID, len(results), songs)
		}
	}

	return exitCode
}
