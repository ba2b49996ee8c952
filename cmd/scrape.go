package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/popcornroulette/api/internal/config"
	"github.com/popcornroulette/api/internal/database"
	apperrors "github.com/popcornroulette/api/internal/errors"
	"github.com/popcornroulette/api/internal/external/tmdb"
	"github.com/popcornroulette/api/internal/logger"
	"github.com/popcornroulette/api/internal/normalizer"
	"github.com/popcornroulette/api/internal/repository"
	"github.com/popcornroulette/api/internal/scraper"
	"github.com/popcornroulette/api/internal/shutdown"
	"github.com/spf13/cobra"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape [mode]",
	Short: "Import movies from TMDB for a named crawl mode",
	Long: `Scrape runs one catalog ingestion pass over the year ranges of a
named crawl mode: recent, decade, all, modern or golden-era.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := "recent"
		if len(args) > 0 {
			mode = args[0]
		}
		return runScrape(mode)
	},
}

func runScrape(mode string) error {
	cfg := config.Get()
	log := logger.AppLogger()

	plan, ok := scraper.PlanByName(mode)
	if !ok {
		return fmt.Errorf("invalid mode %q, use one of: %s", mode, strings.Join(scraper.PlanNames(), ", "))
	}
	if cfg.Scraper.MaxPages > 0 {
		plan.MaxPages = cfg.Scraper.MaxPages
	}

	if cfg.TMDB.APIKey == "" {
		return apperrors.New(apperrors.CodeMissingConfig, "tmdb.api_key is required for scraping")
	}

	if err := database.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	client := tmdb.NewClient(tmdb.Config{
		APIKey:   cfg.TMDB.APIKey,
		BaseURL:  cfg.TMDB.BaseURL,
		Language: cfg.TMDB.Language,
	})
	norm := normalizer.New(normalizer.Config{
		TargetCountry:  cfg.Scraper.TargetCountry,
		TargetLanguage: cfg.Scraper.TargetLanguage,
	})
	repo := repository.NewMovieRepository(database.Get())

	s := scraper.New(client, norm, repo, scraper.Config{
		MinRating:      cfg.Scraper.MinRating,
		MinVoteCount:   cfg.Scraper.MinVoteCount,
		CandidateDelay: time.Duration(cfg.Scraper.DelayMs) * time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := shutdown.New(5 * time.Second)
	handler.Register(func(context.Context) error {
		cancel()
		return nil
	})
	go handler.Wait()

	stats, err := s.Run(ctx, plan)
	if err != nil {
		log.WithFields(map[string]interface{}{
			"mode":     mode,
			"imported": stats.Imported,
		}).Error("ingestion run interrupted", err)
		return err
	}

	fmt.Printf("Import complete: %d imported, %d duplicates, %d unimportable, %d failed\n",
		stats.Imported, stats.Duplicates, stats.Unimportable, stats.Failed)

	return nil
}
