package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/popcornroulette/api/internal/external/tmdb"
	"github.com/popcornroulette/api/internal/logger"
	"github.com/popcornroulette/api/internal/normalizer"
	"github.com/popcornroulette/api/internal/repository"
	"gorm.io/gorm"
)

// Config holds the discovery thresholds and throttling for a scraper
type Config struct {
	MinRating      float64       // minimum vote average for discovery results
	MinVoteCount   int           // minimum vote count for discovery results
	SortBy         string        // discovery sort key
	CandidateDelay time.Duration // delay between per-candidate detail fetches
}

// DefaultConfig returns the thresholds used by the standard ingestion runs
func DefaultConfig() Config {
	return Config{
		MinRating:      6.0,
		MinVoteCount:   100,
		SortBy:         "popularity.desc",
		CandidateDelay: 250 * time.Millisecond,
	}
}

// Stats holds the outcome counters of one ingestion run
type Stats struct {
	Imported     int
	Duplicates   int
	Unimportable int
	Failed       int
	Pages        int
}

// Scraper drives paginated, year-ranged discovery against the metadata
// provider and commits importable records to the catalog
type Scraper struct {
	client     *tmdb.Client
	normalizer *normalizer.Normalizer
	repo       *repository.MovieRepository
	logger     *logger.Logger
	cfg        Config
}

// New creates a scraper wired to a provider client, normalizer and repository
func New(client *tmdb.Client, norm *normalizer.Normalizer, repo *repository.MovieRepository, cfg Config) *Scraper {
	if cfg.SortBy == "" {
		cfg.SortBy = "popularity.desc"
	}
	return &Scraper{
		client:     client,
		normalizer: norm,
		repo:       repo,
		logger:     logger.Default(),
		cfg:        cfg,
	}
}

// Run executes one ingestion pass over the plan's year ranges. Ranges are
// processed sequentially; per-item and per-page failures are counted and
// never abort the run. Only context cancellation stops a run early.
func (s *Scraper) Run(ctx context.Context, plan Plan) (*Stats, error) {
	maxPages := plan.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	stats := &Stats{}

	s.logger.WithFields(map[string]interface{}{
		"plan":       plan.Name,
		"ranges":     len(plan.Ranges),
		"max_pages":  maxPages,
		"min_rating": s.cfg.MinRating,
		"min_votes":  s.cfg.MinVoteCount,
	}).Info("starting catalog ingestion")

	for _, yearRange := range plan.Ranges {
		if err := s.scrapeRange(ctx, yearRange, maxPages, stats); err != nil {
			return stats, err
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"plan":         plan.Name,
		"imported":     stats.Imported,
		"duplicates":   stats.Duplicates,
		"unimportable": stats.Unimportable,
		"failed":       stats.Failed,
		"pages":        stats.Pages,
	}).Info("catalog ingestion complete")

	return stats, nil
}

// scrapeRange walks discovery pages for one year range until the page
// ceiling, an empty page, or the provider's last page is reached
func (s *Scraper) scrapeRange(ctx context.Context, yearRange YearRange, maxPages int, stats *Stats) error {
	rangeLog := s.logger.WithFields(map[string]interface{}{
		"start_year": yearRange.Start,
		"end_year":   yearRange.End,
	})
	rangeLog.Info("processing year range")

	filters := tmdb.DiscoverFilters{
		MinRating:    &s.cfg.MinRating,
		MinVoteCount: &s.cfg.MinVoteCount,
		SortBy:       s.cfg.SortBy,
	}
	if yearRange.SingleYear() {
		filters.Year = &yearRange.Start
	}

	for page := 1; page <= maxPages; page++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		response, err := s.client.DiscoverMovies(ctx, page, filters)
		if err != nil {
			stats.Failed++
			rangeLog.WithFields(map[string]interface{}{
				"page":  page,
				"error": err,
			}).Error("discovery page failed", err)
			continue
		}

		if len(response.Results) == 0 {
			rangeLog.WithFields(map[string]interface{}{"page": page}).Info("no more results for range")
			break
		}

		stats.Pages++

		for _, candidate := range response.Results {
			if err := ctx.Err(); err != nil {
				return err
			}

			// Discovery pages for multi-year ranges are not year-filtered,
			// so candidates outside the bounds are skipped, not failed.
			if !yearRange.SingleYear() {
				year := tmdb.ExtractYear(candidate.ReleaseDate)
				if year != 0 && !yearRange.Contains(year) {
					continue
				}
			}

			s.importCandidate(ctx, candidate.ID, page, yearRange, stats)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.cfg.CandidateDelay):
			}
		}

		if page >= response.TotalPages {
			rangeLog.WithFields(map[string]interface{}{
				"total_pages": response.TotalPages,
			}).Info("reached last available page")
			break
		}
	}

	return nil
}

// importCandidate fetches details for one candidate, normalizes it and
// attempts a create, updating the run counters
func (s *Scraper) importCandidate(ctx context.Context, movieID, page int, yearRange YearRange, stats *Stats) {
	itemLog := s.logger.WithFields(map[string]interface{}{
		"movie_id":   movieID,
		"page":       page,
		"start_year": yearRange.Start,
		"end_year":   yearRange.End,
	})

	details, err := s.client.GetMovieDetails(ctx, movieID)
	if err != nil {
		stats.Failed++
		itemLog.Error("failed to fetch movie details", err)
		return
	}

	movie, err := s.normalizer.Normalize(details)
	if errors.Is(err, normalizer.ErrNoMappedCountries) {
		stats.Unimportable++
		itemLog.WithFields(map[string]interface{}{
			"title": details.Title,
		}).Info("skipping movie with no mapped countries")
		return
	}
	if err != nil {
		stats.Failed++
		itemLog.Error("failed to normalize movie", err)
		return
	}

	if err := s.repo.Create(movie); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			stats.Duplicates++
			itemLog.WithFields(map[string]interface{}{
				"title": movie.Title,
			}).Info("movie already imported")
			return
		}
		stats.Failed++
		itemLog.Error("failed to create movie", err)
		return
	}

	stats.Imported++
	itemLog.Info(fmt.Sprintf("imported %s (%s)", movie.Title, movie.AgeRating))
}
