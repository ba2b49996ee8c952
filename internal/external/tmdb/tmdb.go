package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/popcornroulette/api/internal/circuitbreaker"
	apperrors "github.com/popcornroulette/api/internal/errors"
	"github.com/popcornroulette/api/internal/logger"
	"github.com/popcornroulette/api/internal/retry"
)

const (
	defaultBaseURL  = "https://api.themoviedb.org/3"
	defaultImageURL = "https://image.tmdb.org/t/p/w500"
	defaultTimeout  = 10 * time.Second
)

// Client handles TMDB API interactions
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
	logger     *logger.Logger
	circuitBrk *circuitbreaker.CircuitBreaker
}

// Config holds TMDB client configuration
type Config struct {
	APIKey   string
	BaseURL  string // defaults to the public TMDB v3 API
	Language string // e.g., "en-US"
	Timeout  time.Duration
}

// DiscoverFilters holds the optional filters for a discovery page request
type DiscoverFilters struct {
	Year         *int
	Genres       string
	MinRating    *float64
	MinVoteCount *int
	SortBy       string
}

// DiscoverResult represents one candidate from a discovery page
type DiscoverResult struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	OriginalTitle string `json:"original_title"`
	GenreIDs      []int  `json:"genre_ids"`
	ReleaseDate   string `json:"release_date"`
}

// DiscoverResponse represents the TMDB discover API response
type DiscoverResponse struct {
	Page         int              `json:"page"`
	Results      []DiscoverResult `json:"results"`
	TotalPages   int              `json:"total_pages"`
	TotalResults int              `json:"total_results"`
}

// Genre represents a TMDB genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProductionCountry represents a production country entry
type ProductionCountry struct {
	CountryCode string `json:"iso_3166_1"`
	Name        string `json:"name"`
}

// CastMember represents one cast credit
type CastMember struct {
	Name      string `json:"name"`
	Character string `json:"character"`
	Order     int    `json:"order"`
}

// CrewMember represents one crew credit
type CrewMember struct {
	Name       string `json:"name"`
	Job        string `json:"job"`
	Department string `json:"department"`
}

// Credits holds cast and crew lists for a movie
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// ReleaseDate represents one certification entry for a country
type ReleaseDate struct {
	Certification string `json:"certification"`
	Type          int    `json:"type"`
}

// CountryRelease represents the release entries for one country
type CountryRelease struct {
	CountryCode  string        `json:"iso_3166_1"`
	ReleaseDates []ReleaseDate `json:"release_dates"`
}

// ReleaseDates holds per-country certification data
type ReleaseDates struct {
	Results []CountryRelease `json:"results"`
}

// WatchProvider represents one streaming provider entry
type WatchProvider struct {
	ProviderName string `json:"provider_name"`
}

// CountryProviders holds provider lists for one country
type CountryProviders struct {
	Link     string          `json:"link"`
	Flatrate []WatchProvider `json:"flatrate"`
	Rent     []WatchProvider `json:"rent"`
	Buy      []WatchProvider `json:"buy"`
}

// WatchProviders holds per-country watch provider data
type WatchProviders struct {
	Results map[string]CountryProviders `json:"results"`
}

// Translation represents one translated-title entry
type Translation struct {
	CountryCode  string          `json:"iso_3166_1"`
	LanguageCode string          `json:"iso_639_1"`
	Data         TranslationData `json:"data"`
}

// TranslationData holds the translated fields of a translation entry
type TranslationData struct {
	Title    string `json:"title"`
	Overview string `json:"overview"`
}

// Translations holds all translated-title entries for a movie
type Translations struct {
	Translations []Translation `json:"translations"`
}

// MovieDetails represents detailed movie information with appended
// credits, certification, watch provider and translation data
type MovieDetails struct {
	ID                  int                 `json:"id"`
	Title               string              `json:"title"`
	OriginalTitle       string              `json:"original_title"`
	Overview            string              `json:"overview"`
	PosterPath          *string             `json:"poster_path"`
	ReleaseDate         string              `json:"release_date"`
	VoteAverage         float64             `json:"vote_average"`
	Runtime             *int                `json:"runtime"`
	Genres              []Genre             `json:"genres"`
	ProductionCountries []ProductionCountry `json:"production_countries"`
	Credits             Credits             `json:"credits"`
	ReleaseDates        ReleaseDates        `json:"release_dates"`
	WatchProviders      WatchProviders      `json:"watch/providers"`
	Translations        Translations        `json:"translations"`
}

// CertificationsByCountry flattens the release date data into a map of
// country code to ordered raw certification strings
func (d *MovieDetails) CertificationsByCountry() map[string][]string {
	certs := make(map[string][]string, len(d.ReleaseDates.Results))
	for _, release := range d.ReleaseDates.Results {
		for _, entry := range release.ReleaseDates {
			certs[release.CountryCode] = append(certs[release.CountryCode], entry.Certification)
		}
	}
	return certs
}

// ProductionCountryCodes returns the raw production country codes in provider order
func (d *MovieDetails) ProductionCountryCodes() []string {
	codes := make([]string, 0, len(d.ProductionCountries))
	for _, country := range d.ProductionCountries {
		codes = append(codes, country.CountryCode)
	}
	return codes
}

// NewClient creates a new TMDB API client
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Language == "" {
		cfg.Language = "en-US"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}

	cb := circuitbreaker.New(circuitbreaker.Config{
		MaxFailures: 5,
		Timeout:     60 * time.Second,
	})

	return &Client{
		apiKey:   cfg.APIKey,
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		language: cfg.Language,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger:     logger.Default(),
		circuitBrk: cb,
	}
}

// DiscoverMovies requests one page of discovery results
func (c *Client) DiscoverMovies(ctx context.Context, page int, filters DiscoverFilters) (*DiscoverResponse, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	sortBy := filters.SortBy
	if sortBy == "" {
		sortBy = "popularity.desc"
	}
	params.Set("sort_by", sortBy)

	if filters.Year != nil {
		params.Set("primary_release_year", strconv.Itoa(*filters.Year))
	}
	if filters.Genres != "" {
		params.Set("with_genres", filters.Genres)
	}
	if filters.MinRating != nil {
		params.Set("vote_average.gte", strconv.FormatFloat(*filters.MinRating, 'f', -1, 64))
	}
	if filters.MinVoteCount != nil {
		params.Set("vote_count.gte", strconv.Itoa(*filters.MinVoteCount))
	}

	var response DiscoverResponse
	if err := c.makeRequest(ctx, "/discover/movie", params, &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// GetMovieDetails retrieves full movie details with credits, certification,
// watch provider and translation data appended in a single call
func (c *Client) GetMovieDetails(ctx context.Context, movieID int) (*MovieDetails, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits,release_dates,watch/providers,translations")

	var details MovieDetails
	endpoint := fmt.Sprintf("/movie/%d", movieID)
	if err := c.makeRequest(ctx, endpoint, params, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// makeRequest performs an HTTP request to the TMDB API with circuit breaker and retry
func (c *Client) makeRequest(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)

	requestURL := fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, params.Encode())

	retryCfg := retry.Config{
		MaxAttempts:       3,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        10 * time.Second,
		BackoffMultiplier: 2.0,
		JitterFraction:    0.1,
	}

	operation := func() error {
		return c.circuitBrk.Execute(func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
			if err != nil {
				return err
			}

			req.Header.Set("Accept", "application/json")

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return apperrors.Wrap(err, apperrors.CodeServiceUnavailable, "TMDB API request failed")
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusTooManyRequests {
				return apperrors.New(apperrors.CodeRateLimited, "TMDB API rate limit exceeded")
			}

			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				body, _ := io.ReadAll(resp.Body)
				return apperrors.ExternalServiceError("tmdb",
					fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
			}

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return apperrors.Wrap(err, apperrors.CodeExternalService, "failed to read TMDB response")
			}

			if err := json.Unmarshal(body, result); err != nil {
				return apperrors.Wrap(err, apperrors.CodeExternalService, "failed to decode TMDB response")
			}

			return nil
		})
	}

	err := retry.Do(ctx, retryCfg, operation, apperrors.IsRetryable)
	if err != nil {
		c.logger.WithFields(map[string]interface{}{
			"endpoint": endpoint,
			"code":     apperrors.GetErrorCode(err),
		}).Warn("TMDB API request failed after retries")
		return err
	}

	return nil
}

// PosterURL builds the full poster image URL for a poster path
func PosterURL(posterPath *string) *string {
	if posterPath == nil || *posterPath == "" {
		return nil
	}
	full := defaultImageURL + *posterPath
	return &full
}

// ExtractYear extracts the year from a TMDB date string (YYYY-MM-DD).
// Returns 0 when the date is absent or unparsable.
func ExtractYear(dateStr string) int {
	if dateStr == "" {
		return 0
	}
	parts := strings.Split(dateStr, "-")
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	return year
}
