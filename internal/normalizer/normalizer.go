package normalizer

import (
	"errors"
	"strconv"

	"github.com/popcornroulette/api/internal/external/tmdb"
	"github.com/popcornroulette/api/internal/models"
	"github.com/popcornroulette/api/internal/rating"
	"github.com/popcornroulette/api/internal/vocab"
)

// ErrNoMappedCountries marks a record whose country codes all fall outside
// the canonical vocabulary. It is a filtering outcome, not a failure; the
// caller counts it and moves on.
var ErrNoMappedCountries = errors.New("no mapped countries")

const (
	// directorJob is the crew job label identifying directors
	directorJob = "Director"

	// maxCastEntries bounds the projected cast list
	maxCastEntries = 10
)

// Normalizer converts raw provider records into canonical catalog records
type Normalizer struct {
	targetCountry  string
	targetLanguage string
}

// Config holds normalizer configuration
type Config struct {
	TargetCountry  string // country used for localized titles and providers, e.g. "BR"
	TargetLanguage string // language of localized fields, e.g. "pt"
}

// New creates a normalizer for a target locale
func New(cfg Config) *Normalizer {
	if cfg.TargetCountry == "" {
		cfg.TargetCountry = "BR"
	}
	if cfg.TargetLanguage == "" {
		cfg.TargetLanguage = "pt"
	}
	return &Normalizer{
		targetCountry:  cfg.TargetCountry,
		targetLanguage: cfg.TargetLanguage,
	}
}

// Normalize produces a canonical catalog record from provider movie details.
// Returns ErrNoMappedCountries when no country code maps into the vocabulary.
func (n *Normalizer) Normalize(details *tmdb.MovieDetails) (*models.Movie, error) {
	countries := mapCountries(details.ProductionCountries)
	if len(countries) == 0 {
		return nil, ErrNoMappedCountries
	}

	// Certification data is keyed by the provider's own country codes, so
	// the resolver receives raw codes while the stored set uses mapped names.
	ageRating := rating.Resolve(details.CertificationsByCountry(), details.ProductionCountryCodes())

	movie := &models.Movie{
		Title:         details.Title,
		TitlePtBr:     n.localizedTitle(details),
		OriginalTitle: optionalString(details.OriginalTitle),
		Countries:     countries,
		AgeRating:     ageRating,
		Genres:        mapGenres(details.Genres),
		ImdbRating:    formatRating(details.VoteAverage),
		Duration:      details.Runtime,
		Year:          extractYear(details.ReleaseDate),
		Directors:     directors(details.Credits.Crew),
		Cast:          castMembers(details.Credits.Cast),
		WhereToWatch:  n.watchProviders(details.WatchProviders),
		PosterURL:     tmdb.PosterURL(details.PosterPath),
		Synopsis:      optionalString(details.Overview),
		SynopsisPtBr:  n.localizedSynopsis(details),
	}

	return movie, nil
}

// mapCountries maps raw country codes through the vocabulary, dropping
// unmapped codes and duplicates while preserving order
func mapCountries(raw []tmdb.ProductionCountry) models.StringList {
	seen := make(map[string]bool, len(raw))
	countries := models.StringList{}
	for _, country := range raw {
		name, ok := vocab.CountryName(country.CountryCode)
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		countries = append(countries, name)
	}
	return countries
}

// mapGenres maps provider genres through the vocabulary; unmapped genres
// are silently dropped
func mapGenres(raw []tmdb.Genre) models.StringList {
	genres := models.StringList{}
	for _, genre := range raw {
		if name, ok := vocab.GenreName(genre.Name); ok {
			genres = append(genres, name)
		}
	}
	return genres
}

func directors(crew []tmdb.CrewMember) models.StringList {
	names := models.StringList{}
	for _, member := range crew {
		if member.Job == directorJob {
			names = append(names, member.Name)
		}
	}
	return names
}

func castMembers(cast []tmdb.CastMember) models.CastList {
	limit := len(cast)
	if limit > maxCastEntries {
		limit = maxCastEntries
	}
	members := make(models.CastList, 0, limit)
	for _, actor := range cast[:limit] {
		members = append(members, models.CastMember{
			Name: actor.Name,
			Role: actor.Character,
		})
	}
	return members
}

// watchProviders unions the subscription, rental and purchase provider
// lists for the target country, deduplicated
func (n *Normalizer) watchProviders(providers tmdb.WatchProviders) models.StringList {
	country, ok := providers.Results[n.targetCountry]
	if !ok {
		return models.StringList{}
	}

	seen := make(map[string]bool)
	names := models.StringList{}
	for _, group := range [][]tmdb.WatchProvider{country.Flatrate, country.Rent, country.Buy} {
		for _, provider := range group {
			if seen[provider.ProviderName] {
				continue
			}
			seen[provider.ProviderName] = true
			names = append(names, provider.ProviderName)
		}
	}
	return names
}

func (n *Normalizer) localizedTitle(details *tmdb.MovieDetails) *string {
	if entry := n.translation(details); entry != nil && entry.Data.Title != "" {
		return &entry.Data.Title
	}
	return nil
}

func (n *Normalizer) localizedSynopsis(details *tmdb.MovieDetails) *string {
	if entry := n.translation(details); entry != nil && entry.Data.Overview != "" {
		return &entry.Data.Overview
	}
	return nil
}

func (n *Normalizer) translation(details *tmdb.MovieDetails) *tmdb.Translation {
	for i, entry := range details.Translations.Translations {
		if entry.CountryCode == n.targetCountry && entry.LanguageCode == n.targetLanguage {
			return &details.Translations.Translations[i]
		}
	}
	return nil
}

// formatRating renders the provider's vote average with one fractional
// digit to match the storage precision
func formatRating(voteAverage float64) *string {
	if voteAverage <= 0 {
		return nil
	}
	formatted := strconv.FormatFloat(voteAverage, 'f', 1, 64)
	return &formatted
}

func extractYear(releaseDate string) *int {
	year := tmdb.ExtractYear(releaseDate)
	if year == 0 {
		return nil
	}
	return &year
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
