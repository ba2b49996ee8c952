package api

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	apperrors "github.com/popcornroulette/api/internal/errors"
	"github.com/popcornroulette/api/internal/models"
	"github.com/popcornroulette/api/internal/repository"
	"github.com/popcornroulette/api/internal/vocab"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Pagination holds list pagination metadata
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// ListResponse wraps one page of movies with pagination metadata
type ListResponse struct {
	Movies     []models.Movie `json:"movies"`
	Pagination Pagination     `json:"pagination"`
}

// CountResponse echoes the applied filters alongside the match count
type CountResponse struct {
	Total   int64       `json:"total"`
	Filters FiltersEcho `json:"filters"`
}

// FiltersEcho is the validated filter set echoed back to the caller
type FiltersEcho struct {
	Countries    []string `json:"countries,omitempty"`
	AgeRating    *string  `json:"age_rating,omitempty"`
	Genres       []string `json:"genres,omitempty"`
	MinRating    *float64 `json:"min_rating,omitempty"`
	MaxRating    *float64 `json:"max_rating,omitempty"`
	MinDuration  *int     `json:"min_duration,omitempty"`
	MaxDuration  *int     `json:"max_duration,omitempty"`
	MinYear      *int     `json:"min_year,omitempty"`
	MaxYear      *int     `json:"max_year,omitempty"`
	WhereToWatch []string `json:"where_to_watch,omitempty"`
}

// UpdateMovieRequest represents an administrative update request
type UpdateMovieRequest struct {
	Title         *string         `json:"title,omitempty"`
	TitlePtBr     *string         `json:"title_pt_br,omitempty"`
	OriginalTitle *string         `json:"original_title,omitempty"`
	Countries     []string        `json:"countries,omitempty"`
	AgeRating     *string         `json:"age_rating,omitempty"`
	Genres        []string        `json:"genres,omitempty"`
	ImdbRating    *string         `json:"imdb_rating,omitempty"`
	Duration      *int            `json:"duration,omitempty"`
	Year          *int            `json:"year,omitempty"`
	Directors     []string        `json:"directors,omitempty"`
	Cast          models.CastList `json:"cast,omitempty"`
	WhereToWatch  []string        `json:"where_to_watch,omitempty"`
	PosterURL     *string         `json:"poster_url,omitempty"`
	Synopsis      *string         `json:"synopsis,omitempty"`
	SynopsisPtBr  *string         `json:"synopsis_pt_br,omitempty"`
}

// parseFilters validates query parameters against the controlled
// vocabulary and builds the structured filter request. Set-valued
// parameters accept both repeated keys and comma-separated values.
func parseFilters(c *gin.Context) (repository.Filters, error) {
	var filters repository.Filters

	countries := queryList(c, "countries")
	for _, country := range countries {
		if !vocab.IsValidCountry(country) {
			return filters, apperrors.ValidationError("invalid country: " + country)
		}
	}
	filters.Countries = countries

	genres := queryList(c, "genres")
	for _, genre := range genres {
		if !vocab.IsValidGenre(genre) {
			return filters, apperrors.ValidationError("invalid genre: " + genre)
		}
	}
	filters.Genres = genres

	filters.WhereToWatch = queryList(c, "whereToWatch")

	if raw, ok := c.GetQuery("ageRating"); ok {
		ageRating, err := vocab.ParseAgeRating(raw)
		if err != nil {
			return filters, apperrors.ValidationError("invalid age rating: " + raw)
		}
		filters.AgeRating = &ageRating
	}

	var err error
	if filters.MinRating, err = queryFloat(c, "minRating"); err != nil {
		return filters, err
	}
	if filters.MaxRating, err = queryFloat(c, "maxRating"); err != nil {
		return filters, err
	}
	if filters.MinDuration, err = queryInt(c, "minDuration"); err != nil {
		return filters, err
	}
	if filters.MaxDuration, err = queryInt(c, "maxDuration"); err != nil {
		return filters, err
	}
	if filters.MinYear, err = queryInt(c, "minYear"); err != nil {
		return filters, err
	}
	if filters.MaxYear, err = queryInt(c, "maxYear"); err != nil {
		return filters, err
	}

	return filters, nil
}

// parsePagination reads page/limit with defaults of 1/20
func parsePagination(c *gin.Context) (int, int, error) {
	page := repository.DefaultPage
	limit := repository.DefaultLimit

	if raw, ok := c.GetQuery("page"); ok {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return 0, 0, apperrors.ValidationError("page must be a positive integer")
		}
		page = parsed
	}

	if raw, ok := c.GetQuery("limit"); ok {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return 0, 0, apperrors.ValidationError("limit must be a positive integer")
		}
		limit = parsed
	}

	return page, limit, nil
}

func queryList(c *gin.Context, key string) []string {
	var values []string
	for _, raw := range c.QueryArray(key) {
		for _, part := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				values = append(values, trimmed)
			}
		}
	}
	return values
}

func queryFloat(c *gin.Context, key string) (*float64, error) {
	raw, ok := c.GetQuery(key)
	if !ok {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperrors.ValidationError(key + " must be a number")
	}
	return &value, nil
}

func queryInt(c *gin.Context, key string) (*int, error) {
	raw, ok := c.GetQuery(key)
	if !ok {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperrors.ValidationError(key + " must be an integer")
	}
	return &value, nil
}

// echoFilters projects the validated filters for response payloads
func echoFilters(filters repository.Filters) FiltersEcho {
	echo := FiltersEcho{
		Countries:    filters.Countries,
		Genres:       filters.Genres,
		MinRating:    filters.MinRating,
		MaxRating:    filters.MaxRating,
		MinDuration:  filters.MinDuration,
		MaxDuration:  filters.MaxDuration,
		MinYear:      filters.MinYear,
		MaxYear:      filters.MaxYear,
		WhereToWatch: filters.WhereToWatch,
	}
	if filters.AgeRating != nil {
		rating := string(*filters.AgeRating)
		echo.AgeRating = &rating
	}
	return echo
}
