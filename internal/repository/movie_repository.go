package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/popcornroulette/api/internal/models"
	"gorm.io/gorm"
)

// Default pagination values for the list operation
const (
	DefaultPage  = 1
	DefaultLimit = 20
)

// MovieRepository provides catalog access over a relational store
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a repository bound to a database handle
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// Random picks one movie matching the filters under uniform-random
// ordering. Returns (nil, nil) when nothing matches.
func (r *MovieRepository) Random(filters Filters) (*models.Movie, error) {
	var movie models.Movie
	err := r.apply(filters).Order("RANDOM()").Limit(1).First(&movie).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to pick random movie: %w", err)
	}
	return &movie, nil
}

// Count returns the number of movies matching the filters
func (r *MovieRepository) Count(filters Filters) (int64, error) {
	var count int64
	if err := r.apply(filters).Model(&models.Movie{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	return count, nil
}

// List returns one page of movies matching the filters plus the total
// matching count. Non-positive page and limit fall back to the defaults.
func (r *MovieRepository) List(filters Filters, page, limit int) ([]models.Movie, int64, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	total, err := r.Count(filters)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit

	var movies []models.Movie
	if err := r.apply(filters).Limit(limit).Offset(offset).Find(&movies).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list movies: %w", err)
	}

	return movies, total, nil
}

// Create inserts a movie. A natural-key collision on (title, year)
// surfaces as gorm.ErrDuplicatedKey. Undated movies sit outside the unique
// index (SQL NULLs never compare equal), so those are pre-checked by title
// to keep re-scrapes idempotent.
func (r *MovieRepository) Create(movie *models.Movie) error {
	if movie.Year == nil {
		var count int64
		err := r.db.Model(&models.Movie{}).
			Where("title = ? AND year IS NULL", movie.Title).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to check for existing movie: %w", err)
		}
		if count > 0 {
			return gorm.ErrDuplicatedKey
		}
	}

	return r.db.Create(movie).Error
}

// FindByID returns a movie by its identifier, or (nil, nil) when absent
func (r *MovieRepository) FindByID(id uint) (*models.Movie, error) {
	var movie models.Movie
	err := r.db.First(&movie, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find movie %d: %w", id, err)
	}
	return &movie, nil
}

// Update applies column updates to a movie and returns the updated row,
// or (nil, nil) when the movie does not exist
func (r *MovieRepository) Update(id uint, updates map[string]interface{}) (*models.Movie, error) {
	result := r.db.Model(&models.Movie{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update movie %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByID(id)
}

// Delete removes a movie; the bool reports whether a row was deleted
func (r *MovieRepository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&models.Movie{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete movie %d: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// apply composes the filter predicates into one query. Each set filter
// contributes an overlap condition, each bound an inclusive comparison,
// all combined with AND. With no filters set the query is unrestricted.
func (r *MovieRepository) apply(filters Filters) *gorm.DB {
	query := r.db.Model(&models.Movie{})

	query = listOverlap(query, "countries", filters.Countries)
	query = listOverlap(query, "genres", filters.Genres)
	query = listOverlap(query, "where_to_watch", filters.WhereToWatch)

	if filters.AgeRating != nil {
		query = query.Where("age_rating = ?", *filters.AgeRating)
	}

	if filters.MinRating != nil {
		query = query.Where("CAST(imdb_rating AS DECIMAL) >= ?", *filters.MinRating)
	}
	if filters.MaxRating != nil {
		query = query.Where("CAST(imdb_rating AS DECIMAL) <= ?", *filters.MaxRating)
	}

	if filters.MinDuration != nil {
		query = query.Where("duration >= ?", *filters.MinDuration)
	}
	if filters.MaxDuration != nil {
		query = query.Where("duration <= ?", *filters.MaxDuration)
	}

	if filters.MinYear != nil {
		query = query.Where("year >= ?", *filters.MinYear)
	}
	if filters.MaxYear != nil {
		query = query.Where("year <= ?", *filters.MaxYear)
	}

	return query
}

// listOverlap adds a set-overlap condition: the row matches when its
// JSON-encoded list column contains at least one of the requested values.
// Matching the quoted JSON token is exact and works the same on PostgreSQL
// and SQLite.
func listOverlap(query *gorm.DB, column string, values []string) *gorm.DB {
	if len(values) == 0 {
		return query
	}

	conditions := make([]string, len(values))
	args := make([]interface{}, len(values))
	for i, value := range values {
		conditions[i] = column + ` LIKE ? ESCAPE '\'`
		args[i] = `%"` + escapeLike(value) + `"%`
	}

	return query.Where(strings.Join(conditions, " OR "), args...)
}

// escapeLike neutralizes LIKE wildcards in a filter value. Provider names
// arrive free-form from the API, so a literal % or _ must not widen the match.
func escapeLike(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `%`, `\%`)
	return strings.ReplaceAll(value, `_`, `\_`)
}
