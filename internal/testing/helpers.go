package testing

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/popcornroulette/api/internal/models"
	"github.com/popcornroulette/api/internal/vocab"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// movieSeq keeps generated titles unique; titles share a unique index with year
var movieSeq atomic.Int64

// TestDB creates an in-memory SQLite database for testing
func TestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := db.AutoMigrate(&models.Movie{}); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

// CleanupDB removes all records from test database tables
func CleanupDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	db.Exec("DELETE FROM movies")
}

// CreateMovie creates a test movie with sensible defaults, applying any overrides
func CreateMovie(db *gorm.DB, overrides ...func(*models.Movie)) *models.Movie {
	year := 2020
	duration := 120
	imdbRating := "7.5"
	movie := &models.Movie{
		Title:        fmt.Sprintf("Test Movie %d", movieSeq.Add(1)),
		Countries:    models.StringList{"USA"},
		AgeRating:    vocab.RatingTwelve,
		Genres:       models.StringList{"Action"},
		ImdbRating:   &imdbRating,
		Duration:     &duration,
		Year:         &year,
		Directors:    models.StringList{"Test Director"},
		Cast:         models.CastList{{Name: "Test Actor", Role: "Lead"}},
		WhereToWatch: models.StringList{"Netflix"},
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	for _, override := range overrides {
		override(movie)
	}

	db.Create(movie)
	return movie
}
