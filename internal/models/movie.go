package models

import (
	"time"

	"github.com/popcornroulette/api/internal/vocab"
)

// Movie represents a canonical catalog record imported from the metadata provider
type Movie struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Title         string          `gorm:"type:varchar(255);not null;uniqueIndex:idx_movies_unique" json:"title"`
	TitlePtBr     *string         `gorm:"type:varchar(255)" json:"title_pt_br,omitempty"`
	OriginalTitle *string         `gorm:"type:varchar(255)" json:"original_title,omitempty"`
	Countries     StringList      `gorm:"type:text;not null" json:"countries"`
	AgeRating     vocab.AgeRating `gorm:"type:varchar(4);not null" json:"age_rating"`
	Genres        StringList      `gorm:"type:text;not null" json:"genres"`
	ImdbRating    *string         `gorm:"type:varchar(5)" json:"imdb_rating,omitempty"`
	Duration      *int            `json:"duration,omitempty"`
	Year          *int            `gorm:"index:idx_movies_year;uniqueIndex:idx_movies_unique" json:"year,omitempty"`
	Directors     StringList      `gorm:"type:text;not null" json:"directors"`
	Cast          CastList        `gorm:"type:text" json:"cast"`
	WhereToWatch  StringList      `gorm:"type:text;not null" json:"where_to_watch"`
	PosterURL     *string         `gorm:"type:text" json:"poster_url,omitempty"`
	Synopsis      *string         `gorm:"type:text" json:"synopsis,omitempty"`
	SynopsisPtBr  *string         `gorm:"type:text" json:"synopsis_pt_br,omitempty"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`
}

// TableName specifies the table name for Movie
func (Movie) TableName() string {
	return "movies"
}
