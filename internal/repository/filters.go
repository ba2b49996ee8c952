package repository

import "github.com/popcornroulette/api/internal/vocab"

// Filters is the structured filter request applied uniformly to the
// random-pick, count and list operations. Every field is optional;
// a nil or empty field contributes no constraint.
type Filters struct {
	Countries    []string
	AgeRating    *vocab.AgeRating
	Genres       []string
	MinRating    *float64
	MaxRating    *float64
	MinDuration  *int
	MaxDuration  *int
	MinYear      *int
	MaxYear      *int
	WhereToWatch []string
}

// IsEmpty reports whether no filter field is set
func (f Filters) IsEmpty() bool {
	return len(f.Countries) == 0 &&
		f.AgeRating == nil &&
		len(f.Genres) == 0 &&
		f.MinRating == nil &&
		f.MaxRating == nil &&
		f.MinDuration == nil &&
		f.MaxDuration == nil &&
		f.MinYear == nil &&
		f.MaxYear == nil &&
		len(f.WhereToWatch) == 0
}
