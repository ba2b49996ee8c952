package vocab

import "fmt"

// AgeRating represents a canonical age rating value
type AgeRating string

const (
	RatingFree     AgeRating = "L"
	RatingTen      AgeRating = "10+"
	RatingTwelve   AgeRating = "12+"
	RatingFourteen AgeRating = "14+"
	RatingSixteen  AgeRating = "16+"
	RatingEighteen AgeRating = "18+"
)

// ageRatingOrder lists all canonical ratings from least to most restrictive
var ageRatingOrder = []AgeRating{
	RatingFree,
	RatingTen,
	RatingTwelve,
	RatingFourteen,
	RatingSixteen,
	RatingEighteen,
}

// AgeRatings returns all canonical age ratings in ascending restrictiveness order
func AgeRatings() []AgeRating {
	ratings := make([]AgeRating, len(ageRatingOrder))
	copy(ratings, ageRatingOrder)
	return ratings
}

// ParseAgeRating validates a raw string against the canonical age rating enum
func ParseAgeRating(raw string) (AgeRating, error) {
	for _, rating := range ageRatingOrder {
		if string(rating) == raw {
			return rating, nil
		}
	}
	return "", fmt.Errorf("invalid age rating: %s", raw)
}

// IsValidAgeRating checks if a raw string is a canonical age rating
func IsValidAgeRating(raw string) bool {
	_, err := ParseAgeRating(raw)
	return err == nil
}
