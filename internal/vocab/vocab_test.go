package vocab

import (
	"sort"
	"testing"
)

func TestParseAgeRating(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected AgeRating
		wantErr  bool
	}{
		{"free", "L", RatingFree, false},
		{"ten", "10+", RatingTen, false},
		{"twelve", "12+", RatingTwelve, false},
		{"eighteen", "18+", RatingEighteen, false},
		{"unknown value", "PG-13", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rating, err := ParseAgeRating(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for '%s'", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if rating != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, rating)
			}
		})
	}
}

func TestAgeRatingsOrder(t *testing.T) {
	ratings := AgeRatings()

	expected := []AgeRating{RatingFree, RatingTen, RatingTwelve, RatingFourteen, RatingSixteen, RatingEighteen}
	if len(ratings) != len(expected) {
		t.Fatalf("expected %d ratings, got %d", len(expected), len(ratings))
	}
	for i, r := range expected {
		if ratings[i] != r {
			t.Errorf("position %d: expected %s, got %s", i, r, ratings[i])
		}
	}
}

func TestCountryName(t *testing.T) {
	tests := []struct {
		code     string
		expected string
		found    bool
	}{
		{"US", "USA", true},
		{"BR", "Brazil", true},
		{"GB", "UK", true},
		{"KR", "South Korea", true},
		{"XX", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		name, ok := CountryName(tt.code)
		if ok != tt.found {
			t.Errorf("CountryName(%q): expected found=%v, got %v", tt.code, tt.found, ok)
			continue
		}
		if name != tt.expected {
			t.Errorf("CountryName(%q): expected %q, got %q", tt.code, tt.expected, name)
		}
	}
}

func TestCountriesSorted(t *testing.T) {
	countries := Countries()

	if len(countries) == 0 {
		t.Fatal("expected non-empty country list")
	}
	if !sort.StringsAreSorted(countries) {
		t.Error("expected sorted country list")
	}
	if !IsValidCountry(countries[0]) {
		t.Errorf("expected '%s' to be a valid country", countries[0])
	}
	if IsValidCountry("Atlantis") {
		t.Error("expected 'Atlantis' to be invalid")
	}
}

func TestGenreName(t *testing.T) {
	name, ok := GenreName("Science Fiction")
	if !ok || name != "Science Fiction" {
		t.Errorf("expected 'Science Fiction', got '%s' (found=%v)", name, ok)
	}

	if _, ok := GenreName("Slasher"); ok {
		t.Error("expected 'Slasher' to be unmapped")
	}
}

func TestGenresSorted(t *testing.T) {
	genres := Genres()

	if len(genres) == 0 {
		t.Fatal("expected non-empty genre list")
	}
	if !sort.StringsAreSorted(genres) {
		t.Error("expected sorted genre list")
	}
	if !IsValidGenre("Action") {
		t.Error("expected 'Action' to be valid")
	}
	if IsValidGenre("action") {
		t.Error("expected genre validation to be case sensitive")
	}
}

func TestCertificationRating(t *testing.T) {
	tests := []struct {
		country  string
		cert     string
		expected AgeRating
		found    bool
	}{
		{"BR", "L", RatingFree, true},
		{"BR", "14", RatingFourteen, true},
		{"US", "R", RatingEighteen, true},
		{"US", "PG-13", RatingTwelve, true},
		{"GB", "12A", RatingTwelve, true},
		{"BR", "PG-13", "", false},
		{"XX", "12", "", false},
	}

	for _, tt := range tests {
		rating, ok := CertificationRating(tt.country, tt.cert)
		if ok != tt.found {
			t.Errorf("CertificationRating(%q, %q): expected found=%v, got %v", tt.country, tt.cert, tt.found, ok)
			continue
		}
		if rating != tt.expected {
			t.Errorf("CertificationRating(%q, %q): expected %s, got %s", tt.country, tt.cert, tt.expected, rating)
		}
	}
}

func TestCertificationCountries(t *testing.T) {
	codes := CertificationCountries()

	if !sort.StringsAreSorted(codes) {
		t.Error("expected sorted country codes")
	}
	if !HasCertificationTable("BR") {
		t.Error("expected BR to have a certification table")
	}
	if HasCertificationTable("XX") {
		t.Error("expected XX to have no certification table")
	}
}
