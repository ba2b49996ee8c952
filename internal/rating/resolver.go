package rating

import (
	"strings"

	"github.com/popcornroulette/api/internal/vocab"
)

const (
	// homeCountry is the primary market whose classification wins when present
	homeCountry = "BR"

	// secondaryCountry is consulted when the home market has no usable classification
	secondaryCountry = "US"
)

// DefaultRating is returned when no certification resolves anywhere
const DefaultRating = vocab.RatingTwelve

// Resolve produces one canonical age rating from raw per-country
// certification data. Countries are consulted in a fixed priority order:
// the home market first, then the secondary market, then the production
// countries in the order supplied, then every remaining country with a
// known certification table. When nothing resolves, DefaultRating is
// returned so an import never fails for missing classification.
func Resolve(certifications map[string][]string, productionCountries []string) vocab.AgeRating {
	if rating, ok := resolveCountry(certifications, homeCountry); ok {
		return rating
	}

	if rating, ok := resolveCountry(certifications, secondaryCountry); ok {
		return rating
	}

	tried := map[string]bool{homeCountry: true, secondaryCountry: true}

	for _, code := range productionCountries {
		if !vocab.HasCertificationTable(code) {
			continue
		}
		tried[code] = true
		if rating, ok := resolveCountry(certifications, code); ok {
			return rating
		}
	}

	for _, code := range vocab.CertificationCountries() {
		if tried[code] {
			continue
		}
		if rating, ok := resolveCountry(certifications, code); ok {
			return rating
		}
	}

	return DefaultRating
}

// resolveCountry returns the first certification entry for a country that
// maps to a canonical rating. Entries that do not map are skipped.
func resolveCountry(certifications map[string][]string, countryCode string) (vocab.AgeRating, bool) {
	for _, raw := range certifications[countryCode] {
		cert := strings.TrimSpace(raw)
		if cert == "" {
			continue
		}
		if rating, ok := vocab.CertificationRating(countryCode, cert); ok {
			return rating, true
		}
	}
	return "", false
}
