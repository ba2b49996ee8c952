package vocab

import "sort"

// certificationRatings maps per-country raw certification strings to
// canonical age ratings. Only countries listed here can contribute to
// age rating resolution.
var certificationRatings = map[string]map[string]AgeRating{
	"BR": {
		"L":  RatingFree,
		"10": RatingTen,
		"12": RatingTwelve,
		"14": RatingFourteen,
		"16": RatingSixteen,
		"18": RatingEighteen,
	},
	"US": {
		"G":     RatingFree,
		"PG":    RatingTen,
		"PG-13": RatingTwelve,
		"R":     RatingEighteen,
		"NC-17": RatingEighteen,
	},
	"GB": {
		"U":   RatingFree,
		"PG":  RatingTen,
		"12":  RatingTwelve,
		"12A": RatingTwelve,
		"15":  RatingSixteen,
		"18":  RatingEighteen,
	},
	"FR": {
		"U":  RatingFree,
		"10": RatingTen,
		"12": RatingTwelve,
		"16": RatingSixteen,
		"18": RatingEighteen,
	},
	"DE": {
		"0":  RatingFree,
		"6":  RatingTen,
		"12": RatingTwelve,
		"16": RatingSixteen,
		"18": RatingEighteen,
	},
	"JP": {
		"G":    RatingFree,
		"PG12": RatingTwelve,
		"R15+": RatingSixteen,
		"R18+": RatingEighteen,
	},
	"KR": {
		"All": RatingFree,
		"12":  RatingTwelve,
		"15":  RatingFourteen,
		"19":  RatingEighteen,
	},
	"ES": {
		"APTA": RatingFree,
		"7":    RatingTen,
		"12":   RatingTwelve,
		"16":   RatingSixteen,
		"18":   RatingEighteen,
	},
	"PT": {
		"M/3":  RatingFree,
		"M/6":  RatingTen,
		"M/12": RatingTwelve,
		"M/14": RatingFourteen,
		"M/16": RatingSixteen,
		"M/18": RatingEighteen,
	},
	"AU": {
		"G":     RatingFree,
		"PG":    RatingTen,
		"M":     RatingFourteen,
		"MA15+": RatingSixteen,
		"R18+":  RatingEighteen,
	},
	"CA": {
		"G":   RatingFree,
		"PG":  RatingTen,
		"14A": RatingFourteen,
		"18A": RatingEighteen,
		"R":   RatingEighteen,
	},
	"IT": {
		"T":    RatingFree,
		"VM14": RatingFourteen,
		"VM18": RatingEighteen,
	},
	"NL": {
		"AL": RatingFree,
		"6":  RatingTen,
		"9":  RatingTen,
		"12": RatingTwelve,
		"16": RatingSixteen,
		"18": RatingEighteen,
	},
}

// CertificationRating maps a raw certification string for a given country
// code to its canonical age rating
func CertificationRating(countryCode, certification string) (AgeRating, bool) {
	table, ok := certificationRatings[countryCode]
	if !ok {
		return "", false
	}
	rating, ok := table[certification]
	return rating, ok
}

// HasCertificationTable checks if a country code has a known certification table
func HasCertificationTable(countryCode string) bool {
	_, ok := certificationRatings[countryCode]
	return ok
}

// CertificationCountries returns all country codes with a certification
// table in sorted order, so fallback iteration is deterministic
func CertificationCountries() []string {
	codes := make([]string, 0, len(certificationRatings))
	for code := range certificationRatings {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
