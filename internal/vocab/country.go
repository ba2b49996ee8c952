package vocab

import "sort"

// countryNames maps ISO 3166-1 alpha-2 codes from the metadata provider
// to the canonical country names stored in the catalog
var countryNames = map[string]string{
	"US": "USA",
	"BR": "Brazil",
	"KR": "South Korea",
	"GB": "UK",
	"FR": "France",
	"JP": "Japan",
	"CA": "Canada",
	"MX": "Mexico",
	"AR": "Argentina",
	"CO": "Colombia",
	"DE": "Germany",
	"IT": "Italy",
	"ES": "Spain",
	"PT": "Portugal",
	"IE": "Ireland",
	"SE": "Sweden",
	"NO": "Norway",
	"DK": "Denmark",
	"NL": "Netherlands",
	"CN": "China",
	"IN": "India",
	"HK": "Hong Kong",
	"TH": "Thailand",
	"AU": "Australia",
	"NZ": "New Zealand",
	"TR": "Turkey",
	"IL": "Israel",
	"ZA": "South Africa",
	"NG": "Nigeria",
}

// CountryName maps a provider country code to its canonical name
func CountryName(code string) (string, bool) {
	name, ok := countryNames[code]
	return name, ok
}

// Countries returns all canonical country names in sorted order
func Countries() []string {
	names := make([]string, 0, len(countryNames))
	for _, name := range countryNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsValidCountry checks if a name is a canonical country name
func IsValidCountry(name string) bool {
	for _, canonical := range countryNames {
		if canonical == name {
			return true
		}
	}
	return false
}
