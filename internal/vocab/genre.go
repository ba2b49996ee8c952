package vocab

import "sort"

// canonicalGenres is the fixed genre vocabulary accepted by the catalog,
// keyed by the genre names the metadata provider emits
var canonicalGenres = map[string]string{
	"Action":          "Action",
	"Adventure":       "Adventure",
	"Animation":       "Animation",
	"Comedy":          "Comedy",
	"Crime":           "Crime",
	"Documentary":     "Documentary",
	"Drama":           "Drama",
	"Family":          "Family",
	"Fantasy":         "Fantasy",
	"History":         "History",
	"Horror":          "Horror",
	"Music":           "Music",
	"Mystery":         "Mystery",
	"Romance":         "Romance",
	"Science Fiction": "Science Fiction",
	"TV Movie":        "TV Movie",
	"Thriller":        "Thriller",
	"War":             "War",
	"Western":         "Western",
}

// GenreName maps a provider genre name to its canonical form
func GenreName(raw string) (string, bool) {
	name, ok := canonicalGenres[raw]
	return name, ok
}

// Genres returns all canonical genre names in sorted order
func Genres() []string {
	names := make([]string, 0, len(canonicalGenres))
	for _, name := range canonicalGenres {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsValidGenre checks if a name is a canonical genre
func IsValidGenre(name string) bool {
	_, ok := canonicalGenres[name]
	return ok
}
