package scraper

import "sort"

// YearRange bounds one discovery pass by release year, inclusive
type YearRange struct {
	Start int
	End   int
}

// SingleYear reports whether the range covers exactly one year
func (r YearRange) SingleYear() bool {
	return r.Start == r.End
}

// Contains checks if a year falls within the range bounds
func (r YearRange) Contains(year int) bool {
	return year >= r.Start && year <= r.End
}

// Plan is an ordered list of year ranges defining the scope of one
// ingestion run, with a page ceiling bounding crawl depth per range
type Plan struct {
	Name     string
	Ranges   []YearRange
	MaxPages int
}

// defaultMaxPages bounds crawl depth when a plan does not set its own ceiling
const defaultMaxPages = 500

// plans maps a mode name to its fixed crawl plan. Ranges are crawled
// strictly in the order listed.
var plans = map[string]Plan{
	"recent": {
		Name: "recent",
		Ranges: []YearRange{
			{Start: 2024, End: 2026},
			{Start: 2021, End: 2023},
		},
	},
	"decade": {
		Name: "decade",
		Ranges: []YearRange{
			{Start: 2024, End: 2026},
			{Start: 2021, End: 2023},
			{Start: 2020, End: 2020},
		},
	},
	"all": {
		Name: "all",
		Ranges: []YearRange{
			{Start: 2024, End: 2026},
			{Start: 2022, End: 2023},
			{Start: 2020, End: 2021},
			{Start: 2018, End: 2019},
			{Start: 2016, End: 2017},
			{Start: 2014, End: 2015},
			{Start: 2012, End: 2013},
			{Start: 2010, End: 2011},
			{Start: 2008, End: 2009},
			{Start: 2006, End: 2007},
			{Start: 2004, End: 2005},
			{Start: 2002, End: 2003},
			{Start: 2000, End: 2001},
		},
	},
	"modern": {
		Name: "modern",
		Ranges: []YearRange{
			{Start: 1995, End: 1999},
			{Start: 1990, End: 1994},
		},
	},
	"golden-era": {
		Name: "golden-era",
		Ranges: []YearRange{
			{Start: 1985, End: 1989},
			{Start: 1980, End: 1984},
			{Start: 1970, End: 1979},
			{Start: 1960, End: 1969},
			{Start: 1950, End: 1959},
			{Start: 1940, End: 1949},
		},
	},
}

// PlanByName returns the fixed crawl plan for a named mode
func PlanByName(name string) (Plan, bool) {
	plan, ok := plans[name]
	if !ok {
		return Plan{}, false
	}
	if plan.MaxPages <= 0 {
		plan.MaxPages = defaultMaxPages
	}
	return plan, true
}

// PlanNames returns all known mode names in sorted order
func PlanNames() []string {
	names := make([]string, 0, len(plans))
	for name := range plans {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
