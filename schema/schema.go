// Package schema has models, constants and shared types for all parts of libstats.
package schema

// CountPoint is a single borrow count observation.
// Key is a calendar year for annual series and a month (1-12) for monthly series.
type CountPoint struct {
	Key   int `json:"_id"`
	Count int `json:"count"`
}

// SparseSeries is a partial set of observations as returned by the counts API.
// Order is arbitrary and keys of the expected domain may be missing.
type SparseSeries []CountPoint

// DenseSeries covers every key of a Domain exactly once, ascending by key.
type DenseSeries []CountPoint

// Domain is an inclusive range of series keys.
type Domain struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of keys in the domain.
func (d Domain) Len() int {
	if d.End < d.Start {
		return 0
	}
	return d.End - d.Start + 1
}

// Contains reports whether key lies within the domain.
func (d Domain) Contains(key int) bool {
	return key >= d.Start && key <= d.End
}

// Clamp moves key into the domain when it falls outside of it.
func (d Domain) Clamp(key int) int {
	return min(max(key, d.Start), d.End)
}

// Fixed domains for the two series the dashboard shows.
var (
	AnnualDomain  = Domain{Start: 2020, End: 2025}
	MonthlyDomain = Domain{Start: 1, End: 12}
)

// Keys returns the keys of a series in order.
func (s DenseSeries) Keys() []int {
	keys := make([]int, len(s))
	for i, p := range s {
		keys[i] = p.Key
	}
	return keys
}

// Counts returns the counts of a series in order.
func (s DenseSeries) Counts() []int {
	counts := make([]int, len(s))
	for i, p := range s {
		counts[i] = p.Count
	}
	return counts
}
