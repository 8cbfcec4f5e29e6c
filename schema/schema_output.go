package schema

import (
	"strconv"
	"time"
)

// SeriesResult is a densified series together with where it came from.
type SeriesResult struct {
	Kind      SeriesKind  `json:"kind"`
	Year      int         `json:"year,omitempty"`
	Domain    Domain      `json:"domain"`
	Points    DenseSeries `json:"points"`
	FetchedAt time.Time   `json:"fetched_at"`
	Cached    bool        `json:"cached"` // served from the series cache after a failed fetch
}

// DashboardResult is the full rendering model: both charts plus the year selector.
type DashboardResult struct {
	SelectedYear int          `json:"selected_year"`
	YearOptions  []int        `json:"year_options"`
	Annual       SeriesResult `json:"annual"`
	Monthly      SeriesResult `json:"monthly"`
}

// Total sums all counts of a series.
func (s DenseSeries) Total() int {
	total := 0
	for _, p := range s {
		total += p.Count
	}
	return total
}

// Peak returns the point with the largest count. Ties go to the earliest key.
// The zero CountPoint is returned for an empty series.
func (s DenseSeries) Peak() CountPoint {
	var peak CountPoint
	for i, p := range s {
		if i == 0 || p.Count > peak.Count {
			peak = p
		}
	}
	return peak
}

// Label returns the display label of a point for the given series kind.
func (p CountPoint) Label(kind SeriesKind) string {
	if kind == MonthlySeries && MonthlyDomain.Contains(p.Key) {
		return MonthLabels[p.Key-1]
	}
	return strconv.Itoa(p.Key)
}
