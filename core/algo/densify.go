package algo

import "github.com/huangsam/libstats/schema"

// Densify expands a sparse series into one point per key of the domain,
// in ascending key order. Keys missing from the input get a zero count and
// keys outside the domain are ignored. When the input repeats a key, the
// last occurrence wins.
func Densify(domain schema.Domain, sparse schema.SparseSeries) schema.DenseSeries {
	n := domain.Len()
	dense := make(schema.DenseSeries, n)
	for i := range n {
		dense[i] = schema.CountPoint{Key: domain.Start + i}
	}
	for _, p := range sparse {
		if !domain.Contains(p.Key) {
			continue
		}
		dense[p.Key-domain.Start].Count = p.Count
	}
	return dense
}

// Dropped returns the points of a sparse series that Densify would ignore.
func Dropped(domain schema.Domain, sparse schema.SparseSeries) []schema.CountPoint {
	var out []schema.CountPoint
	for _, p := range sparse {
		if !domain.Contains(p.Key) {
			out = append(out, p)
		}
	}
	return out
}

// DensifyAnnual densifies an annual series over schema.AnnualDomain.
func DensifyAnnual(sparse schema.SparseSeries) schema.DenseSeries {
	return Densify(schema.AnnualDomain, sparse)
}

// DensifyMonthly densifies a single year's monthly series over schema.MonthlyDomain.
// Months outside 1-12 are ignored rather than written past the end of the year.
func DensifyMonthly(sparse schema.SparseSeries) schema.DenseSeries {
	return Densify(schema.MonthlyDomain, sparse)
}
