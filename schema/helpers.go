package schema

// YearsOf returns the keys of an annual series, which double as the year selector options.
func YearsOf(s DenseSeries) []int {
	return s.Keys()
}
