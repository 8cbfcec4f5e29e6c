package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching and history.
	DatabaseBackend string

	// SeriesKind identifies which series a fetch produced.
	SeriesKind string

	// FetchStatus is the outcome of one fetch attempt.
	FetchStatus string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
	HTMLOut    OutputMode = "html"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All series kinds.
const (
	AnnualSeries  SeriesKind = "annual"
	MonthlySeries SeriesKind = "monthly"
)

// All fetch outcomes.
const (
	FetchOK     FetchStatus = "ok"
	FetchFailed FetchStatus = "failed"
	FetchStale  FetchStatus = "stale" // superseded by a newer year selection
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
	HTMLOut:    {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// MonthLabels are the x-axis labels of the monthly chart.
var MonthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// ChartTitle is shared by both charts.
const ChartTitle = "Book Borrowing Statistics"

// SeriesLabel names the single dataset in each chart.
const SeriesLabel = "Books Borrowed"
