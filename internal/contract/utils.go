package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Level label constants, relative to the peak of a series.
const (
	PeakValue     = "Peak"     // Peak value
	HighValue     = "High"     // High value
	ModerateValue = "Moderate" // Moderate value
	LowValue      = "Low"      // Low value
	NoneValue     = "None"     // No borrowings at all
)

// Color variables for console output.
var (
	PeakColor     = color.New(color.FgGreen, color.Bold) // PeakColor marks the busiest period.
	HighColor     = color.New(color.FgCyan, color.Bold)  // HighColor marks strong activity.
	ModerateColor = color.New(color.FgYellow)            // ModerateColor marks middling activity.
	LowColor      = color.New(color.FgMagenta)           // LowColor marks weak activity.
	NoneColor     = color.New(color.FgHiBlack)           // NoneColor marks zero-filled periods.
	BarColor      = color.New(color.FgCyan)              // BarColor paints the inline bars.
)

// GetPlainLabel returns a plain text label for a count relative to the series peak.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(count, peak int) string {
	if count <= 0 || peak <= 0 {
		return NoneValue
	}
	share := float64(count) / float64(peak) * 100
	switch {
	case share >= 100:
		return PeakValue
	case share >= 60:
		return HighValue
	case share >= 30:
		return ModerateValue
	default:
		return LowValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(count, peak int) string {
	text := GetPlainLabel(count, peak)

	switch text {
	case PeakValue:
		return PeakColor.Sprint(text)
	case HighValue:
		return HighColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	case LowValue:
		return LowColor.Sprint(text)
	default:
		return NoneColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for the series cache.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".libstats_cache.db"
	}
	return filepath.Join(homeDir, ".libstats_cache.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for fetch history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".libstats_history.db"
	}
	return filepath.Join(homeDir, ".libstats_history.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
