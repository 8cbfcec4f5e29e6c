package outwriter

import (
	"os"

	"github.com/huangsam/libstats/internal/contract"
	"golang.org/x/term"
)

// Bar width bounds for the text table.
const (
	minBarWidth = 10
	maxBarWidth = 50
)

// GetMaxBarWidth calculates the width of the inline bar column in table output
// based on terminal width and table configuration.
func GetMaxBarWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Period + Count + Share + Level columns, borders and padding
	baseWidth := 45

	available := termWidth - baseWidth
	if available < minBarWidth {
		return minBarWidth
	}
	if available > maxBarWidth {
		return maxBarWidth
	}
	return available
}
