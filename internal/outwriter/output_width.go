// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"github.com/salecast/salecast/internal/contract"
	"golang.org/x/term"
)

// GetMaxFeatureColumns calculates how many windowed feature columns fit
// in the text table based on terminal width.
func GetMaxFeatureColumns(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed Date and Sales columns with borders/padding
	baseWidth := 28

	// Each feature column needs room for its header and a formatted value
	colWidth := 18

	available := (termWidth - baseWidth) / colWidth
	if available < 2 {
		// Always show at least a couple of feature columns
		return 2
	}
	if available > 8 {
		// Cap the spread; full detail belongs in CSV/parquet output
		return 8
	}
	return available
}
