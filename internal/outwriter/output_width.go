package outwriter

import (
	"os"

	"github.com/huangsam/reviewers/internal/contract"
	"golang.org/x/term"
)

// Width bounds for the variable table and listing columns.
const (
	defaultTermWidth = 80 // Conservative default for narrow terminals and CI
	minColumnWidth   = 15
	maxReviewerWidth = 50
	lineGutterWidth  = 7 // "NNNN | "
)

// stdoutIsTerminal reports whether stdout is an interactive terminal.
var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// getTermWidth returns the width override, or the detected stdout width.
func getTermWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return defaultTermWidth
	}
	return detectedWidth
}

// GetMaxReviewerWidth calculates the maximum width for reviewer names in table output
// based on terminal width and table configuration.
func GetMaxReviewerWidth(cfg *contract.Config) int {
	// Rank + Lines + Share + Label, plus borders and padding
	baseWidth := 45

	available := getTermWidth(cfg) - baseWidth
	if available < minColumnWidth {
		return minColumnWidth
	}
	if available > maxReviewerWidth {
		return maxReviewerWidth
	}
	return available
}

// GetMaxCodeWidth calculates the maximum width for code text in a contributor listing.
// Code is only truncated for a terminal or an explicit width; 0 means no limit.
func GetMaxCodeWidth(cfg *contract.Config) int {
	if cfg.OutputFile != "" {
		return 0
	}
	if cfg.Width <= 0 && !stdoutIsTerminal() {
		return 0
	}
	available := getTermWidth(cfg) - lineGutterWidth
	if available < minColumnWidth {
		return minColumnWidth
	}
	return available
}
