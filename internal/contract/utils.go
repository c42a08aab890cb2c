package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/reviewers/schema"
)

// Color variables for console output.
var (
	PrimaryColor   = color.New(color.FgGreen, color.Bold) // PrimaryColor marks the owners of most changed lines.
	SecondaryColor = color.New(color.FgYellow)            // SecondaryColor marks a sizable share.
	MinorColor     = color.New(color.FgCyan)              // MinorColor marks an informational share.
	HeaderColor    = color.New(color.FgMagenta, color.Bold)
	GapColor       = color.New(color.FgHiBlack)

	AddedColor    = color.New(color.FgGreen)
	DeletedColor  = color.New(color.FgRed)
	ModifiedColor = color.New(color.FgYellow)
	OtherColor    = color.New(color.FgHiBlue) // Renames, copies and unknown changes
)

// GetColorLabel returns a colored share label for console output (table).
// It uses schema.GetPlainLabel thresholds, and then applies the appropriate color.
func GetColorLabel(label string) string {
	switch label {
	case schema.PrimaryLabel:
		return PrimaryColor.Sprint(label)
	case schema.SecondaryLabel:
		return SecondaryColor.Sprint(label)
	default:
		return MinorColor.Sprint(label)
	}
}

// GetChangeColor returns the color used for a change type in the change summary.
func GetChangeColor(changeType schema.ChangeType) *color.Color {
	switch changeType {
	case schema.AddedChange:
		return AddedColor
	case schema.DeletedChange:
		return DeletedColor
	case schema.ModifiedChange:
		return ModifiedColor
	default:
		return OtherColor
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

// SplitLines splits command output into lines, dropping the trailing newline.
// Carriage returns left by CRLF output are removed.
func SplitLines(out []byte) []string {
	s := strings.TrimSuffix(string(out), "\n")
	if s == "" {
		return []string{}
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// ShouldIgnore returns true if the given path matches any of the exclude patterns.
// It supports simple glob patterns (using filepath.Match) when the pattern
// contains wildcard characters (*, ?, [ ]). Patterns ending with '/' are treated
// as prefixes. Patterns starting with '.' are treated as suffix (extension) matches.
// A user can provide patterns like "vendor/", "node_modules/", "*.min.js".
func ShouldIgnore(path string, excludes []string) bool {
	for _, ex := range excludes {
		ex = strings.TrimSpace(ex)
		if ex == "" {
			continue
		}

		if strings.ContainsAny(ex, "*?[") {
			pat := strings.ReplaceAll(ex, "**", "*")
			if ok, err := filepath.Match(pat, path); err == nil && ok {
				return true
			}
			// Also try matching against the base filename (e.g. *.min.js)
			if ok, err := filepath.Match(pat, filepath.Base(path)); err == nil && ok {
				return true
			}
			continue
		}

		switch {
		case strings.HasSuffix(ex, "/"):
			if strings.HasPrefix(path, ex) {
				return true
			}
		case strings.HasPrefix(ex, "."):
			if strings.HasSuffix(path, ex) {
				return true
			}
		case strings.Contains(path, ex):
			return true
		}
	}
	return false
}

// MatchesPathFilter reports whether path is selected by the user's path filters.
// An empty filter list selects everything. A filter selects the exact path,
// anything below it when it names a directory, or glob matches.
func MatchesPathFilter(path string, filters []string) bool {
	if len(filters) == 0 {
		return true
	}
	for _, f := range filters {
		switch {
		case f == "" || f == ".":
			return true
		case path == f:
			return true
		case strings.HasPrefix(path, strings.TrimSuffix(f, "/")+"/"):
			return true
		case strings.ContainsAny(f, "*?["):
			if ok, err := filepath.Match(f, path); err == nil && ok {
				return true
			}
		}
	}
	return false
}

// NormalizePathFilter makes a user-provided path relative to the repo root
// and ensures it's within the repository boundaries. Relative paths are
// resolved against workDir.
func NormalizePathFilter(repoPath, workDir, userPath string) (string, error) {
	if !filepath.IsAbs(userPath) {
		userPath = filepath.Join(workDir, userPath)
	}

	relPath, err := filepath.Rel(repoPath, filepath.Clean(userPath))
	if err != nil || relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path is outside repository: %s", userPath)
	}

	// Convert to forward slashes for consistency with Git paths
	return filepath.ToSlash(relPath), nil
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

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to ensure there's space for both the "..." prefix and at least one character of content.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
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
