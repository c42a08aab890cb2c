package diff

import (
	"context"
	"strconv"
	"strings"

	"github.com/huangsam/reviewers/internal/contract"
	"github.com/huangsam/reviewers/schema"
	log "github.com/sirupsen/logrus"
)

// hunkDelimiter opens and closes a unified diff hunk header.
const hunkDelimiter = "@@"

// ExtractChunks fills record.Chunks with the changed target-side ranges of the
// record's file, compared between baseBranch and the working tree.
// Added files are left untouched.
func ExtractChunks(ctx context.Context, client contract.GitClient, repoPath string, record *schema.ChangeRecord, baseBranch string) error {
	if record.ChangeType == schema.AddedChange {
		return nil
	}

	paths := []string{record.FilePath}
	if record.HasRename() {
		paths = []string{record.RenameTargetPath, record.FilePath}
	}

	lines, err := client.DiffFile(ctx, repoPath, baseBranch, paths...)
	if err != nil {
		return err
	}

	for _, r := range ParseChunks(lines) {
		if r.LineCount == 0 {
			continue
		}
		record.Chunks = append(record.Chunks, r)
	}
	log.WithFields(log.Fields{
		"path":   record.FilePath,
		"chunks": len(record.Chunks),
	}).Debug("Extracted chunks")
	return nil
}

// ParseChunks returns one LineRange per hunk header, in diff order.
// Body lines and file headers are ignored.
func ParseChunks(lines []string) []schema.LineRange {
	var ranges []schema.LineRange
	for _, line := range lines {
		r, ok := ParseHunkHeader(line)
		if !ok {
			continue
		}
		ranges = append(ranges, r)
	}
	return ranges
}

// ParseHunkHeader parses "@@ -a[,b] +c[,d] @@" into the target-side range {c, d}.
// An omitted count defaults to 1. ok is false for anything that is not a
// well-formed hunk header.
func ParseHunkHeader(line string) (schema.LineRange, bool) {
	rest, found := strings.CutPrefix(line, hunkDelimiter)
	if !found {
		return schema.LineRange{}, false
	}
	spec, _, found := strings.Cut(rest, hunkDelimiter)
	if !found {
		return schema.LineRange{}, false
	}

	for _, field := range strings.Fields(spec) {
		target, ok := strings.CutPrefix(field, "+")
		if !ok {
			continue
		}
		return parseRange(target)
	}
	return schema.LineRange{}, false
}

// parseRange parses "start[,count]".
func parseRange(s string) (schema.LineRange, bool) {
	startStr, countStr, hasCount := strings.Cut(s, ",")
	start, err := strconv.Atoi(startStr)
	if err != nil || start < 0 {
		return schema.LineRange{}, false
	}
	count := 1
	if hasCount {
		count, err = strconv.Atoi(countStr)
		if err != nil || count < 0 {
			return schema.LineRange{}, false
		}
	}
	return schema.LineRange{StartLine: start, LineCount: count}, true
}
