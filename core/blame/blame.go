// Package blame attributes changed line ranges to their historical authors.
package blame

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/huangsam/reviewers/internal/contract"
	"github.com/huangsam/reviewers/schema"
	log "github.com/sirupsen/logrus"
)

// dateToken matches the date column of blame output, e.g. 2023-5-1 or 2023-05-01.
var dateToken = regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`)

// Attribution is one parsed blame line.
type Attribution struct {
	Author string
	Line   schema.AttributedLine
}

// CorrelateBlame blames every chunk of record against baseBranch and appends
// the resulting lines to record.Attributions in blame output order.
func CorrelateBlame(ctx context.Context, client contract.GitClient, repoPath string, record *schema.ChangeRecord, baseBranch string) error {
	for _, chunk := range record.Chunks {
		lines, err := client.Blame(ctx, repoPath, baseBranch, record.FilePath, chunk.StartLine, chunk.LineCount)
		if err != nil {
			return fmt.Errorf("lines %d-%d: %w", chunk.StartLine, chunk.EndLine(), err)
		}
		for _, a := range ParseBlameOutput(lines) {
			record.AddAttribution(a.Author, a.Line)
		}
	}
	log.WithFields(log.Fields{
		"path":    record.FilePath,
		"authors": len(record.Attributions),
	}).Debug("Correlated blame")
	return nil
}

// ParseBlameOutput parses every attribution line of a blame output.
// Lines that are not attributions are skipped.
func ParseBlameOutput(lines []string) []Attribution {
	attributions := make([]Attribution, 0, len(lines))
	for _, l := range lines {
		author, line, ok := ParseBlameLine(l)
		if !ok {
			log.WithField("line", l).Debug("Skipping blame line")
			continue
		}
		attributions = append(attributions, Attribution{Author: author, Line: line})
	}
	return attributions
}

// ParseBlameLine parses one line of the form
//
//	<rev> (<author> <date> <time> <zone> <line>) <code>
//
// The author is every token ahead of the first date token. The line number
// is the last token before the first ")". ok is false when the line carries
// no ")" or its line number is not an integer.
func ParseBlameLine(raw string) (author string, line schema.AttributedLine, ok bool) {
	inner, code, found := strings.Cut(raw, ")")
	if !found {
		return "", schema.AttributedLine{}, false
	}
	if _, after, hasParen := strings.Cut(inner, "("); hasParen {
		inner = after
	}

	tokens := strings.Fields(inner)
	if len(tokens) == 0 {
		return "", schema.AttributedLine{}, false
	}
	lineNumber, err := strconv.Atoi(tokens[len(tokens)-1])
	if err != nil {
		return "", schema.AttributedLine{}, false
	}

	authorTokens := tokens[:len(tokens)-1]
	for i, tok := range authorTokens {
		if dateToken.MatchString(tok) {
			authorTokens = authorTokens[:i]
			break
		}
	}

	line = schema.AttributedLine{
		LineNumber: lineNumber,
		CodeText:   strings.TrimPrefix(code, " "),
	}
	return strings.TrimSpace(strings.Join(authorTokens, " ")), line, true
}
