// Package diff parses raw diff-status listings and unified diff hunks.
package diff

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/huangsam/reviewers/schema"
	log "github.com/sirupsen/logrus"
)

// metadataFields is the field count of ":<from-mode> <to-mode> <from-hash> <to-hash> <status>".
const metadataFields = 5

// ErrMalformedMetadata is wrapped by every ParseError.
var ErrMalformedMetadata = errors.New("malformed diff metadata")

// ParseError reports a raw diff line whose shape cannot be trusted.
type ParseError struct {
	Line   string
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s in %q", ErrMalformedMetadata, e.Reason, e.Line)
}

// Unwrap lets callers match ErrMalformedMetadata with errors.Is.
func (e *ParseError) Unwrap() error {
	return ErrMalformedMetadata
}

// ParseChangeLine parses one line of `git diff --raw` output.
//
// A line with an empty metadata field yields a record of type NoneChange and
// nothing else set. Callers are expected to skip those.
func ParseChangeLine(rawLine string) (*schema.ChangeRecord, error) {
	parts := strings.Split(strings.TrimRight(rawLine, "\r\n"), "\t")
	meta := strings.TrimPrefix(strings.TrimSpace(parts[0]), ":")
	if meta == "" {
		return &schema.ChangeRecord{ChangeType: schema.NoneChange}, nil
	}

	fields := strings.Fields(meta)
	if len(fields) != metadataFields {
		return nil, &ParseError{
			Line:   rawLine,
			Reason: fmt.Sprintf("expected %d metadata fields, got %d", metadataFields, len(fields)),
		}
	}
	if len(parts) < 2 || parts[1] == "" {
		return nil, &ParseError{Line: rawLine, Reason: "missing path"}
	}

	status := fields[4]
	record := schema.NewChangeRecord(parts[1], schema.ChangeTypeFromStatus(status))
	record.FromMode = fields[0]
	record.ToMode = fields[1]
	record.FromHash = fields[2]
	record.ToHash = fields[3]

	switch record.ChangeType {
	case schema.RenamedChange, schema.CopiedChange:
		if len(parts) > 2 && parts[2] != "" {
			record.RenameTargetPath = parts[2]
		}
		record.Score = similarityScore(status)
	}
	return record, nil
}

// ParseChangeLines parses a full raw listing in order, dropping blank records.
// The first malformed line aborts parsing.
func ParseChangeLines(lines []string) ([]*schema.ChangeRecord, error) {
	records := make([]*schema.ChangeRecord, 0, len(lines))
	for _, line := range lines {
		record, err := ParseChangeLine(line)
		if err != nil {
			return nil, err
		}
		if record.ChangeType == schema.NoneChange {
			log.WithField("line", line).Debug("Skipping blank diff line")
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// similarityScore extracts the percentage suffix of a rename or copy status.
func similarityScore(status string) int {
	if len(status) < 2 {
		return 0
	}
	score, err := strconv.Atoi(status[1:])
	if err != nil {
		return 0
	}
	return score
}
