package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/reviewers/internal/contract"
	"github.com/huangsam/reviewers/schema"
)

// writeRecordsJSON dumps the change records with their chunks and attributions.
func writeRecordsJSON(w io.Writer, records []*schema.ChangeRecord) error {
	if records == nil {
		records = []*schema.ChangeRecord{}
	}
	return writeJSON(w, records)
}

// writeChangeSummary lists one line per change, colored by change type.
func writeChangeSummary(w io.Writer, records []*schema.ChangeRecord, base string, useColors bool) error {
	if _, err := fmt.Fprintf(w, "Changes against %s:\n", base); err != nil {
		return err
	}
	for _, r := range records {
		line := fmt.Sprintf("  %-8s %s", r.ChangeType, r.DisplayPath())
		if r.HasRename() && r.Score > 0 {
			line += fmt.Sprintf(" (%d%% similar)", r.Score)
		}
		if useColors {
			line = contract.GetChangeColor(r.ChangeType).Sprint(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
