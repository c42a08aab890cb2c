// Package agg has aggregation logic for blame attributions.
package agg

import (
	"sort"

	"github.com/huangsam/reviewers/schema"
)

// TallyAuthors sums attributed lines per author across attributable records.
// Added and unrecognized records never contribute.
func TallyAuthors(records []*schema.ChangeRecord) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		if !r.IsAttributable() {
			continue
		}
		for author, lines := range r.Attributions {
			counts[author] += len(lines)
		}
	}
	return counts
}

// LinesFor lists the lines contributor authored in each record, ascending by
// line number. A gap entry separates lines more than one apart. Records
// without such lines are omitted and record order is preserved.
func LinesFor(records []*schema.ChangeRecord, contributor string) []schema.ContributorLines {
	var result []schema.ContributorLines
	for _, r := range records {
		lines := r.Attributions[contributor]
		if len(lines) == 0 {
			continue
		}
		result = append(result, schema.ContributorLines{
			Record: r,
			Lines:  withGaps(lines),
		})
	}
	return result
}

// withGaps sorts a copy of lines and inserts gap markers between
// non-consecutive line numbers.
func withGaps(lines []schema.AttributedLine) []schema.GappedLine {
	sorted := append([]schema.AttributedLine(nil), lines...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LineNumber < sorted[j].LineNumber
	})

	out := make([]schema.GappedLine, 0, len(sorted)+len(sorted)/2)
	for i, l := range sorted {
		if i > 0 && l.LineNumber-sorted[i-1].LineNumber > 1 {
			out = append(out, schema.GappedLine{Gap: true})
		}
		out = append(out, schema.GappedLine{Line: l})
	}
	return out
}
