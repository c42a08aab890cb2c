// Package schema has the data model shared by every stage of the reviewers pipeline.
package schema

import "sort"

// LineRange is a contiguous span of changed lines in the target revision of a file.
// There is one LineRange per diff hunk.
type LineRange struct {
	StartLine int `json:"start_line"` // 1-based first line of the span
	LineCount int `json:"line_count"` // Number of lines covered by the span
}

// EndLine returns the last line covered by the range.
func (r LineRange) EndLine() int {
	return r.StartLine + r.LineCount - 1
}

// AttributedLine is a single blamed line inside a LineRange.
type AttributedLine struct {
	LineNumber int    `json:"line_number"`
	CodeText   string `json:"code_text"`
}

// ChangeRecord describes one changed path in the diff against the base branch.
// Chunks and Attributions are populated in place by the pipeline stages.
type ChangeRecord struct {
	FilePath         string                      `json:"file_path"`
	RenameTargetPath string                      `json:"rename_target_path,omitempty"` // Only set for renames and copies
	ChangeType       ChangeType                  `json:"change_type"`
	FromMode         string                      `json:"from_mode,omitempty"`
	ToMode           string                      `json:"to_mode,omitempty"`
	FromHash         string                      `json:"from_hash,omitempty"`
	ToHash           string                      `json:"to_hash,omitempty"`
	Score            int                         `json:"score,omitempty"` // Similarity index of renames and copies
	Chunks           []LineRange                 `json:"chunks"`
	Attributions     map[string][]AttributedLine `json:"attributions"`
}

// NewChangeRecord creates a record with empty chunk and attribution collections.
func NewChangeRecord(path string, changeType ChangeType) *ChangeRecord {
	return &ChangeRecord{
		FilePath:     path,
		ChangeType:   changeType,
		Chunks:       []LineRange{},
		Attributions: make(map[string][]AttributedLine),
	}
}

// HasRename reports whether the record carries a rename or copy target.
func (r *ChangeRecord) HasRename() bool {
	return r.RenameTargetPath != ""
}

// DisplayPath returns the path shown to users, "old -> new" for renames and copies.
func (r *ChangeRecord) DisplayPath() string {
	if r.HasRename() {
		return r.FilePath + " -> " + r.RenameTargetPath
	}
	return r.FilePath
}

// IsAttributable reports whether the record takes part in aggregation.
// Added files have no history against the base, and unrecognized or blank
// statuses are kept for display only.
func (r *ChangeRecord) IsAttributable() bool {
	switch r.ChangeType {
	case AddedChange, OtherChange, NoneChange:
		return false
	default:
		return true
	}
}

// AddAttribution appends a blamed line for author, preserving call order.
func (r *ChangeRecord) AddAttribution(author string, line AttributedLine) {
	if r.Attributions == nil {
		r.Attributions = make(map[string][]AttributedLine)
	}
	r.Attributions[author] = append(r.Attributions[author], line)
}

// LineCount returns the number of attributed lines across all authors.
func (r *ChangeRecord) LineCount() int {
	total := 0
	for _, lines := range r.Attributions {
		total += len(lines)
	}
	return total
}

// Authors returns the attributed authors in sorted order.
func (r *ChangeRecord) Authors() []string {
	authors := make([]string, 0, len(r.Attributions))
	for author := range r.Attributions {
		authors = append(authors, author)
	}
	sort.Strings(authors)
	return authors
}

// ReviewerRanking is one entry of the suggested reviewer list.
type ReviewerRanking struct {
	Author     string  `json:"author"`
	LineCount  int     `json:"line_count"`
	Percentage float64 `json:"percentage"` // Share of all included lines, in [0,100]
}

// GappedLine is an entry of a contributor listing. Gap entries carry no line
// and mark a jump of more than one line between their neighbours.
type GappedLine struct {
	Line AttributedLine `json:"line"`
	Gap  bool           `json:"gap,omitempty"`
}

// ContributorLines groups the lines a contributor authored within one record.
type ContributorLines struct {
	Record *ChangeRecord `json:"-"`
	Lines  []GappedLine  `json:"lines"`
}
