// Package parquet provides row types and writers for exporting reviewer
// suggestions to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"

	"github.com/huangsam/reviewers/schema"
	"github.com/parquet-go/parquet-go"
)

// ReviewerRow is one ranked reviewer suggestion.
type ReviewerRow struct {
	// Rank is the 1-based position in the ranking
	Rank int32 `parquet:"rank,snappy"`

	// Author is the blamed author name
	Author string `parquet:"author,snappy"`

	// LineCount is the number of changed lines last touched by the author
	LineCount int32 `parquet:"line_count,snappy"`

	// Percentage is the author's share of all included lines
	Percentage float64 `parquet:"percentage,snappy"`

	// Label is the share label (Primary, Secondary, Minor)
	Label string `parquet:"label,snappy"`

	// BaseBranch is the branch the changes were blamed against
	BaseBranch string `parquet:"base_branch,snappy"`
}

// ContributorLineRow is one line of a contributor listing.
type ContributorLineRow struct {
	// Contributor is the author the listing was built for
	Contributor string `parquet:"contributor,snappy"`

	// FilePath is the repository-relative path of the changed file
	FilePath string `parquet:"file_path,snappy"`

	// RenameTargetPath is the destination of a rename or copy (nullable)
	RenameTargetPath *string `parquet:"rename_target_path,optional,snappy"`

	// ChangeType is the kind of change recorded for the file
	ChangeType string `parquet:"change_type,snappy"`

	// LineNumber is the 1-based line number in the base revision
	LineNumber int32 `parquet:"line_number,snappy"`

	// CodeText is the blamed line content
	CodeText string `parquet:"code_text,snappy"`
}

// ConvertRanking converts an enriched ranking into Parquet rows.
func ConvertRanking(ranking []schema.EnrichedRanking, baseBranch string) []ReviewerRow {
	result := make([]ReviewerRow, len(ranking))
	for i, r := range ranking {
		result[i] = ReviewerRow{
			Rank:       int32(r.Rank),
			Author:     r.Author,
			LineCount:  int32(r.LineCount),
			Percentage: r.Percentage,
			Label:      r.Label,
			BaseBranch: baseBranch,
		}
	}
	return result
}

// ConvertContributorLines flattens a contributor listing into Parquet rows.
// Gap markers are display-only and are not exported.
func ConvertContributorLines(contributor string, listing []schema.ContributorLines) []ContributorLineRow {
	var result []ContributorLineRow
	for _, cl := range listing {
		var target *string
		if cl.Record.HasRename() {
			t := cl.Record.RenameTargetPath
			target = &t
		}
		for _, gl := range cl.Lines {
			if gl.Gap {
				continue
			}
			result = append(result, ContributorLineRow{
				Contributor:      contributor,
				FilePath:         cl.Record.FilePath,
				RenameTargetPath: target,
				ChangeType:       string(cl.Record.ChangeType),
				LineNumber:       int32(gl.Line.LineNumber),
				CodeText:         gl.Line.CodeText,
			})
		}
	}
	return result
}

// WriteReviewersParquet writes ranked reviewer rows to a Parquet file.
func WriteReviewersParquet(data []ReviewerRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteContributorLinesParquet writes contributor line rows to a Parquet file.
func WriteContributorLinesParquet(data []ContributorLineRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// writeRows creates outputPath and writes all rows with a schema inferred from T.
func writeRows[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
