package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/huangsam/reviewers/internal/contract"
	"github.com/huangsam/reviewers/internal/parquet"
	"github.com/huangsam/reviewers/schema"
)

// gapMarker is printed between non-consecutive lines.
const gapMarker = "..."

// noLinesMsg reports an empty contributor listing.
func noLinesMsg(contributor string) string {
	return "No lines found for " + contributor
}

// writeLinesText renders one block per file: a header naming the file and its
// change type, then "NNNN | code" lines with gap markers in between.
func writeLinesText(w io.Writer, contributor string, listing []schema.ContributorLines, cfg *contract.Config) error {
	if len(listing) == 0 {
		_, err := fmt.Fprintln(w, noLinesMsg(contributor))
		return err
	}

	header, gap := fmt.Sprint, fmt.Sprint
	if cfg.UseColors {
		header = contract.HeaderColor.Sprint
		gap = contract.GapColor.Sprint
	}
	codeWidth := GetMaxCodeWidth(cfg)

	for i, cl := range listing {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		path := cl.Record.DisplayPath()
		if codeWidth > 0 {
			path = contract.TruncatePath(path, codeWidth)
		}
		title := fmt.Sprintf("%s (%s)", path, cl.Record.ChangeType)
		if _, err := fmt.Fprintln(w, header(title)); err != nil {
			return err
		}
		for _, gl := range cl.Lines {
			if gl.Gap {
				if _, err := fmt.Fprintln(w, gap(gapMarker)); err != nil {
					return err
				}
				continue
			}
			code := gl.Line.CodeText
			if codeWidth > 0 {
				code = contract.TruncateText(code, codeWidth)
			}
			if _, err := fmt.Fprintf(w, "%4d | %s\n", gl.Line.LineNumber, code); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeLinesCSV writes one row per listed line. Gap markers are omitted.
func writeLinesCSV(w io.Writer, listing []schema.ContributorLines) error {
	header := []string{"path", "line", "code"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, cl := range listing {
			for _, gl := range cl.Lines {
				if gl.Gap {
					continue
				}
				rec := []string{cl.Record.DisplayPath(), strconv.Itoa(gl.Line.LineNumber), gl.Line.CodeText}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// jsonContributorFile is the JSON shape of one file in a contributor listing.
type jsonContributorFile struct {
	Path             string              `json:"path"`
	RenameTargetPath string              `json:"rename_target_path,omitempty"`
	ChangeType       schema.ChangeType   `json:"change_type"`
	Lines            []schema.GappedLine `json:"lines"`
}

// writeLinesJSON writes the listing in JSON format.
func writeLinesJSON(w io.Writer, contributor string, listing []schema.ContributorLines) error {
	files := make([]jsonContributorFile, len(listing))
	for i, cl := range listing {
		files[i] = jsonContributorFile{
			Path:             cl.Record.FilePath,
			RenameTargetPath: cl.Record.RenameTargetPath,
			ChangeType:       cl.Record.ChangeType,
			Lines:            cl.Lines,
		}
	}
	return writeJSON(w, struct {
		Contributor string                `json:"contributor"`
		Files       []jsonContributorFile `json:"files"`
	}{contributor, files})
}

// writeLinesParquet exports the listing to cfg.OutputFile.
func writeLinesParquet(contributor string, listing []schema.ContributorLines, cfg *contract.Config) error {
	rows := parquet.ConvertContributorLines(contributor, listing)
	if err := parquet.WriteContributorLinesParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}
