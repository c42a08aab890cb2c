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
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// noReviewersMsg is printed when nobody but the current user touched the changed lines.
const noReviewersMsg = "No reviewers suggested"

// writeRankingTable generates and writes the human-readable table.
func writeRankingTable(w io.Writer, ranking []schema.ReviewerRanking, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	if len(ranking) == 0 {
		_, err := fmt.Fprintln(w, noReviewersMsg)
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Reviewer", "Lines", "Share", "Label"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxReviewerWidth(cfg)
	shownLines, shownShare := 0, 0.0
	var data [][]string
	for _, r := range schema.EnrichRanking(ranking) {
		label := r.Label
		if cfg.UseColors {
			label = contract.GetColorLabel(label)
		}
		data = append(data, []string{
			strconv.Itoa(r.Rank), // Rank
			contract.TruncateText(r.Author, nameWidth), // Reviewer
			fmt.Sprintf(intFmt, r.LineCount),           // Lines
			fmtFloat(r.Percentage) + "%",               // Share
			label,                                      // Label
		})
		shownLines += r.LineCount
		shownShare += r.Percentage
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	// Shares are relative to every attributed line, including rows cut by --limit.
	_, err := fmt.Fprintf(w, "Showing top %d reviewers against %s (%d lines, %s%% of attributed lines)\n",
		len(ranking), cfg.BaseBranch, shownLines, fmtFloat(shownShare))
	return err
}

// writeRankingCSV writes the ranking in CSV format.
func writeRankingCSV(w io.Writer, ranking []schema.ReviewerRanking, fmtFloat func(float64) string, intFmt string) error {
	header := []string{"rank", "reviewer", "lines", "percentage", "label"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range schema.EnrichRanking(ranking) {
			rec := []string{
				strconv.Itoa(r.Rank),
				r.Author,
				fmt.Sprintf(intFmt, r.LineCount),
				fmtFloat(r.Percentage),
				r.Label,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeRankingJSON writes the ranking in JSON format with rank and label added.
func writeRankingJSON(w io.Writer, ranking []schema.ReviewerRanking) error {
	return writeJSON(w, schema.EnrichRanking(ranking))
}

// writeRankingParquet exports the ranking to cfg.OutputFile.
func writeRankingParquet(ranking []schema.ReviewerRanking, cfg *contract.Config) error {
	rows := parquet.ConvertRanking(schema.EnrichRanking(ranking), cfg.BaseBranch)
	if err := parquet.WriteReviewersParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}
