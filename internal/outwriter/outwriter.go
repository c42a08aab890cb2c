// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"os"

	"github.com/huangsam/reviewers/internal/contract"
	"github.com/huangsam/reviewers/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

var _ contract.ResultWriter = &OutWriter{} // Compile-time check

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteRanking prints the suggested reviewers using the configured output format.
func (ow *OutWriter) WriteRanking(ranking []schema.ReviewerRanking, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRankingJSON(w, ranking)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRankingCSV(w, ranking, fmtFloat, intFmt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeRankingParquet(ranking, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRankingTable(w, ranking, cfg, fmtFloat, intFmt)
		}, "Wrote table")
	}
	return nil
}

// WriteContributorLines prints a contributor listing using the configured output format.
// Text output goes through the pager when stdout is an interactive terminal.
func (ow *OutWriter) WriteContributorLines(contributor string, listing []schema.ContributorLines, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLinesJSON(w, contributor, listing)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLinesCSV(w, listing)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeLinesParquet(contributor, listing, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		render := func(w io.Writer) error {
			return writeLinesText(w, contributor, listing, cfg)
		}
		if shouldPage(cfg) {
			return pageOutput(render)
		}
		return writeWithFile(cfg.OutputFile, render, "Wrote listing")
	}
	return nil
}

// WriteRecords dumps the change records as JSON, the only encoding that keeps
// chunks and attributions intact.
func (ow *OutWriter) WriteRecords(records []*schema.ChangeRecord, cfg *contract.Config) error {
	if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeRecordsJSON(w, records)
	}, "Wrote records"); err != nil {
		return fmt.Errorf("error writing records: %w", err)
	}
	return nil
}

// WriteChangeSummary lists the processed changes on stderr.
func (ow *OutWriter) WriteChangeSummary(records []*schema.ChangeRecord, cfg *contract.Config) error {
	return writeChangeSummary(os.Stderr, records, cfg.BaseBranch, cfg.UseColors)
}
