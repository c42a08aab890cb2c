package core

import (
	"context"
	"fmt"
	"os"

	"github.com/huangsam/reviewers/core/blame"
	"github.com/huangsam/reviewers/core/diff"
	"github.com/huangsam/reviewers/internal/contract"
	"github.com/huangsam/reviewers/schema"
	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// BuildRecords lists the changes between cfg.BaseBranch and the working tree,
// then extracts chunks and blame for each selected record in diff order.
func BuildRecords(ctx context.Context, cfg *contract.Config, client contract.GitClient) ([]*schema.ChangeRecord, error) {
	lines, err := client.DiffRaw(ctx, cfg.RepoPath, cfg.BaseBranch)
	if err != nil {
		return nil, err
	}
	parsed, err := diff.ParseChangeLines(lines)
	if err != nil {
		return nil, err
	}
	records := selectRecords(parsed, cfg)

	bar := newProgressBar(len(records), cfg)
	for _, r := range records {
		if err := diff.ExtractChunks(ctx, client, cfg.RepoPath, r, cfg.BaseBranch); err != nil {
			return nil, fmt.Errorf("extracting chunks for %s: %w", r.DisplayPath(), err)
		}
		if err := blame.CorrelateBlame(ctx, client, cfg.RepoPath, r, cfg.BaseBranch); err != nil {
			return nil, fmt.Errorf("blaming %s: %w", r.DisplayPath(), err)
		}
		log.WithFields(log.Fields{
			"path":    r.DisplayPath(),
			"change":  r.ChangeType,
			"lines":   r.LineCount(),
			"authors": r.Authors(),
		}).Debug("Processed record")
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return records, nil
}

// selectRecords keeps records with a path matching cfg.Paths and not every
// path excluded by cfg.Excludes. Both sides of a rename are considered.
func selectRecords(records []*schema.ChangeRecord, cfg *contract.Config) []*schema.ChangeRecord {
	selected := make([]*schema.ChangeRecord, 0, len(records))
	for _, r := range records {
		paths := []string{r.FilePath}
		if r.HasRename() {
			paths = append(paths, r.RenameTargetPath)
		}

		matched, ignored := false, 0
		for _, p := range paths {
			if contract.MatchesPathFilter(p, cfg.Paths) {
				matched = true
			}
			if contract.ShouldIgnore(p, cfg.Excludes) {
				ignored++
			}
		}
		if !matched || ignored == len(paths) {
			log.WithField("path", r.DisplayPath()).Debug("Filtered out record")
			continue
		}
		selected = append(selected, r)
	}
	return selected
}

// newProgressBar returns a bar on an interactive stderr, or nil.
func newProgressBar(total int, cfg *contract.Config) *progressbar.ProgressBar {
	if total == 0 || cfg.Verbose || !term.IsTerminal(int(os.Stderr.Fd())) {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Blaming changes"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
