// Package core has core logic for building change records and suggesting reviewers.
package core

import (
	"context"
	"time"

	"github.com/huangsam/reviewers/core/agg"
	"github.com/huangsam/reviewers/core/algo"
	"github.com/huangsam/reviewers/internal/contract"
	log "github.com/sirupsen/logrus"
)

// ExecuteReviewers runs the full pipeline against the resolved base branch and
// renders the reviewer ranking, a contributor listing or the raw change records,
// preceded by a change summary on stderr.
// Nothing is written unless every stage succeeds.
func ExecuteReviewers(ctx context.Context, cfg *contract.Config, client contract.GitClient, writer contract.ResultWriter) error {
	start := time.Now()
	runCfg := cfg.Clone()

	base, err := ResolveBaseBranch(ctx, runCfg, client)
	if err != nil {
		return err
	}
	runCfg.BaseBranch = base

	// The current user only matters when ranking or listing one's own lines.
	switch {
	case runCfg.ShowsRecords():
		// Records are dumped as built, nobody is excluded.
	case runCfg.ShowsContributorLines():
		if runCfg.Contributor == "" {
			user, err := ResolveCurrentUser(ctx, runCfg, client)
			if err != nil {
				return err
			}
			runCfg.CurrentUser = user
		}
	default:
		user, err := ResolveCurrentUser(ctx, runCfg, client)
		if err != nil {
			contract.LogWarn("You don't have git config user.name set, you may see yourself in the output", err)
			user = ""
		}
		runCfg.CurrentUser = user
	}

	records, err := BuildRecords(ctx, runCfg, client)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"base":     runCfg.BaseBranch,
		"records":  len(records),
		"duration": time.Since(start),
	}).Debug("Built change records")

	if log.IsLevelEnabled(log.InfoLevel) {
		if err := writer.WriteChangeSummary(records, runCfg); err != nil {
			return err
		}
	}

	if runCfg.ShowsRecords() {
		return writer.WriteRecords(records, runCfg)
	}

	if runCfg.ShowsContributorLines() {
		contributor := runCfg.Contributor
		if contributor == "" {
			contributor = runCfg.CurrentUser
		}
		return writer.WriteContributorLines(contributor, agg.LinesFor(records, contributor), runCfg)
	}

	ranking := algo.RankReviewers(records, runCfg.CurrentUser)
	return writer.WriteRanking(algo.LimitRanking(ranking, runCfg.ResultLimit), runCfg)
}
