// Package contract provides interfaces and shared utilities for the reviewers CLI's internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/reviewers/schema"
)

// GitClient defines the version-control operations the reviewer pipeline needs.
// This allows the core logic to be tested without needing a real git executable.
type GitClient interface {
	// --- Generic / Low-Level ---

	// Run executes a git command and returns its standard output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// --- Repository Resolution ---

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// ListBranches returns the names of the local branches.
	ListBranches(ctx context.Context, repoPath string) ([]string, error)

	// CurrentUser returns the configured user.name of the invoking user.
	CurrentUser(ctx context.Context, repoPath string) (string, error)

	// --- Diff / Blame ---

	// DiffRaw returns the raw diff-status listing of the working tree against baseRef.
	DiffRaw(ctx context.Context, repoPath string, baseRef string) ([]string, error)

	// DiffFile returns the unified diff of the given paths between baseRef and the working tree.
	DiffFile(ctx context.Context, repoPath string, baseRef string, paths ...string) ([]string, error)

	// Blame returns the blame lines of path at baseRef restricted to count lines from start.
	Blame(ctx context.Context, repoPath string, baseRef string, path string, start, count int) ([]string, error)
}

// ResultWriter renders the outcome of a run in the configured output format.
type ResultWriter interface {
	// WriteRanking renders the suggested reviewers.
	WriteRanking(ranking []schema.ReviewerRanking, cfg *Config) error

	// WriteContributorLines renders the lines contributor authored across the diff.
	WriteContributorLines(contributor string, listing []schema.ContributorLines, cfg *Config) error

	// WriteRecords dumps the full change records for tooling.
	WriteRecords(records []*schema.ChangeRecord, cfg *Config) error

	// WriteChangeSummary lists every processed change on stderr ahead of the result.
	WriteChangeSummary(records []*schema.ChangeRecord, cfg *Config) error
}
