package core

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/huangsam/reviewers/internal/contract"
	log "github.com/sirupsen/logrus"
)

// defaultBaseBranches are tried in order when no branch is given.
var defaultBaseBranches = []string{"develop", "master", "main"}

// ResolveBaseBranch returns the explicit branch, or the first local default branch.
func ResolveBaseBranch(ctx context.Context, cfg *contract.Config, client contract.GitClient) (string, error) {
	if cfg.BaseBranch != "" {
		return cfg.BaseBranch, nil
	}
	branches, err := client.ListBranches(ctx, cfg.RepoPath)
	if err != nil {
		return "", err
	}
	for _, candidate := range defaultBaseBranches {
		if slices.Contains(branches, candidate) {
			log.WithField("branch", candidate).Debug("Using default base branch")
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no base branch found (tried %s), pass --branch", strings.Join(defaultBaseBranches, ", "))
}

// ResolveCurrentUser returns the explicit user, or the user.name git is configured with.
func ResolveCurrentUser(ctx context.Context, cfg *contract.Config, client contract.GitClient) (string, error) {
	if cfg.CurrentUser != "" {
		return cfg.CurrentUser, nil
	}
	return client.CurrentUser(ctx, cfg.RepoPath)
}
