package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
)

// RunError is returned when a git command exits abnormally.
type RunError struct {
	RepoPath string
	Args     []string
	Stderr   string
	Err      error
}

// Error implements the error interface.
func (e *RunError) Error() string {
	detail := e.Stderr
	if detail == "" && e.Err != nil {
		detail = e.Err.Error()
	}
	return fmt.Sprintf("git %s failed in %q: %s", strings.Join(e.Args, " "), e.RepoPath, detail)
}

// Unwrap returns the underlying process error.
func (e *RunError) Unwrap() error {
	return e.Err
}

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine. Branch and identity lookups
// read the repository directly with go-git.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout output.
func (c *LocalGitClient) Run(_ context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.Command("git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil, &RunError{
			RepoPath: repoPath,
			Args:     args,
			Stderr:   strings.TrimSpace(string(exitErr.Stderr)),
			Err:      err,
		}
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// runLines executes a git command and splits its output into lines.
func (c *LocalGitClient) runLines(ctx context.Context, repoPath string, args ...string) ([]string, error) {
	out, err := c.Run(ctx, repoPath, args...)
	if err != nil {
		return nil, err
	}
	return SplitLines(out), nil
}

// GetRepoRoot implements the GitClient interface.
func (c *LocalGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	out, err := c.Run(ctx, contextPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// ListBranches implements the GitClient interface.
func (c *LocalGitClient) ListBranches(_ context.Context, repoPath string) ([]string, error) {
	repo, err := openRepo(repoPath)
	if err != nil {
		return nil, err
	}

	branchIter, err := repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("getting branches: %w", err)
	}

	var branches []string
	err = branchIter.ForEach(func(ref *plumbing.Reference) error {
		branches = append(branches, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating branches: %w", err)
	}
	sort.Strings(branches)
	return branches, nil
}

// CurrentUser implements the GitClient interface.
// The merged local and global config is read first; when it carries no
// user.name, git itself is asked so system and include files are honored.
func (c *LocalGitClient) CurrentUser(ctx context.Context, repoPath string) (string, error) {
	if repo, err := openRepo(repoPath); err == nil {
		if cfg, err := repo.ConfigScoped(config.GlobalScope); err == nil && cfg.User.Name != "" {
			return strings.TrimSpace(cfg.User.Name), nil
		}
	}
	out, err := c.Run(ctx, repoPath, "config", "user.name")
	if err != nil {
		return "", fmt.Errorf("cannot determine current user, set user.name or pass --user: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// DiffRaw implements the GitClient interface.
func (c *LocalGitClient) DiffRaw(ctx context.Context, repoPath string, baseRef string) ([]string, error) {
	return c.runLines(ctx, repoPath, "diff", "--raw", "--find-renames", baseRef)
}

// DiffFile implements the GitClient interface.
func (c *LocalGitClient) DiffFile(ctx context.Context, repoPath string, baseRef string, paths ...string) ([]string, error) {
	args := []string{"diff", "--find-renames", baseRef, "--"}
	args = append(args, paths...)
	return c.runLines(ctx, repoPath, args...)
}

// Blame implements the GitClient interface.
func (c *LocalGitClient) Blame(ctx context.Context, repoPath string, baseRef string, path string, start, count int) ([]string, error) {
	args := []string{
		"blame",
		"-L", fmt.Sprintf("%d,+%d", start, count),
		baseRef,
		"--", path,
	}
	return c.runLines(ctx, repoPath, args...)
}

// openRepo opens the repository containing path.
func openRepo(path string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening git repo: %w", err)
	}
	return repo, nil
}
