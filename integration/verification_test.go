//go:build integration

// Package integration contains integration tests for reviewers.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rankedReviewer mirrors one entry of the JSON ranking output.
type rankedReviewer struct {
	Rank       int     `json:"rank"`
	Author     string  `json:"author"`
	LineCount  int     `json:"line_count"`
	Percentage float64 `json:"percentage"`
	Label      string  `json:"label"`
}

// git runs a git command inside dir as the given author.
func git(t *testing.T, dir, author string, args ...string) {
	t.Helper()
	full := append([]string{"-c", "user.name=" + author, "-c", "user.email=" + author + "@example.com"}, args...)
	cmd := exec.Command("git", full...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_DATE=2024-03-01T12:00:00Z",
		"GIT_COMMITTER_DATE=2024-03-01T12:00:00Z",
	)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

// newTwoAuthorRepo commits one file per author on master and then edits both
// files in the working tree without changing their line counts.
func newTwoAuthorRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	git(t, dir, "alice", "init", "-q", "-b", "master")

	writeFile(t, dir, "a.go", "package a\n// alice\nvar X = 1\nvar Y = 2\n")
	git(t, dir, "alice", "add", "a.go")
	git(t, dir, "alice", "commit", "-q", "-m", "add a")

	writeFile(t, dir, "b.go", "package b\nvar Z = 3\n")
	git(t, dir, "bob", "add", "b.go")
	git(t, dir, "bob", "commit", "-q", "-m", "add b")

	writeFile(t, dir, "a.go", "package a\n// carol\nvar X = 10\nvar Y = 2\n")
	writeFile(t, dir, "b.go", "package b\nvar Z = 30\n")
	return dir
}

// runReviewers executes the binary in dir with an isolated HOME.
func runReviewers(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command(getReviewersBinary(), args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "HOME="+t.TempDir(), "PAGER=cat")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	require.NoError(t, cmd.Run(), stderr.String())
	return stdout.String()
}

// TestReviewersRanking runs reviewers against a fresh repo and checks the JSON ranking.
func TestReviewersRanking(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := newTwoAuthorRepo(t)

	out := runReviewers(t, dir, "--user", "carol", "--output", "json")

	var ranking []rankedReviewer
	require.NoError(t, json.Unmarshal([]byte(out), &ranking))
	require.Len(t, ranking, 2)

	assert.Equal(t, "alice", ranking[0].Author)
	assert.Equal(t, 4, ranking[0].LineCount)
	assert.InDelta(t, 66.67, ranking[0].Percentage, 0.001)
	assert.Equal(t, 1, ranking[0].Rank)

	assert.Equal(t, "bob", ranking[1].Author)
	assert.Equal(t, 2, ranking[1].LineCount)
	assert.InDelta(t, 33.33, ranking[1].Percentage, 0.001)
}

// TestReviewersExcludesCurrentUser checks that the current user never ranks.
func TestReviewersExcludesCurrentUser(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := newTwoAuthorRepo(t)

	out := runReviewers(t, dir, "--user", "alice", "--output", "json")

	var ranking []rankedReviewer
	require.NoError(t, json.Unmarshal([]byte(out), &ranking))
	require.Len(t, ranking, 1)
	assert.Equal(t, "bob", ranking[0].Author)
	assert.InDelta(t, 100.0, ranking[0].Percentage, 0.001)
}

// TestReviewersPathFilter restricts the run to one file.
func TestReviewersPathFilter(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := newTwoAuthorRepo(t)

	out := runReviewers(t, dir, "b.go", "--user", "carol", "--output", "json")

	var ranking []rankedReviewer
	require.NoError(t, json.Unmarshal([]byte(out), &ranking))
	require.Len(t, ranking, 1)
	assert.Equal(t, "bob", ranking[0].Author)
}

// TestReviewersContributorLines lists the lines alice last touched as CSV.
func TestReviewersContributorLines(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := newTwoAuthorRepo(t)

	out := runReviewers(t, dir, "--contributor", "alice", "--output", "csv")
	lines := strings.Split(strings.TrimSpace(out), "\n")

	assert.Equal(t, []string{
		"path,line,code",
		"a.go,1,package a",
		"a.go,2,// alice",
		"a.go,3,var X = 1",
		"a.go,4,var Y = 2",
	}, lines)
}

// TestReviewersRecords dumps the change records as JSON.
func TestReviewersRecords(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := newTwoAuthorRepo(t)

	out := runReviewers(t, dir, "--format", "records", "--output", "json")

	var records []struct {
		FilePath     string                       `json:"file_path"`
		ChangeType   string                       `json:"change_type"`
		Attributions map[string][]json.RawMessage `json:"attributions"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "a.go", records[0].FilePath)
	assert.Equal(t, "modified", records[0].ChangeType)
	assert.Len(t, records[0].Attributions["alice"], 4)
	assert.Len(t, records[1].Attributions["bob"], 2)
}

// TestReviewersMissingBaseBranch fails when no default base branch exists.
func TestReviewersMissingBaseBranch(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := t.TempDir()
	git(t, dir, "alice", "init", "-q", "-b", "trunk")
	writeFile(t, dir, "a.go", "package a\n")
	git(t, dir, "alice", "add", "a.go")
	git(t, dir, "alice", "commit", "-q", "-m", "add a")

	cmd := exec.Command(getReviewersBinary(), "--user", "carol")
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "HOME="+t.TempDir())
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	require.Error(t, cmd.Run())
	assert.Contains(t, stderr.String(), "pass --branch")
}
