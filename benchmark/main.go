// Package main times the reviewers CLI against a set of local repositories.
// Each repository is checked out at a base ref with a newer ref's tree staged
// on top, so the pending diff is the change between the two refs. Every view
// is run several times and the mean wall time is recorded.
//
// Prerequisites:
// - reviewers binary installed and available in PATH
// - Test repositories cloned to the specified base directory
// - Git repositories: csv-parser, fd, git, kubernetes
//
// Usage: go run benchmark/main.go [repo-base-dir]
//
//	repo-base-dir: Directory containing test repositories
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// BenchmarkResult holds the timings of one view against one repository.
type BenchmarkResult struct {
	Repository string
	View       string
	Runs       int
	First      time.Duration
	Mean       time.Duration
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	RepoBase  string
	Timeout   time.Duration
	Runs      int
	TestRepos []string
	RepoRefs  map[string][2]string
	Views     map[string][]string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [repo-base-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		RepoBase:  os.Args[1],
		Timeout:   5 * time.Minute,
		Runs:      3,
		TestRepos: []string{"csv-parser", "fd", "git", "kubernetes"},
		RepoRefs: map[string][2]string{
			"csv-parser": {"v1.0.0", "v1.1.0"},
			"fd":         {"v9.0.0", "v10.0.0"},
			"git":        {"v2.51.0", "v2.52.0-rc0"},
			"kubernetes": {"v1.34.0", "v1.35.0-alpha.0"},
		},
		Views: map[string][]string{
			"ranking": {"--output", "csv"},
			"raw":     {"--format", "raw", "--output", "csv", "--pager", "no"},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the reviewers binary and test repositories exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("reviewers"); err != nil {
		return errors.New("reviewers binary not found in PATH")
	}
	for _, repo := range config.TestRepos {
		repoPath := filepath.Join(config.RepoBase, repo)
		if _, err := os.Stat(repoPath); os.IsNotExist(err) {
			return fmt.Errorf("repository %s not found at %s", repo, repoPath)
		}
	}
	return nil
}

// runBenchmarks stages each repository's refs and times every view.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d repos, %v timeout, %d runs per view\n",
		len(config.TestRepos), config.Timeout, config.Runs)

	for _, repo := range config.TestRepos {
		refs, ok := config.RepoRefs[repo]
		if !ok {
			continue
		}
		repoPath := filepath.Join(config.RepoBase, repo)
		if err := stageRefs(repoPath, refs[0], refs[1]); err != nil {
			fmt.Printf("Skipping %s: %v\n", repo, err)
			continue
		}

		for _, view := range []string{"ranking", "raw"} {
			fmt.Printf("Running %s view on %s (%s -> %s)\n", view, repo, refs[0], refs[1])
			args := append([]string{"--branch", refs[0], "--user", "benchmark"}, config.Views[view]...)
			results = append(results, runBenchmark(config, repo, repoPath, view, args))
		}

		if err := git(repoPath, "reset", "--hard", "-q"); err != nil {
			fmt.Printf("Warning: failed to reset %s: %v\n", repo, err)
		}
	}

	return results
}

// stageRefs checks out base and writes target's tree into the index and working tree.
func stageRefs(repoPath, base, target string) error {
	if err := git(repoPath, "checkout", "-q", "--detach", base); err != nil {
		return err
	}
	return git(repoPath, "read-tree", "-u", "--reset", target)
}

func git(repoPath string, args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = repoPath
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git %v: %w: %s", args, err, out)
	}
	return nil
}

// runBenchmark executes reviewers config.Runs times and summarizes the successful runs.
func runBenchmark(config BenchmarkConfig, repo, repoPath, view string, args []string) BenchmarkResult {
	result := BenchmarkResult{Repository: repo, View: view}

	var total time.Duration
	for run := 1; run <= config.Runs; run++ {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		cmd := exec.CommandContext(ctx, "reviewers", args...)
		cmd.Dir = repoPath

		start := time.Now()
		err := cmd.Run()
		elapsed := time.Since(start)
		cancel()

		if err != nil {
			fmt.Printf("  run %d failed: %v\n", run, err)
			continue
		}
		if result.Runs == 0 {
			result.First = elapsed
		}
		result.Runs++
		total += elapsed
	}

	if result.Runs > 0 {
		result.Mean = total / time.Duration(result.Runs)
	}
	return result
}

// formatDuration renders d in seconds, or TIMEOUT when no run succeeded.
func formatDuration(d time.Duration, runs int) string {
	if runs == 0 {
		return "TIMEOUT"
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/reviewers_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"repo", "view", "runs", "first", "mean"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range results {
		rec := []string{r.Repository, r.View, fmt.Sprint(r.Runs), formatDuration(r.First, r.Runs), formatDuration(r.Mean, r.Runs)}
		if err := writer.Write(rec); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary renders the results as a table on stdout.
func printSummary(results []BenchmarkResult) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Repo", "View", "Runs", "First", "Mean"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	data := make([][]string, 0, len(results))
	for _, r := range results {
		data = append(data, []string{r.Repository, r.View, fmt.Sprint(r.Runs), formatDuration(r.First, r.Runs), formatDuration(r.Mean, r.Runs)})
	}
	if err := table.Bulk(data); err != nil {
		fmt.Printf("Failed to render summary: %v\n", err)
		return
	}
	if err := table.Render(); err != nil {
		fmt.Printf("Failed to render summary: %v\n", err)
	}
}
