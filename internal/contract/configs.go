package contract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/reviewers/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 10
	MaxResultLimit     = 1000
	DefaultPrecision   = 2
	MaxPrecision       = 4
)

// Config holds the runtime configuration for one reviewers run.
// This struct is the "final, validated" config.
type Config struct {
	RepoPath    string            // Absolute path to the repository root
	BaseBranch  string            // Explicit base branch, empty to pick a default
	Contributor string            // Contributor whose lines are listed
	CurrentUser string            // Explicit current user, empty to read git config
	Format      schema.ViewFormat // Which view to render
	Paths       []string          // Repo-relative path filters
	Excludes    []string          // Path prefixes/suffixes to ignore
	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool
	UsePager    bool
	Verbose     bool
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// These are set manually from positional args, so no tag
	PathArgs []string
	WorkDir  string

	Repo        string `mapstructure:"repo"`
	Branch      string `mapstructure:"branch"`
	Contributor string `mapstructure:"contributor"`
	User        string `mapstructure:"user"`
	Format      string `mapstructure:"format"`
	Exclude     string `mapstructure:"exclude"`
	Limit       int    `mapstructure:"limit"`
	Precision   int    `mapstructure:"precision"`
	Output      string `mapstructure:"output"`
	OutputFile  string `mapstructure:"output-file"`
	Width       int    `mapstructure:"width"`
	Color       string `mapstructure:"color"`
	Pager       string `mapstructure:"pager"`
	Verbose     bool   `mapstructure:"verbose"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Paths != nil {
		clone.Paths = append([]string(nil), c.Paths...)
	}
	if c.Excludes != nil {
		clone.Excludes = append([]string(nil), c.Excludes...)
	}
	return &clone
}

// ShowsRecords reports whether the run dumps the change records.
// It takes precedence over every other view.
func (c *Config) ShowsRecords() bool {
	return c.Format == schema.RecordsFormat
}

// ShowsContributorLines reports whether the run renders the contributor view
// instead of the ranking.
func (c *Config) ShowsContributorLines() bool {
	return !c.ShowsRecords() && (c.Format == schema.RawFormat || c.Contributor != "")
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := resolveRepoAndPaths(ctx, cfg, client, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.BaseBranch = strings.TrimSpace(input.Branch)
	cfg.Contributor = strings.TrimSpace(input.Contributor)
	cfg.CurrentUser = strings.TrimSpace(input.User)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Verbose = input.Verbose

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	pager, err := ParseBoolString(input.Pager)
	if err != nil {
		return fmt.Errorf("invalid --pager value: %w", err)
	}
	cfg.UsePager = pager

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Precision Validation ---
	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	// --- 3. Format and Output Validation ---
	cfg.Format = schema.ViewFormat(strings.ToLower(input.Format))
	if _, ok := schema.ValidViewFormats[cfg.Format]; !ok {
		return fmt.Errorf("invalid format '%s'. must be default, raw, records", input.Format)
	}

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Format == schema.RecordsFormat && cfg.Output != schema.TextOut && cfg.Output != schema.JSONOut {
		return fmt.Errorf("%s format is always written as JSON, %s output is not supported", schema.RecordsFormat, cfg.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required when using %s output", schema.ParquetOut)
	}

	// --- 4. Excludes Processing ---
	cfg.Excludes = nil
	if input.Exclude != "" {
		for p := range strings.SplitSeq(input.Exclude, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cfg.Excludes = append(cfg.Excludes, trimmed)
			}
		}
	}

	return nil
}

// resolveRepoAndPaths resolves the Git repository root and turns positional
// path arguments into repo-relative filters.
func resolveRepoAndPaths(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	workDir := input.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		workDir = wd
	}

	repoArg := input.Repo
	if repoArg == "" {
		repoArg = "."
	}
	if !filepath.IsAbs(repoArg) {
		repoArg = filepath.Join(workDir, repoArg)
	}

	gitRoot, err := client.GetRepoRoot(ctx, filepath.Clean(repoArg))
	if err != nil {
		return err
	}
	cfg.RepoPath = gitRoot

	cfg.Paths = nil
	for _, arg := range input.PathArgs {
		filter, err := NormalizePathFilter(gitRoot, workDir, arg)
		if err != nil {
			return err
		}
		cfg.Paths = append(cfg.Paths, filter)
	}
	return nil
}
