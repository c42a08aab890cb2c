package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/reviewers/core"
	"github.com/huangsam/reviewers/internal/contract"
	"github.com/huangsam/reviewers/internal/outwriter"
	"github.com/huangsam/reviewers/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd suggests reviewers for the working tree of the current repository.
var rootCmd = &cobra.Command{
	Use:   "reviewers [paths...]",
	Short: "Suggest reviewers for your pending changes.",
	Long: `Reviewers blames every line you changed against a base branch and ranks
the people who last touched those lines, so you know who to ask for review.

The base branch defaults to develop, then master, then main. Your own lines
are never suggested back to you.

Examples:
  # Rank reviewers for all changes against the default base branch
  reviewers

  # Only consider changes below core/ against a release branch
  reviewers core/ --branch release/2.0

  # Page through the changed lines Jane Doe last touched
  reviewers --contributor "Jane Doe"

  # Page through your own lines in the diff
  reviewers --format raw

  # Dump every change record with its chunks and blame as JSON
  reviewers --format records

  # Export the ranking for tooling
  reviewers --output json --output-file reviewers.json`,
	Version:            version,
	Args:               cobra.ArbitraryArgs,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	PreRunE:            sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		client := contract.NewLocalGitClient()
		return core.ExecuteReviewers(rootCtx, cfg, client, outwriter.NewOutWriter())
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".reviewers") // Name of config file (without extension)
		viper.SetConfigType("yaml")       // We'll use YAML format
		viper.AddConfigPath(".")          // Look in the current directory
		viper.AddConfigPath("$HOME")      // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("REVIEWERS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("repo", ".")
	viper.SetDefault("format", schema.DefaultFormat)
	viper.SetDefault("limit", contract.DefaultResultLimit)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("color", "yes")
	viper.SetDefault("pager", "yes")
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(ctx context.Context, _ *cobra.Command, args []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	contract.ConfigureLogging(os.Stderr, input.Verbose)

	// 3. Handle positional arguments (which Viper doesn't do).
	input.PathArgs = args
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	input.WorkDir = wd

	// 4. Run all validation and complex parsing.
	// This function populates the global 'cfg' from 'input'.
	client := contract.NewLocalGitClient()
	return contract.ProcessAndValidate(ctx, cfg, client, input)
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
