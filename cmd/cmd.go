// Package cmd defines the command-line interface for reviewers.
package cmd

import (
	"github.com/huangsam/reviewers/internal/contract"
	"github.com/huangsam/reviewers/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(versionCmd)

	// Flags shared with subcommands
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log every pipeline step to stderr")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding persistent flags", err)
	}

	// Bind all flags of rootCmd to Viper
	rootCmd.Flags().StringP("branch", "b", "", "Base branch to blame against (default: develop, master or main)")
	rootCmd.Flags().StringP("contributor", "c", "", "List the changed lines last touched by this contributor")
	rootCmd.Flags().String("format", string(schema.DefaultFormat), "View format: default or raw or records")
	rootCmd.Flags().String("user", "", "Name excluded from suggestions (default: git config user.name)")
	rootCmd.Flags().String("repo", ".", "Path inside the Git repository to inspect")
	rootCmd.Flags().String("exclude", "", "Comma-separated list of path prefixes or patterns to ignore")
	rootCmd.Flags().IntP("limit", "l", contract.DefaultResultLimit, "Number of reviewers to display")
	rootCmd.Flags().Int("precision", contract.DefaultPrecision, "Decimal precision for shares")
	rootCmd.Flags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.Flags().String("output-file", "", "Optional path to write output to")
	rootCmd.Flags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.Flags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.Flags().String("pager", "yes", "Page contributor listings through $PAGER on a terminal (yes/no/true/false/1/0)")
	if err := viper.BindPFlags(rootCmd.Flags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}
}
