// Package main provides the sidata CLI entry point.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pmsaops/sidata/internal/config"
	"github.com/pmsaops/sidata/internal/paper"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	verbose     bool
	rootFlag    string
)

// logger receives diagnostics; it stays a no-op unless --verbose is set.
var logger = zap.NewNop()

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sidata",
	Short: "Aggregate literature-review extraction results into summary tables",
	Long: `sidata turns per-paper extraction results (one JSON file per paper)
into the aggregated CSV tables published with the review's supplementary data.

Tables written by 'sidata generate':
  mechanism_by_year.csv       dominant mechanism counts per year
  species_by_period.csv       reactive species per publication period
  mechanism_species_flow.csv  mechanism to species links with percentages
  catalyst_distribution.csv   catalyst type ranking
  pollutant_distribution.csv  pollutant category ranking
  basic_statistics.csv        corpus completeness and year range

Paths come from sidata.yml at the project root (json_dir, output_dir),
overridable with SIDATA_JSON_DIR / SIDATA_OUTPUT_DIR or a .env file.
All commands output JSON by default; use --human for prose.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogger,
}

func init() {
	// Load .env file if present (for SIDATA_* overrides)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics to stderr")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Project root (default: nearest directory with sidata.yml)")
	rootCmd.Version = Version
}

func setupLogger(cmd *cobra.Command, args []string) error {
	if !verbose {
		return nil
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	logger = l
	return nil
}

// mustResolvePaths finds the project and resolves its configured paths,
// exits on error.
func mustResolvePaths() config.Paths {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	root, err := config.ResolveRoot(rootFlag, cwd)
	if err != nil {
		exitWithError(ExitConfigError, "resolving project root: %v", err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	cfg.ApplyEnv()

	return cfg.Resolve(root)
}

// mustLoadRecords loads every successful extraction result, exits on error.
func mustLoadRecords(paths config.Paths) []paper.Record {
	records, err := paper.NewLoader(logger).LoadDir(paths.JSONDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, paper.ErrNotDir) {
			if humanOutput {
				fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
			}
			exitWithError(ExitConfigError, "loading papers: %v", err)
		}
		exitWithError(ExitError, "loading papers: %v", err)
	}
	return records
}
