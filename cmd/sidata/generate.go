package main

import (
	"github.com/pmsaops/sidata/internal/aggregate"
	"github.com/pmsaops/sidata/internal/export"
	"github.com/pmsaops/sidata/internal/paper"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the aggregated CSV tables",
	Long: `Load every successful extraction result from the input directory and
write the six aggregated tables to the output directory (created if absent).

Malformed or unsuccessful result files are skipped; use --verbose to see which.
Running twice on unchanged input produces byte-identical files.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

// GenerateResult is the response for the generate command.
type GenerateResult struct {
	Status    string   `json:"status"`
	Papers    int      `json:"papers"`
	OutputDir string   `json:"output_dir"`
	Files     []string `json:"files"`
}

func runGenerate(cmd *cobra.Command, args []string) error {
	paths := mustResolvePaths()

	if humanOutput {
		outputHuman("%s\nGenerating Aggregated Data Files\n%s\n", banner(60), banner(60))
	}

	records := mustLoadRecords(paths)
	if humanOutput {
		outputHuman("Loaded %d papers\n\n--- Generating CSV files ---\n", len(records))
	}

	files, err := generateTables(records, paths.OutputDir, logger, func(path string) {
		if humanOutput {
			outputHuman("Saved: %s\n", path)
		}
	})
	if err != nil {
		exitWithError(ExitError, "writing tables: %v", err)
	}

	if humanOutput {
		outputHuman("\n%s\nAll files generated successfully!\nOutput directory: %s\n%s\n",
			banner(60), paths.OutputDir, banner(60))
		return nil
	}
	return outputJSON(GenerateResult{
		Status:    "generated",
		Papers:    len(records),
		OutputDir: paths.OutputDir,
		Files:     files,
	})
}

// generateTables runs every aggregator and writes the tables to dir.
func generateTables(records []paper.Record, dir string, logger *zap.Logger, saved func(string)) ([]string, error) {
	tables := aggregate.All(records, logger)
	return export.WriteAll(dir, tables, saved)
}
