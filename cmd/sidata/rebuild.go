package main

import (
	"os"
	"path/filepath"

	"github.com/pmsaops/sidata/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the query layer from the extraction results",
	Long: `Rebuild the SQLite query database from the extraction result files.

The database holds the raw reported fields of each paper (one row per result
file, unreported fields as NULL) for ad hoc inspection with 'sidata query'.
It is never read by 'sidata generate'.`,
	Args: cobra.NoArgs,
	RunE: runRebuild,
}

// RebuildResult is the response for the rebuild command.
type RebuildResult struct {
	Status string `json:"status"`
	Papers int    `json:"papers"`
	Path   string `json:"path"`
}

func runRebuild(cmd *cobra.Command, args []string) error {
	paths := mustResolvePaths()
	records := mustLoadRecords(paths)

	// Ensure cache directory exists
	if err := os.MkdirAll(filepath.Dir(paths.DBPath), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}

	db, err := storage.OpenDB(paths.DBPath)
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	defer db.Close()

	if _, err := db.RebuildFromRecords(records); err != nil {
		exitWithError(ExitDataError, "rebuilding papers database: %v", err)
	}
	n, err := db.Count()
	if err != nil {
		exitWithError(ExitError, "counting papers: %v", err)
	}

	if humanOutput {
		outputHuman("Rebuilt query database with %d papers\n", n)
		return nil
	}
	return outputJSON(RebuildResult{Status: "rebuilt", Papers: n, Path: paths.DBPath})
}
