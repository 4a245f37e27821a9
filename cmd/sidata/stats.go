package main

import (
	"os"

	"github.com/pmsaops/sidata/internal/aggregate"
	"github.com/pmsaops/sidata/internal/config"
	"github.com/pmsaops/sidata/internal/paper"
	"github.com/pmsaops/sidata/internal/storage"
	"github.com/spf13/cobra"
)

var statsFromDB bool

func init() {
	statsCmd.Flags().BoolVar(&statsFromDB, "db", false, "Read papers from the query database instead of the result files")
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus statistics without writing files",
	Long: `Load the extraction results and print the basic statistics table:
paper counts per reported field and the publication year range.

When no paper reports a year the range is shown as 9999-0.

With --db the papers come from the database written by 'sidata rebuild'.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	paths := mustResolvePaths()

	var records []paper.Record
	if statsFromDB {
		records = mustListStored(paths)
	} else {
		records = mustLoadRecords(paths)
	}

	stats := aggregate.Statistics(records)
	if humanOutput {
		t := stats.Table()
		outputHuman("%s", formatRows(t.Header, t.Rows))
		return nil
	}
	return outputJSON(stats)
}

// mustListStored reads every paper from the query database, exits on error.
func mustListStored(paths config.Paths) []paper.Record {
	if _, err := os.Stat(paths.DBPath); err != nil {
		exitWithError(ExitDataError, "papers database not found at %s, run 'sidata rebuild' first", paths.DBPath)
	}

	db, err := storage.OpenDB(paths.DBPath)
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	defer db.Close()

	records, err := db.ListAll()
	if err != nil {
		exitWithError(ExitError, "listing papers: %v", err)
	}
	return records
}
