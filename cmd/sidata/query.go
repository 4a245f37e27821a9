package main

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/pmsaops/sidata/internal/storage"
	"github.com/spf13/cobra"
)

var queryCSV bool

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().BoolVar(&queryCSV, "csv", false, "Output CSV")
}

var queryCmd = &cobra.Command{
	Use:   "query <sql>",
	Short: "Query the papers database using SQL",
	Long: `Execute a SQL query against the papers table built by 'sidata rebuild'.

Columns: source, year, dominant_mechanism, dominant_species,
catalyst_type, pollutant_category.

Examples:
  sidata query "SELECT year, COUNT(*) FROM papers GROUP BY year"
  sidata query "SELECT source FROM papers WHERE dominant_species IS NULL" --csv`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	paths := mustResolvePaths()

	if _, err := os.Stat(paths.DBPath); err != nil {
		exitWithError(ExitDataError, "papers database not found at %s, run 'sidata rebuild' first", paths.DBPath)
	}

	db, err := storage.OpenDB(paths.DBPath)
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	defer db.Close()

	res, err := db.Query(args[0])
	if err != nil {
		exitWithError(ExitError, "SQL error: %v", err)
	}

	switch {
	case queryCSV:
		return writeQueryCSV(res)
	case humanOutput:
		outputHuman("%s", formatRows(res.Columns, stringRows(res)))
		outputHuman("(%d rows)\n", len(res.Rows))
		return nil
	default:
		return outputJSON(res)
	}
}

// stringRows renders query values as text, NULL as an empty cell.
func stringRows(res *storage.QueryResult) [][]string {
	rows := make([][]string, 0, len(res.Rows))
	for _, r := range res.Rows {
		row := make([]string, len(r))
		for i, v := range r {
			if v != nil {
				row[i] = fmt.Sprintf("%v", v)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// writeQueryCSV writes query results as CSV to stdout.
func writeQueryCSV(res *storage.QueryResult) error {
	w := csv.NewWriter(os.Stdout)
	if err := w.Write(res.Columns); err != nil {
		return err
	}
	if err := w.WriteAll(stringRows(res)); err != nil {
		return err
	}
	return w.Error()
}
