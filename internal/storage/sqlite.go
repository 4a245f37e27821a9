// Package storage provides the SQLite query layer over loaded paper records.
//
// The extraction result files stay the source of truth; the database is an
// ephemeral index rebuilt from them on demand and never read by the
// aggregation pipeline.
package storage

import (
	"database/sql"
	"fmt"

	"github.com/pmsaops/sidata/internal/paper"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// selectPaperFields contains the standard field list for SELECT queries.
const selectPaperFields = `source, year, dominant_mechanism, dominant_species,
	catalyst_type, pollutant_category`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
// Absent fields are stored as NULL so SQL aggregates skip them.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS papers (
			source TEXT PRIMARY KEY,
			year INTEGER,
			dominant_mechanism TEXT,
			dominant_species TEXT,
			catalyst_type TEXT,
			pollutant_category TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_papers_year ON papers(year) WHERE year IS NOT NULL;
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromRecords clears the papers table and fills it from records.
func (d *DB) RebuildFromRecords(records []paper.Record) (int, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM papers"); err != nil {
		return 0, fmt.Errorf("clearing papers table: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO papers (` + selectPaperFields + `) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing papers insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.Exec(
			r.Source, nullableInt(r.Year),
			nullableString(r.DominantMechanism), nullableString(r.DominantSpecies),
			nullableString(r.CatalystType), nullableString(r.PollutantCategory),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting paper %s: %w", r.Source, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing papers: %w", err)
	}
	return len(records), nil
}

// Count returns the number of indexed papers.
func (d *DB) Count() (int, error) {
	var n int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM papers").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting papers: %w", err)
	}
	return n, nil
}

// ListAll returns every indexed paper ordered by source file.
func (d *DB) ListAll() ([]paper.Record, error) {
	rows, err := d.db.Query(`SELECT ` + selectPaperFields + ` FROM papers ORDER BY source`)
	if err != nil {
		return nil, fmt.Errorf("listing papers: %w", err)
	}
	defer rows.Close()

	var records []paper.Record
	for rows.Next() {
		var (
			r                                  paper.Record
			year                               sql.NullInt64
			mech, species, catalyst, pollutant sql.NullString
		)
		if err := rows.Scan(&r.Source, &year, &mech, &species, &catalyst, &pollutant); err != nil {
			return nil, fmt.Errorf("scanning paper: %w", err)
		}
		r.Year = int(year.Int64)
		r.DominantMechanism = mech.String
		r.DominantSpecies = species.String
		r.CatalystType = catalyst.String
		r.PollutantCategory = pollutant.String
		records = append(records, r)
	}
	return records, rows.Err()
}

// QueryResult holds the columns and rows of an ad hoc query.
type QueryResult struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Query executes read-only SQL against the index.
func (d *DB) Query(query string) (*QueryResult, error) {
	rows, err := d.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}

	result := &QueryResult{Columns: cols, Rows: [][]any{}}
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	return result, rows.Err()
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}
