// Package export writes aggregate tables to delimited text files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pmsaops/sidata/internal/aggregate"
)

// CSVExt is the extension of written table files.
const CSVExt = ".csv"

// WriteCSV writes a table as CSV: header first, then rows in order.
// Lines end in CRLF to stay byte-compatible with previously published tables.
func WriteCSV(w io.Writer, t aggregate.Table) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Header) {
			return fmt.Errorf("row %d has %d fields, header has %d", i, len(row), len(t.Header))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// TablePath returns the output path of a table in dir.
func TablePath(dir string, t aggregate.Table) string {
	return filepath.Join(dir, t.Name+CSVExt)
}

// WriteFile writes a table to dir and returns the file path.
func WriteFile(dir string, t aggregate.Table) (string, error) {
	path := TablePath(dir, t)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteCSV(f, t); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}

// WriteAll creates dir if needed and writes every table into it.
// The saved callback, when non-nil, is invoked after each file is written.
func WriteAll(dir string, tables []aggregate.Table, saved func(path string)) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	paths := make([]string, 0, len(tables))
	for _, t := range tables {
		path, err := WriteFile(dir, t)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
		if saved != nil {
			saved(path)
		}
	}
	return paths, nil
}
