package paper

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Extension is the file extension of extraction result files.
const Extension = ".json"

// ErrNotDir is returned when the input path is not a directory.
var ErrNotDir = errors.New("input path is not a directory")

// Loader reads extraction result files.
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a Loader. A nil logger disables diagnostics.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// LoadDir loads every successful result in dir.
//
// Files that cannot be read or parsed, are not marked successful, or carry no
// result object are skipped. Only a missing or unreadable directory is an
// error. Records come back in file name order.
func (l *Loader) LoadDir(dir string) ([]Record, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", dir, ErrNotDir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}

	records := make([]Record, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, Extension) {
			continue
		}

		rec, err := l.loadFile(filepath.Join(dir, name))
		if err != nil {
			l.logger.Debug("skipping result file", zap.String("file", name), zap.Error(err))
			continue
		}
		records = append(records, rec)
	}

	l.logger.Debug("loaded papers", zap.String("dir", dir), zap.Int("count", len(records)))
	return records, nil
}

// loadFile parses one result file.
func (l *Loader) loadFile(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("reading file: %w", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return Record{}, fmt.Errorf("parsing file: %w", err)
	}

	raw, ok := doc["result"]
	if !ok {
		return Record{}, errors.New("no result field")
	}
	if !truthy(doc["success"]) {
		return Record{}, errors.New("extraction not successful")
	}
	result, ok := raw.(map[string]any)
	if !ok {
		return Record{}, errors.New("result is not an object")
	}

	return FromResult(filepath.Base(path), result), nil
}

// truthy applies the JSON notion of a set flag: true, non-zero numbers, and
// non-empty strings, arrays and objects.
func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return false
}
