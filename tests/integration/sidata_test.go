// Package integration provides integration tests for sidata commands.
package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
)

var (
	sidataBinary     string
	sidataBinaryOnce sync.Once
	sidataBinaryErr  error
)

// getBinary builds the sidata binary once and returns its path.
func getBinary(t *testing.T) string {
	t.Helper()
	sidataBinaryOnce.Do(func() {
		// Get module root directory
		_, filename, _, ok := runtime.Caller(0)
		if !ok {
			sidataBinaryErr = os.ErrInvalid
			return
		}
		moduleRoot := filepath.Dir(filepath.Dir(filepath.Dir(filename)))

		tmpDir, err := os.MkdirTemp("", "sidata-test-*")
		if err != nil {
			sidataBinaryErr = err
			return
		}
		sidataBinary = filepath.Join(tmpDir, "sidata")

		cmd := exec.Command("go", "build", "-o", sidataBinary, "./cmd/sidata")
		cmd.Dir = moduleRoot
		if output, err := cmd.CombinedOutput(); err != nil {
			sidataBinaryErr = &buildError{output: string(output), err: err}
			return
		}
	})
	if sidataBinaryErr != nil {
		t.Fatalf("failed to build sidata: %v", sidataBinaryErr)
	}
	return sidataBinary
}

type buildError struct {
	output string
	err    error
}

func (e *buildError) Error() string {
	return e.err.Error() + ": " + e.output
}

// setupProject creates a project with a sidata.yml and the given result files.
func setupProject(t *testing.T, results map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "sidata.yml"), []byte("json_dir: raw_json\noutput_dir: data\n"), 0644); err != nil {
		t.Fatal(err)
	}
	jsonDir := filepath.Join(dir, "raw_json")
	if err := os.MkdirAll(jsonDir, 0755); err != nil {
		t.Fatal(err)
	}
	for name, content := range results {
		if err := os.WriteFile(filepath.Join(jsonDir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// runSidata executes sidata in dir and returns stdout and stderr.
func runSidata(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	cmd := exec.Command(getBinary(t), args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"XDG_CONFIG_HOME="+filepath.Join(dir, "config"),
		"SIDATA_JSON_DIR=",
		"SIDATA_OUTPUT_DIR=",
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

var scenarioResults = map[string]string{
	"paper1.json": `{"success": true, "result": {
		"paper_info": {"year": 2022},
		"catalytic_mechanism": {"dominant_mechanism": "Radical"},
		"reactive_species": {"dominant_species": "SO4"},
		"experimental_system": {"catalyst": {"type": "biochar-derived"}, "target_pollutant": {"category": "antibiotic residue"}}}}`,
	"paper2.json": `{"success": true, "result": {
		"paper_info": {"year": 2022},
		"catalytic_mechanism": {"dominant_mechanism": "Both"},
		"reactive_species": {"dominant_species": "SO4•- and •OH mixed"},
		"experimental_system": {"catalyst": {"type": null}, "target_pollutant": {"category": "phenol compound"}}}}`,
	"paper3.json": `{"success": true, "result": {
		"paper_info": {"year": 2023},
		"catalytic_mechanism": {"dominant_mechanism": null},
		"reactive_species": {"dominant_species": "ferryl Fe(IV)"},
		"experimental_system": {"catalyst": {"type": "MOF"}}}}`,
	"failed.json": `{"success": false, "error": "timeout"}`,
	"broken.json": `{"success": true, "result": {`,
}

func TestGenerate(t *testing.T) {
	dir := setupProject(t, scenarioResults)

	stdout, stderr, err := runSidata(t, dir, "generate")
	if err != nil {
		t.Fatalf("generate failed: %v\nstderr: %s", err, stderr)
	}

	var result struct {
		Status string   `json:"status"`
		Papers int      `json:"papers"`
		Files  []string `json:"files"`
	}
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("parsing output: %v\n%s", err, stdout)
	}
	if result.Status != "generated" || result.Papers != 3 || len(result.Files) != 6 {
		t.Errorf("result = %+v, want 3 papers and 6 files", result)
	}

	data, err := os.ReadFile(filepath.Join(dir, "data", "mechanism_by_year.csv"))
	if err != nil {
		t.Fatal(err)
	}
	want := "year,non_radical,both,radical,total\r\n2022,0,1,1,2\r\n2023,0,0,0,0\r\n"
	if string(data) != want {
		t.Errorf("mechanism_by_year.csv = %q, want %q", data, want)
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	dir := setupProject(t, scenarioResults)

	read := func() map[string][]byte {
		out := map[string][]byte{}
		entries, err := os.ReadDir(filepath.Join(dir, "data"))
		if err != nil {
			t.Fatal(err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			b, err := os.ReadFile(filepath.Join(dir, "data", e.Name()))
			if err != nil {
				t.Fatal(err)
			}
			out[e.Name()] = b
		}
		return out
	}

	if _, stderr, err := runSidata(t, dir, "generate"); err != nil {
		t.Fatalf("first generate failed: %v\n%s", err, stderr)
	}
	first := read()
	if _, stderr, err := runSidata(t, dir, "generate"); err != nil {
		t.Fatalf("second generate failed: %v\n%s", err, stderr)
	}
	second := read()

	if len(first) != 6 {
		t.Fatalf("got %d files, want 6", len(first))
	}
	for name, b := range first {
		if !bytes.Equal(b, second[name]) {
			t.Errorf("%s changed between runs", name)
		}
	}
}

func TestGenerate_EmptyInput(t *testing.T) {
	dir := setupProject(t, nil)

	if _, stderr, err := runSidata(t, dir, "generate"); err != nil {
		t.Fatalf("generate failed: %v\n%s", err, stderr)
	}

	data, err := os.ReadFile(filepath.Join(dir, "data", "catalyst_distribution.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "catalyst_type,count,percentage\r\n" {
		t.Errorf("catalyst_distribution.csv = %q, want header only", data)
	}

	data, err = os.ReadFile(filepath.Join(dir, "data", "basic_statistics.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "year_range_start,9999\r\n") || !strings.Contains(string(data), "year_range_end,0\r\n") {
		t.Errorf("basic_statistics.csv lacks sentinels:\n%s", data)
	}
}

func TestGenerate_MissingInput(t *testing.T) {
	dir := t.TempDir()

	_, _, err := runSidata(t, dir, "generate")
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected exit error, got %v", err)
	}
	if exitErr.ExitCode() != 2 {
		t.Errorf("exit code = %d, want 2", exitErr.ExitCode())
	}
}

func TestGenerate_Human(t *testing.T) {
	dir := setupProject(t, scenarioResults)

	stdout, stderr, err := runSidata(t, dir, "generate", "--human")
	if err != nil {
		t.Fatalf("generate failed: %v\n%s", err, stderr)
	}
	if !strings.Contains(stdout, "Loaded 3 papers") {
		t.Errorf("output missing loaded count:\n%s", stdout)
	}
	if n := strings.Count(stdout, "Saved: "); n != 6 {
		t.Errorf("got %d Saved lines, want 6", n)
	}
}

func TestStats(t *testing.T) {
	dir := setupProject(t, scenarioResults)

	stdout, stderr, err := runSidata(t, dir, "stats")
	if err != nil {
		t.Fatalf("stats failed: %v\n%s", err, stderr)
	}

	var stats map[string]int
	if err := json.Unmarshal([]byte(stdout), &stats); err != nil {
		t.Fatalf("parsing output: %v\n%s", err, stdout)
	}
	if stats["total_papers"] != 3 || stats["papers_with_mechanism"] != 2 || stats["year_range_end"] != 2023 {
		t.Errorf("stats = %v", stats)
	}
}

func TestNormalize(t *testing.T) {
	dir := t.TempDir()

	stdout, stderr, err := runSidata(t, dir, "normalize", "catalyst", "MOF-derived", "carbon", "--human")
	if err != nil {
		t.Fatalf("normalize failed: %v\n%s", err, stderr)
	}
	if strings.TrimSpace(stdout) != "MOF-derived" {
		t.Errorf("normalize output = %q, want MOF-derived", stdout)
	}

	_, _, err = runSidata(t, dir, "normalize", "metal", "x")
	if err == nil {
		t.Error("normalize with unknown kind should fail")
	}
}

func TestRebuildAndQuery(t *testing.T) {
	dir := setupProject(t, scenarioResults)

	if _, _, err := runSidata(t, dir, "query", "SELECT 1"); err == nil {
		t.Error("query before rebuild should fail")
	}

	if _, stderr, err := runSidata(t, dir, "rebuild"); err != nil {
		t.Fatalf("rebuild failed: %v\n%s", err, stderr)
	}

	stdout, stderr, err := runSidata(t, dir, "query", "SELECT COUNT(*) AS n FROM papers WHERE dominant_mechanism IS NOT NULL", "--csv")
	if err != nil {
		t.Fatalf("query failed: %v\n%s", err, stderr)
	}
	if stdout != "n\n2\n" {
		t.Errorf("query output = %q, want n/2", stdout)
	}
}

func TestStyle(t *testing.T) {
	stdout, stderr, err := runSidata(t, t.TempDir(), "style")
	if err != nil {
		t.Fatalf("style failed: %v\n%s", err, stderr)
	}
	for _, want := range []string{"dpi: 300", "primary_palette:", "significance: 18"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("style output missing %q", want)
		}
	}
}

func TestGenerate_SingletOxygenMixture(t *testing.T) {
	results := map[string]string{}
	for name, content := range scenarioResults {
		results[name] = content
	}
	results["paper2.json"] = strings.Replace(results["paper2.json"], "SO4•- and •OH mixed", "1O2 and •OH mixed", 1)
	dir := setupProject(t, results)

	if _, stderr, err := runSidata(t, dir, "generate"); err != nil {
		t.Fatalf("generate failed: %v\n%s", err, stderr)
	}

	data, err := os.ReadFile(filepath.Join(dir, "data", "species_by_period.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "\r\n2022,1,0,1,0,0,0,2\r\n") {
		t.Errorf("species_by_period.csv missing 2022 row:\n%s", data)
	}
}

func TestRebuild_ReportsStoredCount(t *testing.T) {
	dir := setupProject(t, scenarioResults)

	stdout, stderr, err := runSidata(t, dir, "rebuild")
	if err != nil {
		t.Fatalf("rebuild failed: %v\n%s", err, stderr)
	}

	var result struct {
		Status string `json:"status"`
		Papers int    `json:"papers"`
	}
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("parsing output: %v\n%s", err, stdout)
	}
	if result.Status != "rebuilt" || result.Papers != 3 {
		t.Errorf("result = %+v, want 3 papers rebuilt", result)
	}
}

func TestStats_FromDB(t *testing.T) {
	dir := setupProject(t, scenarioResults)

	_, _, err := runSidata(t, dir, "stats", "--db")
	exitErr, ok := err.(*exec.ExitError)
	if !ok || exitErr.ExitCode() != 3 {
		t.Fatalf("stats --db before rebuild: got %v, want exit code 3", err)
	}

	if _, stderr, err := runSidata(t, dir, "rebuild"); err != nil {
		t.Fatalf("rebuild failed: %v\n%s", err, stderr)
	}
	fromFiles, stderr, err := runSidata(t, dir, "stats")
	if err != nil {
		t.Fatalf("stats failed: %v\n%s", err, stderr)
	}
	fromDB, stderr, err := runSidata(t, dir, "stats", "--db")
	if err != nil {
		t.Fatalf("stats --db failed: %v\n%s", err, stderr)
	}
	if fromDB != fromFiles {
		t.Errorf("stats --db = %s\nwant %s", fromDB, fromFiles)
	}
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()

	stdout, stderr, err := runSidata(t, dir, "config", "--init")
	if err != nil {
		t.Fatalf("config --init failed: %v\n%s", err, stderr)
	}

	data, err := os.ReadFile(filepath.Join(dir, "sidata.yml"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"json_dir: raw_json", "output_dir: data"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("sidata.yml missing %q:\n%s", want, data)
		}
	}

	var paths struct {
		Root    string `json:"root"`
		JSONDir string `json:"json_dir"`
	}
	if err := json.Unmarshal([]byte(stdout), &paths); err != nil {
		t.Fatalf("parsing output: %v\n%s", err, stdout)
	}
	if filepath.Base(paths.JSONDir) != "raw_json" {
		t.Errorf("json_dir = %q, want .../raw_json", paths.JSONDir)
	}

	_, _, err = runSidata(t, dir, "config", "--init")
	exitErr, ok := err.(*exec.ExitError)
	if !ok || exitErr.ExitCode() != 2 {
		t.Errorf("second config --init: got %v, want exit code 2", err)
	}
}
