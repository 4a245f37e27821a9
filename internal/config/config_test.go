package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestIsProject(t *testing.T) {
	tmpDir := t.TempDir()

	if IsProject(tmpDir) {
		t.Error("IsProject() = true for directory without config")
	}

	if err := os.WriteFile(ConfigPath(tmpDir), []byte("json_dir: raw\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if !IsProject(tmpDir) {
		t.Error("IsProject() = false for project directory")
	}
}

func TestIsProject_DirNotFile(t *testing.T) {
	tmpDir := t.TempDir()

	if err := os.Mkdir(ConfigPath(tmpDir), 0755); err != nil {
		t.Fatal(err)
	}
	if IsProject(tmpDir) {
		t.Error("IsProject() = true when sidata.yml is a directory")
	}
}

func TestFindProject(t *testing.T) {
	tmpDir := t.TempDir()
	projectDir := filepath.Join(tmpDir, "review")
	nestedDir := filepath.Join(projectDir, "scripts", "figs")

	if err := os.MkdirAll(nestedDir, 0755); err != nil {
		t.Fatalf("Failed to create nested dirs: %v", err)
	}
	if err := os.WriteFile(ConfigPath(projectDir), nil, 0644); err != nil {
		t.Fatal(err)
	}

	found, err := FindProject(nestedDir)
	if err != nil {
		t.Fatalf("FindProject() error = %v", err)
	}

	// Resolve symlinks for comparison (macOS /var -> /private/var)
	want, _ := filepath.EvalSymlinks(projectDir)
	got, _ := filepath.EvalSymlinks(found)
	if got != want {
		t.Errorf("FindProject() = %q, want %q", got, want)
	}
}

func TestResolveRoot_Explicit(t *testing.T) {
	tmpDir := t.TempDir()

	got, err := ResolveRoot(tmpDir, "/somewhere/else")
	if err != nil {
		t.Fatalf("ResolveRoot() error = %v", err)
	}
	if got != tmpDir {
		t.Errorf("ResolveRoot() = %q, want %q", got, tmpDir)
	}
}

func TestResolveRoot_FallsBackToStart(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	start := t.TempDir()
	got, err := ResolveRoot("", start)
	if err != nil {
		t.Fatalf("ResolveRoot() error = %v", err)
	}
	if got != start {
		t.Errorf("ResolveRoot() = %q, want %q", got, start)
	}
}

func TestLoad_Missing(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.JSONDir != DefaultJSONDir || cfg.OutputDir != DefaultOutputDir {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := &Config{JSONDir: "extractions", DBFile: "/tmp/papers.db"}
	if err := cfg.Save(tmpDir); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.JSONDir != "extractions" {
		t.Errorf("JSONDir = %q, want extractions", loaded.JSONDir)
	}
	if loaded.OutputDir != DefaultOutputDir {
		t.Errorf("OutputDir = %q, want default", loaded.OutputDir)
	}
	if loaded.DBFile != "/tmp/papers.db" {
		t.Errorf("DBFile = %q", loaded.DBFile)
	}
}

func TestInit(t *testing.T) {
	root := filepath.Join(t.TempDir(), "review")

	cfg, err := Init(root)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if cfg.JSONDir != DefaultJSONDir || cfg.OutputDir != DefaultOutputDir {
		t.Errorf("Init() = %+v, want defaults", cfg)
	}
	if !IsProject(root) {
		t.Fatal("Init() did not write sidata.yml")
	}

	loaded, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("Load() = %+v, want %+v", loaded, cfg)
	}

	if _, err := Init(root); !errors.Is(err, ErrProjectExists) {
		t.Errorf("second Init() error = %v, want ErrProjectExists", err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(ConfigPath(tmpDir), []byte("json_dir: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(tmpDir); err == nil {
		t.Error("Load() expected error for invalid YAML")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvJSONDir, "/data/in")
	t.Setenv(EnvOutputDir, "")

	cfg := Default()
	cfg.ApplyEnv()
	if cfg.JSONDir != "/data/in" {
		t.Errorf("JSONDir = %q, want /data/in", cfg.JSONDir)
	}
	if cfg.OutputDir != DefaultOutputDir {
		t.Errorf("OutputDir = %q, want default", cfg.OutputDir)
	}
}

func TestResolve(t *testing.T) {
	root := "/review"

	tests := []struct {
		name string
		cfg  Config
		want Paths
	}{
		{
			name: "defaults",
			cfg:  *Default(),
			want: Paths{
				Root:      root,
				JSONDir:   "/review/raw_json",
				OutputDir: "/review/data",
				DBPath:    "/review/data/cache/papers.db",
			},
		},
		{
			name: "absolute and explicit db",
			cfg:  Config{JSONDir: "/srv/json", OutputDir: "out", DBFile: "idx.db"},
			want: Paths{
				Root:      root,
				JSONDir:   "/srv/json",
				OutputDir: "/review/out",
				DBPath:    "/review/idx.db",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Resolve(root); got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	if got := ExpandPath("~/review"); got != filepath.Join(home, "review") {
		t.Errorf("ExpandPath(~/review) = %q", got)
	}
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandPath(/abs/path) = %q", got)
	}
	if got := ExpandPath(""); got != "" {
		t.Errorf("ExpandPath(\"\") = %q", got)
	}
}
