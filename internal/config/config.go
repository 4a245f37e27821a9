// Package config handles project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents project configuration stored in sidata.yml.
// Relative paths resolve against the project root.
type Config struct {
	JSONDir   string `yaml:"json_dir,omitempty"`   // Directory of extraction result files
	OutputDir string `yaml:"output_dir,omitempty"` // Directory receiving the CSV tables
	DBFile    string `yaml:"db_file,omitempty"`    // SQLite query layer; defaults under OutputDir
}

const (
	ConfigFile       = "sidata.yml"
	DefaultJSONDir   = "raw_json"
	DefaultOutputDir = "data"
	CacheDir         = "cache"
	DBFile           = "papers.db"
)

// Environment variables overriding the config file.
const (
	EnvJSONDir   = "SIDATA_JSON_DIR"
	EnvOutputDir = "SIDATA_OUTPUT_DIR"
)

var (
	// ErrNoProject is returned when no sidata.yml is found walking up.
	ErrNoProject = errors.New("no " + ConfigFile + " found")
	// ErrProjectExists is returned by Init when sidata.yml is already present.
	ErrProjectExists = errors.New(ConfigFile + " already exists")
)

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		JSONDir:   DefaultJSONDir,
		OutputDir: DefaultOutputDir,
	}
}

// ConfigPath returns the path to sidata.yml from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, ConfigFile)
}

// IsProject checks if the given path contains a project config file.
func IsProject(root string) bool {
	info, err := os.Stat(ConfigPath(root))
	return err == nil && !info.IsDir()
}

// FindProject walks up from the given path to find a project root.
func FindProject(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsProject(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", ErrNoProject
		}
		abs = parent
	}
}

// ResolveRoot picks the project root: an explicit root wins, then the nearest
// sidata.yml above start, then project_path from the global config, then
// start itself.
func ResolveRoot(explicit, start string) (string, error) {
	if explicit != "" {
		return filepath.Abs(ExpandPath(explicit))
	}
	if root, err := FindProject(start); err == nil {
		return root, nil
	}
	if p := GetProjectPath(); p != "" {
		return p, nil
	}
	return filepath.Abs(start)
}

// Load reads configuration from the project at the given root.
// A missing file yields the defaults.
func Load(root string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.JSONDir == "" {
		cfg.JSONDir = DefaultJSONDir
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}

	return cfg, nil
}

// ApplyEnv overrides directories from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvJSONDir); v != "" {
		c.JSONDir = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
}

// Save writes configuration to the project at the given root.
func (c *Config) Save(root string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Init writes the default configuration to a new project at root.
func Init(root string) (*Config, error) {
	if IsProject(root) {
		return nil, ErrProjectExists
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating project root: %w", err)
	}

	cfg := Default()
	if err := cfg.Save(root); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Paths holds resolved absolute locations.
type Paths struct {
	Root      string `json:"root" yaml:"root"`
	JSONDir   string `json:"json_dir" yaml:"json_dir"`
	OutputDir string `json:"output_dir" yaml:"output_dir"`
	DBPath    string `json:"db_path" yaml:"db_path"`
}

// Resolve returns the configured locations for a project root.
func (c *Config) Resolve(root string) Paths {
	p := Paths{
		Root:      root,
		JSONDir:   resolve(root, c.JSONDir),
		OutputDir: resolve(root, c.OutputDir),
	}
	if c.DBFile != "" {
		p.DBPath = resolve(root, c.DBFile)
	} else {
		p.DBPath = filepath.Join(p.OutputDir, CacheDir, DBFile)
	}
	return p
}

func resolve(root, path string) string {
	path = ExpandPath(path)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
