package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pmsaops/sidata/internal/config"
	"github.com/spf13/cobra"
)

var configInit bool

func init() {
	configCmd.Flags().BoolVar(&configInit, "init", false, "Write a default sidata.yml to --root or the current directory")
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	Long: `Show the project root and the resolved input, output and database paths.

Resolution order for the project root:
  --root flag
  nearest ancestor directory containing sidata.yml
  project_path in ~/.config/sidata/config.yml
  current directory

sidata.yml keys:
  json_dir    Directory of extraction result files (default raw_json)
  output_dir  Directory for the CSV tables (default data)
  db_file     Query database (default <output_dir>/cache/papers.db)

With --init, a sidata.yml holding the defaults is written first. It is an
error if the file already exists.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	if configInit {
		initProject()
	}
	paths := mustResolvePaths()

	if humanOutput {
		outputHuman("root:        %s\n", paths.Root)
		outputHuman("json-dir:    %s\n", paths.JSONDir)
		outputHuman("output-dir:  %s\n", paths.OutputDir)
		outputHuman("db-path:     %s\n", paths.DBPath)
		return nil
	}
	return outputJSON(paths)
}

// initProject writes the default sidata.yml, exits on error.
func initProject() {
	root := rootFlag
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			exitWithError(ExitError, "getting current directory: %v", err)
		}
		root = cwd
	}
	root, err := filepath.Abs(config.ExpandPath(root))
	if err != nil {
		exitWithError(ExitError, "resolving project root: %v", err)
	}

	if _, err := config.Init(root); err != nil {
		if errors.Is(err, config.ErrProjectExists) {
			exitWithError(ExitConfigError, "%s already exists in %s", config.ConfigFile, root)
		}
		exitWithError(ExitError, "initializing project: %v", err)
	}
	if humanOutput {
		outputHuman("Created %s\n", config.ConfigPath(root))
	}
	rootFlag = root
}
