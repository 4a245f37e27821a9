package main

import (
	"os"

	"github.com/pmsaops/sidata/internal/plotstyle"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func init() {
	rootCmd.AddCommand(styleCmd)
}

var styleCmd = &cobra.Command{
	Use:   "style",
	Short: "Print the figure style defaults",
	Long: `Print the shared figure style (palettes, model colours and labels,
font sizes, line widths, figure sizes, DPI) for renderers that consume the
CSV tables. Output is YAML.`,
	Args: cobra.NoArgs,
	RunE: runStyle,
}

func runStyle(cmd *cobra.Command, args []string) error {
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(plotstyle.Default()); err != nil {
		return err
	}
	return enc.Close()
}
