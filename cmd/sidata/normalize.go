package main

import (
	"strings"

	"github.com/pmsaops/sidata/internal/normalize"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(normalizeCmd)
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize <species|catalyst|pollutant> <text...>",
	Short: "Show the canonical label for free text",
	Long: `Apply one of the label normalizers to free text and print the result.

Examples:
  sidata normalize species "SO4•- and •OH"        # Other
  sidata normalize catalyst "MOF-derived carbon"  # MOF-derived
  sidata normalize pollutant "tetracycline antibiotic"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runNormalize,
}

// NormalizeResult is the response for the normalize command.
type NormalizeResult struct {
	Kind  string `json:"kind"`
	Input string `json:"input"`
	Label string `json:"label"`
}

func runNormalize(cmd *cobra.Command, args []string) error {
	kind := normalize.Kind(args[0])
	fn, ok := normalize.For(kind)
	if !ok {
		exitWithError(ExitError, "unknown kind %q (valid: %v)", args[0], normalize.Kinds)
	}

	input := strings.Join(args[1:], " ")
	label, ok := fn(input)
	if !ok {
		exitWithError(ExitDataError, "no label for empty input")
	}

	if humanOutput {
		outputHuman("%s\n", label)
		return nil
	}
	return outputJSON(NormalizeResult{Kind: string(kind), Input: input, Label: string(label)})
}
