// Package classify handles classification of exported CSV files
package classify

import (
	"path/filepath"
	"strings"

	"fjacquet/ticket-csv/cmd/root"
	"fjacquet/ticket-csv/internal/csvparser"

	"github.com/spf13/cobra"
)

// Cmd represents the classify command
var Cmd = &cobra.Command{
	Use:   "classify",
	Short: "Add a Clasificación column to a CSV with a Descripción column",
	Long: `Classify reads a CSV export containing a Descripción column, classifies
every row against the category store and writes the same rows with a
Clasificación column added. All other columns pass through unchanged.`,
	Run: classifyFunc,
}

func classifyFunc(cmd *cobra.Command, args []string) {
	input := root.SharedFlags.Input
	if input == "" {
		root.Log.Error("Input file is required (use -i)")
		return
	}

	output := root.SharedFlags.Output
	if output == "" {
		ext := filepath.Ext(input)
		output = strings.TrimSuffix(input, ext) + "-classified" + ext
	}

	if err := csvparser.ClassifyFile(input, output, root.NewClassifier()); err != nil {
		root.Log.Errorf("Error classifying CSV: %v", err)
		return
	}

	root.Log.Infof("Successfully classified %s to %s", input, output)
}
