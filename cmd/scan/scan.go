// Package scan handles conversion of a single receipt to CSV
package scan

import (
	"path/filepath"
	"strings"

	"fjacquet/ticket-csv/cmd/root"
	"fjacquet/ticket-csv/internal/pdfparser"
	"fjacquet/ticket-csv/internal/ticketparser"

	"github.com/spf13/cobra"
)

// Cmd represents the scan command
var Cmd = &cobra.Command{
	Use:   "scan",
	Short: "Convert one receipt (PDF or extracted text) to a categorized CSV",
	Long: `Scan extracts the line items of a single receipt, classifies each item
against the category store and writes the result as CSV. PDF input is run
through pdftotext first; .txt input is scanned as-is.`,
	Run: scanFunc,
}

func scanFunc(cmd *cobra.Command, args []string) {
	input := root.SharedFlags.Input
	if input == "" {
		root.Log.Error("Input file is required (use -i)")
		return
	}

	output := root.SharedFlags.Output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".csv"
	}

	scanner := ticketparser.NewScanner(root.NewClassifier())

	var err error
	if strings.EqualFold(filepath.Ext(input), ".pdf") {
		err = pdfparser.NewParser(scanner).ConvertToCSV(input, output)
	} else {
		err = scanner.ConvertToCSV(input, output)
	}
	if err != nil {
		root.Log.Errorf("Error converting receipt: %v", err)
		return
	}

	root.Log.Infof("Successfully converted %s to %s", input, output)
}
