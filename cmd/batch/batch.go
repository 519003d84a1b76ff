// Package batch handles conversion of a directory of receipt PDFs
package batch

import (
	"errors"
	"path/filepath"
	"strings"

	"fjacquet/ticket-csv/cmd/root"
	"fjacquet/ticket-csv/internal/fileutils"
	"fjacquet/ticket-csv/internal/parsererror"
	"fjacquet/ticket-csv/internal/pdfparser"
	"fjacquet/ticket-csv/internal/ticketparser"

	"github.com/spf13/cobra"
)

var (
	inputDir  string
	outputDir string
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Convert all receipt PDFs in a directory to categorized CSV files",
	Run:   batchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputDir, "input-dir", "d", "", "Directory containing receipt PDFs")
	Cmd.Flags().StringVarP(&outputDir, "output-dir", "t", "", "Directory for generated CSV files")
	_ = Cmd.MarkFlagRequired("input-dir")
	_ = Cmd.MarkFlagRequired("output-dir")
}

func batchFunc(cmd *cobra.Command, args []string) {
	if err := fileutils.EnsureDirectoryExists(outputDir); err != nil {
		root.Log.Errorf("Error creating output directory: %v", err)
		return
	}

	files, err := fileutils.ListFilesWithExtension(inputDir, ".pdf")
	if err != nil {
		root.Log.Errorf("Error reading input directory: %v", err)
		return
	}

	scanner := ticketparser.NewScanner(root.NewClassifier())
	parser := pdfparser.NewParser(scanner)

	var processed int
	for _, file := range files {
		base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		outputFile := filepath.Join(outputDir, base+".csv")

		if err := parser.ConvertToCSV(file, outputFile); err != nil {
			// An unreadable source skips only that document.
			var extractionErr *parsererror.ExtractionError
			if errors.As(err, &extractionErr) {
				root.Log.WithError(err).Warnf("Skipping unreadable receipt %s", file)
				continue
			}
			root.Log.WithError(err).Warnf("Failed to convert %s, skipping", file)
			continue
		}
		processed++
	}

	root.Log.Infof("Batch conversion completed: %d of %d files processed", processed, len(files))
}
