// Package report handles aggregation of categorized CSV files
package report

import (
	"fmt"
	"os"

	"fjacquet/ticket-csv/cmd/root"
	"fjacquet/ticket-csv/internal/common"
	"fjacquet/ticket-csv/internal/models"
	"fjacquet/ticket-csv/internal/report"

	"github.com/spf13/cobra"
)

var format string

// Cmd represents the report command
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Aggregate a categorized CSV into spending summaries",
	Long: `Report reads a CSV produced by scan or classify and prints the total
spending per date (time series) and per category.`,
	Run: reportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format (json or csv)")
}

func reportFunc(cmd *cobra.Command, args []string) {
	input := root.SharedFlags.Input
	if input == "" {
		root.Log.Error("Input file is required (use -i)")
		return
	}

	items, err := common.ReadCSVFile[models.ItemRecord](input)
	if err != nil {
		root.Log.Errorf("Error reading items: %v", err)
		return
	}

	generator := report.NewGenerator()
	data, err := generator.Render(generator.Generate(items), format)
	if err != nil {
		root.Log.Errorf("Error generating report: %v", err)
		return
	}

	if output := root.SharedFlags.Output; output != "" {
		if err := os.WriteFile(output, data, models.PermissionReportFile); err != nil {
			root.Log.Errorf("Error writing report: %v", err)
			return
		}
		root.Log.Infof("Report written to %s", output)
		return
	}

	fmt.Println(string(data))
}
