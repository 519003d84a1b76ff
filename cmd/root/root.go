// Package root contains the root command for the application
package root

import (
	"os"

	"fjacquet/ticket-csv/internal/categorizer"
	"fjacquet/ticket-csv/internal/common"
	"fjacquet/ticket-csv/internal/config"
	"fjacquet/ticket-csv/internal/csvparser"
	"fjacquet/ticket-csv/internal/fileutils"
	"fjacquet/ticket-csv/internal/pdfparser"
	"fjacquet/ticket-csv/internal/report"
	"fjacquet/ticket-csv/internal/store"
	"fjacquet/ticket-csv/internal/ticketparser"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input  string
	Output string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the loaded application configuration, available after
	// PersistentPreRun has executed.
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "ticket-csv",
		Short: "A CLI tool to convert receipt PDFs to categorized CSV files.",
		Long: `ticket-csv extracts line items from supermarket receipt PDFs and CSV
exports, classifies every item against an editable keyword dictionary and
aggregates the results into spending summaries.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to ticket-csv!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()

			var err error
			Cfg, err = config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to initialize configuration: %v", err)
			}

			// Set the configured logger for all packages
			store.SetLogger(Log)
			categorizer.SetLogger(Log)
			ticketparser.SetLogger(Log)
			pdfparser.SetLogger(Log)
			csvparser.SetLogger(Log)
			common.SetLogger(Log)
			report.SetLogger(Log)
			fileutils.SetLogger(Log)

			if delim := os.Getenv("CSV_DELIMITER"); delim != "" {
				common.SetDelimiter([]rune(delim)[0])
			} else {
				common.SetDelimiter([]rune(Cfg.CSV.Delimiter)[0])
			}
		},
	}

	// SharedFlags holds common flags accessible to all commands
	SharedFlags = CommonFlags{}

	// StoreFile overrides the configured category store path when set
	StoreFile string
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().StringVarP(&StoreFile, "categories", "c", "", "Category store file (overrides configuration)")
}

// NewStore returns the category store selected by flags/configuration.
func NewStore() *store.CategoryStore {
	path := StoreFile
	if path == "" {
		path = Cfg.Store.File
	}
	return store.NewCategoryStore(path)
}

// NewClassifier returns a classifier loaded from the selected store.
func NewClassifier() *categorizer.Classifier {
	return categorizer.NewClassifier(NewStore())
}
