package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/ticket-csv/cmd/batch"
	"fjacquet/ticket-csv/cmd/categories"
	"fjacquet/ticket-csv/cmd/classify"
	"fjacquet/ticket-csv/cmd/report"
	"fjacquet/ticket-csv/cmd/root"
	"fjacquet/ticket-csv/cmd/scan"
	"fjacquet/ticket-csv/cmd/suggest"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	loadEnvSilently()

	// 2. Configure the global log level before any logger is used
	configureLogLevelDirectly()

	// 3. Initialize root command flags
	root.Init()

	// 4. Add all subcommands
	root.Cmd.AddCommand(scan.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(classify.Cmd)
	root.Cmd.AddCommand(categories.Cmd)
	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(suggest.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

// configureLogLevelDirectly sets the global log level for all logrus instances
func configureLogLevelDirectly() {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}

	logrus.SetLevel(logLevel)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
