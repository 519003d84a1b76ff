// Package csvparser classifies rows of an exported CSV file. The file
// must contain a "Descripción" column; a "Clasificación" column is added
// (or overwritten) with the classifier's result and every other column
// passes through unchanged, in its original order.
package csvparser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fjacquet/ticket-csv/internal/categorizer"
	"fjacquet/ticket-csv/internal/common"
	"fjacquet/ticket-csv/internal/models"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

const (
	descriptionColumn    = "Descripción"
	classificationColumn = "Clasificación"
)

// ValidateFormat checks that the file is a CSV with a Descripción
// column and at least one data row.
func ValidateFormat(filePath string) (bool, error) {
	log.WithField("file", filePath).Info("Validating CSV format")

	file, err := os.Open(filePath)
	if err != nil {
		return false, fmt.Errorf("error opening file for validation: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	reader := csv.NewReader(file)
	reader.Comma = common.Delimiter
	// Ragged exports are tolerated here; ClassifyFile pads short rows.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return false, fmt.Errorf("error reading CSV header: %w", err)
	}

	if findColumn(header, descriptionColumn) < 0 {
		log.WithField("column", descriptionColumn).Info("Required column missing from CSV")
		return false, nil
	}

	if _, err := reader.Read(); err == io.EOF {
		log.Info("CSV file is empty (header only)")
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("error reading CSV record: %w", err)
	}

	return true, nil
}

// ClassifyFile reads inputFile, classifies each row by its Descripción
// value and writes the result to outputFile. Rows shorter than the
// header are padded so a ragged export still classifies cleanly.
func ClassifyFile(inputFile, outputFile string, classifier *categorizer.Classifier) error {
	log.WithFields(logrus.Fields{
		"input":  inputFile,
		"output": outputFile,
	}).Info("Classifying CSV file")

	valid, err := ValidateFormat(inputFile)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if !valid {
		return fmt.Errorf("invalid CSV format: missing %q column or no data rows", descriptionColumn)
	}

	in, err := os.Open(inputFile)
	if err != nil {
		return fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := in.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	reader := csv.NewReader(in)
	reader.Comma = common.Delimiter
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("error reading CSV header: %w", err)
	}

	descIdx := findColumn(header, descriptionColumn)
	classIdx := findColumn(header, classificationColumn)
	if classIdx < 0 {
		header = append(header, classificationColumn)
		classIdx = len(header) - 1
	}

	if err := os.MkdirAll(filepath.Dir(outputFile), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	out, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer func() {
		if err := out.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	writer := csv.NewWriter(out)
	writer.Comma = common.Delimiter

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}

	var count int
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("error reading CSV record: %w", err)
		}

		for len(row) < len(header) {
			row = append(row, "")
		}
		row[classIdx] = classifier.Classify(row[descIdx])

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("error writing CSV record: %w", err)
		}
		count++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("error flushing CSV output: %w", err)
	}

	log.WithField("count", count).Info("Successfully classified CSV rows")
	return nil
}

func findColumn(header []string, name string) int {
	for i, col := range header {
		if col == name {
			return i
		}
	}
	return -1
}
