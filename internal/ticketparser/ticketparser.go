// Package ticketparser turns the extracted text of one retail receipt
// into structured item records. It is a single-pass state machine over
// the lines of the document: it seeks the product-section header, reads
// item lines until the terminator, and carries the most recently seen
// date/time forward onto every record.
package ticketparser

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

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
		common.SetLogger(logger)
	}
}

// scanState is the state of the line scanner.
type scanState int

const (
	// stateSeeking scans for the product-section header.
	stateSeeking scanState = iota
	// stateInItems reads item lines.
	stateInItems
	// stateDone is terminal; remaining lines are not examined.
	stateDone
)

var (
	dateTimePattern = regexp.MustCompile(`(\d{2}/\d{2}/\d{4}) (\d{2}:\d{2})`)
	pricePattern    = regexp.MustCompile(`\d+,\d{2}`)
	quantityPattern = regexp.MustCompile(`^(\d+)`)
)

// Scanner parses receipt text into item records, classifying each
// record's description through the injected classifier.
type Scanner struct {
	classifier *categorizer.Classifier
}

// NewScanner creates a Scanner using the given classifier.
func NewScanner(classifier *categorizer.Classifier) *Scanner {
	return &Scanner{classifier: classifier}
}

// Parse reads the full receipt text from r and scans it.
func (s *Scanner) Parse(r io.Reader) ([]models.ItemRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading receipt text: %w", err)
	}
	return s.ScanText(string(data)), nil
}

// ParseFile scans an already-extracted receipt text file.
func (s *Scanner) ParseFile(filePath string) ([]models.ItemRecord, error) {
	log.WithField("file", filePath).Info("Parsing receipt text file")

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening receipt text file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	return s.Parse(file)
}

// ScanText runs the state machine over the lines of one document and
// returns the item records in line order. Lines that fail item parsing
// are skipped silently; the scan always completes.
func (s *Scanner) ScanText(text string) []models.ItemRecord {
	var (
		records   []models.ItemRecord
		date      string
		timeOfDay string
		state     = stateSeeking
	)

	for _, line := range strings.Split(text, "\n") {
		if state == stateDone {
			break
		}

		// Precedence 1: a date/time line updates the current
		// date/time and is never an item line, in any state.
		if m := dateTimePattern.FindStringSubmatch(line); m != nil {
			date = m[1]
			timeOfDay = m[2]
			log.WithFields(logrus.Fields{
				"date": date,
				"time": timeOfDay,
			}).Debug("Found receipt date/time line")
			continue
		}

		// Precedence 2: the section header starts the item section.
		if strings.Contains(line, models.SectionHeaderMarker) {
			state = stateInItems
			continue
		}

		// Precedence 3: the terminator ends the scan immediately.
		if strings.Contains(line, models.SectionTerminator) {
			state = stateDone
			break
		}

		if state != stateInItems {
			continue
		}

		record, ok := s.parseItemLine(line)
		if !ok {
			continue
		}

		record.Date = date
		record.Time = timeOfDay
		record.Category = s.classifier.Classify(record.Description)
		records = append(records, record)
	}

	log.WithField("count", len(records)).Info("Scanned receipt")
	return records
}

// parseItemLine parses one line of the item section. It returns false
// when the line is not an item line: no decimal-comma price token, no
// leading quantity digits, or a price token that fails conversion. Such
// lines produce no record and no error.
func (s *Scanner) parseItemLine(line string) (models.ItemRecord, bool) {
	prices := pricePattern.FindAllString(line, -1)
	if len(prices) == 0 {
		return models.ItemRecord{}, false
	}

	quantityMatch := quantityPattern.FindString(line)
	if quantityMatch == "" {
		log.WithField("line", line).Debug("Skipping line without leading quantity")
		return models.ItemRecord{}, false
	}
	quantity, err := strconv.Atoi(quantityMatch)
	if err != nil {
		log.WithError(err).WithField("line", line).Debug("Skipping line with unparsable quantity")
		return models.ItemRecord{}, false
	}

	// Last price token is the line total, the one before it (when
	// present) is the unit price. A single token means the unit price
	// is absent; it is never inferred from the total.
	totalToken := prices[len(prices)-1]
	amount, err := models.ParseCommaDecimal(totalToken)
	if err != nil {
		log.WithError(err).WithField("line", line).Warn("Skipping line with invalid total price")
		return models.ItemRecord{}, false
	}

	record := models.ItemRecord{
		Quantity: quantity,
		Amount:   models.NewPrice(amount),
	}

	if len(prices) >= 2 {
		unit, err := models.ParseCommaDecimal(prices[len(prices)-2])
		if err != nil {
			log.WithError(err).WithField("line", line).Warn("Skipping line with invalid unit price")
			return models.ItemRecord{}, false
		}
		unitPrice := models.NewPrice(unit)
		record.UnitPrice = &unitPrice
	}

	record.Description = extractDescription(line, quantityMatch, prices)
	return record, true
}

// extractDescription strips the leading quantity digits, then removes
// the trailing price tokens: everything from the last occurrence of the
// total token onward, and the unit-price token when it is left dangling
// at the tail. The result is whitespace-trimmed.
func extractDescription(line, quantityPrefix string, prices []string) string {
	rest := strings.TrimLeft(line[len(quantityPrefix):], " \t")

	totalToken := prices[len(prices)-1]
	if idx := strings.LastIndex(rest, totalToken); idx >= 0 {
		rest = rest[:idx]
	}
	rest = strings.TrimSpace(rest)

	if len(prices) >= 2 {
		unitToken := prices[len(prices)-2]
		if strings.HasSuffix(rest, unitToken) {
			rest = strings.TrimSpace(rest[:len(rest)-len(unitToken)])
		}
	}

	return rest
}

// ConvertToCSV scans a receipt text file and writes the categorized
// item records to a CSV file.
func (s *Scanner) ConvertToCSV(inputFile, outputFile string) error {
	records, err := s.ParseFile(inputFile)
	if err != nil {
		return err
	}
	return common.WriteItemsToCSV(records, outputFile)
}
