// Package pdfparser extracts receipt text from PDF files and feeds it
// through the ticket scanner. Input is expected to be digitally printed
// receipts; there is no OCR.
package pdfparser

import (
	"fjacquet/ticket-csv/internal/common"
	"fjacquet/ticket-csv/internal/models"
	"fjacquet/ticket-csv/internal/parsererror"
	"fjacquet/ticket-csv/internal/ticketparser"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Parser combines a PDF text extractor with the receipt scanner.
type Parser struct {
	extractor PDFExtractor
	scanner   *ticketparser.Scanner
}

// NewParser creates a Parser with the production pdftotext extractor.
func NewParser(scanner *ticketparser.Scanner) *Parser {
	return NewParserWithExtractor(scanner, NewRealPDFExtractor())
}

// NewParserWithExtractor creates a Parser with a custom extractor.
func NewParserWithExtractor(scanner *ticketparser.Scanner, extractor PDFExtractor) *Parser {
	return &Parser{
		extractor: extractor,
		scanner:   scanner,
	}
}

// ParseFile extracts the text of one PDF receipt and scans it. An
// extraction failure yields an ExtractionError and no records; callers
// processing a batch log it and continue with the next document.
func (p *Parser) ParseFile(pdfFile string) ([]models.ItemRecord, error) {
	log.WithField("file", pdfFile).Info("Parsing PDF receipt")

	text, err := p.extractor.ExtractText(pdfFile)
	if err != nil {
		return nil, &parsererror.ExtractionError{FilePath: pdfFile, Err: err}
	}

	return p.scanner.ScanText(text), nil
}

// ConvertToCSV parses one PDF receipt and writes the categorized item
// records to a CSV file.
func (p *Parser) ConvertToCSV(inputFile, outputFile string) error {
	records, err := p.ParseFile(inputFile)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		log.WithField("file", outputFile).Info("No items found, writing empty CSV with headers")
	}

	return common.WriteItemsToCSV(records, outputFile)
}
