package pdfparser

import (
	"fmt"
	"os"
	"os/exec"
)

// PDFExtractor defines the interface for extracting text from PDF files.
// It allows dependency injection so the parser can be tested without
// real PDF files or the pdftotext binary.
type PDFExtractor interface {
	// ExtractText extracts text content from a PDF file at the given path.
	ExtractText(pdfPath string) (string, error)
}

// RealPDFExtractor implements PDFExtractor using the pdftotext command.
// This is the production implementation and requires pdftotext to be
// installed.
type RealPDFExtractor struct{}

// NewRealPDFExtractor creates a new RealPDFExtractor instance.
func NewRealPDFExtractor() *RealPDFExtractor {
	return &RealPDFExtractor{}
}

// ExtractText extracts text from a PDF file using pdftotext -layout.
func (e *RealPDFExtractor) ExtractText(pdfPath string) (string, error) {
	tempFile := pdfPath + ".txt"

	cmd := exec.Command("pdftotext", "-layout", pdfPath, tempFile)
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("error running pdftotext: %w", err)
	}

	output, err := os.ReadFile(tempFile)
	if err != nil {
		return "", fmt.Errorf("error reading extracted text: %w", err)
	}

	if err := os.Remove(tempFile); err != nil {
		log.WithError(err).Warn("Failed to remove temporary text file")
	}

	return string(output), nil
}

// MockPDFExtractor implements PDFExtractor for testing purposes.
// It returns predefined data instead of extracting from PDF files.
type MockPDFExtractor struct {
	MockText string
	MockErr  error
}

// NewMockPDFExtractor creates a new MockPDFExtractor with the given mock data.
func NewMockPDFExtractor(mockText string, mockErr error) *MockPDFExtractor {
	return &MockPDFExtractor{
		MockText: mockText,
		MockErr:  mockErr,
	}
}

// ExtractText returns the predefined mock text or error.
func (e *MockPDFExtractor) ExtractText(pdfPath string) (string, error) {
	if e.MockErr != nil {
		return "", e.MockErr
	}
	return e.MockText, nil
}
