// Package parsererror defines the error taxonomy shared by the store,
// the parsers and the CLI layer.
package parsererror

import "fmt"

// NotFoundError signals that a referenced category or keyword does not
// exist in the store. It is returned to the caller and never retried.
type NotFoundError struct {
	Kind string // "category" or "keyword"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Kind, e.Name)
}

// AlreadyExistsError signals an attempted creation of a duplicate
// category or keyword.
type AlreadyExistsError struct {
	Kind string // "category" or "keyword"
	Name string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s '%s' already exists", e.Kind, e.Name)
}

// ParseError represents a failure while parsing a specific field of an
// input document.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ExtractionError signals that no text could be produced from a source
// document at all. The document yields no records; processing of other
// documents in the same batch continues.
type ExtractionError struct {
	FilePath string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("could not extract text from '%s': %v", e.FilePath, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
