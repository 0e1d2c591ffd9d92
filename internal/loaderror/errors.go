// Package loaderror defines the typed errors raised while loading input files.
// The analysis engine itself never fails; only the file layers return these.
package loaderror

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by loaders when a required input file does not exist.
var ErrNotFound = errors.New("input file not found")

// ParseError represents a value that could not be parsed from an input file.
type ParseError struct {
	Source string
	Line   int
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: failed to parse %s='%s': %v",
			e.Source, e.Line, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Source, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents a loaded document that breaks a rule.
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}

// InvalidFormatError represents an input file that does not have the expected
// layout, such as a CSV without the required header columns.
type InvalidFormatError struct {
	FilePath             string
	ExpectedFormat       string
	ActualContentSnippet string // Optional: a snippet of the actual content for debugging
	Msg                  string
}

func (e *InvalidFormatError) Error() string {
	if e.ActualContentSnippet != "" {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s. Content snippet: '%s'",
			e.FilePath, e.Msg, e.ExpectedFormat, e.ActualContentSnippet)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// WriteError represents a failure to write a result file.
type WriteError struct {
	FilePath string
	Err      error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.FilePath, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
