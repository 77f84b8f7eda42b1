package certalert

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrSheetNotFound indicates the requested sheet is not in the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// ExtractionError represents an error while reading a sheet.
type ExtractionError struct {
	SheetName string
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error in sheet %q: %v", e.SheetName, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheetName string, err error) *ExtractionError {
	return &ExtractionError{
		SheetName: sheetName,
		Err:       err,
	}
}

// Stage names the pipeline step a RunError came from.
type Stage string

const (
	// StageLoad covers opening the workbook and reading the sheet.
	StageLoad Stage = "load"
	// StageProcess covers filtering and formatting the rows.
	StageProcess Stage = "process"
	// StageDeliver covers sending the report.
	StageDeliver Stage = "deliver"
)

// RunError is returned by Runner.Run for any failure after configuration.
type RunError struct {
	Stage Stage
	Err   error
	// Hint is an optional operator-facing suggestion.
	Hint string
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}
