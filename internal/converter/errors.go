package converter

import (
	"errors"
	"fmt"
)

var (
	// ErrInputDirMissing indicates the input directory does not exist.
	ErrInputDirMissing = errors.New("input directory not found")
	// ErrNoInputFile indicates the input directory holds no recognised spreadsheet.
	ErrNoInputFile = errors.New("no input spreadsheet found")
	// ErrInsufficientColumns indicates the sheet is narrower than the column mapping.
	ErrInsufficientColumns = errors.New("insufficient columns")
	// ErrUnsupportedFormat indicates a file extension the reader cannot handle.
	ErrUnsupportedFormat = errors.New("unsupported file type")
	// ErrEmptySheet indicates the sheet or file has no header row.
	ErrEmptySheet = errors.New("empty sheet")
	// ErrSheetNotFound indicates the requested workbook sheet does not exist.
	ErrSheetNotFound = errors.New("sheet not found")
)

// ConversionError records which stage of a run failed and on which path.
type ConversionError struct {
	Stage string // "discover", "read", "extract", "write"
	Path  string
	Err   error
}

func (e *ConversionError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

func newConversionError(stage, path string, err error) *ConversionError {
	return &ConversionError{
		Stage: stage,
		Path:  path,
		Err:   err,
	}
}

// IsPrecondition reports whether err is a fatal input precondition failure
// rather than an unexpected runtime error.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrInputDirMissing) ||
		errors.Is(err, ErrNoInputFile) ||
		errors.Is(err, ErrInsufficientColumns) ||
		errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrEmptySheet) ||
		errors.Is(err, ErrSheetNotFound)
}
