package sheetio

import (
	"errors"
	"fmt"
)

// ErrNoSheets indicates the decoded workbook contains no sheets.
var ErrNoSheets = errors.New("sheetio: workbook has no sheets")

// ErrSheetNotFound indicates the requested sheet name or index does
// not exist in the workbook.
var ErrSheetNotFound = errors.New("sheetio: sheet not found")

// ErrFormatDetect indicates the input format could not be detected
// because the stream is not seekable. Pass WithFormat for such streams.
var ErrFormatDetect = errors.New("sheetio: cannot detect format of non-seekable stream")

// CoercionError reports a cell value that could not be converted to
// the requested type.
type CoercionError struct {
	Value  any    // Raw cell value
	Target string // Target type name
	Err    error  // Underlying conversion error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("sheetio: cannot convert %v (%T) to %s: %v", e.Value, e.Value, e.Target, e.Err)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}

// MappingError reports a failed header-to-field assignment during
// object mapping. Row and Col are 1-based positions within the
// extracted grid; the header row is row 1.
type MappingError struct {
	Row    int
	Col    int
	Header string // Sanitized header name, empty for an empty header
	Field  string // Struct field name, empty if no field matched
	Value  any    // Raw cell value
	Err    error
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("sheetio: row %d col %d (header %q): %v", e.Row, e.Col, e.Header, e.Err)
}

func (e *MappingError) Unwrap() error {
	return e.Err
}
