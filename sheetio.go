package sheetio

import (
	"reflect"
)

/*
Package sheetio

High-level features:

  - Read tabular ranges out of spreadsheet files, both legacy binary
    (.xls) and zip-based OpenXML (.xlsx), with the format sniffed from
    the stream's leading bytes when not given explicitly.
  - Rectangular extraction windows with 1-based start positions,
    remainder-sized counts, null padding and empty-row filtering.
  - Typed grids: convert every cell of a window to one scalar type.
  - Struct mapping: treat the first row of a window as a header,
    sanitize header text into identifiers and assign each column to the
    matching struct field:
      - `excel:"OrderDate"` → match header text (wins over field name)
      - otherwise the field's own name is matched, case-insensitively
  - Type conversion for string, int*, uint*, float*, bool, time.Time
    and pointers to these; legacy binary date cells are read as date
    serial numbers.
  - Optional validation via go-playground/validator.

Parsing of the spreadsheet encodings themselves is delegated to
excelize (xlsx) and extrame/xls (xls); sheetio only slices, pads and
coerces what they decode.
*/

/* =========================================================
 *  Public API: Cells / CellsAs / MapRows
 * ========================================================= */

// Cells reads a rectangular window of the selected sheet as raw cells.
// Cells are nil or scalar values as produced by the decoder.
func (r *Reader) Cells(sheet SheetRef, w Window) ([][]any, error) {
	s, err := r.resolveSheet(sheet)
	if err != nil {
		return nil, err
	}
	return extractRange(s, w), nil
}

// CellsAs reads a window and converts every cell to T. Nil cells
// become the zero value of T (nil for pointer T). A cell that cannot
// be converted fails the whole read with a *CoercionError; conversion
// failures on this path are never suppressed.
func CellsAs[T any](r *Reader, sheet SheetRef, w Window) ([][]T, error) {
	grid, err := r.Cells(sheet, w)
	if err != nil {
		return nil, err
	}

	t := reflect.TypeOf((*T)(nil)).Elem()
	legacy := r.legacyDates()

	out := make([][]T, len(grid))
	for i, row := range grid {
		vals := make([]T, len(row))
		for j, c := range row {
			v, err := castCell(c, t, legacy)
			if err != nil {
				return nil, err
			}
			vals[j] = v.Interface().(T)
		}
		out[i] = vals
	}
	return out, nil
}

// MapRows reads a window whose first row is a header and builds one T
// per data row. T must be a struct; exported fields are matched to
// sanitized header names by `excel:"Name"` tag first, then by field
// name. Mapping failures abort with a *MappingError unless the session
// was created with IgnoreMappingErrors(), in which case the offending
// assignment is skipped.
func MapRows[T any](r *Reader, sheet SheetRef, w Window) ([]T, error) {
	s, err := r.resolveSheet(sheet)
	if err != nil {
		return nil, err
	}
	grid := extractRange(s, w)
	return mapGrid[T](grid, &r.opts, r.legacyDates())
}
