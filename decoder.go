package sheetio

import (
	"fmt"
	"io"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

/* =========================================================
 *  Decoded Workbook
 * ========================================================= */

// sheet is one named grid of the decoded workbook. Cells are nil or a
// scalar value; the decoder's empty-cell marker is normalized to nil
// before anything else sees it.
type sheet struct {
	name string
	rows [][]any
}

// width returns the widest row of the sheet.
func (s *sheet) width() int {
	w := 0
	for _, row := range s.rows {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// workbook is the decoded table collection plus whatever the decoder
// still holds open.
type workbook struct {
	format Format
	sheets []*sheet
	closer io.Closer // nil when the decoder holds no resources
}

func (w *workbook) sheetAt(idx int) (*sheet, error) {
	if len(w.sheets) == 0 {
		return nil, ErrNoSheets
	}
	if idx < 0 || idx >= len(w.sheets) {
		return nil, fmt.Errorf("%w: index %d out of range [0,%d)", ErrSheetNotFound, idx, len(w.sheets))
	}
	return w.sheets[idx], nil
}

func (w *workbook) sheetNamed(name string) (*sheet, error) {
	if len(w.sheets) == 0 {
		return nil, ErrNoSheets
	}
	for _, s := range w.sheets {
		if s.name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
}

/* =========================================================
 *  Decoders
 * ========================================================= */

// decodeXLSX decodes a zip-based OpenXML workbook via excelize.
func decodeXLSX(r io.Reader) (*workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("sheetio: decode xlsx: %w", err)
	}

	names := f.GetSheetList()
	sheets := make([]*sheet, 0, len(names))
	for _, name := range names {
		rows, err := f.GetRows(name)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("sheetio: read sheet %q: %w", name, err)
		}
		grid := make([][]any, len(rows))
		for i, cols := range rows {
			vals := make([]any, len(cols))
			for j, c := range cols {
				if c != "" {
					vals[j] = c
				}
			}
			grid[i] = vals
		}
		sheets = append(sheets, &sheet{name: name, rows: grid})
	}

	return &workbook{format: FormatXLSX, sheets: sheets, closer: f}, nil
}

// decodeXLS decodes a legacy binary workbook via extrame/xls. The xls
// decoder reads everything up front and holds no resources afterwards.
func decodeXLS(r io.ReadSeeker, charset string) (*workbook, error) {
	wb, err := xls.OpenReader(r, charset)
	if err != nil {
		return nil, fmt.Errorf("sheetio: decode xls: %w", err)
	}

	sheets := make([]*sheet, 0, wb.NumSheets())
	for i := 0; i < wb.NumSheets(); i++ {
		ws := wb.GetSheet(i)
		if ws == nil {
			continue
		}
		var grid [][]any
		for ri := 0; ri <= int(ws.MaxRow); ri++ {
			row := ws.Row(ri)
			if row == nil {
				grid = append(grid, nil)
				continue
			}
			vals := make([]any, row.LastCol())
			for ci := 0; ci < row.LastCol(); ci++ {
				if c := row.Col(ci); c != "" {
					vals[ci] = c
				}
			}
			grid = append(grid, vals)
		}
		sheets = append(sheets, &sheet{name: ws.Name, rows: grid})
	}

	return &workbook{format: FormatXLS, sheets: sheets}, nil
}
