package sheetio

/* =========================================================
 *  Extraction Window
 * ========================================================= */

// Window is the rectangular sub-range of a sheet to read. Positions
// are 1-based; a zero start position means 1. A zero count means "the
// remainder of the sheet from the start position".
//
// The zero value reads the whole sheet with empty rows dropped.
type Window struct {
	StartCol int
	StartRow int
	NumCols  int
	NumRows  int

	// KeepEmptyRows keeps rows whose cells are all nil and pads the
	// result with nil rows up to the requested row count, so the
	// returned grid always has the requested shape. When false,
	// all-nil rows are dropped and the result may be shorter than
	// requested; it is never backfilled.
	KeepEmptyRows bool
}

/* =========================================================
 *  Range Extractor
 * ========================================================= */

// extractRange materializes a Window over a decoded sheet as a
// rectangular grid of nullable cells. Rows past the sheet's extent are
// synthesized as all-nil when KeepEmptyRows is set; columns past a
// row's extent are nil.
func extractRange(s *sheet, w Window) [][]any {
	startRow := w.StartRow
	if startRow < 1 {
		startRow = 1
	}
	startCol := w.StartCol
	if startCol < 1 {
		startCol = 1
	}

	numRows := w.NumRows
	if numRows <= 0 {
		numRows = len(s.rows) - (startRow - 1)
		if numRows < 0 {
			numRows = 0
		}
	}
	numCols := w.NumCols
	if numCols <= 0 {
		numCols = s.width() - (startCol - 1)
		if numCols < 0 {
			numCols = 0
		}
	}

	out := make([][]any, 0, numRows)
	for i := 0; i < numRows; i++ {
		src := startRow - 1 + i
		if src >= len(s.rows) {
			if w.KeepEmptyRows {
				out = append(out, make([]any, numCols))
			}
			continue
		}
		row := make([]any, numCols)
		filled := false
		for j := 0; j < numCols; j++ {
			c := startCol - 1 + j
			if c < len(s.rows[src]) && s.rows[src][c] != nil {
				row[j] = s.rows[src][c]
				filled = true
			}
		}
		if w.KeepEmptyRows || filled {
			out = append(out, row)
		}
	}

	// Pad short results up to the requested row count.
	if w.KeepEmptyRows && w.NumRows > 0 {
		for len(out) < w.NumRows {
			out = append(out, make([]any, numCols))
		}
	}
	return out
}
