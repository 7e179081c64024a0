package sheetio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sheetOf(rows ...[]any) *sheet {
	return &sheet{name: "S", rows: rows}
}

func TestExtractWholeSheet(t *testing.T) {
	s := sheetOf(
		[]any{"H1", "H2"},
		[]any{"a", "1"},
		[]any{"b", nil},
	)

	grid := extractRange(s, Window{})
	require.Len(t, grid, 3)
	require.Equal(t, []any{"H1", "H2"}, grid[0])
	require.Equal(t, []any{"b", nil}, grid[2])
}

func TestExtractPaddingInvariant(t *testing.T) {
	s := sheetOf(
		[]any{"a"},
		[]any{"b", "c"},
	)

	grid := extractRange(s, Window{NumRows: 4, NumCols: 3, KeepEmptyRows: true})
	require.Len(t, grid, 4)
	for _, row := range grid {
		require.Len(t, row, 3)
	}
	require.Equal(t, []any{"a", nil, nil}, grid[0])
	require.Equal(t, []any{"b", "c", nil}, grid[1])
	require.Equal(t, []any{nil, nil, nil}, grid[2])
	require.Equal(t, []any{nil, nil, nil}, grid[3])
}

func TestExtractDropEmptyRows(t *testing.T) {
	s := sheetOf(
		[]any{"a", "1"},
		[]any{nil, nil},
		nil,
		[]any{"b", "2"},
	)

	grid := extractRange(s, Window{})
	require.Len(t, grid, 2)
	for _, row := range grid {
		nonNil := false
		for _, c := range row {
			if c != nil {
				nonNil = true
			}
		}
		require.True(t, nonNil, "dropped-empty extraction must not return all-nil rows")
	}
	require.Equal(t, []any{"a", "1"}, grid[0])
	require.Equal(t, []any{"b", "2"}, grid[1])
}

func TestExtractDropEmptyRowsNeverBackfills(t *testing.T) {
	s := sheetOf(
		[]any{"a"},
		[]any{nil},
	)

	grid := extractRange(s, Window{NumRows: 5})
	require.Len(t, grid, 1)
}

func TestExtractOutOfBounds(t *testing.T) {
	s := sheetOf(
		[]any{"a", "b"},
	)

	grid := extractRange(s, Window{StartRow: 10, StartCol: 10, NumRows: 2, NumCols: 3, KeepEmptyRows: true})
	require.Len(t, grid, 2)
	for _, row := range grid {
		require.Equal(t, []any{nil, nil, nil}, row)
	}

	// Same window with empty rows dropped yields nothing.
	grid = extractRange(s, Window{StartRow: 10, StartCol: 10, NumRows: 2, NumCols: 3})
	require.Empty(t, grid)
}

func TestExtractRemainderCounts(t *testing.T) {
	s := sheetOf(
		[]any{"a", "b", "c"},
		[]any{"d", "e", "f"},
		[]any{"g", "h", "i"},
	)

	grid := extractRange(s, Window{StartRow: 2, StartCol: 2})
	require.Len(t, grid, 2)
	require.Equal(t, []any{"e", "f"}, grid[0])
	require.Equal(t, []any{"h", "i"}, grid[1])
}

func TestExtractOffsetWindow(t *testing.T) {
	s := sheetOf(
		[]any{"r1c1", "r1c2", "r1c3"},
		[]any{"r2c1", "r2c2"},
		[]any{"r3c1"},
	)

	grid := extractRange(s, Window{StartRow: 2, StartCol: 2, NumRows: 2, NumCols: 2, KeepEmptyRows: true})
	require.Equal(t, [][]any{
		{"r2c2", nil},
		{nil, nil},
	}, grid)
}
