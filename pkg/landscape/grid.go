// Package landscape computes landscape-ecology fragmentation metrics over
// categorical raster windows: patch density, edge density, mean patch area
// and effective mesh size.
//
// The pipeline for one window is:
//  1. Normalize no-data cells to background (Grid.Normalized)
//  2. Label 4-connected same-category patches (LabelPatches)
//  3. Count category boundary edges on the original data (CountEdges)
//  4. Combine patch areas and edge length into the four indices (ComputeMetrics)
//
// TileMetrics runs that pipeline over a grid of non-overlapping windows and
// broadcasts each window's scalars across its footprint in four
// full-resolution output surfaces.
package landscape

import (
	"errors"
)

// Sentinel errors for grid construction.
var (
	// ErrEmptyGrid indicates input with no rows or no columns.
	ErrEmptyGrid = errors.New("landscape: grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("landscape: all grid rows must have the same length")
)

// Grid is a rectangular 2D array of categorical codes stored row-major.
// Code 0 is background (absence of a patch); the no-data sentinel is an
// ordinary code until Normalized maps it to background. A Grid is treated
// as immutable once constructed: every transform returns a new Grid.
type Grid struct {
	Rows, Cols int
	data       []int
}

// NewGrid builds a Grid from a non-empty, rectangular 2D slice of category
// codes. The input is copied, so later mutation of values does not alias
// the grid.
func NewGrid(values [][]int) (Grid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return Grid{}, ErrEmptyGrid
	}
	rows, cols := len(values), len(values[0])
	data := make([]int, 0, rows*cols)
	for _, row := range values {
		if len(row) != cols {
			return Grid{}, ErrNonRectangular
		}
		data = append(data, row...)
	}
	return Grid{Rows: rows, Cols: cols, data: data}, nil
}

// NewGridFromFlat builds a Grid from row-major flat data. The slice is
// copied. Returns ErrEmptyGrid when rows or cols is not positive, and
// ErrNonRectangular when len(data) != rows*cols.
func NewGridFromFlat(data []int, rows, cols int) (Grid, error) {
	if rows <= 0 || cols <= 0 {
		return Grid{}, ErrEmptyGrid
	}
	if len(data) != rows*cols {
		return Grid{}, ErrNonRectangular
	}
	d := make([]int, len(data))
	copy(d, data)
	return Grid{Rows: rows, Cols: cols, data: d}, nil
}

// At returns the category code at (row, col).
// It panics if the position is out of bounds, like a slice index.
func (g Grid) At(row, col int) int {
	return g.data[row*g.Cols+col]
}

// InBounds reports whether (row, col) lies within the grid.
func (g Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// Normalized returns a copy of the grid with every cell equal to noData
// replaced by background (0). The receiver is left untouched; edge counting
// needs the original codes while labeling needs the normalized ones.
func (g Grid) Normalized(noData int) Grid {
	data := make([]int, len(g.data))
	for i, v := range g.data {
		if v == noData {
			v = 0
		}
		data[i] = v
	}
	return Grid{Rows: g.Rows, Cols: g.Cols, data: data}
}

// Window returns a copied sub-grid of at most rows x cols cells anchored at
// (row, col), clamped to the grid bounds. The result may be smaller than
// requested at the right and bottom raster edges; callers skip zero-area
// windows.
func (g Grid) Window(row, col, rows, cols int) Grid {
	if row+rows > g.Rows {
		rows = g.Rows - row
	}
	if col+cols > g.Cols {
		cols = g.Cols - col
	}
	if rows <= 0 || cols <= 0 {
		return Grid{}
	}
	data := make([]int, 0, rows*cols)
	for r := row; r < row+rows; r++ {
		start := r*g.Cols + col
		data = append(data, g.data[start:start+cols]...)
	}
	return Grid{Rows: rows, Cols: cols, data: data}
}

// CountNonzero returns the number of cells with a nonzero category code.
func (g Grid) CountNonzero() int {
	n := 0
	for _, v := range g.data {
		if v != 0 {
			n++
		}
	}
	return n
}
