package landscape

import (
	"testing"
)

const testNoData = 15

// bruteForcePairs counts unordered adjacent cell pairs with differing,
// nonzero-on-both-sides category codes. Valid as a reference only for
// grids without background or no-data cells, where the directional
// counting rule reduces to a symmetric pair count.
func bruteForcePairs(g Grid) int {
	n := 0
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			if col+1 < g.Cols && g.At(row, col) != g.At(row, col+1) {
				n++
			}
			if row+1 < g.Rows && g.At(row, col) != g.At(row+1, col) {
				n++
			}
		}
	}
	return n
}

func TestCountEdgesSymmetricWithoutNoData(t *testing.T) {
	g := mustGrid(t, [][]int{
		{1, 1, 2, 2},
		{1, 3, 3, 2},
		{4, 4, 3, 2},
		{4, 1, 1, 1},
	})

	want := bruteForcePairs(g)
	got := CountEdges(g, testNoData)
	if got != want {
		t.Errorf("Edge count %d does not match unordered differing pair count %d", got, want)
	}
}

func TestCountEdgesWorkedExample(t *testing.T) {
	// 4x4 of category 1 with a lone category 2 cell in the corner: the
	// two boundaries of the lone cell are the only edges.
	g := mustGrid(t, [][]int{
		{2, 1, 1, 1},
		{1, 1, 1, 1},
		{1, 1, 1, 1},
		{1, 1, 1, 1},
	})

	if got := CountEdges(g, testNoData); got != 2 {
		t.Errorf("Expected 2 edges for lone corner cell, got %d", got)
	}
}

func TestCountEdgesUniformWindow(t *testing.T) {
	g := mustGrid(t, [][]int{
		{3, 3, 3},
		{3, 3, 3},
	})

	if got := CountEdges(g, testNoData); got != 0 {
		t.Errorf("Uniform window must have 0 edges, got %d", got)
	}
}

func TestCountEdgesAsymmetricNoDataPolicy(t *testing.T) {
	// The no-data screen applies to the neighbor only: a no-data cell
	// still radiates edges outward toward real categories while being
	// excluded as a neighbor itself. Directional totals are halved with
	// integer division. These values pin the policy down as implemented;
	// changing the rule changes every downstream metric.
	tests := []struct {
		name string
		grid [][]int
		want int
	}{
		{
			// Directional count 3: no-data cell contributes toward the
			// category cell and the background cell; the category cell
			// contributes toward background only.
			name: "NoDataNextToCategory",
			grid: [][]int{
				{15, 1},
				{0, 0},
			},
			want: 1,
		},
		{
			// The category/no-data boundary is seen only from the
			// no-data side; category/category boundaries from both.
			name: "NoDataInsideCategories",
			grid: [][]int{
				{1, 15, 2},
			},
			want: 1,
		},
		{
			// All no-data: every neighbor is the sentinel, nothing counts.
			name: "AllNoData",
			grid: [][]int{
				{15, 15},
				{15, 15},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGrid(t, tt.grid)
			if got := CountEdges(g, testNoData); got != tt.want {
				t.Errorf("Expected %d edges, got %d", tt.want, got)
			}
		})
	}
}

func TestCountEdgesNoBoundaryCrossing(t *testing.T) {
	// A 1x1 grid has no interior boundaries at all.
	g := mustGrid(t, [][]int{{9}})
	if got := CountEdges(g, testNoData); got != 0 {
		t.Errorf("Single cell grid must have 0 edges, got %d", got)
	}
}
