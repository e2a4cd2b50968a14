package landscape

// Patch is a maximal 4-connected region of cells sharing one nonzero
// category code. IDs start at 1 and are stable only within a single
// labeling pass; downstream aggregation counts and sizes patches but never
// compares ids across windows.
type Patch struct {
	ID       int
	Category int
	Area     int // cell count
}

// neighbors4 holds the rook-adjacency offsets as (dRow, dCol) pairs.
var neighbors4 = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// LabelPatches performs categorical connected-component labeling over a
// normalized grid (no-data already mapped to background). Two adjacent
// nonzero cells belong to the same patch only if their category codes are
// equal; differing codes never merge, even when touching. It returns the
// label grid in row-major order (0 for background, otherwise a patch id)
// and the discovered patches with their cell-count areas.
//
// Components are collected by BFS flood fill in row-major discovery order.
// Time O(rows*cols), memory O(rows*cols) for labels and the queue.
func LabelPatches(g Grid) ([]int, []Patch) {
	labels := make([]int, g.Rows*g.Cols)
	var patches []Patch

	var queue []int
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			start := row*g.Cols + col
			cat := g.data[start]
			if cat == 0 || labels[start] != 0 {
				continue
			}

			id := len(patches) + 1
			labels[start] = id
			queue = append(queue[:0], start)
			area := 0

			for qi := 0; qi < len(queue); qi++ {
				u := queue[qi]
				area++
				ur, uc := u/g.Cols, u%g.Cols
				for _, d := range neighbors4 {
					vr, vc := ur+d[0], uc+d[1]
					if !g.InBounds(vr, vc) {
						continue
					}
					v := vr*g.Cols + vc
					if labels[v] != 0 || g.data[v] != cat {
						continue
					}
					labels[v] = id
					queue = append(queue, v)
				}
			}

			patches = append(patches, Patch{ID: id, Category: cat, Area: area})
		}
	}
	return labels, patches
}
