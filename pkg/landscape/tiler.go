package landscape

import (
	"fmt"
	"runtime"
	"sync"
)

// Options configures one tiling pass. It is an explicit, immutable value
// passed into every entry point; there is no ambient default state.
type Options struct {
	// NoDataValue is the category code meaning "no observation". Matching
	// cells are treated as background during labeling and excluded as
	// neighbors during edge counting.
	NoDataValue int

	// WindowSize is the physical side length of one aggregation window,
	// in the same unit as PixelSize (e.g. meters).
	WindowSize float64

	// PixelSize is the physical side length of one cell, used to convert
	// cell counts into physical areas and lengths.
	PixelSize float64

	// NumWorkers bounds the number of windows evaluated concurrently.
	// Zero or negative means use all available cores.
	NumWorkers int
}

// DefaultOptions returns the conventional configuration: no-data code 15,
// 1000-unit windows over 30-unit pixels.
func DefaultOptions() Options {
	return Options{
		NoDataValue: 15,
		WindowSize:  1000,
		PixelSize:   30,
		NumWorkers:  runtime.NumCPU(),
	}
}

// Surfaces holds the four full-resolution output grids produced by a tiling
// pass. Each slice is row-major with Rows*Cols entries and is constant
// within every window footprint, a deliberately blocky step-function
// rendering of each metric.
type Surfaces struct {
	Rows, Cols    int
	PatchDensity  []float64
	EdgeDensity   []float64
	MeanPatchArea []float64
	MeshSize      []float64
}

func newSurfaces(rows, cols int) *Surfaces {
	n := rows * cols
	return &Surfaces{
		Rows:          rows,
		Cols:          cols,
		PatchDensity:  make([]float64, n),
		EdgeDensity:   make([]float64, n),
		MeanPatchArea: make([]float64, n),
		MeshSize:      make([]float64, n),
	}
}

// fill broadcasts one window's metrics across its footprint.
func (s *Surfaces) fill(row, col, rows, cols int, m Metrics) {
	for r := row; r < row+rows; r++ {
		base := r * s.Cols
		for c := col; c < col+cols; c++ {
			s.PatchDensity[base+c] = m.PatchDensity
			s.EdgeDensity[base+c] = m.EdgeDensity
			s.MeanPatchArea[base+c] = m.MeanPatchArea
			s.MeshSize[base+c] = m.MeshSize
		}
	}
}

// window is one tiling task: the anchor cell of a window footprint.
type window struct {
	row, col int
}

// TileMetrics partitions the raster into non-overlapping windows of
// floor(WindowSize/PixelSize) cells per side, computes the four indices
// independently for each window, and paints the scalars uniformly across
// the window's footprint in four output surfaces matching the raster shape.
//
// Windows advance row-major from (0,0) by the window stride; the last row
// and column of windows are truncated to whatever remains and still
// processed, never padded or dropped. Windows are independent and write
// disjoint regions, so they are evaluated by a bounded pool of workers
// without synchronization on the surfaces themselves.
func TileMetrics(g Grid, opts Options) (*Surfaces, error) {
	if g.Rows == 0 || g.Cols == 0 {
		return nil, ErrEmptyGrid
	}
	if opts.PixelSize <= 0 {
		return nil, fmt.Errorf("landscape: pixel size must be positive, got %v", opts.PixelSize)
	}
	stride := int(opts.WindowSize / opts.PixelSize)
	if stride < 1 {
		return nil, fmt.Errorf("landscape: window size %v is smaller than one %v-unit pixel",
			opts.WindowSize, opts.PixelSize)
	}

	out := newSurfaces(g.Rows, g.Cols)

	jobs := make(chan window)
	workers := opts.NumWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for w := range jobs {
				win := g.Window(w.row, w.col, stride, stride)
				m := windowMetrics(win, opts)
				out.fill(w.row, w.col, win.Rows, win.Cols, m)
			}
		}()
	}

	for row := 0; row < g.Rows; row += stride {
		for col := 0; col < g.Cols; col += stride {
			jobs <- window{row: row, col: col}
		}
	}
	close(jobs)
	wg.Wait()

	return out, nil
}

// windowMetrics runs the single-window pipeline: label patches on the
// normalized grid, count edges on the original codes, then aggregate.
func windowMetrics(win Grid, opts Options) Metrics {
	if win.Rows == 0 || win.Cols == 0 {
		return Metrics{}
	}
	_, patches := LabelPatches(win.Normalized(opts.NoDataValue))
	edges := CountEdges(win, opts.NoDataValue)
	return ComputeMetrics(patches, edges, win.Rows, win.Cols, opts.PixelSize)
}
