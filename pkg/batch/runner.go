// Package batch walks a directory of categorical .asc rasters and runs the
// windowed fragmentation metrics over each file, writing one output raster
// per metric with the input's georeferencing header carried over.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"landmetrics/pkg/landscape"
	"landmetrics/pkg/raster"
)

// Params holds the batch processing configuration.
type Params struct {
	// InputDir is the directory scanned (non-recursively) for .asc rasters.
	InputDir string

	// OutputDir is where metric rasters are written. Empty means next to
	// each input file.
	OutputDir string

	// Opts configures the metrics core for every file in the batch.
	Opts landscape.Options
}

// Runner processes a directory of rasters through the metrics core.
type Runner struct {
	params *Params
	log    *zap.SugaredLogger
}

// NewRunner creates a batch runner with the provided parameters.
func NewRunner(params *Params, log *zap.Logger) *Runner {
	return &Runner{params: params, log: log.Sugar()}
}

// Run processes every .asc file in the input directory in sorted order.
// Per-file failures (unreadable file, malformed header, non-categorical
// band) are logged and skipped so one bad raster does not abort the batch;
// Run returns an error only when no file could be processed.
func (r *Runner) Run() error {
	files, err := r.listRasters()
	if err != nil {
		return err
	}

	if r.params.OutputDir != "" {
		if err := os.MkdirAll(r.params.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	processed := 0
	for _, path := range files {
		if err := r.processFile(path); err != nil {
			r.log.Warnw("skipping raster", "file", path, "error", err)
			continue
		}
		processed++
	}

	r.log.Infow("batch complete", "processed", processed, "skipped", len(files)-processed)
	if processed == 0 {
		return fmt.Errorf("no raster in %s could be processed", r.params.InputDir)
	}
	return nil
}

// listRasters returns the sorted .asc files of the input directory.
func (r *Runner) listRasters() ([]string, error) {
	entries, err := os.ReadDir(r.params.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".asc") {
			files = append(files, filepath.Join(r.params.InputDir, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .asc rasters found in %s", r.params.InputDir)
	}
	sort.Strings(files)
	return files, nil
}

// processFile runs the tiling pass for one raster and writes the four
// metric surfaces.
func (r *Runner) processFile(path string) error {
	band, err := raster.Read(path)
	if err != nil {
		return err
	}

	grid, err := band.CategoryGrid()
	if err != nil {
		return err
	}

	r.log.Infow("processing raster",
		"file", path, "rows", grid.Rows, "cols", grid.Cols,
		"window", r.params.Opts.WindowSize, "pixel", r.params.Opts.PixelSize)

	surfaces, err := landscape.TileMetrics(grid, r.params.Opts)
	if err != nil {
		return err
	}

	outputs := []struct {
		suffix string
		data   []float64
	}{
		{"pd", surfaces.PatchDensity},
		{"ed", surfaces.EdgeDensity},
		{"area_mn", surfaces.MeanPatchArea},
		{"mesh", surfaces.MeshSize},
	}
	for _, out := range outputs {
		dest := r.outputPath(path, out.suffix)
		if err := raster.Write(dest, band.WithData(out.data)); err != nil {
			return err
		}
		r.log.Debugw("wrote metric raster", "file", dest)
	}
	return nil
}

// outputPath derives the destination for one metric raster, e.g.
// cover.asc -> cover_pd.asc.
func (r *Runner) outputPath(input, suffix string) string {
	dir := filepath.Dir(input)
	if r.params.OutputDir != "" {
		dir = r.params.OutputDir
	}
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, fmt.Sprintf("%s_%s.asc", stem, suffix))
}
