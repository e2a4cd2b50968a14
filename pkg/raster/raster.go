// Package raster reads and writes single-band categorical rasters in the
// ESRI ASCII grid (.asc) format. It is the thin I/O collaborator of the
// metrics core: it carries the georeferencing header through unchanged and
// performs no algorithmic work of its own.
package raster

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"landmetrics/pkg/landscape"
)

// Raster represents one ESRI ASCII grid band: the georeferencing header
// plus row-major cell values. Rows run top-down as stored in the file.
type Raster struct {
	Ncols, Nrows         int
	Xllcorner, Yllcorner float64
	CellSize             float64
	NoDataValue          float64
	Data                 []float64
}

// Z returns the cell value at column c, row r.
// It panics if c or r are out of bounds for the grid.
func (r Raster) Z(c, row int) float64 {
	return r.Data[row*r.Ncols+c]
}

// WithData returns a copy of the raster header carrying new cell values,
// used to persist a metric surface with the input's georeferencing.
// It panics if the data length does not match the header dimensions.
func (r Raster) WithData(data []float64) Raster {
	if len(data) != r.Ncols*r.Nrows {
		panic(fmt.Sprintf("raster: data length %d does not match %dx%d header",
			len(data), r.Ncols, r.Nrows))
	}
	out := r
	out.Data = data
	return out
}

// CategoryGrid converts the band into a categorical grid for the metrics
// core. Cell values are truncated to integer category codes; fractional
// codes indicate a non-categorical band and are rejected.
func (r Raster) CategoryGrid() (landscape.Grid, error) {
	codes := make([]int, len(r.Data))
	for i, v := range r.Data {
		if v != math.Trunc(v) {
			row, col := i/r.Ncols, i%r.Ncols
			return landscape.Grid{}, fmt.Errorf("raster: non-integer category %v at row %d col %d", v, row, col)
		}
		codes[i] = int(v)
	}
	return landscape.NewGridFromFlat(codes, r.Nrows, r.Ncols)
}

// Read loads an ESRI ASCII grid from disk.
func Read(path string) (Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return Raster{}, fmt.Errorf("failed to open raster: %w", err)
	}
	defer f.Close()

	r, err := ReadFrom(f)
	if err != nil {
		return Raster{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return r, nil
}

// ReadFrom parses an ESRI ASCII grid. Header keys (ncols, nrows,
// xllcorner/xllcenter, yllcorner/yllcenter, cellsize, nodata_value) are
// matched case-insensitively; nodata_value is optional and defaults to
// -9999. Cell values may wrap across lines arbitrarily.
func ReadFrom(rd io.Reader) (Raster, error) {
	out := Raster{NoDataValue: -9999}

	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		// Header lines start with a key; data lines start with a number.
		if _, err := strconv.ParseFloat(fields[0], 64); err != nil {
			if len(fields) != 2 {
				return Raster{}, fmt.Errorf("malformed header line %q", sc.Text())
			}
			if err := out.setHeader(fields[0], fields[1]); err != nil {
				return Raster{}, err
			}
			continue
		}

		if out.Ncols <= 0 || out.Nrows <= 0 {
			return Raster{}, fmt.Errorf("data before ncols/nrows header")
		}
		if out.Data == nil {
			out.Data = make([]float64, 0, out.Ncols*out.Nrows)
		}
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return Raster{}, fmt.Errorf("bad cell value %q: %w", f, err)
			}
			out.Data = append(out.Data, v)
		}
	}
	if err := sc.Err(); err != nil {
		return Raster{}, err
	}

	want := out.Ncols * out.Nrows
	if len(out.Data) != want {
		return Raster{}, fmt.Errorf("expected %d cell values, got %d", want, len(out.Data))
	}
	return out, nil
}

func (r *Raster) setHeader(key, value string) error {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("bad header value %s %s: %w", key, value, err)
	}
	switch strings.ToLower(key) {
	case "ncols":
		r.Ncols = int(v)
	case "nrows":
		r.Nrows = int(v)
	case "xllcorner", "xllcenter":
		r.Xllcorner = v
	case "yllcorner", "yllcenter":
		r.Yllcorner = v
	case "cellsize":
		r.CellSize = v
	case "nodata_value":
		r.NoDataValue = v
	default:
		return fmt.Errorf("unknown header key %q", key)
	}
	return nil
}

// Write stores the raster to disk in ESRI ASCII format.
func Write(path string, r Raster) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create raster file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := WriteTo(w, r); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}

// WriteTo emits the header followed by one line of values per raster row.
func WriteTo(w io.Writer, r Raster) error {
	if len(r.Data) != r.Ncols*r.Nrows {
		return fmt.Errorf("data length %d does not match %dx%d header", len(r.Data), r.Ncols, r.Nrows)
	}
	_, err := fmt.Fprintf(w, "ncols %d\nnrows %d\nxllcorner %g\nyllcorner %g\ncellsize %g\nNODATA_value %g\n",
		r.Ncols, r.Nrows, r.Xllcorner, r.Yllcorner, r.CellSize, r.NoDataValue)
	if err != nil {
		return err
	}
	for row := 0; row < r.Nrows; row++ {
		for col := 0; col < r.Ncols; col++ {
			sep := " "
			if col == 0 {
				sep = ""
			}
			if _, err := fmt.Fprintf(w, "%s%g", sep, r.Z(col, row)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
