package landscape

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Metrics holds the four fragmentation indices computed for one window.
type Metrics struct {
	// PatchDensity is the number of patches per unit area, scaled by 1e6
	// (patches per 100 ha when pixel size is in meters).
	PatchDensity float64

	// EdgeDensity is the total boundary length per unit area, scaled by 1e4
	// (meters per hectare for metric pixel sizes).
	EdgeDensity float64

	// MeanPatchArea is the average physical patch area divided by 1e4
	// (hectares for metric pixel sizes). Zero when the window has no patches.
	MeanPatchArea float64

	// MeshSize is the effective mesh size: the sum of squared patch areas
	// over the window area, scaled by 1e-4. Larger patches dominate; zero
	// for empty windows.
	MeshSize float64
}

// ComputeMetrics turns one window's labeling results into the four indices.
// All formulas use the total window area (rows*cols*pixelSize^2) as the
// denominator, so windows dominated by background or no-data yield low
// densities rather than undefined values. Every division is guarded: a
// degenerate window (no patches, or zero area) produces zero-valued
// metrics, never NaN or Inf.
func ComputeMetrics(patches []Patch, edgeCount, rows, cols int, pixelSize float64) Metrics {
	totalArea := float64(rows) * float64(cols) * pixelSize * pixelSize
	if totalArea <= 0 {
		return Metrics{}
	}

	m := Metrics{
		PatchDensity: float64(len(patches)) / totalArea * 1e6,
		EdgeDensity:  float64(edgeCount) * pixelSize / totalArea * 1e4,
	}
	if len(patches) == 0 {
		return m
	}

	cellArea := pixelSize * pixelSize
	areas := make([]float64, len(patches))
	sumSq := 0.0
	for i, p := range patches {
		phys := float64(p.Area) * cellArea
		areas[i] = phys
		// Truncation before squaring is the reference numeric policy; do
		// not replace with rounding.
		t := math.Trunc(phys)
		sumSq += t * t
	}
	m.MeanPatchArea = stat.Mean(areas, nil) / 1e4
	m.MeshSize = sumSq / totalArea / 1e4
	return m
}
