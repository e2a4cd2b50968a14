package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"landmetrics/pkg/landscape"
	"landmetrics/pkg/raster"
)

const coverGrid = `ncols 4
nrows 4
xllcorner 500000
yllcorner 4100000
cellsize 30
NODATA_value 15
2 1 1 1
1 1 1 1
1 1 1 1
1 1 1 1
`

func testOptions() landscape.Options {
	return landscape.Options{NoDataValue: 15, WindowSize: 120, PixelSize: 30, NumWorkers: 2}
}

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunnerProducesFourMetricRasters(t *testing.T) {
	inputDir := t.TempDir()
	writeInput(t, inputDir, "cover.asc", coverGrid)

	runner := NewRunner(&Params{InputDir: inputDir, Opts: testOptions()}, zap.NewNop())
	require.NoError(t, runner.Run())

	// One output per metric, named by suffix, alongside the input.
	for _, suffix := range []string{"pd", "ed", "area_mn", "mesh"} {
		path := filepath.Join(inputDir, "cover_"+suffix+".asc")
		out, err := raster.Read(path)
		require.NoError(t, err, "missing %s output", suffix)

		// Georeferencing header carried over from the input.
		assert.Equal(t, 4, out.Ncols)
		assert.Equal(t, 500000.0, out.Xllcorner)
		assert.Equal(t, 30.0, out.CellSize)
	}

	// Spot-check the mean patch area surface: mean(900, 13500)/1e4,
	// constant across the single window.
	out, err := raster.Read(filepath.Join(inputDir, "cover_area_mn.asc"))
	require.NoError(t, err)
	for _, v := range out.Data {
		assert.InDelta(t, 0.72, v, 1e-9)
	}
}

func TestRunnerWritesToOutputDir(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "metrics")
	writeInput(t, inputDir, "cover.asc", coverGrid)

	runner := NewRunner(&Params{InputDir: inputDir, OutputDir: outputDir, Opts: testOptions()}, zap.NewNop())
	require.NoError(t, runner.Run())

	_, err := raster.Read(filepath.Join(outputDir, "cover_pd.asc"))
	assert.NoError(t, err)
}

func TestRunnerSkipsBadRasters(t *testing.T) {
	inputDir := t.TempDir()
	writeInput(t, inputDir, "bad.asc", "not a raster at all\n")
	writeInput(t, inputDir, "good.asc", coverGrid)

	runner := NewRunner(&Params{InputDir: inputDir, Opts: testOptions()}, zap.NewNop())
	require.NoError(t, runner.Run(), "one bad raster must not abort the batch")

	_, err := raster.Read(filepath.Join(inputDir, "good_pd.asc"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(inputDir, "bad_pd.asc"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunnerFailsWhenNothingProcessable(t *testing.T) {
	t.Run("EmptyDir", func(t *testing.T) {
		runner := NewRunner(&Params{InputDir: t.TempDir(), Opts: testOptions()}, zap.NewNop())
		assert.Error(t, runner.Run())
	})

	t.Run("OnlyBadRasters", func(t *testing.T) {
		inputDir := t.TempDir()
		writeInput(t, inputDir, "bad.asc", "garbage\n")
		runner := NewRunner(&Params{InputDir: inputDir, Opts: testOptions()}, zap.NewNop())
		assert.Error(t, runner.Run())
	})
}
