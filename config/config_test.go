package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewAppliesDefaults(t *testing.T) {
	cfg := New()
	require.Equal(t, DefaultAdjacencyBufferFeet, cfg.AdjacencyBufferFeet)
	require.Equal(t, DefaultInfillK, cfg.InfillK)
	require.Equal(t, DefaultMinSalesForOLS, cfg.MinSalesForOLS)
	require.Equal(t, 0, cfg.DesiredEndingTileCount)
}

func TestOptionsOverrideDefaultsInOrder(t *testing.T) {
	cfg := New(
		WithAdjacencyBufferFeet(15),
		WithInfillK(5),
		WithMinSalesForOLS(10),
		WithDesiredEndingTileCount(3),
		WithOutputDirectory("/tmp/out"),
	)
	require.Equal(t, 15.0, cfg.AdjacencyBufferFeet)
	require.Equal(t, 5, cfg.InfillK)
	require.Equal(t, 10, cfg.MinSalesForOLS)
	require.Equal(t, 3, cfg.DesiredEndingTileCount)
	require.Equal(t, "/tmp/out", cfg.OutputDirectory)
}

func TestZeroAndNegativeOptionsAreNoOps(t *testing.T) {
	cfg := New(WithAdjacencyBufferFeet(-5), WithInfillK(0), WithOutputDirectory(""))
	require.Equal(t, DefaultAdjacencyBufferFeet, cfg.AdjacencyBufferFeet)
	require.Equal(t, DefaultInfillK, cfg.InfillK)
	require.Equal(t, ".", cfg.OutputDirectory)
}

func TestWithMinSalesForOLSAcceptsZeroToDisableTheGate(t *testing.T) {
	cfg := New(WithMinSalesForOLS(0))
	require.Equal(t, 0, cfg.MinSalesForOLS)
}

func TestWithMinSalesForOLSRejectsNegative(t *testing.T) {
	cfg := New(WithMinSalesForOLS(-1))
	require.Equal(t, DefaultMinSalesForOLS, cfg.MinSalesForOLS)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "desired_ending_tile_count: 7\nadjacency_buffer_feet: 12.5\ninfill_k: 4\nmin_sales_for_ols: 2\noutput_directory: /data/out\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadYAML(path)
	require.NoError(t, err)
	require.Equal(t, 7, cfg.DesiredEndingTileCount)
	require.Equal(t, 12.5, cfg.AdjacencyBufferFeet)
	require.Equal(t, 4, cfg.InfillK)
	require.Equal(t, 2, cfg.MinSalesForOLS)
	require.Equal(t, "/data/out", cfg.OutputDirectory)
}

func TestLoadYAMLMissingFileErrors(t *testing.T) {
	_, err := LoadYAML("/nonexistent/config.yaml")
	require.Error(t, err)
}
