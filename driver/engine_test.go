package driver

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/landtile/agglotile/config"
	"github.com/landtile/agglotile/geom"
	"github.com/landtile/agglotile/parcel"
	"github.com/landtile/agglotile/tablestore"
	"github.com/landtile/agglotile/telemetry"
	"github.com/landtile/agglotile/tilegraph"
)

func square(t *testing.T, x0, y0, side float64) geom.Polygon {
	t.Helper()
	p, err := geom.NewPolygon(orb.Ring{
		{x0, y0}, {x0 + side, y0}, {x0 + side, y0 + side}, {x0, y0 + side}, {x0, y0},
	})
	require.NoError(t, err)

	return p
}

func f(v float64) *float64 { return &v }

// chainOfThree builds A-B-C adjacent tiles in a row, each seeded with
// two fully-populated parcels so every pairwise OLS evaluation clears
// a 1-sale gate.
func chainOfThree(t *testing.T) ([]tilegraph.TileSeed, *parcel.Table) {
	t.Helper()
	seeds := []tilegraph.TileSeed{
		{Key: "A", Geometry: square(t, 0, 0, 10)},
		{Key: "B", Geometry: square(t, 10, 0, 10)},
		{Key: "C", Geometry: square(t, 20, 0, 10)},
	}

	rows := []parcel.Row{
		{Key: "a1", LandAreaSqft: 10, BuiltAreaSqft: f(1000), AdjSalePrice: f(200000), AssessedValue: 190000, MarketValueProxy: f(195000), Geometry: square(t, 1, 1, 1)},
		{Key: "a2", LandAreaSqft: 12, BuiltAreaSqft: f(1100), AdjSalePrice: f(210000), AssessedValue: 200000, MarketValueProxy: f(205000), Geometry: square(t, 5, 5, 1)},
		{Key: "b1", LandAreaSqft: 11, BuiltAreaSqft: f(1050), AdjSalePrice: f(205000), AssessedValue: 195000, MarketValueProxy: f(200000), Geometry: square(t, 11, 1, 1)},
		{Key: "b2", LandAreaSqft: 13, BuiltAreaSqft: f(1150), AdjSalePrice: f(215000), AssessedValue: 205000, MarketValueProxy: f(210000), Geometry: square(t, 15, 5, 1)},
		{Key: "c1", LandAreaSqft: 9, BuiltAreaSqft: f(950), AdjSalePrice: f(190000), AssessedValue: 180000, MarketValueProxy: f(185000), Geometry: square(t, 21, 1, 1)},
		{Key: "c2", LandAreaSqft: 14, BuiltAreaSqft: f(1200), AdjSalePrice: f(220000), AssessedValue: 210000, MarketValueProxy: f(215000), Geometry: square(t, 25, 5, 1)},
	}

	tbl, err := parcel.Load(rows)
	require.NoError(t, err)

	return seeds, tbl
}

func newEngineOverChain(t *testing.T, endingTileCount int) (*Engine, string) {
	t.Helper()
	seeds, tbl := chainOfThree(t)
	graph, err := tilegraph.Init(seeds, tbl, 30)
	require.NoError(t, err)

	dir := t.TempDir()
	cfg := config.New(
		config.WithMinSalesForOLS(1),
		config.WithDesiredEndingTileCount(endingTileCount),
		config.WithOutputDirectory(dir),
	)

	base := logrus.New()
	base.SetOutput(&bytes.Buffer{})
	logger := telemetry.New(base)

	eng, err := NewEngine(graph, tbl, cfg, logger, tablestore.ParquetWriter{})
	require.NoError(t, err)

	return eng, dir
}

func TestRunMergesUntilDesiredTileCount(t *testing.T) {
	eng, dir := newEngineOverChain(t, 1)

	err := eng.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, eng.graph.TileCount())
	require.Equal(t, 2, eng.Iteration())

	_, err = tablestore.ParquetReader{}.ReadTiles(filepath.Join(dir, "intermediate_tiles_2.parquet"))
	require.NoError(t, err)
}

func TestRunStopsImmediatelyWhenAlreadyAtDesiredCount(t *testing.T) {
	eng, _ := newEngineOverChain(t, 3)

	err := eng.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, eng.Iteration())
	require.Equal(t, 3, eng.graph.TileCount())
}

func TestRunObservesCancellationBetweenIterations(t *testing.T) {
	eng, _ := newEngineOverChain(t, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := eng.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 0, eng.Iteration())
}

func TestNewEngineRejectsEmptyGraph(t *testing.T) {
	tbl, err := parcel.Load(nil)
	require.NoError(t, err)
	graph, err := tilegraph.Init(nil, tbl, 30)
	require.NoError(t, err)

	_, err = NewEngine(graph, tbl, config.New(), telemetry.New(nil), tablestore.ParquetWriter{})
	require.ErrorIs(t, err, ErrNoTiles)
}

func TestRunIsDeterministicAcrossSeedOrder(t *testing.T) {
	seedsA, tblA := chainOfThree(t)
	seedsB := []tilegraph.TileSeed{seedsA[2], seedsA[0], seedsA[1]}
	_, tblB := chainOfThree(t)

	run := func(seeds []tilegraph.TileSeed, tbl *parcel.Table) []string {
		graph, err := tilegraph.Init(seeds, tbl, 30)
		require.NoError(t, err)
		cfg := config.New(config.WithMinSalesForOLS(1), config.WithDesiredEndingTileCount(1), config.WithOutputDirectory(t.TempDir()))
		eng, err := NewEngine(graph, tbl, cfg, telemetry.New(nil), tablestore.ParquetWriter{})
		require.NoError(t, err)
		require.NoError(t, eng.Run(context.Background()))

		return graph.Tiles()
	}

	finalA := run(seedsA, tblA)
	finalB := run(seedsB, tblB)
	require.Len(t, finalA, 1)
	require.Len(t, finalB, 1)
	require.Equal(t, finalA, finalB) // same merge order regardless of input seed ordering
}
