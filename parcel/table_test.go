package parcel

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"github.com/landtile/agglotile/geom"
)

func square(t *testing.T, x0, y0, side float64) geom.Polygon {
	t.Helper()
	p, err := geom.NewPolygon(orb.Ring{
		{x0, y0}, {x0 + side, y0}, {x0 + side, y0 + side}, {x0, y0 + side}, {x0, y0},
	})
	require.NoError(t, err)

	return p
}

func ptr(v float64) *float64 { return &v }

func TestLoadRejectsNonPositiveLandArea(t *testing.T) {
	_, err := Load([]Row{{Key: "a", LandAreaSqft: 0, Geometry: square(t, 0, 0, 10)}})
	require.ErrorIs(t, err, ErrNonPositiveLandArea)
}

func TestLoadRejectsMissingKey(t *testing.T) {
	_, err := Load([]Row{{LandAreaSqft: 10, Geometry: square(t, 0, 0, 10)}})
	require.ErrorIs(t, err, ErrMissingColumn)
}

func TestLoadRejectsDuplicateKey(t *testing.T) {
	row := Row{Key: "a", LandAreaSqft: 10, Geometry: square(t, 0, 0, 10)}
	_, err := Load([]Row{row, row})
	require.ErrorIs(t, err, ErrDuplicateKey)
}

func TestLoadRejectsMissingGeometry(t *testing.T) {
	_, err := Load([]Row{{Key: "a", LandAreaSqft: 10}})
	require.ErrorIs(t, err, ErrMissingColumn)
}

func TestLoadSortsKeys(t *testing.T) {
	tbl, err := Load([]Row{
		{Key: "b", LandAreaSqft: 10, Geometry: square(t, 0, 0, 10)},
		{Key: "a", LandAreaSqft: 10, Geometry: square(t, 10, 0, 10)},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, tbl.Keys())
}

func TestUnknownKeyAccessors(t *testing.T) {
	tbl, err := Load([]Row{{Key: "a", LandAreaSqft: 10, Geometry: square(t, 0, 0, 10)}})
	require.NoError(t, err)

	_, err = tbl.LandArea("missing")
	require.ErrorIs(t, err, ErrUnknownKey)
}

func TestSetBuiltAreaAndMarketValueProxy(t *testing.T) {
	tbl, err := Load([]Row{{Key: "a", LandAreaSqft: 10, Geometry: square(t, 0, 0, 10)}})
	require.NoError(t, err)

	built, err := tbl.BuiltArea("a")
	require.NoError(t, err)
	require.Nil(t, built)

	require.NoError(t, tbl.SetBuiltArea("a", 500))
	built, err = tbl.BuiltArea("a")
	require.NoError(t, err)
	require.NotNil(t, built)
	require.InDelta(t, 500.0, *built, 1e-9)

	require.NoError(t, tbl.SetMarketValueProxy("a", 123.45))
	proxy, err := tbl.MarketValueProxy("a")
	require.NoError(t, err)
	require.InDelta(t, 123.45, *proxy, 1e-9)
}

func TestSetCurrentTile(t *testing.T) {
	tbl, err := Load([]Row{{Key: "a", LandAreaSqft: 10, Geometry: square(t, 0, 0, 10)}})
	require.NoError(t, err)

	tile, err := tbl.CurrentTile("a")
	require.NoError(t, err)
	require.Empty(t, tile)

	require.NoError(t, tbl.SetCurrentTile("a", "tile-1"))
	tile, err = tbl.CurrentTile("a")
	require.NoError(t, err)
	require.Equal(t, "tile-1", tile)
}

func TestLoadPreservesOptionalFields(t *testing.T) {
	tbl, err := Load([]Row{{
		Key:              "a",
		LandAreaSqft:     10,
		BuiltAreaSqft:    ptr(100),
		AdjSalePrice:     ptr(200000),
		AssessedValue:    180000,
		MarketValueProxy: nil,
		Geometry:         square(t, 0, 0, 10),
	}})
	require.NoError(t, err)

	built, err := tbl.BuiltArea("a")
	require.NoError(t, err)
	require.InDelta(t, 100.0, *built, 1e-9)

	sale, err := tbl.AdjSalePrice("a")
	require.NoError(t, err)
	require.InDelta(t, 200000.0, *sale, 1e-9)

	assessed, err := tbl.AssessedValue("a")
	require.NoError(t, err)
	require.InDelta(t, 180000.0, assessed, 1e-9)
}
