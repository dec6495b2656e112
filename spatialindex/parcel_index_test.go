package spatialindex

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

func TestParcelIndexKNearestOrdersByDistance(t *testing.T) {
	idx := NewParcelIndex([]IndexedPoint{
		{Key: "a", Point: orb.Point{0, 0}},
		{Key: "b", Point: orb.Point{1, 0}},
		{Key: "c", Point: orb.Point{5, 0}},
		{Key: "d", Point: orb.Point{2, 0}},
	})

	got := idx.KNearest(orb.Point{0, 0}, 2, nil)
	require.Equal(t, []string{"a", "b"}, got)
}

func TestParcelIndexKNearestBreaksTiesByKey(t *testing.T) {
	idx := NewParcelIndex([]IndexedPoint{
		{Key: "z", Point: orb.Point{1, 0}},
		{Key: "a", Point: orb.Point{0, 1}},
		{Key: "m", Point: orb.Point{-1, 0}},
	})

	got := idx.KNearest(orb.Point{0, 0}, 3, nil)
	require.Equal(t, []string{"a", "m", "z"}, got)
}

func TestParcelIndexKNearestAppliesKeepFilter(t *testing.T) {
	idx := NewParcelIndex([]IndexedPoint{
		{Key: "a", Point: orb.Point{0, 0}},
		{Key: "b", Point: orb.Point{1, 0}},
		{Key: "c", Point: orb.Point{2, 0}},
	})

	got := idx.KNearest(orb.Point{0, 0}, 2, func(key string) bool { return key != "a" })
	require.Equal(t, []string{"b", "c"}, got)
}

func TestParcelIndexKNearestOnEmptyIndex(t *testing.T) {
	idx := NewParcelIndex(nil)
	require.Nil(t, idx.KNearest(orb.Point{0, 0}, 3, nil))
}

func TestParcelIndexKNearestKLargerThanPopulation(t *testing.T) {
	idx := NewParcelIndex([]IndexedPoint{
		{Key: "a", Point: orb.Point{0, 0}},
		{Key: "b", Point: orb.Point{1, 0}},
	})

	got := idx.KNearest(orb.Point{0, 0}, 10, nil)
	require.Len(t, got, 2)
}
