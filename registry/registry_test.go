package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/landtile/agglotile/tilegraph"
)

func ek(a, b string) EdgeKey { return tilegraph.EdgeKey{A: a, B: b} }

func TestBestRecomputesStaleEntriesAndPicksHighestR2(t *testing.T) {
	r := New([]EdgeKey{ek("A", "B"), ek("B", "C")})

	scores := map[EdgeKey]float64{
		ek("A", "B"): 0.4,
		ek("B", "C"): 0.9,
	}
	eval := func(a, b string) (float64, int, error) {
		return scores[ek(a, b)], 10, nil
	}

	winner, ok, err := r.Best(eval)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, ek("B", "C"), winner)
}

func TestBestBreaksTiesByParcelCountThenKey(t *testing.T) {
	r := New([]EdgeKey{ek("A", "B"), ek("C", "D")})

	counts := map[EdgeKey]int{ek("A", "B"): 5, ek("C", "D"): 9}
	eval := func(a, b string) (float64, int, error) {
		return 0.5, counts[ek(a, b)], nil
	}

	winner, ok, err := r.Best(eval)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, ek("C", "D"), winner)
}

func TestBestIsStableAcrossRepeatedCallsWithoutInvalidate(t *testing.T) {
	r := New([]EdgeKey{ek("A", "B")})
	calls := 0
	eval := func(a, b string) (float64, int, error) {
		calls++

		return 0.7, 3, nil
	}

	w1, ok1, err := r.Best(eval)
	require.NoError(t, err)
	require.True(t, ok1)

	w2, ok2, err := r.Best(eval)
	require.NoError(t, err)
	require.True(t, ok2)

	require.Equal(t, w1, w2)
	require.Equal(t, 1, calls) // second Best must not re-evaluate a non-stale winner
}

func TestRemoveDropsEdgeFromContention(t *testing.T) {
	r := New([]EdgeKey{ek("A", "B"), ek("B", "C")})
	eval := func(a, b string) (float64, int, error) {
		if ek(a, b) == ek("A", "B") {
			return 0.99, 10, nil
		}

		return 0.1, 10, nil
	}

	r.Remove(ek("A", "B"))
	winner, ok, err := r.Best(eval)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, ek("B", "C"), winner)
}

func TestBestOnEmptyRegistry(t *testing.T) {
	r := New(nil)
	_, ok, err := r.Best(func(a, b string) (float64, int, error) { return 0, 0, nil })
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOnMergeReconciles(t *testing.T) {
	r := New([]EdgeKey{ek("A", "B"), ek("A", "X"), ek("B", "X")})

	// Simulate merging A,B into C: {A,B} and the pre-merge {A,X}/{B,X}
	// vanish, a single {C,X} takes their place.
	r.OnMerge([]EdgeKey{ek("A", "B"), ek("A", "X"), ek("B", "X")}, []EdgeKey{ek("C", "X")})

	eval := func(a, b string) (float64, int, error) { return 0.5, 4, nil }
	winner, ok, err := r.Best(eval)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, ek("C", "X"), winner)
	require.Equal(t, 1, r.Len())
}

func TestInvalidateForcesRecompute(t *testing.T) {
	r := New([]EdgeKey{ek("A", "B")})
	calls := 0
	eval := func(a, b string) (float64, int, error) {
		calls++

		return 0.5, 3, nil
	}

	_, _, err := r.Best(eval)
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	r.Invalidate(ek("A", "B"))
	_, _, err = r.Best(eval)
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}

func TestStaleEdgesListsOnlyUnresolvedLiveEdges(t *testing.T) {
	r := New([]EdgeKey{ek("A", "B"), ek("B", "C")})
	_, _, err := r.Best(func(a, b string) (float64, int, error) {
		if ek(a, b) == ek("A", "B") {
			return 0.9, 5, nil
		}

		return 0.1, 5, nil
	})
	require.NoError(t, err)

	// A resolved Best() recomputes every stale edge ahead of the
	// winner, so nothing should remain stale afterward.
	require.Empty(t, r.StaleEdges())

	r.Invalidate(ek("B", "C"))
	stale := r.StaleEdges()
	require.Len(t, stale, 1)
	require.Equal(t, ek("B", "C"), stale[0].Edge)
}

func TestWarmUpFeedsBestWithoutReevaluating(t *testing.T) {
	r := New([]EdgeKey{ek("A", "B"), ek("B", "C")})
	calls := 0
	eval := func(a, b string) (float64, int, error) {
		calls++

		return 0.1, 5, nil
	}

	for _, st := range r.StaleEdges() {
		switch st.Edge {
		case ek("A", "B"):
			require.True(t, r.WarmUp(st, 0.95, 5))
		case ek("B", "C"):
			require.True(t, r.WarmUp(st, 0.2, 5))
		}
	}

	winner, ok, err := r.Best(eval)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, ek("A", "B"), winner)
	require.Equal(t, 0, calls) // both memos were pre-warmed, Best never recomputes
}

func TestWarmUpIgnoresStaleVersionMismatch(t *testing.T) {
	r := New([]EdgeKey{ek("A", "B")})

	stale := r.StaleEdges()
	require.Len(t, stale, 1)

	r.Invalidate(ek("A", "B")) // bumps the version before the warm-up lands
	applied := r.WarmUp(stale[0], 0.99, 5)
	require.False(t, applied)

	calls := 0
	_, _, err := r.Best(func(a, b string) (float64, int, error) {
		calls++

		return 0.4, 5, nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, calls) // the superseded warm-up must not have resolved the edge
}
