// Package geom wraps github.com/paulmach/orb polygon types with the
// validation and predicates the tiling engine needs: a rook-adjacency
// test, a measure-preserving union, and a centroid. Invalid geometry
// (self-intersecting or empty rings) is rejected at construction —
// never discovered mid-run — matching the load-time validity boundary
// the rest of the module assumes.
package geom

import "errors"

var (
	// ErrEmptyRing indicates a ring with fewer than 3 distinct points.
	ErrEmptyRing = errors.New("geom: ring has fewer than 3 points")

	// ErrUnclosedRing indicates a ring whose first and last point differ.
	ErrUnclosedRing = errors.New("geom: ring is not closed")

	// ErrSelfIntersecting indicates a ring whose non-adjacent edges cross.
	ErrSelfIntersecting = errors.New("geom: ring is self-intersecting")

	// ErrNoRings indicates a polygon constructed with zero rings.
	ErrNoRings = errors.New("geom: polygon has no rings")
)
