// Package registry maintains, for every edge in the tile graph, a
// memoized (R², parcel count) evaluation and exposes the globally
// best edge under a stale-aware lazy max-heap — a max-heap, ordered by
// (R² descending, parcel count descending, edge key ascending)
// generalization of the single-field min-heap a shortest-path search
// uses, with the same lazy-decrease-key discipline: a stale entry is
// never mutated in place, only superseded by a fresh push and ignored
// on pop.
package registry

import "errors"

// ErrUnknownEdge names an edge key the registry has never seen. No
// Registry method returns it: Invalidate registers an unseen edge as
// stale, and Remove ignores one.
var ErrUnknownEdge = errors.New("registry: unknown edge key")
