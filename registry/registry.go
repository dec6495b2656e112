package registry

import (
	"container/heap"
	"math"
	"sort"
	"sync"

	"github.com/landtile/agglotile/tilegraph"
)

// EdgeKey aliases tilegraph's edge key so callers never need to import
// both packages just to name an edge.
type EdgeKey = tilegraph.EdgeKey

// EvalFunc evaluates the OLS R² and parcel count of the region formed
// by merging tiles a and b. The driver supplies a closure that unions
// the two tiles' member sets and calls ols.Evaluate.
type EvalFunc func(a, b string) (rSquared float64, parcelCount int, err error)

// state is the registry's authoritative record for one edge. version
// is bumped on every Invalidate/Remove so that stale heapItems left
// behind in the heap (the lazy-decrease-key discipline: never mutate
// an entry in place, only supersede it) can be recognized and
// discarded on pop without a separate cleanup pass.
type state struct {
	version     int
	rSquared    float64
	parcelCount int
	stale       bool
	removed     bool
}

// Registry is the prospective-join registry: a lazy max-heap over
// edges ordered by (R² descending, parcel count descending, edge key
// ascending), with out-of-date heap entries recognized and dropped by
// version rather than searched for and fixed in place.
type Registry struct {
	mu     sync.Mutex
	states map[EdgeKey]*state
	heap   itemHeap
}

// New builds a registry over the given edges, all initially stale
// (their R² has never been evaluated).
func New(edges []EdgeKey) *Registry {
	r := &Registry{states: make(map[EdgeKey]*state, len(edges))}
	for _, e := range edges {
		r.Invalidate(e)
	}

	return r
}

// Invalidate marks edge's memo stale, or registers it fresh-and-stale
// if the registry has not seen it before. Safe to call for an edge
// that is about to be recomputed at the next Best.
func (r *Registry) Invalidate(edge EdgeKey) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.states[edge]
	if !ok {
		st = &state{}
		r.states[edge] = st
	}
	st.stale = true
	st.removed = false
	st.version++
	// A stale entry is pushed with R² = +Inf so it ranks ahead of every
	// fresh entry: Best then recomputes every stale edge before it can
	// return a winner.
	heap.Push(&r.heap, &heapItem{edge: edge, version: st.version, rSquared: math.Inf(1), parcelCount: st.parcelCount})
}

// Remove drops edge from the registry entirely — used when a merge
// consumes one of its endpoints and the edge itself disappears from
// the tile graph (the {a,b} edge, and every {a,x}/{b,x} superseded by
// a folded {c,x}).
func (r *Registry) Remove(edge EdgeKey) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if st, ok := r.states[edge]; ok {
		st.removed = true
		st.version++
	}
}

// OnMerge reconciles the registry after tilegraph.Merge has run:
// removed names every edge that existed before the merge and touched
// either consumed tile; affected is tilegraph.Merge's returned list of
// folded edges now touching the new tile, each marked stale.
func (r *Registry) OnMerge(removed, affected []EdgeKey) {
	for _, e := range removed {
		r.Remove(e)
	}
	for _, e := range affected {
		r.Invalidate(e)
	}
}

// Best returns the globally best edge: the entry at the root of the
// heap once every stale entry (all of which rank ahead of fresh ones)
// has been recomputed via eval. Returns ok=false if no edge remains.
func (r *Registry) Best(eval EvalFunc) (EdgeKey, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for len(r.heap) > 0 {
		top := r.heap[0]
		st := r.states[top.edge]
		if st == nil || st.removed || top.version != st.version {
			heap.Pop(&r.heap) // obsolete entry superseded by a later Invalidate/Remove

			continue
		}
		if st.stale {
			heap.Pop(&r.heap)
			rSquared, parcelCount, err := eval(top.edge.A, top.edge.B)
			if err != nil {
				return EdgeKey{}, false, err
			}
			st.rSquared, st.parcelCount, st.stale = rSquared, parcelCount, false
			st.version++
			heap.Push(&r.heap, &heapItem{edge: top.edge, version: st.version, rSquared: rSquared, parcelCount: parcelCount})

			continue
		}

		return top.edge, true, nil
	}

	return EdgeKey{}, false, nil
}

// Len reports how many live (non-removed) edges the registry tracks.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, st := range r.states {
		if !st.removed {
			n++
		}
	}

	return n
}

// StaleEdge is one unresolved memo as of the instant StaleEdges was
// called, fenced by the version it was observed at so a later WarmUp
// can detect whether it is still current.
type StaleEdge struct {
	Edge    EdgeKey
	version int
}

// StaleEdges returns every live edge whose memo needs recomputing
// before Best can trust it, in ascending key order. Callers that want
// to warm several memos concurrently (an evaluation only reads tile
// and parcel state, so two edges sharing a tile may be evaluated at
// the same time) fan out over this list, then feed each result back
// through WarmUp.
func (r *Registry) StaleEdges() []StaleEdge {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]StaleEdge, 0, len(r.states))
	for e, st := range r.states {
		if !st.removed && st.stale {
			out = append(out, StaleEdge{Edge: e, version: st.version})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Edge.Less(out[j].Edge) })

	return out
}

// WarmUp records a precomputed (rSquared, parcelCount) for a StaleEdge
// returned by a prior StaleEdges call, and reports whether it applied.
// It is a no-op — and returns false — if the edge has since been
// removed or re-invalidated (a concurrent merge touched it while the
// fan-out was in flight), so a superseded result is never applied out
// of order. This preserves the never-read-ranking-mid-fan-out rule:
// Best only ever sees memos that are either fresh from WarmUp or
// recomputed synchronously, never a stale value from an abandoned
// fan-out.
func (r *Registry) WarmUp(stale StaleEdge, rSquared float64, parcelCount int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.states[stale.Edge]
	if !ok || st.removed || st.version != stale.version {
		return false
	}
	st.rSquared, st.parcelCount, st.stale = rSquared, parcelCount, false
	st.version++
	heap.Push(&r.heap, &heapItem{edge: stale.Edge, version: st.version, rSquared: rSquared, parcelCount: parcelCount})

	return true
}
