package tilegraph

import (
	"fmt"
	"sync/atomic"

	"github.com/landtile/agglotile/geom"
)

// Merge folds tiles a and b into a newly keyed tile c: members and
// geometry are unioned, c.RSquared is stamped with winningRSquared
// (the R² of the join that produced c, per spec.md's "a tile created
// by merge carries the R² of the join that produced it" invariant),
// every member parcel's current-tile back-reference is repointed to
// c, and a and b are deleted. Every surviving edge touching a or b is
// replaced by an edge to c marked stale in the caller's registry
// (Merge itself only returns the affected edge keys; invalidation is
// the registry's job via OnMerge). {a,b} itself is dropped, never
// replaced.
func Merge(g *Graph, parcels ParcelTable, a, b string, winningRSquared float64) (string, []EdgeKey, error) {
	if a == b {
		return "", nil, ErrSelfMerge
	}

	g.muTiles.Lock()
	g.muEdges.Lock()
	defer g.muTiles.Unlock()
	defer g.muEdges.Unlock()

	ta, ok := g.tiles[a]
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrUnknownTile, a)
	}
	tb, ok := g.tiles[b]
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrUnknownTile, b)
	}

	mergedGeometry, err := geom.Union(ta.geometry, tb.geometry)
	if err != nil {
		return "", nil, err
	}

	c := g.newTileKey()
	rs := winningRSquared
	ct := &tile{
		key:        c,
		geometry:   mergedGeometry,
		rSquared:   &rs,
		members:    make(map[string]struct{}, len(ta.members)+len(tb.members)),
		salesCount: ta.salesCount + tb.salesCount,
	}
	for m := range ta.members {
		ct.members[m] = struct{}{}
	}
	for m := range tb.members {
		ct.members[m] = struct{}{}
	}

	for m := range ct.members {
		if err := parcels.SetCurrentTile(m, c); err != nil {
			return "", nil, err
		}
	}

	// Fold every edge touching a or b into an edge touching c,
	// collapsing {a,x} and {b,x} into one entry when both existed, and
	// dropping {a,b} itself.
	affected := make(map[EdgeKey]struct{})
	for e := range g.edges {
		other := ""
		switch {
		case e.A == a || e.B == a:
			if e.A == b || e.B == b {
				continue // {a,b} itself: dropped, not replaced
			}
			other = otherEnd(e, a)
		case e.A == b || e.B == b:
			other = otherEnd(e, b)
		default:
			continue
		}
		delete(g.edges, e)
		newKey := newEdgeKey(c, other)
		g.edges[newKey] = struct{}{}
		affected[newKey] = struct{}{}
	}

	delete(g.tiles, a)
	delete(g.tiles, b)
	g.tiles[c] = ct

	g.bounds.Remove(a)
	g.bounds.Remove(b)
	g.bounds.Add(c, geom.Bound(mergedGeometry))

	out := make([]EdgeKey, 0, len(affected))
	for e := range affected {
		out = append(out, e)
	}

	return c, out, nil
}

func otherEnd(e EdgeKey, known string) string {
	if e.A == known {
		return e.B
	}

	return e.A
}

func (g *Graph) newTileKey() string {
	id := atomic.AddUint64(&g.nextID, 1)

	return fmt.Sprintf("tile-%d", id)
}
