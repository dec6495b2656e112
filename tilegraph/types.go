package tilegraph

import (
	"sort"

	"github.com/landtile/agglotile/geom"
)

// EdgeKey is the unordered pair of tile keys identifying a prospective
// join. A and B are always stored with A < B, so two EdgeKey values
// compare equal iff they name the same pair regardless of discovery
// order.
type EdgeKey struct {
	A, B string
}

func newEdgeKey(x, y string) EdgeKey {
	if x < y {
		return EdgeKey{A: x, B: y}
	}

	return EdgeKey{A: y, B: x}
}

// Less orders edge keys by the sorted-unordered-pair rule the
// registry and any deterministic scan rely on.
func (k EdgeKey) Less(other EdgeKey) bool {
	if k.A != other.A {
		return k.A < other.A
	}

	return k.B < other.B
}

// tile is the graph's internal, mutable tile record.
type tile struct {
	key        string
	geometry   geom.Polygon
	rSquared   *float64
	members    map[string]struct{}
	salesCount int
}

// Tile is a read-only snapshot of a tile, returned by Graph's query
// methods so callers cannot mutate graph state through it.
type Tile struct {
	Key        string
	Geometry   geom.Polygon
	RSquared   *float64
	Members    []string // sorted ascending
	SalesCount int
}

func (t *tile) snapshot() Tile {
	members := make([]string, 0, len(t.members))
	for m := range t.members {
		members = append(members, m)
	}
	sort.Strings(members)

	return Tile{
		Key:        t.key,
		Geometry:   t.geometry,
		RSquared:   t.rSquared,
		Members:    members,
		SalesCount: t.salesCount,
	}
}

// TileSeed is one row of the initial tile set passed to Init.
type TileSeed struct {
	Key      string
	Geometry geom.Polygon
}
