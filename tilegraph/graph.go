package tilegraph

import (
	"fmt"
	"sort"
	"sync"

	"github.com/paulmach/orb"

	"github.com/landtile/agglotile/geom"
	"github.com/landtile/agglotile/spatialindex"
)

// ParcelTable is the subset of *parcel.Table's surface the tile graph
// needs: every parcel's geometry (for centroid assignment and sales
// counting) and the single write for the current-tile back-reference.
type ParcelTable interface {
	Keys() []string
	Geometry(key string) (geom.Polygon, error)
	AdjSalePrice(key string) (*float64, error)
	SetCurrentTile(key, tileKey string) error
}

// Graph is the tile adjacency graph: tiles are nodes, rook-adjacent
// pairs are edges. muTiles guards tiles and members+geometry state;
// muEdges guards the edge set and the incremental bound index,
// mirroring the teacher's split-lock design for independently
// contended maps.
type Graph struct {
	muTiles sync.RWMutex
	tiles   map[string]*tile

	muEdges sync.RWMutex
	edges   map[EdgeKey]struct{}
	bounds  *spatialindex.TileBoundIndex

	bufferFeet float64
	nextID     uint64
}

// Init builds the initial graph from seeds, assigns every parcel to
// exactly one tile by centroid point-in-polygon (boundary ties go to
// the lexicographically smaller tile key), and discovers the initial
// edge set by confirming spatialindex.TileBoundIndex candidates with
// geom.IntersectsRook.
func Init(seeds []TileSeed, parcels ParcelTable, bufferFeet float64) (*Graph, error) {
	g := &Graph{
		tiles:      make(map[string]*tile, len(seeds)),
		edges:      make(map[EdgeKey]struct{}),
		bufferFeet: bufferFeet,
	}

	cellSize := meanExtent(seeds)
	if bufferFeet > cellSize {
		cellSize = bufferFeet
	}
	var origin orb.Point
	if len(seeds) > 0 {
		origin = geom.Bound(seeds[0].Geometry).Min
	}
	g.bounds = spatialindex.NewTileBoundIndex(origin, cellSize, bufferFeet)

	sortedSeeds := append([]TileSeed(nil), seeds...)
	sort.Slice(sortedSeeds, func(i, j int) bool { return sortedSeeds[i].Key < sortedSeeds[j].Key })

	for _, s := range sortedSeeds {
		g.tiles[s.Key] = &tile{key: s.Key, geometry: s.Geometry, members: make(map[string]struct{})}
		g.bounds.Add(s.Key, geom.Bound(s.Geometry))
	}

	if err := g.assignParcels(parcels, sortedSeeds); err != nil {
		return nil, err
	}

	for _, s := range sortedSeeds {
		g.discoverEdgesFor(s.Key)
	}

	return g, nil
}

func meanExtent(seeds []TileSeed) float64 {
	if len(seeds) == 0 {
		return 1
	}
	var total float64
	for _, s := range seeds {
		b := geom.Bound(s.Geometry)
		dx := b.Max[0] - b.Min[0]
		dy := b.Max[1] - b.Min[1]
		if dx > dy {
			total += dx
		} else {
			total += dy
		}
	}
	mean := total / float64(len(seeds))
	if mean <= 0 {
		return 1
	}

	return mean
}

func (g *Graph) assignParcels(parcels ParcelTable, seeds []TileSeed) error {
	for _, key := range parcels.Keys() {
		poly, err := parcels.Geometry(key)
		if err != nil {
			return err
		}
		centroid := geom.Centroid(poly)

		owner := ""
		for _, s := range seeds {
			if geom.Contains(s.Geometry, centroid) {
				if owner == "" || s.Key < owner {
					owner = s.Key
				}
			}
		}
		if owner == "" {
			return fmt.Errorf("%w: %s", ErrParcelUnassigned, key)
		}

		t := g.tiles[owner]
		t.members[key] = struct{}{}
		if sale, err := parcels.AdjSalePrice(key); err == nil && sale != nil {
			t.salesCount++
		}
		if err := parcels.SetCurrentTile(key, owner); err != nil {
			return err
		}
	}

	return nil
}

func (g *Graph) discoverEdgesFor(key string) {
	for _, other := range g.bounds.CandidateNeighbors(key) {
		a, b := g.tiles[key], g.tiles[other]
		if a == nil || b == nil {
			continue
		}
		if geom.IntersectsRook(a.geometry, b.geometry, g.bufferFeet) {
			g.edges[newEdgeKey(key, other)] = struct{}{}
		}
	}
}

// Tiles returns every current tile key in ascending order.
func (g *Graph) Tiles() []string {
	g.muTiles.RLock()
	defer g.muTiles.RUnlock()

	out := make([]string, 0, len(g.tiles))
	for k := range g.tiles {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

// Tile returns a snapshot of the named tile.
func (g *Graph) Tile(key string) (Tile, error) {
	g.muTiles.RLock()
	defer g.muTiles.RUnlock()

	t, ok := g.tiles[key]
	if !ok {
		return Tile{}, fmt.Errorf("%w: %s", ErrUnknownTile, key)
	}

	return t.snapshot(), nil
}

// Edges returns every current edge key, sorted by the unordered-pair
// rule.
func (g *Graph) Edges() []EdgeKey {
	g.muEdges.RLock()
	defer g.muEdges.RUnlock()

	out := make([]EdgeKey, 0, len(g.edges))
	for e := range g.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })

	return out
}

// TileCount reports the current number of tiles.
func (g *Graph) TileCount() int {
	g.muTiles.RLock()
	defer g.muTiles.RUnlock()

	return len(g.tiles)
}
