package spatialindex

import (
	"math"

	"github.com/paulmach/orb"
)

// TileBoundIndex is an incrementally maintained bucket grid over tile
// bounding boxes. Each tile is filed into every cell its bound
// overlaps; a candidate query for a tile's neighbors visits that
// tile's own cells plus every cell within ringRadius cells of them,
// which is enough to find every other tile whose bound could possibly
// be rook adjacent once the adjacency buffer is taken into account (any
// two bounds within bufferFeet of each other share or border a bucket
// cell no more than ringRadius cells away).
//
// Cell size is fixed at construction from max(mean tile extent,
// bufferFeet), so it is not resized as tiles merge; a coarser-than-
// ideal grid only costs extra adjacency checks in geom.IntersectsRook,
// never a missed candidate — but only because ringRadius is derived
// from the same bufferFeet, not assumed to be 1.
type TileBoundIndex struct {
	cellSize   float64
	ringRadius int
	origin     orb.Point
	buckets    map[[2]int]map[string]struct{}
	bounds     map[string]orb.Bound
}

// NewTileBoundIndex builds an empty index. cellSize must be positive;
// callers derive it from the mean tile bound extent at load time (see
// tilegraph.Init's construction of the index). bufferFeet is the
// adjacency buffer the caller will apply in geom.IntersectsRook;
// ringRadius is sized so that CandidateNeighbors never misses a pair
// within that buffer regardless of how cellSize compares to it.
func NewTileBoundIndex(origin orb.Point, cellSize, bufferFeet float64) *TileBoundIndex {
	if cellSize <= 0 {
		cellSize = 1
	}

	ringRadius := int(math.Ceil(bufferFeet / cellSize))
	if ringRadius < 1 {
		ringRadius = 1
	}

	return &TileBoundIndex{
		cellSize:   cellSize,
		ringRadius: ringRadius,
		origin:     origin,
		buckets:    make(map[[2]int]map[string]struct{}),
		bounds:     make(map[string]orb.Bound),
	}
}

func (idx *TileBoundIndex) cellOf(p orb.Point) [2]int {
	return [2]int{
		int(math.Floor((p[0] - idx.origin[0]) / idx.cellSize)),
		int(math.Floor((p[1] - idx.origin[1]) / idx.cellSize)),
	}
}

func (idx *TileBoundIndex) cellsOf(b orb.Bound) [][2]int {
	minC := idx.cellOf(b.Min)
	maxC := idx.cellOf(b.Max)
	cells := make([][2]int, 0, (maxC[0]-minC[0]+1)*(maxC[1]-minC[1]+1))
	for x := minC[0]; x <= maxC[0]; x++ {
		for y := minC[1]; y <= maxC[1]; y++ {
			cells = append(cells, [2]int{x, y})
		}
	}

	return cells
}

// Add files tileKey into every bucket its bound overlaps, replacing
// any prior bound filed under the same key.
func (idx *TileBoundIndex) Add(tileKey string, bound orb.Bound) {
	idx.Remove(tileKey)
	idx.bounds[tileKey] = bound
	for _, c := range idx.cellsOf(bound) {
		bucket, ok := idx.buckets[c]
		if !ok {
			bucket = make(map[string]struct{})
			idx.buckets[c] = bucket
		}
		bucket[tileKey] = struct{}{}
	}
}

// Remove deletes tileKey from the index. A no-op if tileKey is absent.
func (idx *TileBoundIndex) Remove(tileKey string) {
	bound, ok := idx.bounds[tileKey]
	if !ok {
		return
	}
	for _, c := range idx.cellsOf(bound) {
		if bucket, ok := idx.buckets[c]; ok {
			delete(bucket, tileKey)
			if len(bucket) == 0 {
				delete(idx.buckets, c)
			}
		}
	}
	delete(idx.bounds, tileKey)
}

// CandidateNeighbors returns every tile key (other than tileKey
// itself) filed in a bucket cell within ringRadius cells of a cell
// that tileKey's own bound occupies. The result is a superset of tileKey's true rook-adjacent
// neighbors: callers must still run geom.IntersectsRook on each
// candidate pair.
func (idx *TileBoundIndex) CandidateNeighbors(tileKey string) []string {
	bound, ok := idx.bounds[tileKey]
	if !ok {
		return nil
	}

	seen := make(map[string]struct{})
	r := idx.ringRadius
	for _, c := range idx.cellsOf(bound) {
		for dx := -r; dx <= r; dx++ {
			for dy := -r; dy <= r; dy++ {
				neighborCell := [2]int{c[0] + dx, c[1] + dy}
				bucket, ok := idx.buckets[neighborCell]
				if !ok {
					continue
				}
				for key := range bucket {
					if key != tileKey {
						seen[key] = struct{}{}
					}
				}
			}
		}
	}

	out := make([]string, 0, len(seen))
	for key := range seen {
		out = append(out, key)
	}

	return out
}

// Len reports how many distinct tiles are currently filed.
func (idx *TileBoundIndex) Len() int {
	return len(idx.bounds)
}
