// Package spatialindex provides the two read-mostly spatial query
// structures the merge engine needs: ParcelIndex, a quadtree over
// parcel centroids built once at load (4.B's k_nearest), and
// TileBoundIndex, an incrementally maintained bounding-box bucket grid
// over tile extents (4.B's candidate_neighbor_tiles).
package spatialindex

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/quadtree"
)

// IndexedPoint is a single queryable entry: a stable key plus its
// centroid. Keys are opaque to this package (the infill package
// supplies parcel keys; this package never looks inside parcel.Table,
// keeping the index reusable and acyclic with respect to the parcel
// package).
type IndexedPoint struct {
	Key   string
	Point orb.Point
}

// entry adapts IndexedPoint to orb.Pointer for quadtree storage.
type entry struct {
	IndexedPoint
}

func (e entry) Point() orb.Point { return e.IndexedPoint.Point }

// ParcelIndex is a read-only quadtree over parcel centroids, built
// once from the full parcel set at load time.
type ParcelIndex struct {
	tree   *quadtree.Quadtree
	lookup map[string]orb.Point
}

// NewParcelIndex bulk-builds the index from pts. Construction is the
// only mutation point; all queries afterward are read-only, matching
// spec.md §5's "read-only once built" rule.
func NewParcelIndex(pts []IndexedPoint) *ParcelIndex {
	bound := boundOf(pts)
	tree := quadtree.New(bound)
	lookup := make(map[string]orb.Point, len(pts))
	for _, p := range pts {
		_ = tree.Add(entry{p})
		lookup[p.Key] = p.Point
	}

	return &ParcelIndex{tree: tree, lookup: lookup}
}

func boundOf(pts []IndexedPoint) orb.Bound {
	if len(pts) == 0 {
		return orb.Bound{}
	}
	b := orb.Bound{Min: pts[0].Point, Max: pts[0].Point}
	for _, p := range pts[1:] {
		if p.Point[0] < b.Min[0] {
			b.Min[0] = p.Point[0]
		}
		if p.Point[1] < b.Min[1] {
			b.Min[1] = p.Point[1]
		}
		if p.Point[0] > b.Max[0] {
			b.Max[0] = p.Point[0]
		}
		if p.Point[1] > b.Max[1] {
			b.Max[1] = p.Point[1]
		}
	}

	return b
}

// candidateFactor over-fetches from the quadtree before the final
// deterministic re-sort, so that distance ties at the k-th boundary
// are broken by ascending key rather than by whatever order the tree
// happens to visit nodes in.
const candidateFactor = 4

// KNearest returns up to k keys satisfying keep, ordered by ascending
// Euclidean distance from pt and, for exact ties, by ascending key —
// the deterministic tie-break spec.md §4.D requires. keep may be nil
// to accept every point.
func (idx *ParcelIndex) KNearest(pt orb.Point, k int, keep func(key string) bool) []string {
	if idx == nil || k <= 0 || len(idx.lookup) == 0 {
		return nil
	}

	filter := func(p orb.Pointer) bool {
		if keep == nil {
			return true
		}

		return keep(p.(entry).Key)
	}

	overfetch := k * candidateFactor
	if overfetch < k {
		overfetch = k // guard against overflow on pathological k
	}
	candidates := idx.tree.KNearestMatching(nil, pt, overfetch, filter)

	type scored struct {
		key  string
		dist float64
	}
	scoredCandidates := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		e := c.(entry)
		scoredCandidates = append(scoredCandidates, scored{key: e.Key, dist: squaredDistance(pt, e.Point)})
	}
	sort.Slice(scoredCandidates, func(i, j int) bool {
		if scoredCandidates[i].dist != scoredCandidates[j].dist {
			return scoredCandidates[i].dist < scoredCandidates[j].dist
		}

		return scoredCandidates[i].key < scoredCandidates[j].key
	})

	if len(scoredCandidates) > k {
		scoredCandidates = scoredCandidates[:k]
	}
	out := make([]string, len(scoredCandidates))
	for i, s := range scoredCandidates {
		out[i] = s.key
	}

	return out
}

// squaredDistance is plain planar squared Euclidean distance. Parcel
// coordinates are feet on a projected plane, not lat/lon, so no
// spherical correction applies; squaring avoids a sqrt per comparison
// since only relative order matters here.
func squaredDistance(a, b orb.Point) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]

	return dx*dx + dy*dy
}
