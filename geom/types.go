package geom

import (
	"fmt"

	"github.com/paulmach/orb"
)

// closeTol is the tolerance, in feet, for treating a ring's first and
// last point as coincident.
const closeTol = 1e-9

// Polygon is a validated polygon or multi-polygon. Internally every
// Polygon is stored as an orb.MultiPolygon: a tile created by a single
// parcel holds exactly one orb.Polygon, and a tile created by merge
// holds the concatenation of its operands' rings. This is the
// "possibly simplified" union spec.md allows — it preserves total area
// exactly (sum of parts, no clipping) rather than dissolving shared
// edges, trading a fully dissolved boundary for a union operation that
// can never lose area.
type Polygon struct {
	rings orb.MultiPolygon
}

// NewPolygon validates and wraps a single ring (with optional holes) as
// a Polygon. The ring must be closed (first point == last point),
// have at least 3 distinct points, and not self-intersect.
func NewPolygon(exterior orb.Ring, holes ...orb.Ring) (Polygon, error) {
	if err := validateRing(exterior); err != nil {
		return Polygon{}, err
	}
	for _, h := range holes {
		if err := validateRing(h); err != nil {
			return Polygon{}, err
		}
	}
	p := orb.Polygon{exterior}
	p = append(p, holes...)

	return Polygon{rings: orb.MultiPolygon{p}}, nil
}

// FromOrb wraps an already-validated orb.Polygon, re-running validation.
func FromOrb(p orb.Polygon) (Polygon, error) {
	if len(p) == 0 {
		return Polygon{}, ErrNoRings
	}
	for _, ring := range p {
		if err := validateRing(ring); err != nil {
			return Polygon{}, err
		}
	}

	return Polygon{rings: orb.MultiPolygon{p}}, nil
}

// Rings exposes the underlying orb.MultiPolygon for read-only use by
// other packages (spatialindex bounding boxes, ols region building).
func (p Polygon) Rings() orb.MultiPolygon {
	return p.rings
}

// IsZero reports whether p was never initialized via NewPolygon/FromOrb/Union.
func (p Polygon) IsZero() bool {
	return len(p.rings) == 0
}

func validateRing(r orb.Ring) error {
	if len(distinctPoints(r)) < 3 {
		return fmt.Errorf("validateRing: %w", ErrEmptyRing)
	}
	if len(r) < 2 || r[0] != r[len(r)-1] {
		if !closeEnough(r[0], r[len(r)-1]) {
			return fmt.Errorf("validateRing: %w", ErrUnclosedRing)
		}
	}
	if ringSelfIntersects(r) {
		return fmt.Errorf("validateRing: %w", ErrSelfIntersecting)
	}

	return nil
}

func distinctPoints(r orb.Ring) []orb.Point {
	out := make([]orb.Point, 0, len(r))
	for _, p := range r {
		dup := false
		for _, q := range out {
			if closeEnough(p, q) {
				dup = true

				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}

	return out
}

func closeEnough(a, b orb.Point) bool {
	dx := a[0] - b[0]
	dy := a[1] - b[1]

	return dx*dx+dy*dy <= closeTol*closeTol
}

// ringSelfIntersects checks every pair of non-adjacent edges for a
// proper crossing. O(n²) in ring length, acceptable for parcel-scale
// polygons validated once at load time.
func ringSelfIntersects(r orb.Ring) bool {
	n := len(r) - 1 // last point duplicates the first
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		a1, a2 := r[i], r[i+1]
		for j := i + 1; j < n; j++ {
			// Skip edges adjacent to edge i (they share an endpoint by construction).
			if j == i || (j+1)%n == i || (i+1)%n == j {
				continue
			}
			b1, b2 := r[j], r[j+1]
			if segmentsProperlyCross(a1, a2, b1, b2) {
				return true
			}
		}
	}

	return false
}
