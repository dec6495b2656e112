package geom

import (
	"math"

	"github.com/paulmach/orb"
)

// lengthEps is the minimum projected overlap, in feet, treated as a
// "positive 1-dimensional measure" shared boundary rather than noise
// from floating point round-off.
const lengthEps = 1e-6

// parallelEps bounds how far from exactly parallel (as a fraction of
// the product of the two segment lengths) two edges may be and still
// be treated as running along the same direction for the overlap test.
const parallelEps = 1e-9

// IntersectsRook implements the 4.A rook-adjacency predicate: true iff
// some edge of p and some edge of q are parallel (within parallelEps),
// lie no more than bufferFeet apart (half of bufferFeet per polygon),
// and overlap over a positive length when projected onto their shared
// direction; a directly shared segment is the zero-gap case. Edges
// that are not parallel never count, however close they are, and
// overlapping interiors are not tested separately. A single point of
// tangency — corner-to-corner contact,
// or two edges merely crossing at a vertex — never satisfies either
// test, because the projected overlap along the shared direction is
// zero there; this is what distinguishes rook from queen contiguity.
func IntersectsRook(p, q Polygon, bufferFeet float64) bool {
	half := bufferFeet / 2

	for _, pp := range p.rings {
		for _, pRing := range pp {
			for _, qp := range q.rings {
				for _, qRing := range qp {
					if ringsAdjacent(pRing, qRing, half) {
						return true
					}
				}
			}
		}
	}

	return false
}

func ringsAdjacent(a, b orb.Ring, halfBuffer float64) bool {
	na := len(a) - 1
	nb := len(b) - 1
	for i := 0; i < na; i++ {
		a1, a2 := a[i], a[i+1]
		for j := 0; j < nb; j++ {
			b1, b2 := b[j], b[j+1]
			if segmentsAdjacent(a1, a2, b1, b2, halfBuffer) {
				return true
			}
		}
	}

	return false
}

// segmentsAdjacent reports whether two edges are close to parallel and
// project onto their shared direction with positive overlap length,
// with a perpendicular gap no larger than 2*halfBuffer (each polygon
// contributes halfBuffer of expansion).
func segmentsAdjacent(a1, a2, b1, b2 orb.Point, halfBuffer float64) bool {
	dax, day := a2[0]-a1[0], a2[1]-a1[1]
	dbx, dby := b2[0]-b1[0], b2[1]-b1[1]
	lenA := math.Hypot(dax, day)
	lenB := math.Hypot(dbx, dby)
	if lenA == 0 || lenB == 0 {
		return false
	}

	cross := dax*dby - day*dbx
	if math.Abs(cross) > parallelEps*lenA*lenB {
		return false // not parallel: a vertex touch or a transversal crossing, never positive-measure
	}

	// Perpendicular distance from b1 to the infinite line through a1,a2.
	perp := math.Abs((b1[0]-a1[0])*day-(b1[1]-a1[1])*dax) / lenA
	if perp > 2*halfBuffer+1e-9 {
		return false
	}

	// Project a1,a2,b1,b2 onto the unit direction of segment a.
	ux, uy := dax/lenA, day/lenA
	ta1, ta2 := 0.0, lenA
	tb1 := (b1[0]-a1[0])*ux + (b1[1]-a1[1])*uy
	tb2 := (b2[0]-a1[0])*ux + (b2[1]-a1[1])*uy
	if tb1 > tb2 {
		tb1, tb2 = tb2, tb1
	}

	lo := math.Max(ta1, tb1)
	hi := math.Min(ta2, tb2)

	return hi-lo > lengthEps
}
