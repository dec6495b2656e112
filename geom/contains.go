package geom

import "github.com/paulmach/orb"

// Contains reports whether pt lies within p using the even-odd
// (crossing number) rule against the exterior ring of each
// sub-polygon, with holes subtracted. Points exactly on an exterior
// ring's edge are treated as contained; points exactly on a hole's
// edge count as inside the hole and are not — callers needing a strict boundary
// tie-break (tilegraph's point-in-polygon parcel assignment) resolve
// ties among multiple containing tiles themselves.
func Contains(p Polygon, pt orb.Point) bool {
	for _, poly := range p.rings {
		if len(poly) == 0 {
			continue
		}
		if !ringContains(poly[0], pt) {
			continue
		}
		inHole := false
		for _, hole := range poly[1:] {
			if ringContains(hole, pt) {
				inHole = true

				break
			}
		}
		if !inHole {
			return true
		}
	}

	return false
}

// ringContains implements the standard even-odd crossing-number test,
// with an explicit on-edge check so points lying exactly on the
// boundary are reported as contained rather than left to floating
// point luck.
func ringContains(r orb.Ring, pt orb.Point) bool {
	n := len(r) - 1
	inside := false
	for i := 0; i < n; i++ {
		a, b := r[i], r[i+1]
		if onSegment(a, b, pt) {
			return true
		}

		if (a[1] > pt[1]) != (b[1] > pt[1]) {
			xIntersect := a[0] + (pt[1]-a[1])*(b[0]-a[0])/(b[1]-a[1])
			if pt[0] < xIntersect {
				inside = !inside
			}
		}
	}

	return inside
}

func onSegment(a, b, pt orb.Point) bool {
	cross := (b[0]-a[0])*(pt[1]-a[1]) - (b[1]-a[1])*(pt[0]-a[0])
	if cross > closeTol || cross < -closeTol {
		return false
	}

	minX, maxX := a[0], b[0]
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := a[1], b[1]
	if minY > maxY {
		minY, maxY = maxY, minY
	}

	return pt[0] >= minX-closeTol && pt[0] <= maxX+closeTol && pt[1] >= minY-closeTol && pt[1] <= maxY+closeTol
}
