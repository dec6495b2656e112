package geom

import "github.com/paulmach/orb"

// Union returns the topological union of p and q as the concatenation
// of their rings (see the Polygon doc comment for why this
// representation is chosen over boundary dissolution). Total area is
// preserved exactly: Area(Union(p,q)) == Area(p) + Area(q) whenever p
// and q do not overlap, which holds for any two tiles in a valid
// partition.
func Union(p, q Polygon) (Polygon, error) {
	if p.IsZero() {
		return q, nil
	}
	if q.IsZero() {
		return p, nil
	}

	merged := make(orb.MultiPolygon, 0, len(p.rings)+len(q.rings))
	merged = append(merged, p.rings...)
	merged = append(merged, q.rings...)

	return Polygon{rings: merged}, nil
}

// Area returns the total unsigned area of p in square feet, summing
// each sub-polygon's exterior ring area minus its holes (the shoelace
// formula).
func Area(p Polygon) float64 {
	var total float64
	for _, poly := range p.rings {
		for i, ring := range poly {
			a := ringArea(ring)
			if i == 0 {
				total += a // exterior
			} else {
				total -= a // hole
			}
		}
	}

	return total
}

func ringArea(r orb.Ring) float64 {
	var sum float64
	n := len(r) - 1 // last point duplicates first
	for i := 0; i < n; i++ {
		p1, p2 := r[i], r[i+1]
		sum += p1[0]*p2[1] - p2[0]*p1[1]
	}
	a := sum / 2

	if a < 0 {
		return -a
	}

	return a
}

// Centroid returns the area-weighted centroid of p across all of its
// sub-polygons, using each exterior ring's signed-area centroid.
func Centroid(p Polygon) orb.Point {
	var cx, cy, totalArea float64
	for _, poly := range p.rings {
		if len(poly) == 0 {
			continue
		}
		ring := poly[0] // exterior ring dominates the centroid; holes are a minor correction we skip
		rx, ry, area := ringCentroidSigned(ring)
		cx += rx * area
		cy += ry * area
		totalArea += area
	}
	if totalArea == 0 {
		return averagePoint(p)
	}

	return orb.Point{cx / totalArea, cy / totalArea}
}

// ringCentroidSigned returns the centroid and signed area (can be
// negative for clockwise rings) of a closed ring via the standard
// polygon-centroid formula.
func ringCentroidSigned(r orb.Ring) (cx, cy, signedArea float64) {
	n := len(r) - 1
	var a, sx, sy float64
	for i := 0; i < n; i++ {
		p1, p2 := r[i], r[i+1]
		cr := p1[0]*p2[1] - p2[0]*p1[1]
		a += cr
		sx += (p1[0] + p2[0]) * cr
		sy += (p1[1] + p2[1]) * cr
	}
	a /= 2
	if a == 0 {
		avgX, avgY := averageRing(r)

		return avgX, avgY, 0
	}

	return sx / (6 * a), sy / (6 * a), a
}

func averageRing(r orb.Ring) (avgX, avgY float64) {
	if len(r) == 0 {
		return 0, 0
	}
	var sx, sy float64
	for _, p := range r {
		sx += p[0]
		sy += p[1]
	}

	return sx / float64(len(r)), sy / float64(len(r))
}

func averagePoint(p Polygon) orb.Point {
	var sx, sy float64
	var n int
	for _, poly := range p.rings {
		for _, ring := range poly {
			for _, pt := range ring {
				sx += pt[0]
				sy += pt[1]
				n++
			}
		}
	}
	if n == 0 {
		return orb.Point{}
	}

	return orb.Point{sx / float64(n), sy / float64(n)}
}

// Bound returns the axis-aligned bounding box of p.
func Bound(p Polygon) orb.Bound {
	var b orb.Bound
	first := true
	for _, poly := range p.rings {
		for _, ring := range poly {
			for _, pt := range ring {
				if first {
					b = orb.Bound{Min: pt, Max: pt}
					first = false

					continue
				}
				if pt[0] < b.Min[0] {
					b.Min[0] = pt[0]
				}
				if pt[1] < b.Min[1] {
					b.Min[1] = pt[1]
				}
				if pt[0] > b.Max[0] {
					b.Max[0] = pt[0]
				}
				if pt[1] > b.Max[1] {
					b.Max[1] = pt[1]
				}
			}
		}
	}

	return b
}
