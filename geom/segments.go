package geom

import "github.com/paulmach/orb"

// cross3 returns the z-component of (a-o) × (b-o): positive if o→a→b
// turns left, negative if it turns right, zero if collinear.
func cross3(o, a, b orb.Point) float64 {
	return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// segmentsProperlyCross reports whether segments (a1,a2) and (b1,b2)
// cross transversally at an interior point of both. Endpoint touches
// and collinear overlaps are deliberately excluded: they are handled
// separately (ring closure, rook adjacency) and are not "crossings"
// for polygon-validity purposes.
func segmentsProperlyCross(a1, a2, b1, b2 orb.Point) bool {
	d1 := sign(cross3(b1, b2, a1))
	d2 := sign(cross3(b1, b2, a2))
	d3 := sign(cross3(a1, a2, b1))
	d4 := sign(cross3(a1, a2, b2))

	return d1 != 0 && d2 != 0 && d3 != 0 && d4 != 0 && d1 != d2 && d3 != d4
}
