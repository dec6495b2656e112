package tablestore

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"

	"github.com/landtile/agglotile/geom"
)

// encodeGeometry renders p as well-known text. A tile that has never
// been merged still has a single-polygon MultiPolygon, so this always
// round-trips through orb.MultiPolygon.
func encodeGeometry(p geom.Polygon) string {
	return wkt.MarshalString(p.Rings())
}

// decodeGeometry parses well-known text back into a geom.Polygon,
// accepting either a bare POLYGON or a MULTIPOLYGON (tiles may already
// be multi-polygon on input after an upstream merge).
func decodeGeometry(text string) (geom.Polygon, error) {
	g, err := wkt.Unmarshal(text)
	if err != nil {
		return geom.Polygon{}, fmt.Errorf("tablestore: parsing geometry: %w", err)
	}

	switch v := g.(type) {
	case orb.Polygon:
		return geom.FromOrb(v)
	case orb.MultiPolygon:
		if len(v) == 0 {
			return geom.Polygon{}, fmt.Errorf("tablestore: empty multipolygon")
		}
		out, err := geom.FromOrb(v[0])
		if err != nil {
			return geom.Polygon{}, err
		}
		for _, poly := range v[1:] {
			next, err := geom.FromOrb(poly)
			if err != nil {
				return geom.Polygon{}, err
			}
			out, err = geom.Union(out, next)
			if err != nil {
				return geom.Polygon{}, err
			}
		}

		return out, nil
	default:
		return geom.Polygon{}, fmt.Errorf("tablestore: unsupported geometry type %T", g)
	}
}
