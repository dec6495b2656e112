package infill

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"github.com/landtile/agglotile/geom"
	"github.com/landtile/agglotile/parcel"
	"github.com/landtile/agglotile/spatialindex"
)

// ParcelTable is the subset of *parcel.Table's surface Run needs.
type ParcelTable interface {
	Keys() []string
	BuiltArea(key string) (*float64, error)
	SetBuiltArea(key string, value float64) error
	AdjSalePrice(key string) (*float64, error)
	AssessedValue(key string) (float64, error)
	MarketValueProxy(key string) (*float64, error)
	SetMarketValueProxy(key string, value float64) error
	Geometry(key string) (geom.Polygon, error)
}

var _ ParcelTable = (*parcel.Table)(nil)

const minWeightDistance = 1e-6

// Run executes the two spatial-lag passes and the step-3 proxy
// assignment over tbl, using idx to find donor candidates by centroid
// distance. k is the donor count (infill_k, default 3). Run is
// idempotent: a table whose built_area and market_value_proxy columns
// are already complete is left untouched and issues no donor query.
func Run(tbl ParcelTable, idx *spatialindex.ParcelIndex, k int) error {
	keys := tbl.Keys()

	if err := infillBuiltArea(tbl, idx, keys, k); err != nil {
		return err
	}
	assignProxyFromSaleOrAssessed(tbl, keys)

	return infillProxy(tbl, idx, keys, k)
}

func centroidOf(tbl ParcelTable, key string) (orb.Point, error) {
	poly, err := tbl.Geometry(key)
	if err != nil {
		return orb.Point{}, err
	}

	return geom.Centroid(poly), nil
}

// infillBuiltArea is spec pass 1: absent built_area is set to the
// inverse-distance-weighted mean of the k nearest parcels with a known
// built_area, ties in distance broken by ascending key (the index
// already guarantees this ordering).
func infillBuiltArea(tbl ParcelTable, idx *spatialindex.ParcelIndex, keys []string, k int) error {
	pending := make([]string, 0)
	for _, key := range keys {
		ba, err := tbl.BuiltArea(key)
		if err != nil {
			return err
		}
		if ba == nil {
			pending = append(pending, key)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	hasBuiltArea := func(key string) bool {
		ba, _ := tbl.BuiltArea(key)

		return ba != nil
	}

	for _, key := range pending {
		pt, err := centroidOf(tbl, key)
		if err != nil {
			return err
		}
		donors := idx.KNearest(pt, k, hasBuiltArea)
		if len(donors) == 0 {
			return fmt.Errorf("%w: %s", ErrNoBuiltAreaDonors, key)
		}

		value, err := weightedMean(tbl, pt, donors, func(donorKey string) (float64, error) {
			ba, err := tbl.BuiltArea(donorKey)
			if err != nil {
				return 0, err
			}

			return *ba, nil
		})
		if err != nil {
			return err
		}
		if err := tbl.SetBuiltArea(key, value); err != nil {
			return err
		}
	}

	return nil
}

// assignProxyFromSaleOrAssessed is algorithmic step 3: a parcel with a
// known sale and assessed value gets the mean of the two; a parcel
// with only an assessed value gets that value. A parcel whose proxy is
// already set (idempotence) is left untouched.
func assignProxyFromSaleOrAssessed(tbl ParcelTable, keys []string) {
	for _, key := range keys {
		proxy, err := tbl.MarketValueProxy(key)
		if err != nil || proxy != nil {
			continue
		}

		sale, err := tbl.AdjSalePrice(key)
		if err != nil {
			continue
		}
		assessed, err := tbl.AssessedValue(key)
		if err != nil {
			continue
		}

		value := assessed
		if sale != nil {
			value = (*sale + assessed) / 2
		}
		_ = tbl.SetMarketValueProxy(key, value)
	}
}

// infillProxy is pass 2: any parcel still without a proxy after step 3
// is infilled the same way as pass 1, restricted to donors whose proxy
// was set by step 3 (or already known at Run's start) rather than by
// this pass, so infilled values never compound across donors.
func infillProxy(tbl ParcelTable, idx *spatialindex.ParcelIndex, keys []string, k int) error {
	eligibleDonor := make(map[string]bool, len(keys))
	pending := make([]string, 0)
	for _, key := range keys {
		proxy, err := tbl.MarketValueProxy(key)
		if err != nil {
			return err
		}
		if proxy != nil {
			eligibleDonor[key] = true
		} else {
			pending = append(pending, key)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	keep := func(key string) bool { return eligibleDonor[key] }

	for _, key := range pending {
		pt, err := centroidOf(tbl, key)
		if err != nil {
			return err
		}
		donors := idx.KNearest(pt, k, keep)
		if len(donors) == 0 {
			continue // no eligible proxy donors; proxy remains absent, matching spec's "neither" case
		}

		value, err := weightedMean(tbl, pt, donors, func(donorKey string) (float64, error) {
			proxy, err := tbl.MarketValueProxy(donorKey)
			if err != nil {
				return 0, err
			}

			return *proxy, nil
		})
		if err != nil {
			return err
		}
		if err := tbl.SetMarketValueProxy(key, value); err != nil {
			return err
		}
	}

	return nil
}

// weightedMean computes the 1/d inverse-distance-weighted mean of
// value(donor) over donors, where d is the Euclidean distance from pt
// to each donor's centroid.
func weightedMean(tbl ParcelTable, pt orb.Point, donors []string, value func(string) (float64, error)) (float64, error) {
	var weightedSum, weightSum float64
	for _, donorKey := range donors {
		donorPt, err := centroidOf(tbl, donorKey)
		if err != nil {
			return 0, err
		}
		d := math.Hypot(pt[0]-donorPt[0], pt[1]-donorPt[1])
		if d < minWeightDistance {
			d = minWeightDistance
		}
		v, err := value(donorKey)
		if err != nil {
			return 0, err
		}
		w := 1 / d
		weightedSum += w * v
		weightSum += w
	}

	return weightedSum / weightSum, nil
}
