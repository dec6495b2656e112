package ols

import (
	"fmt"

	"github.com/landtile/agglotile/matrix"
	"github.com/landtile/agglotile/matrix/ops"
	"github.com/landtile/agglotile/parcel"
)

// ParcelTable is the subset of *parcel.Table's read surface Evaluate
// needs, kept narrow so tests can supply a fake table without pulling
// in the full parcel package.
type ParcelTable interface {
	BuiltArea(key string) (*float64, error)
	LandArea(key string) (float64, error)
	AdjSalePrice(key string) (*float64, error)
	MarketValueProxy(key string) (*float64, error)
}

var _ ParcelTable = (*parcel.Table)(nil)

// Evaluate computes the R² of the intercept + built_area + land_area
// model over the parcels named by keys, predicting market_value_proxy.
// Returns (0, len(keys), nil) without touching the regression at all
// when fewer than minSales member parcels carry a non-absent
// adj_sale_price — the sales-count gate. parcelCount is always
// len(keys), independent of the gate, since the registry needs it for
// tie-breaking regardless of whether the region was gated.
func Evaluate(keys []string, tbl ParcelTable, minSales int) (rSquared float64, parcelCount int, err error) {
	parcelCount = len(keys)
	if parcelCount == 0 {
		return 0, 0, nil
	}

	salesCount := 0
	for _, key := range keys {
		price, err := tbl.AdjSalePrice(key)
		if err != nil {
			return 0, parcelCount, err
		}
		if price != nil {
			salesCount++
		}
	}
	if salesCount < minSales {
		return 0, parcelCount, nil
	}

	builtArea := make([]float64, parcelCount)
	landArea := make([]float64, parcelCount)
	response := make([]float64, parcelCount)
	for i, key := range keys {
		ba, err := tbl.BuiltArea(key)
		if err != nil {
			return 0, parcelCount, err
		}
		if ba == nil {
			return 0, parcelCount, fmt.Errorf("%w: %s (built_area)", ErrMissingAttribute, key)
		}
		la, err := tbl.LandArea(key)
		if err != nil {
			return 0, parcelCount, err
		}
		proxy, err := tbl.MarketValueProxy(key)
		if err != nil {
			return 0, parcelCount, err
		}
		if proxy == nil {
			return 0, parcelCount, fmt.Errorf("%w: %s (market_value_proxy)", ErrMissingAttribute, key)
		}
		builtArea[i] = *ba
		landArea[i] = la
		response[i] = *proxy
	}

	r2, err := fitAndScore(builtArea, landArea, response)
	if err != nil {
		return 0, parcelCount, err
	}

	return r2, parcelCount, nil
}

// fitAndScore centers the two regressors and the response, solves the
// 2x2 normal-equations system via LU with partial pivoting, falls back
// to QR if LU reports singularity, and returns R² = 1 - SSres/SStot.
// A constant response (SStot == 0) returns R²=0 by the convention
// documented for the OLS evaluator.
func fitAndScore(builtArea, landArea, response []float64) (float64, error) {
	n := len(response)
	design, err := matrix.NewDense(n, 2)
	if err != nil {
		return 0, err
	}
	for i := 0; i < n; i++ {
		_ = design.Set(i, 0, builtArea[i])
		_ = design.Set(i, 1, landArea[i])
	}

	centeredDesign, _, err := matrix.CenterColumns(design)
	if err != nil {
		return 0, err
	}
	centeredResponse, _ := matrix.CenterVector(response)

	var sstot float64
	for _, v := range centeredResponse {
		sstot += v * v
	}
	if sstot == 0 {
		return 0, nil
	}

	xt := centeredDesign.Transpose()
	xtx, err := matrix.Mul(xt, centeredDesign)
	if err != nil {
		return 0, err
	}
	xty, err := matrix.MatVec(xt, centeredResponse)
	if err != nil {
		return 0, err
	}

	beta, err := solveNormalEquations(xtx, xty)
	if err != nil {
		return 0, nil // singular even under QR: numeric-singularity gate, recover locally
	}

	fitted, err := matrix.MatVec(centeredDesign, beta)
	if err != nil {
		return 0, err
	}

	var ssres float64
	for i, v := range centeredResponse {
		d := v - fitted[i]
		ssres += d * d
	}

	return 1 - ssres/sstot, nil
}

func solveNormalEquations(xtx *matrix.Dense, xty []float64) ([]float64, error) {
	l, u, perm, err := ops.LU(xtx)
	if err == nil {
		beta, err := ops.SolveLU(l, u, perm, xty)
		if err == nil {
			return beta, nil
		}
	}

	q, r, err := ops.QR(xtx)
	if err != nil {
		return nil, err
	}

	return ops.SolveQR(q, r, xty)
}
