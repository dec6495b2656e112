// Package ols evaluates the two-regressor linear model — intercept,
// built_area, land_area predicting market_value_proxy — that the merge
// driver ranks prospective tile joins on. It never panics: a
// degenerate design or an under-sold region recovers locally as R²=0,
// matching the registry's memoization contract.
package ols

import "errors"

// ErrMissingAttribute is returned when a parcel in the evaluated
// region is missing built_area or market_value_proxy, both of which
// the infill phase guarantees are present before the merge loop
// starts. Seeing this means infill was skipped or incomplete.
var ErrMissingAttribute = errors.New("ols: parcel missing built_area or market_value_proxy")
