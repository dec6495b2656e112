// Package infill runs the two deterministic spatial-lag passes that
// complete a parcel table before the merge loop starts: inverse
// distance-weighted built-area infill, market-value-proxy assignment
// from sale and assessed value, and a second inverse-distance pass for
// any proxy still absent after assignment.
package infill

import "errors"

// ErrNoBuiltAreaDonors is returned by Run when a parcel with absent
// built_area has zero donor candidates (no other parcel in the table
// carries a known built_area). The caller surfaces the offending key.
var ErrNoBuiltAreaDonors = errors.New("infill: parcel has no built_area donors")
