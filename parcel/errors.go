// Package parcel provides a columnar, read-mostly store of parcel
// attributes keyed by parcel key. It exposes read access to every
// column plus three narrow writers (built_area, market_value_proxy,
// current_tile) required by the infill and tile-graph phases; nothing
// else may mutate a parcel record after Load.
package parcel

import "errors"

var (
	// ErrMissingColumn is returned by Load when a mandatory column is
	// absent from the input rows.
	ErrMissingColumn = errors.New("parcel: missing mandatory column")
	// ErrNonPositiveLandArea is returned by Load when a row's land area
	// is zero or negative.
	ErrNonPositiveLandArea = errors.New("parcel: land_area_sqft must be positive")
	// ErrDuplicateKey is returned by Load when two rows share a key.
	ErrDuplicateKey = errors.New("parcel: duplicate parcel key")
	// ErrUnknownKey is returned by any accessor or writer given a key
	// that was never loaded.
	ErrUnknownKey = errors.New("parcel: unknown parcel key")
)
