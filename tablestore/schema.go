// Package tablestore is the columnar file I/O boundary: reading the
// parcels and tiles input tables and writing each iteration's
// intermediate_tiles_<n>.parquet, all backed by
// github.com/xitongsys/parquet-go over github.com/xitongsys/parquet-go-source.
// Geometry travels as well-known text via
// github.com/paulmach/orb/encoding/wkt, matching spec.md §6's "geometry
// (well-known polygon)" column type.
package tablestore

// parcelRow is the on-disk schema for the parcels input file, column
// names and nullability exactly matching spec.md §6.
type parcelRow struct {
	Key           string   `parquet:"name=key, type=BYTE_ARRAY, convertedtype=UTF8"`
	BuiltAreaSqft *float64 `parquet:"name=built_area_sqft, type=DOUBLE, repetitiontype=OPTIONAL"`
	LandAreaSqft  float64  `parquet:"name=land_area_sqft, type=DOUBLE"`
	AdjSalePrice  *float64 `parquet:"name=adj_sale_price, type=DOUBLE, repetitiontype=OPTIONAL"`
	AssessedValue float64  `parquet:"name=assessed_value, type=DOUBLE"`
	Geometry      string   `parquet:"name=geometry, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// tileRow is the on-disk schema shared by the tiles input file and
// every intermediate_tiles_<n>.parquet output: key, geometry,
// r_squared (nullable).
type tileRow struct {
	Key      string   `parquet:"name=key, type=BYTE_ARRAY, convertedtype=UTF8"`
	Geometry string   `parquet:"name=geometry, type=BYTE_ARRAY, convertedtype=UTF8"`
	RSquared *float64 `parquet:"name=r_squared, type=DOUBLE, repetitiontype=OPTIONAL"`
}
