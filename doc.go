// Package agglotile implements agglomerative spatial tiling over land
// parcels: two spatial-lag infill passes complete partial parcel
// attributes, a rook-adjacency tile graph tracks which tiles may be
// merged, a prospective-join registry ranks candidate merges by the R²
// of a two-regressor OLS fit, and a greedy merge driver repeatedly
// folds the best-scoring pair together until a termination condition
// is reached.
//
// The package is organized leaf-first, mirroring the data flow:
//
//	geom/         — polygon primitives: rook-adjacency, union, centroid
//	spatialindex/ — nearest-parcel and tile-neighbor candidate queries
//	parcel/       — columnar parcel store with infill lifecycle
//	infill/       — two-pass spatial-lag infiller
//	tilegraph/    — tiles as nodes, prospective joins as edges
//	matrix/, ols/ — linear algebra kernels and the R² evaluator
//	registry/     — memoized, lazily-recomputed priority structure over edges
//	driver/       — the merge loop and intermediate emission
//	config/       — functional-options configuration
//	telemetry/    — structured logging
//	tablestore/   — parquet-backed parcel/tile table I/O
//	cmd/agglotile — thin CLI wiring (out of the core's scope)
package agglotile
