// Package tilegraph maintains tiles as graph nodes and prospective
// joins as edges, generalizing the adjacency-list design to rook
// adjacency over tile geometry instead of arbitrary weighted edges.
// Init assigns parcels to their owning tile and discovers the initial
// edge set; Merge performs a full fold of a winning join, including
// edge collapse, and returns every surviving edge that now touches the
// new tile so the registry can invalidate it.
package tilegraph

import "errors"

// ErrUnknownTile is returned when an operation names a tile key that
// is not currently in the graph.
var ErrUnknownTile = errors.New("tilegraph: unknown tile key")

// ErrSelfMerge is returned by Merge when called with a == b.
var ErrSelfMerge = errors.New("tilegraph: cannot merge a tile with itself")

// ErrParcelUnassigned is returned by Init when a parcel's centroid
// falls inside no initial tile.
var ErrParcelUnassigned = errors.New("tilegraph: parcel centroid is not inside any tile")
