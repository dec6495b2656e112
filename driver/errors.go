// Package driver runs the greedy merge loop: ask the registry for the
// best prospective join, merge it, record the winning R² on the new
// tile, emit an intermediate snapshot, and repeat until no edges
// remain or the desired tile count is reached.
package driver

import "errors"

// ErrNoTiles is returned by NewEngine when the initial tile graph is
// empty; there is nothing to merge.
var ErrNoTiles = errors.New("driver: no tiles to merge")
