// Package matrix provides a small dense-matrix kernel used by the ols
// package to solve the two-regressor normal equations. It is a
// deliberately narrow slice of linear algebra: shape-checked
// construction, element access, and the handful of decompositions the
// OLS evaluator needs (LU, QR, Gauss-Jordan inverse).
package matrix

import "errors"

// Sentinel errors. Every public function returns one of these (optionally
// wrapped with fmt.Errorf("%w", ...) for context) rather than panicking on
// caller-triggered conditions; panics are reserved for programmer errors.
var (
	// ErrBadShape indicates a requested matrix shape had a non-positive dimension.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates an index passed to At/Set fell outside the matrix bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates two operands had incompatible shapes.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrSingular indicates a zero (or numerically negligible) pivot was hit
	// during LU decomposition or Gauss-Jordan inversion.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrNilMatrix indicates a nil *Dense was passed where a value was required.
	ErrNilMatrix = errors.New("matrix: nil matrix")
)
