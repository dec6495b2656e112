// Package ops provides the decompositions the ols package needs on top
// of matrix.Dense: Doolittle LU (with partial pivoting), Householder QR,
// and an LU-based Gauss-Jordan inverse.
package ops

import (
	"fmt"
	"math"

	"github.com/landtile/agglotile/matrix"
)

// LU performs Doolittle LU decomposition with partial pivoting on the
// square matrix m, returning L (unit lower triangular), U (upper
// triangular), and the row permutation perm such that P*m = L*U where
// P is the permutation matrix implied by perm (perm[i] is the original
// row now occupying row i).
//
// Partial pivoting (choosing the largest-magnitude entry in each
// column as pivot) keeps the decomposition stable for the small,
// well-scaled design matrices the OLS evaluator builds; a zero pivot
// after picking the largest candidate means the matrix is singular.
// Complexity: O(n³) time, O(n²) memory.
func LU(m *matrix.Dense) (l, u *matrix.Dense, perm []int, err error) {
	n := m.Rows()
	if n != m.Cols() {
		return nil, nil, nil, fmt.Errorf("LU: non-square %dx%d: %w", m.Rows(), m.Cols(), matrix.ErrDimensionMismatch)
	}

	work := m.Clone()
	perm = make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	l, err = matrix.NewDense(n, n)
	if err != nil {
		return nil, nil, nil, err
	}

	for k := 0; k < n; k++ {
		// Stage: pick the largest-magnitude entry in column k at or below row k.
		pivotRow := k
		pivotVal := math.Abs(mustAt(work, k, k))
		for i := k + 1; i < n; i++ {
			if v := math.Abs(mustAt(work, i, k)); v > pivotVal {
				pivotRow, pivotVal = i, v
			}
		}
		if pivotVal == 0 {
			return nil, nil, nil, fmt.Errorf("LU: zero pivot at column %d: %w", k, matrix.ErrSingular)
		}
		if pivotRow != k {
			swapRows(work, k, pivotRow)
			perm[k], perm[pivotRow] = perm[pivotRow], perm[k]
			for j := 0; j < k; j++ {
				lv1 := mustAt(l, k, j)
				lv2 := mustAt(l, pivotRow, j)
				_ = l.Set(k, j, lv2)
				_ = l.Set(pivotRow, j, lv1)
			}
		}

		_ = l.Set(k, k, 1.0)
		pivot := mustAt(work, k, k)
		for i := k + 1; i < n; i++ {
			factor := mustAt(work, i, k) / pivot
			_ = l.Set(i, k, factor)
			for j := k; j < n; j++ {
				_ = work.Set(i, j, mustAt(work, i, j)-factor*mustAt(work, k, j))
			}
		}
	}

	return l, work, perm, nil
}

// SolveLU solves m*x = b given the LU decomposition (l, u, perm) of m,
// via forward then backward substitution. b is permuted by perm before
// substitution.
func SolveLU(l, u *matrix.Dense, perm []int, b []float64) ([]float64, error) {
	n := l.Rows()
	if len(b) != n {
		return nil, fmt.Errorf("SolveLU: b has len %d, want %d: %w", len(b), n, matrix.ErrDimensionMismatch)
	}

	pb := make([]float64, n)
	for i, p := range perm {
		pb[i] = b[p]
	}

	// Forward substitution: L*y = pb.
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := pb[i]
		for j := 0; j < i; j++ {
			sum -= mustAt(l, i, j) * y[j]
		}
		y[i] = sum // L has unit diagonal
	}

	// Backward substitution: U*x = y.
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := y[i]
		for j := i + 1; j < n; j++ {
			sum -= mustAt(u, i, j) * x[j]
		}
		diag := mustAt(u, i, i)
		if diag == 0 {
			return nil, fmt.Errorf("SolveLU: zero diagonal at row %d: %w", i, matrix.ErrSingular)
		}
		x[i] = sum / diag
	}

	return x, nil
}

func mustAt(m *matrix.Dense, i, j int) float64 {
	v, _ := m.At(i, j)

	return v
}

func swapRows(m *matrix.Dense, a, b int) {
	if a == b {
		return
	}
	n := m.Cols()
	for j := 0; j < n; j++ {
		va := mustAt(m, a, j)
		vb := mustAt(m, b, j)
		_ = m.Set(a, j, vb)
		_ = m.Set(b, j, va)
	}
}
