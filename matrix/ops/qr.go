package ops

import (
	"fmt"
	"math"

	"github.com/landtile/agglotile/matrix"
)

// QR computes the QR decomposition of a square matrix m using
// Householder reflections, returning orthogonal Q and upper-triangular
// R such that m = Q×R. Used by the OLS evaluator as the fallback when
// LU reports a singular normal-equations matrix (a zero pivot or zero
// diagonal); no conditioning check is made.
// Complexity: O(n³) time, O(n²) memory where n = m.Rows().
func QR(m *matrix.Dense) (q, r *matrix.Dense, err error) {
	n := m.Rows()
	if n != m.Cols() {
		return nil, nil, fmt.Errorf("QR: non-square %dx%d: %w", m.Rows(), m.Cols(), matrix.ErrDimensionMismatch)
	}

	a := m.Clone()
	q, err = matrix.NewDense(n, n)
	if err != nil {
		return nil, nil, err
	}
	for i := 0; i < n; i++ {
		_ = q.Set(i, i, 1.0)
	}

	v := make([]float64, n)
	for k := 0; k < n; k++ {
		// Norm of the sub-column a[k:n][k].
		var norm float64
		for i := k; i < n; i++ {
			av := mustAt(a, i, k)
			norm += av * av
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			continue // column already zero below the diagonal; no reflection needed
		}

		alpha := -norm
		if mustAt(a, k, k) < 0 {
			alpha = norm
		}

		for i := range v {
			v[i] = 0
		}
		v[k] = mustAt(a, k, k) - alpha
		for i := k + 1; i < n; i++ {
			v[i] = mustAt(a, i, k)
		}

		var vNormSq float64
		for i := k; i < n; i++ {
			vNormSq += v[i] * v[i]
		}
		if vNormSq == 0 {
			continue
		}
		tau := 2.0 / vNormSq

		// Apply reflection H = I - tau*v*v^T to A (from the left).
		for j := k; j < n; j++ {
			var dot float64
			for i := k; i < n; i++ {
				dot += v[i] * mustAt(a, i, j)
			}
			scale := tau * dot
			for i := k; i < n; i++ {
				_ = a.Set(i, j, mustAt(a, i, j)-scale*v[i])
			}
		}

		// Accumulate Q = Q*H.
		for rowIdx := 0; rowIdx < n; rowIdx++ {
			var dot float64
			for i := k; i < n; i++ {
				dot += mustAt(q, rowIdx, i) * v[i]
			}
			scale := tau * dot
			for i := k; i < n; i++ {
				_ = q.Set(rowIdx, i, mustAt(q, rowIdx, i)-scale*v[i])
			}
		}
	}

	return q, a, nil
}

// SolveQR solves m*x = b given the decomposition m = Q*R via
// x = R⁻¹(Qᵀb), using backward substitution against the
// upper-triangular R.
func SolveQR(q, r *matrix.Dense, b []float64) ([]float64, error) {
	n := r.Rows()
	if len(b) != n {
		return nil, fmt.Errorf("SolveQR: b has len %d, want %d: %w", len(b), n, matrix.ErrDimensionMismatch)
	}

	// qtb = Qᵀ * b
	qtb := make([]float64, n)
	for j := 0; j < n; j++ {
		var sum float64
		for i := 0; i < n; i++ {
			sum += mustAt(q, i, j) * b[i]
		}
		qtb[j] = sum
	}

	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := qtb[i]
		for j := i + 1; j < n; j++ {
			sum -= mustAt(r, i, j) * x[j]
		}
		diag := mustAt(r, i, i)
		if math.Abs(diag) < 1e-12 {
			return nil, fmt.Errorf("SolveQR: near-zero diagonal at row %d: %w", i, matrix.ErrSingular)
		}
		x[i] = sum / diag
	}

	return x, nil
}
