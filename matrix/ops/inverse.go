package ops

import (
	"fmt"

	"github.com/landtile/agglotile/matrix"
)

// Inverse returns the inverse of the square matrix m via LU
// decomposition and repeated substitution against each identity
// column. Returns matrix.ErrSingular if m has no inverse.
// Complexity: O(n³) time, O(n²) memory.
func Inverse(m *matrix.Dense) (*matrix.Dense, error) {
	n := m.Rows()
	if n != m.Cols() {
		return nil, fmt.Errorf("Inverse: non-square %dx%d: %w", m.Rows(), m.Cols(), matrix.ErrDimensionMismatch)
	}

	l, u, perm, err := LU(m)
	if err != nil {
		return nil, fmt.Errorf("Inverse: %w", err)
	}

	out, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}

	e := make([]float64, n)
	for col := 0; col < n; col++ {
		for i := range e {
			e[i] = 0
		}
		e[col] = 1
		x, err := SolveLU(l, u, perm, e)
		if err != nil {
			return nil, fmt.Errorf("Inverse: %w", err)
		}
		for row := 0; row < n; row++ {
			_ = out.Set(row, col, x[row])
		}
	}

	return out, nil
}
