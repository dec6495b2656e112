package matrix

import "fmt"

// Dense is a row-major matrix of float64 values. data holds rows*cols
// elements; element (i,j) lives at data[i*cols+j].
type Dense struct {
	rows, cols int
	data       []float64
}

// NewDense allocates a zero-valued rows×cols matrix.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("NewDense(%d,%d): %w", rows, cols, ErrBadShape)
	}

	return &Dense{rows: rows, cols: cols, data: make([]float64, rows*cols)}, nil
}

// Rows returns the number of rows.
func (d *Dense) Rows() int { return d.rows }

// Cols returns the number of columns.
func (d *Dense) Cols() int { return d.cols }

// At returns the element at (i,j), or ErrOutOfRange if out of bounds.
func (d *Dense) At(i, j int) (float64, error) {
	if d == nil {
		return 0, ErrNilMatrix
	}
	if i < 0 || i >= d.rows || j < 0 || j >= d.cols {
		return 0, fmt.Errorf("Dense.At(%d,%d): %w", i, j, ErrOutOfRange)
	}

	return d.data[i*d.cols+j], nil
}

// Set assigns v at (i,j), or returns ErrOutOfRange if out of bounds.
func (d *Dense) Set(i, j int, v float64) error {
	if d == nil {
		return ErrNilMatrix
	}
	if i < 0 || i >= d.rows || j < 0 || j >= d.cols {
		return fmt.Errorf("Dense.Set(%d,%d): %w", i, j, ErrOutOfRange)
	}
	d.data[i*d.cols+j] = v

	return nil
}

// Clone returns a deep copy of d.
func (d *Dense) Clone() *Dense {
	out := &Dense{rows: d.rows, cols: d.cols, data: make([]float64, len(d.data))}
	copy(out.data, d.data)

	return out
}

// Transpose returns a new matrix with rows and columns swapped.
// Complexity: O(rows*cols).
func (d *Dense) Transpose() *Dense {
	out, _ := NewDense(d.cols, d.rows)
	for i := 0; i < d.rows; i++ {
		base := i * d.cols
		for j := 0; j < d.cols; j++ {
			out.data[j*d.rows+i] = d.data[base+j]
		}
	}

	return out
}

// Mul returns a*b. Returns ErrDimensionMismatch if a.cols != b.rows.
// Complexity: O(a.rows*a.cols*b.cols).
func Mul(a, b *Dense) (*Dense, error) {
	if a == nil || b == nil {
		return nil, ErrNilMatrix
	}
	if a.cols != b.rows {
		return nil, fmt.Errorf("Mul: %dx%d by %dx%d: %w", a.rows, a.cols, b.rows, b.cols, ErrDimensionMismatch)
	}

	out, err := NewDense(a.rows, b.cols)
	if err != nil {
		return nil, err
	}
	for i := 0; i < a.rows; i++ {
		aBase := i * a.cols
		outBase := i * out.cols
		for k := 0; k < a.cols; k++ {
			av := a.data[aBase+k]
			if av == 0 {
				continue
			}
			bBase := k * b.cols
			for j := 0; j < b.cols; j++ {
				out.data[outBase+j] += av * b.data[bBase+j]
			}
		}
	}

	return out, nil
}

// MatVec returns a*x for column vector x (len(x) == a.cols).
func MatVec(a *Dense, x []float64) ([]float64, error) {
	if a == nil {
		return nil, ErrNilMatrix
	}
	if len(x) != a.cols {
		return nil, fmt.Errorf("MatVec: %dx%d by len %d: %w", a.rows, a.cols, len(x), ErrDimensionMismatch)
	}
	out := make([]float64, a.rows)
	for i := 0; i < a.rows; i++ {
		base := i * a.cols
		var sum float64
		for j := 0; j < a.cols; j++ {
			sum += a.data[base+j] * x[j]
		}
		out[i] = sum
	}

	return out, nil
}
