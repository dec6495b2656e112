package matrix

// CenterColumns subtracts the per-column mean from every element and
// returns the centered copy together with the column means.
// Adapted from lvlath's column-centering kernel: fixed i→j traversal
// over the flat row-major buffer, deterministic and allocation-light.
// Complexity: O(rows*cols).
func CenterColumns(x *Dense) (*Dense, []float64, error) {
	if x == nil {
		return nil, nil, ErrNilMatrix
	}

	means := make([]float64, x.cols)
	if x.rows == 0 {
		return x, means, nil
	}

	for i := 0; i < x.rows; i++ {
		base := i * x.cols
		for j := 0; j < x.cols; j++ {
			means[j] += x.data[base+j]
		}
	}
	invRows := 1.0 / float64(x.rows)
	for j := range means {
		means[j] *= invRows
	}

	out, err := NewDense(x.rows, x.cols)
	if err != nil {
		return nil, nil, err
	}
	for i := 0; i < x.rows; i++ {
		base := i * x.cols
		for j := 0; j < x.cols; j++ {
			out.data[base+j] = x.data[base+j] - means[j]
		}
	}

	return out, means, nil
}

// CenterVector subtracts the mean of y from every element, returning the
// centered copy and the mean.
func CenterVector(y []float64) ([]float64, float64) {
	if len(y) == 0 {
		return nil, 0
	}
	var sum float64
	for _, v := range y {
		sum += v
	}
	mean := sum / float64(len(y))
	out := make([]float64, len(y))
	for i, v := range y {
		out[i] = v - mean
	}

	return out, mean
}
