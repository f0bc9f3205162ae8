package densemat

// LU performs Doolittle decomposition A = L*U with unit diagonal on L
// (no pivoting; callers are expected to pass well-conditioned test
// matrices — production pivoted factorization lives in package invert).
//
// Complexity: Time O(n^3), Space O(n^2).
func LU(m *Dense) (*Dense, *Dense, error) {
	if m == nil {
		return nil, nil, ErrDimensionMismatch
	}
	if m.r != m.c {
		return nil, nil, ErrNotSquare
	}
	n := m.r

	L, err := NewDense(n, n)
	if err != nil {
		return nil, nil, err
	}
	U, err := NewDense(n, n)
	if err != nil {
		return nil, nil, err
	}
	for i := 0; i < n; i++ {
		L.data[i*n+i] = 1.0
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sum := 0.0
			for k := 0; k < i; k++ {
				sum += L.data[i*n+k] * U.data[k*n+j]
			}
			U.data[i*n+j] = m.data[i*n+j] - sum
		}
		for j := i + 1; j < n; j++ {
			sum := 0.0
			for k := 0; k < i; k++ {
				sum += L.data[j*n+k] * U.data[k*n+i]
			}
			pivot := U.data[i*n+i]
			if pivot == 0 {
				return nil, nil, ErrSingular
			}
			L.data[j*n+i] = (m.data[j*n+i] - sum) / pivot
		}
	}

	return L, U, nil
}

// Solve returns x such that m*x = b, via Doolittle LU followed by forward
// and backward substitution. Used by invert's tests as the dense oracle
// for "multiplying by B (dense check)" (spec.md §8).
func Solve(m *Dense, b []float64) ([]float64, error) {
	L, U, err := LU(m)
	if err != nil {
		return nil, err
	}
	n := m.r
	if len(b) != n {
		return nil, ErrDimensionMismatch
	}

	y := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for k := 0; k < i; k++ {
			sum += L.data[i*n+k] * y[k]
		}
		y[i] = b[i] - sum
	}

	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := 0.0
		for k := i + 1; k < n; k++ {
			sum += U.data[i*n+k] * x[k]
		}
		pivot := U.data[i*n+i]
		if pivot == 0 {
			return nil, ErrSingular
		}
		x[i] = (y[i] - sum) / pivot
	}

	return x, nil
}
