package fixtures

import "fmt"

// ErrTooSmall indicates n below the generator's minimum was requested
// (1 for RandomBasis, 2 for SingularBasis).
var ErrTooSmall = fmt.Errorf("fixtures: n is below the generator's minimum")

// ErrInvalidProbability indicates a density outside [0, 1].
var ErrInvalidProbability = fmt.Errorf("fixtures: density must be in [0, 1]")

// SparseBasis is a square n x n matrix in compressed-column form, matching
// the a_start/a_index/a_value layout package invert's AMatrix view reads.
type SparseBasis struct {
	N     int
	Start []int
	Index []int
	Value []float64
}

// RandomBasis samples an Erdos-Renyi-like sparse n x n matrix: each
// off-diagonal entry (i,j) is included independently with probability
// density; the diagonal is always populated so the result is nonsingular
// with high probability (callers needing a guaranteed-singular instance
// should use SingularBasis instead).
//
// Contract: n >= 1 (else ErrTooSmall); 0 <= density <= 1 (else
// ErrInvalidProbability).
//
// Determinism: trial order is column-major, row ascending within a
// column, matching the column-major storage order this module expects -
// the same fixed-order contract builder.RandomSparse makes for edge
// trials.
func RandomBasis(n int, density float64, opts ...Option) (*SparseBasis, error) {
	if n < 1 {
		return nil, ErrTooSmall
	}
	if density < 0 || density > 1 {
		return nil, ErrInvalidProbability
	}
	cfg := newGeneratorConfig(opts...)

	start := make([]int, n+1)
	var index []int
	var value []float64

	for j := 0; j < n; j++ {
		start[j] = len(index)
		for i := 0; i < n; i++ {
			if i == j {
				// Always populate the diagonal; bias it to keep the
				// sampled basis well away from singular.
				v := cfg.valueFn(cfg.rng) + cfg.diagBias
				index = append(index, i)
				value = append(value, v)
				continue
			}
			if cfg.rng.Float64() < density {
				index = append(index, i)
				value = append(value, cfg.valueFn(cfg.rng))
			}
		}
	}
	start[n] = len(index)

	return &SparseBasis{N: n, Start: start, Index: index, Value: value}, nil
}

// SingularBasis returns an n x n matrix with two structurally identical
// unit columns (both columns 0 and 1 are the unit vector e_0), giving a
// deliberate rank deficiency of (at least) one for exercising package
// invert's rank-deficiency handling. n must be >= 2.
func SingularBasis(n int) (*SparseBasis, error) {
	if n < 2 {
		return nil, ErrTooSmall
	}
	start := make([]int, n+1)
	var index []int
	var value []float64

	for j := 0; j < n; j++ {
		start[j] = len(index)
		row := j
		if j == 1 {
			row = 0 // column 1 duplicates column 0's single nonzero row
		}
		index = append(index, row)
		value = append(value, 1.0)
	}
	start[n] = len(index)

	return &SparseBasis{N: n, Start: start, Index: index, Value: value}, nil
}
