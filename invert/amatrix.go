package invert

import "fmt"

// AMatrix is a read-only, borrowed view over a column-compressed matrix:
// AStart has length NumCol+1; column j's entries live in
// AIndex/AValue[AStart[j]:AStart[j+1]]. The engine never copies or mutates
// these arrays; callers own them and must keep them alive and unchanged
// for as long as the view is in use (spec.md §3).
type AMatrix struct {
	NumRow int
	NumCol int
	AStart []int
	AIndex []int
	AValue []float64

	valid bool
}

// NewAMatrix validates and wraps borrowed column arrays. It does not copy
// AIndex/AValue; mutating them after this call invalidates any
// factorization built from the result without the engine being able to
// detect it except through Invalidate/Valid.
func NewAMatrix(numRow, numCol int, start, index []int, value []float64) (*AMatrix, error) {
	if numRow < 0 || numCol < 0 {
		return nil, fmt.Errorf("invert: NewAMatrix: negative dimension (%d, %d)", numRow, numCol)
	}
	if len(start) != numCol+1 {
		return nil, fmt.Errorf("invert: NewAMatrix: a_start has length %d, want %d", len(start), numCol+1)
	}
	if len(index) != len(value) {
		return nil, fmt.Errorf("invert: NewAMatrix: a_index/a_value length mismatch (%d vs %d)", len(index), len(value))
	}
	if start[0] != 0 {
		return nil, fmt.Errorf("invert: NewAMatrix: a_start[0] = %d, want 0", start[0])
	}
	for j := 0; j < numCol; j++ {
		if start[j+1] < start[j] {
			return nil, fmt.Errorf("invert: NewAMatrix: a_start is not nondecreasing at column %d", j)
		}
	}
	if start[numCol] > len(index) {
		return nil, fmt.Errorf("invert: NewAMatrix: a_start[%d] = %d exceeds a_index length %d", numCol, start[numCol], len(index))
	}
	for _, r := range index {
		if r < 0 || r >= numRow {
			return nil, fmt.Errorf("invert: NewAMatrix: row index %d out of range [0,%d)", r, numRow)
		}
	}
	return &AMatrix{NumRow: numRow, NumCol: numCol, AStart: start, AIndex: index, AValue: value, valid: true}, nil
}

// Column returns the row-index and value slices for column j, without
// copying.
func (a *AMatrix) Column(j int) ([]int, []float64) {
	lo, hi := a.AStart[j], a.AStart[j+1]
	return a.AIndex[lo:hi], a.AValue[lo:hi]
}

// Invalidate marks the view as stale, e.g. because the caller mutated the
// backing arrays in place. Ftran, Btran, Update and Rebuild on an engine
// attached to an invalidated view return ErrDimensionMismatch; the view
// never becomes valid again, so a fresh view has to be attached.
func (a *AMatrix) Invalidate() { a.valid = false }

// Valid reports whether the view has not been Invalidate'd.
func (a *AMatrix) Valid() bool { return a.valid }
