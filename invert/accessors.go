package invert

import (
	"fmt"
	"sort"
)

// AStart returns the column-start array of the a-matrix currently attached
// to the engine (spec.md §6).
func (e *Engine) AStart() []int { return e.a.AStart }

// AIndex returns the row-index array of the a-matrix currently attached to
// the engine (spec.md §6).
func (e *Engine) AIndex() []int { return e.a.AIndex }

// AValue returns the value array of the a-matrix currently attached to the
// engine (spec.md §6).
func (e *Engine) AValue() []float64 { return e.a.AValue }

// RowWithNoPivot returns the rows substituted with slack columns during the
// last Build's rank-deficiency handling (spec.md §4.4).
func (e *Engine) RowWithNoPivot() []int { return append([]int(nil), e.rowWithNoPivot...) }

// ColWithNoPivot returns the basis-column positions substituted during the
// last Build's rank-deficiency handling (spec.md §4.4).
func (e *Engine) ColWithNoPivot() []int { return append([]int(nil), e.colWithNoPivot...) }

// PivotColMax returns, for each pivot k, max|entry in the pivot column| at
// the moment pivot k was chosen - the denominator of the threshold-pivoting
// test |u_pivot_value[k]| >= tau * PivotColMax()[k] (spec.md §8).
func (e *Engine) PivotColMax() []float64 { return append([]float64(nil), e.pivotColMax...) }

// AddCols widens the column universe the engine can draw basic columns
// from. The current factorization (if any) remains valid since no basic
// column's data changes; a must share e.Dim() rows (else
// ErrDimensionMismatch). Its column count is not checked.
func (e *Engine) AddCols(a *AMatrix) error {
	if e.st == stateUnconfigured {
		return ErrNotConfigured
	}
	if a == nil {
		return ErrNilAMatrix
	}
	if a.NumRow != e.numRow {
		return ErrDimensionMismatch
	}
	e.a = a
	return nil
}

// AddRows extends the basis with additional rows and a matching set of
// newly basic columns (one per added row), invalidating the current
// factorization - Build must be called again before Ftran/Btran/Update.
func (e *Engine) AddRows(a *AMatrix, newBasicCols []int) error {
	if e.st == stateUnconfigured {
		return ErrNotConfigured
	}
	if a == nil {
		return ErrNilAMatrix
	}
	if a.NumRow != e.numRow+len(newBasicCols) {
		return ErrDimensionMismatch
	}
	for _, c := range newBasicCols {
		if c < 0 || c >= a.NumCol {
			return fmt.Errorf("%w: %d", ErrBadBasicIndex, c)
		}
	}
	e.a = a
	e.basicIndex = append(e.basicIndex, newBasicCols...)
	e.numRow = a.NumRow
	e.numBasic = len(e.basicIndex)
	e.st = stateConfigured
	e.refactor = refactorInfo{}
	return nil
}

// DeleteNonbasicCols removes the given nonbasic columns from the column
// universe, shifting every remaining basic index down by the count of
// deleted columns that preceded it. Returns an error if any named column
// is currently basic. The caller must supply an updated AMatrix (e.g. via
// AddCols) reflecting the same deletion before the next Build.
func (e *Engine) DeleteNonbasicCols(cols []int) error {
	if e.st == stateUnconfigured {
		return ErrNotConfigured
	}
	deleted := make(map[int]bool, len(cols))
	for _, c := range cols {
		deleted[c] = true
	}
	for _, b := range e.basicIndex {
		if deleted[b] {
			return fmt.Errorf("invert: column %d is basic, cannot delete", b)
		}
	}
	sorted := append([]int(nil), cols...)
	sort.Ints(sorted)
	shift := func(old int) int {
		s := 0
		for _, d := range sorted {
			if d < old {
				s++
			}
		}
		return old - s
	}
	for i, b := range e.basicIndex {
		e.basicIndex[i] = shift(b)
	}
	if e.a != nil {
		e.a.Invalidate()
	}
	e.st = stateConfigured
	e.refactor = refactorInfo{}
	return nil
}
