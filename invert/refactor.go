package invert

import (
	"fmt"
	"math"
)

// refactorInfo is the recorded pivot order from the last successful
// Build, letting Rebuild reconstruct the factorization against refreshed
// numerical data without repeating the Markowitz search (spec.md §4.7).
type refactorInfo struct {
	valid          bool
	basicIndex     []int
	pivotRow       []int
	rankDeficiency int
	colWithNoPivot []int
}

func (e *Engine) recordRefactorInfo() {
	// colWithNoPivot holds kernel columns; record the pivot positions they
	// were pivoted at, which is how Rebuild indexes the replay.
	noPivot := make(map[int]bool, len(e.colWithNoPivot))
	for _, c := range e.colWithNoPivot {
		noPivot[c] = true
	}
	var noPivotPos []int
	for k, c := range e.uPivotIndex {
		if noPivot[c] {
			noPivotPos = append(noPivotPos, k)
		}
	}
	e.refactor = refactorInfo{
		valid:          true,
		basicIndex:     append([]int(nil), e.basicIndex...),
		pivotRow:       append([]int(nil), e.lPivotIndex...),
		rankDeficiency: e.rankDeficiency,
		colWithNoPivot: noPivotPos,
	}
}

// Rebuild re-factors the basis by replaying the pivot row order recorded
// by the last Build against the engine's current basic_index (spec.md
// §4.7): position k is pivoted again at the same row the last Build chose
// for position k, without repeating the Markowitz search. Since Update
// only ever replaces the column at a fixed basis position, this is exactly
// the replay the caller wants after a run of Updates - it requires the
// dimension to be unchanged (no AddRows since the last Build), not that
// the columns themselves are unchanged. It fails with ErrRebuildMismatch if
// any replayed pivot no longer clears the threshold against the current
// a-matrix values, in which case the caller should fall back to Build.
func (e *Engine) Rebuild() error {
	if e.st == stateUnconfigured {
		return ErrNotConfigured
	}
	if !e.refactor.valid {
		return ErrNoRefactorInfo
	}
	if e.a != nil && !e.a.Valid() {
		return ErrDimensionMismatch
	}
	m := e.numRow
	if len(e.basicIndex) != len(e.refactor.basicIndex) {
		return ErrRebuildMismatch
	}

	noPivot := make(map[int]bool, len(e.refactor.colWithNoPivot))
	for _, c := range e.refactor.colWithNoPivot {
		noPivot[c] = true
	}

	e.lPivotIndex = make([]int, 0, m)
	e.lPivotLookup = make([]int, m)
	for i := range e.lPivotLookup {
		e.lPivotLookup[i] = -1
	}
	e.uPivotIndex = make([]int, 0, m)
	e.uPivotValue = make([]float64, 0, m)
	e.lColIndex = make([][]int, 0, m)
	e.lColValue = make([][]float64, 0, m)
	e.uColIndex = make([][]int, 0, m)
	e.uColValue = make([][]float64, 0, m)
	e.pivotColMax = make([]float64, 0, m)
	e.numPivot = 0
	e.rankDeficiency = e.refactor.rankDeficiency
	e.rowWithNoPivot = nil
	e.colWithNoPivot = nil
	e.varWithNoPivot = nil
	e.updates = nil
	e.updateCount = 0

	e.kern = newKernel(m)
	e.kern.load(e.a, e.basicIndex)

	for k := 0; k < m; k++ {
		row := e.refactor.pivotRow[k]
		col := k
		if noPivot[col] {
			e.kern.setValue(row, col, 1.0)
		} else {
			v, present := e.kern.valueAt(row, col)
			colMax := e.colMaxAbs(col)
			if !present || math.Abs(v) <= e.opts.PivotTolerance() || math.Abs(v) < e.opts.PivotThreshold()*colMax {
				return fmt.Errorf("%w: pivot %d", ErrRebuildMismatch, k)
			}
		}
		if err := e.eliminatePivot(row, col); err != nil {
			return fmt.Errorf("%w: pivot %d", ErrRebuildMismatch, k)
		}
		if noPivot[col] {
			e.rowWithNoPivot = append(e.rowWithNoPivot, row)
			e.colWithNoPivot = append(e.colWithNoPivot, col)
			e.varWithNoPivot = append(e.varWithNoPivot, col)
		}
	}

	e.buildRowMirrors()
	e.recordRefactorInfo()
	e.st = stateFactored
	return nil
}
