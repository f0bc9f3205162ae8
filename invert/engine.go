package invert

import (
	"context"
	"fmt"
	"time"
)

// Engine holds one basis factorization and its update history. The zero
// value is not ready to use; construct with New.
type Engine struct {
	opts *Options

	a          *AMatrix
	basicIndex []int
	numRow     int
	numBasic   int

	st state

	lPivotIndex  []int
	lPivotLookup []int
	uPivotIndex  []int
	uPivotValue  []float64

	lColIndex [][]int
	lColValue [][]float64
	lRowIndex [][]int
	lRowValue [][]float64

	uColIndex [][]int
	uColValue [][]float64
	uRowIndex [][]int
	uRowValue [][]float64

	// pivotColMax[k] is max|entry in the pivot column| at the moment pivot
	// k was chosen, letting ReportLu and tests verify the threshold
	// property post hoc (spec.md §8: |pivot| >= tau * max|column|).
	pivotColMax []float64

	numPivot int

	rankDeficiency int
	rowWithNoPivot []int
	colWithNoPivot []int
	varWithNoPivot []int

	numSimplePivot int

	updates     []etaUpdate
	updateCount int

	refactor refactorInfo

	kern *kernel
}

// New returns an Engine governed by opts. A nil opts uses NewOptions().
func New(opts *Options) *Engine {
	if opts == nil {
		opts = NewOptions()
	}
	return &Engine{opts: opts, st: stateUnconfigured}
}

// Options returns the engine's current option set (mutable in place).
func (e *Engine) Options() *Options { return e.opts }

// State reports the engine's lifecycle stage as a human-readable string:
// "unconfigured", "configured", "factored", or "updated".
func (e *Engine) State() string { return e.st.String() }

// Setup configures the engine for a square basis: a is the full
// constraint matrix view, and basicIndex names the NumRow columns of a
// that form the basis, in tableau-row order. Setup does not factor;
// call Build next.
func (e *Engine) Setup(a *AMatrix, basicIndex []int) error {
	if a == nil {
		return ErrNilAMatrix
	}
	return e.SetupGeneral(a, basicIndex)
}

// SetupGeneral is Setup generalized to a caller-supplied basic index set
// whose length need not equal a.NumRow. This engine only supports the
// square case (len(basicIndex) == a.NumRow); see DESIGN.md's Open
// Question decision for why the rectangular case is rejected rather than
// silently reinterpreted.
func (e *Engine) SetupGeneral(a *AMatrix, basicIndex []int) error {
	if a == nil {
		return ErrNilAMatrix
	}
	if len(basicIndex) != a.NumRow {
		return fmt.Errorf("%w: num_basic=%d num_row=%d", ErrRectangularBasisUnsupported, len(basicIndex), a.NumRow)
	}
	for _, c := range basicIndex {
		if c < 0 || c >= a.NumCol {
			return fmt.Errorf("%w: %d", ErrBadBasicIndex, c)
		}
	}
	e.a = a
	e.basicIndex = append([]int(nil), basicIndex...)
	e.numRow = a.NumRow
	e.numBasic = len(basicIndex)
	e.st = stateConfigured
	e.refactor = refactorInfo{}
	return nil
}

// BasicIndex returns the current basic column indices. After a
// successful Build, position k is the column that became the k-th pivot
// (spec.md §4.3: "basic_index is reordered in place to match pivot
// order").
func (e *Engine) BasicIndex() []int { return e.basicIndex }

// Dim returns the basis dimension (number of rows == number of basic
// columns).
func (e *Engine) Dim() int { return e.numRow }

// RankDeficiency returns how many basic columns could not be assigned a
// pivot during the last Build (0 means full rank).
func (e *Engine) RankDeficiency() int { return e.rankDeficiency }

// VarWithNoPivot returns the basic-column-position list substituted with
// slack columns during the last Build's rank-deficiency handling.
func (e *Engine) VarWithNoPivot() []int { return append([]int(nil), e.varWithNoPivot...) }

// Build factors the current basis from scratch: singleton pivots first
// (BuildSimple), then Markowitz-merit threshold pivoting over the
// remaining kernel (BuildKernel), then rank-deficiency substitution for
// any rows/columns neither pass could pivot.
func (e *Engine) Build(ctx context.Context) error {
	if e.st == stateUnconfigured {
		return ErrNotConfigured
	}
	m := e.numRow
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
	e.numSimplePivot = 0
	e.rankDeficiency = 0
	e.rowWithNoPivot = nil
	e.colWithNoPivot = nil
	e.varWithNoPivot = nil
	e.updates = nil
	e.updateCount = 0

	e.kern = newKernel(m)
	e.kern.load(e.a, e.basicIndex)

	deadline, hasDeadline := buildDeadline(e.opts.BuildTimeLimit())

	if err := e.buildSimple(); err != nil {
		return err
	}
	if err := e.buildKernel(ctx, deadline, hasDeadline); err != nil {
		return err
	}
	if e.numPivot < m {
		if err := e.handleRankDeficiency(); err != nil {
			return err
		}
	}

	e.buildRowMirrors()
	e.reorderBasicIndex()
	e.recordRefactorInfo()
	e.kern = nil

	e.st = stateFactored
	if e.opts.DebugLevel() > 0 {
		e.opts.Logger().Debug().
			Int("dim", m).
			Int("simple_pivots", e.numSimplePivot).
			Int("rank_deficiency", e.rankDeficiency).
			Msg("invert: build complete")
	}
	return nil
}

func buildDeadline(limit time.Duration) (time.Time, bool) {
	if limit <= 0 {
		return time.Time{}, false
	}
	return time.Now().Add(limit), true
}

// buildRowMirrors populates the row-wise L/U mirrors from the column-wise
// stores once the pivot order is final.
func (e *Engine) buildRowMirrors() {
	m := e.numPivot
	e.lRowIndex = make([][]int, m)
	e.lRowValue = make([][]float64, m)
	e.uRowIndex = make([][]int, m)
	e.uRowValue = make([][]float64, m)
	for k := 0; k < m; k++ {
		for t, row := range e.lColIndex[k] {
			pos := e.lPivotLookup[row]
			e.lRowIndex[pos] = append(e.lRowIndex[pos], k)
			e.lRowValue[pos] = append(e.lRowValue[pos], e.lColValue[k][t])
		}
		for t, rowPos := range e.uColIndex[k] {
			e.uRowIndex[rowPos] = append(e.uRowIndex[rowPos], k)
			e.uRowValue[rowPos] = append(e.uRowValue[rowPos], e.uColValue[k][t])
		}
	}
}

// reorderBasicIndex permutes e.basicIndex in place so position k holds
// the column that became the k-th pivot.
func (e *Engine) reorderBasicIndex() {
	reordered := make([]int, e.numRow)
	for k, col := range e.uPivotIndex {
		reordered[k] = e.basicIndex[col]
	}
	e.basicIndex = reordered
}
