package invert

// Ftran solves B x = b in place: on entry rhs.Array holds b indexed by
// original matrix row; on return it holds x indexed by basis position
// (position k is the coefficient of e.BasicIndex()[k]), matching
// spec.md §6's indexing contract. rhs.Dim must equal e.Dim().
//
// expectedDensity selects the traversal: once rhs reports itself Dense at
// that threshold (spec.md §4.5), Ftran runs the flat m-length scan below;
// otherwise it runs the hyper-sparse index-driven solve in
// ftran_sparse.go, which only ever touches positions reachable from
// rhs's initial nonzeros.
func (e *Engine) Ftran(rhs *HVector, expectedDensity float64) error {
	if e.st != stateFactored && e.st != stateUpdated {
		return ErrNotFactored
	}
	if rhs.Dim != e.numRow {
		return ErrDimensionMismatch
	}
	if e.a != nil && !e.a.Valid() {
		return ErrDimensionMismatch
	}
	if !rhs.Dense(expectedDensity) {
		return e.ftranSparse(rhs)
	}
	return e.ftranDense(rhs)
}

func (e *Engine) ftranDense(rhs *HVector) error {
	m := e.numRow
	x := rhs.Array

	// L-solve: replay the elimination order forward.
	for k := 0; k < m; k++ {
		rowK := e.lPivotIndex[k]
		xk := x[rowK]
		if xk == 0 {
			continue
		}
		idx, val := e.lColIndex[k], e.lColValue[k]
		for t, r := range idx {
			x[r] -= val[t] * xk
		}
	}

	// Gather into pivot-order space, then U-solve by right-looking
	// back substitution using the column-wise store.
	sol := make([]float64, m)
	for k := 0; k < m; k++ {
		sol[k] = x[e.lPivotIndex[k]]
	}
	for j := m - 1; j >= 0; j-- {
		sol[j] /= e.uPivotValue[j]
		sj := sol[j]
		if sj == 0 {
			continue
		}
		idx, val := e.uColIndex[j], e.uColValue[j]
		for t, i := range idx {
			sol[i] -= val[t] * sj
		}
	}

	// Apply the update chain in creation order.
	for _, u := range e.updates {
		scale := sol[u.pivotPos] * u.pivotRecip
		for t, i := range u.nzPos {
			sol[i] -= u.nzVal[t] * scale
		}
		sol[u.pivotPos] = scale
	}

	copy(rhs.Array, sol)
	rhs.Pack()
	return nil
}

// Btran solves B^T x = c in place: on entry rhs.Array holds c indexed by
// basis position; on return it holds x indexed by original matrix row.
//
// expectedDensity has the same meaning as Ftran's: below threshold, the
// hyper-sparse solve in ftran_sparse.go runs instead of the flat scan
// below.
func (e *Engine) Btran(rhs *HVector, expectedDensity float64) error {
	if e.st != stateFactored && e.st != stateUpdated {
		return ErrNotFactored
	}
	if rhs.Dim != e.numRow {
		return ErrDimensionMismatch
	}
	if e.a != nil && !e.a.Valid() {
		return ErrDimensionMismatch
	}
	if !rhs.Dense(expectedDensity) {
		return e.btranSparse(rhs)
	}
	return e.btranDense(rhs)
}

func (e *Engine) btranDense(rhs *HVector) error {
	m := e.numRow
	z := append([]float64(nil), rhs.Array...)

	// Apply the update chain in reverse order.
	for i := len(e.updates) - 1; i >= 0; i-- {
		u := e.updates[i]
		sum := 0.0
		for t, j := range u.nzPos {
			sum += u.nzVal[t] * z[j]
		}
		z[u.pivotPos] = u.pivotRecip * (z[u.pivotPos] - sum)
	}

	// U^T forward solve, left-looking, using the row-wise U mirror.
	acc := z
	w := make([]float64, m)
	for i := 0; i < m; i++ {
		w[i] = acc[i] / e.uPivotValue[i]
		idx, val := e.uRowIndex[i], e.uRowValue[i]
		for t, j := range idx {
			if j > i {
				acc[j] -= val[t] * w[i]
			}
		}
	}

	// L^T back solve, using the column-wise L store and the pivot-order
	// lookup to address entries by the pivot step they'll contribute to.
	v := w
	for k := m - 1; k >= 0; k-- {
		idx, val := e.lColIndex[k], e.lColValue[k]
		for t, r := range idx {
			v[k] -= val[t] * v[e.lPivotLookup[r]]
		}
	}

	for k := 0; k < m; k++ {
		rhs.Array[e.lPivotIndex[k]] = v[k]
	}
	rhs.Pack()
	return nil
}
