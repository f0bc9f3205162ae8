package invert

import "container/heap"

// minIntHeap is a binary min-heap of distinct pivot positions, used by the
// ascending hypersparse solves (Ftran's L-forward phase, Btran's
// U^T-forward phase) to visit positions in strictly increasing order
// without scanning positions no edge reaches.
type minIntHeap []int

func (h minIntHeap) Len() int            { return len(h) }
func (h minIntHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h minIntHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *minIntHeap) Push(x interface{}) { *h = append(*h, x.(int)) }
func (h *minIntHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// maxIntHeap is the descending counterpart, used by Ftran's U-backward
// phase and Btran's L^T-back phase.
type maxIntHeap []int

func (h maxIntHeap) Len() int            { return len(h) }
func (h maxIntHeap) Less(i, j int) bool  { return h[i] > h[j] }
func (h maxIntHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *maxIntHeap) Push(x interface{}) { *h = append(*h, x.(int)) }
func (h *maxIntHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// ftranSparse is ftranDense's hyper-sparse counterpart: instead of
// scanning every one of the m pivot steps, it propagates only from the
// positions rhs's pattern can actually reach.
//
// L's forward solve (lColIndex[k]) only ever writes to a row whose own
// pivot step is larger than k - a row still active in the kernel when
// step k eliminated, it can only be pivoted at some later step - so an
// ascending min-heap seeded from rhs's nonzeros visits exactly the
// reachable steps, each exactly once. U's backward solve (uColIndex[j])
// is upper triangular in pivot order and only ever writes to a smaller
// position, so the symmetric descending max-heap does the same for the
// U phase, seeded from whatever the L phase touched.
func (e *Engine) ftranSparse(rhs *HVector) error {
	m := e.numRow
	x := rhs.Array

	queuedL := make([]bool, m)
	lq := &minIntHeap{}
	var lTouched []int
	pushL := func(k int) {
		if !queuedL[k] {
			queuedL[k] = true
			lTouched = append(lTouched, k)
			heap.Push(lq, k)
		}
	}
	for _, r := range rhs.Index {
		pushL(e.lPivotLookup[r])
	}
	for lq.Len() > 0 {
		k := heap.Pop(lq).(int)
		rowK := e.lPivotIndex[k]
		xk := x[rowK]
		if xk == 0 {
			continue
		}
		idx, val := e.lColIndex[k], e.lColValue[k]
		for t, r := range idx {
			x[r] -= val[t] * xk
			pushL(e.lPivotLookup[r])
		}
	}

	sol := make([]float64, m)
	for _, k := range lTouched {
		sol[k] = x[e.lPivotIndex[k]]
	}

	queuedU := make([]bool, m)
	uq := &maxIntHeap{}
	var uTouched []int
	pushU := func(k int) {
		if !queuedU[k] {
			queuedU[k] = true
			uTouched = append(uTouched, k)
			heap.Push(uq, k)
		}
	}
	for _, k := range lTouched {
		pushU(k)
	}
	for uq.Len() > 0 {
		j := heap.Pop(uq).(int)
		sol[j] /= e.uPivotValue[j]
		sj := sol[j]
		if sj == 0 {
			continue
		}
		idx, val := e.uColIndex[j], e.uColValue[j]
		for t, i := range idx {
			sol[i] -= val[t] * sj
			pushU(i)
		}
	}

	// Apply the update chain in creation order; bounded by maxUpdateChain,
	// not m, so it's left as a flat loop in both the dense and sparse
	// paths, same as ftranDense.
	for _, u := range e.updates {
		scale := sol[u.pivotPos] * u.pivotRecip
		for t, i := range u.nzPos {
			sol[i] -= u.nzVal[t] * scale
			if !queuedU[i] {
				queuedU[i] = true
				uTouched = append(uTouched, i)
			}
		}
		sol[u.pivotPos] = scale
		if !queuedU[u.pivotPos] {
			queuedU[u.pivotPos] = true
			uTouched = append(uTouched, u.pivotPos)
		}
	}

	rhs.Clear()
	for _, k := range uTouched {
		if sol[k] != 0 {
			rhs.Mark(k, sol[k])
		}
	}
	return nil
}

// btranSparse is btranDense's hyper-sparse counterpart, following the
// same reachability argument in the transposed direction: the U^T
// forward solve (uRowIndex[i]) only ever writes to a larger position
// (ascending min-heap), and the L^T back solve only ever needs
// contributions from a larger position too. The dense L^T solve reads
// that dependency as a gather (v[k] reads v[lPivotLookup[r]] for r in
// lColIndex[k]); here it runs as the equivalent scatter through the
// lRowIndex/lRowValue row mirror built alongside lColIndex, so a position
// can push its contribution out to its dependents as soon as it's
// finalized instead of every k having to poll for its own sources.
func (e *Engine) btranSparse(rhs *HVector) error {
	m := e.numRow
	z := append([]float64(nil), rhs.Array...)

	seeded := make([]bool, m)
	var seeds []int
	trackSeed := func(i int) {
		if !seeded[i] {
			seeded[i] = true
			seeds = append(seeds, i)
		}
	}
	for _, i := range rhs.Index {
		trackSeed(i)
	}

	for i := len(e.updates) - 1; i >= 0; i-- {
		u := e.updates[i]
		sum := 0.0
		for t, j := range u.nzPos {
			sum += u.nzVal[t] * z[j]
		}
		z[u.pivotPos] = u.pivotRecip * (z[u.pivotPos] - sum)
		trackSeed(u.pivotPos)
	}

	acc := z
	w := make([]float64, m)
	queuedUT := make([]bool, m)
	utq := &minIntHeap{}
	pushUT := func(i int) {
		if !queuedUT[i] {
			queuedUT[i] = true
			heap.Push(utq, i)
		}
	}
	for _, i := range seeds {
		pushUT(i)
	}
	var utTouched []int
	for utq.Len() > 0 {
		i := heap.Pop(utq).(int)
		utTouched = append(utTouched, i)
		w[i] = acc[i] / e.uPivotValue[i]
		if w[i] == 0 {
			continue
		}
		idx, val := e.uRowIndex[i], e.uRowValue[i]
		for t, j := range idx {
			if j > i {
				acc[j] -= val[t] * w[i]
				pushUT(j)
			}
		}
	}

	v := w
	queuedLT := make([]bool, m)
	ltq := &maxIntHeap{}
	var ltTouched []int
	pushLT := func(k int) {
		if !queuedLT[k] {
			queuedLT[k] = true
			ltTouched = append(ltTouched, k)
			heap.Push(ltq, k)
		}
	}
	for _, k := range utTouched {
		pushLT(k)
	}
	for ltq.Len() > 0 {
		q := heap.Pop(ltq).(int)
		vq := v[q]
		if vq == 0 {
			continue
		}
		idx, val := e.lRowIndex[q], e.lRowValue[q]
		for t, k := range idx {
			v[k] -= val[t] * vq
			pushLT(k)
		}
	}

	rhs.Clear()
	for _, k := range ltTouched {
		if v[k] != 0 {
			rhs.Mark(e.lPivotIndex[k], v[k])
		}
	}
	return nil
}
