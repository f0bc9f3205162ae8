package invert

import "math"

// maxUpdateChain bounds how many rank-one updates accumulate before
// Update refuses further updates and asks the caller to Build again; past
// this point FTRAN/BTRAN's per-solve update replay cost dominates and
// numerical error compounds (spec.md §4.6).
const maxUpdateChain = 128

// etaUpdate is one rank-one basis change, represented the same way
// regardless of which UpdateMethod selected it: the eta vector aq with
// its pivot-row entry replaced by 1/pivot. FTRAN applies it forward
// (§4.6's product-form formula); BTRAN applies its transpose in reverse
// update order.
//
// FT/MPF/APF are accepted as Options.UpdateMethod selections and recorded
// per update in method, but all four share this append-only
// representation rather than FT's in-place row-splice into U; see
// DESIGN.md.
type etaUpdate struct {
	method     int
	pivotPos   int
	pivotRecip float64
	nzPos      []int
	nzVal      []float64
}

// Update applies a rank-one basis change: the basic variable currently at
// basis position iRow leaves, replaced by enteringCol, whose FTRAN solve
// is aq (so aq = B^-1 * a_q for the entering column's original a_q). ep is
// the BTRAN solve of the iRow-th unit vector (ep = B^-T * e_iRow,
// spec.md §6); it is used here only for a numerical consistency check
// (ep . a_q must equal aq[iRow], since both compute the same scalar via
// B^-1's two triangular factors) that feeds the reinvert hint - see
// DESIGN.md for why Update does not attempt FT's literal in-place U
// splice from it. It returns a hint telling the caller whether the
// update degraded numerical quality enough to warrant a fresh Build.
func (e *Engine) Update(iRow, enteringCol int, aq, ep *HVector) (BuildHint, error) {
	if e.st != stateFactored && e.st != stateUpdated {
		return HintNone, ErrNotFactored
	}
	if aq.Dim != e.numRow || iRow < 0 || iRow >= e.numRow {
		return HintNone, ErrDimensionMismatch
	}
	if ep != nil && ep.Dim != e.numRow {
		return HintNone, ErrDimensionMismatch
	}
	if e.a != nil && !e.a.Valid() {
		return HintNone, ErrDimensionMismatch
	}
	if enteringCol < 0 || enteringCol >= e.a.NumCol {
		return HintNone, ErrBadBasicIndex
	}
	alpha := aq.Array[iRow]
	if math.Abs(alpha) <= e.opts.PivotTolerance() {
		return HintReinvert, ErrPivotRejected
	}
	if len(e.updates) >= maxUpdateChain {
		return HintReinvert, ErrUpdateLimitExceeded
	}

	u := etaUpdate{
		method:     e.opts.UpdateMethod(),
		pivotPos:   iRow,
		pivotRecip: 1 / alpha,
	}
	for _, i := range aq.Index {
		if i == iRow {
			continue
		}
		u.nzPos = append(u.nzPos, i)
		u.nzVal = append(u.nzVal, aq.Array[i])
	}
	e.updates = append(e.updates, u)
	e.updateCount++
	e.basicIndex[iRow] = enteringCol
	e.st = stateUpdated

	hint := HintNone
	if len(e.updates) >= maxUpdateChain/2 {
		hint = HintReinvert
	}
	if math.Abs(alpha) < e.opts.PivotThreshold()*e.opts.PivotTolerance()*1e3 {
		hint = HintReinvert
	}
	if ep != nil && e.a != nil {
		idx, val := e.a.Column(enteringCol)
		dot := 0.0
		for t, r := range idx {
			dot += ep.Array[r] * val[t]
		}
		tol := e.opts.PivotTolerance()
		if math.Abs(dot-alpha) > tol*(1+math.Abs(alpha)) {
			hint = HintReinvert
		}
	}
	return hint, nil
}

// UpdateCount returns the number of rank-one updates applied since the
// last Build or Rebuild.
func (e *Engine) UpdateCount() int { return e.updateCount }
