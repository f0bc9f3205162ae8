package invert

import (
	"fmt"
	"math"
	"strings"
)

// ReportLu renders a textual dump of the current factorization for
// diagnostics: level selects ReportLuL, ReportLuU, or ReportLuBoth
// (spec.md §6). Returns ErrNotFactored if Build hasn't succeeded yet.
func (e *Engine) ReportLu(level int) (string, error) {
	if e.st != stateFactored && e.st != stateUpdated {
		return "", ErrNotFactored
	}
	var b strings.Builder
	fmt.Fprintf(&b, "dim=%d pivots=%d simple=%d rank_deficiency=%d updates=%d\n",
		e.numRow, e.numPivot, e.numSimplePivot, e.rankDeficiency, len(e.updates))

	if level == ReportLuL || level == ReportLuBoth {
		b.WriteString("L:\n")
		for k, idx := range e.lColIndex {
			fmt.Fprintf(&b, "  col[%d] (row=%d):", k, e.lPivotIndex[k])
			for t, r := range idx {
				fmt.Fprintf(&b, " (%d,%.6g)", r, e.lColValue[k][t])
			}
			b.WriteByte('\n')
		}
	}
	if level == ReportLuU || level == ReportLuBoth {
		b.WriteString("U:\n")
		for k, idx := range e.uColIndex {
			margin := 0.0
			if k < len(e.pivotColMax) && e.pivotColMax[k] > 0 {
				margin = math.Abs(e.uPivotValue[k]) / e.pivotColMax[k]
			}
			fmt.Fprintf(&b, "  col[%d] (pos=%d, pivot=%.6g, margin=%.4g):", k, e.uPivotIndex[k], e.uPivotValue[k], margin)
			for t, r := range idx {
				fmt.Fprintf(&b, " (%d,%.6g)", r, e.uColValue[k][t])
			}
			b.WriteByte('\n')
		}
	}
	if e.rankDeficiency > 0 {
		fmt.Fprintf(&b, "rank_deficient_columns=%v\n", e.varWithNoPivot)
	}
	return b.String(), nil
}
