package invert

import "math"

// buildSimple repeatedly pivots on singleton columns and singleton rows -
// entries that are the only remaining nonzero in their column or row -
// before BuildKernel's more expensive Markowitz search ever runs. Slack
// and other unit columns, and any column a prior pivot reduced to a
// single surviving entry, are caught here at no elimination cost beyond
// bookkeeping (spec.md §4.2).
func (e *Engine) buildSimple() error {
	for {
		progressed := false

		if col := e.kern.colBuckets.First(1); col != -1 {
			row := e.kern.colIndex[col][0]
			if math.Abs(e.kern.colValue[col][0]) > e.opts.PivotTolerance() {
				if err := e.eliminatePivot(row, col); err != nil {
					return err
				}
				e.numSimplePivot++
				progressed = true
				continue
			}
		}

		if row := e.kern.rowBuckets.First(1); row != -1 {
			col := e.kern.rowIndex[row][0]
			v, _ := e.kern.valueAt(row, col)
			if math.Abs(v) > e.opts.PivotTolerance() {
				if err := e.eliminatePivot(row, col); err != nil {
					return err
				}
				e.numSimplePivot++
				progressed = true
				continue
			}
		}

		if !progressed {
			return nil
		}
	}
}
