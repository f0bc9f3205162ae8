package invert

import (
	"context"
	"math"
	"time"
)

// buildKernel runs Markowitz-merit, threshold-pivoted Gaussian
// elimination over whatever BuildSimple left active. At each step it
// scans up to maxKernelSearch nonempty column count buckets (row buckets
// only feed the ideal-merit bound; rows are not searched as candidates)
// for the candidate with the lowest Markowitz merit
// (row_count-1)*(col_count-1) that also clears the threshold-pivoting
// test |v| >= tau * max|col|, and eliminates it (spec.md §4.3).
func (e *Engine) buildKernel(ctx context.Context, deadline time.Time, hasDeadline bool) error {
	steps := 0
	for {
		row, col, ok := e.findKernelPivot()
		if !ok {
			return nil // nothing left that the threshold test accepts; remainder is rank-deficient
		}
		if err := e.eliminatePivot(row, col); err != nil {
			return err
		}

		steps++
		if steps%buildCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if hasDeadline && time.Now().After(deadline) {
				return ErrBuildTimeLimitExceeded
			}
		}
	}
}

// findKernelPivot scans count buckets for the best threshold-accepted
// Markowitz candidate, searching columns by ascending active entry count
// (the classic Markowitz search order: fewest choices first).
//
// Step 1's ideal_merit is the best merit the remaining kernel could
// possibly offer, (min_col_count-1)*(min_row_count-1) from the lowest
// nonempty column and row buckets; once a candidate matching it is found
// no further bucket can beat it, so the search stops at the end of the
// current bucket level (which may still settle a tie-break). Step 3
// otherwise bounds the search to maxKernelSearch nonempty count buckets
// scanned (examined counts bucket levels, not candidate columns).
func (e *Engine) findKernelPivot() (row, col int, ok bool) {
	bestMerit := -1
	bestV := 0.0
	bestRow, bestCol := -1, -1
	tau := e.opts.PivotThreshold()
	tol := e.opts.PivotTolerance()

	minColCount := e.firstNonemptyBucketCount(e.kern.colBuckets)
	minRowCount := e.firstNonemptyBucketCount(e.kern.rowBuckets)
	idealMerit := -1
	if minColCount >= 0 && minRowCount >= 0 {
		idealMerit = (minColCount - 1) * (minRowCount - 1)
	}

	examined := 0
	for count := 1; count <= e.kern.m && examined < maxKernelSearch; count++ {
		if e.kern.colBuckets.First(count) == -1 {
			continue // empty bucket levels don't count against the scan limit
		}
		examined++

		for c := e.kern.colBuckets.First(count); c != -1; c = e.kern.colBuckets.Next(c) {
			colMax := e.colMaxAbs(c)
			if colMax <= tol {
				continue
			}
			for t, r := range e.kern.colIndex[c] {
				v := math.Abs(e.kern.colValue[c][t])
				if v <= tol || v < tau*colMax {
					continue
				}
				rowCount := len(e.kern.rowIndex[r])
				merit := (count - 1) * (rowCount - 1)

				better := bestMerit == -1 ||
					merit < bestMerit ||
					(merit == bestMerit && v > bestV) ||
					(merit == bestMerit && v == bestV && (c < bestCol || (c == bestCol && r < bestRow)))
				if better {
					bestMerit, bestV = merit, v
					bestRow, bestCol = r, c
				}
			}
		}
		if bestMerit != -1 && bestMerit == idealMerit {
			break // can't beat the best merit the remaining kernel could offer
		}
	}

	if bestCol == -1 {
		return 0, 0, false
	}
	return bestRow, bestCol, true
}

// firstNonemptyBucketCount returns the smallest count with a nonempty
// bucket in l, or -1 if every bucket is empty.
func (e *Engine) firstNonemptyBucketCount(l *countBucketList) int {
	for count := 1; count <= e.kern.m; count++ {
		if l.First(count) != -1 {
			return count
		}
	}
	return -1
}

func (e *Engine) colMaxAbs(col int) float64 {
	max := 0.0
	for _, v := range e.kern.colValue[col] {
		if a := math.Abs(v); a > max {
			max = a
		}
	}
	return max
}

// eliminatePivot performs one step of right-looking sparse Gaussian
// elimination on the pivot (row, col): the pivot column's remaining
// active-row entries, scaled by 1/pivot, become L's column for this
// step; every other column with an entry at the pivot row has that entry
// retired into its pending-U list and is updated by subtracting the
// scaled pivot column (spec.md §4.3 step 5).
func (e *Engine) eliminatePivot(row, col int) error {
	pivotVal, _ := e.kern.valueAt(row, col)
	if pivotVal == 0 {
		return ErrSingularBasis
	}
	k := e.numPivot
	e.pivotColMax = append(e.pivotColMax, e.colMaxAbs(col))

	pivotRows := append([]int(nil), e.kern.colIndex[col]...)
	pivotVals := append([]float64(nil), e.kern.colValue[col]...)
	otherRows := make([]int, 0, len(pivotRows))
	otherVals := make([]float64, 0, len(pivotRows))
	for i, r := range pivotRows {
		if r == row {
			continue
		}
		otherRows = append(otherRows, r)
		otherVals = append(otherVals, pivotVals[i])
	}

	otherCols := append([]int(nil), e.kern.rowIndex[row]...)
	for _, c := range otherCols {
		if c == col {
			continue
		}
		rowVal := e.kern.retire(row, c)
		e.kern.uPendingPos[c] = append(e.kern.uPendingPos[c], k)
		e.kern.uPendingVal[c] = append(e.kern.uPendingVal[c], rowVal)

		scale := rowVal / pivotVal
		for t, r2 := range otherRows {
			cur, _ := e.kern.valueAt(r2, c)
			e.kern.setValue(r2, c, cur-scale*otherVals[t])
		}
	}

	lIdx := make([]int, len(otherRows))
	lVal := make([]float64, len(otherRows))
	for t, r2 := range otherRows {
		lIdx[t] = r2
		lVal[t] = otherVals[t] / pivotVal
		slot := e.kern.colIndex[col].indexOf(r2)
		e.kern.removeEntry(r2, col, slot)
	}

	e.lColIndex = append(e.lColIndex, lIdx)
	e.lColValue = append(e.lColValue, lVal)
	e.uColIndex = append(e.uColIndex, e.kern.uPendingPos[col])
	e.uColValue = append(e.uColValue, e.kern.uPendingVal[col])
	e.kern.uPendingPos[col] = nil
	e.kern.uPendingVal[col] = nil

	e.kern.pivotOut(row, col)

	e.lPivotIndex = append(e.lPivotIndex, row)
	e.lPivotLookup[row] = k
	e.uPivotIndex = append(e.uPivotIndex, col)
	e.uPivotValue = append(e.uPivotValue, pivotVal)
	e.numPivot++
	return nil
}
