package invert

import "errors"

// Sentinel errors returned by package invert. Wrap with fmt.Errorf("%w", ...)
// when additional context (indices, magnitudes) is useful to the caller.
var (
	// ErrNilAMatrix is returned when Setup/SetupGeneral is given a nil
	// column-array view.
	ErrNilAMatrix = errors.New("invert: a-matrix is nil")

	// ErrBadBasicIndex is returned when a basic_index entry falls outside
	// [0, num_col).
	ErrBadBasicIndex = errors.New("invert: basic index out of range")

	// ErrRectangularBasisUnsupported is returned by SetupGeneral when
	// num_basic != num_row; see DESIGN.md's Open Question decision.
	ErrRectangularBasisUnsupported = errors.New("invert: rectangular basis (num_basic != num_row) is not supported")

	// ErrNotConfigured is returned when Build, Rebuild, or a structural
	// edit (AddCols/AddRows/DeleteNonbasicCols) is called before
	// Setup/SetupGeneral. Ftran/Btran/Update return ErrNotFactored instead.
	ErrNotConfigured = errors.New("invert: engine is not configured")

	// ErrNotFactored is returned when Ftran/Btran/Update/ReportLu is
	// called before a successful Build.
	ErrNotFactored = errors.New("invert: basis has not been factored")

	// ErrDimensionMismatch is returned when a caller-supplied vector's
	// length does not match the basis dimension.
	ErrDimensionMismatch = errors.New("invert: vector dimension mismatch")

	// ErrSingularBasis is returned by Build when rank deficiency handling
	// could not produce a usable factorization (e.g. an entire row or
	// column of slack substitutes is itself singular).
	ErrSingularBasis = errors.New("invert: basis is structurally singular")

	// ErrBuildTimeLimitExceeded is returned by Build when Options.BuildTimeLimit
	// elapses before the factorization completes.
	ErrBuildTimeLimitExceeded = errors.New("invert: build time limit exceeded")

	// ErrPivotRejected is returned by Update when the incoming column's
	// entry at the pivot row fails the pivot-tolerance check.
	ErrPivotRejected = errors.New("invert: update pivot magnitude below tolerance")

	// ErrUpdateLimitExceeded is returned by Update when the accumulated
	// update chain has grown long enough that a reinvert is required
	// before any further update can be applied safely.
	ErrUpdateLimitExceeded = errors.New("invert: update chain exhausted, reinvert required")

	// ErrNoRefactorInfo is returned by Rebuild when no prior successful
	// Build has left a pivot order to replay.
	ErrNoRefactorInfo = errors.New("invert: no recorded pivot order to replay")

	// ErrRebuildMismatch is returned by Rebuild when replaying the
	// recorded pivot order against the (possibly changed) a-matrix hits a
	// pivot whose magnitude no longer clears the tolerance.
	ErrRebuildMismatch = errors.New("invert: recorded pivot order no longer valid for this a-matrix")
)
