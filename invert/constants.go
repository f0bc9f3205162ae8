package invert

// Update-method selectors for the rank-one update buffer (spec.md §4.6).
const (
	UpdateMethodFT  = iota + 1 // Forrest-Tomlin
	UpdateMethodPF             // Product-Form
	UpdateMethodMPF            // Middle Product-Form
	UpdateMethodAPF            // Alternate Product-Form
)

// Markowitz pivot-search strategies (spec.md §4.3, §9 Open Question).
// Only MarkowitzSearchOriginal has a distinct implementation; the others
// are accepted as valid configuration values and dispatch to the same
// canonical search, per the Open Question decision recorded in DESIGN.md.
const (
	MarkowitzSearchOriginal = iota
	MarkowitzSearchRefined
	MarkowitzSearchSwitched
	MarkowitzSearchAlternating
)

// ReportLu detail-level selectors (spec.md §6).
const (
	ReportLuL = iota
	ReportLuU
	ReportLuBoth
)

// Numerical policy defaults (spec.md §4.3, §6).
const (
	// DefaultPivotThreshold is the default relative threshold tau used by
	// threshold pivoting: a candidate pivot must satisfy |v| >= tau * max|col|.
	DefaultPivotThreshold = 0.1

	// DefaultPivotTolerance is the default minimum acceptable absolute
	// pivot magnitude; a candidate below this is rejected outright.
	DefaultPivotTolerance = 1e-10

	// minPivotThreshold and maxPivotThreshold bound SetPivotThreshold's
	// accepted range (spec.md §4.3: "clamped to [0.0, 0.5]").
	minPivotThreshold = 0.0
	maxPivotThreshold = 0.5

	// highsTiny is the drop tolerance: kernel entries with |value| below
	// this are treated as structural zeros and removed.
	highsTiny = 1e-11

	// highsInf stands in for +infinity in places that need a finite
	// sentinel larger than any real pivot magnitude can be.
	highsInf = 1e30

	// maxKernelSearch bounds how many nonempty count buckets BuildKernel's
	// pivot search scans before accepting the best candidate found so far.
	maxKernelSearch = 8

	// buildCheckInterval is how many pivot steps elapse between checks of
	// Options.BuildTimeLimit inside BuildKernel (spec.md §5).
	buildCheckInterval = 256
)
