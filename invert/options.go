package invert

import (
	"time"

	"github.com/rs/zerolog"
)

// Options holds the tunable policy for one Engine. The zero value is not
// ready to use; construct with NewOptions.
type Options struct {
	pivotThreshold    float64
	pivotTolerance    float64
	updateMethod      int
	markowitzStrategy int
	debugLevel        int
	buildTimeLimit    time.Duration
	logger            zerolog.Logger
}

// NewOptions returns an Options populated with the package defaults:
// threshold pivoting at DefaultPivotThreshold, DefaultPivotTolerance,
// Forrest-Tomlin updates, the original Markowitz search strategy, logging
// disabled (debug level 0), and no build time limit.
func NewOptions() *Options {
	return &Options{
		pivotThreshold:    DefaultPivotThreshold,
		pivotTolerance:    DefaultPivotTolerance,
		updateMethod:      UpdateMethodFT,
		markowitzStrategy: MarkowitzSearchOriginal,
		debugLevel:        0,
		buildTimeLimit:    defaultBuildTimeLimit,
		logger:            zerolog.Nop(),
	}
}

// SetPivotThreshold sets the relative Markowitz threshold-pivoting
// parameter, clamped to [0.0, 0.5]. Returns true if the supplied value was
// within range and accepted as given, false if it was clamped.
func (o *Options) SetPivotThreshold(v float64) bool {
	accepted := true
	if v < minPivotThreshold {
		v = minPivotThreshold
		accepted = false
	}
	if v > maxPivotThreshold {
		v = maxPivotThreshold
		accepted = false
	}
	o.pivotThreshold = v
	return accepted
}

// PivotThreshold returns the current relative pivot threshold.
func (o *Options) PivotThreshold() float64 { return o.pivotThreshold }

// SetPivotTolerance sets the minimum acceptable absolute pivot magnitude,
// clamped to a nonnegative value. Returns true if v was already
// nonnegative.
func (o *Options) SetPivotTolerance(v float64) bool {
	if v < 0 {
		o.pivotTolerance = 0
		return false
	}
	o.pivotTolerance = v
	return true
}

// PivotTolerance returns the current minimum acceptable pivot magnitude.
func (o *Options) PivotTolerance() float64 { return o.pivotTolerance }

// SetUpdateMethod selects FT/PF/MPF/APF updates. Returns false (and leaves
// the prior setting unchanged) if method is not one of the UpdateMethod*
// constants.
func (o *Options) SetUpdateMethod(method int) bool {
	switch method {
	case UpdateMethodFT, UpdateMethodPF, UpdateMethodMPF, UpdateMethodAPF:
		o.updateMethod = method
		return true
	default:
		return false
	}
}

// UpdateMethod returns the currently selected update method.
func (o *Options) UpdateMethod() int { return o.updateMethod }

// SetMarkowitzStrategy selects a pivot-search strategy. Returns false (and
// leaves the prior setting unchanged) for an out-of-range value. All
// strategies other than MarkowitzSearchOriginal canonicalize to the same
// search at Build time; see DESIGN.md.
func (o *Options) SetMarkowitzStrategy(strategy int) bool {
	switch strategy {
	case MarkowitzSearchOriginal, MarkowitzSearchRefined, MarkowitzSearchSwitched, MarkowitzSearchAlternating:
		o.markowitzStrategy = strategy
		return true
	default:
		return false
	}
}

// MarkowitzStrategy returns the currently selected search strategy.
func (o *Options) MarkowitzStrategy() int { return o.markowitzStrategy }

// SetDebugLevel controls structured logging verbosity (Build logs a summary
// line when the level is above 0; ReportLu does not read it). Negative
// values are clamped to 0.
func (o *Options) SetDebugLevel(level int) bool {
	if level < 0 {
		o.debugLevel = 0
		return false
	}
	o.debugLevel = level
	return true
}

// DebugLevel returns the current debug level.
func (o *Options) DebugLevel() int { return o.debugLevel }

// SetBuildTimeLimit sets a cooperative abort deadline for Build; zero or
// negative disables the limit.
func (o *Options) SetBuildTimeLimit(d time.Duration) {
	o.buildTimeLimit = d
}

// BuildTimeLimit returns the current build time limit (zero means
// unlimited).
func (o *Options) BuildTimeLimit() time.Duration { return o.buildTimeLimit }

// SetLogger installs a zerolog.Logger used for DebugLevel-gated
// diagnostics. A Nop logger (the default) discards everything.
func (o *Options) SetLogger(l zerolog.Logger) {
	o.logger = l
}

// Logger returns the installed logger.
func (o *Options) Logger() zerolog.Logger { return o.logger }
