// Package fixtures generates sparse basis-matrix test instances (column
// arrays in the a_start/a_index/a_value layout consumed by package
// invert's AMatrix view) for use in table-driven and property-based
// tests. It is a test-support package, not part of the production engine.
package fixtures

import "math/rand"

// Option customizes a generatorConfig before a matrix is built.
type Option func(cfg *generatorConfig)

// generatorConfig holds the configurable parameters for basis generators:
//   - rng:      source of randomness (defaults to a source seeded with 1,
//     so generators called without WithSeed are deterministic).
//   - valueFn:  function mapping rng -> a nonzero entry value.
//   - diagBias: additive bias applied to diagonal entries, improving the
//     odds of a well-conditioned, nonsingular basis for property tests
//     that need one.
type generatorConfig struct {
	rng      *rand.Rand
	valueFn  ValueFn
	diagBias float64
}

// ValueFn produces a nonzero matrix entry value given an RNG source.
type ValueFn func(rng *rand.Rand) float64

// DefaultValueFn returns a uniform value in [-5, 5] \ {0}, resampling on
// the rare exact-zero draw so generated entries are never structural
// zeros in disguise.
func DefaultValueFn(rng *rand.Rand) float64 {
	for {
		v := rng.Float64()*10 - 5
		if v != 0 {
			return v
		}
	}
}

func newGeneratorConfig(opts ...Option) *generatorConfig {
	cfg := &generatorConfig{
		rng:      rand.New(rand.NewSource(1)),
		valueFn:  DefaultValueFn,
		diagBias: 0,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithSeed seeds the generator's RNG deterministically.
func WithSeed(seed int64) Option {
	return func(cfg *generatorConfig) { cfg.rng = rand.New(rand.NewSource(seed)) }
}

// WithValueFn overrides the nonzero-entry value distribution.
func WithValueFn(fn ValueFn) Option {
	return func(cfg *generatorConfig) {
		if fn != nil {
			cfg.valueFn = fn
		}
	}
}

// WithDiagonalBias adds bias to diagonal entries so RandomBasis produces
// diagonally-dominant, well-conditioned matrices more often.
func WithDiagonalBias(bias float64) Option {
	return func(cfg *generatorConfig) { cfg.diagBias = bias }
}
