// Package densemat provides a minimal dense matrix type and a Doolittle
// LU solve, used only as a cross-check oracle for the sparse factorization
// engine's tests in package invert. It is deliberately not exported for
// production use: spec.md scopes "dense linear algebra" out of the engine
// itself, and this package exists purely so tests can verify B*x == b by
// an independent, easy-to-audit path.
package densemat

import "errors"

// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
var ErrInvalidDimensions = errors.New("densemat: dimensions must be > 0")

// ErrIndexOutOfBounds indicates that a row or column index is outside valid range.
var ErrIndexOutOfBounds = errors.New("densemat: index out of bounds")

// ErrNotSquare indicates an operation that requires a square matrix received one that isn't.
var ErrNotSquare = errors.New("densemat: matrix is not square")

// ErrDimensionMismatch indicates two operands have incompatible shapes.
var ErrDimensionMismatch = errors.New("densemat: dimension mismatch")

// ErrSingular indicates a zero pivot was encountered during LU or solve.
var ErrSingular = errors.New("densemat: singular matrix")
