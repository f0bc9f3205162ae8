// Package invert implements a sparse basis-matrix factorization and update
// engine in the style of a revised-simplex INVERT routine.
//
// Given a column-compressed constraint matrix and a set of basic column
// indices, the engine factors the basis into triangular L and U in place
// via Markowitz-merit, threshold-pivoted Gaussian elimination, then answers
// repeated FTRAN/BTRAN triangular solves against that factorization as the
// basis changes one column at a time, applying rank-one update formulas
// until the accumulated error warrants a fresh factorization.
//
// The package provides:
//
//   - Engine, the single-threaded, non-reentrant factorization core:
//     Setup/SetupGeneral to attach a basis, Build to factor it, Ftran/Btran
//     to solve against it, Update to apply one rank-one basis change, and
//     Rebuild to replay a prior pivot order without a fresh Markowitz search.
//   - HVector, the dense-plus-sparse-index right-hand-side contract Ftran
//     and Btran operate on.
//   - AMatrix, a borrowed, validity-tracked view over caller-owned
//     column-compressed arrays.
//
// See the package's example tests for typical Setup/Build/Ftran/Update usage.
package invert
