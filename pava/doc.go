// Package pava implements weighted isotonic regression with the
// Pool-Adjacent-Violators Algorithm, plus a radial variant that fits two
// monotone arms around a split index.
//
// # Isotonic Regression
//
// Given observations x_i with non-negative weights w_i, Regress finds the
// sequence y that minimizes
//
//	sum_i w_i * (y_i - x_i)^2
//
// subject to y_i <= y_{i+1} (Increasing) or y_i >= y_{i+1} (Decreasing).
// The solution is piecewise constant: consecutive observations are merged into
// pools whose value is the weighted mean of their members and whose weight is
// the sum of their members' weights.
//
//	r, err := pava.Regress(
//	    []float64{1, 3, 2},
//	    []float64{1, 1, 1},
//	    pava.Increasing,
//	)
//	// r.Values  == [1 2.5 2.5]
//	// r.Weights == [1 2 2]
//
// # Radial Regression
//
// RegressRadial splits the input at a center index and fits the left arm with
// the complementary direction and the right arm with the given direction. With
// Increasing the result is a valley whose minimum lies at or near the center;
// with Decreasing it is a peak. The arms are fitted independently, so the
// values on both sides of the center may differ; the center itself belongs to
// the right arm.
//
// # Pools
//
// Pools and RadialPools return the compact run-length form of a fit, one Pool
// per merged block. Expand turns a pool list back into a per-position
// Regression. The model package persists fits in pool form.
//
// # Validation
//
// Every entry point validates its input and returns sentinel errors from the
// errs package (wrapped with context). The Must variants panic instead, for
// callers that treat bad input as a programming error.
//
// # Performance
//
// A fit is a single left-to-right pass with an explicit stack: O(n) time and
// O(n) memory. The stack is borrowed from a shared pool, so repeated fits do
// not allocate beyond the two output slices. All functions are safe for
// concurrent use.
package pava
