// Package diag measures and checks fitted isotonic regressions.
//
// Summarize reports goodness-of-fit statistics for a regression against its
// input. Verify and VerifyRadial check that a regression satisfies the
// isotonic invariants: the fitted values follow the direction, every pooled
// value lies within the range of the observations it replaces, and pooled
// weights are consistent with the input weights.
//
// Both work on the expanded form returned by pava.Regress, so they can also
// audit regressions produced elsewhere (for example a decoded model).
package diag
