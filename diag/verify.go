package diag

import (
	"fmt"
	"math"

	"github.com/arloliu/isotonic/errs"
	"github.com/arloliu/isotonic/pava"
)

// Relative tolerances for pooled sums, which round differently than a
// left-to-right sum of the same terms.
const (
	valueTolerance  = 1e-9
	weightTolerance = 1e-9
)

// Verify checks that r is a valid isotonic fit of values and weights in
// direction dir.
//
// The checks are the ones recoverable from the expanded form:
//   - adjacent fitted values satisfy dir non-strictly
//   - every run of equal fitted values lies within the range of the
//     observations it covers
//   - every run of equal (value, weight) pairs covers input weight equal to
//     a whole number of pools of that weight
//
// Returns errs.ErrInvariantViolation wrapped with the offending index, or an
// input error (errs.ErrLengthMismatch, errs.ErrEmptyInput, errs.ErrInvalidDirection).
func Verify(values, weights []float64, r pava.Regression, dir pava.Direction) error {
	if !dir.Valid() {
		return fmt.Errorf("%w: %d", errs.ErrInvalidDirection, uint8(dir))
	}
	if err := checkLengths(values, weights, r); err != nil {
		return err
	}

	return verifyArm(values, weights, r, dir, 0)
}

// VerifyRadial checks a radial fit: the left arm [0, center) against the
// complement of dir and the right arm [center, n) against dir. No relation is
// checked across the center.
func VerifyRadial(values, weights []float64, r pava.Regression, center int, dir pava.Direction) error {
	if !dir.Valid() {
		return fmt.Errorf("%w: %d", errs.ErrInvalidDirection, uint8(dir))
	}
	if err := checkLengths(values, weights, r); err != nil {
		return err
	}
	if center < 0 || center > len(values) {
		return fmt.Errorf("%w: center %d, length %d", errs.ErrCenterOutOfRange, center, len(values))
	}

	left := pava.Regression{Weights: r.Weights[:center], Values: r.Values[:center]}
	if err := verifyArm(values[:center], weights[:center], left, dir.Complement(), 0); err != nil {
		return fmt.Errorf("left arm: %w", err)
	}

	right := pava.Regression{Weights: r.Weights[center:], Values: r.Values[center:]}
	if err := verifyArm(values[center:], weights[center:], right, dir, center); err != nil {
		return fmt.Errorf("right arm: %w", err)
	}

	return nil
}

// verifyArm reports indices shifted by offset.
func verifyArm(values, weights []float64, r pava.Regression, dir pava.Direction, offset int) error {
	for i := 1; i < len(r.Values); i++ {
		if !dir.Holds(r.Values[i-1], r.Values[i]) {
			return fmt.Errorf("%w: %s order broken at index %d (%g then %g)",
				errs.ErrInvariantViolation, dir, offset+i, r.Values[i-1], r.Values[i])
		}
	}

	for start := 0; start < len(r.Values); {
		end := start + 1
		lo, hi := values[start], values[start]
		for end < len(r.Values) && r.Values[end] == r.Values[start] {
			lo = math.Min(lo, values[end])
			hi = math.Max(hi, values[end])
			end++
		}

		tol := valueTolerance * math.Max(1, math.Max(math.Abs(lo), math.Abs(hi)))
		if v := r.Values[start]; v < lo-tol || v > hi+tol {
			return fmt.Errorf("%w: value %g at [%d, %d) outside observed range [%g, %g]",
				errs.ErrInvariantViolation, v, offset+start, offset+end, lo, hi)
		}

		if err := verifyWeights(weights[start:end], r.Weights[start:end], offset+start); err != nil {
			return err
		}

		start = end
	}

	return nil
}

// verifyWeights checks one run of equal fitted values, split further into
// runs of equal pooled weight.
func verifyWeights(input, pooled []float64, offset int) error {
	for start := 0; start < len(pooled); {
		w := pooled[start]
		end := start + 1
		for end < len(pooled) && pooled[end] == w {
			end++
		}

		sum := 0.0
		for _, x := range input[start:end] {
			sum += x
		}

		tol := weightTolerance * math.Max(1, sum)
		if w <= tol {
			if sum > tol {
				return fmt.Errorf("%w: zero pooled weight over input weight %g at [%d, %d)",
					errs.ErrInvariantViolation, sum, offset+start, offset+end)
			}
		} else {
			pools := math.Round(sum / w)
			if pools < 1 || pools > float64(end-start) || math.Abs(sum-pools*w) > tol {
				return fmt.Errorf("%w: pooled weight %g does not account for input weight %g at [%d, %d)",
					errs.ErrInvariantViolation, w, sum, offset+start, offset+end)
			}
		}

		start = end
	}

	return nil
}
