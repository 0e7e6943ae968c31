package pava

import (
	"fmt"

	"github.com/arloliu/isotonic/errs"
)

// RegressRadial fits two independent monotone arms split at center.
//
// values[:center] is fitted with dir.Complement() and values[center:] with
// dir; the results are concatenated in order. With Increasing the left arm is
// non-increasing and the right arm non-decreasing, giving a valley; Decreasing
// gives a peak. Nothing is enforced across the boundary, and the element at
// center belongs to the right arm only.
//
// center == 0 is the same as Regress(values, weights, dir) and
// center == len(values) the same as Regress(values, weights, dir.Complement()).
//
// Parameters:
//   - values, weights: As for Regress
//   - center: Split index, 0 <= center <= len(values)
//   - dir: Direction of the right arm
//
// Returns:
//   - Regression: Same length as values
//   - error: The errors of Regress, or errs.ErrCenterOutOfRange
func RegressRadial(values, weights []float64, center int, dir Direction) (Regression, error) {
	pools, err := RadialPools(values, weights, center, dir)
	if err != nil {
		return Regression{}, err
	}

	return Expand(pools), nil
}

// MustRegressRadial is like RegressRadial but panics on invalid input.
func MustRegressRadial(values, weights []float64, center int, dir Direction) Regression {
	r, err := RegressRadial(values, weights, center, dir)
	if err != nil {
		panic(err)
	}

	return r
}

// RadialPools is RegressRadial in pool form: the left arm's pools followed by
// the right arm's pools, with indices relative to the whole input.
func RadialPools(values, weights []float64, center int, dir Direction) ([]Pool, error) {
	if err := validate(values, weights, dir); err != nil {
		return nil, err
	}
	if center < 0 || center > len(values) {
		return nil, fmt.Errorf("%w: center %d, length %d", errs.ErrCenterOutOfRange, center, len(values))
	}

	var pools []Pool
	if center > 0 {
		pools = mergeBlocks(values[:center], weights[:center], dir.Complement(), 0)
	}
	if center < len(values) {
		right := mergeBlocks(values[center:], weights[center:], dir, center)
		if pools == nil {
			return right, nil
		}
		pools = append(pools, right...)
	}

	return pools, nil
}
