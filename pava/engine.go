package pava

import (
	"fmt"
	"math"

	"github.com/arloliu/isotonic/errs"
	"github.com/arloliu/isotonic/internal/pool"
)

// block is one entry of the merge stack. Its range ends where the next
// block starts, or at the end of the input for the top block.
type block struct {
	value  float64
	weight float64
	start  int
}

const (
	// initialStackCapacity covers typical fits without regrowing the stack.
	initialStackCapacity = 64
	// maxPooledStack keeps stacks of very large fits out of the pool.
	maxPooledStack = 1 << 16
)

var blockStacks = pool.NewSlicePool[block](maxPooledStack)

// Regress performs weighted isotonic regression with the Pool-Adjacent-Violators algorithm.
//
// The fit minimizes sum_i weights[i]*(y_i - values[i])^2 subject to the order
// given by dir, and returns the per-position pooled values and weights.
//
// Parameters:
//   - values: Observations, at least one, all finite
//   - weights: Non-negative weights, same length as values
//   - dir: Increasing or Decreasing
//
// Returns:
//   - Regression: Pooled values and weights, same length as values
//   - error: errs.ErrLengthMismatch, errs.ErrEmptyInput, errs.ErrNegativeWeight,
//     errs.ErrWeightOverflow, errs.ErrNonFiniteValue or errs.ErrInvalidDirection
//
// Example:
//
//	r, err := pava.Regress([]float64{5, 3, 4}, []float64{1, 1, 1}, pava.Increasing)
//	// r.Values  == [4 4 4]
//	// r.Weights == [2 2 1]
func Regress(values, weights []float64, dir Direction) (Regression, error) {
	pools, err := Pools(values, weights, dir)
	if err != nil {
		return Regression{}, err
	}

	return Expand(pools), nil
}

// MustRegress is like Regress but panics on invalid input.
func MustRegress(values, weights []float64, dir Direction) Regression {
	r, err := Regress(values, weights, dir)
	if err != nil {
		panic(err)
	}

	return r
}

// Pools performs the same fit as Regress and returns it in pool form, one
// entry per merged block, in index order.
//
// Adjacent pools strictly satisfy dir; they are never equal-valued violators.
func Pools(values, weights []float64, dir Direction) ([]Pool, error) {
	if err := validate(values, weights, dir); err != nil {
		return nil, err
	}

	return mergeBlocks(values, weights, dir, 0), nil
}

// mergeBlocks runs the PAVA pass over a validated, non-empty segment and
// returns its pools with indices shifted by offset.
func mergeBlocks(values, weights []float64, dir Direction, offset int) []Pool {
	stack, release := blockStacks.Get(min(len(values), initialStackCapacity))
	defer func() { release(stack) }()

	stack = append(stack, block{value: values[0], weight: weights[0], start: 0})
	for i := 1; i < len(values); i++ {
		stack = append(stack, block{value: values[i], weight: weights[i], start: i})

		// Blocks below the top already satisfy dir pairwise; only the top pair
		// can violate, and each merge may expose a violation one level down.
		for len(stack) > 1 {
			top := stack[len(stack)-1]
			below := &stack[len(stack)-2]
			if !dir.Violates(below.value, top.value) {
				break
			}
			below.value = pooledMean(*below, top)
			below.weight += top.weight
			stack = stack[:len(stack)-1]
		}
	}

	pools := make([]Pool, len(stack))
	for k, b := range stack {
		end := len(values)
		if k+1 < len(stack) {
			end = stack[k+1].start
		}
		pools[k] = Pool{
			Start:  b.start + offset,
			End:    end + offset,
			Value:  b.value,
			Weight: b.weight,
		}
	}

	return pools
}

// pooledMean returns the weighted mean of two blocks. Two zero-weight blocks
// have no weighted mean; they fall back to the plain mean of their values.
//
// The mean is formed from weight fractions so that large finite values do not
// overflow, and is clamped to the range of the two values against rounding.
func pooledMean(a, b block) float64 {
	lo, hi := math.Min(a.value, b.value), math.Max(a.value, b.value)

	w := a.weight + b.weight
	if w == 0 {
		return a.value/2 + b.value/2
	}

	m := a.value*(a.weight/w) + b.value*(b.weight/w)

	return math.Max(lo, math.Min(hi, m))
}

func validate(values, weights []float64, dir Direction) error {
	if !dir.Valid() {
		return fmt.Errorf("%w: %d", errs.ErrInvalidDirection, uint8(dir))
	}
	if len(values) != len(weights) {
		return fmt.Errorf("%w: %d values, %d weights", errs.ErrLengthMismatch, len(values), len(weights))
	}
	if len(values) == 0 {
		return errs.ErrEmptyInput
	}

	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: values[%d] = %v", errs.ErrNonFiniteValue, i, v)
		}
	}
	total := 0.0
	for i, w := range weights {
		// !(w >= 0) also rejects NaN
		if !(w >= 0) || math.IsInf(w, 1) {
			return fmt.Errorf("%w: weights[%d] = %v", errs.ErrNegativeWeight, i, w)
		}
		total += w
	}
	// pool weights are partial sums of the input weights
	if math.IsInf(total, 1) {
		return fmt.Errorf("%w: total weight exceeds %v", errs.ErrWeightOverflow, math.MaxFloat64)
	}

	return nil
}
