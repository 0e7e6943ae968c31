package pava

import (
	"fmt"

	"github.com/arloliu/isotonic/errs"
)

// Regression is the per-position result of an isotonic fit.
//
// Both slices have the length of the input and are indexed like it. Every
// position inside the same pool carries that pool's aggregated value and
// weight. A Regression is returned by value and never mutated afterwards.
type Regression struct {
	// Weights holds the aggregated weight of the pool each position belongs to,
	// i.e. the number of points in the pool if all weights were one.
	Weights []float64
	// Values holds the aggregated (weighted mean) value of each position's pool.
	Values []float64
}

// Len returns the number of positions in the regression.
func (r Regression) Len() int {
	return len(r.Values)
}

// Clone returns a deep copy of r.
func (r Regression) Clone() Regression {
	return Regression{
		Weights: append([]float64(nil), r.Weights...),
		Values:  append([]float64(nil), r.Values...),
	}
}

// Pool is a maximal run of observations merged into one block.
type Pool struct {
	// Start is the first input index covered by the pool.
	Start int
	// End is one past the last input index covered by the pool.
	End int
	// Value is the weighted mean of the pooled observations.
	Value float64
	// Weight is the sum of the pooled observations' weights.
	Weight float64
}

// Len returns the number of observations in the pool.
func (p Pool) Len() int {
	return p.End - p.Start
}

// Expand writes each pool's value and weight to every position it covers.
//
// The pools must partition [0, n) in order (see ValidatePools); n is taken from
// the End of the last pool. An empty pool list yields an empty Regression.
func Expand(pools []Pool) Regression {
	if len(pools) == 0 {
		return Regression{Weights: []float64{}, Values: []float64{}}
	}

	n := pools[len(pools)-1].End
	r := Regression{
		Weights: make([]float64, n),
		Values:  make([]float64, n),
	}
	for _, p := range pools {
		for i := p.Start; i < p.End; i++ {
			r.Weights[i] = p.Weight
			r.Values[i] = p.Value
		}
	}

	return r
}

// ValidatePools checks that pools are non-empty and partition [0, n)
// contiguously, in order.
//
// Returns errs.ErrInvalidPools (wrapped with the offending pool index) otherwise.
func ValidatePools(pools []Pool) error {
	next := 0
	for k, p := range pools {
		if p.Start != next {
			return fmt.Errorf("%w: pool %d starts at %d, want %d", errs.ErrInvalidPools, k, p.Start, next)
		}
		if p.End <= p.Start {
			return fmt.Errorf("%w: pool %d has empty range [%d, %d)", errs.ErrInvalidPools, k, p.Start, p.End)
		}
		next = p.End
	}

	return nil
}
