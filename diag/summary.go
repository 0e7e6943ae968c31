package diag

import (
	"fmt"
	"math"

	"github.com/arloliu/isotonic/errs"
	"github.com/arloliu/isotonic/pava"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds goodness-of-fit statistics of a regression.
type Summary struct {
	Points      int     `json:"points" yaml:"points"`
	Pools       int     `json:"pools" yaml:"pools"`
	TotalWeight float64 `json:"total_weight" yaml:"total_weight"`
	// WeightedSSE is sum_i w_i * (y_i - x_i)^2.
	WeightedSSE  float64 `json:"weighted_sse" yaml:"weighted_sse"`
	WeightedRMSE float64 `json:"weighted_rmse" yaml:"weighted_rmse"`
	// RSquared is 1 - SSE/SST with weighted sums; 1 when the input has no weighted variance.
	RSquared float64 `json:"r_squared" yaml:"r_squared"`
	// ResidualMedian and ResidualP90 are taken over absolute residuals.
	ResidualMedian float64 `json:"residual_median" yaml:"residual_median"`
	ResidualP90    float64 `json:"residual_p90" yaml:"residual_p90"`
}

// Summarize computes fit statistics of r against the input it was fitted to.
//
// Parameters:
//   - values: The observations passed to the fit
//   - weights: The weights passed to the fit
//   - r: The fitted regression
//
// Returns:
//   - Summary: The statistics
//   - error: errs.ErrEmptyInput or errs.ErrLengthMismatch
func Summarize(values, weights []float64, r pava.Regression) (Summary, error) {
	if err := checkLengths(values, weights, r); err != nil {
		return Summary{}, err
	}

	n := len(values)
	residuals := make([]float64, n)
	floats.SubTo(residuals, r.Values, values)

	squared := make([]float64, n)
	floats.MulTo(squared, residuals, residuals)

	s := Summary{
		Points:      n,
		Pools:       PoolCount(r),
		TotalWeight: floats.Sum(weights),
		WeightedSSE: floats.Dot(weights, squared),
		RSquared:    1,
	}

	if s.TotalWeight > 0 {
		s.WeightedRMSE = math.Sqrt(s.WeightedSSE / s.TotalWeight)

		mean := stat.Mean(values, weights)
		centered := make([]float64, n)
		copy(centered, values)
		floats.AddConst(-mean, centered)
		floats.Mul(centered, centered)

		if sst := floats.Dot(weights, centered); sst > 0 {
			s.RSquared = 1 - s.WeightedSSE/sst
		}
	}

	abs := make(stats.Float64Data, n)
	for i, e := range residuals {
		abs[i] = math.Abs(e)
	}

	var err error
	if s.ResidualMedian, err = stats.Median(abs); err != nil {
		return Summary{}, fmt.Errorf("residual median: %w", err)
	}
	if s.ResidualP90, err = stats.Percentile(abs, 90); err != nil {
		return Summary{}, fmt.Errorf("residual p90: %w", err)
	}

	return s, nil
}

// PoolCount counts maximal runs of equal (value, weight) pairs in r.
//
// Adjacent pools that happen to share both value and weight are counted once,
// so the result is a lower bound on the number of pools the engine produced.
func PoolCount(r pava.Regression) int {
	count := 0
	for i := range r.Values {
		if i == 0 || r.Values[i] != r.Values[i-1] || r.Weights[i] != r.Weights[i-1] {
			count++
		}
	}

	return count
}

func checkLengths(values, weights []float64, r pava.Regression) error {
	if len(values) != len(weights) {
		return fmt.Errorf("%w: %d values, %d weights", errs.ErrLengthMismatch, len(values), len(weights))
	}
	if len(r.Values) != len(values) || len(r.Weights) != len(values) {
		return fmt.Errorf("%w: regression has %d values and %d weights for %d observations",
			errs.ErrLengthMismatch, len(r.Values), len(r.Weights), len(values))
	}
	if len(values) == 0 {
		return errs.ErrEmptyInput
	}

	return nil
}
