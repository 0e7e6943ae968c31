package diag

import (
	"math"
	"testing"

	"github.com/arloliu/isotonic/errs"
	"github.com/arloliu/isotonic/internal/synth"
	"github.com/arloliu/isotonic/pava"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	values := []float64{1, 3, 2}
	weights := []float64{1, 1, 1}
	r := pava.MustRegress(values, weights, pava.Increasing)

	s, err := Summarize(values, weights, r)
	require.NoError(t, err)
	require.Equal(t, 3, s.Points)
	require.Equal(t, 2, s.Pools)
	require.InDelta(t, 3.0, s.TotalWeight, 1e-12)
	require.InDelta(t, 0.5, s.WeightedSSE, 1e-12)
	require.InDelta(t, math.Sqrt(0.5/3), s.WeightedRMSE, 1e-12)
	require.InDelta(t, 0.75, s.RSquared, 1e-12)
	require.InDelta(t, 0.5, s.ResidualMedian, 1e-12)
	require.InDelta(t, 0.5, s.ResidualP90, 1e-12)
}

func TestSummarize_PerfectFit(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		weights []float64
	}{
		{"constant", []float64{2, 2, 2}, []float64{1, 2, 3}},
		{"monotone", []float64{1, 2, 4, 8}, []float64{1, 1, 1, 1}},
		{"single", []float64{5}, []float64{2}},
		{"zero weights", []float64{3, 1}, []float64{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := pava.MustRegress(tt.values, tt.weights, pava.Increasing)

			s, err := Summarize(tt.values, tt.weights, r)
			require.NoError(t, err)
			require.Equal(t, len(tt.values), s.Points)
			require.InDelta(t, 1.0, s.RSquared, 1e-12)
			require.InDelta(t, 0.0, s.WeightedSSE, 1e-12)
			require.InDelta(t, 0.0, s.WeightedRMSE, 1e-12)
		})
	}
}

func TestSummarize_NoisyLine(t *testing.T) {
	values, weights := synth.NoisyLine(11, 1_000, synth.Rising)
	r := pava.MustRegress(values, weights, pava.Increasing)

	s, err := Summarize(values, weights, r)
	require.NoError(t, err)
	require.Greater(t, s.RSquared, 0.9)
	require.Less(t, s.Pools, s.Points)
	require.LessOrEqual(t, s.ResidualMedian, s.ResidualP90)
	require.Less(t, s.ResidualP90, 2*synth.Noise)
}

func TestSummarize_Errors(t *testing.T) {
	r := pava.Regression{Weights: []float64{1}, Values: []float64{1}}

	_, err := Summarize([]float64{1}, []float64{1, 1}, r)
	require.ErrorIs(t, err, errs.ErrLengthMismatch)

	_, err = Summarize([]float64{1, 2}, []float64{1, 1}, r)
	require.ErrorIs(t, err, errs.ErrLengthMismatch)

	_, err = Summarize(nil, nil, pava.Regression{})
	require.ErrorIs(t, err, errs.ErrEmptyInput)
}

func TestPoolCount(t *testing.T) {
	tests := []struct {
		name string
		r    pava.Regression
		want int
	}{
		{"empty", pava.Regression{}, 0},
		{"single", pava.Regression{Values: []float64{1}, Weights: []float64{1}}, 1},
		{"pooled", pava.Regression{Values: []float64{4, 4, 4}, Weights: []float64{2, 2, 1}}, 2},
		{"distinct", pava.Regression{Values: []float64{1, 2.5, 2.5}, Weights: []float64{1, 2, 2}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, PoolCount(tt.r))
		})
	}
}

func TestVerify_AcceptsEngineOutput(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		values, _ := synth.NoisyLine(seed, 300, synth.Falling)
		weights := synth.RandomWeights(seed, 300, 4)

		for _, dir := range []pava.Direction{pava.Increasing, pava.Decreasing} {
			r := pava.MustRegress(values, weights, dir)
			require.NoError(t, Verify(values, weights, r, dir), "seed %d, %s", seed, dir)
		}
	}
}

func TestVerify_RejectsViolations(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		weights []float64
		r       pava.Regression
	}{
		{
			name:    "order",
			values:  []float64{1, 3, 2},
			weights: []float64{1, 1, 1},
			r:       pava.Regression{Values: []float64{1, 3, 2}, Weights: []float64{1, 1, 1}},
		},
		{
			name:    "containment",
			values:  []float64{1, 3},
			weights: []float64{1, 1},
			r:       pava.Regression{Values: []float64{0, 0}, Weights: []float64{2, 2}},
		},
		{
			name:    "weight not conserved",
			values:  []float64{2, 2},
			weights: []float64{1, 1},
			r:       pava.Regression{Values: []float64{2, 2}, Weights: []float64{3, 3}},
		},
		{
			name:    "weight lost",
			values:  []float64{2},
			weights: []float64{1},
			r:       pava.Regression{Values: []float64{2}, Weights: []float64{0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Verify(tt.values, tt.weights, tt.r, pava.Increasing)
			require.ErrorIs(t, err, errs.ErrInvariantViolation)
		})
	}
}

func TestVerify_InputErrors(t *testing.T) {
	r := pava.Regression{Values: []float64{1}, Weights: []float64{1}}

	require.ErrorIs(t, Verify([]float64{1}, []float64{1}, r, 0), errs.ErrInvalidDirection)
	require.ErrorIs(t, Verify([]float64{1, 2}, []float64{1, 1}, r, pava.Increasing), errs.ErrLengthMismatch)
	require.ErrorIs(t, VerifyRadial([]float64{1}, []float64{1}, r, 2, pava.Increasing), errs.ErrCenterOutOfRange)
}

func TestVerifyRadial(t *testing.T) {
	values := []float64{3, 5, 1, 2, 0, 4}
	weights := pava.UnitWeights(len(values))
	r := pava.MustRegressRadial(values, weights, 3, pava.Increasing)

	require.NoError(t, VerifyRadial(values, weights, r, 3, pava.Increasing))
	require.ErrorIs(t, Verify(values, weights, r, pava.Increasing), errs.ErrInvariantViolation)

	err := VerifyRadial(values, weights, r, 3, pava.Decreasing)
	require.ErrorIs(t, err, errs.ErrInvariantViolation)
	require.Contains(t, err.Error(), "left arm")
}

func TestVerifyRadial_NoisyValley(t *testing.T) {
	for _, center := range []int{0, 1, 100, 199, 200} {
		values, weights := synth.NoisyLine(7, 200, synth.Valley(center))
		r := pava.MustRegressRadial(values, weights, center, pava.Increasing)
		require.NoError(t, VerifyRadial(values, weights, r, center, pava.Increasing), "center %d", center)
	}
}
