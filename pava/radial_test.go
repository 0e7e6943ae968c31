package pava

import (
	"math"
	"testing"

	"github.com/arloliu/isotonic/errs"
	"github.com/arloliu/isotonic/internal/synth"
	"github.com/stretchr/testify/require"
)

func TestRegressRadial_Example(t *testing.T) {
	values := []float64{3, 5, 1, 2, 0, 4}
	weights := []float64{1, 1, 1, 1, 1, 1}

	r, err := RegressRadial(values, weights, 3, Increasing)
	require.NoError(t, err)
	require.Equal(t, []float64{4, 4, 1, 1, 1, 4}, r.Values)
	require.Equal(t, []float64{2, 2, 1, 2, 2, 1}, r.Weights)
}

func TestRegressRadial_Peak(t *testing.T) {
	values := []float64{0, 2, 1, 5, 3, 4}
	weights := []float64{1, 1, 1, 1, 1, 1}

	// Left arm rises (Increasing), right arm falls (Decreasing).
	r, err := RegressRadial(values, weights, 3, Decreasing)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1.5, 1.5, 5, 3.5, 3.5}, r.Values)
	require.Equal(t, []float64{1, 2, 2, 1, 2, 2}, r.Weights)
}

func TestRegressRadial_NoCrossBoundarySmoothing(t *testing.T) {
	values := []float64{1, 2, 0, 3}
	weights := []float64{1, 1, 1, 1}

	r, err := RegressRadial(values, weights, 2, Increasing)
	require.NoError(t, err)
	// The left arm pools to 1.5 and the right arm starts at 0: the jump at
	// the boundary is kept.
	require.Equal(t, []float64{1.5, 1.5, 0, 3}, r.Values)
	require.Equal(t, []float64{2, 2, 1, 1}, r.Weights)
}

func TestRegressRadial_CenterBelongsToRightArm(t *testing.T) {
	// With center 1 the 3 at index 1 is fitted with the right arm and pools
	// with the following 2 and 1; it never joins the 9 at index 0.
	values := []float64{9, 3, 2, 1}
	weights := []float64{1, 1, 1, 1}

	pools, err := RadialPools(values, weights, 1, Increasing)
	require.NoError(t, err)
	require.Equal(t, []Pool{
		{Start: 0, End: 1, Value: 9, Weight: 1},
		{Start: 1, End: 4, Value: 2, Weight: 3},
	}, pools)
}

func TestRegressRadial_Degenerate(t *testing.T) {
	values, weights := synth.NoisyLine(11, 60, synth.Valley(25))

	for _, dir := range []Direction{Increasing, Decreasing} {
		t.Run(dir.String(), func(t *testing.T) {
			atStart, err := RegressRadial(values, weights, 0, dir)
			require.NoError(t, err)
			plain, err := Regress(values, weights, dir)
			require.NoError(t, err)
			require.Equal(t, plain, atStart)

			atEnd, err := RegressRadial(values, weights, len(values), dir)
			require.NoError(t, err)
			complement, err := Regress(values, weights, dir.Complement())
			require.NoError(t, err)
			require.Equal(t, complement, atEnd)
		})
	}
}

func TestRegressRadial_Shape(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		center := 30 + int(seed)*5
		values, _ := synth.NoisyLine(seed, 100, synth.Valley(center))
		weights := synth.RandomWeights(seed, 100, 2)

		r, err := RegressRadial(values, weights, center, Increasing)
		require.NoError(t, err)
		require.Equal(t, len(values), r.Len())

		for i := 1; i < center; i++ {
			require.GreaterOrEqual(t, r.Values[i-1], r.Values[i], "left arm must not increase at %d", i)
		}
		for i := center + 1; i < len(values); i++ {
			require.LessOrEqual(t, r.Values[i-1], r.Values[i], "right arm must not decrease at %d", i)
		}

		// Each arm is exactly an independent fit of its segment.
		left, err := Regress(values[:center], weights[:center], Decreasing)
		require.NoError(t, err)
		right, err := Regress(values[center:], weights[center:], Increasing)
		require.NoError(t, err)
		require.Equal(t, append(left.Values, right.Values...), r.Values)
		require.Equal(t, append(left.Weights, right.Weights...), r.Weights)

		pools, err := RadialPools(values, weights, center, Increasing)
		require.NoError(t, err)
		require.NoError(t, ValidatePools(pools))
		require.Equal(t, r, Expand(pools))
	}
}

func TestRegressRadial_Errors(t *testing.T) {
	values := []float64{1, 2, 3}
	weights := []float64{1, 1, 1}

	_, err := RegressRadial(values, weights, -1, Increasing)
	require.ErrorIs(t, err, errs.ErrCenterOutOfRange)
	_, err = RegressRadial(values, weights, 4, Increasing)
	require.ErrorIs(t, err, errs.ErrCenterOutOfRange)

	_, err = RegressRadial(values, weights[:2], 1, Increasing)
	require.ErrorIs(t, err, errs.ErrLengthMismatch)
	_, err = RegressRadial(nil, nil, 0, Increasing)
	require.ErrorIs(t, err, errs.ErrEmptyInput)
	_, err = RegressRadial(values, []float64{1, math.MaxFloat64, math.MaxFloat64}, 1, Increasing)
	require.ErrorIs(t, err, errs.ErrWeightOverflow)
	_, err = RegressRadial(values, weights, 1, Direction(0))
	require.ErrorIs(t, err, errs.ErrInvalidDirection)

	require.Panics(t, func() { MustRegressRadial(values, weights, 5, Increasing) })
	require.NotPanics(t, func() { MustRegressRadial(values, weights, 3, Increasing) })
}
