// Package synth generates reproducible noisy series for tests, benchmarks and demos.
package synth

import "math/rand/v2"

// Noise is the half-width of the uniform noise added to each point.
const Noise = 10.0

// Trend maps a position i in a series of length n to its noiseless value.
type Trend func(i, n int) float64

// Rising is a line with slope 0.5.
func Rising(i, _ int) float64 { return float64(i) * 0.5 }

// Falling is a line with slope -0.5 ending at 0.
func Falling(i, n int) float64 { return float64(n-i) * 0.5 }

// Valley falls with slope 0.5 toward center and rises after it.
func Valley(center int) Trend {
	return func(i, _ int) float64 {
		d := i - center
		if d < 0 {
			d = -d
		}

		return float64(d) * 0.5
	}
}

// NoisyLine returns n points trend(i, n) + U(-Noise, Noise) and unit weights.
// The same seed always yields the same series.
func NoisyLine(seed uint64, n int, trend Trend) (values, weights []float64) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	values = make([]float64, n)
	weights = make([]float64, n)
	for i := range values {
		values[i] = trend(i, n) + (rng.Float64()*2-1)*Noise
		weights[i] = 1
	}

	return values, weights
}

// RandomWeights returns n weights drawn uniformly from [0, maxWeight).
func RandomWeights(seed uint64, n int, maxWeight float64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed+1))

	w := make([]float64, n)
	for i := range w {
		w[i] = rng.Float64() * maxWeight
	}

	return w
}
