package pava

import (
	"fmt"

	"github.com/arloliu/isotonic/errs"
	"github.com/arloliu/isotonic/internal/options"
)

// noCenter marks a plain (non-radial) fitter.
const noCenter = -1

// FitterConfig holds the settings of a Fitter. It is configured through
// FitterOption values passed to NewFitter.
type FitterConfig struct {
	direction   Direction
	center      int
	unitWeights bool
}

// FitterOption is a functional option for FitterConfig.
type FitterOption = options.Option[*FitterConfig]

// WithDirection sets the fit direction (default Increasing). For radial
// fitters it is the direction of the right arm.
func WithDirection(dir Direction) FitterOption {
	return options.New(func(c *FitterConfig) error {
		if !dir.Valid() {
			return fmt.Errorf("%w: %d", errs.ErrInvalidDirection, uint8(dir))
		}
		c.direction = dir

		return nil
	})
}

// WithCenter makes the fitter radial, splitting inputs at center. A negative
// center restores a plain fit.
func WithCenter(center int) FitterOption {
	return options.NoError(func(c *FitterConfig) {
		if center < 0 {
			center = noCenter
		}
		c.center = center
	})
}

// WithUnitWeights ignores the weights passed to Fit and weighs every
// observation with 1.
func WithUnitWeights() FitterOption {
	return options.NoError(func(c *FitterConfig) {
		c.unitWeights = true
	})
}

// Fitter is a reusable, immutable fit configuration. It is safe for concurrent use.
type Fitter struct {
	cfg FitterConfig
}

// NewFitter creates a Fitter.
//
// Defaults: Increasing, no center (plain isotonic fit), caller-supplied weights.
//
// Example:
//
//	f, err := pava.NewFitter(pava.WithDirection(pava.Decreasing), pava.WithCenter(50))
//	if err != nil {
//	    return err
//	}
//	r, err := f.Fit(values, nil)
func NewFitter(opts ...FitterOption) (*Fitter, error) {
	cfg := FitterConfig{
		direction: Increasing,
		center:    noCenter,
	}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	return &Fitter{cfg: cfg}, nil
}

// Direction returns the configured direction.
func (f *Fitter) Direction() Direction {
	return f.cfg.direction
}

// Center returns the radial split index, or -1 for a plain fitter.
func (f *Fitter) Center() int {
	return f.cfg.center
}

// Radial reports whether the fitter splits its input.
func (f *Fitter) Radial() bool {
	return f.cfg.center != noCenter
}

// UnitWeights reports whether supplied weights are ignored.
func (f *Fitter) UnitWeights() bool {
	return f.cfg.unitWeights
}

// Fit fits values with the configured settings.
//
// A nil weights slice means unit weights. For a radial fitter the center must
// not exceed len(values).
func (f *Fitter) Fit(values, weights []float64) (Regression, error) {
	pools, err := f.FitPools(values, weights)
	if err != nil {
		return Regression{}, err
	}

	return Expand(pools), nil
}

// FitPools is Fit in pool form.
func (f *Fitter) FitPools(values, weights []float64) ([]Pool, error) {
	weights = f.resolveWeights(values, weights)
	if f.Radial() {
		return RadialPools(values, weights, f.cfg.center, f.cfg.direction)
	}

	return Pools(values, weights, f.cfg.direction)
}

func (f *Fitter) resolveWeights(values, weights []float64) []float64 {
	if weights != nil && !f.cfg.unitWeights {
		return weights
	}

	return UnitWeights(len(values))
}

// UnitWeights returns n weights of 1.
func UnitWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}

	return w
}
