package model

import (
	"fmt"
	"sort"

	"github.com/arloliu/isotonic/errs"
	"github.com/arloliu/isotonic/internal/hash"
	"github.com/arloliu/isotonic/pava"
	"github.com/google/uuid"
)

// NoCenter marks a plain (non-radial) model.
const NoCenter = -1

// Model is a fitted isotonic regression in pool form.
type Model struct {
	// ID identifies the model; FromFit assigns a random UUID.
	ID uuid.UUID
	// Direction is the fit direction, or the right-arm direction of a radial fit.
	Direction pava.Direction
	// Center is the radial split index, or NoCenter for a plain fit.
	Center int
	// Pools partitions [0, Len()) in order.
	Pools []pava.Pool
}

// FromFit fits values and weights and wraps the result in a Model.
//
// A negative center produces a plain fit; otherwise the fit is radial.
//
// Returns the validation errors of pava.Pools and pava.RadialPools.
func FromFit(values, weights []float64, dir pava.Direction, center int) (Model, error) {
	var (
		pools []pava.Pool
		err   error
	)
	if center < 0 {
		center = NoCenter
		pools, err = pava.Pools(values, weights, dir)
	} else {
		pools, err = pava.RadialPools(values, weights, center, dir)
	}
	if err != nil {
		return Model{}, err
	}

	return Model{
		ID:        uuid.New(),
		Direction: dir,
		Center:    center,
		Pools:     pools,
	}, nil
}

// FromFitter fits values and weights with f and wraps the result in a Model.
func FromFitter(f *pava.Fitter, values, weights []float64) (Model, error) {
	pools, err := f.FitPools(values, weights)
	if err != nil {
		return Model{}, err
	}

	return Model{
		ID:        uuid.New(),
		Direction: f.Direction(),
		Center:    f.Center(),
		Pools:     pools,
	}, nil
}

// Len returns the number of fitted observations.
func (m Model) Len() int {
	if len(m.Pools) == 0 {
		return 0
	}

	return m.Pools[len(m.Pools)-1].End
}

// Radial reports whether the model was fitted with a center split.
func (m Model) Radial() bool {
	return m.Center != NoCenter
}

// Regression expands the pools back to per-observation values and weights.
func (m Model) Regression() pava.Regression {
	return pava.Expand(m.Pools)
}

// Predict returns the fitted value at index, or false if index is out of range.
//
// The lookup is a binary search over pool boundaries: O(log pools).
func (m Model) Predict(index int) (float64, bool) {
	if index < 0 || index >= m.Len() {
		return 0, false
	}

	k := sort.Search(len(m.Pools), func(k int) bool { return m.Pools[k].End > index })

	return m.Pools[k].Value, true
}

// Validate checks that the model can be encoded and expanded.
func (m Model) Validate() error {
	if !m.Direction.Valid() {
		return fmt.Errorf("%w: %d", errs.ErrInvalidDirection, uint8(m.Direction))
	}
	if len(m.Pools) == 0 {
		return errs.ErrEmptyInput
	}
	if err := pava.ValidatePools(m.Pools); err != nil {
		return err
	}
	if m.Center != NoCenter && (m.Center < 0 || m.Center > m.Len()) {
		return fmt.Errorf("%w: center %d, length %d", errs.ErrCenterOutOfRange, m.Center, m.Len())
	}

	return nil
}

// Fingerprint digests a fit request with xxHash64.
//
// Two requests with the same fingerprint produce the same fit. A negative
// center is normalized to NoCenter.
func Fingerprint(values, weights []float64, dir pava.Direction, center int) uint64 {
	if center < 0 {
		center = NoCenter
	}

	return hash.Series(values, weights, uint8(dir), center)
}

// FitterFingerprint is Fingerprint for a fit made by f. Weights are ignored
// when f uses unit weights.
func FitterFingerprint(f *pava.Fitter, values, weights []float64) uint64 {
	if f.UnitWeights() {
		weights = nil
	}

	return Fingerprint(values, weights, f.Direction(), f.Center())
}
