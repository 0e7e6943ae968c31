// Package isotonic fits weighted isotonic regressions with the
// Pool-Adjacent-Violators Algorithm and persists them as compact model blobs.
//
// The result of an isotonic fit is the sequence closest to the input in
// weighted least squares that never decreases (Increasing) or never
// increases (Decreasing). A radial fit splits the input at a center index and
// fits the two arms in opposite directions, giving a valley or a peak.
//
// # Core Features
//
//   - Amortized O(n) single-pass PAVA with a pooled merge stack
//   - Radial (unimodal) fits around a center index
//   - Typed validation errors for every precondition (package errs)
//   - Binary model blobs with optional compression (None, Zstd, S2, LZ4)
//     and xxHash64 integrity checks
//   - Fit diagnostics (package diag) and a fingerprint-keyed fit cache
//     (package memo)
//
// # Basic Usage
//
// Fitting a series:
//
//	import "github.com/arloliu/isotonic"
//
//	r, err := isotonic.Regress(
//	    []float64{1, 3, 2},
//	    []float64{1, 1, 1},
//	    isotonic.Increasing,
//	)
//	// r.Values == [1 2.5 2.5], r.Weights == [1 2 2]
//
// Persisting a radial fit:
//
//	blob, err := isotonic.EncodeFit(values, weights, isotonic.Increasing, 50,
//	    model.WithCompression(format.CompressionZstd))
//	m, err := isotonic.Decode(blob)
//	y, ok := m.Predict(42)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the pava and
// model packages. For fitter options, pool-level access and encoder settings
// use those packages directly.
package isotonic

import (
	"github.com/arloliu/isotonic/model"
	"github.com/arloliu/isotonic/pava"
)

// Direction is the monotonicity constraint of a fit.
type Direction = pava.Direction

const (
	// Increasing constrains fitted values to be non-decreasing.
	Increasing = pava.Increasing
	// Decreasing constrains fitted values to be non-increasing.
	Decreasing = pava.Decreasing
)

// Regression is a fitted sequence of values and pooled weights.
type Regression = pava.Regression

// Regress fits values and weights in direction dir.
//
// See pava.Regress for the preconditions and their errors.
func Regress(values, weights []float64, dir Direction) (Regression, error) {
	return pava.Regress(values, weights, dir)
}

// RegressRadial fits values[:center] in the complement of dir and
// values[center:] in dir.
//
// See pava.RegressRadial for the preconditions and their errors.
func RegressRadial(values, weights []float64, center int, dir Direction) (Regression, error) {
	return pava.RegressRadial(values, weights, center, dir)
}

// EncodeFit fits values and weights and encodes the result as a model blob.
//
// A negative center produces a plain fit; otherwise the fit is radial.
//
// Parameters:
//   - values, weights: The series to fit
//   - dir: Fit direction (right-arm direction for radial fits)
//   - center: Radial split index, or a negative value for a plain fit
//   - opts: Encoder options such as model.WithCompression
//
// Returns:
//   - []byte: The model blob
//   - error: Fit validation or encoding errors
func EncodeFit(values, weights []float64, dir Direction, center int, opts ...model.EncoderOption) ([]byte, error) {
	m, err := model.FromFit(values, weights, dir, center)
	if err != nil {
		return nil, err
	}

	return model.Encode(m, opts...)
}

// Encode serializes a fitted model. See model.Encode.
func Encode(m model.Model, opts ...model.EncoderOption) ([]byte, error) {
	return model.Encode(m, opts...)
}

// Decode parses a model blob. See model.Decode.
func Decode(data []byte) (model.Model, error) {
	return model.Decode(data)
}

// Fingerprint returns the xxHash64 digest of a fit request.
func Fingerprint(values, weights []float64, dir Direction, center int) uint64 {
	return model.Fingerprint(values, weights, dir, center)
}
