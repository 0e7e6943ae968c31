// Package errs defines the sentinel errors returned by isotonic packages.
//
// Callers match them with errors.Is; the returned errors are usually wrapped
// with context such as the offending index or the observed lengths.
package errs

import "errors"

// Input validation errors.
var (
	// ErrEmptyInput is returned when a regression is requested on zero observations.
	ErrEmptyInput = errors.New("isotonic: empty input")
	// ErrLengthMismatch is returned when values and weights differ in length.
	ErrLengthMismatch = errors.New("isotonic: values and weights must be equal-sized")
	// ErrNegativeWeight is returned when a weight is negative, NaN or infinite.
	ErrNegativeWeight = errors.New("isotonic: weights must be finite and non-negative")
	// ErrWeightOverflow is returned when the weights are finite but their sum is not.
	ErrWeightOverflow = errors.New("isotonic: total weight overflows float64")
	// ErrNonFiniteValue is returned when a value is NaN or infinite.
	ErrNonFiniteValue = errors.New("isotonic: values must be finite")
	// ErrInvalidDirection is returned for a direction other than Increasing or Decreasing.
	ErrInvalidDirection = errors.New("isotonic: invalid direction")
	// ErrCenterOutOfRange is returned when a radial center lies outside [0, len(values)].
	ErrCenterOutOfRange = errors.New("isotonic: center index out of range")
	// ErrInvalidPools is returned when a pool list does not partition [0, n) contiguously.
	ErrInvalidPools = errors.New("isotonic: pools must be contiguous and non-empty")
)

// Model codec errors.
var (
	ErrInvalidHeaderSize  = errors.New("model: invalid header size")
	ErrInvalidMagicNumber = errors.New("model: invalid magic number")
	ErrUnsupportedVersion = errors.New("model: unsupported version")
	ErrChecksumMismatch   = errors.New("model: payload checksum mismatch")
	ErrInvalidCompression = errors.New("model: invalid compression type")
	ErrCorruptPayload     = errors.New("model: corrupt payload")
)

// ErrModelNotFound is returned by the model store for an unknown model ID.
var ErrModelNotFound = errors.New("store: model not found")

// ErrInvariantViolation is returned by diag.Verify when a regression breaks
// one of the isotonic invariants.
var ErrInvariantViolation = errors.New("diag: regression invariant violated")
