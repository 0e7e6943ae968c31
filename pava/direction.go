package pava

import (
	"fmt"
	"strings"

	"github.com/arloliu/isotonic/errs"
)

// Direction is the order a fitted sequence must respect.
//
// Only Increasing and Decreasing are valid. The zero value is deliberately
// invalid so that an unset direction is caught by validation instead of
// silently selecting one of the two orders.
type Direction uint8

const (
	// Increasing requires y_i <= y_{i+1}.
	Increasing Direction = iota + 1
	// Decreasing requires y_i >= y_{i+1}.
	Decreasing
)

// Valid reports whether d is Increasing or Decreasing.
func (d Direction) Valid() bool {
	return d == Increasing || d == Decreasing
}

// Complement returns the opposite direction. Invalid directions are returned unchanged.
func (d Direction) Complement() Direction {
	switch d {
	case Increasing:
		return Decreasing
	case Decreasing:
		return Increasing
	default:
		return d
	}
}

// Violates reports whether two adjacent pooled values break the order.
//
// The comparison is strict: equal neighbours never violate, so they are not merged.
func (d Direction) Violates(earlier, later float64) bool {
	switch d {
	case Increasing:
		return earlier > later
	case Decreasing:
		return earlier < later
	default:
		return false
	}
}

// Holds reports whether earlier and later satisfy the order non-strictly.
func (d Direction) Holds(earlier, later float64) bool {
	switch d {
	case Increasing:
		return earlier <= later
	case Decreasing:
		return earlier >= later
	default:
		return false
	}
}

// String returns "increasing", "decreasing" or "invalid".
func (d Direction) String() string {
	switch d {
	case Increasing:
		return "increasing"
	case Decreasing:
		return "decreasing"
	default:
		return "invalid"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidDirection, uint8(d))
	}

	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed

	return nil
}

// ParseDirection parses a direction name.
//
// Accepted names (case-insensitive):
//   - "increasing", "inc", "asc", "ascending", "up"
//   - "decreasing", "dec", "desc", "descending", "down"
//
// Returns errs.ErrInvalidDirection for anything else.
func ParseDirection(name string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "increasing", "inc", "asc", "ascending", "up":
		return Increasing, nil
	case "decreasing", "dec", "desc", "descending", "down":
		return Decreasing, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidDirection, name)
	}
}
