package pool

import "sync"

// SlicePool recycles the backing arrays of []T values.
//
// The PAVA engine borrows its block stack from a SlicePool so repeated fits on
// similarly sized inputs stop allocating after warm-up. Slices whose capacity
// exceeds maxCap are dropped instead of pooled to avoid pinning memory after a
// single very large fit.
type SlicePool[T any] struct {
	pool   sync.Pool
	maxCap int
}

// NewSlicePool creates a pool for []T. A maxCap of zero or less keeps every slice.
func NewSlicePool[T any](maxCap int) *SlicePool[T] {
	return &SlicePool[T]{
		pool: sync.Pool{
			New: func() any { return &[]T{} },
		},
		maxCap: maxCap,
	}
}

// Get returns an empty slice with capacity for at least capHint elements.
//
// The caller must call the returned cleanup function once it no longer uses
// the slice, and must pass back the (possibly regrown) slice it ended up with.
//
// Parameters:
//   - capHint: Minimum capacity of the returned slice
//
// Returns:
//   - []T: A zero-length slice
//   - func([]T): Cleanup function returning the final slice to the pool
//
// Example:
//
//	stack, release := blocks.Get(len(values))
//	defer func() { release(stack) }()
//	stack = append(stack, first)
func (p *SlicePool[T]) Get(capHint int) ([]T, func([]T)) {
	ptr, _ := p.pool.Get().(*[]T)
	if ptr == nil {
		ptr = &[]T{}
	}

	s := (*ptr)[:0]
	if cap(s) < capHint {
		s = make([]T, 0, capHint)
	}

	return s, func(final []T) {
		if p.maxCap > 0 && cap(final) > p.maxCap {
			return
		}
		*ptr = final[:0]
		p.pool.Put(ptr)
	}
}
