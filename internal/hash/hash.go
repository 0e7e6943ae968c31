// Package hash computes the xxHash64 digests used for blob checksums and
// input fingerprints.
package hash

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Sum computes the xxHash64 of data.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// String computes the xxHash64 of s.
func String(s string) uint64 {
	return xxhash.Sum64String(s)
}

// Series digests a fit request: the observation count, every value and weight
// bit pattern in order, and the two settings that change the result.
//
// Equal inputs always give equal digests; -0 and +0 hash differently, which
// only costs a cache miss.
func Series(values, weights []float64, direction uint8, center int) uint64 {
	d := xxhash.New()

	var scratch [8]byte
	writeUint64 := func(v uint64) {
		binary.LittleEndian.PutUint64(scratch[:], v)
		_, _ = d.Write(scratch[:])
	}

	writeUint64(uint64(len(values)))
	for _, v := range values {
		writeUint64(math.Float64bits(v))
	}
	writeUint64(uint64(len(weights)))
	for _, w := range weights {
		writeUint64(math.Float64bits(w))
	}
	writeUint64(uint64(direction))
	writeUint64(uint64(int64(center)))

	return d.Sum64()
}
