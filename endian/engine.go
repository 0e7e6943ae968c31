// Package endian provides the byte order engines used by the model blob codec.
//
// An EndianEngine combines binary.ByteOrder (fixed-offset reads and writes)
// with binary.AppendByteOrder (append-style writes), so encoders can append
// fields without scratch buffers:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, uint32(pool.Len()))
//	buf = engine.AppendUint64(buf, math.Float64bits(pool.Value))
//
// Engines are the stateless binary.LittleEndian and binary.BigEndian values
// and are safe for concurrent use.
package endian

import (
	"encoding/binary"
	"math"
)

// EndianEngine is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine, the default for model blobs.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// IsBigEndian reports whether engine writes the most significant byte first.
func IsBigEndian(engine EndianEngine) bool {
	return engine == EndianEngine(binary.BigEndian)
}

// AppendFloat64 appends the IEEE 754 bits of v.
func AppendFloat64(engine EndianEngine, buf []byte, v float64) []byte {
	return engine.AppendUint64(buf, math.Float64bits(v))
}

// Float64 reads an IEEE 754 float64 from the first 8 bytes of b.
func Float64(engine EndianEngine, b []byte) float64 {
	return math.Float64frombits(engine.Uint64(b))
}
