package model

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/isotonic/endian"
	"github.com/arloliu/isotonic/errs"
	"github.com/arloliu/isotonic/format"
	"github.com/arloliu/isotonic/pava"
	"github.com/google/uuid"
)

const (
	// HeaderSize is the fixed size of the blob header in bytes.
	HeaderSize = 48
	// PoolRecordSize is the size of one pool record in the decompressed payload.
	PoolRecordSize = 20

	// Version is the current blob format version.
	Version = 1

	MagicModelV1Opt = 0xE510 // magic number in bits 4-15 of the options field
	MagicNumberMask = 0xFFF0 // mask for the magic number
	EndiannessMask  = 0x0002 // bit 1: 0 = little-endian, 1 = big-endian
)

// Header is the fixed-size section at the start of a model blob.
type Header struct {
	// Options packs the magic number and the endianness bit.
	Options uint16 // byte offset 0-1
	// Version is the format version.
	Version uint8 // byte offset 2
	// Compression is the payload codec.
	Compression format.CompressionType // byte offset 3
	// Direction is the fit direction (right arm for radial fits).
	Direction pava.Direction // byte offset 4
	// Length is the number of fitted observations.
	Length uint32 // byte offset 8-11
	// PoolCount is the number of pool records in the payload.
	PoolCount uint32 // byte offset 12-15
	// Center is the radial split index, -1 for plain fits.
	Center int32 // byte offset 16-19
	// PayloadLength is the stored (possibly compressed) payload size.
	PayloadLength uint32 // byte offset 20-23
	// Checksum is the xxHash64 of the stored payload.
	Checksum uint64 // byte offset 24-31
	// ID identifies the model.
	ID uuid.UUID // byte offset 32-47
}

// newHeader creates a header with the magic number and current version set.
func newHeader() Header {
	return Header{
		Options:     MagicModelV1Opt,
		Version:     Version,
		Compression: format.CompressionNone,
	}
}

// IsBigEndian reports whether the header and payload fields are big-endian.
func (h *Header) IsBigEndian() bool {
	return h.Options&EndiannessMask != 0
}

// setBigEndian selects the byte order of all fields after the options.
func (h *Header) setBigEndian(big bool) {
	if big {
		h.Options |= EndiannessMask
	} else {
		h.Options &^= EndiannessMask
	}
}

// Engine returns the byte order engine selected by the options.
func (h *Header) Engine() endian.EndianEngine {
	if h.IsBigEndian() {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// Bytes serializes the header.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	engine := h.Engine()

	binary.LittleEndian.PutUint16(b[0:2], h.Options)
	b[2] = h.Version
	b[3] = uint8(h.Compression)
	b[4] = uint8(h.Direction)
	engine.PutUint32(b[8:12], h.Length)
	engine.PutUint32(b[12:16], h.PoolCount)
	engine.PutUint32(b[16:20], uint32(h.Center))
	engine.PutUint32(b[20:24], h.PayloadLength)
	engine.PutUint64(b[24:32], h.Checksum)
	copy(b[32:48], h.ID[:])

	return b
}

// Parse parses and validates the header from data.
//
// Parameters:
//   - data: Blob bytes, at least HeaderSize long
//
// Returns:
//   - error: errs.ErrInvalidHeaderSize, errs.ErrInvalidMagicNumber,
//     errs.ErrUnsupportedVersion, errs.ErrInvalidCompression or
//     errs.ErrInvalidDirection
func (h *Header) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	// The options field is always little-endian; it selects the order of the rest.
	h.Options = binary.LittleEndian.Uint16(data[0:2])
	if h.Options&MagicNumberMask != MagicModelV1Opt {
		return fmt.Errorf("%w: 0x%04x", errs.ErrInvalidMagicNumber, h.Options&MagicNumberMask)
	}

	h.Version = data[2]
	if h.Version != Version {
		return fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, h.Version)
	}

	h.Compression = format.CompressionType(data[3])
	if !h.Compression.Valid() {
		return fmt.Errorf("%w: 0x%02x", errs.ErrInvalidCompression, data[3])
	}

	h.Direction = pava.Direction(data[4])
	if !h.Direction.Valid() {
		return fmt.Errorf("%w: %d", errs.ErrInvalidDirection, data[4])
	}

	engine := h.Engine()
	h.Length = engine.Uint32(data[8:12])
	h.PoolCount = engine.Uint32(data[12:16])
	h.Center = int32(engine.Uint32(data[16:20]))
	h.PayloadLength = engine.Uint32(data[20:24])
	h.Checksum = engine.Uint64(data[24:32])
	copy(h.ID[:], data[32:48])

	return nil
}

// ParseHeader parses the header at the start of data.
func ParseHeader(data []byte) (Header, error) {
	var h Header
	if err := h.Parse(data); err != nil {
		return Header{}, err
	}

	return h, nil
}
