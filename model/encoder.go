package model

import (
	"fmt"
	"math"

	"github.com/arloliu/isotonic/compress"
	"github.com/arloliu/isotonic/endian"
	"github.com/arloliu/isotonic/format"
	"github.com/arloliu/isotonic/internal/hash"
	"github.com/arloliu/isotonic/internal/options"
	"github.com/arloliu/isotonic/internal/pool"
	"github.com/google/uuid"
)

// EncoderConfig holds the settings of Encode.
type EncoderConfig struct {
	compression format.CompressionType
	bigEndian   bool
	id          uuid.UUID
}

// EncoderOption is a functional option for EncoderConfig.
type EncoderOption = options.Option[*EncoderConfig]

// WithCompression sets the payload codec (default format.CompressionNone).
func WithCompression(comp format.CompressionType) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if !comp.Valid() {
			return fmt.Errorf("invalid model compression: %s", comp)
		}
		c.compression = comp

		return nil
	})
}

// WithLittleEndian stores header and payload fields little-endian (default).
func WithLittleEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.bigEndian = false
	})
}

// WithBigEndian stores header and payload fields big-endian.
// It is only needed for interoperability with big-endian readers.
func WithBigEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.bigEndian = true
	})
}

// WithModelID overrides the ID stored in the blob.
func WithModelID(id uuid.UUID) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.id = id
	})
}

// Encode serializes m into a model blob.
//
// Parameters:
//   - m: A valid model (see Model.Validate)
//   - opts: Encoder options
//
// Returns:
//   - []byte: The blob, header followed by the stored payload
//   - error: Validation, option or compression errors
func Encode(m Model, opts ...EncoderOption) ([]byte, error) {
	cfg := EncoderConfig{compression: format.CompressionNone, id: m.ID}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if uint64(m.Len()) > math.MaxUint32 || m.Center > math.MaxInt32 {
		return nil, fmt.Errorf("model too large to encode: %d observations", m.Len())
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}

	h := newHeader()
	h.setBigEndian(cfg.bigEndian)
	h.Compression = cfg.compression
	h.Direction = m.Direction
	h.Length = uint32(m.Len())
	h.PoolCount = uint32(len(m.Pools))
	h.Center = int32(m.Center)
	h.ID = cfg.id

	buf := pool.GetModelBuffer()
	defer pool.PutModelBuffer(buf)

	buf.Grow(len(m.Pools) * PoolRecordSize)
	buf.B = appendPools(h.Engine(), buf.B, m)

	stored, err := codec.Compress(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("compress model payload: %w", err)
	}

	h.PayloadLength = uint32(len(stored))
	h.Checksum = hash.Sum(stored)

	out := make([]byte, 0, HeaderSize+len(stored))
	out = append(out, h.Bytes()...)
	out = append(out, stored...)

	return out, nil
}

func appendPools(engine endian.EndianEngine, b []byte, m Model) []byte {
	for _, p := range m.Pools {
		b = engine.AppendUint32(b, uint32(p.Len()))
		b = endian.AppendFloat64(engine, b, p.Value)
		b = endian.AppendFloat64(engine, b, p.Weight)
	}

	return b
}
