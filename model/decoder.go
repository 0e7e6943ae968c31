package model

import (
	"fmt"

	"github.com/arloliu/isotonic/compress"
	"github.com/arloliu/isotonic/endian"
	"github.com/arloliu/isotonic/errs"
	"github.com/arloliu/isotonic/internal/hash"
	"github.com/arloliu/isotonic/pava"
)

// Decode parses a model blob produced by Encode.
//
// The payload checksum is verified before decompression, decompression stops
// at the size implied by the header's pool count, and the decoded pools must
// partition [0, Length) exactly.
//
// Returns:
//   - Model: The decoded model
//   - error: Header errors (see Header.Parse), errs.ErrChecksumMismatch,
//     errs.ErrCorruptPayload or errs.ErrCenterOutOfRange
func Decode(data []byte) (Model, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return Model{}, err
	}

	end := HeaderSize + int(h.PayloadLength)
	if len(data) < end {
		return Model{}, fmt.Errorf("%w: payload truncated, %d of %d bytes",
			errs.ErrCorruptPayload, len(data)-HeaderSize, h.PayloadLength)
	}
	stored := data[HeaderSize:end]

	if sum := hash.Sum(stored); sum != h.Checksum {
		return Model{}, fmt.Errorf("%w: got 0x%016x, header 0x%016x", errs.ErrChecksumMismatch, sum, h.Checksum)
	}

	// every pool covers at least one observation
	if h.PoolCount > h.Length {
		return Model{}, fmt.Errorf("%w: %d pools for %d observations", errs.ErrCorruptPayload, h.PoolCount, h.Length)
	}

	codec, err := compress.GetCodec(h.Compression)
	if err != nil {
		return Model{}, err
	}
	payload, err := codec.DecompressLimit(stored, int(h.PoolCount)*PoolRecordSize)
	if err != nil {
		return Model{}, fmt.Errorf("%w: %w", errs.ErrCorruptPayload, err)
	}

	pools, err := parsePools(h, payload)
	if err != nil {
		return Model{}, err
	}

	m := Model{
		ID:        h.ID,
		Direction: h.Direction,
		Center:    int(h.Center),
		Pools:     pools,
	}
	if m.Center < NoCenter || m.Center > m.Len() {
		return Model{}, fmt.Errorf("%w: center %d, length %d", errs.ErrCenterOutOfRange, m.Center, m.Len())
	}

	return m, nil
}

func parsePools(h Header, payload []byte) ([]pava.Pool, error) {
	if len(payload) != int(h.PoolCount)*PoolRecordSize {
		return nil, fmt.Errorf("%w: %d payload bytes for %d pools", errs.ErrCorruptPayload, len(payload), h.PoolCount)
	}
	if h.PoolCount == 0 {
		return nil, fmt.Errorf("%w: no pools", errs.ErrCorruptPayload)
	}

	engine := h.Engine()
	pools := make([]pava.Pool, h.PoolCount)
	start := 0
	for k := range pools {
		rec := payload[k*PoolRecordSize:]
		n := int(engine.Uint32(rec[0:4]))
		if n == 0 {
			return nil, fmt.Errorf("%w: pool %d is empty", errs.ErrCorruptPayload, k)
		}
		pools[k] = pava.Pool{
			Start:  start,
			End:    start + n,
			Value:  endian.Float64(engine, rec[4:12]),
			Weight: endian.Float64(engine, rec[12:20]),
		}
		start += n
	}

	if start != int(h.Length) {
		return nil, fmt.Errorf("%w: pools cover %d observations, header says %d", errs.ErrCorruptPayload, start, h.Length)
	}

	return pools, nil
}
