package compress

import (
	"errors"
	"sync"

	"github.com/arloliu/isotonic/format"
	"github.com/pierrec/lz4/v4"
)

// lz4MaxDecompressedSize bounds the buffer growth in Decompress.
const lz4MaxDecompressedSize = 128 * 1024 * 1024

var lz4CompressorPool = sync.Pool{
	New: func() any { return &lz4.Compressor{} },
}

// LZ4Compressor compresses payloads with the LZ4 block format.
type LZ4Compressor struct{}

var _ Codec = LZ4Compressor{}

// NewLZ4Compressor creates an LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Type returns format.CompressionLZ4.
func (LZ4Compressor) Type() format.CompressionType { return format.CompressionLZ4 }

// Compress encodes data as one LZ4 block.
func (LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Decompress decodes an LZ4 block of at most lz4MaxDecompressedSize bytes.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	out, err := c.DecompressLimit(data, lz4MaxDecompressedSize)
	if errors.Is(err, ErrSizeLimit) {
		return nil, lz4.ErrInvalidSourceShortBuffer
	}

	return out, err
}

// DecompressLimit decodes an LZ4 block of at most limit bytes.
//
// The block format does not record the original size, so the output buffer
// starts at four times the input and doubles on short-buffer errors until it
// reaches limit.
func (LZ4Compressor) DecompressLimit(data []byte, limit int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size := min(len(data)*4, limit)
	for {
		buf := make([]byte, size)
		n, err := lz4.UncompressBlock(data, buf)
		if err == nil {
			return buf[:n], nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			return nil, err
		}
		if size >= limit {
			return nil, sizeLimitError(limit)
		}
		size = min(size*2, limit)
	}
}
