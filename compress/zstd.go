package compress

import (
	"fmt"
	"io"

	"github.com/arloliu/isotonic/format"
)

// ZstdCompressor compresses payloads with Zstandard.
//
// The implementation is selected at build time: pure Go klauspost/compress by
// default, or cgo libzstd via valyala/gozstd with the gozstd build tag. Both
// produce standard zstd frames and can read each other's output.
type ZstdCompressor struct{}

var _ Codec = ZstdCompressor{}

// NewZstdCompressor creates a Zstd codec with the default compression level.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// Type returns format.CompressionZstd.
func (ZstdCompressor) Type() format.CompressionType { return format.CompressionZstd }

// readLimited reads r to the end, failing once more than limit bytes arrive.
func readLimited(r io.Reader, limit int) ([]byte, error) {
	out, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if len(out) > limit {
		return nil, sizeLimitError(limit)
	}

	return out, nil
}
