package compress

import (
	"errors"
	"fmt"

	"github.com/arloliu/isotonic/format"
)

// Compressor compresses a complete payload.
//
// The returned slice is owned by the caller; the input is not modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload produced by the matching Compressor.
//
// It returns an error for corrupted input or input produced by a different
// algorithm.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
	// DecompressLimit is Decompress for untrusted input: it fails with
	// ErrSizeLimit rather than produce more than limit bytes, and never
	// allocates much beyond limit.
	DecompressLimit(data []byte, limit int) ([]byte, error)
}

// ErrSizeLimit is returned by DecompressLimit when the payload expands past the limit.
var ErrSizeLimit = errors.New("compress: decompressed size exceeds limit")

func sizeLimitError(limit int) error {
	return fmt.Errorf("%w of %d bytes", ErrSizeLimit, limit)
}

// Codec combines compression and decompression for one algorithm.
type Codec interface {
	Compressor
	Decompressor
	// Type returns the algorithm identifier stored in blob headers.
	Type() format.CompressionType
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the built-in codec for compressionType.
//
// Returns an error for unknown compression types.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s (0x%02x)", compressionType, uint8(compressionType))
}

// Ratio returns compressed/original size, or 0 for an empty original.
func Ratio(originalSize, compressedSize int) float64 {
	if originalSize == 0 {
		return 0
	}

	return float64(compressedSize) / float64(originalSize)
}
