package compress

import "github.com/arloliu/isotonic/format"

// NoOpCompressor passes payloads through unchanged.
//
// Compress and Decompress return the input slice itself, without copying.
type NoOpCompressor struct{}

var _ Codec = NoOpCompressor{}

// NewNoOpCompressor creates a pass-through codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Type returns format.CompressionNone.
func (NoOpCompressor) Type() format.CompressionType { return format.CompressionNone }

// Compress returns data unchanged.
func (NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data unchanged.
func (NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}

// DecompressLimit returns data unchanged if it fits in limit bytes.
func (NoOpCompressor) DecompressLimit(data []byte, limit int) ([]byte, error) {
	if len(data) > limit {
		return nil, sizeLimitError(limit)
	}

	return data, nil
}
