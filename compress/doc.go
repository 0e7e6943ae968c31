// Package compress provides the payload codecs of the model blob format.
//
// A model payload is a flat run of fixed-size pool records (length, value,
// weight). Long fits produce many pools with repetitive weights and slowly
// drifting values, which general-purpose compressors shrink well.
//
// Supported algorithms (see format.CompressionType):
//
//   - None: payload stored unchanged
//   - Zstd: best ratio; pure Go (klauspost/compress/zstd) by default, cgo
//     libzstd (valyala/gozstd) when built with the gozstd tag
//   - S2: fast with a good ratio (klauspost/compress/s2)
//   - LZ4: fastest decompression (pierrec/lz4/v4 block format)
//
// Codecs are stateless values; pooled encoders and decoders make them safe
// and cheap to share across goroutines.
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(payload)
package compress
