// Package model persists fitted isotonic regressions as compact binary blobs.
//
// A fit is stored in pool form: one record per merged block instead of one
// per observation, so a 100k-point fit that collapses into a few hundred
// pools costs a few kilobytes. The payload can be compressed with any codec
// from the compress package and is protected by an xxHash64 checksum.
//
// # Blob Layout
//
//	Header (48 bytes)
//	  0-1   options, always little-endian: magic in bits 4-15, bit 1 = big-endian payload
//	  2     format version
//	  3     compression type (format.CompressionType)
//	  4     direction (pava.Direction)
//	  5-7   reserved
//	  8-11  observation count
//	  12-15 pool count
//	  16-19 radial center (int32, -1 = plain fit)
//	  20-23 stored payload length
//	  24-31 xxHash64 of the stored payload
//	  32-47 model id (UUID)
//	Payload (compressed if requested)
//	  per pool: length uint32, value float64, weight float64
//
// # Usage
//
//	m, err := model.FromFit(values, weights, pava.Increasing, -1)
//	if err != nil {
//	    return err
//	}
//	data, err := model.Encode(m, model.WithCompression(format.CompressionZstd))
//	...
//	decoded, err := model.Decode(data)
//	fitted := decoded.Regression()
package model
