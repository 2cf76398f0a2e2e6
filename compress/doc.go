// Package compress provides the codecs used to shrink recorded CAN traces.
//
// A trace payload is a long run of fixed-size frame records. Timestamps grow
// slowly, identifiers repeat, and most signal bytes change little between
// consecutive frames, so general-purpose block compressors do well on it.
//
// Supported algorithms:
//   - None (format.CompressionNone): payload stored as is
//   - Zstd (format.CompressionZstd): best ratio, moderate speed
//   - S2 (format.CompressionS2): balanced speed and ratio
//   - LZ4 (format.CompressionLZ4): fastest decompression
//
// Zstd uses the pure Go klauspost/compress implementation by default. Building
// with cgo enabled and the gozstd tag switches it to the libzstd binding from
// valyala/gozstd. Both produce standard zstd frames and can read each other's
// output.
//
// # Usage
//
//	codec, err := compress.CreateCodec(format.CompressionZstd, "trace payload")
//	if err != nil {
//	    return err
//	}
//
//	compressed, err := codec.Compress(payload)
//	...
//	original, err := codec.Decompress(compressed)
//
// # Thread Safety
//
// All codecs are stateless values backed by sync.Pool, and are safe for
// concurrent use.
package compress
