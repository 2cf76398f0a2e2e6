package compress

import (
	"fmt"

	"github.com/arloliu/canbits/errs"
	"github.com/arloliu/canbits/format"
)

// Compressor compresses a complete trace payload.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// The returned slice is owned by the caller unless documented otherwise by
	// the implementation. The input slice is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor.
//
// Example:
//
//	decompressor := NewZstdCompressor()
//	payload, err := decompressor.Decompress(compressed)
//	if err != nil {
//	    return fmt.Errorf("decompression failed: %w", err)
//	}
type Decompressor interface {
	// Decompress decompresses the input data and returns the original result.
	//
	// Returns an error if the input is corrupted or was produced by a
	// different algorithm.
	Decompress(data []byte) ([]byte, error)
}

// SizedDecompressor decompresses a payload whose original size is recorded
// elsewhere, such as in a trace header.
//
// Implementations never produce more than size bytes: input that would expand
// past size is rejected before or while decoding, not after. Output of any
// other length returns errs.ErrDecompressedSize.
type SizedDecompressor interface {
	DecompressSize(data []byte, size int) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
	SizedDecompressor
}

func sizeMismatch(got, want int) error {
	return fmt.Errorf("%w: got %d bytes, want %d", errs.ErrDecompressedSize, got, want)
}

// decompressEmpty handles empty input for DecompressSize.
func decompressEmpty(size int) ([]byte, error) {
	if size != 0 {
		return nil, sizeMismatch(0, size)
	}

	return nil, nil
}

// CompressionStats describes the effect of compressing one payload.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used
	Algorithm format.CompressionType

	// OriginalSize is the size of input data before compression
	OriginalSize int64

	// CompressedSize is the size of data after compression
	CompressedSize int64
}

// CompressionRatio returns the compression ratio (compressed size / original size).
//
// Values less than 1.0 indicate successful compression. Returns 0.0 when the
// original size is zero.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage (0-100%).
func (s CompressionStats) SpaceSavings() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec creates a Codec for the given compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, or LZ4)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: Invalid compression type error
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
