package compress

import (
	"fmt"

	"github.com/arloliu/canbits/errs"
	"github.com/klauspost/compress/zstd"
)

// ZstdCompressor compresses trace payloads with Zstandard.
//
// It gives the best ratio of the built-in codecs and suits traces that are
// archived or shipped over slow links.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec with default settings.
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(payload)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// checkZstdFrameSize rejects a payload whose first frame declares a content
// size other than size. Frames written by EncodeAll always carry it.
func checkZstdFrameSize(data []byte, size int) error {
	var hdr zstd.Header
	if err := hdr.Decode(data); err != nil {
		return fmt.Errorf("zstd frame header: %w", err)
	}

	if hdr.HasFCS && hdr.FrameContentSize != uint64(size) {
		return fmt.Errorf("%w: frame declares %d bytes, want %d", errs.ErrDecompressedSize, hdr.FrameContentSize, size)
	}

	return nil
}
