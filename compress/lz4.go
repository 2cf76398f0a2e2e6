package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/arloliu/canbits/errs"
	"github.com/pierrec/lz4/v4"
)

// lz4MaxDecompressedSize bounds the buffer grown while decompressing a block
// whose original size is unknown.
const lz4MaxDecompressedSize = 128 * 1024 * 1024

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor compresses trace payloads as a single LZ4 block.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data using a pooled lz4.Compressor.
//
// Returns:
//   - []byte: Compressed data (nil if input is empty)
//   - error: Compression error if any
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
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

// Decompress decompresses an LZ4 block.
//
// The block does not record its original size, so the output buffer starts at
// four times the input and doubles on lz4.ErrInvalidSourceShortBuffer, up to
// 128MiB.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	for bufSize := len(data) * 4; bufSize <= lz4MaxDecompressedSize; bufSize *= 2 {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err == nil {
			return buf[:n], nil
		}

		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			return nil, err
		}
	}

	return nil, lz4.ErrInvalidSourceShortBuffer
}

// DecompressSize decodes an LZ4 block into a buffer of exactly size bytes.
// A block that expands further fails with errs.ErrDecompressedSize.
func (c LZ4Compressor) DecompressSize(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return decompressEmpty(size)
	}

	buf := make([]byte, size)
	n, err := lz4.UncompressBlock(data, buf)
	if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
		return nil, fmt.Errorf("%w: block expands past %d bytes", errs.ErrDecompressedSize, size)
	}
	if err != nil {
		return nil, err
	}
	if n != size {
		return nil, sizeMismatch(n, size)
	}

	return buf, nil
}
