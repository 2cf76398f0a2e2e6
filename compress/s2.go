package compress

import "github.com/klauspost/compress/s2"

// S2Compressor compresses trace payloads with S2, a Snappy extension that
// trades some ratio for speed. S2 blocks start with their decoded length, so a
// trace can reject a mismatched payload before decoding it.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 codec.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress encodes data as a single S2 block.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decodes an S2 block, sizing the output from the block's own
// length prefix.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}

// DecompressSize checks the block's length prefix against size and decodes
// into a buffer of exactly size bytes.
func (c S2Compressor) DecompressSize(data []byte, size int) ([]byte, error) {
	if len(data) == 0 {
		return decompressEmpty(size)
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, err
	}
	if n != size {
		return nil, sizeMismatch(n, size)
	}

	return s2.Decode(make([]byte, size), data)
}
