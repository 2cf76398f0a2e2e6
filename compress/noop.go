package compress

// NoOpCompressor passes trace payloads through unchanged.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data itself. The result shares memory with the input.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data itself. The result shares memory with the input.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}

// DecompressSize returns data itself if it is exactly size bytes long.
func (c NoOpCompressor) DecompressSize(data []byte, size int) ([]byte, error) {
	if len(data) != size {
		return nil, sizeMismatch(len(data), size)
	}

	return data, nil
}
