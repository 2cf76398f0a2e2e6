//go:build !(cgo && gozstd)

package compress

import (
	"bytes"
	"testing"

	"github.com/arloliu/canbits/errs"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

func TestZstdCompressor_DecompressSizeWithoutContentSize(t *testing.T) {
	const chunks = 64
	chunk := make([]byte, 1<<20)

	// A streamed frame leaves the content size out of its header, so only
	// the decoder's capacity limit stands between it and a full expansion.
	var stream bytes.Buffer
	enc, err := zstd.NewWriter(&stream)
	require.NoError(t, err)
	for range chunks {
		_, err = enc.Write(chunk)
		require.NoError(t, err)
	}
	require.NoError(t, enc.Close())

	hdr := zstd.Header{}
	require.NoError(t, hdr.Decode(stream.Bytes()))
	require.False(t, hdr.HasFCS)

	codec := NewZstdCompressor()
	_, _ = codec.DecompressSize(stream.Bytes(), 21)

	var decErr error
	allocated := allocatedDuring(func() {
		_, decErr = codec.DecompressSize(stream.Bytes(), 21)
	})
	require.ErrorIs(t, decErr, errs.ErrDecompressedSize)
	require.Less(t, allocated, uint64(chunks<<20)/4)
}
