package compress

import (
	"bytes"
	"encoding/binary"
	"errors"
	"runtime"
	"sync"
	"testing"

	"github.com/arloliu/canbits/errs"
	"github.com/arloliu/canbits/format"
	"github.com/stretchr/testify/require"
)

var errRoundTripMismatch = errors.New("round trip mismatch")

func getAllCodecs() map[string]Codec {
	return map[string]Codec{
		"NoOp": NewNoOpCompressor(),
		"Zstd": NewZstdCompressor(),
		"S2":   NewS2Compressor(),
		"LZ4":  NewLZ4Compressor(),
	}
}

// frameRecords builds a payload shaped like a trace: a slowly increasing
// timestamp, a repeating identifier and a counter signal.
func frameRecords(n int) []byte {
	buf := make([]byte, 0, n*21)
	for i := range n {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(1_700_000_000_000_000+i*1000))
		buf = append(buf, 0x08)
		buf = binary.BigEndian.AppendUint32(buf, 0x123)
		buf = append(buf, byte(i), byte(i>>8), 0, 0, 0, 0, 0xC0, 0x05)
	}

	return buf
}

func TestCreateCodec(t *testing.T) {
	tests := []struct {
		compression format.CompressionType
		want        Codec
	}{
		{format.CompressionNone, NoOpCompressor{}},
		{format.CompressionZstd, ZstdCompressor{}},
		{format.CompressionS2, S2Compressor{}},
		{format.CompressionLZ4, LZ4Compressor{}},
	}

	for _, tt := range tests {
		codec, err := CreateCodec(tt.compression, "trace")
		require.NoError(t, err)
		require.IsType(t, tt.want, codec)
	}

	_, err := CreateCodec(format.CompressionType(0xEE), "trace")
	require.ErrorContains(t, err, "invalid trace compression")
}

func TestGetCodec(t *testing.T) {
	for _, c := range []format.CompressionType{
		format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4,
	} {
		codec, err := GetCodec(c)
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	_, err := GetCodec(format.CompressionType(0))
	require.Error(t, err)
}

func TestCompressionStats(t *testing.T) {
	stats := CompressionStats{Algorithm: format.CompressionZstd, OriginalSize: 1000, CompressedSize: 250}
	require.InDelta(t, 0.25, stats.CompressionRatio(), 1e-9)
	require.InDelta(t, 75.0, stats.SpaceSavings(), 1e-9)

	empty := CompressionStats{}
	require.Zero(t, empty.CompressionRatio())
	require.Zero(t, empty.SpaceSavings())
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(nil)
			require.NoError(t, err)
			require.Nil(t, compressed)

			decompressed, err := codec.Decompress(nil)
			require.NoError(t, err)
			require.Nil(t, decompressed)
		})
	}
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{"single_record", frameRecords(1)},
		{"small_trace", frameRecords(16)},
		{"large_trace", frameRecords(4096)},
		{"single_byte", []byte{0x42}},
		{"zeros", make([]byte, 64*1024)},
	}

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			for _, tc := range testCases {
				t.Run(tc.name, func(t *testing.T) {
					compressed, err := codec.Compress(tc.data)
					require.NoError(t, err)
					require.NotNil(t, compressed)

					decompressed, err := codec.Decompress(compressed)
					require.NoError(t, err)
					require.True(t, bytes.Equal(tc.data, decompressed), "decompressed data must match original")
				})
			}
		})
	}
}

func TestCodecs_ShrinkTracePayload(t *testing.T) {
	data := frameRecords(1024)

	for _, name := range []string{"Zstd", "S2", "LZ4"} {
		codec := getAllCodecs()[name]
		compressed, err := codec.Compress(data)
		require.NoError(t, err)
		require.Less(t, len(compressed), len(data), name)
	}
}

func TestCodecs_InvalidData(t *testing.T) {
	invalid := []byte("this is not compressed data")

	_, err := NewZstdCompressor().Decompress(invalid)
	require.Error(t, err)

	_, err = NewS2Compressor().Decompress(invalid)
	require.Error(t, err)
}

func TestAllCodecs_DecompressSize(t *testing.T) {
	data := frameRecords(64)

	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(data)
			require.NoError(t, err)

			out, err := codec.DecompressSize(compressed, len(data))
			require.NoError(t, err)
			require.Equal(t, data, out)

			_, err = codec.DecompressSize(compressed, len(data)-21)
			require.ErrorIs(t, err, errs.ErrDecompressedSize)

			_, err = codec.DecompressSize(compressed, len(data)+21)
			require.ErrorIs(t, err, errs.ErrDecompressedSize)

			out, err = codec.DecompressSize(nil, 0)
			require.NoError(t, err)
			require.Empty(t, out)

			_, err = codec.DecompressSize(nil, 3)
			require.ErrorIs(t, err, errs.ErrDecompressedSize)
		})
	}
}

// allocatedDuring reports the bytes allocated on the heap while fn runs.
func allocatedDuring(fn func()) uint64 {
	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	fn()
	runtime.ReadMemStats(&after)

	return after.TotalAlloc - before.TotalAlloc
}

func TestCodecs_DecompressSizeBoundsExpansion(t *testing.T) {
	const expanded = 64 << 20
	zeros := make([]byte, expanded)

	for _, name := range []string{"Zstd", "S2", "LZ4"} {
		t.Run(name, func(t *testing.T) {
			codec := getAllCodecs()[name]
			compressed, err := codec.Compress(zeros)
			require.NoError(t, err)

			// warm the codec pools so only the decode itself is measured
			_, _ = codec.DecompressSize(compressed, 21)

			var decErr error
			allocated := allocatedDuring(func() {
				_, decErr = codec.DecompressSize(compressed, 21)
			})
			require.ErrorIs(t, decErr, errs.ErrDecompressedSize)
			require.Less(t, allocated, uint64(expanded/4), "decode must stop near the declared size")
		})
	}
}

func TestNoOpCompressor_SharesMemory(t *testing.T) {
	data := []byte{1, 2, 3}
	out, err := NewNoOpCompressor().Compress(data)
	require.NoError(t, err)
	require.Same(t, &data[0], &out[0])
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	const numGoroutines = 16
	data := frameRecords(256)

	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			errCh := make(chan error, numGoroutines)

			for range numGoroutines {
				wg.Add(1)
				go func() {
					defer wg.Done()

					compressed, err := codec.Compress(data)
					if err != nil {
						errCh <- err
						return
					}
					decompressed, err := codec.Decompress(compressed)
					if err != nil {
						errCh <- err
						return
					}
					if !bytes.Equal(data, decompressed) {
						errCh <- errRoundTripMismatch
					}
				}()
			}

			wg.Wait()
			close(errCh)
			for err := range errCh {
				require.NoError(t, err)
			}
		})
	}
}

func BenchmarkCodecs_Compress(b *testing.B) {
	data := frameRecords(2048)

	for name, codec := range getAllCodecs() {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			for i := 0; i < b.N; i++ {
				_, _ = codec.Compress(data)
			}
		})
	}
}
