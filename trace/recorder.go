package trace

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/arloliu/canbits/compress"
	"github.com/arloliu/canbits/endian"
	"github.com/arloliu/canbits/errs"
	"github.com/arloliu/canbits/format"
	"github.com/arloliu/canbits/frame"
	"github.com/arloliu/canbits/internal/hash"
	"github.com/arloliu/canbits/internal/options"
	"github.com/arloliu/canbits/internal/pool"
)

const (
	// RecordSize is the size of one raw payload record.
	RecordSize = 8 + frame.RecordSize

	// MaxCapacity is the largest frame count whose raw payload still fits the
	// 32-bit size field of the header.
	MaxCapacity = math.MaxUint32 / RecordSize
)

// RecorderConfig holds the settings of a Recorder.
type RecorderConfig struct {
	order       format.ByteOrder
	compression format.CompressionType
	source      string
	capacity    int
}

// RecorderOption configures a Recorder.
type RecorderOption = options.Option[*RecorderConfig]

// WithCompression sets the payload compression. The default is Zstd.
func WithCompression(c format.CompressionType) RecorderOption {
	return options.New(func(cfg *RecorderConfig) error {
		if !c.Valid() {
			return fmt.Errorf("%w: compression %s", errs.ErrInvalidOption, c)
		}
		cfg.compression = c

		return nil
	})
}

// WithByteOrder sets the byte order of header fields and timestamps. The
// default is little-endian. Frame records are not affected.
func WithByteOrder(order format.ByteOrder) RecorderOption {
	return options.New(func(cfg *RecorderConfig) error {
		if order != format.LittleEndian && order != format.BigEndian {
			return fmt.Errorf("%w: byte order %d", errs.ErrInvalidOption, order)
		}
		cfg.order = order

		return nil
	})
}

// WithSource names the bus or device the trace was captured from. Only its
// xxHash64 is stored.
func WithSource(name string) RecorderOption {
	return options.NoError(func(cfg *RecorderConfig) {
		cfg.source = name
	})
}

// WithCapacity reserves room for the expected number of frames, 0..MaxCapacity.
func WithCapacity(frames int) RecorderOption {
	return options.New(func(cfg *RecorderConfig) error {
		if frames < 0 || frames > MaxCapacity {
			return fmt.Errorf("%w: capacity %d", errs.ErrInvalidOption, frames)
		}
		cfg.capacity = frames

		return nil
	})
}

// Recorder collects frames and produces a trace blob.
type Recorder struct {
	engine endian.EndianEngine
	codec  compress.Codec
	buf    *pool.ByteBuffer
	header Header
	stats  compress.CompressionStats
}

// NewRecorder creates a Recorder.
//
// Defaults: little-endian, Zstd compression, empty source name.
func NewRecorder(opts ...RecorderOption) (*Recorder, error) {
	cfg := &RecorderConfig{
		order:       format.LittleEndian,
		compression: format.CompressionZstd,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.CreateCodec(cfg.compression, "trace payload")
	if err != nil {
		return nil, err
	}

	buf := pool.GetTraceBuffer()
	buf.Grow(cfg.capacity * RecordSize)

	return &Recorder{
		engine: endian.GetEngine(cfg.order),
		codec:  codec,
		buf:    buf,
		header: Header{
			Order:       cfg.order,
			Compression: cfg.compression,
			SourceID:    hash.ID(cfg.source),
		},
	}, nil
}

// Record appends a frame observed at ts.
//
// Returns errs.ErrRecorderFinished after Finish, or a frame validation error.
// A rejected frame leaves the trace unchanged.
func (r *Recorder) Record(ts time.Time, f frame.Frame) error {
	if r.buf == nil {
		return errs.ErrRecorderFinished
	}

	if r.header.FrameCount == MaxCapacity {
		return fmt.Errorf("%w: frame count limit reached", errs.ErrInvalidTracePayload)
	}

	start := r.buf.Len()
	r.buf.B = r.engine.AppendUint64(r.buf.B, uint64(ts.UnixMicro()))

	out, err := f.AppendBinary(r.buf.B)
	if err != nil {
		r.buf.B = r.buf.B[:start]
		return fmt.Errorf("record frame %d: %w", r.header.FrameCount, err)
	}
	r.buf.B = out
	r.header.FrameCount++

	return nil
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int {
	return int(r.header.FrameCount)
}

// Finish compresses the recorded frames and returns the trace blob.
//
// The Recorder releases its buffer and cannot be used afterwards.
func (r *Recorder) Finish() ([]byte, error) {
	out, err := r.finish()
	if err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// FinishTo finishes the trace like Finish and writes the blob to w.
//
// Returns the number of bytes written.
func (r *Recorder) FinishTo(w io.Writer) (int64, error) {
	out, err := r.finish()
	if err != nil {
		return 0, err
	}

	return out.WriteTo(w)
}

func (r *Recorder) finish() (*pool.ByteBuffer, error) {
	if r.buf == nil {
		return nil, errs.ErrRecorderFinished
	}

	raw := r.buf.Bytes()
	if uint64(len(raw)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: payload of %d bytes", errs.ErrInvalidTracePayload, len(raw))
	}

	payload, err := r.codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("compress trace payload: %w", err)
	}

	r.header.RawSize = uint32(len(raw))
	r.header.PayloadSize = uint32(len(payload))
	r.header.Checksum = hash.Checksum(raw)

	// payload may alias the pooled buffer, so copy before releasing it.
	out := pool.NewByteBuffer(HeaderSize + len(payload))
	_, _ = out.Write(r.header.Bytes())
	_, _ = out.Write(payload)

	r.stats = compress.CompressionStats{
		Algorithm:      r.header.Compression,
		OriginalSize:   int64(len(raw)),
		CompressedSize: int64(len(payload)),
	}

	pool.PutTraceBuffer(r.buf)
	r.buf = nil

	return out, nil
}

// Header returns the header as it stands. Sizes and checksum are set by Finish.
func (r *Recorder) Header() Header {
	return r.header
}

// Stats returns the compression statistics of the finished trace.
func (r *Recorder) Stats() compress.CompressionStats {
	return r.stats
}
