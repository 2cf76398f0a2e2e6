package trace

import (
	"fmt"
	"iter"
	"time"

	"github.com/arloliu/canbits/compress"
	"github.com/arloliu/canbits/errs"
	"github.com/arloliu/canbits/frame"
	"github.com/arloliu/canbits/internal/hash"
)

// Entry is one recorded frame.
type Entry struct {
	Time  time.Time
	Frame frame.Frame
}

// Reader gives access to the frames of a trace.
type Reader struct {
	header  Header
	entries []Entry
}

// Open parses and verifies a trace blob.
//
// Returns:
//   - *Reader: Reader over the decoded frames
//   - error: errs.ErrInvalidTraceHeader, errs.ErrInvalidTracePayload,
//     errs.ErrChecksumMismatch, or a decompression error
func Open(data []byte) (*Reader, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	body := data[HeaderSize:]
	if uint64(len(body)) != uint64(h.PayloadSize) {
		return nil, fmt.Errorf("%w: payload is %d bytes, header says %d", errs.ErrInvalidTracePayload, len(body), h.PayloadSize)
	}

	if uint64(h.RawSize) != uint64(h.FrameCount)*RecordSize {
		return nil, fmt.Errorf("%w: %d frames need %d bytes, header says %d",
			errs.ErrInvalidTracePayload, h.FrameCount, uint64(h.FrameCount)*RecordSize, h.RawSize)
	}

	codec, err := compress.GetCodec(h.Compression)
	if err != nil {
		return nil, err
	}

	// The header's raw size bounds the decoder, so a forged payload fails
	// before it can expand past what the header declared.
	raw, err := codec.DecompressSize(body, int(h.RawSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidTracePayload, err)
	}

	if sum := hash.Checksum(raw); sum != h.Checksum {
		return nil, fmt.Errorf("%w: got %#016x, header says %#016x", errs.ErrChecksumMismatch, sum, h.Checksum)
	}

	engine := h.engine()
	entries := make([]Entry, h.FrameCount)
	for i := range entries {
		rec := raw[i*RecordSize : (i+1)*RecordSize]

		entries[i].Time = time.UnixMicro(int64(engine.Uint64(rec[:8])))
		if err := entries[i].Frame.UnmarshalBinary(rec[8:]); err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", errs.ErrInvalidTracePayload, i, err)
		}
	}

	return &Reader{header: h, entries: entries}, nil
}

// Header returns the trace header.
func (r *Reader) Header() Header {
	return r.header
}

// Len returns the number of frames in the trace.
func (r *Reader) Len() int {
	return len(r.entries)
}

// SourceID returns the xxHash64 of the source name the trace was recorded with.
func (r *Reader) SourceID() uint64 {
	return r.header.SourceID
}

// IsSource reports whether the trace was recorded with the given source name.
func (r *Reader) IsSource(name string) bool {
	return hash.ID(name) == r.header.SourceID
}

// At returns the i-th entry. It panics if i is out of range.
func (r *Reader) At(i int) Entry {
	return r.entries[i]
}

// All iterates over the frames in recording order.
func (r *Reader) All() iter.Seq2[time.Time, frame.Frame] {
	return func(yield func(time.Time, frame.Frame) bool) {
		for _, e := range r.entries {
			if !yield(e.Time, e.Frame) {
				return
			}
		}
	}
}
