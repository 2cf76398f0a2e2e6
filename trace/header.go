package trace

import (
	"fmt"

	"github.com/arloliu/canbits/endian"
	"github.com/arloliu/canbits/errs"
	"github.com/arloliu/canbits/format"
)

const (
	HeaderSize = 32     // HeaderSize is the fixed size of the trace header.
	Magic      = 0xCA11 // Magic identifies a version 1 trace.

	bigEndianFlag = 0x01
	reservedFlags = 0xFE
)

// Header is the fixed-size section at the start of a trace.
type Header struct {
	Order       format.ByteOrder       // byte order of the fields from offset 4 on, and of record timestamps
	Compression format.CompressionType // payload compression
	FrameCount  uint32                 // number of records in the payload
	PayloadSize uint32                 // payload bytes following the header
	RawSize     uint32                 // payload bytes after decompression
	SourceID    uint64                 // xxHash64 of the source name
	Checksum    uint64                 // xxHash64 of the raw payload
}

func (h Header) engine() endian.EndianEngine {
	return endian.GetEngine(h.Order)
}

// Bytes serializes the header into a HeaderSize byte slice.
func (h Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	endian.GetLittleEndianEngine().PutUint16(b[0:2], Magic)
	if h.Order == format.BigEndian {
		b[2] = bigEndianFlag
	}
	b[3] = uint8(h.Compression)

	engine := h.engine()
	engine.PutUint32(b[4:8], h.FrameCount)
	engine.PutUint32(b[8:12], h.PayloadSize)
	engine.PutUint32(b[12:16], h.RawSize)
	engine.PutUint64(b[16:24], h.SourceID)
	engine.PutUint64(b[24:32], h.Checksum)

	return b
}

// ParseHeader parses a header from the start of data.
//
// Returns:
//   - Header: Parsed header
//   - error: errs.ErrInvalidTraceHeader if data is too short, the magic number
//     does not match, reserved flags are set or the compression type is unknown
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes, need %d", errs.ErrInvalidTraceHeader, len(data), HeaderSize)
	}

	if magic := endian.GetLittleEndianEngine().Uint16(data[0:2]); magic != Magic {
		return Header{}, fmt.Errorf("%w: magic %#04x", errs.ErrInvalidTraceHeader, magic)
	}

	flags := data[2]
	if flags&reservedFlags != 0 {
		return Header{}, fmt.Errorf("%w: reserved flags %#02x", errs.ErrInvalidTraceHeader, flags)
	}

	h := Header{
		Order:       format.LittleEndian,
		Compression: format.CompressionType(data[3]),
	}
	if flags&bigEndianFlag != 0 {
		h.Order = format.BigEndian
	}
	if !h.Compression.Valid() {
		return Header{}, fmt.Errorf("%w: compression %d", errs.ErrInvalidTraceHeader, data[3])
	}

	engine := h.engine()
	h.FrameCount = engine.Uint32(data[4:8])
	h.PayloadSize = engine.Uint32(data[8:12])
	h.RawSize = engine.Uint32(data[12:16])
	h.SourceID = engine.Uint64(data[16:24])
	h.Checksum = engine.Uint64(data[24:32])

	return h, nil
}
