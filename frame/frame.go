// Package frame wraps encoded messages into classical CAN data frames.
//
// A 64-bit message built with the bitpack package becomes the frame's 8-byte
// payload, message byte 0 first. Frames can be serialized into a fixed 13-byte
// binary record (used by traces and by CAN-to-Ethernet adapters) or into the
// ASCII form of the serial-line CAN (SLCAN) protocol.
package frame

import (
	"fmt"
	"strings"

	"github.com/arloliu/canbits/endian"
	"github.com/arloliu/canbits/errs"
	"github.com/arloliu/canbits/internal/options"
)

const (
	MaxStandardID = 0x7FF      // MaxStandardID is the largest 11-bit identifier.
	MaxExtendedID = 0x1FFFFFFF // MaxExtendedID is the largest 29-bit identifier.
	MaxDataLength = endian.PayloadSize

	// RecordSize is the size of a serialized frame record:
	// 1 header byte, 4 identifier bytes and 8 data bytes.
	RecordSize = 13
)

// Header byte layout of a frame record.
const (
	lengthMask   = 0x0F
	remoteFlag   = 0x40
	extendedFlag = 0x80
)

// Frame is a classical CAN 2.0A/2.0B frame.
type Frame struct {
	ID       uint32 // 11-bit (standard) or 29-bit (extended) identifier
	Extended bool   // true for a 29-bit identifier
	Remote   bool   // remote transmission request
	Len      uint8  // data length, 0..8
	Data     [MaxDataLength]byte
}

// Option configures a frame built by New.
type Option = options.Option[*Frame]

// WithExtendedID marks the identifier as a 29-bit extended identifier.
func WithExtendedID() Option {
	return options.NoError(func(f *Frame) {
		f.Extended = true
	})
}

// WithRemote builds a remote transmission request. Remote frames carry no data
// bytes; the message is ignored.
func WithRemote() Option {
	return options.NoError(func(f *Frame) {
		f.Remote = true
	})
}

// WithLength sets the number of payload bytes sent on the bus. The default is 8.
// Message bytes at or past n are not transmitted.
func WithLength(n uint8) Option {
	return options.New(func(f *Frame) error {
		if n > MaxDataLength {
			return fmt.Errorf("%w: %d", errs.ErrInvalidFrameLength, n)
		}
		f.Len = n

		return nil
	})
}

// New builds a frame that carries msg as its payload.
//
// Returns errs.ErrInvalidFrameID if id does not fit the identifier format, or
// errs.ErrInvalidFrameLength from WithLength.
func New(id uint32, msg uint64, opts ...Option) (Frame, error) {
	f := Frame{ID: id, Len: MaxDataLength}
	if err := options.Apply(&f, opts...); err != nil {
		return Frame{}, err
	}

	if err := f.Validate(); err != nil {
		return Frame{}, err
	}

	if f.Remote {
		return f, nil
	}

	endian.PutMessage(f.Data[:], msg)
	clear(f.Data[f.Len:])

	return f, nil
}

// Validate checks the identifier range and the data length.
func (f Frame) Validate() error {
	if f.Len > MaxDataLength {
		return fmt.Errorf("%w: %d", errs.ErrInvalidFrameLength, f.Len)
	}

	limit := uint32(MaxStandardID)
	if f.Extended {
		limit = MaxExtendedID
	}
	if f.ID > limit {
		return fmt.Errorf("%w: %#x exceeds %#x", errs.ErrInvalidFrameID, f.ID, limit)
	}

	return nil
}

// Message returns the payload as a 64-bit message. Bytes past Len read as zero.
func (f Frame) Message() uint64 {
	return endian.MessageFromPayload(f.Data[:min(f.Len, MaxDataLength)])
}

// AppendBinary appends the 13-byte record of f to dst.
func (f Frame) AppendBinary(dst []byte) ([]byte, error) {
	if err := f.Validate(); err != nil {
		return dst, err
	}

	header := f.Len & lengthMask
	if f.Remote {
		header |= remoteFlag
	}
	if f.Extended {
		header |= extendedFlag
	}

	dst = append(dst, header)
	dst = endian.GetBigEndianEngine().AppendUint32(dst, f.ID)

	return append(dst, f.Data[:]...), nil
}

// MarshalBinary returns the 13-byte record of f.
func (f Frame) MarshalBinary() ([]byte, error) {
	return f.AppendBinary(make([]byte, 0, RecordSize))
}

// UnmarshalBinary parses a 13-byte record.
func (f *Frame) UnmarshalBinary(data []byte) error {
	if len(data) != RecordSize {
		return fmt.Errorf("%w: %d", errs.ErrInvalidFrameSize, len(data))
	}

	header := data[0]
	parsed := Frame{
		ID:       endian.GetBigEndianEngine().Uint32(data[1:5]),
		Extended: header&extendedFlag != 0,
		Remote:   header&remoteFlag != 0,
		Len:      header & lengthMask,
	}
	copy(parsed.Data[:], data[5:])

	if err := parsed.Validate(); err != nil {
		return err
	}
	*f = parsed

	return nil
}

// SLCAN returns the serial-line CAN text form of f, terminated by '\r'.
//
// Data frames start with 't' (standard) or 'T' (extended), remote frames with
// 'r' or 'R', followed by the hex identifier, the length digit and, for data
// frames, two hex digits per data byte.
func (f Frame) SLCAN() string {
	var b strings.Builder
	switch {
	case f.Remote && f.Extended:
		b.WriteByte('R')
	case f.Remote:
		b.WriteByte('r')
	case f.Extended:
		b.WriteByte('T')
	default:
		b.WriteByte('t')
	}

	if f.Extended {
		fmt.Fprintf(&b, "%08X", f.ID&MaxExtendedID)
	} else {
		fmt.Fprintf(&b, "%03X", f.ID&MaxStandardID)
	}

	length := min(f.Len, MaxDataLength)
	b.WriteByte('0' + length)

	if !f.Remote {
		for _, d := range f.Data[:length] {
			fmt.Fprintf(&b, "%02X", d)
		}
	}

	b.WriteByte('\r')

	return b.String()
}

func (f Frame) String() string {
	kind := "std"
	if f.Extended {
		kind = "ext"
	}
	if f.Remote {
		return fmt.Sprintf("%s %#x [%d] remote", kind, f.ID, f.Len)
	}

	return fmt.Sprintf("%s %#x [%d] % X", kind, f.ID, f.Len, f.Data[:min(f.Len, MaxDataLength)])
}
