// Package endian provides the byte order plumbing between message integers and
// the bytes that travel on the bus or into a trace.
//
// A message built by the bitpack package numbers its bytes from the most
// significant end of the integer, so its CAN payload is always the big-endian
// serialization of the integer. That mapping is fixed and exposed through
// PutMessage and MessageFromPayload.
//
// Trace headers and records are written with a configurable EndianEngine. The
// engine is any value that satisfies both binary.ByteOrder and
// binary.AppendByteOrder, which binary.LittleEndian and binary.BigEndian do.
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"

	"github.com/arloliu/canbits/format"
)

// PayloadSize is the number of data bytes carried by a 64-bit message.
const PayloadSize = 8

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetEngine returns the engine for the given byte order. Unknown values fall
// back to little-endian.
func GetEngine(order format.ByteOrder) EndianEngine {
	if order == format.BigEndian {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// PayloadEngine returns the engine that maps a message integer onto its payload
// bytes. Message byte 0 is the most significant byte, so this is big-endian.
func PayloadEngine() EndianEngine {
	return binary.BigEndian
}

// PutMessage writes msg into the first PayloadSize bytes of dst, message byte 0 first.
// It panics if dst is shorter than PayloadSize.
func PutMessage(dst []byte, msg uint64) {
	PayloadEngine().PutUint64(dst, msg)
}

// MessageFromPayload rebuilds a message from up to PayloadSize payload bytes.
// Missing trailing bytes read as zero.
func MessageFromPayload(data []byte) uint64 {
	var buf [PayloadSize]byte
	copy(buf[:], data)

	return PayloadEngine().Uint64(buf[:])
}
