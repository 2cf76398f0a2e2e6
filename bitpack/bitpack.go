package bitpack

import (
	"fmt"
	"math/bits"

	"github.com/arloliu/canbits/errs"
)

// BitsPerByte is the number of bits in one message byte.
const BitsPerByte = 8

// Word is the set of integer types that can hold a message.
type Word interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Width returns the bit length W of the message type T.
func Width[T Word]() uint8 {
	var zero T
	return uint8(bits.OnesCount64(uint64(^zero)))
}

// Mask returns a mask covering the low bitWidth bits.
//
// Widths of 64 or more return all ones; shifting by the full register size is
// never performed.
func Mask(bitWidth uint8) uint64 {
	if bitWidth >= 64 {
		return ^uint64(0)
	}

	return (uint64(1) << bitWidth) - 1
}

// BitPosition maps an absolute signal bit address to the bit position inside a
// message of type T.
//
// Returns errs.ErrSignalOutOfRange when offset does not address a bit of the message.
func BitPosition[T Word](offset uint8) (uint, error) {
	w := Width[T]()
	if offset >= w {
		return 0, fmt.Errorf("%w: bit %d of a %d-bit message", errs.ErrSignalOutOfRange, offset, w)
	}

	return bitPosition(w, offset), nil
}

// Encode ORs the low bitWidth bits of value into msg, starting at the absolute
// bit address offset.
//
// Bit i of value (counted from the least significant bit) is written to address
// offset+i. Existing bits in msg are never cleared. Value bits at or above
// bitWidth are discarded.
//
// Parameters:
//   - msg: Message buffer, updated in place
//   - value: Signal value
//   - offset: Absolute bit address of the signal's first bit
//   - bitWidth: Number of bits the signal occupies, 1..W
//
// Returns:
//   - error: errs.ErrNilBuffer, errs.ErrInvalidBitWidth or errs.ErrSignalOutOfRange.
//     On error msg is not modified.
func Encode[T Word](msg *T, value uint64, offset, bitWidth uint8) error {
	if err := checkPlacement[T](msg, offset, bitWidth); err != nil {
		return err
	}

	*msg |= place[T](value&Mask(bitWidth), offset, bitWidth)

	return nil
}

// Overwrite replaces the bitWidth bits starting at offset with the low bits of value.
//
// It behaves like Encode except that the target region is cleared first, so
// bits outside the region are preserved and bits inside it take the new value.
func Overwrite[T Word](msg *T, value uint64, offset, bitWidth uint8) error {
	if err := checkPlacement[T](msg, offset, bitWidth); err != nil {
		return err
	}

	region := place[T](Mask(bitWidth), offset, bitWidth)
	*msg = (*msg &^ region) | place[T](value&Mask(bitWidth), offset, bitWidth)

	return nil
}

func checkPlacement[T Word](msg *T, offset, bitWidth uint8) error {
	if msg == nil {
		return errs.ErrNilBuffer
	}

	w := Width[T]()
	if bitWidth == 0 || bitWidth > w {
		return fmt.Errorf("%w: %d not in [1, %d]", errs.ErrInvalidBitWidth, bitWidth, w)
	}

	if uint(offset)+uint(bitWidth) > uint(w) {
		return fmt.Errorf("%w: offset %d + width %d > %d", errs.ErrSignalOutOfRange, offset, bitWidth, w)
	}

	return nil
}

// place spreads the already truncated value over the message bit positions of
// the signal. The placement must have been validated.
func place[T Word](value uint64, offset, bitWidth uint8) T {
	w := Width[T]()

	var out T
	for i := range bitWidth {
		if (value>>i)&1 == 0 {
			continue
		}
		out |= T(1) << bitPosition(w, offset+i)
	}

	return out
}

func bitPosition(w, addr uint8) uint {
	byteIndex := uint(addr / BitsPerByte)
	bitInByte := uint(addr % BitsPerByte)

	return uint(w) - (byteIndex+1)*BitsPerByte + bitInByte
}
