// Package bitpack places CAN signal values into fixed-width message buffers.
//
// A message is an unsigned integer of W bits (8, 16, 32 or 64). It is viewed as
// W/8 bytes, numbered from 0 at the most significant end of the integer. Inside
// each byte, bits are numbered from 0 (least significant) to 7 (most significant).
// This is the Motorola byte order with LSB-first bit numbering used by automotive
// signal layouts, and it maps directly onto the CAN payload: byte 0 of the
// message is data byte 0 on the wire.
//
// A signal starting at offset o with width n occupies the absolute bit addresses
// o, o+1, ..., o+n-1. Bit i of the signal value lands at
//
//	(W - (addr/8 + 1) * 8) + addr%8    where addr = o + i
//
// so a signal walks across byte boundaries without special casing.
//
// # Basic Usage
//
//	var msg uint64
//
//	// 4-bit signal in the low nibble of byte 0
//	if err := bitpack.Encode(&msg, 0b1101, 0, 4); err != nil {
//	    return err
//	}
//
//	// 5-bit signal spanning bytes 0 and 1
//	if err := bitpack.Encode(&msg, 0b10111, 6, 5); err != nil {
//	    return err
//	}
//
//	for _, row := range bitpack.RenderBytes(msg) {
//	    fmt.Println(row)
//	}
//
// # Accumulation
//
// Encode only ORs bits into the buffer and never clears them, so a buffer can
// collect many signals across calls. Writing a value over bits that are already
// set leaves those bits set. Use Overwrite when the target region has to be
// replaced instead of accumulated.
//
// # Errors
//
// Arguments are checked before the buffer is touched. A zero or oversized width,
// a placement that runs past the last bit of the message, or a nil buffer returns
// an error wrapping errs.ErrPreconditionViolation and leaves the buffer unchanged.
// Value bits above the signal width are discarded silently.
//
// # Thread Safety
//
// The functions are stateless. A message buffer shared between goroutines must be
// guarded by the caller.
package bitpack
