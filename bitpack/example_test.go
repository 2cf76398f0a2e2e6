package bitpack_test

import (
	"fmt"

	"github.com/arloliu/canbits/bitpack"
)

func ExampleEncode() {
	var msg uint64

	// A 5-bit signal starting at bit 6 spans bytes 0 and 1.
	if err := bitpack.Encode(&msg, 0b10111, 6, 5); err != nil {
		fmt.Println(err)
		return
	}

	rows := bitpack.RenderBytes(msg)
	fmt.Println(rows[0])
	fmt.Println(rows[1])
	// Output:
	// 11000000
	// 00000101
}

func ExampleEncode_outOfRange() {
	var msg uint64
	err := bitpack.Encode(&msg, 0xFF, 61, 8)
	fmt.Println(err)
	// Output:
	// precondition violation: signal exceeds message bounds: offset 61 + width 8 > 64
}

func ExampleOverwrite() {
	var msg uint64
	_ = bitpack.Encode(&msg, 0xFF, 0, 8)
	_ = bitpack.Overwrite(&msg, 0b0000, 0, 4)

	fmt.Println(bitpack.RenderBytes(msg)[0])
	// Output:
	// 11110000
}
