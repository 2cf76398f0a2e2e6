package bitpack

import (
	"fmt"
	"strings"
)

// MessageBytes is the number of bytes in a 64-bit message.
const MessageBytes = 8

// RenderBytes returns the binary form of each byte of a 64-bit message.
//
// Row 0 is byte 0 (the most significant byte), and every row is eight '0'/'1'
// characters with the most significant bit first.
func RenderBytes(value uint64) [MessageBytes]string {
	var rows [MessageBytes]string
	copy(rows[:], Render(value))

	return rows
}

// Render returns one binary row per byte of value, byte 0 first.
func Render[T Word](value T) []string {
	w := Width[T]()
	n := int(w / BitsPerByte)
	rows := make([]string, n)
	for i := range n {
		shift := uint(w) - uint(i+1)*BitsPerByte
		rows[i] = fmt.Sprintf("%08b", uint8(uint64(value)>>shift))
	}

	return rows
}

// FormatMessage renders a 64-bit message as eight newline separated byte rows.
func FormatMessage(value uint64) string {
	rows := RenderBytes(value)
	return strings.Join(rows[:], "\n")
}
