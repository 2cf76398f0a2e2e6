// Package format holds the enumerations shared by the canbits wire formats.
package format

type (
	CompressionType uint8
	ByteOrder       uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone stores the trace payload as is.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 block compression.
)

const (
	LittleEndian ByteOrder = 0x0 // LittleEndian stores header and record integers LSB first.
	BigEndian    ByteOrder = 0x1 // BigEndian stores header and record integers MSB first.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Valid reports whether c is one of the known compression types.
func (c CompressionType) Valid() bool {
	return c >= CompressionNone && c <= CompressionLZ4
}

func (b ByteOrder) String() string {
	switch b {
	case LittleEndian:
		return "LittleEndian"
	case BigEndian:
		return "BigEndian"
	default:
		return "Unknown"
	}
}
