package bitpack

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderBytes(t *testing.T) {
	rows := RenderBytes(0x0D000000000000C5)

	require.Equal(t, "00001101", rows[0])
	require.Equal(t, "11000101", rows[7])
	for _, row := range rows[1:7] {
		require.Equal(t, "00000000", row)
	}

	for _, row := range RenderBytes(^uint64(0)) {
		require.Equal(t, "11111111", row)
	}
}

func TestRender_Widths(t *testing.T) {
	require.Equal(t, []string{"10000001"}, Render(uint8(0x81)))
	require.Equal(t, []string{"00000001", "10000000"}, Render(uint16(0x0180)))
	require.Equal(t, []string{"11111111", "00000000", "00001111", "11110000"}, Render(uint32(0xFF000FF0)))
	require.Len(t, Render(uint64(0)), 8)
}

func TestFormatMessage(t *testing.T) {
	var msg uint64
	require.NoError(t, Encode(&msg, 0b10111, 6, 5))

	out := FormatMessage(msg)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 8)
	require.Equal(t, "11000000", lines[0])
	require.Equal(t, "00000101", lines[1])
	require.False(t, strings.HasSuffix(out, "\n"))
}
