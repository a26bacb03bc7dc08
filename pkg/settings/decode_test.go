package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRoundTripsEveryCommand(t *testing.T) {
	for _, c := range InitialRegistry().Commands() {
		got, err := Decode(CommandData(c))
		require.NoError(t, err, "%s=%s", c.Name(), c.Value())
		assert.Equal(t, c, got)
	}
}

func TestDecodeLocalControlAnyChannel(t *testing.T) {
	got, err := Decode([]byte{0xB5, 0x7A, 0x7F})
	require.NoError(t, err)
	assert.Equal(t, LocalControlOn, got)
}

func TestDecodeAcceptsAnyCounter(t *testing.T) {
	got, err := Decode([]byte{0xF0, 0x00, 0x20, 0x6B, 0x05, 0x01, 0x2A, 0x36, 0x03, 0xF7})
	require.NoError(t, err)
	assert.Equal(t, GateLong, got)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrTooShort},
		{"other controller", []byte{0xB0, 0x07, 0x64}, ErrUnknownMessage},
		{"local control half", []byte{0xB0, 0x7A, 0x40}, ErrUnknownMessage},
		{"note on", []byte{0x90, 0x3C, 0x64}, ErrUnknownMessage},
		{"missing end", []byte{0xF0, 0x00, 0x20, 0x6B, 0x05}, ErrNotSysEx},
		{"8-bit data", []byte{0xF0, 0x00, 0x20, 0x6B, 0x85, 0xF7}, ErrNotSysEx},
		{"behringer", []byte{0xF0, 0x00, 0x20, 0x32, 0x00, 0xF7}, ErrUnknownVendor},
		{"wrong family", []byte{0xF0, 0x00, 0x20, 0x6B, 0x06, 0x01, 0x00, 0x0B, 0x02, 0xF7}, ErrUnknownMessage},
		{"unknown param", frame(0x40, 0x00), ErrUnknownMessage},
		{"value out of table", frame(0x0B, 0x05), ErrUnknownMessage},
		{"bend zero", frame(0x2C, 0x00), ErrUnknownMessage},
		{"bend thirteen", frame(0x2C, 13), ErrUnknownMessage},
		{"transmit all", frame(0x07, 0x10), ErrUnknownMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestIsArturiaSyx(t *testing.T) {
	assert.True(t, IsArturiaSyx(CommandData(SyncExternal)))
	assert.False(t, IsArturiaSyx([]byte{0xF0, 0x00, 0x20, 0x32, 0x00, 0xF7}))
	assert.False(t, IsArturiaSyx([]byte{0xF0, 0xF7}))
}

func TestParseHex(t *testing.T) {
	want := []byte{0xF0, 0x00, 0x20, 0x6B}
	for _, in := range []string{"F0 00 20 6B", "f000206b", "0xF0, 0x00, 0x20, 0x6B", "  F0\n00\t20 6b "} {
		t.Run(in, func(t *testing.T) {
			got, err := ParseHex(in)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	_, err := ParseHex("F0 0")
	assert.Error(t, err)
	_, err = ParseHex("zz")
	assert.Error(t, err)
}

func TestFormatHex(t *testing.T) {
	assert.Equal(t, "B0 7A 7F", FormatHex(CommandData(LocalControlOn)))
}
