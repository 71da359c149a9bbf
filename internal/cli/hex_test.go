package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    []byte
		wantErr bool
	}{
		{"0x1e9fd", []byte{0xfd, 0xe9, 0x01}, false},
		{"0X1E9FD", []byte{0xfd, 0xe9, 0x01}, false},
		{"0x0", []byte{0x00}, false},
		{"0x0000", []byte{0x00, 0x00}, false},
		{"0x1_0000_0000", []byte{0, 0, 0, 0, 1}, false},
		{"0x10", []byte{0x10}, false},
		{"1e9fd", nil, true},
		{"0x", nil, true},
		{"0x__", nil, true},
		{"0xg1", nil, true},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "ParseHex(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "ParseHex(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseHex(%q)", tt.in)
	}
}

func TestFormatHex(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   []byte
		want string
	}{
		{nil, "0x0"},
		{[]byte{0x00}, "0x00"},
		{[]byte{30, 0}, "0x001e"},
		{[]byte{0xfd, 0xe9, 0x01}, "0x01e9fd"},
		{[]byte{0x04, 0x03, 0x02, 0x01}, "0x01020304"},
		{[]byte{0x05, 0x04, 0x03, 0x02, 0x01}, "0x01_02030405"},
		{[]byte{8, 7, 6, 5, 4, 3, 2, 1, 0xff}, "0xff_01020304_05060708"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatHex(tt.in), "FormatHex(%v)", tt.in)
	}
}

func TestFormatHexRoundTrip(t *testing.T) {
	t.Parallel()
	in := []byte{0x00, 0x10, 0x32, 0x54, 0x76, 0x98, 0xba, 0xdc, 0xfe, 0x00}
	got, err := ParseHex(FormatHex(in))
	require.NoError(t, err)
	assert.Equal(t, in, got, "high zero bytes survive the round trip")
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "[fd e9 01]", FormatBytes([]byte{0xfd, 0xe9, 0x01}))
	assert.Equal(t, "[]", FormatBytes(nil))
}

func TestValidName(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"a", "sum", "_tmp", "x1", "Big_2"} {
		assert.True(t, validName(name), name)
	}
	for _, name := range []string{"", "1x", "0x1", "a-b", "é"} {
		assert.False(t, validName(name), name)
	}
}
