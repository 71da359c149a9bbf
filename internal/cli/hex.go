package cli

import (
	"encoding/hex"
	"fmt"
	"slices"
	"strings"

	apperrors "github.com/agbru/biguint/internal/errors"
)

// hexGroup is the number of digits between '_' separators in FormatHex.
const hexGroup = 8

// IsHexLiteral reports whether s is written as a 0x-prefixed literal.
func IsHexLiteral(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// ParseHex decodes a 0x-prefixed hexadecimal literal, most significant digit
// first, into little-endian bytes. Underscores between digits are ignored so
// that FormatHex output can be read back. Leading zero digits are kept: 0x0000
// yields two zero bytes.
//
// Parameters:
//   - s: The literal, e.g. "0x1e9fd" or "0x0001_e9fd".
//
// Returns:
//   - []byte: The value in little-endian order, at least one byte long.
//   - error: A ValidationError when s is not a valid literal.
func ParseHex(s string) ([]byte, error) {
	if !IsHexLiteral(s) {
		return nil, apperrors.ValidationError{Field: "operand", Message: fmt.Sprintf("%q is not a 0x-prefixed literal", s)}
	}
	digits := strings.ReplaceAll(s[2:], "_", "")
	if digits == "" {
		return nil, apperrors.ValidationError{Field: "operand", Message: fmt.Sprintf("%q has no digits", s)}
	}
	if len(digits)%2 == 1 {
		digits = "0" + digits
	}
	b, err := hex.DecodeString(digits)
	if err != nil {
		return nil, apperrors.ValidationError{Field: "operand", Message: fmt.Sprintf("invalid literal %q: %v", s, err)}
	}
	slices.Reverse(b)
	return b, nil
}

// FormatHex renders little-endian bytes as a 0x-prefixed hexadecimal string,
// most significant digit first, with '_' every 8 digits counted from the
// least significant end. Every stored byte is rendered, so high zero bytes
// remain visible. An empty slice renders as "0x0".
func FormatHex(b []byte) string {
	if len(b) == 0 {
		return "0x0"
	}
	be := slices.Clone(b)
	slices.Reverse(be)
	digits := hex.EncodeToString(be)

	var sb strings.Builder
	sb.Grow(2 + len(digits) + len(digits)/hexGroup)
	sb.WriteString("0x")
	first := len(digits) % hexGroup
	if first == 0 {
		first = hexGroup
	}
	sb.WriteString(digits[:first])
	for i := first; i < len(digits); i += hexGroup {
		sb.WriteByte('_')
		sb.WriteString(digits[i : i+hexGroup])
	}
	return sb.String()
}

// FormatBytes renders the storage as a little-endian byte list, e.g.
// "[fd e9 01]".
func FormatBytes(b []byte) string {
	return fmt.Sprintf("[% x]", b)
}
