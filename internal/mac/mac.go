// Package mac normalizes and validates IEEE 802 MAC addresses.
//
// Input is accepted in any of the common textual forms (colon-separated,
// dash-separated, Cisco dotted, or bare hex, in any case). All forms map to a
// single canonical representation, colon-separated uppercase hex
// ("AA:BB:CC:DD:EE:FF"), which the registry uses as its unique key.
package mac

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidMAC indicates the input does not contain exactly 12 hex digits.
var ErrInvalidMAC = errors.New("invalid MAC address")

const (
	// CanonicalLength is the length of a canonical MAC string
	// (6 groups of 2 hex digits plus 5 colons).
	CanonicalLength = 17

	// ByteLength is the length of a MAC address in raw bytes.
	ByteLength = 6

	hexDigits = 12
)

// Normalize strips every character that is not a hexadecimal digit and, if
// exactly 12 digits remain, returns the canonical colon-separated uppercase
// form. Any other input returns "".
//
// Accepting arbitrary separators and case maximizes compatibility with MAC
// strings copy-pasted from different OS tools (ipconfig, ip link, ifconfig,
// switch CLIs) while guaranteeing a single stored form for equality checks.
func Normalize(input string) string {
	var cleaned strings.Builder
	cleaned.Grow(hexDigits)

	for _, r := range input {
		if isHexDigit(r) {
			cleaned.WriteRune(r)
		}
	}

	if cleaned.Len() != hexDigits {
		return ""
	}

	hex := strings.ToUpper(cleaned.String())

	var canonical strings.Builder
	canonical.Grow(CanonicalLength)

	for i := 0; i < hexDigits; i += 2 {
		if i > 0 {
			canonical.WriteByte(':')
		}
		canonical.WriteString(hex[i : i+2])
	}

	return canonical.String()
}

// Valid reports whether input normalizes to a canonical MAC address.
func Valid(input string) bool {
	return len(Normalize(input)) == CanonicalLength
}

// Bytes parses input into its 6-byte hardware form.
// Returns ErrInvalidMAC if the input does not normalize.
func Bytes(input string) ([]byte, error) {
	canonical := Normalize(input)
	if canonical == "" {
		return nil, ErrInvalidMAC
	}

	buf := make([]byte, 0, ByteLength)
	for _, group := range strings.Split(canonical, ":") {
		b, err := strconv.ParseUint(group, 16, 8)
		if err != nil {
			// Unreachable after Normalize, but keep the contract explicit.
			return nil, ErrInvalidMAC
		}
		buf = append(buf, byte(b))
	}

	return buf, nil
}

func isHexDigit(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'f':
		return true
	case r >= 'A' && r <= 'F':
		return true
	}
	return false
}
