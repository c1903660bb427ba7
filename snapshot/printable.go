package snapshot

import "fmt"

// IsPrintable reports whether c is a printable ASCII character,
// including the common whitespace characters.
func IsPrintable(c byte) bool {
	switch c {
	case '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return c >= 0x20 && c < 0x7f
}

// EscapeByte renders c for use inside a double-quoted C string.
func EscapeByte(c byte) string {
	switch c {
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	case '\r':
		return `\r`
	case '\v':
		return `\v`
	case '\f':
		return `\f`
	case '"':
		return `\"`
	case '\\':
		return `\\`
	}
	if c >= 0x20 && c < 0x7f {
		return string(rune(c))
	}
	return fmt.Sprintf(`\x%02x`, c)
}

// EscapeBytes renders b for use inside a double-quoted C string.
func EscapeBytes(b []byte) string {
	s := ""
	for _, c := range b {
		s += EscapeByte(c)
	}
	return s
}
