package css

import (
	"bytes"
	"slices"
)

// blankLineComments returns copy of the SCSS/Less text with "//" comments
// replaced by spaces, so the lexer never sees them while offsets and line
// numbers stay the same. Strings, block comments and url() are left alone.
func blankLineComments(data []byte) []byte {
	out := slices.Clone(data)
	for i := 0; i < len(out); i++ {
		switch c := out[i]; {
		case c == '\\':
			i++
		case c == '"' || c == '\'':
			i = skipString(out, i)
		case c == '/' && i+1 < len(out) && out[i+1] == '*':
			end := bytes.Index(out[i+2:], []byte("*/"))
			if end < 0 {
				return out
			}
			i += end + 3
		case c == '/' && i+1 < len(out) && out[i+1] == '/':
			for ; i < len(out) && !isNewline(out[i]); i++ {
				out[i] = ' '
			}
		case (c == 'u' || c == 'U') && isURL(out, i):
			i = skipURL(out, i)
		}
	}
	return out
}

// skipString returns index of the closing quote. Unterminated string ends
// before the line break.
func skipString(data []byte, i int) int {
	quote := data[i]
	for j := i + 1; j < len(data); j++ {
		switch {
		case data[j] == '\\':
			j++
		case data[j] == quote:
			return j
		case isNewline(data[j]):
			return j - 1
		}
	}
	return len(data) - 1
}

func isURL(data []byte, i int) bool {
	if i+4 > len(data) || !bytes.EqualFold(data[i:i+4], []byte("url(")) {
		return false
	}
	return i == 0 || !isNameByte(data[i-1])
}

// skipURL returns index of ")" closing url( starting at i.
func skipURL(data []byte, i int) int {
	for j := i + 4; j < len(data); j++ {
		switch data[j] {
		case '\\':
			j++
		case '"', '\'':
			j = skipString(data, j)
		case ')':
			return j
		}
	}
	return len(data) - 1
}

func isNewline(c byte) bool {
	return c == '\n' || c == '\r' || c == '\f'
}

func isNameByte(c byte) bool {
	return c == '-' || c == '_' || c >= 0x80 ||
		'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}
