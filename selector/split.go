// Package selector has the string level selector analysis needed by rules:
// splitting selector lists, recognizing parent-plus-pseudo-class components and
// telling plain CSS selectors from preprocessor constructs.
package selector

import (
	"strings"
)

// Split breaks selector list into its comma separated components. Commas
// inside parentheses, brackets, interpolation braces and strings do not split.
// Components are trimmed, empty ones are dropped.
func Split(sel string) []string {
	var (
		out   []string
		level int
		quote byte
		start int
	)

	add := func(part string) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	for i := 0; i < len(sel); i++ {
		c := sel[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '\\':
			i++
		case '"', '\'':
			quote = c
		case '(', '[', '{':
			level++
		case ')', ']', '}':
			if level > 0 {
				level--
			}
		case ',':
			if level == 0 {
				add(sel[start:i])
				start = i + 1
			}
		}
	}
	add(sel[start:])
	return out
}
