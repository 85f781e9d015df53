package css

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/ianaindex"
)

var (
	utf8BOM       = []byte{0xEF, 0xBB, 0xBF}
	charsetPrefix = []byte(`@charset "`)
)

// Decode converts stylesheet text to UTF-8. Encoding declared with @charset
// wins, fallback (IANA name, may be empty) is only used for input which is not
// valid UTF-8.
func Decode(data []byte, fallback string) ([]byte, error) {
	if bytes.HasPrefix(data, utf8BOM) {
		return data[len(utf8BOM):], nil
	}

	name := declaredCharset(data)
	switch {
	case name != "":
	case utf8.Valid(data):
		return data, nil
	case fallback != "":
		name = fallback
	default:
		return nil, fmt.Errorf("stylesheet is not valid UTF-8 and no charset was specified")
	}

	if n := strings.ToLower(name); n == "utf-8" || n == "utf8" {
		return data, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown stylesheet charset %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported stylesheet charset %q", name)
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("unable to decode stylesheet from %q: %w", name, err)
	}
	return out, nil
}

// declaredCharset extracts name from `@charset "name";` which must be the very
// first thing in the stylesheet. The rule itself is plain ASCII in any
// ASCII-compatible encoding.
func declaredCharset(data []byte) string {
	if !bytes.HasPrefix(data, charsetPrefix) {
		return ""
	}
	rest := data[len(charsetPrefix):]
	end := bytes.Index(rest, []byte(`";`))
	if end <= 0 {
		return ""
	}
	return string(rest[:end])
}
