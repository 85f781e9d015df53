// Package match implements option values which can be either literal strings
// or regular expressions written as "/expr/flags".
//
// Patterns use ECMAScript syntax, so expressions copied from other style
// checkers configurations keep their meaning.
package match

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// matchTimeout bounds backtracking of a single pattern evaluation.
const matchTimeout = 250 * time.Millisecond

// Matcher is either a literal or a compiled pattern. Zero value matches
// empty string only.
type Matcher struct {
	raw     string
	literal string
	re      *regexp2.Regexp
}

// Literal returns matcher comparing strings for equality.
func Literal(s string) Matcher {
	return Matcher{raw: s, literal: s}
}

// Pattern compiles ECMAScript regular expression with given flags ("i", "m",
// "s" and "u" are recognized, "g" and "y" have no meaning here and are
// accepted silently).
func Pattern(expr, flags string) (Matcher, error) {
	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	for _, f := range flags {
		switch f {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			opts |= regexp2.Singleline
		case 'u':
			opts |= regexp2.Unicode
		case 'g', 'y':
		default:
			return Matcher{}, fmt.Errorf("unsupported regular expression flag %q in /%s/%s", f, expr, flags)
		}
	}
	re, err := regexp2.Compile(expr, opts)
	if err != nil {
		return Matcher{}, fmt.Errorf("unable to compile regular expression /%s/%s: %w", expr, flags, err)
	}
	re.MatchTimeout = matchTimeout
	return Matcher{raw: "/" + expr + "/" + flags, re: re}, nil
}

// Parse recognizes "/expr/flags" as a pattern, anything else is a literal.
func Parse(s string) (Matcher, error) {
	if len(s) > 2 && s[0] == '/' {
		if end := strings.LastIndexByte(s, '/'); end > 0 {
			return Pattern(s[1:end], s[end+1:])
		}
	}
	return Literal(s), nil
}

// IsPattern tells literals and patterns apart.
func (m Matcher) IsPattern() bool {
	return m.re != nil
}

// String returns matcher as it was specified.
func (m Matcher) String() string {
	return m.raw
}

// Match reports whether s satisfies matcher. Pattern evaluation errors (timeouts)
// are treated as mismatch.
func (m Matcher) Match(s string) bool {
	if m.re == nil {
		return m.literal == s
	}
	ok, err := m.re.MatchString(s)
	return err == nil && ok
}

// List is an ordered set of matchers.
type List []Matcher

// ParseList converts option values to matchers, failing on the first value
// which cannot be compiled.
func ParseList(values []string) (List, error) {
	if len(values) == 0 {
		return nil, nil
	}
	l := make(List, 0, len(values))
	for _, v := range values {
		m, err := Parse(v)
		if err != nil {
			return nil, err
		}
		l = append(l, m)
	}
	return l, nil
}

// Any reports whether at least one matcher in the list accepts s.
func (l List) Any(s string) bool {
	for _, m := range l {
		if m.Match(s) {
			return true
		}
	}
	return false
}

// Strings returns list in its configuration form.
func (l List) Strings() []string {
	out := make([]string, 0, len(l))
	for _, m := range l {
		out = append(out, m.String())
	}
	return out
}
