package selector

import (
	"regexp"
	"strings"
)

var (
	interpolationPattern = regexp.MustCompile(`#\{.+?\}|@\{.+?\}|\$\(.+?\)|\{.+?\}`)
	lessExtendPattern    = regexp.MustCompile(`:extend(?:\(.*?\))?`)
	lessMixinCallPattern = regexp.MustCompile(`\.[\w-]+\(.*\).+`)
	lessParametricMixin  = regexp.MustCompile(`\(@.*\)$`)
)

// IsStandardSyntax reports whether selector is plain CSS rather than a
// preprocessor construct (interpolation, placeholders, nested properties,
// mixins, template tags).
func IsStandardSyntax(sel string) bool {
	switch {
	case interpolationPattern.MatchString(sel):
		return false
	case strings.HasPrefix(sel, "%"):
		// scss placeholder
		return false
	case strings.HasSuffix(sel, ":"):
		// scss nested properties, "font: { family: x; }"
		return false
	case lessExtendPattern.MatchString(sel):
		return false
	case lessMixinCallPattern.MatchString(sel):
		return false
	case strings.HasSuffix(sel, ")") && !strings.Contains(sel, ":"):
		// less mixin definition, ".mixin() { }"
		return false
	case lessParametricMixin.MatchString(sel):
		return false
	case strings.Contains(sel, "<%") || strings.Contains(sel, "%>"):
		return false
	case strings.Contains(sel, "//"):
		return false
	}
	return true
}
