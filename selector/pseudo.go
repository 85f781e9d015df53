package selector

import (
	"strings"

	"cssnest/match"
)

// parentPseudo is nesting parent reference immediately followed by a colon.
const parentPseudo = "&:"

// PseudoSuffix returns what follows "&:" at the start of the selector
// component. The remainder is not validated, "&:hover .a" yields "hover .a".
func PseudoSuffix(sel string) (string, bool) {
	if !strings.HasPrefix(sel, parentPseudo) {
		return "", false
	}
	return sel[len(parentPseudo):], true
}

// IsPseudoOnly is true when every component of the selector list is a parent
// reference with pseudo-class. Empty list is not pseudo-only.
func IsPseudoOnly(sel string) bool {
	return every(Split(sel), func(part string) bool {
		_, ok := PseudoSuffix(part)
		return ok
	})
}

// MatchesIgnoredPseudo is true when selector component has pseudo suffix
// accepted by any of the patterns.
func MatchesIgnoredPseudo(sel string, patterns match.List) bool {
	suffix, ok := PseudoSuffix(sel)
	return ok && patterns.Any(suffix)
}

// AllIgnoredPseudo is true when every component of the selector list matches
// ignored pseudo-classes. Empty list never matches.
func AllIgnoredPseudo(sel string, patterns match.List) bool {
	if len(patterns) == 0 {
		return false
	}
	return every(Split(sel), func(part string) bool {
		return MatchesIgnoredPseudo(part, patterns)
	})
}

func every(parts []string, fn func(string) bool) bool {
	if len(parts) == 0 {
		return false
	}
	for _, p := range parts {
		if !fn(p) {
			return false
		}
	}
	return true
}
