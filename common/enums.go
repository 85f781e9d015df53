// Package common keeps enumerations shared between configuration, rules and
// output so none of them has to import the others.
package common

// Kinds of blocks which may be left out of nesting depth computation.
// ENUM(blockless-conditionals, pseudo-only)
type IgnoreKind int

// Severity of reported problems.
// ENUM(error, warning)
type Severity int

// IsError is true for problems which should fail the run.
func (s Severity) IsError() bool {
	return s == SeverityError
}

// Specification of requested report format.
// ENUM(text, json)
type OutputFmt int

// Stylesheet dialect, selects tokenizer extensions.
// ENUM(css, scss, less)
type Syntax int

// SyntaxFromExt guesses dialect from file name extension, plain CSS is assumed
// for anything unknown.
func SyntaxFromExt(ext string) Syntax {
	switch ext {
	case ".scss", ".sass":
		return SyntaxScss
	case ".less":
		return SyntaxLess
	default:
		return SyntaxCss
	}
}

// HasLineComments reports whether "//" starts a comment in this dialect.
func (s Syntax) HasLineComments() bool {
	return s == SyntaxScss || s == SyntaxLess
}
