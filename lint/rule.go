// Package lint connects stylesheet trees, rules and diagnostics.
package lint

import (
	"cssnest/common"
	"cssnest/css"
)

// Reporter receives problems found by a rule in a single tree.
type Reporter interface {
	Report(node css.NodeID, message string)
}

// Rule checks stylesheet tree and reports problems. Rules must not modify tree.
type Rule interface {
	Name() string
	Check(tree *css.Tree, r Reporter) error
}

// SyntaxErrorRule names pseudo rule used for stylesheets which could not be
// parsed.
const SyntaxErrorRule = "syntax-error"

// Diagnostic is a single reported problem.
type Diagnostic struct {
	Rule     string          `json:"rule"`
	Severity common.Severity `json:"severity"`
	Message  string          `json:"message"`
	Source   string          `json:"source"`
	Line     int             `json:"line"`
	Column   int             `json:"column"`
}

// FromSyntaxError converts parser failure into diagnostic so it is reported
// along with rule problems.
func FromSyntaxError(err *css.SyntaxError) Diagnostic {
	return Diagnostic{
		Rule:     SyntaxErrorRule,
		Severity: common.SeverityError,
		Message:  err.Reason,
		Source:   err.Source,
		Line:     err.Pos.Line,
		Column:   err.Pos.Column,
	}
}

// collector turns node level reports into diagnostics for a single rule.
type collector struct {
	tree     *css.Tree
	rule     string
	severity common.Severity
	out      []Diagnostic
}

func (c *collector) Report(node css.NodeID, message string) {
	pos := c.tree.NodePosition(node)
	c.out = append(c.out, Diagnostic{
		Rule:     c.rule,
		Severity: c.severity,
		Message:  message,
		Source:   c.tree.Source,
		Line:     pos.Line,
		Column:   pos.Column,
	})
}
