package nesting

import (
	"fmt"

	"go.uber.org/zap"

	"cssnest/css"
	"cssnest/lint"
	"cssnest/selector"
)

// Name is the rule name used in configuration and diagnostics.
const Name = "max-nesting-depth"

// Message returns text of the reported problem.
func Message(maxDepth int) string {
	return fmt.Sprintf("Expected nesting depth to be no more than %d", maxDepth)
}

// Rule is max-nesting-depth rule. It holds no state besides options and is
// safe for concurrent use.
type Rule struct {
	opts Options
	log  *zap.Logger
}

// New validates options and creates rule.
func New(opts Options, log *zap.Logger) (*Rule, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("invalid %s options: %w", Name, err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Rule{opts: opts, log: log.Named(Name)}, nil
}

func (r *Rule) Name() string {
	return Name
}

// Options returns rule configuration.
func (r *Rule) Options() Options {
	return r.opts
}

// Check reports every rule and @-rule with block nested deeper than allowed.
func (r *Rule) Check(tree *css.Tree, rep lint.Reporter) error {
	msg := Message(r.opts.MaxDepth)
	for id, n := range tree.Statements() {
		if !r.candidate(tree, id, n) {
			continue
		}
		depth, err := r.Depth(tree, id)
		if err != nil {
			return err
		}
		if depth > r.opts.MaxDepth {
			r.log.Debug("Nesting is too deep",
				zap.String("source", tree.Source),
				zap.Stringer("position", tree.NodePosition(id)),
				zap.Int("depth", depth))
			rep.Report(id, msg)
		}
	}
	return nil
}

func (r *Rule) candidate(tree *css.Tree, id css.NodeID, n *css.Node) bool {
	if r.isIgnoredConditional(tree, id) || !n.HasBlock {
		return false
	}
	if n.Kind == css.KindRule && !selector.IsStandardSyntax(n.Selector) {
		return false
	}
	return true
}
