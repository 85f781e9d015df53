package nesting

import (
	"cssnest/common"
	"cssnest/css"
	"cssnest/selector"
)

// isIgnoredConditional reports @-rules excluded by name. Everything inside
// such @-rule is left alone.
func (r *Rule) isIgnoredConditional(tree *css.Tree, id css.NodeID) bool {
	n := tree.Node(id)
	if n == nil || n.Kind != css.KindAtRule {
		return false
	}
	return r.opts.IgnoredConditionalNames.Any(n.Name)
}

// suppressesOwnLevel reports nodes which do not add level for their
// descendants while ascent continues past them.
func (r *Rule) suppressesOwnLevel(tree *css.Tree, id css.NodeID) bool {
	n := tree.Node(id)
	if n == nil {
		return false
	}
	switch n.Kind {
	case css.KindAtRule:
		return r.opts.ignores(common.IgnoreKindBlocklessConditionals) && !tree.HasDeclarations(id)
	case css.KindRule:
		if r.opts.ignores(common.IgnoreKindPseudoOnly) && selector.IsPseudoOnly(n.Selector) {
			return true
		}
		return selector.AllIgnoredPseudo(n.Selector, r.opts.IgnoredPseudoClasses)
	}
	return false
}
