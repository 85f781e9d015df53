package nesting

import (
	"errors"
	"fmt"

	"cssnest/css"
)

var (
	ErrMissingParent = errors.New("node has no parent")
	ErrMalformedTree = errors.New("parent does not precede node")
)

// InvariantError means tree handed to the rule is malformed. It is never a
// problem of the checked stylesheet.
type InvariantError struct {
	Source string
	Node   css.NodeID
	Err    error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: node %d: %v", e.Source, e.Node, e.Err)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}

// Depth computes nesting depth of the node walking up parent links. Top level
// statements and statements directly inside top level @-rule have depth 0. An
// ancestor @-rule with ignored name makes depth 0 regardless of levels
// already counted.
func (r *Rule) Depth(tree *css.Tree, id css.NodeID) (int, error) {
	if tree.IsRoot(id) {
		return 0, nil
	}

	level := 0
	for node := id; ; {
		parent, ok := tree.Parent(node)
		if !ok {
			return 0, &InvariantError{Source: tree.Source, Node: node, Err: ErrMissingParent}
		}
		// Parents always precede children in the arena, this also rules out
		// cycles.
		if parent >= node {
			return 0, &InvariantError{Source: tree.Source, Node: node, Err: ErrMalformedTree}
		}

		if r.isIgnoredConditional(tree, parent) {
			return 0, nil
		}
		if tree.IsRoot(parent) {
			return level, nil
		}
		if tree.Kind(parent) == css.KindAtRule {
			if grand, ok := tree.Parent(parent); ok && tree.IsRoot(grand) {
				return level, nil
			}
		}

		if !r.suppressesOwnLevel(tree, node) {
			level++
		}
		node = parent
	}
}
