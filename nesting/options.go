// Package nesting implements max-nesting-depth rule: it reports rules and
// @-rules nested deeper than configured maximum.
package nesting

import (
	"fmt"
	"slices"

	"cssnest/common"
	"cssnest/match"
)

// Options is immutable rule configuration.
type Options struct {
	// MaxDepth is the deepest allowed nesting level, must be >= 0.
	MaxDepth int
	// Ignore lists kinds of blocks which do not add nesting level.
	Ignore []common.IgnoreKind
	// IgnoredConditionalNames are @-rule names (without "@") under which
	// nothing is checked.
	IgnoredConditionalNames match.List
	// IgnoredPseudoClasses are pseudo-classes which do not add nesting level
	// when used as "&:pseudo".
	IgnoredPseudoClasses match.List
}

func (o *Options) validate() error {
	if o.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", o.MaxDepth)
	}
	for _, k := range o.Ignore {
		if !k.IsValid() {
			return fmt.Errorf("ignore option %d: %w", int(k), common.ErrInvalidIgnoreKind)
		}
	}
	return nil
}

func (o *Options) ignores(k common.IgnoreKind) bool {
	return slices.Contains(o.Ignore, k)
}
