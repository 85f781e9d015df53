package config

import (
	"fmt"

	yaml "gopkg.in/yaml.v3"

	"cssnest/common"
	"cssnest/match"
)

type matcherState struct {
	Literal string `yaml:"literal,omitempty"`
	Pattern string `yaml:"pattern,omitempty"`
}

type nestingRuleState struct {
	Enabled                 bool                `yaml:"enabled"`
	Severity                common.Severity     `yaml:"severity"`
	MaxDepth                int                 `yaml:"max_depth"`
	Ignore                  []common.IgnoreKind `yaml:"ignore"`
	IgnoredConditionalNames []matcherState      `yaml:"ignored_conditional_names"`
	IgnoredPseudoClasses    []matcherState      `yaml:"ignored_pseudo_classes"`
}

func matchers(l match.List) []matcherState {
	out := make([]matcherState, 0, len(l))
	for i, s := range l.Strings() {
		if l[i].IsPattern() {
			out = append(out, matcherState{Pattern: s})
			continue
		}
		out = append(out, matcherState{Literal: s})
	}
	return out
}

// DumpRules returns rule options the way rules receive them: every option
// value compiled and marked as literal or pattern.
func DumpRules(rules *RulesConfig) ([]byte, error) {
	conf := &rules.MaxNestingDepth
	opts, err := conf.Options()
	if err != nil {
		return nil, fmt.Errorf("max_nesting_depth: %w", err)
	}

	state := map[string]nestingRuleState{
		"max_nesting_depth": {
			Enabled:                 conf.Enabled,
			Severity:                conf.Severity,
			MaxDepth:                opts.MaxDepth,
			Ignore:                  opts.Ignore,
			IgnoredConditionalNames: matchers(opts.IgnoredConditionalNames),
			IgnoredPseudoClasses:    matchers(opts.IgnoredPseudoClasses),
		},
	}
	data, err := yaml.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rules to yaml: %w", err)
	}
	return data, nil
}
