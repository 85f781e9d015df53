package lint

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"cssnest/common"
	"cssnest/css"
)

type entry struct {
	rule     Rule
	severity common.Severity
}

// Registry keeps rules enabled for the run. Rules are added explicitly and
// executed in registration order. Registry is not modified after setup and
// may be used from several goroutines.
type Registry struct {
	log     *zap.Logger
	entries []entry
	index   map[string]int
}

func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		log:   log.Named("registry"),
		index: make(map[string]int),
	}
}

// Register adds rule reported with given severity. Names must be unique.
func (r *Registry) Register(rule Rule, severity common.Severity) error {
	name := rule.Name()
	if name == "" || name == SyntaxErrorRule {
		return fmt.Errorf("invalid rule name %q", name)
	}
	if !severity.IsValid() {
		return fmt.Errorf("rule %s: %w", name, common.ErrInvalidSeverity)
	}
	if _, exists := r.index[name]; exists {
		return fmt.Errorf("rule %s is already registered", name)
	}
	r.index[name] = len(r.entries)
	r.entries = append(r.entries, entry{rule: rule, severity: severity})
	r.log.Debug("Rule registered", zap.String("rule", name), zap.Stringer("severity", severity))
	return nil
}

// Lookup returns registered rule by name.
func (r *Registry) Lookup(name string) (Rule, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.entries[i].rule, true
}

// Names returns names of registered rules in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		names = append(names, e.rule.Name())
	}
	return names
}

// Len returns number of registered rules.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Check runs every registered rule over the tree. Diagnostics are ordered by
// position, rule failures are returned as error after all rules had a chance
// to run.
func (r *Registry) Check(tree *css.Tree) ([]Diagnostic, error) {
	var (
		out  []Diagnostic
		errs []error
	)
	for _, e := range r.entries {
		c := &collector{tree: tree, rule: e.rule.Name(), severity: e.severity}
		if err := e.rule.Check(tree, c); err != nil {
			errs = append(errs, fmt.Errorf("rule %s failed on %s: %w", e.rule.Name(), tree.Source, err))
			continue
		}
		out = append(out, c.out...)
	}
	SortDiagnostics(out)
	if len(errs) > 0 {
		return out, multierr.Combine(errs...)
	}
	return out, nil
}

// SortDiagnostics orders diagnostics by source (naturally, "file2" before
// "file10"), line and column keeping relative order of problems reported at
// the same place.
func SortDiagnostics(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		return cmp.Or(
			compareSources(a.Source, b.Source),
			cmp.Compare(a.Line, b.Line),
			cmp.Compare(a.Column, b.Column),
		)
	})
}

func compareSources(a, b string) int {
	switch {
	case a == b:
		return 0
	case natural.Less(a, b):
		return -1
	default:
		return 1
	}
}

// Count returns number of error and warning level diagnostics.
func Count(diags []Diagnostic) (errors, warnings int) {
	for _, d := range diags {
		if d.Severity.IsError() {
			errors++
		} else {
			warnings++
		}
	}
	return errors, warnings
}
