package lint

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"cssnest/common"
	"cssnest/css"
)

// everyRule reports every statement, optionally failing afterwards.
type everyRule struct {
	name string
	err  error
}

func (r *everyRule) Name() string { return r.name }

func (r *everyRule) Check(tree *css.Tree, rep Reporter) error {
	for id := range tree.Statements() {
		rep.Report(id, "seen "+r.name)
	}
	return r.err
}

func testTree(t *testing.T) *css.Tree {
	t.Helper()
	tree, err := css.NewParser(zap.NewNop()).Parse([]byte("a {\n  b { }\n}\nc { }"), "style.css", common.SyntaxCss)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return tree
}

func TestRegistry_Register(t *testing.T) {
	reg := NewRegistry(zaptest.NewLogger(t))

	if err := reg.Register(&everyRule{name: "first"}, common.SeverityError); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := reg.Register(&everyRule{name: "second"}, common.SeverityWarning); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := reg.Register(&everyRule{name: "first"}, common.SeverityWarning); err == nil {
		t.Error("expected error for duplicate rule")
	}
	if err := reg.Register(&everyRule{name: ""}, common.SeverityWarning); err == nil {
		t.Error("expected error for empty name")
	}
	if err := reg.Register(&everyRule{name: SyntaxErrorRule}, common.SeverityWarning); err == nil {
		t.Error("expected error for reserved name")
	}
	if err := reg.Register(&everyRule{name: "third"}, common.Severity(7)); !errors.Is(err, common.ErrInvalidSeverity) {
		t.Errorf("expected ErrInvalidSeverity, got %v", err)
	}

	if got := reg.Names(); !slices.Equal(got, []string{"first", "second"}) {
		t.Errorf("unexpected names %v", got)
	}
	if reg.Len() != 2 {
		t.Errorf("expected 2 rules, got %d", reg.Len())
	}
	if r, ok := reg.Lookup("second"); !ok || r.Name() != "second" {
		t.Error("expected to find 'second'")
	}
	if _, ok := reg.Lookup("missing"); ok {
		t.Error("unexpected rule found")
	}
}

func TestRegistry_Check(t *testing.T) {
	reg := NewRegistry(nil)
	_ = reg.Register(&everyRule{name: "first"}, common.SeverityError)
	_ = reg.Register(&everyRule{name: "second"}, common.SeverityWarning)

	diags, err := reg.Check(testTree(t))
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	want := []string{
		"style.css:1:1 first error",
		"style.css:1:1 second warning",
		"style.css:2:3 first error",
		"style.css:2:3 second warning",
		"style.css:4:1 first error",
		"style.css:4:1 second warning",
	}
	var got []string
	for _, d := range diags {
		got = append(got, d.Source+":"+css.Position{Line: d.Line, Column: d.Column}.String()+" "+d.Rule+" "+d.Severity.String())
	}
	if !slices.Equal(got, want) {
		t.Errorf("unexpected diagnostics\n got: %v\nwant: %v", got, want)
	}

	errs, warns := Count(diags)
	if errs != 3 || warns != 3 {
		t.Errorf("expected 3 errors and 3 warnings, got %d and %d", errs, warns)
	}
}

func TestRegistry_CheckFailure(t *testing.T) {
	boom := errors.New("boom")
	reg := NewRegistry(nil)
	_ = reg.Register(&everyRule{name: "broken", err: boom}, common.SeverityError)
	_ = reg.Register(&everyRule{name: "fine"}, common.SeverityWarning)

	diags, err := reg.Check(testTree(t))
	if !errors.Is(err, boom) {
		t.Fatalf("expected rule error, got %v", err)
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("expected rule name in error, got '%s'", err)
	}
	// Rules after the failed one still run, failed rule results are dropped.
	if len(diags) != 3 {
		t.Errorf("expected 3 diagnostics, got %d", len(diags))
	}
}

func TestSortDiagnostics(t *testing.T) {
	diags := []Diagnostic{
		{Source: "file10.css", Line: 1, Column: 1},
		{Source: "file2.css", Line: 3, Column: 1},
		{Source: "file2.css", Line: 1, Column: 5, Rule: "b"},
		{Source: "file2.css", Line: 1, Column: 5, Rule: "a"},
		{Source: "file2.css", Line: 1, Column: 2},
	}
	SortDiagnostics(diags)

	want := []string{"file2.css:1:2", "file2.css:1:5b", "file2.css:1:5a", "file2.css:3:1", "file10.css:1:1"}
	var got []string
	for _, d := range diags {
		got = append(got, d.Source+":"+css.Position{Line: d.Line, Column: d.Column}.String()+d.Rule)
	}
	if !slices.Equal(got, want) {
		t.Errorf("unexpected order %v, want %v", got, want)
	}
}

func TestFromSyntaxError(t *testing.T) {
	d := FromSyntaxError(&css.SyntaxError{Source: "x.css", Pos: css.Position{Line: 3, Column: 7}, Reason: "unclosed block"})
	want := Diagnostic{Rule: SyntaxErrorRule, Severity: common.SeverityError, Message: "unclosed block", Source: "x.css", Line: 3, Column: 7}
	if d != want {
		t.Errorf("FromSyntaxError() = %+v, want %+v", d, want)
	}
}

func TestFormatter(t *testing.T) {
	diags := []Diagnostic{
		{Rule: "max-nesting-depth", Severity: common.SeverityError, Message: "Too deep", Source: "a.css", Line: 2, Column: 3},
		{Rule: "other", Severity: common.SeverityWarning, Message: "Hmm", Source: "b.css", Line: 1, Column: 1},
	}

	t.Run("text", func(t *testing.T) {
		f, err := NewFormatter(common.OutputFmtText)
		if err != nil {
			t.Fatalf("NewFormatter() error = %v", err)
		}
		var buf bytes.Buffer
		if err := f.Write(&buf, diags); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		want := "a.css:2:3: error: Too deep (max-nesting-depth)\nb.css:1:1: warning: Hmm (other)\n"
		if buf.String() != want {
			t.Errorf("unexpected output:\n%s\nwant:\n%s", buf.String(), want)
		}

		buf.Reset()
		if err := f.Write(&buf, nil); err != nil || buf.Len() != 0 {
			t.Errorf("expected no output for empty list, got '%s' (%v)", buf.String(), err)
		}
	})

	t.Run("json", func(t *testing.T) {
		f, err := NewFormatter(common.OutputFmtJson)
		if err != nil {
			t.Fatalf("NewFormatter() error = %v", err)
		}
		var buf bytes.Buffer
		if err := f.Write(&buf, diags); err != nil {
			t.Fatalf("Write() error = %v", err)
		}

		var decoded []map[string]any
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid json: %v", err)
		}
		if len(decoded) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(decoded))
		}
		if decoded[0]["severity"] != "error" || decoded[1]["severity"] != "warning" {
			t.Errorf("expected severities as strings, got %v and %v", decoded[0]["severity"], decoded[1]["severity"])
		}
		if decoded[0]["line"] != float64(2) || decoded[0]["rule"] != "max-nesting-depth" {
			t.Errorf("unexpected first entry %v", decoded[0])
		}

		buf.Reset()
		if err := f.Write(&buf, nil); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		if strings.TrimSpace(buf.String()) != "[]" {
			t.Errorf("expected empty array, got '%s'", buf.String())
		}
	})

	if _, err := NewFormatter(common.OutputFmt(9)); err == nil {
		t.Error("expected error for unknown format")
	}
}
