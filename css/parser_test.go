package css_test

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"cssnest/common"
	"cssnest/css"
)

func parse(t *testing.T, input string, syntax common.Syntax) *css.Tree {
	t.Helper()
	p := css.NewParser(zaptest.NewLogger(t))
	tree, err := p.Parse([]byte(input), "test.css", syntax)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return tree
}

// shape renders tree as "kind(label)>parent" list in arena order, root excluded.
func shape(tree *css.Tree) []string {
	var out []string
	for id, n := range tree.All() {
		if tree.IsRoot(id) {
			continue
		}
		var label string
		switch n.Kind {
		case css.KindAtRule:
			label = "@" + n.Name
		case css.KindRule:
			label = n.Selector
		case css.KindDecl:
			label = n.Name + "=" + n.Value
		}
		p, _ := tree.Parent(id)
		out = append(out, n.Kind.String()+"("+label+")>"+tree.Node(p).Kind.String())
	}
	return out
}

func TestParser_NestedRules(t *testing.T) {
	tree := parse(t, `a { color: red; b { c { } } }`, common.SyntaxCss)

	if tree.Len() != 5 {
		t.Fatalf("expected 5 nodes, got %d: %v", tree.Len(), shape(tree))
	}

	a, b, c := css.NodeID(1), css.NodeID(3), css.NodeID(4)
	if got := tree.Node(a).Selector; got != "a" {
		t.Errorf("expected selector 'a', got '%s'", got)
	}
	if decl := tree.Node(2); decl.Kind != css.KindDecl || decl.Name != "color" || decl.Value != "red" {
		t.Errorf("unexpected declaration %+v", *decl)
	}
	if p, ok := tree.Parent(b); !ok || p != a {
		t.Errorf("expected parent of 'b' to be 'a', got %d", p)
	}
	if p, ok := tree.Parent(c); !ok || p != b {
		t.Errorf("expected parent of 'c' to be 'b', got %d", p)
	}
	if !tree.Node(c).HasBlock {
		t.Error("expected empty rule to have block")
	}
	if _, ok := tree.Parent(tree.Root()); ok {
		t.Error("root must not have parent")
	}
	if !tree.HasDeclarations(a) || tree.HasDeclarations(b) {
		t.Error("HasDeclarations() mismatch")
	}
}

func TestParser_AtRules(t *testing.T) {
	input := `@import url(base.css);
@media screen and (min-width: 10px) {
  a { color: red }
}
@font-face { font-family: "X"; }`

	tree := parse(t, input, common.SyntaxCss)

	want := []string{
		"atrule(@import)>root",
		"atrule(@media)>root",
		"rule(a)>atrule",
		"decl(color=red)>rule",
		"atrule(@font-face)>root",
		`decl(font-family="X")>atrule`,
	}
	got := shape(tree)
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected tree\n got: %v\nwant: %v", got, want)
	}

	imp := tree.Node(1)
	if imp.HasBlock {
		t.Error("expected @import to have no block")
	}
	if imp.Params != "url(base.css)" {
		t.Errorf("expected @import params 'url(base.css)', got '%s'", imp.Params)
	}
	media := tree.Node(2)
	if !media.HasBlock {
		t.Error("expected @media to have block")
	}
	if media.Params != "screen and (min-width: 10px)" {
		t.Errorf("unexpected @media params '%s'", media.Params)
	}
}

func TestParser_Selectors(t *testing.T) {
	tree := parse(t, "ul >  li,\n ol   li:first-child { &:hover, &.active { } }", common.SyntaxCss)

	if got := tree.Node(1).Selector; got != "ul > li, ol li:first-child" {
		t.Errorf("unexpected selector '%s'", got)
	}
	if got := tree.Node(2).Selector; got != "&:hover, &.active" {
		t.Errorf("unexpected nested selector '%s'", got)
	}
}

func TestParser_CommentsAreSeparators(t *testing.T) {
	tree := parse(t, "/* head */ a/* x */b { /* inside */ color: /* v */ red; }", common.SyntaxCss)

	if got := tree.Node(1).Selector; got != "a b" {
		t.Errorf("expected selector 'a b', got '%s'", got)
	}
	if got := tree.Node(2).Value; got != "red" {
		t.Errorf("expected value 'red', got '%s'", got)
	}
}

func TestParser_Positions(t *testing.T) {
	tree := parse(t, "a {\n  b {\n    c {}\n  }\n}\n", common.SyntaxCss)

	tests := []struct {
		id   css.NodeID
		line int
		col  int
	}{
		{1, 1, 1},
		{2, 2, 3},
		{3, 3, 5},
	}
	for _, tt := range tests {
		pos := tree.NodePosition(tt.id)
		if pos.Line != tt.line || pos.Column != tt.col {
			t.Errorf("node %d: expected %d:%d, got %s", tt.id, tt.line, tt.col, pos)
		}
	}
}

func TestParser_LineComments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "brace in comment",
			input: "a {\n  // b {\n  c { }\n}\n",
			want:  []string{"rule(a)>root", "rule(c)>rule"},
		},
		{
			name:  "quote in comment",
			input: "a {\n  // don't do this\n  b { c { } }\n}\n",
			want:  []string{"rule(a)>root", "rule(b)>rule", "rule(c)>rule"},
		},
		{
			name:  "block comment start in comment",
			input: "// see /* here\na { b { } }\n",
			want:  []string{"rule(a)>root", "rule(b)>rule"},
		},
		{
			name:  "comment at end of file",
			input: "a { } // last",
			want:  []string{"rule(a)>root"},
		},
		{
			name:  "slashes in url and strings",
			input: "a { background: url(http://x.org/i.png); content: \"//\"; b { } }",
			want: []string{
				"rule(a)>root",
				"decl(background=url(http://x.org/i.png))>rule",
				`decl(content="//")>rule`,
				"rule(b)>rule",
			},
		},
		{
			name:  "slashes in block comment",
			input: "/* // { */ a { }",
			want:  []string{"rule(a)>root"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, syntax := range []common.Syntax{common.SyntaxScss, common.SyntaxLess} {
				tree := parse(t, tt.input, syntax)
				if got := shape(tree); strings.Join(got, "|") != strings.Join(tt.want, "|") {
					t.Errorf("%s: unexpected tree %v, want %v", syntax, got, tt.want)
				}
			}
		})
	}
}

func TestParser_LineComments_Positions(t *testing.T) {
	tree := parse(t, "// it's ok\na {\n  // b /* c\n  d { }\n}\n", common.SyntaxScss)

	want := []string{"rule(a)>root", "rule(d)>rule"}
	if got := shape(tree); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected tree %v, want %v", got, want)
	}
	if pos := tree.NodePosition(2); pos.Line != 4 || pos.Column != 3 {
		t.Errorf("expected d at 4:3, got %s", pos)
	}
}

func TestParser_LineCommentsInPlainCSS(t *testing.T) {
	// Plain CSS has no line comments, the "comment" opens a block which is
	// never closed.
	p := css.NewParser(zap.NewNop())
	if _, err := p.Parse([]byte("a {\n  // b {\n  c { }\n}\n"), "test.css", common.SyntaxCss); err == nil {
		t.Error("expected syntax error for '//' in plain CSS")
	}
}

func TestParser_Interpolation(t *testing.T) {
	tree := parse(t, ".a-#{$name} { @{var}-b { } }", common.SyntaxScss)

	want := []string{"rule(.a-#{$name})>root", "rule(@{var}-b)>rule"}
	if got := shape(tree); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("unexpected tree %v, want %v", got, want)
	}
}

func TestParser_StatementsWithoutBlock(t *testing.T) {
	tree := parse(t, ".a { .mixin(); @include b; width: 1px }", common.SyntaxLess)

	want := []string{
		"rule(.a)>root",
		"rule(.mixin())>rule",
		"atrule(@include)>rule",
		"decl(width=1px)>rule",
	}
	if got := shape(tree); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected tree %v, want %v", got, want)
	}
	if tree.Node(2).HasBlock {
		t.Error("mixin call must not have block")
	}
}

func TestParser_CustomPropertyBlocks(t *testing.T) {
	tree := parse(t, "a { --x: { b: c; }; --y: {d}; e { } }", common.SyntaxCss)

	want := []string{
		"rule(a)>root",
		"decl(--x={ b: c; })>rule",
		"decl(--y={d})>rule",
		"rule(e)>rule",
	}
	if got := shape(tree); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected tree %v, want %v", got, want)
	}
	for _, n := range tree.Statements() {
		if strings.HasPrefix(n.Selector, "--") {
			t.Errorf("custom property became rule %q", n.Selector)
		}
	}
}

func TestParser_Statements(t *testing.T) {
	tree := parse(t, "@media print { a { color: red; } } b { }", common.SyntaxCss)

	var kinds []css.Kind
	for _, n := range tree.Statements() {
		kinds = append(kinds, n.Kind)
	}
	want := []css.Kind{css.KindAtRule, css.KindRule, css.KindRule}
	if len(kinds) != len(want) {
		t.Fatalf("expected %d statements, got %d", len(want), len(kinds))
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("statement %d: expected %s, got %s", i, want[i], kinds[i])
		}
	}
}

func TestParser_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason string
		line   int
		col    int
	}{
		{name: "unclosed", input: "a {\n  b {\n}", reason: "unclosed block", line: 1, col: 1},
		{name: "stray brace", input: "a { }\n  }", reason: "unexpected }", line: 2, col: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := css.NewParser(zap.NewNop())
			_, err := p.Parse([]byte(tt.input), "bad.css", common.SyntaxCss)

			var se *css.SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("expected *css.SyntaxError, got %v", err)
			}
			if se.Reason != tt.reason {
				t.Errorf("expected reason '%s', got '%s'", tt.reason, se.Reason)
			}
			if se.Pos.Line != tt.line || se.Pos.Column != tt.col {
				t.Errorf("expected position %d:%d, got %s", tt.line, tt.col, se.Pos)
			}
			if !strings.HasPrefix(se.Error(), "bad.css:") {
				t.Errorf("expected error to start with source name, got '%s'", se.Error())
			}
		})
	}
}

func TestParser_Empty(t *testing.T) {
	tree := parse(t, "", common.SyntaxCss)
	if tree.Len() != 1 {
		t.Errorf("expected only root, got %d nodes", tree.Len())
	}
	if pos := tree.NodePosition(tree.Root()); pos.Line != 1 || pos.Column != 1 {
		t.Errorf("unexpected root position %s", pos)
	}
}

func TestTree_Dump(t *testing.T) {
	tree := parse(t, "@media print {\n  a { color: red }\n}", common.SyntaxCss)

	want := `stylesheet test.css (css)
  @media [1:1] block=true
    params: "print"
    rule [2:3] block=true
      selector: "a"
      color: "red"
`
	if got := tree.Dump(); got != want {
		t.Errorf("Dump() =\n%s\nwant:\n%s", got, want)
	}
}

func TestTree_DetachedNode(t *testing.T) {
	tree := css.NewTree("manual", common.SyntaxCss, nil)
	rule := tree.Append(tree.Root(), css.Node{Kind: css.KindRule, Selector: "a", HasBlock: true})
	orphan := tree.Append(css.NoParent, css.Node{Kind: css.KindRule, Selector: "b", HasBlock: true})

	if p, ok := tree.Parent(rule); !ok || p != tree.Root() {
		t.Errorf("expected rule parent to be root, got %d", p)
	}
	if _, ok := tree.Parent(orphan); ok {
		t.Error("expected detached node to have no parent")
	}
	if len(tree.Node(tree.Root()).Children) != 1 {
		t.Error("detached node must not be linked to root")
	}
	if tree.Node(42) != nil {
		t.Error("expected nil for out of range id")
	}
}

func TestTree_Position(t *testing.T) {
	data := []byte("ab\r\ncd\ref\nжз\u2028x")
	tree := css.NewTree("pos.css", common.SyntaxCss, data)

	tests := []struct {
		offset int
		want   string
	}{
		{0, "1:1"},
		{1, "1:2"},
		{2, "1:3"},  // \r
		{4, "2:1"},  // c
		{7, "3:1"},  // e
		{10, "4:1"}, // ж
		{12, "4:2"}, // з is the second rune
		{14, "4:3"}, // line separator
		{17, "5:1"}, // x
		{18, "5:2"}, // end of data
		{100, "5:2"},
		{-1, "1:1"},
	}
	for _, tt := range tests {
		if got := tree.Position(tt.offset).String(); got != tt.want {
			t.Errorf("Position(%d) = %s, want %s", tt.offset, got, tt.want)
		}
	}

	if got := css.NewTree("nil.css", common.SyntaxCss, nil).Position(5).String(); got != "1:1" {
		t.Errorf("position without data = %s, want 1:1", got)
	}
}
