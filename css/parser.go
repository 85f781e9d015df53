package css

import (
	"errors"
	"fmt"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"

	"cssnest/common"
)

// SyntaxError describes stylesheet which could not be turned into a tree.
type SyntaxError struct {
	Source string
	Pos    Position
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%s: %s", e.Source, e.Pos, e.Reason)
}

// Parser builds stylesheet trees. Tokenization is left to tdewolff lexer,
// grammar level parser is not used because it does not support nested rules.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

type token struct {
	tt     css.TokenType
	data   []byte
	offset int
}

func (t token) is(tt css.TokenType, s string) bool {
	return t.tt == tt && string(t.data) == s
}

// Parse builds tree from already decoded (UTF-8) stylesheet text. The source
// identifies what is being parsed in errors and logs.
func (p *Parser) Parse(data []byte, source string, syntax common.Syntax) (*Tree, error) {
	p.log.Debug("Parsing stylesheet", zap.String("source", source), zap.Stringer("syntax", syntax), zap.Int("bytes", len(data)))

	text := data
	if syntax.HasLineComments() {
		text = blankLineComments(data)
	}
	toks, err := tokenize(text)
	if err != nil {
		return nil, fmt.Errorf("unable to tokenize %s: %w", source, err)
	}

	b := &builder{
		tree:  NewTree(source, syntax, data),
		toks:  toks,
		stack: []NodeID{0},
	}
	if err := b.run(); err != nil {
		return nil, err
	}
	p.log.Debug("Parsed stylesheet", zap.String("source", source), zap.Int("nodes", b.tree.Len()))
	return b.tree, nil
}

func tokenize(data []byte) ([]token, error) {
	input := parse.NewInputBytes(data)
	defer input.Restore()

	l := css.NewLexer(input)
	toks := make([]token, 0, len(data)/4)
	offset := 0
	for {
		tt, text := l.Next()
		if tt == css.ErrorToken {
			if err := l.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, err
			}
			return toks, nil
		}
		toks = append(toks, token{tt: tt, data: text, offset: offset})
		offset += len(text)
	}
}

// builder turns flat token stream into a tree keeping stack of open blocks.
// Everything between statement boundaries ("{", ";", "}") is a prelude which
// decides what kind of node is created.
type builder struct {
	tree  *Tree
	toks  []token
	stack []NodeID
	pre   []token
	level int // open (), [] and functions inside current prelude
}

func (b *builder) run() error {
	for i := 0; i < len(b.toks); i++ {
		t := b.toks[i]
		switch t.tt {
		case css.CommentToken, css.CDOToken, css.CDCToken, css.WhitespaceToken:
			b.space(t)
		case css.DelimToken:
			if (t.data[0] == '#' || t.data[0] == '@') && i+1 < len(b.toks) && b.toks[i+1].tt == css.LeftBraceToken {
				i = b.interpolation(i)
				continue
			}
			b.push(t)
		case css.LeftParenthesisToken, css.LeftBracketToken, css.FunctionToken:
			b.level++
			b.push(t)
		case css.RightParenthesisToken, css.RightBracketToken:
			if b.level > 0 {
				b.level--
			}
			b.push(t)
		case css.LeftBraceToken:
			if b.level > 0 || b.customProperty() {
				b.level++
				b.push(t)
				continue
			}
			b.open(t)
		case css.RightBraceToken:
			if b.level > 0 {
				b.level--
				b.push(t)
				continue
			}
			if err := b.close(t); err != nil {
				return err
			}
		case css.SemicolonToken:
			if b.level > 0 {
				b.push(t)
				continue
			}
			b.finish()
		default:
			b.push(t)
		}
	}
	b.finish()

	if len(b.stack) > 1 {
		open := b.stack[len(b.stack)-1]
		return &SyntaxError{
			Source: b.tree.Source,
			Pos:    b.tree.NodePosition(open),
			Reason: "unclosed block",
		}
	}
	return nil
}

// customProperty reports "--name:" prelude, braces following it belong to
// the value.
func (b *builder) customProperty() bool {
	return len(b.pre) > 0 && b.pre[0].tt == css.CustomPropertyNameToken && topLevelColon(b.pre) > 0
}

func (b *builder) parent() NodeID {
	return b.stack[len(b.stack)-1]
}

func (b *builder) push(t token) {
	b.pre = append(b.pre, t)
}

// space collapses whitespace and comments into a single separator, leading
// separators are dropped.
func (b *builder) space(t token) {
	if len(b.pre) == 0 || b.pre[len(b.pre)-1].tt == css.WhitespaceToken {
		return
	}
	b.pre = append(b.pre, token{tt: css.WhitespaceToken, data: []byte{' '}, offset: t.offset})
}

// interpolation copies #{...} or @{...} into the prelude as is, returns index
// of the last copied token.
func (b *builder) interpolation(i int) int {
	depth := 0
	for j := i; j < len(b.toks); j++ {
		t := b.toks[j]
		switch t.tt {
		case css.LeftBraceToken:
			depth++
		case css.RightBraceToken:
			depth--
		}
		b.push(t)
		if depth == 0 && j > i {
			return j
		}
	}
	return len(b.toks) - 1
}

func (b *builder) text(toks []token) string {
	var sb strings.Builder
	for _, t := range toks {
		if t.tt == css.WhitespaceToken {
			sb.WriteByte(' ')
			continue
		}
		sb.Write(t.data)
	}
	return strings.TrimSpace(sb.String())
}

func (b *builder) reset() {
	b.pre = b.pre[:0]
	b.level = 0
}

func (b *builder) open(brace token) {
	n := Node{HasBlock: true, Offset: brace.offset}
	if len(b.pre) > 0 {
		n.Offset = b.pre[0].offset
	}
	if len(b.pre) > 0 && b.pre[0].tt == css.AtKeywordToken {
		n.Kind = KindAtRule
		n.Name = string(b.pre[0].data[1:])
		n.Params = b.text(b.pre[1:])
	} else {
		n.Kind = KindRule
		n.Selector = b.text(b.pre)
	}
	id := b.tree.Append(b.parent(), n)
	b.stack = append(b.stack, id)
	b.reset()
}

// finish turns pending prelude into a statement without block.
func (b *builder) finish() {
	if len(b.pre) == 0 {
		return
	}
	defer b.reset()

	n := Node{Offset: b.pre[0].offset}
	if b.pre[0].tt == css.AtKeywordToken {
		n.Kind = KindAtRule
		n.Name = string(b.pre[0].data[1:])
		n.Params = b.text(b.pre[1:])
		b.tree.Append(b.parent(), n)
		return
	}

	if colon := topLevelColon(b.pre); colon > 0 {
		n.Kind = KindDecl
		n.Name = b.text(b.pre[:colon])
		n.Value = b.text(b.pre[colon+1:])
		b.tree.Append(b.parent(), n)
		return
	}

	// Something like Less mixin call: ".mixin();"
	n.Kind = KindRule
	n.Selector = b.text(b.pre)
	b.tree.Append(b.parent(), n)
}

func (b *builder) close(brace token) error {
	b.finish()
	if len(b.stack) == 1 {
		return &SyntaxError{
			Source: b.tree.Source,
			Pos:    b.tree.Position(brace.offset),
			Reason: "unexpected }",
		}
	}
	b.stack = b.stack[:len(b.stack)-1]
	return nil
}

func topLevelColon(toks []token) int {
	level := 0
	for i, t := range toks {
		switch t.tt {
		case css.LeftParenthesisToken, css.LeftBracketToken, css.FunctionToken, css.LeftBraceToken:
			level++
		case css.RightParenthesisToken, css.RightBracketToken, css.RightBraceToken:
			level--
		case css.ColonToken:
			if level == 0 {
				return i
			}
		}
	}
	return -1
}
