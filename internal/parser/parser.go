// Package parser implements the hand-written recursive-descent Parser (C3)
// that consumes the lexer's token.Token stream and produces an ast.Node
// tree, honoring target-version grammar differences, branch-reset capture
// numbering, and a bounded recursion depth. A pigeon-generated PEG grammar
// was the teacher's original approach (see internal/ast package comment
// history) but the grammar source wasn't available to regenerate, so this
// package hand-rolls the same descent-parsing shape instead.
package parser

import (
	"strconv"
	"strings"

	"github.com/0x4d5352/regexcore/internal/ast"
	"github.com/0x4d5352/regexcore/internal/errs"
	"github.com/0x4d5352/regexcore/internal/lexer"
	"github.com/0x4d5352/regexcore/internal/pattern"
	"github.com/0x4d5352/regexcore/internal/token"
)

// DefaultMaxDepth bounds nested group recursion, guarding against stack
// exhaustion from pathological or adversarial patterns.
const DefaultMaxDepth = 1024

// Options configures a parse.
type Options struct {
	Version  pattern.Version
	MaxDepth int
	Tolerant bool
}

// Result is what a tolerant parse returns: a best-effort AST (possibly
// containing ast.ErrorNode placeholders) plus every error encountered.
type Result struct {
	Regex  *ast.Regex
	State  *ast.ParserState
	Errors []*errs.Error
}

// parseAbort is the sentinel panic value used to unwind out of a strict
// parse on the first error; recovered in Parse.
type parseAbort struct{ err *errs.Error }

type parser struct {
	lex     *lexer.Lexer
	src     string
	body    string
	version *pattern.Table
	state   *ast.ParserState
	cur     token.Token
	depth   int
	opts    Options
	errors  []*errs.Error
}

// Parse runs a strict parse: the first error aborts and is returned.
func Parse(source string, version pattern.Version) (*ast.Regex, *ast.ParserState, error) {
	res := run(source, Options{Version: version, MaxDepth: DefaultMaxDepth, Tolerant: false})
	if len(res.Errors) > 0 {
		return nil, nil, res.Errors[0]
	}
	return res.Regex, res.State, nil
}

// ParseTolerant runs a best-effort parse: it never aborts early, instead
// collecting every error and substituting ast.ErrorNode at the failure
// point before resuming at the next plausible token.
func ParseTolerant(source string, version pattern.Version) *Result {
	res := run(source, Options{Version: version, MaxDepth: DefaultMaxDepth, Tolerant: true})
	return res
}

func run(source string, opts Options) *Result {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	table, ok := pattern.Get(opts.Version)
	if !ok {
		e := errs.Parser(source, 0, "parser.unknown_version", "unknown target version")
		return &Result{Errors: []*errs.Error{e}}
	}

	delim, body, flags, splitErr := pattern.Split(source)
	if splitErr != nil {
		return &Result{Errors: []*errs.Error{splitErr.(*errs.Error)}}
	}
	cleanFlags, flagErr := pattern.ValidateFlags(source, flags, opts.Version)
	if flagErr != nil {
		if opts.Tolerant {
			cleanFlags = flags
		} else {
			return &Result{Errors: []*errs.Error{flagErr.(*errs.Error)}}
		}
	}

	p := &parser{
		lex:     lexer.New(body, cleanFlags),
		src:     source,
		body:    body,
		version: table,
		state:   ast.NewParserState(),
		opts:    opts,
	}

	res := &Result{State: p.state}
	if !opts.Tolerant {
		defer func() {
			if r := recover(); r != nil {
				if pa, ok := r.(parseAbort); ok {
					res.Errors = append(res.Errors, pa.err)
					return
				}
				panic(r)
			}
		}()
	}

	p.advance()
	bodyNode := p.parseAlternation(isAltStop)
	if p.cur.Kind != token.EOF {
		p.fail(p.cur.Start, "parser.trailing_input", "unexpected trailing input: "+p.cur.Value)
	}

	full := ast.Span{Start: 0, End: len(source)}
	res.Regex = ast.NewRegex(source, delim, cleanFlags, bodyNode, full)
	res.Errors = append(res.Errors, p.errors...)
	return res
}

func isEOF(k token.Kind) bool { return k == token.EOF }
func isAltStop(k token.Kind) bool {
	return k == token.EOF || k == token.AlternationBar || k == token.GroupClose
}

func (p *parser) advance() {
	tok, err := p.lex.Next()
	if err != nil {
		p.failErr(err.(*errs.Error))
		p.cur = token.Token{Kind: token.EOF, Start: p.lex.Pos(), End: p.lex.Pos()}
		return
	}
	p.cur = tok
}

// fail records a parser-level error. In strict mode it aborts immediately
// via panic/recover; in tolerant mode it appends and returns, leaving
// callers to degrade gracefully (usually by emitting an ast.ErrorNode).
func (p *parser) fail(offset int, code, msg string) {
	p.failErr(errs.Parser(p.body, offset, code, msg))
}

func (p *parser) failErr(e *errs.Error) {
	p.errors = append(p.errors, e)
	if !p.opts.Tolerant {
		panic(parseAbort{e})
	}
}

func (p *parser) expect(k token.Kind, code, msg string) token.Token {
	if p.cur.Kind != k {
		p.fail(p.cur.Start, code, msg)
		return p.cur
	}
	tok := p.cur
	p.advance()
	return tok
}

func (p *parser) enterDepth() {
	p.depth++
	if p.depth > p.opts.MaxDepth {
		p.fail(p.cur.Start, "parser.max_depth_exceeded", "nested group depth exceeds limit")
	}
}

func (p *parser) exitDepth() { p.depth-- }

// parseAlternation parses `branch (| branch)*` until stop(p.cur.Kind).
func (p *parser) parseAlternation(stop func(token.Kind) bool) ast.Node {
	start := p.cur.Start
	first := p.parseSequence(stop)
	if p.cur.Kind != token.AlternationBar {
		return first
	}
	branches := []ast.Node{first}
	for p.cur.Kind == token.AlternationBar {
		p.advance()
		branches = append(branches, p.parseSequence(stop))
	}
	end := start
	if n := len(branches); n > 0 {
		end = branches[n-1].Span().End
	}
	return ast.NewAlternation(branches, ast.Span{Start: start, End: end})
}

// parseSequence parses a run of quantified atoms, then coalesces adjacent
// bare-Literal atoms into single Literal nodes.
func (p *parser) parseSequence(stop func(token.Kind) bool) ast.Node {
	start := p.cur.Start
	var raw []ast.Node
	for !p.atStop(stop) {
		raw = append(raw, p.parseQuantified())
	}
	end := start
	if n := len(raw); n > 0 {
		end = raw[n-1].Span().End
	}
	children := coalesceLiterals(raw)
	if len(children) == 1 {
		return children[0]
	}
	return ast.NewSequence(children, ast.Span{Start: start, End: end})
}

func (p *parser) atStop(stop func(token.Kind) bool) bool {
	return p.cur.Kind == token.EOF || stop(p.cur.Kind)
}

func coalesceLiterals(nodes []ast.Node) []ast.Node {
	out := make([]ast.Node, 0, len(nodes))
	for _, n := range nodes {
		lit, ok := n.(*ast.Literal)
		if ok && len(out) > 0 {
			if prev, ok := out[len(out)-1].(*ast.Literal); ok {
				merged := ast.NewLiteral(prev.Value+lit.Value, ast.Span{Start: prev.Span().Start, End: lit.Span().End})
				out[len(out)-1] = merged
				continue
			}
		}
		out = append(out, n)
	}
	return out
}

// parseQuantified parses one atom plus an optional trailing quantifier.
func (p *parser) parseQuantified() ast.Node {
	atom := p.parseAtom()
	if p.cur.Kind != token.Quantifier {
		return atom
	}
	tok := p.cur
	min, max, greed := decodeQuantifier(tok.Value)
	p.advance()
	span := ast.Span{Start: atom.Span().Start, End: tok.End}
	return ast.NewQuantifier(atom, min, max, greed, span)
}

func decodeQuantifier(raw string) (min, max int, greed ast.Greediness) {
	body := raw
	greed = ast.Greedy
	if strings.HasSuffix(body, "+") {
		greed = ast.Possessive
		body = body[:len(body)-1]
	} else if strings.HasSuffix(body, "?") && body != "?" {
		greed = ast.Lazy
		body = body[:len(body)-1]
	}

	switch body {
	case "*":
		return 0, ast.Infinite, greed
	case "+":
		return 1, ast.Infinite, greed
	case "?":
		return 0, 1, greed
	}

	// {m,n} / {m,} / {m}
	inner := strings.TrimSuffix(strings.TrimPrefix(body, "{"), "}")
	parts := strings.SplitN(inner, ",", 2)
	lo := atoiDefault(parts[0], 0)
	if len(parts) == 1 {
		return lo, lo, greed
	}
	if parts[1] == "" {
		return lo, ast.Infinite, greed
	}
	hi := atoiDefault(parts[1], lo)
	return lo, hi, greed
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// parseAtom parses a single non-quantified unit.
func (p *parser) parseAtom() ast.Node {
	tok := p.cur
	span := ast.Span{Start: tok.Start, End: tok.End}

	switch tok.Kind {
	case token.Literal:
		p.advance()
		return ast.NewLiteral(tok.Value, span)
	case token.Dot:
		p.advance()
		return ast.NewDot(span)
	case token.RangeDash:
		p.advance()
		return ast.NewLiteral("-", span)
	case token.Anchor:
		p.advance()
		kind := ast.AnchorStart
		if tok.Value == "$" {
			kind = ast.AnchorEnd
		}
		return ast.NewAnchor(kind, span)
	case token.Escape:
		return p.parseEscape(tok)
	case token.ControlChar:
		p.advance()
		return p.parseControlChar(tok, span)
	case token.UnicodeProperty:
		p.advance()
		negated := strings.HasPrefix(tok.Value, "!")
		prop := strings.TrimPrefix(tok.Value, "!")
		return ast.NewUnicodeProperty(prop, negated, span)
	case token.BackreferenceNumeric:
		p.advance()
		idx, _ := strconv.Atoi(strings.TrimPrefix(tok.Value, "+"))
		return ast.NewBackreference(idx, "", true, span)
	case token.BackreferenceNamed:
		p.advance()
		return ast.NewBackreference(0, tok.GroupName, false, span)
	case token.RecursiveRefToken:
		p.advance()
		return ast.NewRecursiveRef(tok.Value, span)
	case token.CommentToken:
		p.advance()
		return ast.NewComment(tok.Value, span)
	case token.ClassOpen:
		return p.parseCharClass()
	case token.GroupOpen:
		return p.parseGroup()
	case token.GroupClose:
		p.fail(tok.Start, "parser.unmatched_close_paren", "unmatched ')'")
		p.advance()
		return ast.NewErrorNode("unmatched )", span)
	case token.ClassClose:
		p.fail(tok.Start, "parser.unmatched_close_bracket", "unmatched ']'")
		p.advance()
		return ast.NewLiteral("]", span)
	default:
		p.fail(tok.Start, "parser.unexpected_token", "unexpected token: "+tok.String())
		p.advance()
		return ast.NewErrorNode("unexpected token", span)
	}
}

func (p *parser) parseControlChar(tok token.Token, span ast.Span) ast.Node {
	if tok.Value == "" {
		return ast.NewErrorNode("empty control escape", span)
	}
	c := tok.Value[0]
	if c >= 'a' && c <= 'z' {
		c -= 32
	}
	cp := rune(c ^ 0x40)
	return ast.NewCharLiteral(cp, ast.CharLiteralControl, span)
}

var charTypeLetters = map[string]bool{
	"d": true, "D": true, "w": true, "W": true, "s": true, "S": true,
	"h": true, "H": true, "R": true, "X": true, "N": true,
}

var anchorEscapes = map[string]ast.AnchorKind{
	"A": ast.AnchorStartOfString,
	"z": ast.AnchorAbsoluteEnd,
	"Z": ast.AnchorEndOfString,
	"b": ast.AnchorWordBoundary,
	"B": ast.AnchorNonWordBoundary,
	"G": ast.AnchorFirstMatchPos,
	"K": ast.AnchorResetMatchStart,
}

var simpleEscapeLiterals = map[string]rune{
	"n": '\n', "r": '\r', "t": '\t', "f": '\f', "v": '\v',
	"a": '\a', "e": 0x1B,
}

// parseEscape dispatches an Escape token to the right AST node kind. \Q
// needs special handling: it switches the lexer into a verbatim run until
// \E (or EOF), so it's resolved directly against the lexer rather than
// through the normal token stream.
func (p *parser) parseEscape(tok token.Token) ast.Node {
	if tok.Value == "Q" {
		// The lexer's position already sits right after \Q (that's where
		// scanning tok stopped); grab the verbatim run before resuming
		// normal tokenization past \E.
		text, end := p.lex.ScanQuotedLiteral()
		span := ast.Span{Start: tok.Start, End: end}
		p.advance()
		return ast.NewLiteral(text, span)
	}

	p.advance()
	span := ast.Span{Start: tok.Start, End: tok.End}

	if tok.Value == "E" {
		// stray \E with no preceding \Q: zero-width no-op.
		return ast.NewComment("", span)
	}
	if r, ok := simpleEscapeLiterals[tok.Value]; ok {
		return ast.NewLiteral(string(r), span)
	}
	if charTypeLetters[tok.Value] {
		return ast.NewCharType(tok.Value, span)
	}
	if kind, ok := anchorEscapes[tok.Value]; ok {
		return ast.NewAnchor(kind, span)
	}
	if strings.HasPrefix(tok.Value, "x{") {
		hex := tok.Value[2 : len(tok.Value)-1]
		cp := parseHexRune(hex)
		return ast.NewCharLiteral(cp, ast.CharLiteralHex, span)
	}
	if strings.HasPrefix(tok.Value, "x") {
		cp := parseHexRune(tok.Value[1:])
		return ast.NewCharLiteral(cp, ast.CharLiteralHex, span)
	}
	if strings.HasPrefix(tok.Value, "u") {
		cp := parseHexRune(tok.Value[1:])
		return ast.NewCharLiteral(cp, ast.CharLiteralUnicode, span)
	}
	if strings.HasPrefix(tok.Value, "N{") {
		name := tok.Value[2 : len(tok.Value)-1]
		return ast.NewUnicodeProperty("Name="+name, false, span)
	}
	if tok.Value != "" && tok.Value[0] >= '0' && tok.Value[0] <= '7' {
		n, err := strconv.ParseInt(tok.Value, 8, 32)
		if err != nil {
			return ast.NewErrorNode("invalid octal escape", span)
		}
		return ast.NewCharLiteral(rune(n), ast.CharLiteralOctal, span)
	}

	// Fallback: single-character escape not otherwise classified (e.g. an
	// unrecognized letter) degrades to its literal rune.
	return ast.NewLiteral(tok.Value, span)
}

func parseHexRune(hex string) rune {
	n, err := strconv.ParseInt(hex, 16, 32)
	if err != nil {
		return 0xFFFD
	}
	return rune(n)
}
