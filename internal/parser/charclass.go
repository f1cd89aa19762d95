package parser

import (
	"github.com/0x4d5352/regexcore/internal/ast"
	"github.com/0x4d5352/regexcore/internal/lexer"
	"github.com/0x4d5352/regexcore/internal/token"
)

// parseCharClass parses `[...]`, including nested PCRE2 class-algebra
// right-hand sides (`[a-z--[aeiou]]`, `[a-z&&[^aeiou]]`, `[a-z~~[abc]]`).
func (p *parser) parseCharClass() ast.Node {
	open := p.cur
	start := open.Start
	p.lex.EnterClass()
	p.advance()

	negated := false
	if p.cur.Kind == token.Literal && p.cur.Value == "^" {
		negated = true
		p.advance()
	}

	body := p.parseClassBody(start)
	closeTok := p.expect(token.ClassClose, "parser.unterminated_class", "unterminated character class")
	p.lex.ExitClass()
	return ast.NewCharClass(body, negated, ast.Span{Start: start, End: closeTok.End})
}

func (p *parser) parseClassBody(classStart int) ast.Node {
	var items []ast.Node
	var left ast.Node

	for p.cur.Kind != token.ClassClose && p.cur.Kind != token.EOF {
		if opKind, ok := p.tryClassOperator(); ok {
			var lhs ast.Node
			if left != nil {
				lhs = left
			} else {
				lhs = ast.NewClassUnion(items, ast.Span{Start: classStart, End: unionEnd(classStart, items)})
			}
			items = nil
			if p.cur.Kind != token.ClassOpen {
				p.fail(p.cur.Start, "parser.expected_nested_class", "expected a nested character class after a class-algebra operator")
				break
			}
			rhs := p.parseCharClass()
			left = ast.NewClassOperation(opKind, lhs, rhs, ast.Span{Start: classStart, End: rhs.Span().End})
			continue
		}
		items = append(items, p.parseClassItem())
	}

	if left != nil {
		return left
	}
	return ast.NewClassUnion(items, ast.Span{Start: classStart, End: unionEnd(classStart, items)})
}

func unionEnd(start int, items []ast.Node) int {
	if len(items) == 0 {
		return start
	}
	return items[len(items)-1].Span().End
}

// tryClassOperator recognizes the doubled-character class-algebra operators
// `--`, `&&`, `~~`, consuming both tokens if matched.
func (p *parser) tryClassOperator() (ast.ClassOperationKind, bool) {
	if p.cur.Kind == token.RangeDash {
		if nxt, err := p.lex.Peek(); err == nil && nxt.Kind == token.RangeDash {
			p.advance()
			p.advance()
			return ast.ClassOpDifference, true
		}
	}
	if p.cur.Kind == token.Literal && p.cur.Value == "&" {
		if nxt, err := p.lex.Peek(); err == nil && nxt.Kind == token.Literal && nxt.Value == "&" {
			p.advance()
			p.advance()
			return ast.ClassOpIntersection, true
		}
	}
	if p.cur.Kind == token.Literal && p.cur.Value == "~" {
		if nxt, err := p.lex.Peek(); err == nil && nxt.Kind == token.Literal && nxt.Value == "~" {
			p.advance()
			p.advance()
			return ast.ClassOpSymmetricDiff, true
		}
	}
	return "", false
}

// parseClassItem parses one member of a character class: a POSIX class, an
// escape-based atom, or a literal range / single character.
func (p *parser) parseClassItem() ast.Node {
	if lexer.IsPOSIXClassToken(p.cur) {
		tok := p.cur
		p.advance()
		inner := tok.Value[2 : len(tok.Value)-2] // strip "[:" and ":]"
		neg := false
		if len(inner) > 0 && inner[0] == '^' {
			neg = true
			inner = inner[1:]
		}
		return ast.NewPOSIXClass(inner, neg, ast.Span{Start: tok.Start, End: tok.End})
	}

	low := p.parseClassAtom()
	lowLit, lowIsChar := low.(*ast.CharLiteral)
	if p.cur.Kind == token.RangeDash && lowIsChar {
		if nxt, err := p.lex.Peek(); err == nil && nxt.Kind != token.RangeDash && nxt.Kind != token.ClassClose && nxt.Kind != token.EOF {
			dashTok := p.cur
			p.advance()
			high := p.parseClassAtom()
			if highLit, ok := high.(*ast.CharLiteral); ok {
				return ast.NewRange(lowLit, highLit, ast.Span{Start: low.Span().Start, End: highLit.Span().End})
			}
			p.fail(dashTok.Start, "parser.invalid_range", "range endpoint must be a single character")
			return ast.NewErrorNode("invalid range", ast.Span{Start: low.Span().Start, End: high.Span().End})
		}
	}
	return low
}

// parseClassAtom parses a single class member with no range consideration.
func (p *parser) parseClassAtom() ast.Node {
	tok := p.cur
	span := ast.Span{Start: tok.Start, End: tok.End}

	switch tok.Kind {
	case token.Literal:
		p.advance()
		r := []rune(tok.Value)
		return ast.NewCharLiteral(r[0], ast.CharLiteralRaw, span)
	case token.Escape:
		if tok.Value == "b" {
			// \b inside a class is backspace (0x08), not a word boundary.
			p.advance()
			return ast.NewCharLiteral(0x08, ast.CharLiteralControl, span)
		}
		return p.parseEscape(tok)
	case token.ControlChar:
		p.advance()
		return p.parseControlChar(tok, span)
	case token.UnicodeProperty:
		p.advance()
		return ast.NewUnicodeProperty(trimBang(tok.Value), hasBang(tok.Value), span)
	default:
		p.fail(tok.Start, "parser.unexpected_class_token", "unexpected token in character class")
		p.advance()
		return ast.NewErrorNode("unexpected class token", span)
	}
}

func hasBang(s string) bool { return len(s) > 0 && s[0] == '!' }
func trimBang(s string) string {
	if hasBang(s) {
		return s[1:]
	}
	return s
}
