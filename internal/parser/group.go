package parser

import (
	"strconv"
	"strings"

	"github.com/0x4d5352/regexcore/internal/ast"
	"github.com/0x4d5352/regexcore/internal/token"
)

// parseGroup parses every `(...)` variant: plain/named/non-capturing
// captures, atomic groups, lookaround assertions, inline-flag groups,
// branch-reset groups, DEFINE blocks, and conditionals.
func (p *parser) parseGroup() ast.Node {
	open := p.cur
	start := open.Start
	p.enterDepth()
	defer p.exitDepth()
	p.advance()

	switch open.Variant {
	case token.GroupPlain:
		num := p.state.NextGroupNumber()
		child := p.parseAlternation(isAltStop)
		closeTok := p.expect(token.GroupClose, "parser.unterminated_group", "unterminated group")
		g := ast.NewGroup(child, ast.GroupCapturing, ast.Span{Start: start, End: closeTok.End})
		g.Number = num
		p.state.Groups.Assign(g, num)
		return g
	case token.GroupNamed:
		num := p.state.NextGroupNumber()
		child := p.parseAlternation(isAltStop)
		closeTok := p.expect(token.GroupClose, "parser.unterminated_group", "unterminated named group")
		g := ast.NewGroup(child, ast.GroupNamed, ast.Span{Start: start, End: closeTok.End})
		g.Name = open.GroupName
		g.Number = num
		p.state.Groups.Assign(g, num)
		return g
	case token.GroupNonCapturing:
		return p.finishSimpleGroup(start, ast.GroupNonCapturing)
	case token.GroupAtomic:
		return p.finishSimpleGroup(start, ast.GroupAtomic)
	case token.GroupLookaheadPositive:
		return p.finishSimpleGroup(start, ast.GroupLookaheadPositive)
	case token.GroupLookaheadNegative:
		return p.finishSimpleGroup(start, ast.GroupLookaheadNegative)
	case token.GroupLookbehindPositive:
		return p.finishSimpleGroup(start, ast.GroupLookbehindPos)
	case token.GroupLookbehindNegative:
		return p.finishSimpleGroup(start, ast.GroupLookbehindNeg)
	case token.GroupInlineFlags:
		return p.parseInlineFlagsGroup(start, open)
	case token.GroupBranchReset:
		return p.parseBranchReset(start)
	case token.GroupDefine:
		child := p.parseAlternation(isAltStop)
		closeTok := p.expect(token.GroupClose, "parser.unterminated_define", "unterminated (?(DEFINE)...) group")
		return ast.NewDefine(child, ast.Span{Start: start, End: closeTok.End})
	case token.GroupConditional:
		return p.parseConditional(start)
	default:
		p.fail(start, "parser.unknown_group_variant", "unrecognized group form")
		return ast.NewErrorNode("unknown group", ast.Span{Start: start, End: open.End})
	}
}

func (p *parser) finishSimpleGroup(start int, kind ast.GroupKind) ast.Node {
	child := p.parseAlternation(isAltStop)
	closeTok := p.expect(token.GroupClose, "parser.unterminated_group", "unterminated group")
	return ast.NewGroup(child, kind, ast.Span{Start: start, End: closeTok.End})
}

func (p *parser) parseInlineFlagsGroup(start int, open token.Token) ast.Node {
	if strings.HasSuffix(open.Value, ":") {
		child := p.parseAlternation(isAltStop)
		closeTok := p.expect(token.GroupClose, "parser.unterminated_group", "unterminated scoped-flags group")
		g := ast.NewGroup(child, ast.GroupInlineFlags, ast.Span{Start: start, End: closeTok.End})
		g.Flags = open.GroupName
		return g
	}
	// Unscoped `(?imsx)` / `(?imsx-imsx)` directive: zero-width, affects the
	// flags in effect for the remainder of the enclosing group.
	g := ast.NewGroup(nil, ast.GroupInlineFlags, ast.Span{Start: start, End: open.End})
	g.Flags = open.GroupName
	return g
}

// parseBranchReset parses `(?|alt1|alt2|...)`, where every alternative's
// capture groups restart numbering from the same point.
func (p *parser) parseBranchReset(start int) ast.Node {
	p.state.EnterBranchReset()
	var branches []ast.Node
	branches = append(branches, p.parseSequence(isAltStop))
	for p.cur.Kind == token.AlternationBar {
		p.advance()
		p.state.NextBranch()
		branches = append(branches, p.parseSequence(isAltStop))
	}
	p.state.ExitBranchReset()

	closeTok := p.expect(token.GroupClose, "parser.unterminated_branch_reset", "unterminated (?|...) group")
	var child ast.Node
	if len(branches) == 1 {
		child = branches[0]
	} else {
		child = ast.NewAlternation(branches, ast.Span{Start: start, End: closeTok.Start})
	}
	return ast.NewGroup(child, ast.GroupBranchReset, ast.Span{Start: start, End: closeTok.End})
}

// parseConditional parses `(?(test)then|else)`. The test is a numeric or
// named group reference, a recursion check (`R`, `R1`), or a lookaround
// assertion used as the condition itself.
func (p *parser) parseConditional(start int) ast.Node {
	var cond ast.Node
	if p.cur.Kind == token.GroupOpen {
		cond = p.parseGroup()
	} else {
		condStart := p.cur.Start
		var sb strings.Builder
		for p.cur.Kind != token.GroupClose && p.cur.Kind != token.EOF {
			sb.WriteString(p.cur.Value)
			p.advance()
		}
		text := sb.String()
		condEnd := p.cur.Start
		span := ast.Span{Start: condStart, End: condEnd}
		switch {
		case text == "R" || (len(text) > 1 && text[0] == 'R' && isAllDigits(text[1:])):
			cond = ast.NewRecursiveRef(text, span)
		case isAllDigits(text) || (len(text) > 1 && (text[0] == '+' || text[0] == '-') && isAllDigits(text[1:])):
			n, _ := strconv.Atoi(strings.TrimPrefix(text, "+"))
			cond = ast.NewBackreference(n, "", true, span)
		default:
			cond = ast.NewBackreference(0, text, false, span)
		}
	}
	p.expect(token.GroupClose, "parser.unterminated_conditional_test", "unterminated conditional test")

	thenBranch := p.parseSequence(isAltStop)
	var elseBranch ast.Node
	if p.cur.Kind == token.AlternationBar {
		p.advance()
		elseBranch = p.parseSequence(isAltStop)
	}
	closeTok := p.expect(token.GroupClose, "parser.unterminated_conditional", "unterminated (?(...)...) group")
	return ast.NewConditional(cond, thenBranch, elseBranch, ast.Span{Start: start, End: closeTok.End})
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
