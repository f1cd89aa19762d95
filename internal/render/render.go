// Package render serializes an AST back into pattern source text: the
// inverse of internal/parser. It backs the facade's round-trip property
// (parse(P) -> AST -> render -> P' where parse(P') is structurally equal
// up to literal coalescing) and optimize()'s {original, optimized} pair,
// which the normalizer only hands back as rewritten AST.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/0x4d5352/regexcore/internal/ast"
)

// Node renders n as bare pattern body text (no delimiters/flags).
func Node(n ast.Node) string {
	var b strings.Builder
	write(&b, n)
	return b.String()
}

// Pattern renders regex as a complete delimited source string, e.g.
// "/abc/i", reusing its own Delimiter/Flags rather than the body's.
func Pattern(regex *ast.Regex) string {
	delim := string(regex.Delimiter)
	closing := delim
	if regex.Delimiter == '(' {
		closing = ")"
	}
	return delim + Node(regex.Body) + closing + regex.Flags
}

func write(b *strings.Builder, n ast.Node) {
	if n == nil {
		return
	}
	switch v := n.(type) {
	case *ast.Regex:
		write(b, v.Body)
	case *ast.Sequence:
		for _, c := range v.Children {
			write(b, c)
		}
	case *ast.Alternation:
		for i, branch := range v.Branches {
			if i > 0 {
				b.WriteByte('|')
			}
			write(b, branch)
		}
	case *ast.Literal:
		b.WriteString(escapeLiteral(v.Value))
	case *ast.CharLiteral:
		writeCharLiteral(b, v)
	case *ast.CharClass:
		writeCharClass(b, v)
	case *ast.ClassUnion:
		for _, item := range v.Items {
			write(b, item)
		}
	case *ast.ClassOperation:
		write(b, v.Left)
		b.WriteString(classOpToken(v.Kind))
		write(b, v.Right)
	case *ast.Range:
		write(b, v.Low)
		b.WriteByte('-')
		write(b, v.High)
	case *ast.CharType:
		b.WriteByte('\\')
		b.WriteString(v.Letter)
	case *ast.POSIXClass:
		b.WriteString("[:")
		if v.Negated {
			b.WriteByte('^')
		}
		b.WriteString(v.Name)
		b.WriteString(":]")
	case *ast.UnicodeProperty:
		if v.Negated {
			b.WriteString(`\P{`)
		} else {
			b.WriteString(`\p{`)
		}
		b.WriteString(v.Property)
		b.WriteByte('}')
	case *ast.Anchor:
		b.WriteString(anchorToken(v.Kind))
	case *ast.Dot:
		b.WriteByte('.')
	case *ast.Quantifier:
		write(b, v.Child)
		b.WriteString(quantifierToken(v.Min, v.Max))
		switch v.Greediness {
		case ast.Lazy:
			b.WriteByte('?')
		case ast.Possessive:
			b.WriteByte('+')
		}
	case *ast.Group:
		writeGroup(b, v)
	case *ast.Define:
		b.WriteString("(?(DEFINE)")
		write(b, v.Child)
		b.WriteByte(')')
	case *ast.Conditional:
		b.WriteString("(?(")
		write(b, v.Condition)
		b.WriteByte(')')
		write(b, v.Then)
		if v.Else != nil {
			b.WriteByte('|')
			write(b, v.Else)
		}
		b.WriteByte(')')
	case *ast.Backreference:
		if v.Numeric {
			b.WriteByte('\\')
			b.WriteString(strconv.Itoa(v.Index))
		} else {
			b.WriteString(`\k<`)
			b.WriteString(v.Name)
			b.WriteByte('>')
		}
	case *ast.RecursiveRef:
		b.WriteString("(?")
		b.WriteString(v.Target)
		b.WriteByte(')')
	case *ast.Comment:
		b.WriteString("(?#")
		b.WriteString(v.Text)
		b.WriteByte(')')
	case *ast.ErrorNode:
		// No valid source survives a parse error; emit nothing so the
		// surrounding text still renders as far as it can.
	default:
		panic(fmt.Sprintf("render: unhandled node type %T", n))
	}
}

func escapeLiteral(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '.', '^', '$', '|', '(', ')', '[', ']', '{', '}', '*', '+', '?', '\\', '/':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func writeCharLiteral(b *strings.Builder, c *ast.CharLiteral) {
	switch c.Kind {
	case ast.CharLiteralHex:
		fmt.Fprintf(b, `\x%02X`, c.Codepoint)
	case ast.CharLiteralUnicode, ast.CharLiteralUnicodeNamed:
		fmt.Fprintf(b, `\x{%X}`, c.Codepoint)
	case ast.CharLiteralOctal:
		fmt.Fprintf(b, `\%o`, c.Codepoint)
	case ast.CharLiteralControl:
		fmt.Fprintf(b, `\c%c`, c.Codepoint^0x40)
	default:
		b.WriteString(escapeLiteral(string(c.Codepoint)))
	}
}

func writeCharClass(b *strings.Builder, c *ast.CharClass) {
	b.WriteByte('[')
	if c.Negated {
		b.WriteByte('^')
	}
	write(b, c.Expression)
	b.WriteByte(']')
}

func classOpToken(kind ast.ClassOperationKind) string {
	switch kind {
	case ast.ClassOpIntersection:
		return "&&"
	case ast.ClassOpDifference:
		return "--"
	case ast.ClassOpSymmetricDiff:
		return "~~"
	default:
		return ""
	}
}

func anchorToken(kind ast.AnchorKind) string {
	switch kind {
	case ast.AnchorStart:
		return "^"
	case ast.AnchorEnd:
		return "$"
	case ast.AnchorWordBoundary:
		return `\b`
	case ast.AnchorNonWordBoundary:
		return `\B`
	case ast.AnchorStartOfString:
		return `\A`
	case ast.AnchorEndOfString:
		return `\Z`
	case ast.AnchorAbsoluteEnd:
		return `\z`
	case ast.AnchorFirstMatchPos:
		return `\G`
	case ast.AnchorResetMatchStart:
		return `\K`
	default:
		return ""
	}
}

func quantifierToken(min, max int) string {
	switch {
	case min == 0 && max == ast.Infinite:
		return "*"
	case min == 1 && max == ast.Infinite:
		return "+"
	case min == 0 && max == 1:
		return "?"
	case max == ast.Infinite:
		return fmt.Sprintf("{%d,}", min)
	case min == max:
		return fmt.Sprintf("{%d}", min)
	default:
		return fmt.Sprintf("{%d,%d}", min, max)
	}
}

func writeGroup(b *strings.Builder, g *ast.Group) {
	switch g.Kind {
	case ast.GroupCapturing:
		b.WriteByte('(')
		write(b, g.Child)
		b.WriteByte(')')
	case ast.GroupNamed:
		b.WriteString("(?<")
		b.WriteString(g.Name)
		b.WriteByte('>')
		write(b, g.Child)
		b.WriteByte(')')
	case ast.GroupNonCapturing:
		b.WriteString("(?:")
		write(b, g.Child)
		b.WriteByte(')')
	case ast.GroupAtomic:
		b.WriteString("(?>")
		write(b, g.Child)
		b.WriteByte(')')
	case ast.GroupLookaheadPositive:
		b.WriteString("(?=")
		write(b, g.Child)
		b.WriteByte(')')
	case ast.GroupLookaheadNegative:
		b.WriteString("(?!")
		write(b, g.Child)
		b.WriteByte(')')
	case ast.GroupLookbehindPos:
		b.WriteString("(?<=")
		write(b, g.Child)
		b.WriteByte(')')
	case ast.GroupLookbehindNeg:
		b.WriteString("(?<!")
		write(b, g.Child)
		b.WriteByte(')')
	case ast.GroupInlineFlags:
		b.WriteString("(?")
		b.WriteString(g.Flags)
		if g.Child != nil {
			b.WriteByte(':')
			write(b, g.Child)
			b.WriteByte(')')
		} else {
			b.WriteByte(')')
		}
	case ast.GroupBranchReset:
		b.WriteString("(?|")
		write(b, g.Child)
		b.WriteByte(')')
	default:
		write(b, g.Child)
	}
}
