// Package regularsubset implements the RegularSubsetValidator (C10): a gate
// that rejects AST features the automata pipeline (C6-C9) cannot translate,
// before those components ever see the tree.
package regularsubset

import (
	"github.com/0x4d5352/regexcore/internal/ast"
	"github.com/0x4d5352/regexcore/internal/errs"
)

// Options configures which normally-rejected constructs are tolerated.
type Options struct {
	// AllowLookaround admits a caller-vetted decidable subset of lookaround
	// (spec.md §4.10: "unless caller opted in to a decidable safe subset").
	AllowLookaround bool
	// StrictPossessive additionally rejects possessive quantifiers; off by
	// default since possessive-vs-greedy doesn't change the recognized
	// language, only backtracking behavior.
	StrictPossessive bool
}

// Check walks node and returns the first disqualifying feature found, or
// nil if the whole tree is in the regular subset. pattern is the original
// source text, used only to render error snippets.
func Check(pattern string, node ast.Node, opts Options) error {
	v := &checker{opts: opts, pattern: pattern}
	v.walk(node)
	return v.err
}

type checker struct {
	opts    Options
	pattern string
	err     error
}

func (c *checker) reject(n ast.Node, reason string) {
	if c.err != nil {
		return
	}
	c.err = errs.Complexity(c.pattern, n.Span().Start, "regularsubset."+reason, reason+": not translatable to a finite automaton")
}

func (c *checker) walk(n ast.Node) {
	if n == nil || c.err != nil {
		return
	}
	switch v := n.(type) {
	case *ast.Regex:
		c.walk(v.Body)
	case *ast.Sequence:
		for _, child := range v.Children {
			c.walk(child)
		}
	case *ast.Alternation:
		for _, b := range v.Branches {
			c.walk(b)
		}
	case *ast.Quantifier:
		if v.Greediness == ast.Possessive && c.opts.StrictPossessive {
			c.reject(v, "possessive quantifier")
			return
		}
		c.walk(v.Child)
	case *ast.Group:
		switch v.Kind {
		case ast.GroupAtomic:
			c.reject(v, "atomic group")
			return
		case ast.GroupLookaheadPositive, ast.GroupLookaheadNegative,
			ast.GroupLookbehindPos, ast.GroupLookbehindNeg:
			if !c.opts.AllowLookaround {
				c.reject(v, "lookaround assertion")
				return
			}
		}
		c.walk(v.Child)
	case *ast.Define:
		c.reject(v, "DEFINE subpattern block")
	case *ast.Conditional:
		c.reject(v, "conditional pattern")
	case *ast.Backreference:
		c.reject(v, "backreference")
	case *ast.RecursiveRef:
		c.reject(v, "recursive subpattern call")
	case *ast.CharClass:
		c.walk(v.Expression)
	case *ast.ClassOperation:
		c.walk(v.Left)
		c.walk(v.Right)
	default:
		// Literal, CharLiteral, Range, CharType, POSIXClass, UnicodeProperty,
		// Anchor, Dot, Comment, ErrorNode: always regular, no children that
		// can themselves be disqualifying.
	}
}
