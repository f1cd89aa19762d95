package redos

import (
	"github.com/0x4d5352/regexcore/internal/ast"
	"github.com/0x4d5352/regexcore/internal/nfa"
)

// interval is an inclusive codepoint range.
type interval struct{ lo, hi rune }

// firstSet is a conservative approximation of "which codepoints can a
// match of this node start with", used only to detect overlap between a
// repeater's body and its neighbors. Character-matching leaves (Dot,
// CharClass, CharType, POSIXClass, UnicodeProperty) are resolved to exact
// codepoint ranges by compiling just that node through the nfa package
// and reading back its range transitions, rather than approximated as an
// unconditional wildcard.
type firstSet struct {
	ranges   []interval
	anchored bool // an Anchor immediately precedes/starts this position
}

func (s *firstSet) sampleRune() (rune, bool) {
	if len(s.ranges) == 0 {
		return 0, false
	}
	return s.ranges[0].lo, true
}

func (s *firstSet) overlaps(o *firstSet) bool {
	if s == nil || o == nil {
		return false
	}
	for _, a := range s.ranges {
		for _, b := range o.ranges {
			if a.lo <= b.hi && b.lo <= a.hi {
				return true
			}
		}
	}
	return false
}

func computeFirstSet(n ast.Node) firstSet {
	switch node := n.(type) {
	case nil:
		return firstSet{}
	case *ast.Literal:
		runes := []rune(node.Value)
		if len(runes) == 0 {
			return firstSet{}
		}
		return firstSet{ranges: []interval{{runes[0], runes[0]}}}
	case *ast.CharLiteral:
		return firstSet{ranges: []interval{{node.Codepoint, node.Codepoint}}}
	case *ast.Dot, *ast.CharClass, *ast.CharType, *ast.POSIXClass, *ast.UnicodeProperty:
		return firstSet{ranges: leafRanges(node)}
	case *ast.Sequence:
		for _, c := range node.Children {
			fs := computeFirstSet(c)
			if len(fs.ranges) > 0 || fs.anchored {
				return fs
			}
		}
		return firstSet{}
	case *ast.Alternation:
		var out []interval
		for _, b := range node.Branches {
			out = append(out, computeFirstSet(b).ranges...)
		}
		return firstSet{ranges: out}
	case *ast.Group:
		return computeFirstSet(node.Child)
	case *ast.Quantifier:
		return computeFirstSet(node.Child)
	case *ast.Anchor:
		return firstSet{anchored: true}
	default:
		return firstSet{}
	}
}

// leafRanges compiles n in isolation and reads back the range
// transitions reachable from its start state without consuming a
// codepoint first (i.e. through Split only), giving the exact set of
// codepoints a match of n can begin with.
func leafRanges(n ast.Node) []interval {
	regex := ast.NewRegex("", '/', "", n, ast.Span{})
	nf, err := nfa.Compile(regex)
	if err != nil {
		return nil
	}
	var out []interval
	visited := map[nfa.StateID]bool{}
	var walk func(id nfa.StateID)
	walk = func(id nfa.StateID) {
		if visited[id] {
			return
		}
		visited[id] = true
		s := nf.State(id)
		if s == nil {
			return
		}
		switch s.Kind {
		case nfa.KindSplit:
			walk(s.Left)
			walk(s.Right)
		case nfa.KindRange:
			if s.Lo <= s.Hi {
				out = append(out, interval{s.Lo, s.Hi})
			}
		}
	}
	walk(nf.Start)
	return out
}
