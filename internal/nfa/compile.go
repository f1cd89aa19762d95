package nfa

import (
	"strings"

	"github.com/0x4d5352/regexcore/internal/ast"
	"github.com/0x4d5352/regexcore/internal/errs"
)

// Compile translates a regularsubset-gated AST into an NFA (spec.md §4.6's
// inductive Thompson table). regex.Flags is consulted only for the 's'
// (dotall) flag, which widens Dot's transition set.
func Compile(regex *ast.Regex) (*NFA, error) {
	b := &builder{}
	c := &compiler{b: b, dotAll: strings.ContainsRune(regex.Flags, 's')}
	accept := b.addMatch()
	start, err := c.compile(regex.Body, accept)
	if err != nil {
		return nil, err
	}
	return &NFA{States: b.states, Start: start}, nil
}

type compiler struct {
	b      *builder
	dotAll bool
}

// compile emits the fragment for n, wiring its single logical accept
// directly to out (the continuation), and returns the fragment's start
// state. This is Thompson construction with the accept state of every
// fragment identified with its caller-supplied continuation instead of a
// separately allocated join state — equivalent in the languages produced,
// cheaper in state count.
func (c *compiler) compile(n ast.Node, out StateID) (StateID, error) {
	switch node := n.(type) {
	case *ast.Regex:
		return c.compile(node.Body, out)
	case *ast.Sequence:
		cont := out
		for i := len(node.Children) - 1; i >= 0; i-- {
			var err error
			cont, err = c.compile(node.Children[i], cont)
			if err != nil {
				return InvalidState, err
			}
		}
		return cont, nil
	case *ast.Alternation:
		return c.compileAlternation(node.Branches, out)
	case *ast.Literal:
		return c.compileLiteral(node.Value, out)
	case *ast.CharLiteral:
		return c.b.addRange(node.Codepoint, node.Codepoint, out), nil
	case *ast.Dot:
		return c.compileDot(out), nil
	case *ast.CharType:
		return c.compileCharType(node, out)
	case *ast.POSIXClass:
		ivs := posixClassRanges[node.Name]
		if node.Negated {
			ivs = complement(normalize(append([]interval{}, ivs...)))
		}
		return c.compileRanges(ivs, out)
	case *ast.UnicodeProperty:
		ivs := unicodePropertyRangesFor(node.Property)
		if node.Negated {
			ivs = complement(normalize(append([]interval{}, ivs...)))
		}
		return c.compileRanges(ivs, out)
	case *ast.CharClass:
		ivs, err := c.classRanges(node.Expression)
		if err != nil {
			return InvalidState, err
		}
		if node.Negated {
			ivs = complement(ivs)
		}
		return c.compileRanges(ivs, out)
	case *ast.Anchor:
		return c.compileAnchor(node, out)
	case *ast.Quantifier:
		return c.compileQuantifier(node, out)
	case *ast.Group:
		if node.Child == nil {
			// Zero-width inline-flags directive: no-op at the automata
			// layer (flag scoping doesn't affect the recognized language
			// of the constructs this stage accepts).
			return out, nil
		}
		return c.compile(node.Child, out)
	case *ast.Comment:
		return out, nil
	default:
		return InvalidState, errs.Complexity("", n.Span().Start, "nfa.unsupported_node",
			n.Type()+" has no automata translation")
	}
}

func (c *compiler) compileAlternation(branches []ast.Node, out StateID) (StateID, error) {
	if len(branches) == 0 {
		return out, nil
	}
	if len(branches) == 1 {
		return c.compile(branches[0], out)
	}
	mid := len(branches) / 2
	left, err := c.compileAlternation(branches[:mid], out)
	if err != nil {
		return InvalidState, err
	}
	right, err := c.compileAlternation(branches[mid:], out)
	if err != nil {
		return InvalidState, err
	}
	return c.b.addSplit(left, right), nil
}

func (c *compiler) compileLiteral(value string, out StateID) (StateID, error) {
	runes := []rune(value)
	cont := out
	for i := len(runes) - 1; i >= 0; i-- {
		cont = c.b.addRange(runes[i], runes[i], cont)
	}
	return cont, nil
}

func (c *compiler) compileDot(out StateID) StateID {
	if c.dotAll {
		return c.compileRangesMust([]interval{{0, MaxCodepoint}}, out)
	}
	return c.compileRangesMust(complement(normalize([]interval{{'\n', '\n'}})), out)
}

func (c *compiler) compileCharType(node *ast.CharType, out StateID) (StateID, error) {
	if node.Letter == "R" {
		// \R: \r\n | \r | \n
		return c.compileAlternation([]ast.Node{
			ast.NewLiteral("\r\n", node.Span()),
			ast.NewCharLiteral('\r', ast.CharLiteralRaw, node.Span()),
			ast.NewCharLiteral('\n', ast.CharLiteralRaw, node.Span()),
		}, out)
	}
	ivs, negate := charTypeRanges(node.Letter)
	if negate {
		ivs = complement(normalize(append([]interval{}, ivs...)))
	}
	return c.compileRanges(ivs, out)
}

func (c *compiler) compileRanges(ivs []interval, out StateID) (StateID, error) {
	return c.compileRangesMust(ivs, out), nil
}

func (c *compiler) compileRangesMust(ivs []interval, out StateID) StateID {
	if len(ivs) == 0 {
		// Empty set: no transition can ever be taken. Represent with a
		// range that can never match (Lo > Hi is never constructed
		// elsewhere, so this is unambiguous dead weight for the subset
		// builder to prune).
		return c.b.addRange(1, 0, out)
	}
	return c.splitRanges(ivs, out)
}

func (c *compiler) splitRanges(ivs []interval, out StateID) StateID {
	if len(ivs) == 1 {
		return c.b.addRange(ivs[0].Lo, ivs[0].Hi, out)
	}
	mid := len(ivs) / 2
	left := c.splitRanges(ivs[:mid], out)
	right := c.splitRanges(ivs[mid:], out)
	return c.b.addSplit(left, right)
}

// classRanges resolves a CharClass's expression (a ClassUnion or a
// PCRE2-algebra ClassOperation tree) into a normalized, disjoint interval
// set.
func (c *compiler) classRanges(n ast.Node) ([]interval, error) {
	switch node := n.(type) {
	case *ast.ClassUnion:
		var out []interval
		for _, item := range node.Items {
			ivs, err := c.itemRanges(item)
			if err != nil {
				return nil, err
			}
			out = union(out, ivs)
		}
		return out, nil
	case *ast.ClassOperation:
		left, err := c.classRanges(node.Left)
		if err != nil {
			return nil, err
		}
		right, err := c.classRanges(node.Right)
		if err != nil {
			return nil, err
		}
		switch node.Kind {
		case ast.ClassOpUnion:
			return union(left, right), nil
		case ast.ClassOpIntersection:
			return intersect(left, right), nil
		case ast.ClassOpDifference:
			return difference(left, right), nil
		case ast.ClassOpSymmetricDiff:
			return symmetricDifference(left, right), nil
		}
		return nil, errs.Complexity("", node.Span().Start, "nfa.unknown_class_op", "unrecognized class operation")
	default:
		return c.itemRanges(n)
	}
}

func (c *compiler) itemRanges(n ast.Node) ([]interval, error) {
	switch node := n.(type) {
	case *ast.CharLiteral:
		return []interval{{node.Codepoint, node.Codepoint}}, nil
	case *ast.Range:
		return []interval{{node.Low.Codepoint, node.High.Codepoint}}, nil
	case *ast.CharType:
		ivs, negate := charTypeRanges(node.Letter)
		if negate {
			return complement(normalize(append([]interval{}, ivs...))), nil
		}
		return ivs, nil
	case *ast.POSIXClass:
		ivs := posixClassRanges[node.Name]
		if node.Negated {
			return complement(normalize(append([]interval{}, ivs...))), nil
		}
		return ivs, nil
	case *ast.UnicodeProperty:
		ivs := unicodePropertyRangesFor(node.Property)
		if node.Negated {
			return complement(normalize(append([]interval{}, ivs...))), nil
		}
		return ivs, nil
	case *ast.ClassOperation, *ast.ClassUnion:
		return c.classRanges(node)
	default:
		return nil, errs.Complexity("", n.Span().Start, "nfa.unsupported_class_item", n.Type()+" cannot appear in a character class")
	}
}

func (c *compiler) compileAnchor(node *ast.Anchor, out StateID) (StateID, error) {
	var kind AnchorKind
	switch node.Kind {
	case ast.AnchorStart:
		kind = AnchorStartOfLine
	case ast.AnchorEnd:
		kind = AnchorEndOfLine
	case ast.AnchorStartOfString, ast.AnchorFirstMatchPos:
		// \G (first match position) is approximated as start-of-text: the
		// richer "resume from the previous match's end" semantics needs
		// per-search state this stage's finite automaton doesn't carry.
		kind = AnchorStartOfText
	case ast.AnchorEndOfString, ast.AnchorAbsoluteEnd:
		kind = AnchorEndOfText
	case ast.AnchorWordBoundary:
		kind = AnchorWordBoundary
	case ast.AnchorNonWordBoundary:
		kind = AnchorNonWordBoundary
	case ast.AnchorResetMatchStart:
		// \K: erases everything matched so far from the reported match.
		// Language membership is unaffected, so it compiles to a no-op.
		return out, nil
	default:
		return InvalidState, errs.Complexity("", node.Span().Start, "nfa.unsupported_anchor", "unrecognized anchor kind")
	}
	return c.b.addAnchor(kind, out), nil
}

// compileQuantifier implements spec.md §4.6's repetition rows: A? A* A+
// and the general A{m,n} unrolling (m mandatory copies, then n-m optional
// copies, or an unbounded star tail when n is ∞). Greediness does not
// affect the language recognized and is erased here.
func (c *compiler) compileQuantifier(q *ast.Quantifier, out StateID) (StateID, error) {
	if q.Min == 0 && q.Max == 1 {
		body, err := c.compile(q.Child, out)
		if err != nil {
			return InvalidState, err
		}
		return c.b.addSplit(body, out), nil
	}
	if q.Max == ast.Infinite {
		tail, err := c.star(q.Child, out)
		if err != nil {
			return InvalidState, err
		}
		return c.prependMandatory(q.Child, q.Min, tail)
	}
	cont := out
	for i := 0; i < q.Max-q.Min; i++ {
		body, err := c.compile(q.Child, cont)
		if err != nil {
			return InvalidState, err
		}
		cont = c.b.addSplit(body, cont)
	}
	return c.prependMandatory(q.Child, q.Min, cont)
}

// star compiles A* with continuation out: a split whose left branch enters
// one copy of A looping back to the same split, and whose right branch
// exits directly to out.
func (c *compiler) star(child ast.Node, out StateID) (StateID, error) {
	split := c.b.reserve()
	bodyStart, err := c.compile(child, split)
	if err != nil {
		return InvalidState, err
	}
	c.b.set(split, State{Kind: KindSplit, Left: bodyStart, Right: out})
	return split, nil
}

func (c *compiler) prependMandatory(child ast.Node, n int, out StateID) (StateID, error) {
	cont := out
	for i := 0; i < n; i++ {
		var err error
		cont, err = c.compile(child, cont)
		if err != nil {
			return InvalidState, err
		}
	}
	return cont, nil
}
