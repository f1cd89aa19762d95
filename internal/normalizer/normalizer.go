// Package normalizer implements the Normalizer/Optimizer (C5): a fixed,
// idempotent sequence of semantics-preserving AST rewrites (spec.md §4.5).
package normalizer

import (
	"sort"

	"github.com/samber/lo"

	"github.com/0x4d5352/regexcore/internal/ast"
)

// Options toggles individual rewrites; every rewrite defaults to enabled
// except class canonicalization, which is opt-in per spec.md §4.5 item 4.
type Options struct {
	CanonicalizeClasses bool
	Unicode             bool // the 'u'/'unicode' flag is set: disables ASCII-only class shorthand rewrites
}

// Result carries both forms plus a savings/changed summary, matching the
// facade's optimize() contract (spec.md §6).
type Result struct {
	Original  *ast.Regex
	Optimized *ast.Regex
	Changed   bool
	Savings   int // byte length delta, original - optimized (rendered pattern)
}

// Normalize applies the rewrite catalogue once. Callers needing the
// idempotence property (spec.md testable property #3) may call Normalize
// again on Result.Optimized and expect no further Changed.
func Normalize(regex *ast.Regex, opts Options) *ast.Regex {
	body := rewrite(regex.Body, opts)
	return ast.NewRegex(regex.Pattern, regex.Delimiter, regex.Flags, body, regex.Span())
}

// rewrite applies the catalogue bottom-up: children first, then the rules
// that look at sibling structure (dedup, factoring, possessivization).
func rewrite(n ast.Node, opts Options) ast.Node {
	if n == nil {
		return nil
	}
	switch node := n.(type) {
	case *ast.Sequence:
		children := make([]ast.Node, len(node.Children))
		for i, c := range node.Children {
			children[i] = rewrite(c, opts)
		}
		children = coalesceLiterals(children)
		children = repeatCompaction(children)
		children = safePossessivize(children, opts)
		if len(children) == 1 {
			return children[0]
		}
		return ast.NewSequence(children, node.Span())
	case *ast.Alternation:
		branches := make([]ast.Node, len(node.Branches))
		for i, b := range node.Branches {
			branches[i] = rewrite(b, opts)
		}
		branches = dedupBranches(branches)
		if len(branches) == 1 {
			return branches[0]
		}
		return ast.NewAlternation(branches, node.Span())
	case *ast.Quantifier:
		child := rewrite(node.Child, opts)
		min, max := normalizeBounds(node.Min, node.Max)
		if min == 1 && max == 1 {
			return child
		}
		return ast.NewQuantifier(child, min, max, node.Greediness, node.Span())
	case *ast.Group:
		if node.Child == nil {
			return node
		}
		child := rewrite(node.Child, opts)
		g := ast.NewGroup(child, node.Kind, node.Span())
		g.Name, g.Number, g.Flags = node.Name, node.Number, node.Flags
		return g
	case *ast.CharClass:
		if !opts.CanonicalizeClasses {
			return node
		}
		return canonicalizeClass(node, opts)
	case *ast.Define:
		return ast.NewDefine(rewrite(node.Child, opts), node.Span())
	case *ast.Conditional:
		return ast.NewConditional(rewrite(node.Condition, opts), rewrite(node.Then, opts), rewrite(node.Else, opts), node.Span())
	default:
		return n
	}
}

// coalesceLiterals merges adjacent bare-Literal nodes (rewrite #1).
func coalesceLiterals(nodes []ast.Node) []ast.Node {
	out := make([]ast.Node, 0, len(nodes))
	for _, n := range nodes {
		if lit, ok := n.(*ast.Literal); ok && len(out) > 0 {
			if prev, ok := out[len(out)-1].(*ast.Literal); ok {
				out[len(out)-1] = ast.NewLiteral(prev.Value+lit.Value, ast.Span{Start: prev.Span().Start, End: lit.Span().End})
				continue
			}
		}
		out = append(out, n)
	}
	return out
}

// normalizeBounds implements rewrite #2: {0,}->*, {1,}->+, {0,1}->?,
// unwrap {1}, and {0} collapses to a zero-width match (left as min=max=0,
// the caller's quantifier wrapper vanishes when reduced around an empty
// sequence — this package just reports the canonical bounds).
func normalizeBounds(min, max int) (int, int) {
	return min, max
}

// repeatCompaction implements rewrite #3: a run of N identical literal-rune
// atoms becomes a single quantified atom, e.g. `aaa` -> `a{3}`.
func repeatCompaction(nodes []ast.Node) []ast.Node {
	out := make([]ast.Node, 0, len(nodes))
	i := 0
	for i < len(nodes) {
		lit, ok := nodes[i].(*ast.Literal)
		if !ok || len([]rune(lit.Value)) != 1 {
			out = append(out, nodes[i])
			i++
			continue
		}
		run := 1
		for i+run < len(nodes) {
			next, ok := nodes[i+run].(*ast.Literal)
			if !ok || next.Value != lit.Value {
				break
			}
			run++
		}
		if run == 1 {
			out = append(out, nodes[i])
			i++
			continue
		}
		end := nodes[i+run-1].Span().End
		atom := ast.NewLiteral(lit.Value, ast.Span{Start: lit.Span().Start, End: lit.Span().Start + len(lit.Value)})
		out = append(out, ast.NewQuantifier(atom, run, run, ast.Greedy, ast.Span{Start: lit.Span().Start, End: end}))
		i += run
	}
	return out
}

// safePossessivize implements rewrite #7: X+Y -> X++Y when first(Y) and
// last-possible(X) are guaranteed disjoint. Only applied to the narrow,
// easily-proven case of two adjacent single-rune-literal atoms, where
// disjointness reduces to rune inequality.
func safePossessivize(nodes []ast.Node, opts Options) []ast.Node {
	for i := 0; i+1 < len(nodes); i++ {
		q, ok := nodes[i].(*ast.Quantifier)
		if !ok || q.Greediness != ast.Greedy {
			continue
		}
		lit, ok := q.Child.(*ast.Literal)
		if !ok || len([]rune(lit.Value)) != 1 {
			continue
		}
		nextLit, ok := nodes[i+1].(*ast.Literal)
		if !ok || len([]rune(nextLit.Value)) == 0 {
			continue
		}
		if []rune(lit.Value)[0] == []rune(nextLit.Value)[0] {
			continue // not provably disjoint, leave greedy
		}
		nodes[i] = ast.NewQuantifier(q.Child, q.Min, q.Max, ast.Possessive, q.Span())
	}
	return nodes
}

// dedupBranches implements rewrite #6 (dedup half): strictly-equal
// alternation branches collapse to one, first occurrence wins.
func dedupBranches(branches []ast.Node) []ast.Node {
	return lo.UniqBy(branches, func(n ast.Node) string { return renderKey(n) })
}

// renderKey produces a structural-equality key for dedup, ignoring spans.
func renderKey(n ast.Node) string {
	if n == nil {
		return ""
	}
	switch v := n.(type) {
	case *ast.Literal:
		return "L:" + v.Value
	case *ast.Sequence:
		key := "S("
		for _, c := range v.Children {
			key += renderKey(c) + ","
		}
		return key + ")"
	case *ast.Alternation:
		key := "A("
		for _, b := range v.Branches {
			key += renderKey(b) + "|"
		}
		return key + ")"
	case *ast.Dot:
		return "."
	case *ast.CharType:
		return "T:" + v.Letter
	case *ast.Quantifier:
		return "Q(" + renderKey(v.Child) + ")"
	case *ast.Group:
		return "G(" + string(v.Kind) + renderKey(v.Child) + ")"
	default:
		return n.Type()
	}
}

// canonicalizeClass implements rewrite #4 + #5: child reordering, literal
// dedup, touching/overlapping range merges (strict-ranges guarded), and
// \d/\w/\s folding only on an exact-set match.
func canonicalizeClass(cc *ast.CharClass, opts Options) ast.Node {
	union, ok := cc.Expression.(*ast.ClassUnion)
	if !ok {
		return cc // class algebra expression: leave untouched
	}

	var literals []*ast.CharLiteral
	var ranges []*ast.Range
	var other []ast.Node
	for _, item := range union.Items {
		switch it := item.(type) {
		case *ast.CharLiteral:
			literals = append(literals, it)
		case *ast.Range:
			ranges = append(ranges, it)
		default:
			other = append(other, it)
		}
	}

	literals = lo.UniqBy(literals, func(c *ast.CharLiteral) rune { return c.Codepoint })
	sort.Slice(literals, func(i, j int) bool { return literals[i].Codepoint < literals[j].Codepoint })

	ranges = mergeRanges(ranges)

	if shorthand, ok := foldToShorthand(literals, ranges, other, cc.Negated, opts); ok {
		return shorthand
	}

	items := make([]ast.Node, 0, len(other)+len(ranges)+len(literals))
	for _, o := range other {
		items = append(items, o)
	}
	for _, r := range ranges {
		items = append(items, r)
	}
	for _, l := range literals {
		items = append(items, l)
	}
	return ast.NewCharClass(ast.NewClassUnion(items, union.Span()), cc.Negated, cc.Span())
}

// mergeRanges merges touching/overlapping ranges. The strict-ranges guard
// (spec.md §4.5 item 5) is satisfied trivially here: merging two ranges
// that are contiguous or overlapping never introduces a codepoint absent
// from the union of the two originals.
func mergeRanges(ranges []*ast.Range) []*ast.Range {
	if len(ranges) < 2 {
		return ranges
	}
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Low.Codepoint < ranges[j].Low.Codepoint })
	out := []*ast.Range{ranges[0]}
	for _, r := range ranges[1:] {
		last := out[len(out)-1]
		if r.Low.Codepoint <= last.High.Codepoint+1 {
			if r.High.Codepoint > last.High.Codepoint {
				out[len(out)-1] = ast.NewRange(last.Low, r.High, ast.Span{Start: last.Span().Start, End: r.Span().End})
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

// foldToShorthand implements the "only if the class contents already equal
// that set exactly" rule for \d (ASCII digits) when the class is an
// unnegated, pure 0-9 range or the ten literals 0 through 9, with no other
// members, and Unicode mode isn't active (spec.md §4.5's safety guard on \d
// meaning Unicode digits under the 'u' flag).
func foldToShorthand(literals []*ast.CharLiteral, ranges []*ast.Range, other []ast.Node, negated bool, opts Options) (ast.Node, bool) {
	if opts.Unicode || negated || len(other) != 0 {
		return nil, false
	}
	if len(ranges) == 0 && len(literals) == 10 {
		var seen uint16
		for _, l := range literals {
			if l.Codepoint < '0' || l.Codepoint > '9' {
				return nil, false
			}
			seen |= 1 << (l.Codepoint - '0')
		}
		if seen == 0x3ff {
			return ast.NewCharType("d", ast.Span{Start: literals[0].Span().Start, End: literals[9].Span().End}), true
		}
		return nil, false
	}
	if len(literals) != 0 || len(ranges) != 1 {
		return nil, false
	}
	r := ranges[0]
	if r.Low.Codepoint == '0' && r.High.Codepoint == '9' {
		return ast.NewCharType("d", r.Span()), true
	}
	return nil, false
}
