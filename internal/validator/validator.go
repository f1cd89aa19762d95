// Package validator implements the Validator (C4): a single read-only
// traversal of the AST checking the semantic rules spec.md §4.4 names,
// gated by the target version's feature table.
package validator

import (
	"github.com/0x4d5352/regexcore/internal/ast"
	"github.com/0x4d5352/regexcore/internal/errs"
	"github.com/0x4d5352/regexcore/internal/pattern"
)

// Limits bounds the checks that need a configurable ceiling.
type Limits struct {
	MaxPatternLength int
	MaxLookbehind    int
	MaxQuantifier    int
}

// DefaultLimits mirrors the Configuration record defaults (spec.md §6).
func DefaultLimits() Limits {
	return Limits{MaxPatternLength: 65536, MaxLookbehind: 255, MaxQuantifier: 65535}
}

// Result is the outcome of one Validate call.
type Result struct {
	Valid bool
	Error *errs.Error
}

// Validate walks regex.Body once, applying every check in spec.md §4.4.
// The first violation found is returned; later violations are not
// reported in the same call (single traversal, fail-fast, matching the
// teacher's one-pass flavor validation style).
func Validate(regex *ast.Regex, state *ast.ParserState, version pattern.Version, limits Limits) Result {
	table, ok := pattern.Get(version)
	if !ok {
		e := errs.Validation(regex.Pattern, 0, "validator.unknown_version", "unknown target version", "")
		return Result{Error: e}
	}

	if len(regex.Pattern) > limits.MaxPatternLength {
		e := errs.ResourceLimit(regex.Pattern, len(regex.Pattern), "validator.max_pattern_length",
			"pattern length exceeds max_pattern_length")
		return Result{Error: e}
	}

	v := &walker{
		pattern:   regex.Pattern,
		state:     state,
		table:     table,
		limits:    limits,
		names:     make(map[string][]*ast.Group),
		openNames: make(map[string]bool),
	}
	v.collectGroups(regex.Body)
	v.walk(regex.Body, 0)
	if v.err != nil {
		return Result{Error: v.err}
	}
	return Result{Valid: true}
}

type walker struct {
	pattern string
	state   *ast.ParserState
	table   *pattern.Table
	limits  Limits
	names   map[string][]*ast.Group
	err     *errs.Error

	// opened and openNames track how many numbered groups, and which named
	// groups, have been entered by the walk so far — a backreference checks
	// against these rather than the whole-pattern total, so a reference to a
	// group declared later in source order is rejected (spec §4.4: a
	// backreference is valid only against a group declared before or
	// containing it).
	opened    int
	openNames map[string]bool
}

func (v *walker) fail(offset int, code, msg, hint string) {
	if v.err != nil {
		return
	}
	v.err = errs.Validation(v.pattern, offset, code, msg, hint)
}

// collectGroups pre-scans every named group so backreference/duplicate-name
// checks don't need a second AST traversal.
func (v *walker) collectGroups(n ast.Node) {
	if n == nil {
		return
	}
	switch g := n.(type) {
	case *ast.Regex:
		v.collectGroups(g.Body)
	case *ast.Sequence:
		for _, c := range g.Children {
			v.collectGroups(c)
		}
	case *ast.Alternation:
		for _, b := range g.Branches {
			v.collectGroups(b)
		}
	case *ast.Quantifier:
		v.collectGroups(g.Child)
	case *ast.Group:
		if g.Name != "" {
			v.names[g.Name] = append(v.names[g.Name], g)
		}
		v.collectGroups(g.Child)
	case *ast.Define:
		v.collectGroups(g.Child)
	case *ast.Conditional:
		v.collectGroups(g.Condition)
		v.collectGroups(g.Then)
		v.collectGroups(g.Else)
	case *ast.CharClass:
		v.collectGroups(g.Expression)
	case *ast.ClassOperation:
		v.collectGroups(g.Left)
		v.collectGroups(g.Right)
	}
}

func (v *walker) walk(n ast.Node, depth int) {
	if n == nil || v.err != nil {
		return
	}
	switch node := n.(type) {
	case *ast.Regex:
		v.walk(node.Body, depth)
	case *ast.Sequence:
		for _, c := range node.Children {
			v.walk(c, depth)
		}
	case *ast.Alternation:
		for _, b := range node.Branches {
			v.walk(b, depth)
		}
	case *ast.Quantifier:
		v.checkQuantifier(node)
		v.walk(node.Child, depth)
	case *ast.Group:
		v.checkGroup(node)
		if node.Number > 0 {
			v.opened++
			if node.Name != "" {
				v.openNames[node.Name] = true
			}
		}
		v.walk(node.Child, depth+1)
	case *ast.Define:
		v.walk(node.Child, depth)
	case *ast.Conditional:
		v.walk(node.Condition, depth)
		v.walk(node.Then, depth)
		v.walk(node.Else, depth)
	case *ast.Backreference:
		v.checkBackreference(node)
	case *ast.RecursiveRef:
		if !v.table.Features().RecursivePatterns {
			v.fail(node.Span().Start, "validator.recursion_unsupported",
				"recursive patterns are not supported by target version "+string(v.table.Version()), "")
		}
	case *ast.CharClass:
		v.walk(node.Expression, depth)
	case *ast.ClassOperation:
		if !v.table.Features().ClassAlgebra {
			v.fail(node.Span().Start, "validator.class_algebra_unsupported",
				"character-class algebra is not supported by target version "+string(v.table.Version()), "")
			return
		}
		v.walk(node.Left, depth)
		v.walk(node.Right, depth)
	case *ast.Range:
		v.checkRange(node)
	}
}

func (v *walker) checkQuantifier(q *ast.Quantifier) {
	if q.Max != ast.Infinite && q.Max < q.Min {
		v.fail(q.Span().Start, "validator.quantifier_invalid_bounds",
			"quantifier upper bound is less than lower bound", "")
		return
	}
	if q.Min > v.limits.MaxQuantifier || (q.Max != ast.Infinite && q.Max > v.limits.MaxQuantifier) {
		v.fail(q.Span().Start, "validator.quantifier_too_large",
			"quantifier bound exceeds the configured maximum", "")
		return
	}
	if q.Greediness == ast.Possessive && !v.table.Features().PossessiveQuantifiers {
		v.fail(q.Span().Start, "validator.possessive_unsupported",
			"possessive quantifiers are not supported by target version "+string(v.table.Version()), "")
	}
}

func (v *walker) checkGroup(g *ast.Group) {
	switch g.Kind {
	case ast.GroupAtomic:
		if !v.table.Features().AtomicGroups {
			v.fail(g.Span().Start, "validator.atomic_unsupported", "atomic groups are not supported by target version "+string(v.table.Version()), "")
		}
	case ast.GroupNamed:
		if !v.table.Features().NamedGroups {
			v.fail(g.Span().Start, "validator.named_groups_unsupported", "named groups are not supported by target version "+string(v.table.Version()), "")
			return
		}
		v.checkDuplicateName(g)
	case ast.GroupLookaheadPositive, ast.GroupLookaheadNegative:
		if !v.table.Features().Lookahead {
			v.fail(g.Span().Start, "validator.lookahead_unsupported", "lookahead is not supported by target version "+string(v.table.Version()), "")
		}
	case ast.GroupLookbehindPos, ast.GroupLookbehindNeg:
		if !v.table.Features().Lookbehind {
			v.fail(g.Span().Start, "validator.lookbehind_unsupported", "lookbehind is not supported by target version "+string(v.table.Version()), "")
			return
		}
		v.checkLookbehindLength(g)
	case ast.GroupBranchReset:
		if !v.table.Features().BranchReset {
			v.fail(g.Span().Start, "validator.branch_reset_unsupported", "branch-reset groups are not supported by target version "+string(v.table.Version()), "")
		}
	}
}

func (v *walker) checkDuplicateName(g *ast.Group) {
	occurrences := v.names[g.Name]
	if len(occurrences) <= 1 {
		return
	}
	if v.table.Features().BranchReset {
		// Duplicate names are legal when every occurrence lives directly
		// under the same branch-reset group; approximated here by the
		// rule "all occurrences share the same capture number", since
		// branch-reset is exactly what makes that true.
		num := v.state.Groups.NumberOf(occurrences[0])
		for _, o := range occurrences[1:] {
			if v.state.Groups.NumberOf(o) != num {
				v.fail(g.Span().Start, "validator.duplicate_group_name",
					"duplicate group name outside a branch-reset group: "+g.Name, "")
				return
			}
		}
		return
	}
	v.fail(g.Span().Start, "validator.duplicate_group_name", "duplicate group name: "+g.Name, "")
}

func (v *walker) checkLookbehindLength(g *ast.Group) {
	minLen, maxLen, unbounded := subtreeLength(g.Child)
	if unbounded {
		if !v.table.Features().LookbehindUnlimited {
			v.fail(g.Span().Start, "validator.lookbehind_unbounded",
				"unbounded-length lookbehind is not supported by target version "+string(v.table.Version()), "")
		}
		return
	}
	max := v.limits.MaxLookbehind
	if max <= 0 {
		max = v.table.MaxLookbehindDefault()
	}
	if maxLen > max {
		v.fail(g.Span().Start, "validator.lookbehind_too_long",
			"lookbehind length exceeds max_lookbehind_length", "")
	}
	_ = minLen
}

// subtreeLength computes the [min,max] matched-length range of a subtree,
// conservatively: unsupported shapes (backreferences, recursion) report
// unbounded=true so the caller fails closed.
func subtreeLength(n ast.Node) (min, max int, unbounded bool) {
	switch node := n.(type) {
	case nil:
		return 0, 0, false
	case *ast.Literal:
		l := len([]rune(node.Value))
		return l, l, false
	case *ast.CharLiteral, *ast.CharType, *ast.POSIXClass, *ast.UnicodeProperty, *ast.CharClass, *ast.Dot:
		return 1, 1, false
	case *ast.Anchor, *ast.Comment:
		return 0, 0, false
	case *ast.Sequence:
		for _, c := range node.Children {
			cMin, cMax, u := subtreeLength(c)
			if u {
				return 0, 0, true
			}
			min += cMin
			max += cMax
		}
		return min, max, false
	case *ast.Alternation:
		first := true
		for _, b := range node.Branches {
			bMin, bMax, u := subtreeLength(b)
			if u {
				return 0, 0, true
			}
			if first {
				min, max = bMin, bMax
				first = false
				continue
			}
			if bMin < min {
				min = bMin
			}
			if bMax > max {
				max = bMax
			}
		}
		return min, max, false
	case *ast.Group:
		return subtreeLength(node.Child)
	case *ast.Quantifier:
		if node.Max == ast.Infinite {
			return 0, 0, true
		}
		cMin, cMax, u := subtreeLength(node.Child)
		if u {
			return 0, 0, true
		}
		return cMin * node.Min, cMax * node.Max, false
	default:
		return 0, 0, true
	}
}

// checkBackreference enforces that \n or \k<name> names a group declared
// before, or containing, the reference in source order (spec §4.4) —
// v.opened/v.openNames reflect only the groups the walk has entered by this
// point, not the pattern-wide total, so a forward reference like \1(a) is
// rejected even though the pattern does eventually declare group 1.
func (v *walker) checkBackreference(b *ast.Backreference) {
	if b.Numeric {
		if b.Index < 1 || b.Index > v.opened {
			v.fail(b.Span().Start, "backref.missing", "backreference to a nonexistent group", "")
		}
		return
	}
	if !v.openNames[b.Name] {
		v.fail(b.Span().Start, "backref.missing", "backreference to an undeclared named group: "+b.Name, "")
	}
}

func (v *walker) checkRange(r *ast.Range) {
	if r.Low.Codepoint > r.High.Codepoint {
		v.fail(r.Span().Start, "validator.range_invalid", "character range is out of order (low > high)", "")
	}
}
