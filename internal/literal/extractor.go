package literal

import (
	"github.com/0x4d5352/regexcore/internal/ast"
	"github.com/0x4d5352/regexcore/internal/nfa"
)

// Options bounds extraction the way coregx-coregex's ExtractorConfig bounds
// its cross-product walk: MaxLiterals caps alternation fan-out,
// MaxLiteralLen caps any single candidate's length, MaxClassSize caps which
// character classes are worth expanding into individual literals.
type Options struct {
	MaxLiterals   int
	MaxLiteralLen int
	MaxClassSize  int
}

// DefaultOptions mirrors coregx-coregex's DefaultConfig — tuned for typical
// patterns rather than pathological ones.
func DefaultOptions() Options {
	return Options{MaxLiterals: 64, MaxLiteralLen: 64, MaxClassSize: 10}
}

// LiteralSet is the bounded prefix/suffix sample derived from an AST.
// Complete is true only when the pattern's entire match is covered by one
// of Prefixes (equivalently Suffixes) — i.e. the pattern denotes a finite
// set of exact strings with no unbounded or wildcard content.
type LiteralSet struct {
	Prefixes []string
	Suffixes []string
	Complete bool
}

// Extract computes the LiteralSet for n.
func Extract(n ast.Node, opts Options) LiteralSet {
	opts = withDefaults(opts)
	e := &extractor{opts: opts}
	prefixes := e.prefixes(n, 0)
	suffixes := e.suffixes(n, 0)

	complete := !prefixes.isEmpty() && !prefixes.anyIncomplete() &&
		!suffixes.isEmpty() && !suffixes.anyIncomplete()

	return LiteralSet{
		Prefixes: prefixes.dedupAndBound(opts.MaxLiterals).strings(),
		Suffixes: suffixes.dedupAndBound(opts.MaxLiterals).strings(),
		Complete: complete,
	}
}

func withDefaults(opts Options) Options {
	d := DefaultOptions()
	if opts.MaxLiterals <= 0 {
		opts.MaxLiterals = d.MaxLiterals
	}
	if opts.MaxLiteralLen <= 0 {
		opts.MaxLiteralLen = d.MaxLiteralLen
	}
	if opts.MaxClassSize <= 0 {
		opts.MaxClassSize = d.MaxClassSize
	}
	return opts
}

type extractor struct {
	opts Options
}

const maxExtractDepth = 100

// prefixes returns the literals that must appear at the start of any match.
func (e *extractor) prefixes(n ast.Node, depth int) seq {
	if depth > maxExtractDepth {
		return seq{}
	}
	switch v := n.(type) {
	case *ast.Literal:
		return e.literalSeq(v.Value)
	case *ast.CharLiteral:
		return e.literalSeq(string(v.Codepoint))
	case *ast.Sequence:
		return e.prefixesConcat(v.Children, depth)
	case *ast.Alternation:
		return e.unionBranches(v.Branches, depth, e.prefixes)
	case *ast.Group:
		if v.Kind == ast.GroupLookaheadPositive || v.Kind == ast.GroupLookaheadNegative ||
			v.Kind == ast.GroupLookbehindPos || v.Kind == ast.GroupLookbehindNeg {
			return seq{}
		}
		return e.prefixes(v.Child, depth+1)
	case *ast.CharClass, *ast.CharType, *ast.POSIXClass, *ast.UnicodeProperty, *ast.Dot:
		return e.expandClass(v)
	case *ast.Quantifier:
		// Anything other than a fixed single repetition (min==max==1, which
		// the parser never emits as a Quantifier) makes the prefix variable.
		return seq{}
	case *ast.Anchor, *ast.Comment:
		return seq{}
	default:
		return seq{}
	}
}

// prefixesConcat walks a Sequence left to right, cross-extending the
// accumulator until a non-literal child stops further extension — the same
// shape as coregx-coregex's extractPrefixesConcat.
func (e *extractor) prefixesConcat(children []ast.Node, depth int) seq {
	idx := 0
	for idx < len(children) {
		if _, ok := children[idx].(*ast.Anchor); ok {
			idx++
			continue
		}
		break
	}
	if idx >= len(children) {
		return seq{}
	}

	acc := newSeq(candidate{bytes: "", complete: true})
	for ; idx < len(children); idx++ {
		if acc.len() > 0 && allIncomplete(acc) {
			break
		}
		contribution := e.concatContribution(children[idx], depth)
		if contribution == nil {
			acc = acc.markIncomplete()
			break
		}
		acc = acc.crossForward(*contribution)
		if acc.len() > e.opts.MaxLiterals {
			acc = acc.dedupAndBound(e.opts.MaxLiterals)
			break
		}
		acc = acc.truncate(e.opts.MaxLiteralLen)
	}
	if acc.len() == 1 && acc.items[0].bytes == "" {
		return seq{}
	}
	return acc
}

func allIncomplete(s seq) bool {
	for _, c := range s.items {
		if c.complete {
			return false
		}
	}
	return true
}

// concatContribution is the per-child expansion used inside a Sequence:
// literals and small classes contribute exactly, alternations of literals
// contribute their union, anything else returns nil (stop extending).
func (e *extractor) concatContribution(n ast.Node, depth int) *seq {
	switch v := n.(type) {
	case *ast.Literal:
		s := e.literalSeq(v.Value)
		return &s
	case *ast.CharLiteral:
		s := e.literalSeq(string(v.Codepoint))
		return &s
	case *ast.CharClass, *ast.CharType, *ast.POSIXClass, *ast.UnicodeProperty, *ast.Dot:
		s := e.expandClass(v)
		if s.isEmpty() {
			return nil
		}
		return &s
	case *ast.Alternation:
		s := e.unionBranches(v.Branches, depth, e.prefixes)
		if s.isEmpty() {
			return nil
		}
		return &s
	case *ast.Group:
		if v.Kind == ast.GroupLookaheadPositive || v.Kind == ast.GroupLookaheadNegative ||
			v.Kind == ast.GroupLookbehindPos || v.Kind == ast.GroupLookbehindNeg {
			return nil
		}
		return e.concatContribution(v.Child, depth+1)
	case *ast.Quantifier:
		if v.Min >= 1 {
			inner := e.concatContribution(v.Child, depth+1)
			if inner == nil {
				return nil
			}
			marked := inner.markIncomplete()
			return &marked
		}
		return nil
	default:
		return nil
	}
}

// suffixes returns the literals that must appear at the end of any match.
func (e *extractor) suffixes(n ast.Node, depth int) seq {
	if depth > maxExtractDepth {
		return seq{}
	}
	switch v := n.(type) {
	case *ast.Literal:
		return e.literalSeq(v.Value)
	case *ast.CharLiteral:
		return e.literalSeq(string(v.Codepoint))
	case *ast.Sequence:
		return e.suffixesConcat(v.Children, depth)
	case *ast.Alternation:
		return e.unionBranches(v.Branches, depth, e.suffixes)
	case *ast.Group:
		if v.Kind == ast.GroupLookaheadPositive || v.Kind == ast.GroupLookaheadNegative ||
			v.Kind == ast.GroupLookbehindPos || v.Kind == ast.GroupLookbehindNeg {
			return seq{}
		}
		return e.suffixes(v.Child, depth+1)
	case *ast.CharClass, *ast.CharType, *ast.POSIXClass, *ast.UnicodeProperty, *ast.Dot:
		return e.expandClass(v)
	default:
		return seq{}
	}
}

func (e *extractor) suffixesConcat(children []ast.Node, depth int) seq {
	last := len(children) - 1
	for last >= 0 {
		if _, ok := children[last].(*ast.Anchor); ok {
			last--
			continue
		}
		break
	}
	if last < 0 {
		return seq{}
	}

	acc := e.suffixes(children[last], depth+1)
	if acc.isEmpty() {
		return seq{}
	}
	for i := last - 1; i >= 0; i-- {
		lit, ok := children[i].(*ast.Literal)
		if !ok {
			return acc.markIncomplete()
		}
		acc = e.literalSeq(lit.Value).crossBackward(acc)
		acc = acc.truncateKeepingSuffix(e.opts.MaxLiteralLen)
		if acc.len() > e.opts.MaxLiterals {
			return acc
		}
	}
	return acc
}

func (e *extractor) unionBranches(branches []ast.Node, depth int, walk func(ast.Node, int) seq) seq {
	var all []candidate
	for _, b := range branches {
		s := walk(b, depth+1)
		if s.isEmpty() {
			return seq{}
		}
		all = append(all, s.items...)
		if len(all) > e.opts.MaxLiterals {
			return seq{}
		}
	}
	return newSeq(all...)
}

func (e *extractor) literalSeq(s string) seq {
	if len(s) > e.opts.MaxLiteralLen {
		s = s[:e.opts.MaxLiteralLen]
		return newSeq(candidate{bytes: s, complete: false})
	}
	return newSeq(candidate{bytes: s, complete: true})
}

// expandClass expands a bounded-size class/char-type/dot node into its
// individual codepoints, the same tradeoff as coregx-coregex's
// expandCharClass: small classes become an exact union, large ones
// contribute nothing rather than exploding the candidate set.
func (e *extractor) expandClass(n ast.Node) seq {
	runes := classRunes(n, e.opts.MaxClassSize)
	if len(runes) == 0 {
		return seq{}
	}
	items := make([]candidate, 0, len(runes))
	for _, r := range runes {
		items = append(items, candidate{bytes: string(r), complete: true})
		if len(items) >= e.opts.MaxLiterals {
			break
		}
	}
	return newSeq(items...)
}

// classRunes resolves the exact codepoints a leaf class/dot/char-type node
// matches by compiling it in isolation and reading back the compiled
// range transitions — the same trick internal/redos uses for first-set
// computation, reused here instead of a second hand-rolled Unicode table
// walk. Returns nil if the class is empty or larger than max.
func classRunes(n ast.Node, max int) []rune {
	nf, err := nfa.Compile(ast.NewRegex("", '/', "", n, ast.Span{}))
	if err != nil {
		return nil
	}
	var runes []rune
	seen := map[nfa.StateID]bool{}
	var walk func(id nfa.StateID)
	walk = func(id nfa.StateID) {
		if id == nfa.InvalidState || seen[id] {
			return
		}
		seen[id] = true
		st := nf.State(id)
		switch st.Kind {
		case nfa.KindSplit:
			walk(st.Left)
			walk(st.Right)
		case nfa.KindRange:
			for r := st.Lo; r <= st.Hi; r++ {
				runes = append(runes, r)
				if len(runes) > max {
					return
				}
			}
		}
	}
	walk(nf.Start)
	if len(runes) > max {
		return nil
	}
	return runes
}
