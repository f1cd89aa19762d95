package nfa_test

import (
	"testing"

	"github.com/0x4d5352/regexcore/internal/ast"
	"github.com/0x4d5352/regexcore/internal/nfa"
	"github.com/0x4d5352/regexcore/internal/parser"
	"github.com/0x4d5352/regexcore/internal/pattern"
)

func compileSrc(t *testing.T, src string) *nfa.NFA {
	t.Helper()
	regex, _, err := parser.Parse(src, pattern.PCRE2)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	n, err := nfa.Compile(regex)
	if err != nil {
		t.Fatalf("compile %q: %v", src, err)
	}
	return n
}

func TestCompileLiteralHasOneAcceptPath(t *testing.T) {
	n := compileSrc(t, "/abc/")
	s := n.State(n.Start)
	if s == nil || s.Kind != nfa.KindRange || s.Lo != 'a' || s.Hi != 'a' {
		t.Fatalf("expected start state to consume 'a', got %+v", s)
	}
}

func TestCompileAlternationProducesSplit(t *testing.T) {
	n := compileSrc(t, "/a|b|c/")
	s := n.State(n.Start)
	if s == nil || s.Kind != nfa.KindSplit {
		t.Fatalf("expected a split at start, got %+v", s)
	}
}

func TestCompileStarLoopsBack(t *testing.T) {
	n := compileSrc(t, "/a*/")
	s := n.State(n.Start)
	if s == nil || s.Kind != nfa.KindSplit {
		t.Fatalf("expected split at start for a*, got %+v", s)
	}
}

func TestCompilePlusRequiresOneCopy(t *testing.T) {
	n := compileSrc(t, "/a+/")
	s := n.State(n.Start)
	if s == nil || s.Kind != nfa.KindRange {
		t.Fatalf("a+ should require consuming 'a' before any split, got %+v", s)
	}
}

func TestCompileBoundedRepetitionUnrolls(t *testing.T) {
	n := compileSrc(t, "/a{2,3}/")
	// two mandatory copies then one optional: first two states along the
	// only path should both consume 'a'.
	first := n.State(n.Start)
	if first == nil || first.Kind != nfa.KindRange {
		t.Fatalf("expected mandatory literal at start, got %+v", first)
	}
	second := n.State(first.Out)
	if second == nil || second.Kind != nfa.KindRange {
		t.Fatalf("expected second mandatory literal, got %+v", second)
	}
}

func TestCompileDotExcludesNewlineByDefault(t *testing.T) {
	n := compileSrc(t, "/./")
	s := n.State(n.Start)
	if s == nil || s.Kind != nfa.KindSplit {
		t.Fatalf("dot without dotall should compile to a split over the complement of \\n, got %+v", s)
	}
}

func TestCompileCharClassRange(t *testing.T) {
	n := compileSrc(t, "/[a-z]/")
	s := n.State(n.Start)
	if s == nil || s.Kind != nfa.KindRange || s.Lo != 'a' || s.Hi != 'z' {
		t.Fatalf("expected single range a-z, got %+v", s)
	}
}

func TestCompileNegatedCharClassSplits(t *testing.T) {
	n := compileSrc(t, "/[^a-z]/")
	s := n.State(n.Start)
	if s == nil || (s.Kind != nfa.KindSplit && s.Kind != nfa.KindRange) {
		t.Fatalf("expected negated class to compile to ranges or splits, got %+v", s)
	}
}

func TestCompileAnchorStartOfLine(t *testing.T) {
	n := compileSrc(t, "/^a/")
	s := n.State(n.Start)
	if s == nil || s.Kind != nfa.KindAnchor || s.Anchor != nfa.AnchorStartOfLine {
		t.Fatalf("expected ^ to compile to an AnchorStartOfLine state, got %+v", s)
	}
}

func TestCompileBackslashKResetIsNoOp(t *testing.T) {
	regex, _, err := parser.Parse(`/a\Kb/`, pattern.PCRE2)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	n, err := nfa.Compile(regex)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if n.Start == nfa.InvalidState {
		t.Fatalf("expected a valid start state")
	}
}

func TestCompileRejectsUnsupportedBackreference(t *testing.T) {
	body := ast.NewBackreference(1, "", true, ast.Span{})
	regex := ast.NewRegex("/\\1/", '/', "", body, ast.Span{})
	if _, err := nfa.Compile(regex); err == nil {
		t.Fatalf("expected an error compiling a backreference node to an NFA")
	}
}
