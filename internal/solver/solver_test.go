package solver_test

import (
	"context"
	"testing"

	"github.com/0x4d5352/regexcore/internal/dfa"
	"github.com/0x4d5352/regexcore/internal/nfa"
	"github.com/0x4d5352/regexcore/internal/parser"
	"github.com/0x4d5352/regexcore/internal/pattern"
	"github.com/0x4d5352/regexcore/internal/solver"
)

func buildDFA(t *testing.T, src string) *dfa.DFA {
	t.Helper()
	regex, _, err := parser.Parse(src, pattern.PCRE2)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	n, err := nfa.Compile(regex)
	if err != nil {
		t.Fatalf("compile %q: %v", src, err)
	}
	d, err := dfa.Build(n, dfa.Options{MatchMode: dfa.Full})
	if err != nil {
		t.Fatalf("build %q: %v", src, err)
	}
	return d
}

func TestIntersectionEmptyDisjointPatterns(t *testing.T) {
	a := buildDFA(t, "/cat/")
	b := buildDFA(t, "/dog/")
	res, err := solver.IntersectionEmpty(context.Background(), a, b, solver.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Empty {
		t.Fatalf("expected disjoint patterns to have empty intersection, got example %q", res.Example)
	}
}

func TestIntersectionEmptyOverlappingPatternsProduceValidWitness(t *testing.T) {
	a := buildDFA(t, "/a(b|c)/")
	b := buildDFA(t, "/ab|ad/")
	res, err := solver.IntersectionEmpty(context.Background(), a, b, solver.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Empty {
		t.Fatalf("expected a non-empty intersection (both accept \"ab\")")
	}
	if !acceptsString(a, res.Example) || !acceptsString(b, res.Example) {
		t.Fatalf("witness %q must be accepted by both DFAs", res.Example)
	}
}

func TestSubsetOfTrue(t *testing.T) {
	a := buildDFA(t, "/a+/")
	b := buildDFA(t, "/a*/")
	res, err := solver.SubsetOf(context.Background(), a, b, solver.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsSubset {
		t.Fatalf("expected L(a+) subset L(a*), got counterexample %q", res.CounterExample)
	}
}

func TestSubsetOfFalseProducesCounterExample(t *testing.T) {
	a := buildDFA(t, "/a*/")
	b := buildDFA(t, "/a+/")
	res, err := solver.SubsetOf(context.Background(), a, b, solver.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsSubset {
		t.Fatalf("expected L(a*) not subset L(a+) (empty string distinguishes them)")
	}
	if acceptsString(b, res.CounterExample) {
		t.Fatalf("counterexample %q should not be accepted by b", res.CounterExample)
	}
	if !acceptsString(a, res.CounterExample) {
		t.Fatalf("counterexample %q should be accepted by a", res.CounterExample)
	}
}

func TestEquivalentTrue(t *testing.T) {
	a := buildDFA(t, "/^a+$/")
	b := buildDFA(t, "/^aa*$/")
	res, err := solver.Equivalent(context.Background(), a, b, solver.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsEquivalent {
		t.Fatalf("expected a+ and aa* to be equivalent, got left=%q right=%q", res.LeftOnlyExample, res.RightOnlyExample)
	}
}

func TestEquivalentFalseSymmetric(t *testing.T) {
	a := buildDFA(t, "/a+/")
	b := buildDFA(t, "/a*/")
	ab, err := solver.Equivalent(context.Background(), a, b, solver.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ba, err := solver.Equivalent(context.Background(), b, a, solver.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ab.IsEquivalent != ba.IsEquivalent {
		t.Fatalf("equivalent(A,B) must equal equivalent(B,A)")
	}
	if ab.IsEquivalent {
		t.Fatalf("a+ and a* should not be equivalent")
	}
}

func acceptsString(d *dfa.DFA, s string) bool {
	cur := d.Start
	for _, r := range s {
		ci := d.ClassOf(r)
		if ci < 0 {
			return false
		}
		cur = d.Trans[cur][ci]
	}
	return d.Accepting[cur]
}
