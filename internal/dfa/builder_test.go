package dfa_test

import (
	"testing"

	"github.com/0x4d5352/regexcore/internal/dfa"
	"github.com/0x4d5352/regexcore/internal/nfa"
	"github.com/0x4d5352/regexcore/internal/parser"
	"github.com/0x4d5352/regexcore/internal/pattern"
)

func buildDFA(t *testing.T, src string, opts dfa.Options) *dfa.DFA {
	t.Helper()
	regex, _, err := parser.Parse(src, pattern.PCRE2)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	n, err := nfa.Compile(regex)
	if err != nil {
		t.Fatalf("compile %q: %v", src, err)
	}
	d, err := dfa.Build(n, opts)
	if err != nil {
		t.Fatalf("build %q: %v", src, err)
	}
	return d
}

// run walks s through d starting at d.Start, returning whether it ends in
// an accepting state (TrapState if any rune falls outside the alphabet).
func run(d *dfa.DFA, s string) bool {
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

func TestBuildFullModeAcceptsExactMatch(t *testing.T) {
	d := buildDFA(t, "/abc/", dfa.Options{MatchMode: dfa.Full})
	if !run(d, "abc") {
		t.Fatalf("expected \"abc\" to be accepted")
	}
	if run(d, "abcd") {
		t.Fatalf("FULL mode should reject trailing extra input")
	}
	if run(d, "ab") {
		t.Fatalf("expected partial prefix to be rejected")
	}
}

func TestBuildTrapStateIsSinkAndNonAccepting(t *testing.T) {
	d := buildDFA(t, "/a/", dfa.Options{MatchMode: dfa.Full})
	if d.Accepting[dfa.TrapState] {
		t.Fatalf("trap state must never be accepting")
	}
	for _, target := range d.Trans[dfa.TrapState] {
		if target != dfa.TrapState {
			t.Fatalf("trap state must self-loop on every class, got transition to %d", target)
		}
	}
}

func TestBuildPartialModeAcceptsEmbeddedMatch(t *testing.T) {
	d := buildDFA(t, "/bc/", dfa.Options{MatchMode: dfa.Partial})
	if !run(d, "abcd") {
		t.Fatalf("PARTIAL mode should accept a pattern embedded in a longer string")
	}
}

func TestBuildRespectsStateLimit(t *testing.T) {
	regex, _, err := parser.Parse("/(a|b){0,20}/", pattern.PCRE2)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	n, err := nfa.Compile(regex)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, err := dfa.Build(n, dfa.Options{MatchMode: dfa.Full, StateLimit: 1}); err == nil {
		t.Fatalf("expected a resource-limit error with a StateLimit of 1")
	}
}

func TestBuildAlternationAcceptsEitherBranch(t *testing.T) {
	d := buildDFA(t, "/cat|dog/", dfa.Options{MatchMode: dfa.Full})
	if !run(d, "cat") || !run(d, "dog") {
		t.Fatalf("expected both alternation branches to be accepted")
	}
	if run(d, "cow") {
		t.Fatalf("expected a non-matching string to be rejected")
	}
}
