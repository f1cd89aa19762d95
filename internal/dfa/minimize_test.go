package dfa_test

import (
	"testing"

	"github.com/0x4d5352/regexcore/internal/dfa"
)

func TestMinimizeHopcroftPreservesLanguage(t *testing.T) {
	d := buildDFA(t, "/a(b|c)*d/", dfa.Options{MatchMode: dfa.Full})
	m := dfa.Minimize(d, dfa.Hopcroft)

	accept := []string{"ad", "abd", "acd", "abcbcd"}
	reject := []string{"a", "d", "abc", "abdd"}
	for _, s := range accept {
		if !run(m, s) {
			t.Errorf("minimized DFA should accept %q", s)
		}
	}
	for _, s := range reject {
		if run(m, s) {
			t.Errorf("minimized DFA should reject %q", s)
		}
	}
}

func TestMinimizeMoorePreservesLanguage(t *testing.T) {
	d := buildDFA(t, "/a(b|c)*d/", dfa.Options{MatchMode: dfa.Full})
	m := dfa.Minimize(d, dfa.Moore)

	accept := []string{"ad", "abd", "acd", "abcbcd"}
	reject := []string{"a", "d", "abc", "abdd"}
	for _, s := range accept {
		if !run(m, s) {
			t.Errorf("minimized DFA should accept %q", s)
		}
	}
	for _, s := range reject {
		if run(m, s) {
			t.Errorf("minimized DFA should reject %q", s)
		}
	}
}

func TestMinimizeNeverGrowsStateCount(t *testing.T) {
	d := buildDFA(t, "/(ab|ac|ad)+/", dfa.Options{MatchMode: dfa.Full})
	m := dfa.Minimize(d, dfa.Hopcroft)
	if len(m.Trans) > len(d.Trans) {
		t.Fatalf("minimized DFA has more states (%d) than the source (%d)", len(m.Trans), len(d.Trans))
	}
}

func TestMinimizeAgreesAcrossAlgorithms(t *testing.T) {
	d := buildDFA(t, "/(a|b)*abb/", dfa.Options{MatchMode: dfa.Full})
	h := dfa.Minimize(d, dfa.Hopcroft)
	mo := dfa.Minimize(d, dfa.Moore)
	if len(h.Trans) != len(mo.Trans) {
		t.Fatalf("hopcroft (%d states) and moore (%d states) should yield the same minimal state count", len(h.Trans), len(mo.Trans))
	}
}
