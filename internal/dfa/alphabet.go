// Package dfa implements the DfaBuilder (C7) and Minimizer (C8): subset
// construction over an nfa.NFA with configurable alphabet partitioning,
// plus Hopcroft/Moore minimization of the resulting DFA.
package dfa

import (
	"sort"

	"github.com/0x4d5352/regexcore/internal/nfa"
)

// class is one partition member: a maximal codepoint interval over which
// every NFA range transition agrees (either fully contains it or is
// disjoint from it).
type class struct {
	lo, hi rune
}

// representative returns the deterministic tie-break character for
// witness construction (spec.md §4.9): the minimum codepoint in the class.
func (c class) representative() rune { return c.lo }

// buildAlphabet computes the partition induced by the union of every
// Range state's [Lo,Hi] in the NFA, via a sweep line over interval
// endpoints (spec.md §4.7).
func buildAlphabet(n *nfa.NFA) []class {
	var bounds []rune
	seen := make(map[rune]bool)
	add := func(r rune) {
		if !seen[r] {
			seen[r] = true
			bounds = append(bounds, r)
		}
	}
	add(0)
	for _, s := range n.States {
		if s.Kind != nfa.KindRange || s.Lo > s.Hi {
			continue
		}
		add(s.Lo)
		if s.Hi < nfa.MaxCodepoint {
			add(s.Hi + 1)
		}
	}
	if len(bounds) == 0 {
		return []class{{0, nfa.MaxCodepoint}}
	}
	sort.Slice(bounds, func(i, j int) bool { return bounds[i] < bounds[j] })

	classes := make([]class, 0, len(bounds))
	for i, b := range bounds {
		hi := rune(nfa.MaxCodepoint)
		if i+1 < len(bounds) {
			hi = bounds[i+1] - 1
		}
		if b <= hi {
			classes = append(classes, class{b, hi})
		}
	}
	return classes
}

