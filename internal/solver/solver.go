// Package solver implements the LanguageSolver (C9): emptiness-of-
// intersection, subset, and equivalence decisions over two DFAs, with
// deterministic shortest-witness reconstruction (spec.md §4.9).
package solver

import (
	"context"
	"sort"

	"github.com/gammazero/deque"

	"github.com/0x4d5352/regexcore/internal/dfa"
	"github.com/0x4d5352/regexcore/internal/errs"
)

// Options configures a solver operation. Deadline checks happen every
// deadlineCheckInterval product states explored; ctx cancellation is the primary
// mechanism, matching spec.md §5's "each operation accepts a deadline".
type Options struct {
	// MaxProductStates bounds the product-automaton BFS; 0 means
	// DefaultMaxProductStates.
	MaxProductStates int
}

// DefaultMaxProductStates guards against the O(|A|*|B|) product blowing up
// on pathological inputs.
const DefaultMaxProductStates = 200_000

const deadlineCheckInterval = 4096

// IntersectionResult is the outcome of IntersectionEmpty.
type IntersectionResult struct {
	Empty   bool
	Example string // empty when Empty is true
}

// SubsetResult is the outcome of SubsetOf.
type SubsetResult struct {
	IsSubset       bool
	CounterExample string // a string accepted by A but not B; empty when IsSubset
}

// EquivalenceResult is the outcome of Equivalent.
type EquivalenceResult struct {
	IsEquivalent     bool
	LeftOnlyExample  string // accepted by A, rejected by B
	RightOnlyExample string // accepted by B, rejected by A
}

type pstate struct{ a, b int }

type edge struct {
	from pstate
	r    rune
}

// IntersectionEmpty computes the product DFA of a and b and BFS-searches
// from (a.Start, b.Start) for a jointly accepting state. An empty result
// carries no example; a non-empty one carries the minimal witness string,
// built by taking the smallest codepoint in each traversed edge's class.
func IntersectionEmpty(ctx context.Context, a, b *dfa.DFA, opts Options) (IntersectionResult, error) {
	limit := opts.MaxProductStates
	if limit <= 0 {
		limit = DefaultMaxProductStates
	}

	reps := mergedAlphabet(a, b)
	start := pstate{a.Start, b.Start}

	visited := map[pstate]bool{start: true}
	via := map[pstate]edge{}

	var q deque.Deque[pstate]
	q.PushBack(start)

	explored := 0
	for q.Len() > 0 {
		explored++
		if explored%deadlineCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return IntersectionResult{}, errs.Deadline("", "solver.deadline_exceeded", "intersectionEmpty exceeded its deadline")
			}
		}
		if explored > limit {
			return IntersectionResult{}, errs.Deadline("", "solver.product_state_limit", "intersectionEmpty exceeded its product state budget")
		}

		cur := q.PopFront()
		if a.Accepting[cur.a] && b.Accepting[cur.b] {
			return IntersectionResult{Empty: false, Example: reconstruct(cur, via)}, nil
		}

		for _, r := range reps {
			ca, cb := a.ClassOf(r), b.ClassOf(r)
			if ca < 0 || cb < 0 {
				continue
			}
			next := pstate{a.Trans[cur.a][ca], b.Trans[cur.b][cb]}
			if !visited[next] {
				visited[next] = true
				via[next] = edge{cur, r}
				q.PushBack(next)
			}
		}
	}
	return IntersectionResult{Empty: true}, nil
}

func reconstruct(target pstate, via map[pstate]edge) string {
	var runes []rune
	cur := target
	for {
		e, ok := via[cur]
		if !ok {
			break
		}
		runes = append(runes, e.r)
		cur = e.from
	}
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// mergedAlphabet returns the sorted union of both DFAs' class
// representative runes. Every cell of the common refinement of a's and
// b's partitions begins at one of these representatives, so stepping the
// product automaton on exactly these runes is sufficient to explore every
// distinct behavior (see DESIGN.md).
func mergedAlphabet(a, b *dfa.DFA) []rune {
	seen := map[rune]bool{}
	for i := 0; i < len(a.Classes); i++ {
		seen[a.RepresentativeRune(i)] = true
	}
	for i := 0; i < len(b.Classes); i++ {
		seen[b.RepresentativeRune(i)] = true
	}
	out := make([]rune, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// complement returns a DFA recognizing the complement language of d
// (legal only because subset construction always yields a total DFA).
func complement(d *dfa.DFA) *dfa.DFA {
	accepting := make([]bool, len(d.Accepting))
	for i, acc := range d.Accepting {
		accepting[i] = !acc
	}
	return &dfa.DFA{
		Classes:   d.Classes,
		Trans:     d.Trans,
		Accepting: accepting,
		Start:     d.Start,
		Anchored:  d.Anchored,
	}
}

// SubsetOf reports whether a's language is a subset of b's, via
// intersectionEmpty(a, complement(b)).
func SubsetOf(ctx context.Context, a, b *dfa.DFA, opts Options) (SubsetResult, error) {
	res, err := IntersectionEmpty(ctx, a, complement(b), opts)
	if err != nil {
		return SubsetResult{}, err
	}
	return SubsetResult{IsSubset: res.Empty, CounterExample: res.Example}, nil
}

// Equivalent reports whether a and b recognize the same language, via two
// subset checks in opposite directions (spec.md §4.9).
func Equivalent(ctx context.Context, a, b *dfa.DFA, opts Options) (EquivalenceResult, error) {
	aSubB, err := SubsetOf(ctx, a, b, opts)
	if err != nil {
		return EquivalenceResult{}, err
	}
	bSubA, err := SubsetOf(ctx, b, a, opts)
	if err != nil {
		return EquivalenceResult{}, err
	}
	return EquivalenceResult{
		IsEquivalent:     aSubB.IsSubset && bSubA.IsSubset,
		LeftOnlyExample:  aSubB.CounterExample,
		RightOnlyExample: bSubA.CounterExample,
	}, nil
}
