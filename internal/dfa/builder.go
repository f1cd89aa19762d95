package dfa

import (
	"strconv"

	"github.com/bits-and-blooms/bitset"

	"github.com/0x4d5352/regexcore/internal/errs"
	"github.com/0x4d5352/regexcore/internal/nfa"
)

// MatchMode selects whether the built DFA requires the whole input to
// match (FULL) or admits a match anywhere in the input (PARTIAL), per
// spec.md §4.7.
type MatchMode string

const (
	Full    MatchMode = "full"
	Partial MatchMode = "partial"
)

// Options configures subset construction.
type Options struct {
	MatchMode  MatchMode
	StateLimit int // 0 means DefaultStateLimit
}

// DefaultStateLimit guards against worst-case 2^|NFA states| blowup.
const DefaultStateLimit = 20000

// TrapState is the reserved non-accepting sink every unhandled class
// transitions to, keeping the transition table total.
const TrapState = 0

// DFA is an immutable deterministic automaton over the partitioned
// alphabet classes computed at build time.
type DFA struct {
	Classes   []class
	Trans     [][]int // Trans[state][classIndex] -> state; TrapState for none
	Accepting []bool
	Start     int
	Anchored  bool // the NFA's start reaches its accept only through a start-of-text anchor (\A, \G); ^ compiles to start-of-line and does not count
}

// RepresentativeRune returns the deterministic witness character for
// classIndex (the minimum codepoint in that partition class).
func (d *DFA) RepresentativeRune(classIndex int) rune {
	return d.Classes[classIndex].representative()
}

// ClassOf returns the alphabet class index containing r, or -1.
func (d *DFA) ClassOf(r rune) int {
	lo, hi := 0, len(d.Classes)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		c := d.Classes[mid]
		switch {
		case r < c.lo:
			hi = mid - 1
		case r > c.hi:
			lo = mid + 1
		default:
			return mid
		}
	}
	return -1
}

// Build runs subset construction over n, producing a total DFA.
func Build(n *nfa.NFA, opts Options) (*DFA, error) {
	limit := opts.StateLimit
	if limit <= 0 {
		limit = DefaultStateLimit
	}
	mode := opts.MatchMode
	if mode == "" {
		mode = Full
	}

	effective := n
	if mode == Partial {
		effective = wrapPartial(n)
	}

	classes := buildAlphabet(effective)
	nStates := uint(len(effective.States))

	keyOf := func(bs *bitset.BitSet) string { return bs.DumpAsBits() }

	stateIndex := map[string]int{}
	var sets []*bitset.BitSet
	var accepting []bool
	var trans [][]int

	addState := func(bs *bitset.BitSet) (int, bool) {
		k := keyOf(bs)
		if idx, ok := stateIndex[k]; ok {
			return idx, false
		}
		idx := len(sets)
		stateIndex[k] = idx
		sets = append(sets, bs)
		accepting = append(accepting, containsAccept(effective, bs))
		trans = append(trans, make([]int, len(classes)))
		return idx, true
	}

	// Reserve TrapState 0 with an empty, non-accepting, self-looping state.
	trapBS := bitset.New(nStates)
	trapIdx, _ := addState(trapBS)
	if trapIdx != TrapState {
		return nil, errs.RuntimeCompilation("", "dfa.internal_trap_mismatch", "trap state index invariant violated")
	}
	for i := range classes {
		trans[TrapState][i] = TrapState
	}

	startBS := bitset.New(nStates)
	epsilonClosure(effective, effective.Start, startBS)
	startIdx, isNew := addState(startBS)

	type pending struct {
		idx int
		set *bitset.BitSet
	}
	var queue []pending
	if isNew {
		queue = append(queue, pending{startIdx, startBS})
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for ci, cls := range classes {
			targetBS := bitset.New(nStates)
			moved := false
			for i, e := cur.set.NextSet(0); e; i, e = cur.set.NextSet(i + 1) {
				s := effective.State(nfa.StateID(i))
				if s == nil || s.Kind != nfa.KindRange {
					continue
				}
				if s.Lo <= cls.lo && cls.hi <= s.Hi {
					epsilonClosure(effective, s.Out, targetBS)
					moved = true
				}
			}
			if !moved {
				trans[cur.idx][ci] = TrapState
				continue
			}
			idx, created := addState(targetBS)
			trans[cur.idx][ci] = idx
			if created {
				if len(sets) > limit {
					return nil, errs.ResourceLimit("", len(sets), "dfa.state_limit_exceeded",
						"subset construction exceeded dfa_state_limit ("+strconv.Itoa(limit)+")")
				}
				queue = append(queue, pending{idx, targetBS})
			}
		}
	}

	return &DFA{
		Classes:   classes,
		Trans:     trans,
		Accepting: accepting,
		Start:     startIdx,
		Anchored:  isAnchoredStart(effective),
	}, nil
}

// epsilonClosure adds id and every state reachable from it via Split and
// Anchor transitions (both treated as unconditional epsilon moves — see
// DESIGN.md for the position-predicate simplification this implies) into
// dst.
func epsilonClosure(n *nfa.NFA, id nfa.StateID, dst *bitset.BitSet) {
	if id == nfa.InvalidState || dst.Test(uint(id)) {
		return
	}
	dst.Set(uint(id))
	s := n.State(id)
	if s == nil {
		return
	}
	switch s.Kind {
	case nfa.KindSplit:
		epsilonClosure(n, s.Left, dst)
		epsilonClosure(n, s.Right, dst)
	case nfa.KindAnchor:
		epsilonClosure(n, s.Out, dst)
	}
}

func containsAccept(n *nfa.NFA, bs *bitset.BitSet) bool {
	for i, e := bs.NextSet(0); e; i, e = bs.NextSet(i + 1) {
		if s := n.State(nfa.StateID(i)); s != nil && s.Kind == nfa.KindMatch {
			return true
		}
	}
	return false
}

// isAnchoredStart reports whether every epsilon-only path out of the
// start state passes through an AnchorStartOfText predicate before any
// consuming transition — an approximation used only to annotate the DFA,
// not to change its transition structure (see the epsilonClosure note).
func isAnchoredStart(n *nfa.NFA) bool {
	visited := map[nfa.StateID]bool{}
	var walk func(id nfa.StateID) bool
	walk = func(id nfa.StateID) bool {
		if visited[id] {
			return true
		}
		visited[id] = true
		s := n.State(id)
		if s == nil {
			return true
		}
		switch s.Kind {
		case nfa.KindAnchor:
			if s.Anchor == nfa.AnchorStartOfText {
				return true
			}
			return walk(s.Out)
		case nfa.KindSplit:
			return walk(s.Left) && walk(s.Right)
		default:
			return false
		}
	}
	return walk(n.Start)
}

// wrapPartial builds `.*patternbody.*` semantics for PARTIAL match mode:
// copies the NFA, retargets every transition into the original accept
// state onto a trailing `.*` loop feeding a fresh accept, then prefixes
// the whole thing with a leading `.*` loop.
func wrapPartial(n *nfa.NFA) *nfa.NFA {
	states := append([]nfa.State{}, n.States...)

	oldAccept := nfa.InvalidState
	for i, s := range states {
		if s.Kind == nfa.KindMatch {
			oldAccept = nfa.StateID(i)
			break
		}
	}
	if oldAccept == nfa.InvalidState {
		return n // no accept state: pattern matches nothing, nothing to wrap
	}

	add := func(s nfa.State) nfa.StateID {
		id := nfa.StateID(len(states))
		states = append(states, s)
		return id
	}
	anyLoop := func(out nfa.StateID) nfa.StateID {
		split := add(nfa.State{})
		body := add(nfa.State{Kind: nfa.KindRange, Lo: 0, Hi: nfa.MaxCodepoint, Out: split})
		states[split] = nfa.State{Kind: nfa.KindSplit, Left: body, Right: out}
		return split
	}

	newAccept := add(nfa.State{Kind: nfa.KindMatch})
	suffixLoop := anyLoop(newAccept)

	redirect := func(id nfa.StateID) nfa.StateID {
		if id == oldAccept {
			return suffixLoop
		}
		return id
	}
	for i := range states {
		if nfa.StateID(i) == newAccept || nfa.StateID(i) == suffixLoop {
			continue
		}
		states[i].Out = redirect(states[i].Out)
		states[i].Left = redirect(states[i].Left)
		states[i].Right = redirect(states[i].Right)
	}

	prefixLoop := anyLoop(n.Start)
	return &nfa.NFA{States: states, Start: prefixLoop}
}
