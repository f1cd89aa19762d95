// Package nfa implements the AstToNfa stage (C6): Thompson construction
// over the already-gated regular subset of the AST, producing a single
// start/accept NFA of codepoint-interval transitions plus epsilon and
// zero-width anchor transitions.
package nfa

import "fmt"

// StateID uniquely identifies an NFA state within one NFA.
type StateID uint32

// InvalidState marks an unset/sentinel state reference.
const InvalidState StateID = 0xFFFFFFFF

// Kind identifies the shape of one state's outgoing transitions.
type Kind uint8

const (
	// KindRange consumes one codepoint in [Lo, Hi] and moves to Out.
	KindRange Kind = iota
	// KindAnchor is a zero-width transition, taken only if the anchor
	// predicate holds at the current position, then moves to Out.
	KindAnchor
	// KindSplit is a zero-width transition to either Left or Right,
	// explored in that priority order (irrelevant to language recognition,
	// preserved only for deterministic witness generation).
	KindSplit
	// KindMatch is an accepting state with no outgoing transitions.
	KindMatch
)

// State is one NFA node. Only the fields relevant to Kind are meaningful.
type State struct {
	Kind        Kind
	Lo, Hi      rune
	Out         StateID
	Left, Right StateID
	Anchor      AnchorKind
}

// AnchorKind enumerates the zero-width predicates an NFA can test.
type AnchorKind uint8

const (
	AnchorStartOfText AnchorKind = iota
	AnchorEndOfText
	AnchorStartOfLine
	AnchorEndOfLine
	AnchorWordBoundary
	AnchorNonWordBoundary
	// AnchorNone makes an Assert state behave as pure epsilon. Compile never
	// emits it; inline-flag directives compile to no state at all.
	AnchorNone
)

// NFA is an immutable compiled automaton: one start state, transitions
// reachable from it, and any number of KindMatch accept states (Thompson
// composition keeps exactly one live accept per compile, but callers that
// build product automata over several NFAs may find more than one).
type NFA struct {
	States []State
	Start  StateID
}

// State safely dereferences id, or returns nil if out of range.
func (n *NFA) State(id StateID) *State {
	if id == InvalidState || int(id) >= len(n.States) {
		return nil
	}
	return &n.States[int(id)]
}

func (n *NFA) String() string {
	return fmt.Sprintf("NFA{states=%d, start=%d}", len(n.States), n.Start)
}

// builder accumulates states for one Compile call.
type builder struct {
	states []State
}

func (b *builder) reserve() StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{})
	return id
}

func (b *builder) set(id StateID, s State) { b.states[int(id)] = s }

func (b *builder) addMatch() StateID {
	return b.add(State{Kind: KindMatch})
}

func (b *builder) add(s State) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, s)
	return id
}

func (b *builder) addRange(lo, hi rune, out StateID) StateID {
	return b.add(State{Kind: KindRange, Lo: lo, Hi: hi, Out: out})
}

func (b *builder) addAnchor(kind AnchorKind, out StateID) StateID {
	return b.add(State{Kind: KindAnchor, Anchor: kind, Out: out})
}

func (b *builder) addSplit(left, right StateID) StateID {
	return b.add(State{Kind: KindSplit, Left: left, Right: right})
}
