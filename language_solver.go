package regexcore

import (
	"context"

	"github.com/0x4d5352/regexcore/internal/dfa"
	"github.com/0x4d5352/regexcore/internal/nfa"
	"github.com/0x4d5352/regexcore/internal/parser"
	"github.com/0x4d5352/regexcore/internal/regularsubset"
	"github.com/0x4d5352/regexcore/internal/solver"
)

// LanguageSolver is the sibling facade spec.md §4.13 describes: it takes
// a *Facade (for configuration and target version) plus per-operation
// solver.Options, and exposes the emptiness/subset/equivalence decisions
// C9 implements. It builds its own DFAs per call rather than going
// through the Facade's cache, since dfa.DFA holds unexported alphabet
// partition state the cache's CBOR codec cannot round-trip (see
// internal/cache's DESIGN.md note).
type LanguageSolver struct {
	f *Facade
}

// NewLanguageSolver wraps f.
func NewLanguageSolver(f *Facade) *LanguageSolver {
	return &LanguageSolver{f: f}
}

// compile runs a pattern through parse, the regular-subset gate (C10),
// NFA compilation and DFA subset construction, the pipeline every
// solver operation needs before it can touch a DFA.
func (s *LanguageSolver) compile(ctx context.Context, pattern string, mode dfa.MatchMode) (*dfa.DFA, error) {
	regex, _, err := parser.Parse(pattern, s.f.cfg.TargetVersion)
	if err != nil {
		return nil, err
	}
	if err := regularsubset.Check(regex.Pattern, regex.Body, regularsubset.Options{}); err != nil {
		return nil, err
	}
	n, err := nfa.Compile(regex)
	if err != nil {
		return nil, err
	}
	d, err := dfa.Build(n, dfa.Options{MatchMode: mode, StateLimit: s.f.cfg.DFAStateLimit})
	if err != nil {
		return nil, err
	}
	return dfa.Minimize(d, dfa.Hopcroft), nil
}

// IntersectionEmpty decides whether a and b's languages are disjoint
// (spec.md §4.9), building both DFAs under dfa.Full match semantics.
func (s *LanguageSolver) IntersectionEmpty(ctx context.Context, a, b string, opts solver.Options) (solver.IntersectionResult, error) {
	da, err := s.compile(ctx, a, dfa.Full)
	if err != nil {
		return solver.IntersectionResult{}, err
	}
	db, err := s.compile(ctx, b, dfa.Full)
	if err != nil {
		return solver.IntersectionResult{}, err
	}
	return solver.IntersectionEmpty(ctx, da, db, opts)
}

// SubsetOf decides whether a's language is a subset of b's.
func (s *LanguageSolver) SubsetOf(ctx context.Context, a, b string, opts solver.Options) (solver.SubsetResult, error) {
	da, err := s.compile(ctx, a, dfa.Full)
	if err != nil {
		return solver.SubsetResult{}, err
	}
	db, err := s.compile(ctx, b, dfa.Full)
	if err != nil {
		return solver.SubsetResult{}, err
	}
	return solver.SubsetOf(ctx, da, db, opts)
}

// Equivalent decides whether a and b denote the same language.
func (s *LanguageSolver) Equivalent(ctx context.Context, a, b string, opts solver.Options) (solver.EquivalenceResult, error) {
	da, err := s.compile(ctx, a, dfa.Full)
	if err != nil {
		return solver.EquivalenceResult{}, err
	}
	db, err := s.compile(ctx, b, dfa.Full)
	if err != nil {
		return solver.EquivalenceResult{}, err
	}
	return solver.Equivalent(ctx, da, db, opts)
}
