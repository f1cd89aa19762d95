package literal

import "github.com/coregx/ahocorasick"

// Scanner performs multi-literal scanning over a LiteralSet's samples, the
// same "literal engine bypass" collaborator coregx-coregex wires in for
// alternations with many branches. It is a standalone helper: nothing else
// in this module (neither LiteralSet sampling nor the ReDoS analyzer) calls
// it.
type Scanner struct {
	auto     *ahocorasick.Automaton
	patterns []string
}

// NewScanner builds a Scanner over patterns. A nil Scanner is returned if
// patterns is empty or the automaton fails to build (e.g. a degenerate
// empty pattern) — callers treat a nil Scanner as "no literal collaborator
// available" and fall back to running the full engine unconditionally.
func NewScanner(patterns []string) *Scanner {
	if len(patterns) == 0 {
		return nil
	}
	b := ahocorasick.NewBuilder()
	for _, p := range patterns {
		if p == "" {
			continue
		}
		b.AddPattern([]byte(p))
	}
	auto, err := b.Build()
	if err != nil {
		return nil
	}
	return &Scanner{auto: auto, patterns: patterns}
}

// ContainsAny reports whether haystack contains any of the scanner's
// literals. A nil Scanner always reports true (no prefilter to reject
// with, so the caller must fall through to the full check).
func (s *Scanner) ContainsAny(haystack string) bool {
	if s == nil {
		return true
	}
	return s.auto.IsMatch([]byte(haystack))
}

// FindFirst returns the span of the first literal match at or after at, or
// ok=false if none is found (or the Scanner is nil).
func (s *Scanner) FindFirst(haystack string, at int) (start, end int, ok bool) {
	if s == nil {
		return 0, 0, false
	}
	m := s.auto.Find([]byte(haystack), at)
	if m == nil {
		return 0, 0, false
	}
	return m.Start, m.End, true
}

// PrefixScanner builds a Scanner over a LiteralSet's prefix samples, for
// callers that only care about start-of-match literal material.
func PrefixScanner(set LiteralSet) *Scanner { return NewScanner(set.Prefixes) }
