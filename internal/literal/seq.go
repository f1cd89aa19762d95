// Package literal extracts bounded prefix/suffix literal sets from a parsed
// pattern (LiteralSet, §4's "bounded prefix/suffix sample"). The extraction
// walks the AST the same way coregx-coregex's literal extractor walks
// regexp/syntax: cross-product accumulation through a Sequence, union
// through an Alternation, conservative bail-out on anything with variable
// width.
package literal

import (
	"sort"

	"github.com/samber/lo"
)

// candidate is one literal string accumulated during extraction. Complete
// mirrors coregx-coregex's Literal.Complete: true means this candidate is
// the entire prefix/suffix requirement, false means extraction had to stop
// early (a wildcard, repetition, or limit was hit) and the bytes are only a
// necessary-but-not-sufficient fragment.
type candidate struct {
	bytes    string
	complete bool
}

// seq is a set of alternative candidates, e.g. from /foo|bar/ → {foo, bar}.
type seq struct {
	items []candidate
}

func newSeq(items ...candidate) seq { return seq{items: items} }

func (s seq) isEmpty() bool { return len(s.items) == 0 }

func (s seq) len() int { return len(s.items) }

// anyIncomplete reports whether the set contains at least one non-complete
// member, in which case the aggregate cannot be treated as a complete match.
func (s seq) anyIncomplete() bool {
	for _, c := range s.items {
		if !c.complete {
			return true
		}
	}
	return false
}

// crossForward computes the cross product of s with other, concatenating
// every pair of byte strings. Used while walking a Sequence left to right.
func (s seq) crossForward(other seq) seq {
	if s.isEmpty() {
		return other
	}
	if other.isEmpty() {
		return s
	}
	out := make([]candidate, 0, len(s.items)*len(other.items))
	for _, a := range s.items {
		for _, b := range other.items {
			out = append(out, candidate{
				bytes:    a.bytes + b.bytes,
				complete: a.complete && b.complete,
			})
		}
	}
	return seq{items: out}
}

// crossBackward is crossForward with operand order reversed, used while
// walking a Sequence right to left for suffix extraction.
func (s seq) crossBackward(other seq) seq {
	return other.crossForward(s)
}

func (s seq) markIncomplete() seq {
	out := make([]candidate, len(s.items))
	for i, c := range s.items {
		out[i] = candidate{bytes: c.bytes, complete: false}
	}
	return seq{items: out}
}

func (s seq) truncate(maxLen int) seq {
	out := make([]candidate, len(s.items))
	for i, c := range s.items {
		if len(c.bytes) > maxLen {
			out[i] = candidate{bytes: c.bytes[:maxLen], complete: false}
			continue
		}
		out[i] = c
	}
	return seq{items: out}
}

func (s seq) truncateKeepingSuffix(maxLen int) seq {
	out := make([]candidate, len(s.items))
	for i, c := range s.items {
		if len(c.bytes) > maxLen {
			out[i] = candidate{bytes: c.bytes[len(c.bytes)-maxLen:], complete: false}
			continue
		}
		out[i] = c
	}
	return seq{items: out}
}

// dedupAndBound removes duplicate byte strings (keeping the weaker,
// non-complete flag if any duplicate disagrees) and caps the set at max
// entries, matching the Extractor's "mark truncated sets inexact" rule.
func (s seq) dedupAndBound(max int) seq {
	byBytes := map[string]bool{}
	for _, c := range s.items {
		if _, ok := byBytes[c.bytes]; !ok {
			byBytes[c.bytes] = c.complete
		} else if !c.complete {
			byBytes[c.bytes] = false
		}
	}
	keys := lo.Keys(byBytes)
	sort.Strings(keys)
	truncated := len(keys) > max
	if truncated {
		keys = keys[:max]
	}
	out := make([]candidate, 0, len(keys))
	for _, k := range keys {
		complete := byBytes[k]
		if truncated {
			complete = false
		}
		out = append(out, candidate{bytes: k, complete: complete})
	}
	return seq{items: out}
}

func (s seq) strings() []string {
	return lo.Map(s.items, func(c candidate, _ int) string { return c.bytes })
}
