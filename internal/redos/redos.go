// Package redos implements the ReDoSAnalyzer (C11): static detection of
// ambiguity-induced exponential/polynomial blowup patterns over the AST,
// with an optional empirical confirmation hook (spec.md §4.11).
package redos

import (
	"time"

	"github.com/0x4d5352/regexcore/internal/ast"
)

// Severity is monotonic non-decreasing as findings accumulate; Unknown
// ranks above Critical because it means the analyzer could not reach a
// confident verdict (a non-regular construct was in the walk path), which
// is treated conservatively rather than as "safe".
type Severity int

const (
	SeveritySafe Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
	SeverityUnknown
)

func (s Severity) String() string {
	switch s {
	case SeveritySafe:
		return "safe"
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Category classifies the mechanism behind a finding.
type Category string

const (
	CategoryExponential          Category = "exponential"
	CategoryPolynomial           Category = "polynomial"
	CategoryPossessiveMitigable  Category = "possessive-mitigable"
	CategoryAnchorBoundMitigable Category = "anchor-bound-mitigable"
)

// Finding is one culprit site.
type Finding struct {
	Category   Category
	Span       ast.Span
	Message    string
	Suggestion string // optional rewrite hint; empty when none applies
	Weight     int
}

// ConfirmFunc drives the pattern through a host runtime matcher against a
// pump string and reports how long the match attempt took (or ctx
// deadline semantics are the caller's responsibility via timeout).
type ConfirmFunc func(pump string, timeout time.Duration) (time.Duration, error)

// Options configures one analysis pass.
type Options struct {
	// RepeaterThreshold is the largest Max-Min span a bounded Quantifier may
	// have without being considered a "repeater" candidate for ambiguity
	// analysis; unbounded quantifiers are always repeaters. 0 means
	// DefaultRepeaterThreshold.
	RepeaterThreshold int
	// Confirm, if non-nil, is invoked for empirical confirmation once a
	// theoretical finding reaches ConfirmAt or above.
	Confirm   ConfirmFunc
	ConfirmAt Severity
	// ConfirmTimeout bounds each Confirm call; the empirical pass gives up
	// and leaves the theoretical verdict standing if it is exceeded.
	ConfirmTimeout time.Duration
}

// DefaultRepeaterThreshold matches spec.md §4.11's "configurable small
// bound": bounded quantifiers whose Max-Min span is at or below this are not
// flagged even if their body is ambiguous, since backtracking cost stays
// linear in practice.
const DefaultRepeaterThreshold = 2

// Evidence records one empirical confirmation attempt.
type Evidence struct {
	PumpLength int
	Took       time.Duration
}

// Report is the outcome of Analyze.
type Report struct {
	Severity  Severity
	Score     int
	Findings  []Finding
	Confirmed bool
	Evidence  []Evidence
	Note      string // e.g. "confirmation timed out, theoretical verdict stands"
}

// Analyze walks regex's body looking for repeater nodes whose bodies
// admit ambiguous accepting paths, scores the findings, and optionally
// runs empirical confirmation.
func Analyze(regex *ast.Regex, opts Options) Report {
	threshold := opts.RepeaterThreshold
	if threshold <= 0 {
		threshold = DefaultRepeaterThreshold
	}

	w := &walker{threshold: threshold}
	w.walk(regex.Body, nil)

	report := Report{Findings: w.findings}
	for _, f := range w.findings {
		report.Score += f.Weight
	}
	report.Severity = severityFor(report.Score, w.unknown)

	if opts.Confirm != nil && report.Severity >= opts.ConfirmAt && len(w.pumpRunes) > 0 {
		confirmEmpirically(&report, w.pumpRunes, opts)
	}
	return report
}

func severityFor(score int, unknown bool) Severity {
	if unknown {
		return SeverityUnknown
	}
	switch {
	case score <= 0:
		return SeveritySafe
	case score < 10:
		return SeverityLow
	case score < 25:
		return SeverityMedium
	case score < 40:
		return SeverityHigh
	default:
		return SeverityCritical
	}
}

func confirmEmpirically(report *Report, pumpRunes []rune, opts Options) {
	lengths := []int{10, 100, 1000}
	var prev time.Duration
	for i, n := range lengths {
		pump := buildPump(pumpRunes, n)
		took, err := opts.Confirm(pump, opts.ConfirmTimeout)
		if err != nil {
			report.Note = "confirmation timed out, theoretical verdict stands"
			return
		}
		report.Evidence = append(report.Evidence, Evidence{PumpLength: n, Took: took})
		if i > 0 && prev > 0 {
			ratio := float64(took) / float64(prev)
			// growth ratio well beyond the 10x input-length increase between
			// successive samples indicates super-linear (likely exponential
			// or high-degree polynomial) backtracking cost.
			if ratio > 20 {
				report.Confirmed = true
			}
		}
		prev = took
	}
}

func buildPump(runes []rune, n int) string {
	out := make([]rune, 0, n+1)
	for len(out) < n {
		out = append(out, runes...)
	}
	out = out[:n]
	out = append(out, '\x00') // forces a failing match, the classic ReDoS trigger shape
	return string(out)
}

// walker performs the depth-first, left-to-right AST traversal spec.md
// §5 requires, tracking ambiguity locally at each Quantifier it visits.
type walker struct {
	threshold int
	findings  []Finding
	unknown   bool
	pumpRunes []rune
}

func (w *walker) walk(n ast.Node, followingFirst *firstSet) {
	switch node := n.(type) {
	case nil:
		return
	case *ast.Sequence:
		for i, child := range node.Children {
			var next *firstSet
			if i+1 < len(node.Children) {
				fs := computeFirstSet(node.Children[i+1])
				next = &fs
			} else {
				next = followingFirst
			}
			w.walk(child, next)
		}
	case *ast.Alternation:
		for _, b := range node.Branches {
			w.walk(b, followingFirst)
		}
	case *ast.Group:
		w.walk(node.Child, followingFirst)
	case *ast.Define:
		w.walk(node.Child, followingFirst)
	case *ast.Conditional:
		w.walk(node.Then, followingFirst)
		w.walk(node.Else, followingFirst)
	case *ast.Quantifier:
		w.examineQuantifier(node, followingFirst)
		w.walk(node.Child, followingFirst)
	case *ast.RecursiveRef, *ast.Backreference:
		w.unknown = true
	}
}

func (w *walker) examineQuantifier(q *ast.Quantifier, followingFirst *firstSet) {
	isRepeater := q.Max == ast.Infinite || q.Max-q.Min > w.threshold
	if !isRepeater {
		return
	}

	body := unwrapGroup(q.Child)
	bodyFirst := computeFirstSet(body)
	if len(w.pumpRunes) == 0 {
		if r, ok := bodyFirst.sampleRune(); ok {
			w.pumpRunes = []rune{r}
		}
	}

	if inner, ok := body.(*ast.Quantifier); ok {
		innerUnbounded := inner.Max == ast.Infinite || inner.Max-inner.Min > w.threshold
		if innerUnbounded {
			w.findings = append(w.findings, Finding{
				Category:   CategoryExponential,
				Span:       q.Span(),
				Message:    "nested unbounded repetition can backtrack exponentially",
				Suggestion: "wrap the inner repetition in an atomic group or make it possessive",
				Weight:     40,
			})
			return
		}
	}

	if alt, ok := body.(*ast.Alternation); ok && branchesOverlap(alt.Branches) {
		w.findings = append(w.findings, Finding{
			Category:   CategoryExponential,
			Span:       q.Span(),
			Message:    "repeated alternation has overlapping branches, admitting multiple accepting paths per input prefix",
			Suggestion: "make the alternation's branches mutually exclusive, or possessivize the repetition",
			Weight:     35,
		})
		return
	}

	if followingFirst != nil && followingFirst.overlaps(bodyFirst) {
		if anchoredNeighbor(followingFirst) {
			w.findings = append(w.findings, Finding{
				Category: CategoryAnchorBoundMitigable,
				Span:     q.Span(),
				Message:  "repetition overlaps what follows it, but a nearby anchor bounds the search space",
				Weight:   5,
			})
			return
		}
		w.findings = append(w.findings, Finding{
			Category:   CategoryPolynomial,
			Span:       q.Span(),
			Message:    "repetition's body overlaps the character(s) that follow it, causing quadratic-or-worse backtracking on failed matches",
			Suggestion: "possessivize this repetition or wrap it in an atomic group",
			Weight:     15,
		})
		return
	}

	if selfOverlapsWithoutExternalAmbiguity(body) {
		w.findings = append(w.findings, Finding{
			Category:   CategoryPossessiveMitigable,
			Span:       q.Span(),
			Message:    "repetition's body can match the same input in more than one way",
			Suggestion: "rewrite as a possessive quantifier or atomic group",
			Weight:     10,
		})
	}
}

func unwrapGroup(n ast.Node) ast.Node {
	if g, ok := n.(*ast.Group); ok && g.Child != nil {
		switch g.Kind {
		case ast.GroupCapturing, ast.GroupNonCapturing, ast.GroupNamed, ast.GroupAtomic:
			return unwrapGroup(g.Child)
		}
	}
	return n
}

func anchoredNeighbor(fs *firstSet) bool {
	return fs.anchored
}

// selfOverlapsWithoutExternalAmbiguity reports a conservative subset of
// self-ambiguity: an alternation in which two branches have overlapping
// first sets. Any other body is reported as not self-overlapping.
func selfOverlapsWithoutExternalAmbiguity(body ast.Node) bool {
	if alt, ok := body.(*ast.Alternation); ok {
		return branchesOverlap(alt.Branches)
	}
	return false
}

func branchesOverlap(branches []ast.Node) bool {
	if len(branches) < 2 {
		return false
	}
	sets := make([]firstSet, len(branches))
	for i, b := range branches {
		sets[i] = computeFirstSet(b)
	}
	for i := 0; i < len(sets); i++ {
		for j := i + 1; j < len(sets); j++ {
			if sets[i].overlaps(&sets[j]) {
				return true
			}
		}
	}
	return false
}
