// Package pattern implements the PatternSplitter (C1) and the per-target-
// version flag/feature tables that the validator (C4) and parser (C3) gate
// on. It generalizes the teacher's `internal/flavor` registry — the same
// Register/Get/List shape, but keyed on a regex *dialect version* instead
// of a CLI-facing "flavor" string, since the core never renders output.
package pattern

import "sort"

// Version identifies a PCRE-family dialect and revision.
type Version string

const (
	PCRE1    Version = "pcre1"
	PCRE2    Version = "pcre2"
	ECMA     Version = "ecma"
	DotNet   Version = "dotnet"
	Java     Version = "java"
	POSIXBRE Version = "posix-bre"
	POSIXERE Version = "posix-ere"
)

// FlagInfo describes one pattern flag letter.
type FlagInfo struct {
	Char        rune
	Name        string
	Description string
}

// FeatureSet mirrors the teacher's flavor.FeatureSet, generalized across
// target versions instead of CLI flavors.
type FeatureSet struct {
	Lookahead             bool
	Lookbehind            bool
	LookbehindUnlimited   bool
	NamedGroups           bool
	AtomicGroups          bool
	PossessiveQuantifiers bool
	RecursivePatterns     bool
	ConditionalPatterns   bool
	UnicodeProperties     bool
	POSIXClasses          bool
	BalancedGroups        bool
	InlineModifiers       bool
	Comments              bool
	BranchReset           bool
	BacktrackingControl   bool
	ClassAlgebra          bool // PCRE2 class operations: &&, --, ~~
}

// Table describes one target version: its legal flags and feature gates.
type Table struct {
	version     Version
	description string
	flags       []FlagInfo
	features    FeatureSet
	maxLookbehindDefault int
}

func (t *Table) Version() Version        { return t.version }
func (t *Table) Description() string     { return t.description }
func (t *Table) SupportedFlags() []FlagInfo { return t.flags }
func (t *Table) Features() FeatureSet    { return t.features }

// SupportsFlag reports whether c is a legal flag letter for this version.
func (t *Table) SupportsFlag(c rune) bool {
	for _, f := range t.flags {
		if f.Char == c {
			return true
		}
	}
	return false
}

var registry = make(map[Version]*Table)

func register(t *Table) { registry[t.version] = t }

// Get retrieves a version's table.
func Get(v Version) (*Table, bool) {
	t, ok := registry[v]
	return t, ok
}

// List returns all registered versions in sorted order.
func List() []Version {
	out := make([]Version, 0, len(registry))
	for v := range registry {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func init() {
	register(&Table{
		version:     PCRE1,
		description: "PCRE1 (libpcre 8.x) — legacy Perl-compatible regular expressions",
		flags: []FlagInfo{
			{'i', "caseless", "Case-insensitive matching"},
			{'m', "multiline", "^ and $ match at line breaks"},
			{'s', "dotall", ". matches newlines"},
			{'x', "extended", "Ignore whitespace and allow comments"},
			{'e', "eval", "Pattern-replacement-evaluation (removed in PCRE2)"},
		},
		features: FeatureSet{
			Lookahead: true, Lookbehind: true, LookbehindUnlimited: false,
			NamedGroups: true, AtomicGroups: true, PossessiveQuantifiers: true,
			RecursivePatterns: true, ConditionalPatterns: true,
			UnicodeProperties: true, POSIXClasses: true, InlineModifiers: true,
			Comments: true, BranchReset: true, BacktrackingControl: true,
		},
		maxLookbehindDefault: 255,
	})

	register(&Table{
		version:     PCRE2,
		description: "PCRE2 — current Perl-compatible regular expressions",
		flags: []FlagInfo{
			{'i', "caseless", "Case-insensitive matching"},
			{'m', "multiline", "^ and $ match at line breaks"},
			{'s', "dotall", ". matches newlines"},
			{'x', "extended", "Ignore whitespace and allow comments"},
			{'u', "unicode", "Unicode character properties for \\d \\w \\s etc."},
			{'U', "ungreedy", "Invert greediness of quantifiers"},
			{'D', "dollar_endonly", "$ matches only at the very end"},
			{'A', "anchored", "Pattern is implicitly anchored"},
			{'J', "dupnames", "Allow duplicate named groups"},
			{'X', "extra", "Strict PCRE2 extra compatibility checks"},
			{'r', "return_substring", "Return-substring mode (introduced in PCRE2)"},
		},
		features: FeatureSet{
			Lookahead: true, Lookbehind: true, LookbehindUnlimited: false,
			NamedGroups: true, AtomicGroups: true, PossessiveQuantifiers: true,
			RecursivePatterns: true, ConditionalPatterns: true,
			UnicodeProperties: true, POSIXClasses: true, InlineModifiers: true,
			Comments: true, BranchReset: true, BacktrackingControl: true,
			ClassAlgebra: true,
		},
		maxLookbehindDefault: 255,
	})

	register(&Table{
		version:     ECMA,
		description: "ECMAScript (JavaScript) regular expressions",
		flags: []FlagInfo{
			{'i', "ignoreCase", "Case-insensitive matching"},
			{'m', "multiline", "^ and $ match at line breaks"},
			{'s', "dotAll", ". matches newlines"},
			{'u', "unicode", "Treat pattern as a sequence of Unicode code points"},
		},
		features: FeatureSet{
			Lookahead: true, Lookbehind: true, LookbehindUnlimited: true,
			NamedGroups: true, AtomicGroups: false, PossessiveQuantifiers: false,
			RecursivePatterns: false, ConditionalPatterns: false,
			UnicodeProperties: true, POSIXClasses: false, InlineModifiers: false,
			Comments: false, BranchReset: false, BacktrackingControl: false,
		},
		maxLookbehindDefault: 255,
	})

	register(&Table{
		version:     DotNet,
		description: ".NET (System.Text.RegularExpressions)",
		flags: []FlagInfo{
			{'i', "IgnoreCase", "Case-insensitive matching"},
			{'m', "Multiline", "^ and $ match at line breaks"},
			{'s', "Singleline", ". matches newlines"},
			{'x', "IgnorePatternWhitespace", "Ignore whitespace and allow comments"},
		},
		features: FeatureSet{
			Lookahead: true, Lookbehind: true, LookbehindUnlimited: true,
			NamedGroups: true, AtomicGroups: true, PossessiveQuantifiers: false,
			RecursivePatterns: false, ConditionalPatterns: true,
			UnicodeProperties: true, POSIXClasses: false, InlineModifiers: true,
			Comments: true, BranchReset: false, BacktrackingControl: false,
			BalancedGroups: true,
		},
		maxLookbehindDefault: 255,
	})

	register(&Table{
		version:     Java,
		description: "java.util.regex",
		flags: []FlagInfo{
			{'i', "CASE_INSENSITIVE", "Case-insensitive matching"},
			{'m', "MULTILINE", "^ and $ match at line breaks"},
			{'s', "DOTALL", ". matches newlines"},
			{'x', "COMMENTS", "Ignore whitespace and allow comments"},
			{'u', "UNICODE_CASE", "Unicode-aware case folding"},
		},
		features: FeatureSet{
			Lookahead: true, Lookbehind: true, LookbehindUnlimited: false,
			NamedGroups: true, AtomicGroups: true, PossessiveQuantifiers: true,
			RecursivePatterns: false, ConditionalPatterns: false,
			UnicodeProperties: true, POSIXClasses: true, InlineModifiers: true,
			Comments: true, BranchReset: false, BacktrackingControl: false,
		},
		maxLookbehindDefault: 255,
	})

	register(&Table{
		version:     POSIXBRE,
		description: "POSIX Basic Regular Expressions",
		flags:       []FlagInfo{{'i', "icase", "Case-insensitive matching"}},
		features: FeatureSet{
			Lookahead: false, Lookbehind: false, NamedGroups: false,
			AtomicGroups: false, PossessiveQuantifiers: false,
			RecursivePatterns: false, ConditionalPatterns: false,
			UnicodeProperties: false, POSIXClasses: true, InlineModifiers: false,
			Comments: false, BranchReset: false, BacktrackingControl: false,
		},
	})

	register(&Table{
		version:     POSIXERE,
		description: "POSIX Extended Regular Expressions",
		flags:       []FlagInfo{{'i', "icase", "Case-insensitive matching"}},
		features: FeatureSet{
			Lookahead: false, Lookbehind: false, NamedGroups: false,
			AtomicGroups: false, PossessiveQuantifiers: false,
			RecursivePatterns: false, ConditionalPatterns: false,
			UnicodeProperties: false, POSIXClasses: true, InlineModifiers: false,
			Comments: false, BranchReset: false, BacktrackingControl: false,
		},
	})
}

// MaxLookbehindDefault returns the version's default lookbehind-length cap,
// or 255 if the version doesn't distinguish one.
func (t *Table) MaxLookbehindDefault() int {
	if t.maxLookbehindDefault == 0 {
		return 255
	}
	return t.maxLookbehindDefault
}
