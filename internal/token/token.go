// Package token defines the flat token stream produced by the lexer (C2)
// ahead of recursive-descent parsing (C3).
package token

import "fmt"

// Kind identifies what a Token represents.
type Kind int

const (
	Invalid Kind = iota
	Literal
	ClassOpen
	ClassClose
	RangeDash
	Anchor
	Quantifier
	GroupOpen
	GroupClose
	AlternationBar
	BackreferenceNumeric
	BackreferenceNamed
	Escape
	Dot
	ControlChar
	UnicodeProperty
	CommentToken
	RecursiveRefToken
	EOF
)

var kindNames = map[Kind]string{
	Invalid:               "invalid",
	Literal:                "literal",
	ClassOpen:              "class-open",
	ClassClose:             "class-close",
	RangeDash:              "range",
	Anchor:                 "anchor",
	Quantifier:             "quantifier",
	GroupOpen:              "group-open",
	GroupClose:             "group-close",
	AlternationBar:         "alternation-bar",
	BackreferenceNumeric:   "backreference-numeric",
	BackreferenceNamed:     "backreference-named",
	Escape:                 "escape",
	Dot:                    "dot",
	ControlChar:            "control-char",
	UnicodeProperty:        "unicode-property",
	CommentToken:           "comment",
	RecursiveRefToken:      "recursive-ref",
	EOF:                    "eof",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// GroupVariant further distinguishes a GroupOpen token, mirroring the
// `(?...)` modifier syntax.
type GroupVariant int

const (
	GroupPlain GroupVariant = iota
	GroupNonCapturing
	GroupNamed
	GroupAtomic
	GroupLookaheadPositive
	GroupLookaheadNegative
	GroupLookbehindPositive
	GroupLookbehindNegative
	GroupInlineFlags
	GroupBranchReset
	GroupDefine
	GroupConditional
)

// Token is one lexical unit: kind, literal text, source span, the flag set
// in effect when the token was scanned (inline `(?x)` can change this
// mid-pattern), and — for GroupOpen — which variant of group this opens.
type Token struct {
	Kind         Kind
	Value        string
	Start        int
	End          int
	FlagsAtToken string
	Variant      GroupVariant
	GroupName    string // for GroupOpen(Named) / BackreferenceNamed
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@[%d,%d)", t.Kind, t.Value, t.Start, t.End)
}
