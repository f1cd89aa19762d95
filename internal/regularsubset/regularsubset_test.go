package regularsubset

import (
	"testing"

	"github.com/0x4d5352/regexcore/internal/parser"
	"github.com/0x4d5352/regexcore/internal/pattern"
)

func TestCheckAcceptsPlainPattern(t *testing.T) {
	regex, _, err := parser.Parse("/a(bc)+[0-9]/", pattern.PCRE2)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := Check(regex.Pattern, regex.Body, Options{}); err != nil {
		t.Fatalf("expected regular subset, got error: %v", err)
	}
}

func TestCheckRejectsBackreference(t *testing.T) {
	regex, _, err := parser.Parse(`/(a)\1/`, pattern.PCRE2)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := Check(regex.Pattern, regex.Body, Options{}); err == nil {
		t.Fatal("expected backreference to be rejected")
	}
}

func TestCheckRejectsAtomicGroup(t *testing.T) {
	regex, _, err := parser.Parse("/(?>abc)/", pattern.PCRE2)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := Check(regex.Pattern, regex.Body, Options{}); err == nil {
		t.Fatal("expected atomic group to be rejected")
	}
}

func TestCheckLookaroundAllowedWhenOptedIn(t *testing.T) {
	regex, _, err := parser.Parse("/a(?=b)/", pattern.PCRE2)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := Check(regex.Pattern, regex.Body, Options{}); err == nil {
		t.Fatal("expected lookahead to be rejected by default")
	}
	if err := Check(regex.Pattern, regex.Body, Options{AllowLookaround: true}); err != nil {
		t.Fatalf("expected lookahead to be accepted when opted in, got: %v", err)
	}
}

func TestCheckRejectsConditional(t *testing.T) {
	regex, _, err := parser.Parse("/(a)(?(1)b|c)/", pattern.PCRE2)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := Check(regex.Pattern, regex.Body, Options{}); err == nil {
		t.Fatal("expected conditional pattern to be rejected")
	}
}

func TestCheckStrictPossessiveRejectsPossessiveQuantifier(t *testing.T) {
	regex, _, err := parser.Parse("/a++/", pattern.PCRE2)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := Check(regex.Pattern, regex.Body, Options{}); err != nil {
		t.Fatalf("possessive quantifiers are regular by default, got: %v", err)
	}
	if err := Check(regex.Pattern, regex.Body, Options{StrictPossessive: true}); err == nil {
		t.Fatal("expected possessive quantifier to be rejected under StrictPossessive")
	}
}
