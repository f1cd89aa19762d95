package parser

import (
	"testing"

	"github.com/0x4d5352/regexcore/internal/ast"
	"github.com/0x4d5352/regexcore/internal/pattern"
)

func parseBody(t *testing.T, src string) ast.Node {
	t.Helper()
	regex, _, err := Parse(src, pattern.PCRE2)
	if err != nil {
		t.Fatalf("Parse(%q): unexpected error: %v", src, err)
	}
	return regex.Body
}

func TestParseLiteralCoalesces(t *testing.T) {
	body := parseBody(t, "/abc/")
	lit, ok := body.(*ast.Literal)
	if !ok {
		t.Fatalf("expected *ast.Literal, got %T", body)
	}
	if lit.Value != "abc" {
		t.Errorf("expected 'abc', got %q", lit.Value)
	}
}

func TestParseAlternation(t *testing.T) {
	body := parseBody(t, "/a|b|c/")
	alt, ok := body.(*ast.Alternation)
	if !ok {
		t.Fatalf("expected *ast.Alternation, got %T", body)
	}
	if len(alt.Branches) != 3 {
		t.Fatalf("expected 3 branches, got %d", len(alt.Branches))
	}
}

func TestParseCaptureGroupNumbering(t *testing.T) {
	regex, state, err := Parse("/(a)(b)/", pattern.PCRE2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seq, ok := regex.Body.(*ast.Sequence)
	if !ok {
		t.Fatalf("expected *ast.Sequence, got %T", regex.Body)
	}
	if len(seq.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(seq.Children))
	}
	g1 := seq.Children[0].(*ast.Group)
	g2 := seq.Children[1].(*ast.Group)
	if g1.Number != 1 || g2.Number != 2 {
		t.Errorf("expected group numbers 1,2; got %d,%d", g1.Number, g2.Number)
	}
	if state.Groups.Count != 2 {
		t.Errorf("expected group table count 2, got %d", state.Groups.Count)
	}
}

func TestParseNamedGroup(t *testing.T) {
	regex, _, err := Parse("/(?<year>\\d{4})/", pattern.PCRE2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g, ok := regex.Body.(*ast.Group)
	if !ok {
		t.Fatalf("expected *ast.Group, got %T", regex.Body)
	}
	if g.Kind != ast.GroupNamed || g.Name != "year" {
		t.Errorf("expected named group 'year', got kind=%s name=%s", g.Kind, g.Name)
	}
}

func TestParseBranchResetSharesCaptureNumbers(t *testing.T) {
	regex, state, err := Parse("/(?|(a)|(b)(c))/", pattern.PCRE2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g, ok := regex.Body.(*ast.Group)
	if !ok || g.Kind != ast.GroupBranchReset {
		t.Fatalf("expected branch-reset group, got %T", regex.Body)
	}
	// Highest capture number across alternatives is 2 ((b)(c) branch).
	if state.Groups.Count != 2 {
		t.Errorf("expected 2 total captures after branch-reset, got %d", state.Groups.Count)
	}
}

func TestParseQuotedLiteral(t *testing.T) {
	body := parseBody(t, `/\Qa.b\E/`)
	lit, ok := body.(*ast.Literal)
	if !ok {
		t.Fatalf("expected *ast.Literal, got %T", body)
	}
	if lit.Value != "a.b" {
		t.Errorf("expected verbatim 'a.b', got %q", lit.Value)
	}
}

func TestParseUnterminatedGroupIsError(t *testing.T) {
	if _, _, err := Parse("/(abc/", pattern.PCRE2); err == nil {
		t.Fatal("expected an error for an unterminated group")
	}
}

func TestParseTolerantCollectsErrors(t *testing.T) {
	result := ParseTolerant("/(abc/", pattern.PCRE2)
	if len(result.Errors) == 0 {
		t.Fatal("expected at least one collected error in tolerant mode")
	}
}

func TestParseClassAlgebra(t *testing.T) {
	body := parseBody(t, "/[a-z--[aeiou]]/")
	cc, ok := body.(*ast.CharClass)
	if !ok {
		t.Fatalf("expected *ast.CharClass, got %T", body)
	}
	if _, ok := cc.Expression.(*ast.ClassOperation); !ok {
		t.Fatalf("expected class algebra expression, got %T", cc.Expression)
	}
}

func TestParseConditionalNumeric(t *testing.T) {
	body := parseBody(t, "/(a)(?(1)b|c)/")
	seq, ok := body.(*ast.Sequence)
	if !ok {
		t.Fatalf("expected *ast.Sequence, got %T", body)
	}
	cond, ok := seq.Children[1].(*ast.Conditional)
	if !ok {
		t.Fatalf("expected *ast.Conditional, got %T", seq.Children[1])
	}
	ref, ok := cond.Condition.(*ast.Backreference)
	if !ok || !ref.Numeric || ref.Index != 1 {
		t.Errorf("expected numeric backreference condition to group 1, got %#v", cond.Condition)
	}
}
