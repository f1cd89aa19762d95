package normalizer_test

import (
	"testing"

	"github.com/0x4d5352/regexcore/internal/ast"
	"github.com/0x4d5352/regexcore/internal/normalizer"
	"github.com/0x4d5352/regexcore/internal/parser"
	"github.com/0x4d5352/regexcore/internal/pattern"
)

func normalizeSrc(t *testing.T, src string, opts normalizer.Options) *ast.Regex {
	t.Helper()
	regex, _, err := parser.Parse(src, pattern.PCRE2)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return normalizer.Normalize(regex, opts)
}

func TestNormalizeRepeatCompaction(t *testing.T) {
	out := normalizeSrc(t, "/aaa/", normalizer.Options{})
	seq, ok := out.Body.(*ast.Sequence)
	if !ok {
		q, ok := out.Body.(*ast.Quantifier)
		if !ok {
			t.Fatalf("expected \"aaa\" to compact to a single quantified literal, got %T", out.Body)
		}
		if q.Min != 3 || q.Max != 3 {
			t.Fatalf("expected {3,3}, got {%d,%d}", q.Min, q.Max)
		}
		return
	}
	if len(seq.Children) != 1 {
		t.Fatalf("expected repeat compaction to collapse to one child, got %d", len(seq.Children))
	}
}

func TestNormalizeDedupAlternationBranches(t *testing.T) {
	out := normalizeSrc(t, "/a|a|b/", normalizer.Options{})
	alt, ok := out.Body.(*ast.Alternation)
	if !ok {
		t.Fatalf("expected an alternation, got %T", out.Body)
	}
	if len(alt.Branches) != 2 {
		t.Fatalf("expected duplicate branch removed, got %d branches", len(alt.Branches))
	}
}

func TestNormalizeFoldsDigitRangeToShorthand(t *testing.T) {
	out := normalizeSrc(t, "/[0-9]/", normalizer.Options{CanonicalizeClasses: true})
	ct, ok := out.Body.(*ast.CharType)
	if !ok {
		t.Fatalf("expected [0-9] to fold to \\d, got %T", out.Body)
	}
	if ct.Letter != "d" {
		t.Fatalf("expected [0-9] to fold to \\d, got \\%s", ct.Letter)
	}
}

func TestNormalizeUnicodeModeSuppressesShorthandFolding(t *testing.T) {
	out := normalizeSrc(t, "/[0-9]/", normalizer.Options{CanonicalizeClasses: true, Unicode: true})
	cls, ok := out.Body.(*ast.CharClass)
	if !ok {
		t.Fatalf("expected a char class, got %T", out.Body)
	}
	if _, ok := cls.Expression.(*ast.CharType); ok {
		t.Fatalf("unicode mode should suppress \\d folding")
	}
}

func TestNormalizeLeavesSingleLiteralUnchanged(t *testing.T) {
	out := normalizeSrc(t, "/a/", normalizer.Options{})
	if _, ok := out.Body.(*ast.Literal); !ok {
		t.Fatalf("expected a bare literal, got %T", out.Body)
	}
}
