package validator

import (
	"testing"

	"github.com/0x4d5352/regexcore/internal/parser"
	"github.com/0x4d5352/regexcore/internal/pattern"
)

func validate(t *testing.T, src string, version pattern.Version) Result {
	t.Helper()
	regex, state, err := parser.Parse(src, version)
	if err != nil {
		t.Fatalf("unexpected parse error for %q: %v", src, err)
	}
	return Validate(regex, state, version, DefaultLimits())
}

func TestValidateAcceptsOrdinaryPattern(t *testing.T) {
	r := validate(t, "/a(bc)+[0-9]{2,4}/", pattern.PCRE2)
	if !r.Valid {
		t.Fatalf("expected valid, got error: %v", r.Error)
	}
}

func TestValidateRejectsBadQuantifierBounds(t *testing.T) {
	r := validate(t, "/a{5,2}/", pattern.PCRE2)
	if r.Valid {
		t.Fatal("expected {5,2} to be rejected (max < min)")
	}
}

func TestValidateRejectsMissingNumericBackreference(t *testing.T) {
	r := validate(t, `/(a)\2/`, pattern.PCRE2)
	if r.Valid {
		t.Fatal("expected backreference to nonexistent group 2 to be rejected")
	}
	if r.Error.Code != "backref.missing" {
		t.Errorf("expected backref.missing, got %s", r.Error.Code)
	}
}

func TestValidateRejectsForwardNumericBackreference(t *testing.T) {
	r := validate(t, `/\1(a)/`, pattern.PCRE2)
	if r.Valid {
		t.Fatal("expected a backreference preceding its group's declaration to be rejected")
	}
	if r.Error.Code != "backref.missing" {
		t.Errorf("expected backref.missing, got %s", r.Error.Code)
	}
}

func TestValidateAllowsBackreferenceContainedByItsOwnGroup(t *testing.T) {
	r := validate(t, `/(a\1)/`, pattern.PCRE2)
	if !r.Valid {
		t.Fatalf("expected a backreference nested inside the group it names to be valid, got: %v", r.Error)
	}
}

func TestValidateRejectsForwardNamedBackreference(t *testing.T) {
	r := validate(t, `/\k<x>(?<x>a)/`, pattern.PCRE2)
	if r.Valid {
		t.Fatal("expected a named backreference preceding its group's declaration to be rejected")
	}
}

func TestValidateRejectsDuplicateGroupName(t *testing.T) {
	r := validate(t, "/(?<x>a)(?<x>b)/", pattern.PCRE2)
	if r.Valid {
		t.Fatal("expected duplicate named group to be rejected")
	}
}

func TestValidateAllowsDuplicateNameUnderBranchReset(t *testing.T) {
	r := validate(t, "/(?|(?<x>a)|(?<x>b))/", pattern.PCRE2)
	if !r.Valid {
		t.Fatalf("expected duplicate name under branch-reset to be valid, got: %v", r.Error)
	}
}

func TestValidateRejectsAtomicGroupUnderPOSIXBRE(t *testing.T) {
	r := validate(t, "/(?>a)/", pattern.POSIXBRE)
	if r.Valid {
		t.Fatal("expected atomic groups to be unsupported under POSIX BRE")
	}
}

func TestValidateRejectsUnboundedLookbehind(t *testing.T) {
	r := validate(t, "/(?<=a*)b/", pattern.PCRE2)
	if r.Valid {
		t.Fatal("expected unbounded-length lookbehind to be rejected under PCRE2")
	}
}

func TestValidateRejectsInvalidCharRange(t *testing.T) {
	r := validate(t, "/[z-a]/", pattern.PCRE2)
	if r.Valid {
		t.Fatal("expected out-of-order character range to be rejected")
	}
}

func TestValidateRejectsPatternTooLong(t *testing.T) {
	regex, state, err := parser.Parse("/a/", pattern.PCRE2)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	r := Validate(regex, state, pattern.PCRE2, Limits{MaxPatternLength: 1, MaxLookbehind: 255, MaxQuantifier: 65535})
	if r.Valid {
		t.Fatal("expected pattern length ceiling to reject")
	}
}
