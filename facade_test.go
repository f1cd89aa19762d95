package regexcore_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/0x4d5352/regexcore"
	"github.com/0x4d5352/regexcore/internal/config"
	"github.com/0x4d5352/regexcore/internal/explain"
	"github.com/0x4d5352/regexcore/internal/literal"
	"github.com/0x4d5352/regexcore/internal/normalizer"
	"github.com/0x4d5352/regexcore/internal/redos"
)

func newFacade(t *testing.T) *regexcore.Facade {
	t.Helper()
	f, err := regexcore.New(config.Default())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f
}

func TestFacadeParseAndValidate(t *testing.T) {
	f := newFacade(t)
	res, err := f.Parse("/a(b|c)+/")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Regex == nil {
		t.Fatal("expected a non-nil regex")
	}

	vr, err := f.Validate("/a(b|c)+/")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !vr.Valid {
		t.Fatalf("expected valid, got %+v", vr)
	}
}

func TestFacadeValidateRejectsBadBackreference(t *testing.T) {
	f := newFacade(t)
	vr, err := f.Validate(`/\1/`)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if vr.Valid {
		t.Fatal("expected an invalid result for a dangling backreference")
	}
	if vr.Code == "" {
		t.Fatal("expected a non-empty error code")
	}
}

func TestFacadeValidateIsMemoized(t *testing.T) {
	f := newFacade(t)
	first, err := f.Validate("/abc/")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	second, err := f.Validate("/abc/")
	if err != nil {
		t.Fatalf("Validate (cached): %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("cached result diverged from fresh result (-first +second):\n%s", diff)
	}
}

func TestFacadeOptimizeCollapsesDigitClass(t *testing.T) {
	f := newFacade(t)
	res, err := f.Optimize("/[0123456789]/", normalizer.Options{CanonicalizeClasses: true})
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if res.Optimized != `/\d/` {
		t.Fatalf("expected /\\d/, got %q", res.Optimized)
	}
	if !res.Changed {
		t.Fatal("expected Changed to be true")
	}
}

func TestFacadeExplainRendersText(t *testing.T) {
	f := newFacade(t)
	out, err := f.Explain("/ab/", explain.Text)
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}
	if out == "" {
		t.Fatal("expected non-empty explain output")
	}
}

func TestFacadeRedosFlagsCatastrophicBacktracking(t *testing.T) {
	f := newFacade(t)
	report, err := f.Redos("/(a+)+$/", redos.Options{})
	if err != nil {
		t.Fatalf("Redos: %v", err)
	}
	if report.Severity < redos.SeverityHigh {
		t.Fatalf("expected severity >= high, got %s", report.Severity)
	}
}

func TestFacadeRedosHonorsIgnoreList(t *testing.T) {
	cfg := config.Default()
	cfg.RedosIgnoredPatterns = []string{"/(a+)+$/"}
	f, err := regexcore.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	report, err := f.Redos("/(a+)+$/", redos.Options{})
	if err != nil {
		t.Fatalf("Redos: %v", err)
	}
	if report.Severity != redos.SeveritySafe {
		t.Fatalf("expected ignored pattern to report safe, got %s", report.Severity)
	}
}

func TestFacadeLiterals(t *testing.T) {
	f := newFacade(t)
	set, err := f.Literals("/hello.*world/", literal.DefaultOptions())
	if err != nil {
		t.Fatalf("Literals: %v", err)
	}
	if len(set.Prefixes) == 0 {
		t.Fatal("expected at least one prefix")
	}
}

func TestFacadeUnescapeStringLiteralDecodesDoubledBackslashes(t *testing.T) {
	f := newFacade(t)
	got := f.UnescapeStringLiteral(`\\d+\\s*`)
	if got != `\d+\s*` {
		t.Fatalf("expected %q, got %q", `\d+\s*`, got)
	}
}

func TestFacadeUnescapeStringLiteralLeavesBarePatternsAlone(t *testing.T) {
	f := newFacade(t)
	got := f.UnescapeStringLiteral(`\d+\s*`)
	if got != `\d+\s*` {
		t.Fatalf("expected a bare pattern to pass through unchanged, got %q", got)
	}
}

func TestNewRejectsInvalidConfiguration(t *testing.T) {
	cfg := config.Default()
	cfg.MaxPatternLength = 0
	if _, err := regexcore.New(cfg); err == nil {
		t.Fatal("expected New to reject a zero max_pattern_length")
	}
}
