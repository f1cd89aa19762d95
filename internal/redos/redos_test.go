package redos_test

import (
	"testing"
	"time"

	"github.com/0x4d5352/regexcore/internal/parser"
	"github.com/0x4d5352/regexcore/internal/pattern"
	"github.com/0x4d5352/regexcore/internal/redos"
)

func analyze(t *testing.T, src string, opts redos.Options) redos.Report {
	t.Helper()
	regex, _, err := parser.Parse(src, pattern.PCRE2)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return redos.Analyze(regex, opts)
}

func TestAnalyzeFlagsNestedUnboundedRepetitionAsExponential(t *testing.T) {
	report := analyze(t, "/(a+)+$/", redos.Options{})
	if report.Severity < redos.SeverityHigh {
		t.Fatalf("expected (a+)+ to score at least high, got %s (score %d)", report.Severity, report.Score)
	}
	found := false
	for _, f := range report.Findings {
		if f.Category == redos.CategoryExponential {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an exponential finding, got %+v", report.Findings)
	}
}

func TestAnalyzeSafePatternIsSafe(t *testing.T) {
	report := analyze(t, "/^[a-z]+@[a-z]+\\.[a-z]+$/", redos.Options{})
	if report.Severity != redos.SeveritySafe {
		t.Fatalf("expected a safe verdict, got %s: %+v", report.Severity, report.Findings)
	}
}

func TestAnalyzeOverlappingAlternationUnderRepetition(t *testing.T) {
	report := analyze(t, "/(a|a)+/", redos.Options{})
	if report.Severity == redos.SeveritySafe {
		t.Fatalf("expected (a|a)+ to be flagged")
	}
}

func TestSeverityMonotoneAsFindingsAccumulate(t *testing.T) {
	lo := analyze(t, "/a+/", redos.Options{})
	hi := analyze(t, "/(a+)+(b+)+/", redos.Options{})
	if hi.Severity < lo.Severity {
		t.Fatalf("adding more ambiguous repeaters must never lower severity")
	}
}

func TestAnalyzeUnknownOnBackreference(t *testing.T) {
	report := analyze(t, `/(a)\1+/`, redos.Options{})
	if report.Severity != redos.SeverityUnknown {
		t.Fatalf("expected an unknown verdict in the presence of a backreference, got %s", report.Severity)
	}
}

func TestAnalyzeConfirmationRuns(t *testing.T) {
	calls := 0
	opts := redos.Options{
		Confirm: func(pump string, timeout time.Duration) (time.Duration, error) {
			calls++
			return time.Duration(len(pump)) * time.Microsecond * time.Duration(calls*calls), nil
		},
		ConfirmAt:      redos.SeverityLow,
		ConfirmTimeout: time.Second,
	}
	report := analyze(t, "/(a+)+$/", opts)
	if calls == 0 {
		t.Fatalf("expected the confirm hook to be invoked")
	}
	if len(report.Evidence) == 0 {
		t.Fatalf("expected confirmation evidence to be recorded")
	}
}
