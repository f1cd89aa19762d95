package runtime_test

import (
	"testing"
	"time"

	"github.com/0x4d5352/regexcore/internal/runtime"
)

func TestValidateCompilesAcceptsOrdinaryPattern(t *testing.T) {
	info, ok := runtime.ValidateCompiles(`a(bc)+[0-9]`, "")
	if !ok {
		t.Fatalf("expected an ordinary pattern to compile under the host runtime, got %v", info.Err)
	}
	if info.OperationID == "" {
		t.Fatalf("expected a non-empty operation id")
	}
}

func TestValidateCompilesRejectsMalformedPattern(t *testing.T) {
	_, ok := runtime.ValidateCompiles(`a(bc`, "")
	if ok {
		t.Fatalf("expected an unbalanced group to fail host-runtime compilation")
	}
}

func TestConfirmMatchesAgainstPump(t *testing.T) {
	took, err := runtime.Confirm(`a+`, "", "aaaa", time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if took < 0 {
		t.Fatalf("expected a non-negative duration")
	}
}
