// Package runtime provides the host-runtime collaborators the core
// consults only as an external witness: a standalone compile check
// against a real PCRE-ish engine (ValidateCompiles, which the facade does
// not call) and ReDoS empirical confirmation (spec.md §4.11's optional
// step 5, switched on by `runtime_pcre_validation`), both backed by
// dlclark/regexp2 — the same matcher the teacher already depends on
// to sanity-check patterns before rendering them.
package runtime

import (
	"time"

	"github.com/dlclark/regexp2"
	"github.com/google/uuid"
)

var now = time.Now

// Info snapshots one runtime operation for observability/debugging —
// spec.md §4.11's empirical confirmation evidence carries an "evidence"
// blob, and an operation id lets a caller correlate that blob with logs.
type Info struct {
	OperationID string
	Pattern     string
	Took        time.Duration
	Err         error
}

func newInfo(pattern string) Info {
	return Info{OperationID: uuid.NewString(), Pattern: pattern}
}

// regexp2Options mirrors the subset of PCRE flags regexp2 understands;
// callers pass the target version's flag string as parsed by
// internal/pattern, already validated against that version's feature set.
func regexp2Options(flags string) regexp2.RegexOptions {
	opts := regexp2.None
	for _, f := range flags {
		switch f {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 's':
			opts |= regexp2.Singleline
		case 'm':
			opts |= regexp2.Multiline
		case 'x':
			opts |= regexp2.IgnorePatternWhitespace
		}
	}
	return opts
}

// ValidateCompiles runs the pattern through regexp2's own parser as a
// second, independent check that a host runtime accepts it. It does not
// attempt to match anything — this is a pure "does it compile" gate.
func ValidateCompiles(pattern, flags string) (Info, bool) {
	info := newInfo(pattern)
	start := now()
	_, err := regexp2.Compile(pattern, regexp2Options(flags))
	info.Took = now().Sub(start)
	info.Err = err
	return info, err == nil
}

// Confirm matches pattern against pump within timeout and reports how
// long the attempt took, satisfying redos.ConfirmFunc's signature (the
// facade wires this in directly as the ReDoS analyzer's empirical
// confirmation hook).
func Confirm(pattern, flags, pump string, timeout time.Duration) (time.Duration, error) {
	re, err := regexp2.Compile(pattern, regexp2Options(flags))
	if err != nil {
		return 0, err
	}
	re.MatchTimeout = timeout
	start := now()
	_, err = re.MatchString(pump)
	return now().Sub(start), err
}
