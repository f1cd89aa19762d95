package render_test

import (
	"testing"

	"github.com/0x4d5352/regexcore/internal/parser"
	"github.com/0x4d5352/regexcore/internal/pattern"
	"github.com/0x4d5352/regexcore/internal/render"
)

func roundTrip(t *testing.T, src string) string {
	t.Helper()
	regex, _, err := parser.Parse(src, pattern.PCRE2)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	out := render.Pattern(regex)
	if _, _, err := parser.Parse(out, pattern.PCRE2); err != nil {
		t.Fatalf("render of %q produced unparsable %q: %v", src, out, err)
	}
	return out
}

func TestRenderPlainLiteral(t *testing.T) {
	if got := roundTrip(t, "/hello/"); got != "/hello/" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderAlternationAndGroup(t *testing.T) {
	if got := roundTrip(t, "/a(b|c)+/"); got != "/a(b|c)+/" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderCharClass(t *testing.T) {
	if got := roundTrip(t, "/[a-z0-9]/"); got != "/[a-z0-9]/" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderLookaround(t *testing.T) {
	if got := roundTrip(t, "/foo(?=bar)/"); got != "/foo(?=bar)/" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderNamedGroupAndBackreference(t *testing.T) {
	if got := roundTrip(t, `/(?<word>\w+)\k<word>/`); got != `/(?<word>\w+)\k<word>/` {
		t.Fatalf("got %q", got)
	}
}

func TestRenderFlagsPreserved(t *testing.T) {
	if got := roundTrip(t, "/abc/im"); got != "/abc/im" {
		t.Fatalf("got %q", got)
	}
}
