package pattern

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/0x4d5352/regexcore/internal/errs"
)

// pairedClosers maps an opening paired delimiter to its closer.
var pairedClosers = map[byte]byte{
	'(': ')',
	'{': '}',
	'[': ']',
	'<': '>',
}

// recognizedDelimiters are the non-paired delimiter characters spec.md §6
// names, plus the paired openers.
func isRecognizedDelimiter(c byte) bool {
	switch c {
	case '/', '#', '~', '%', '(', '{', '[', '<':
		return true
	}
	return false
}

// Split implements the PatternSplitter (C1): separate delimiter, body, and
// flags from a delimited pattern string such as `/foo/i` or `#a/b#msx`.
// If source doesn't start (after leading whitespace) with a recognized
// delimiter, the whole string is treated as a bare, undelimited body with
// no flags.
func Split(source string) (delimiter byte, body string, flags string, err error) {
	trimmed := strings.TrimLeft(source, " \t\r\n")
	leadOffset := len(source) - len(trimmed)
	if trimmed == "" {
		return 0, "", "", nil
	}

	opener := trimmed[0]
	if !isRecognizedDelimiter(opener) {
		return 0, source, "", nil
	}

	closer := opener
	if c, ok := pairedClosers[opener]; ok {
		closer = c
	}

	// Find the matching closer, honoring backslash-escapes and, for paired
	// delimiters, nesting depth.
	depth := 0
	bodyStart := leadOffset + 1
	for i := bodyStart; i < len(source); i++ {
		c := source[i]
		if c == '\\' {
			i++ // skip escaped character
			continue
		}
		if opener != closer && c == opener {
			depth++
			continue
		}
		if c == closer {
			if depth > 0 {
				depth--
				continue
			}
			return opener, source[bodyStart:i], source[i+1:], nil
		}
	}

	return 0, "", "", errs.Lexer(source, len(source), "pattern.missing_closing_delimiter",
		"no closing '"+string(closer)+"' found for opening '"+string(opener)+"'")
}

// ValidateFlags deduplicates flags silently and rejects any flag letter not
// legal for the given target version, returning UnknownFlag(list).
func ValidateFlags(source, flags string, version Version) (cleaned string, err error) {
	table, ok := Get(version)
	if !ok {
		return "", errs.Lexer(source, 0, "pattern.unknown_version", "unknown target version: "+string(version))
	}

	seen := make(map[rune]bool)
	var unknown []rune
	var out []rune
	for _, c := range flags {
		if seen[c] {
			continue // duplicate flag letters collapse silently
		}
		seen[c] = true
		if !table.SupportsFlag(c) {
			unknown = append(unknown, c)
			continue
		}
		out = append(out, c)
	}

	if len(unknown) > 0 {
		offset := strings.IndexRune(flags, unknown[0])
		msg := "unknown flag(s): " + string(unknown)
		hint := suggestFlag(unknown[0], table)
		e := errs.Lexer(source, offset, "pattern.unknown_flag", msg)
		e.Hint = hint
		return "", e
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return string(out), nil
}

// suggestFlag fuzzy-matches an unrecognized flag's name against the
// version's supported flags, for a "did you mean" hint.
func suggestFlag(bad rune, table *Table) string {
	best := ""
	bestDist := -1
	for _, f := range table.SupportedFlags() {
		d := fuzzy.LevenshteinDistance(string(bad), string(f.Char))
		if bestDist == -1 || d < bestDist {
			bestDist = d
			best = f.Name
		}
	}
	if best == "" {
		return ""
	}
	return "did you mean -" + best + "?"
}
