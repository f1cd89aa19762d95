package nfa

import "sort"

// MaxCodepoint bounds the working alphabet at the top of the Unicode
// codespace (surrogates included for simplicity; patterns never target
// them directly since the lexer only emits scalar-value escapes).
const MaxCodepoint = 0x10FFFF

// interval is an inclusive [Lo, Hi] codepoint range.
type interval struct {
	Lo, Hi rune
}

// normalize sorts and merges touching/overlapping intervals.
func normalize(ivs []interval) []interval {
	if len(ivs) < 2 {
		return ivs
	}
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].Lo < ivs[j].Lo })
	out := []interval{ivs[0]}
	for _, iv := range ivs[1:] {
		last := &out[len(out)-1]
		if iv.Lo <= last.Hi+1 {
			if iv.Hi > last.Hi {
				last.Hi = iv.Hi
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}

// complement returns the intervals of [0, MaxCodepoint] not covered by ivs.
// ivs must already be normalize()d.
func complement(ivs []interval) []interval {
	var out []interval
	next := rune(0)
	for _, iv := range ivs {
		if iv.Lo > next {
			out = append(out, interval{next, iv.Lo - 1})
		}
		if iv.Hi+1 > next {
			next = iv.Hi + 1
		}
	}
	if next <= MaxCodepoint {
		out = append(out, interval{next, MaxCodepoint})
	}
	return out
}

// intersect returns the set intersection of two normalized interval lists.
func intersect(a, b []interval) []interval {
	var out []interval
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		lo := a[i].Lo
		if b[j].Lo > lo {
			lo = b[j].Lo
		}
		hi := a[i].Hi
		if b[j].Hi < hi {
			hi = b[j].Hi
		}
		if lo <= hi {
			out = append(out, interval{lo, hi})
		}
		if a[i].Hi < b[j].Hi {
			i++
		} else {
			j++
		}
	}
	return out
}

// difference returns a minus b (both normalized).
func difference(a, b []interval) []interval {
	return intersect(a, complement(b))
}

// symmetricDifference returns (a-b) ∪ (b-a).
func symmetricDifference(a, b []interval) []interval {
	return normalize(append(difference(a, b), difference(b, a)...))
}

// union returns the normalized union of two interval lists.
func union(a, b []interval) []interval {
	return normalize(append(append([]interval{}, a...), b...))
}

// Predefined ASCII-centric approximations for character-type escapes.
// Full Unicode-property tables aren't vendored; these cover the common,
// non-Unicode-flag behavior every target version shares for \d \w \s and
// the POSIX classes. See DESIGN.md for the scope of this approximation.
var (
	digitRanges = []interval{{'0', '9'}}
	wordRanges  = normalize([]interval{{'0', '9'}, {'A', 'Z'}, {'a', 'z'}, {'_', '_'}})
	spaceRanges = normalize([]interval{{'\t', '\r'}, {' ', ' '}})
	hspaceRanges = normalize([]interval{{'\t', '\t'}, {' ', ' '}})
)

func charTypeRanges(letter string) ([]interval, bool) {
	switch letter {
	case "d":
		return digitRanges, false
	case "D":
		return digitRanges, true
	case "w":
		return wordRanges, false
	case "W":
		return wordRanges, true
	case "s":
		return spaceRanges, false
	case "S":
		return spaceRanges, true
	case "h":
		return hspaceRanges, false
	case "H":
		return hspaceRanges, true
	case "N":
		// bare \N: any character except newline, same set as Dot without dotall.
		return []interval{{'\n', '\n'}}, true
	case "X":
		// \X (extended grapheme cluster): over-approximated as "any single
		// codepoint" since true cluster matching isn't expressible as a
		// single automaton transition.
		return []interval{{0, MaxCodepoint}}, false
	case "R":
		// \R (any linebreak): handled specially by the compiler as an
		// alternation of \r\n | \r | \n, not as a flat character set.
		return nil, false
	}
	return nil, false
}

var posixClassRanges = map[string][]interval{
	"alpha":  normalize([]interval{{'A', 'Z'}, {'a', 'z'}}),
	"digit":  {{'0', '9'}},
	"alnum":  normalize([]interval{{'0', '9'}, {'A', 'Z'}, {'a', 'z'}}),
	"upper":  {{'A', 'Z'}},
	"lower":  {{'a', 'z'}},
	"space":  spaceRanges,
	"blank":  hspaceRanges,
	"punct":  normalize([]interval{{'!', '/'}, {':', '@'}, {'[', '`'}, {'{', '~'}}),
	"cntrl":  normalize([]interval{{0, 0x1F}, {0x7F, 0x7F}}),
	"print":  {{0x20, 0x7E}},
	"graph":  {{0x21, 0x7E}},
	"xdigit": normalize([]interval{{'0', '9'}, {'A', 'F'}, {'a', 'f'}}),
}

// unicodePropertyRanges coarsely approximates the handful of single-letter
// general categories patterns commonly reference. Full Unicode category
// tables aren't vendored (see DESIGN.md); ASCII plus the Latin-1
// supplement stand in for the corresponding category.
var unicodePropertyRanges = map[string][]interval{
	"L":  normalize([]interval{{'A', 'Z'}, {'a', 'z'}, {0xC0, 0xFF}}),
	"Lu": normalize([]interval{{'A', 'Z'}, {0xC0, 0xDE}}),
	"Ll": normalize([]interval{{'a', 'z'}, {0xDF, 0xFF}}),
	"N":  {{'0', '9'}},
	"Nd": {{'0', '9'}},
	"P":  normalize([]interval{{'!', '/'}, {':', '@'}, {'[', '`'}, {'{', '~'}}),
	"S":  normalize([]interval{{'$', '$'}, {'+', '+'}, {'<', '>'}, {'^', '^'}, {'`', '`'}, {'|', '|'}, {'~', '~'}}),
	"Z":  {{' ', ' '}},
	"C":  normalize([]interval{{0, 0x1F}, {0x7F, 0x9F}}),
	"M":  nil,
}

func unicodePropertyRangesFor(prop string) []interval {
	if ivs, ok := unicodePropertyRanges[prop]; ok {
		return ivs
	}
	return nil
}
