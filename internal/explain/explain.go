// Package explain renders a parsed pattern's AST as a structured,
// human-readable walk — one line per node, indented by nesting depth.
// This replaces the teacher's SVG/railroad-diagram renderer (out of scope
// per spec.md §1) with the plain textual/JSON walk the facade's explain()
// operation promises; the tree-walk order (pre-order, left to right) is
// the same order the teacher's renderer visited nodes in.
package explain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/0x4d5352/regexcore/internal/ast"
)

// Format selects the explain() output encoding.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
)

// Line is one explained node: its AST kind, a short human summary, its
// source span, and nested children in document order.
type Line struct {
	Kind     string `json:"kind"`
	Summary  string `json:"summary"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Children []Line `json:"children,omitempty"`
}

// Walk builds the Line tree for n.
func Walk(n ast.Node) Line {
	span := n.Span()
	line := Line{Kind: n.Type(), Summary: summarize(n), Start: span.Start, End: span.End}
	line.Children = children(n)
	return line
}

// Render produces the explain() output in the requested format.
func Render(n ast.Node, format Format) (string, error) {
	tree := Walk(n)
	switch format {
	case JSON:
		buf, err := json.Marshal(tree)
		if err != nil {
			return "", err
		}
		return string(pretty.Pretty(buf)), nil
	case Text, "":
		var b strings.Builder
		renderText(&b, tree, 0)
		return b.String(), nil
	default:
		return "", fmt.Errorf("explain: unknown format %q", format)
	}
}

// Summary extracts just the root node's one-line summary from a previously
// rendered JSON document, for callers that stored the JSON form and want a
// cheap headline without re-walking the AST or unmarshaling the whole tree.
func Summary(renderedJSON string) string {
	return gjson.Get(renderedJSON, "summary").String()
}

func renderText(b *strings.Builder, l Line, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(b, "%s [%d,%d) %s\n", l.Kind, l.Start, l.End, l.Summary)
	for _, c := range l.Children {
		renderText(b, c, depth+1)
	}
}

func children(n ast.Node) []Line {
	switch v := n.(type) {
	case *ast.Regex:
		return []Line{Walk(v.Body)}
	case *ast.Sequence:
		return walkAll(v.Children)
	case *ast.Alternation:
		return walkAll(v.Branches)
	case *ast.Group:
		return []Line{Walk(v.Child)}
	case *ast.Define:
		return []Line{Walk(v.Child)}
	case *ast.Quantifier:
		return []Line{Walk(v.Child)}
	case *ast.Conditional:
		out := []Line{Walk(v.Condition), Walk(v.Then)}
		if v.Else != nil {
			out = append(out, Walk(v.Else))
		}
		return out
	case *ast.CharClass:
		return []Line{Walk(v.Expression)}
	case *ast.ClassOperation:
		return []Line{Walk(v.Left), Walk(v.Right)}
	case *ast.ClassUnion:
		return walkAll(v.Items)
	case *ast.Range:
		return []Line{Walk(v.Low), Walk(v.High)}
	default:
		return nil
	}
}

func walkAll(nodes []ast.Node) []Line {
	out := make([]Line, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, Walk(n))
	}
	return out
}

func summarize(n ast.Node) string {
	switch v := n.(type) {
	case *ast.Regex:
		return fmt.Sprintf("delimiter %q, flags %q", v.Delimiter, v.Flags)
	case *ast.Literal:
		return fmt.Sprintf("%q", v.Value)
	case *ast.CharLiteral:
		return fmt.Sprintf("U+%04X (%s)", v.Codepoint, v.Kind)
	case *ast.CharClass:
		if v.Negated {
			return "negated"
		}
		return "positive"
	case *ast.ClassOperation:
		return string(v.Kind)
	case *ast.Range:
		return fmt.Sprintf("%q-%q", v.Low.Codepoint, v.High.Codepoint)
	case *ast.CharType:
		return `\` + v.Letter
	case *ast.POSIXClass:
		if v.Negated {
			return fmt.Sprintf("[:^%s:]", v.Name)
		}
		return fmt.Sprintf("[:%s:]", v.Name)
	case *ast.UnicodeProperty:
		mark := "p"
		if v.Negated {
			mark = "P"
		}
		return fmt.Sprintf(`\%s{%s}`, mark, v.Property)
	case *ast.Anchor:
		return string(v.Kind)
	case *ast.Dot:
		return "any character"
	case *ast.Quantifier:
		max := "inf"
		if v.Max != ast.Infinite {
			max = fmt.Sprintf("%d", v.Max)
		}
		return fmt.Sprintf("{%d,%s} %s", v.Min, max, v.Greediness)
	case *ast.Group:
		if v.Kind == ast.GroupNamed {
			return fmt.Sprintf("%s %q (#%d)", v.Kind, v.Name, v.Number)
		}
		if v.Kind == ast.GroupCapturing {
			return fmt.Sprintf("%s (#%d)", v.Kind, v.Number)
		}
		return string(v.Kind)
	case *ast.Conditional:
		return "if/then/else"
	case *ast.Backreference:
		if v.Numeric {
			return fmt.Sprintf("\\%d", v.Index)
		}
		return fmt.Sprintf("\\k<%s>", v.Name)
	case *ast.RecursiveRef:
		return fmt.Sprintf("-> %s", v.Target)
	case *ast.Comment:
		return v.Text
	case *ast.ErrorNode:
		return "parse error"
	default:
		return ""
	}
}
