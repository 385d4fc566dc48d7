package render

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/unicode/norm"
)

// commentFlattener turns lightly formatted comment text into plain lines.
// Paragraphs, headings and list items each start a new line, list items
// get a bullet or number, and the author's line breaks are kept.
type commentFlattener struct {
	md goldmark.Markdown
}

func newCommentFlattener() *commentFlattener {
	return &commentFlattener{
		md: goldmark.New(goldmark.WithExtensions(extension.Strikethrough, extension.Linkify)),
	}
}

// Flatten returns NFC-normalized plain text with lines separated by "\n".
func (f *commentFlattener) Flatten(src string) string {
	source := []byte(norm.NFC.String(src))
	doc := f.md.Parser().Parse(text.NewReader(source))

	var lines []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			lines = append(lines, strings.TrimRight(cur.String(), " "))
			cur.Reset()
		}
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch n := n.(type) {
		case *ast.Paragraph, *ast.TextBlock, *ast.Heading, *ast.ThematicBreak:
			if !entering {
				flush()
			}
		case *ast.ListItem:
			flush()
			if entering {
				cur.WriteString(listMarker(n))
			}
		case *ast.Text:
			if !entering {
				break
			}
			cur.Write(n.Segment.Value(source))
			if n.HardLineBreak() || n.SoftLineBreak() {
				flush()
			}
		case *ast.String:
			if entering {
				cur.Write(n.Value)
			}
		case *ast.AutoLink:
			if entering {
				cur.Write(n.Label(source))
			}
			return ast.WalkSkipChildren, nil
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			if entering {
				flush()
				segs := n.Lines()
				for i := range segs.Len() {
					seg := segs.At(i)
					lines = append(lines, strings.TrimRight(string(seg.Value(source)), "\r\n"))
				}
			}
			return ast.WalkSkipChildren, nil
		case *ast.HTMLBlock:
			// Inspectors type angle brackets as prose; keep them verbatim.
			if entering {
				flush()
				segs := n.Lines()
				for i := range segs.Len() {
					seg := segs.At(i)
					lines = append(lines, strings.TrimRight(string(seg.Value(source)), "\r\n"))
				}
				if n.HasClosure() {
					lines = append(lines, strings.TrimRight(string(n.ClosureLine.Value(source)), "\r\n"))
				}
			}
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			if entering {
				for i := range n.Segments.Len() {
					seg := n.Segments.At(i)
					cur.Write(seg.Value(source))
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	flush()

	return strings.Join(lines, "\n")
}

// listMarker returns the indented bullet or ordinal for a list item.
func listMarker(item *ast.ListItem) string {
	depth := 0
	for p := item.Parent(); p != nil; p = p.Parent() {
		if _, ok := p.(*ast.List); ok {
			depth++
		}
	}
	indent := strings.Repeat("  ", max(depth-1, 0))

	list, ok := item.Parent().(*ast.List)
	if !ok || !list.IsOrdered() {
		return indent + "• "
	}
	n := list.Start
	for s := item.PreviousSibling(); s != nil; s = s.PreviousSibling() {
		n++
	}
	return indent + strconv.Itoa(n) + ". "
}

var romanNumerals = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// roman formats n (>= 1) as an upper-case Roman numeral.
func roman(n int) string {
	if n <= 0 {
		return strconv.Itoa(n)
	}
	var b strings.Builder
	for _, r := range romanNumerals {
		for n >= r.value {
			b.WriteString(r.symbol)
			n -= r.value
		}
	}
	return b.String()
}
