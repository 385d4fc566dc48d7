package layout

import (
	"strings"

	"github.com/alnah/go-inspect2pdf/internal/content"
	"github.com/alnah/go-inspect2pdf/internal/fonts"
)

// Measurer reports the advance width of text in points.
type Measurer interface {
	Width(text string, f content.Font) float64
}

// FontMeasurer measures with the embedded report fonts.
type FontMeasurer struct {
	Fonts *fonts.Measurer
}

// Width implements Measurer.
func (m FontMeasurer) Width(text string, f content.Font) float64 {
	return m.Fonts.Width(text, f.Family, f.Size)
}

// wrap breaks text into lines no wider than width. Newlines are kept,
// runs of spaces between words collapse to one, leading spaces of a line
// are kept, and a word wider than the line is broken between runes.
func wrap(m Measurer, text string, f content.Font, width float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		lines = append(lines, wrapParagraph(m, para, f, width)...)
	}
	return lines
}

func wrapParagraph(m Measurer, para string, f content.Font, width float64) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}
	if lead := len(para) - len(strings.TrimLeft(para, " ")); lead > 0 {
		words[0] = para[:lead] + words[0]
	}

	var lines []string
	var cur string
	for _, w := range words {
		if cur != "" {
			if candidate := cur + " " + w; m.Width(candidate, f) <= width+epsilon {
				cur = candidate
				continue
			}
			lines = append(lines, cur)
			cur = ""
		}
		if m.Width(w, f) <= width+epsilon {
			cur = w
			continue
		}
		pieces := breakWord(m, w, f, width)
		lines = append(lines, pieces[:len(pieces)-1]...)
		cur = pieces[len(pieces)-1]
	}
	return append(lines, cur)
}

// breakWord splits w into pieces no wider than width. Each piece holds at
// least one rune, so a rune wider than the line still makes progress.
func breakWord(m Measurer, w string, f content.Font, width float64) []string {
	var pieces []string
	var cur []rune
	for _, r := range w {
		next := append(cur, r)
		if len(cur) > 0 && m.Width(string(next), f) > width+epsilon {
			pieces = append(pieces, string(cur))
			cur = []rune{r}
			continue
		}
		cur = next
	}
	return append(pieces, string(cur))
}
