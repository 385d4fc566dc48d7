package inspect2pdf

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/alnah/go-inspect2pdf/internal/assets"
	"github.com/alnah/go-inspect2pdf/internal/content"
	"github.com/alnah/go-inspect2pdf/internal/fonts"
)

// fallbackColor replaces colors that fail safeColor.
const fallbackColor = "#000000"

// colorPattern accepts hex colors, named colors and rgb()/rgba().
var colorPattern = regexp.MustCompile(`^(#[0-9A-Fa-f]{3,8}|[A-Za-z]{3,20}|rgba?\([0-9., %]+\))$`)

// safeColor returns c if it is a plain CSS color, otherwise fallback.
// Theme and template colors end up inside style attributes.
func safeColor(c, fallback string) string {
	if colorPattern.MatchString(c) {
		return c
	}
	return fallback
}

// pt formats a length in points.
func pt(v float64) string {
	return fmt.Sprintf("%.2fpt", v)
}

// buildFontFaceCSS embeds every report font as a data URI so Chrome draws
// with the faces text was measured with.
func buildFontFaceCSS() string {
	var buf strings.Builder
	for _, f := range fonts.Families {
		fmt.Fprintf(&buf, "@font-face { font-family: %q; src: url(data:font/ttf;base64,%s) format(\"truetype\"); }\n",
			fonts.CSSName(f), base64.StdEncoding.EncodeToString(fonts.TTF(f)))
	}
	return buf.String()
}

// buildPageCSS sizes every printed page to the template page.
func buildPageCSS(width, height float64) string {
	return fmt.Sprintf(`
@page { size: %s %s; margin: 0; }
html, body { margin: 0; padding: 0; }
.page { position: relative; width: %s; height: %s; overflow: hidden; break-after: page; page-break-after: always; }
.page:last-child { break-after: auto; page-break-after: auto; }
.band, .content, .unit, .gutter, .lines { position: absolute; box-sizing: border-box; }
.lines { white-space: pre; margin: 0; }
.gutter { left: 0; top: 0; white-space: pre; }
.checkbox { display: flex; align-items: center; white-space: pre; }
.box { display: inline-block; box-sizing: border-box; border: 0.75pt solid currentColor; text-align: center; }
.badge { position: absolute; left: 50%%; top: 50%%; transform: translate(-50%%, -50%%); color: #ffffff; }
.frame { background: #000000; }
.placeholder { border: 1pt dashed currentColor; display: flex; align-items: center; justify-content: center; }
`, pt(width), pt(height), pt(width), pt(height))
}

// rectCSS positions a box.
func rectCSS(x, y, w, h float64) string {
	return fmt.Sprintf("left: %s; top: %s; width: %s; height: %s;", pt(x), pt(y), pt(w), pt(h))
}

// fontCSS renders a content font. Line height is explicit so browser lines
// sit where layout put them.
func fontCSS(f content.Font) string {
	lh := f.LineHeight
	if lh <= 0 {
		lh = f.Size
	}
	return fmt.Sprintf("font-family: %q; font-size: %s; line-height: %s; color: %s;",
		fonts.CSSName(familyOrRegular(f.Family)), pt(f.Size), pt(lh), safeColor(f.Color, fallbackColor))
}

// backgroundCSS renders a role's background color and art.
func backgroundCSS(color string, art []byte, mime string) string {
	var buf strings.Builder
	if color != "" {
		fmt.Fprintf(&buf, "background-color: %s;", safeColor(color, "#ffffff"))
	}
	if len(art) > 0 {
		fmt.Fprintf(&buf, " background-image: url(%s); background-size: 100%% 100%%;", dataURI(mime, art))
	}
	return buf.String()
}

// bandCSS positions a header or footer band.
func bandCSS(b assets.Rect, align, rule string, f content.Font) string {
	css := rectCSS(b.X, b.Y, b.Width, b.Height) + " " + fontCSS(f)
	switch align {
	case "center", "right":
		css += " text-align: " + align + ";"
	default:
		css += " text-align: left;"
	}
	if rule != "" {
		css += " border-bottom: 0.75pt solid " + safeColor(rule, fallbackColor) + ";"
	}
	return css
}

func dataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func familyOrRegular(f fonts.Family) fonts.Family {
	if f == "" {
		return fonts.Regular
	}
	return f
}
