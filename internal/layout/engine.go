// Package layout places content units onto fixed-size pages.
//
// Units are placed in order. A unit that does not fit the space left on a
// page moves whole to the next page. Text taller than a full page is split
// at line boundaries, and images larger than the page are scaled down.
// Checkbox rows never split.
package layout

import (
	"context"
	"iter"
	"math"

	"github.com/alnah/go-inspect2pdf/internal/content"
	"github.com/alnah/go-inspect2pdf/internal/logging"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(e *Engine) {
		e.logger = logging.Component(l, "layout")
	}
}

// Engine lays out unit sequences. It keeps no state between calls.
type Engine struct {
	geom    Geometry
	measure Measurer
	logger  logging.Logger
}

// New creates an Engine for the usable area geom.
func New(geom Geometry, m Measurer, opts ...Option) (*Engine, error) {
	if err := geom.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{geom: geom, measure: m, logger: logging.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Geometry returns the usable area.
func (e *Engine) Geometry() Geometry { return e.geom }

// Layout consumes units and returns the finalized pages. An error yielded
// by the sequence aborts layout and is returned unchanged. An empty
// sequence yields no pages.
func (e *Engine) Layout(ctx context.Context, units iter.Seq2[content.Unit, error]) ([]Page, error) {
	r := run{engine: e}
	for u, err := range units {
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.place(u); err != nil {
			return nil, err
		}
	}
	if r.canvas != nil && r.canvas.State() == StateFilling {
		r.pages = append(r.pages, r.canvas.Finalize())
	}
	e.logger.Debug().Int("pages", len(r.pages)).Msg("layout complete")
	return r.pages, nil
}

// run is the state of one Layout call.
type run struct {
	engine *Engine
	canvas *Canvas
	pages  []Page
}

func (r *run) current() *Canvas {
	if r.canvas == nil {
		r.canvas = NewCanvas(1, r.engine.geom)
	}
	return r.canvas
}

// newPage finalizes a non-empty canvas and starts the next one.
func (r *run) newPage() *Canvas {
	c := r.current()
	if c.State() == StateEmpty {
		return c
	}
	r.pages = append(r.pages, c.Finalize())
	r.canvas = NewCanvas(c.Number()+1, r.engine.geom)
	return r.canvas
}

func (r *run) place(u content.Unit) error {
	switch u := u.(type) {
	case content.TextBlock:
		return r.placeLines(u, u.Text, u.Marker, u.Style, true)
	case content.LegendBlock:
		return r.placeLines(u, u.Title, u.Glyph, u.Style, false)
	case content.CheckboxGlyph:
		return r.placeAtomic(u, r.usableWidth(u), u.Height())
	case content.ImageBlock:
		w, h := content.FitBox(u.Width, u.Height, r.usableWidth(u), r.engine.geom.Height)
		return r.placeAtomic(u, w, h)
	}
	return r.placeAtomic(u, r.usableWidth(u), 0)
}

// usableWidth is the content width right of the unit's indent.
func (r *run) usableWidth(u content.Unit) float64 {
	return max(r.engine.geom.Width-u.UnitStyle().Indent, 0)
}

// placeAtomic places a unit that never splits.
func (r *run) placeAtomic(u content.Unit, w, h float64) error {
	if h > r.engine.geom.Height+epsilon {
		return &OverflowError{Kind: u.Kind(), Section: u.SectionIndex(), Height: h, Available: r.engine.geom.Height}
	}
	c := r.current()
	if !c.Fits(h) {
		c = r.newPage()
	}
	return c.Place(Placement{Unit: u, X: u.UnitStyle().Indent, Width: w, Height: h}, u.UnitStyle().SpaceAfter)
}

// placeLines places a text or legend unit, splitting it across pages only
// when it is taller than a full page. With reserve set, a fragment that
// continues on a later page keeps its last line free for the continuation
// marker.
func (r *run) placeLines(u content.Unit, text, marker string, st content.Style, reserve bool) error {
	geom := r.engine.geom
	lh := st.Font.LineHeight
	if lh <= 0 {
		lh = st.Font.Size
	}
	if lh > geom.Height+epsilon {
		return &OverflowError{Kind: u.Kind(), Section: u.SectionIndex(), Height: lh, Available: geom.Height}
	}

	var gutter float64
	if marker != "" {
		gutter = r.engine.measure.Width(marker+" ", st.Font)
	}
	width := geom.Width - st.Indent
	lines := wrap(r.engine.measure, text, st.Font, max(width-gutter, 0))
	height := float64(len(lines)) * lh

	frag := func(ls []string, continued, continues bool) Placement {
		return Placement{
			Unit: u, X: st.Indent, Width: width, Height: float64(len(ls)) * lh,
			Lines: ls, LineHeight: lh, Gutter: gutter,
			Continued: continued, Continues: continues,
		}
	}

	c := r.current()
	if c.Fits(height) {
		return c.Place(frag(lines, false, false), st.SpaceAfter)
	}
	if height <= geom.Height+epsilon {
		return r.newPage().Place(frag(lines, false, false), st.SpaceAfter)
	}

	// Taller than a page: fill what is left here, then whole pages.
	perPage := linesThatFit(geom.Height, lh)
	first := true
	for len(lines) > 0 {
		n := linesThatFit(c.Remaining(), lh)
		if n == 0 {
			c = r.newPage()
			n = perPage
		}
		if reserve && n == 1 && len(lines) > 1 && c.State() != StateEmpty {
			c = r.newPage()
			n = perPage
		}
		n = min(n, len(lines))
		markerLine := reserve && n < len(lines) && n > 1
		if markerLine {
			n--
		}
		rest := lines[n:]
		pl := frag(lines[:n], !first, len(rest) > 0)
		if markerLine {
			pl.Height += lh
		}
		if err := c.Place(pl, st.SpaceAfter); err != nil {
			return err
		}
		lines, first = rest, false
		if len(lines) > 0 {
			c = r.newPage()
		}
	}
	return nil
}

func linesThatFit(space, lh float64) int {
	if space <= 0 {
		return 0
	}
	return int(math.Floor((space + epsilon) / lh))
}
