package layout

import (
	"fmt"

	"github.com/alnah/go-inspect2pdf/internal/content"
)

// epsilon absorbs float error in fit checks; an exact fit stays on the page.
const epsilon = 1e-6

// Geometry is the usable content area of a page in points.
type Geometry struct {
	Width  float64
	Height float64
}

// Validate checks that both dimensions are positive.
func (g Geometry) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: %gx%g", ErrInvalidGeometry, g.Width, g.Height)
	}
	return nil
}

// State is a canvas lifecycle state.
type State int

// Canvas states.
const (
	StateEmpty State = iota
	StateFilling
	StateFinalized
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateFilling:
		return "filling"
	case StateFinalized:
		return "finalized"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Placement is a unit, or a fragment of one, positioned on a page.
// Coordinates are relative to the top-left of the usable area.
type Placement struct {
	Unit   content.Unit
	X, Y   float64
	Width  float64
	Height float64

	// Text and legend placements carry their wrapped lines. Gutter is the
	// width reserved left of the lines for a marker or status glyph.
	Lines      []string
	LineHeight float64
	Gutter     float64

	Continued bool // an earlier fragment is on a previous page
	Continues bool // a later fragment is on a following page
}

// Page is a finalized canvas.
type Page struct {
	Number     int // 1-based
	Placements []Placement
	Used       float64 // height consumed, including gaps
}

// Canvas accumulates placements for one page. The gap after the previous
// unit is applied before the next one and collapses at the top of a page.
type Canvas struct {
	number     int
	geom       Geometry
	placements []Placement
	cursor     float64
	gap        float64
	state      State
}

// NewCanvas returns an empty canvas for page number.
func NewCanvas(number int, geom Geometry) *Canvas {
	return &Canvas{number: number, geom: geom}
}

// State returns the lifecycle state.
func (c *Canvas) State() State { return c.state }

// Number returns the page number.
func (c *Canvas) Number() int { return c.number }

// Remaining returns the height left for a unit, after the pending gap.
func (c *Canvas) Remaining() float64 {
	return c.geom.Height - c.cursor - c.pendingGap()
}

func (c *Canvas) pendingGap() float64 {
	if c.state == StateEmpty {
		return 0
	}
	return c.gap
}

// Fits reports whether a unit of height h fits in the remaining space.
func (c *Canvas) Fits(h float64) bool {
	return c.state != StateFinalized && h <= c.Remaining()+epsilon
}

// Place positions p at the cursor and advances it. spaceAfter becomes the
// gap before the next placement. The caller checks Fits first.
func (c *Canvas) Place(p Placement, spaceAfter float64) error {
	if c.state == StateFinalized {
		return ErrFinalized
	}
	p.Y = c.cursor + c.pendingGap()
	c.cursor = p.Y + p.Height
	c.gap = spaceAfter
	c.placements = append(c.placements, p)
	c.state = StateFilling
	return nil
}

// Finalize freezes the canvas and returns its page.
func (c *Canvas) Finalize() Page {
	c.state = StateFinalized
	return Page{Number: c.number, Placements: c.placements, Used: c.cursor}
}
