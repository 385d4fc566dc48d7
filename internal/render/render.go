// Package render turns an inspection record into an ordered sequence of
// content units, resolving media through the cache with bounded lookahead.
package render

import (
	"context"
	"errors"
	"iter"

	"github.com/alnah/go-inspect2pdf/internal/assets"
	"github.com/alnah/go-inspect2pdf/internal/content"
	"github.com/alnah/go-inspect2pdf/internal/logging"
	"github.com/alnah/go-inspect2pdf/internal/mediacache"
	"github.com/alnah/go-inspect2pdf/internal/record"
)

// DefaultLookahead is the default number of media references resolved ahead
// of the unit being emitted.
const DefaultLookahead = 4

var errNoAsset = errors.New("resolver returned no asset")

// videoAspect is the frame ratio of a video slot drawn without a thumbnail.
const videoAspect = 9.0 / 16.0

// MediaResolver resolves a media reference to a thumbnail.
// *mediacache.Cache implements it.
type MediaResolver interface {
	Resolve(ctx context.Context, ref record.MediaReference) (*mediacache.Asset, error)
}

// Compile-time interface check.
var _ MediaResolver = (*mediacache.Cache)(nil)

// Option configures a Renderer.
type Option func(*Renderer)

// WithLookahead sets how many media references are resolved ahead.
func WithLookahead(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.lookahead = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(r *Renderer) {
		r.logger = logging.Component(l, "render")
	}
}

// Renderer emits content units for a record. It holds no per-record state,
// so one Renderer may serve many records, sequentially or concurrently.
type Renderer struct {
	theme     *assets.Theme
	media     MediaResolver
	lookahead int
	flatten   *commentFlattener
	logger    logging.Logger
}

// New creates a Renderer drawing with theme and resolving media through media.
func New(theme *assets.Theme, media MediaResolver, opts ...Option) *Renderer {
	r := &Renderer{
		theme:     theme,
		media:     media,
		lookahead: DefaultLookahead,
		flatten:   newCommentFlattener(),
		logger:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render returns the unit sequence for rec. For each section it yields a
// legend, the status checkbox row, one text block per comment (or the
// theme's empty-section line when there are none) and one image block per
// media reference, in that order. A media failure yields a
// placeholder image block in the same slot and never an error.
//
// An invalid record yields a single *record.SchemaError before any unit.
// Cancellation of ctx yields ctx.Err() and ends the sequence. Each call
// starts a fresh pass.
func (r *Renderer) Render(ctx context.Context, rec *record.InspectionRecord) iter.Seq2[content.Unit, error] {
	return func(yield func(content.Unit, error) bool) {
		if err := rec.Validate(); err != nil {
			yield(nil, err)
			return
		}

		pf := startPrefetch(ctx, r.media, fetchable(rec), r.lookahead)
		defer pf.close()

		for i, s := range rec.Sections {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			if !yield(r.legend(i, s), nil) {
				return
			}
			if !yield(r.checkbox(i, s), nil) {
				return
			}
			for _, c := range s.Comments {
				if !yield(r.comment(i, s, c), nil) {
					return
				}
			}
			if len(s.Comments) == 0 && r.theme.EmptySection != "" {
				if !yield(r.emptyNote(i, s), nil) {
					return
				}
			}
			for _, m := range s.Media {
				blk, err := r.image(ctx, pf, i, s, m)
				if err != nil {
					yield(nil, err)
					return
				}
				if !yield(blk, nil) {
					return
				}
			}
		}
	}
}

// fetchable lists, in emission order, the references that need resolving.
func fetchable(rec *record.InspectionRecord) []record.MediaReference {
	var refs []record.MediaReference
	for _, s := range rec.Sections {
		for _, m := range s.Media {
			if m.Identity() != "" {
				refs = append(refs, m)
			}
		}
	}
	return refs
}

func (r *Renderer) legend(i int, s record.Section) content.LegendBlock {
	title := record.SectionTitle(s, i)
	if r.theme.NumberSections {
		title = roman(i+1) + ". " + title
	}
	st := r.theme.Status(s.Status)
	return content.LegendBlock{
		Section:    i,
		Title:      title,
		Status:     s.Status,
		Glyph:      st.Glyph,
		GlyphColor: st.Color,
		Style:      r.theme.StyleFor(content.KindLegend, s.Status),
	}
}

func (r *Renderer) checkbox(i int, s record.Section) content.CheckboxGlyph {
	labels := make([]string, len(record.Statuses))
	checked := -1
	for k, st := range record.Statuses {
		labels[k] = st.Code()
		if st == s.Status {
			checked = k
		}
	}
	return content.CheckboxGlyph{
		Section: i,
		Labels:  labels,
		Checked: checked,
		BoxSize: r.theme.Checkbox.Size,
		Gap:     r.theme.Checkbox.Gap,
		Style:   r.theme.StyleFor(content.KindCheckbox, s.Status),
	}
}

func (r *Renderer) comment(i int, s record.Section, c record.Comment) content.TextBlock {
	sev := r.theme.Severity(c.Severity)
	return content.TextBlock{
		Section:     i,
		Text:        r.flatten.Flatten(c.Text),
		Marker:      sev.Marker,
		MarkerColor: sev.Color,
		Style:       r.theme.StyleFor(content.KindText, s.Status),
	}
}

// emptyNote is the theme's stand-in line for a section without comments.
func (r *Renderer) emptyNote(i int, s record.Section) content.TextBlock {
	return content.TextBlock{
		Section: i,
		Text:    r.theme.EmptySection,
		Style:   r.theme.StyleFor(content.KindText, s.Status),
	}
}

func (r *Renderer) image(ctx context.Context, pf *prefetcher, i int, s record.Section, m record.MediaReference) (content.ImageBlock, error) {
	blk := content.ImageBlock{
		Section: i,
		Ref:     m,
		Style:   r.theme.StyleFor(content.KindImage, s.Status),
	}
	box := r.theme.Image

	if m.Identity() == "" {
		// Video without a still: a blank frame carrying the play badge.
		blk.Width = box.Width
		blk.Height = min(box.Height, box.Width*videoAspect)
		return blk, nil
	}

	asset, err := pf.take(ctx)
	if err != nil && ctx.Err() != nil {
		return blk, ctx.Err()
	}
	if err == nil && asset == nil {
		err = &mediacache.FetchError{Identity: m.Identity(), Err: errNoAsset}
	}
	if err != nil {
		r.logger.Debug().Err(err).Str(logging.FieldIdentity, m.Identity()).Int("section", i).Msg("media placeholder")
		blk.Placeholder = true
		blk.Failure = err
		blk.Width = r.theme.Placeholder.Width
		blk.Height = r.theme.Placeholder.Height
		return blk, nil
	}

	blk.Asset = asset
	blk.Width, blk.Height = content.FitBox(float64(asset.Width), float64(asset.Height), box.Width, box.Height)
	return blk, nil
}
