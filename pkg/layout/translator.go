package layout

import (
	"time"

	"github.com/matzehuels/uiforge/pkg/observability"
	"github.com/matzehuels/uiforge/pkg/scene"
)

// Sizing constants of the engine layout model.
const (
	// MinSize is the smallest size produced for degenerate input.
	MinSize = 20.0
	// MaxDefaultSize caps the parent-relative default size.
	MaxDefaultSize = 100.0
	// DefaultFraction is the share of the parent extent used when no size is
	// given.
	DefaultFraction = 0.8

	// TextPaddingX and TextPaddingY are added on each side of measured text.
	TextPaddingX = 8.0
	TextPaddingY = 4.0
)

// ExportMode selects how [Translator.Export] encodes positions.
type ExportMode int

const (
	// ExportPreserve keeps the element's alignment and derives a complete
	// margin that reproduces the current geometry under that alignment.
	ExportPreserve ExportMode = iota
	// ExportAbsolute always emits Left/Top with margin (x, y, 0, 0).
	ExportAbsolute
)

// Layout is the engine-side placement of one element.
type Layout struct {
	HAlign scene.Anchor
	VAlign scene.Anchor
	Margin scene.Margin
	// Width and Height are nil when the size is left to the layout model.
	Width  *float64
	Height *float64
}

// Content carries the element properties that influence its natural size.
type Content struct {
	Kind     scene.Kind
	Text     string
	FontSize float64
}

// Parent describes the container an element is laid out in.
type Parent struct {
	Kind          scene.Kind
	Width, Height float64
}

// ParentOf returns the layout parent of e: its parent element, or the given
// canvas size for top-level elements (including children of the system root).
func ParentOf(e *scene.Element, canvasWidth, canvasHeight float64) Parent {
	p := e.Parent()
	if p == nil || p.IsSystem {
		return Parent{Kind: scene.KindContainer, Width: canvasWidth, Height: canvasHeight}
	}
	return Parent{Kind: p.Kind, Width: p.Width, Height: p.Height}
}

// Translator converts between [Layout] and absolute geometry.
// The zero value is usable: it measures no text and exports in
// [ExportPreserve] mode.
type Translator struct {
	// Measurer sizes text kinds without an explicit size. May be nil.
	Measurer TextMeasurer
	// Mode selects the export encoding.
	Mode ExportMode
}

// New creates a translator using m for text measurement.
func New(m TextMeasurer) *Translator {
	return &Translator{Measurer: m}
}

// DefaultSize returns the parent-relative size used when none is given.
func DefaultSize(extent float64) float64 {
	return clamp(DefaultFraction*max(extent, 0), MinSize, MaxDefaultSize)
}

// Import computes local geometry from an engine layout.
func (t *Translator) Import(l Layout, c Content, p Parent) scene.Rect {
	start := time.Now()
	w, h := l.Width, l.Height
	if c.Kind.IsText() && (w == nil || h == nil) {
		if mw, mh, ok := t.measure(c); ok {
			if w == nil && l.HAlign != scene.AnchorStretch {
				w = &mw
			}
			if h == nil && l.VAlign != scene.AnchorStretch {
				h = &mh
			}
		}
	}

	var r scene.Rect
	if p.Kind == scene.KindCanvas {
		r = scene.Rect{
			X:      l.Margin.Left,
			Y:      l.Margin.Top,
			Width:  sizeOr(w, p.Width),
			Height: sizeOr(h, p.Height),
		}
	} else {
		r.X, r.Width = importAxis(l.HAlign, l.Margin.Left, l.Margin.Right, w, p.Width)
		r.Y, r.Height = importAxis(l.VAlign, l.Margin.Top, l.Margin.Bottom, h, p.Height)
	}
	observability.Layout().OnImport(c.Kind.String(), time.Since(start))
	return r
}

// Export computes the engine layout that reproduces r inside p. The
// alignment is taken from align; only its anchors are read.
func (t *Translator) Export(r scene.Rect, align Layout, p Parent) Layout {
	start := time.Now()
	defer func() { observability.Layout().OnExport(t.Mode == ExportAbsolute, time.Since(start)) }()

	if p.Kind == scene.KindCanvas || t.Mode == ExportAbsolute {
		h, v := align.HAlign, align.VAlign
		if t.Mode == ExportAbsolute {
			h, v = scene.AnchorStart, scene.AnchorStart
		}
		return Layout{
			HAlign: h,
			VAlign: v,
			Margin: scene.Margin{Left: r.X, Top: r.Y},
			Width:  ptr(r.Width),
			Height: ptr(r.Height),
		}
	}

	out := Layout{HAlign: align.HAlign, VAlign: align.VAlign}
	out.Margin.Left, out.Margin.Right, out.Width = exportAxis(align.HAlign, r.X, r.Width, p.Width)
	out.Margin.Top, out.Margin.Bottom, out.Height = exportAxis(align.VAlign, r.Y, r.Height, p.Height)
	return out
}

// ImportElement derives e's geometry from its layout hints.
func (t *Translator) ImportElement(e *scene.Element, p Parent) {
	r := t.Import(LayoutOf(e), Content{Kind: e.Kind, Text: e.Text, FontSize: e.FontSize}, p)
	e.X, e.Y, e.Width, e.Height = r.X, r.Y, r.Width, r.Height
}

// ExportElement returns the engine layout for e's current geometry.
func (t *Translator) ExportElement(e *scene.Element, p Parent) Layout {
	return t.Export(e.Bounds(), LayoutOf(e), p)
}

// LayoutOf returns the layout hints stored on e.
func LayoutOf(e *scene.Element) Layout {
	return Layout{
		HAlign: e.HAlign,
		VAlign: e.VAlign,
		Margin: e.Margin,
		Width:  e.ExplicitWidth,
		Height: e.ExplicitHeight,
	}
}

func (t *Translator) measure(c Content) (w, h float64, ok bool) {
	if t.Measurer == nil {
		return 0, 0, false
	}
	w, h = t.Measurer.Measure(c.Text, c.FontSize)
	return w + 2*TextPaddingX, h + 2*TextPaddingY, true
}

func importAxis(a scene.Anchor, lead, trail float64, explicit *float64, extent float64) (pos, size float64) {
	extent = max(extent, 0)
	switch a {
	case scene.AnchorEnd:
		size = sizeOr(explicit, extent)
		return extent - trail - size, size
	case scene.AnchorCenter:
		size = sizeOr(explicit, extent)
		return lead + (extent-size-lead-trail)/2, size
	case scene.AnchorStretch:
		if explicit != nil {
			return lead, explicitSize(*explicit)
		}
		size = extent - lead - trail
		if size < MinSize {
			size = DefaultSize(extent)
		}
		return lead, size
	default:
		return lead, sizeOr(explicit, extent)
	}
}

// stretchSlack keeps an explicit size on stretch axes near MinSize, where
// rounding in extent-lead-trail could fall below it and import the default.
const stretchSlack = 1e-6

func exportAxis(a scene.Anchor, pos, size, extent float64) (lead, trail float64, explicit *float64) {
	lead = pos
	trail = max(extent, 0) - pos - size
	if a == scene.AnchorStretch && size >= MinSize+stretchSlack {
		return lead, trail, nil
	}
	return lead, trail, ptr(size)
}

func sizeOr(explicit *float64, extent float64) float64 {
	if explicit != nil {
		return explicitSize(*explicit)
	}
	return DefaultSize(extent)
}

func explicitSize(v float64) float64 {
	if v <= 0 {
		return MinSize
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}

func ptr(v float64) *float64 { return &v }
