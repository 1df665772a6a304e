package layout

import (
	"github.com/matzehuels/uiforge/pkg/scene"
)

// MarginRecord is the saved margin quadruple.
type MarginRecord struct {
	Left   float64 `json:"left" toml:"left"`
	Top    float64 `json:"top" toml:"top"`
	Right  float64 `json:"right" toml:"right"`
	Bottom float64 `json:"bottom" toml:"bottom"`
}

// Record is the flat property record of one element as exchanged with the
// file loader and saver. Parent linkage is by id; an empty ParentID denotes a
// top-level element.
type Record struct {
	ID       string `json:"id" toml:"id"`
	Name     string `json:"name" toml:"name"`
	Kind     string `json:"kind" toml:"kind"`
	ParentID string `json:"parent,omitempty" toml:"parent,omitempty"`

	HAlign string        `json:"h_align,omitempty" toml:"h_align,omitempty"`
	VAlign string        `json:"v_align,omitempty" toml:"v_align,omitempty"`
	Margin *MarginRecord `json:"margin,omitempty" toml:"margin,omitempty"`
	Width  *float64      `json:"width,omitempty" toml:"width,omitempty"`
	Height *float64      `json:"height,omitempty" toml:"height,omitempty"`

	// ParentWidth and ParentHeight are the parent dimensions at save time.
	// Zero means unknown.
	ParentWidth  float64 `json:"parent_width,omitempty" toml:"parent_width,omitempty"`
	ParentHeight float64 `json:"parent_height,omitempty" toml:"parent_height,omitempty"`

	Text     string  `json:"text,omitempty" toml:"text,omitempty"`
	FontSize float64 `json:"font_size,omitempty" toml:"font_size,omitempty"`

	Locked        bool `json:"locked,omitempty" toml:"locked,omitempty"`
	AllowOverflow bool `json:"allow_overflow,omitempty" toml:"allow_overflow,omitempty"`
}

// Defaults lists the fields of a record that were missing or unrecognized
// and replaced by defaults.
type Defaults struct {
	Kind   bool
	HAlign bool
	VAlign bool
	Margin bool
}

// Any reports whether any default was applied.
func (d Defaults) Any() bool { return d.Kind || d.HAlign || d.VAlign || d.Margin }

// Element builds a detached element from r. Geometry is not computed; run
// [Translator.ImportElement] once the parent is known. Missing alignment
// becomes Stretch and a missing margin becomes zero.
func (r Record) Element() (*scene.Element, Defaults) {
	var d Defaults
	kind, ok := scene.ParseKind(r.Kind)
	d.Kind = !ok

	e := scene.NewElement(kind, r.Name)
	if r.ID != "" {
		e.ID = r.ID
	}
	e.HAlign, ok = scene.ParseAnchor(r.HAlign)
	d.HAlign = !ok
	e.VAlign, ok = scene.ParseAnchor(r.VAlign)
	d.VAlign = !ok
	if r.Margin != nil {
		e.Margin = scene.Margin{Left: r.Margin.Left, Top: r.Margin.Top, Right: r.Margin.Right, Bottom: r.Margin.Bottom}
	} else {
		d.Margin = true
	}
	if r.Width != nil {
		e.ExplicitWidth = ptr(*r.Width)
	}
	if r.Height != nil {
		e.ExplicitHeight = ptr(*r.Height)
	}
	e.Text = r.Text
	e.FontSize = r.FontSize
	e.Locked = r.Locked
	e.AllowOverflow = r.AllowOverflow
	return e, d
}

// RecordOf builds the saved record of e from its exported layout.
func RecordOf(e *scene.Element, l Layout, p Parent, parentID string) Record {
	r := Record{
		ID:            e.ID,
		Name:          e.Name,
		Kind:          e.Kind.String(),
		ParentID:      parentID,
		HAlign:        l.HAlign.Horizontal(),
		VAlign:        l.VAlign.Vertical(),
		Margin:        &MarginRecord{Left: l.Margin.Left, Top: l.Margin.Top, Right: l.Margin.Right, Bottom: l.Margin.Bottom},
		ParentWidth:   p.Width,
		ParentHeight:  p.Height,
		Text:          e.Text,
		FontSize:      e.FontSize,
		Locked:        e.Locked,
		AllowOverflow: e.AllowOverflow,
	}
	if l.Width != nil {
		r.Width = ptr(*l.Width)
	}
	if l.Height != nil {
		r.Height = ptr(*l.Height)
	}
	return r
}
