package scene

import (
	"strings"

	"github.com/google/uuid"
)

// Kind identifies the widget type of an element. Behavior elsewhere keys off
// this tag (text measurement, canvas layout, grouping containers).
type Kind int

const (
	KindContainer Kind = iota
	KindText
	KindButton
	KindImage
	KindInputField
	KindSlider
	KindToggle
	KindScrollRegion
	KindModal
	KindGrid
	KindDecorator
	// KindCanvas positions its children absolutely: margin left/top is the
	// literal position regardless of alignment.
	KindCanvas
)

var kindNames = map[Kind]string{
	KindContainer:    "container",
	KindText:         "text",
	KindButton:       "button",
	KindImage:        "image",
	KindInputField:   "input-field",
	KindSlider:       "slider",
	KindToggle:       "toggle",
	KindScrollRegion: "scroll-region",
	KindModal:        "modal",
	KindGrid:         "grid",
	KindDecorator:    "decorator",
	KindCanvas:       "canvas",
}

// Kinds returns every known kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames))
	for k := KindContainer; k <= KindCanvas; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// String returns the lowercase tag used in saved records.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Label returns the display prefix used for generated names ("InputField").
func (k Kind) Label() string {
	parts := strings.Split(k.String(), "-")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "")
}

// IsText reports whether the element's natural size comes from its text.
func (k Kind) IsText() bool { return k == KindText || k == KindButton }

// ParseKind converts a record tag into a Kind. Matching ignores case and
// accepts both "input-field" and "inputfield" spellings.
func ParseKind(s string) (Kind, bool) {
	norm := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", "-"))
	for k, name := range kindNames {
		if name == norm || strings.ReplaceAll(name, "-", "") == norm {
			return k, true
		}
	}
	return KindContainer, false
}

// Anchor is the engine-side alignment rule for one axis.
// Start means Left (horizontal) or Top (vertical); End means Right or Bottom.
type Anchor int

const (
	AnchorStretch Anchor = iota
	AnchorStart
	AnchorCenter
	AnchorEnd
)

// Horizontal returns the horizontal tag (Left, Center, Right, Stretch).
func (a Anchor) Horizontal() string {
	switch a {
	case AnchorStart:
		return "Left"
	case AnchorCenter:
		return "Center"
	case AnchorEnd:
		return "Right"
	default:
		return "Stretch"
	}
}

// Vertical returns the vertical tag (Top, Center, Bottom, Stretch).
func (a Anchor) Vertical() string {
	switch a {
	case AnchorStart:
		return "Top"
	case AnchorCenter:
		return "Center"
	case AnchorEnd:
		return "Bottom"
	default:
		return "Stretch"
	}
}

// String returns the axis-neutral anchor name.
func (a Anchor) String() string {
	switch a {
	case AnchorStart:
		return "start"
	case AnchorCenter:
		return "center"
	case AnchorEnd:
		return "end"
	default:
		return "stretch"
	}
}

// ParseAnchor converts an alignment tag of either axis into an Anchor.
// Empty or unrecognized tags yield AnchorStretch and ok=false.
func ParseAnchor(s string) (a Anchor, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "top", "start":
		return AnchorStart, true
	case "center", "centre", "middle":
		return AnchorCenter, true
	case "right", "bottom", "end":
		return AnchorEnd, true
	case "stretch":
		return AnchorStretch, true
	default:
		return AnchorStretch, false
	}
}

// Margin is the four-sided offset of the engine layout model.
type Margin struct {
	Left, Top, Right, Bottom float64
}

// Point is a position in some coordinate space.
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Rect is an axis-aligned box.
type Rect struct {
	X, Y, Width, Height float64
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{r.X, r.Y} }

// Right returns the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Union returns the smallest rect containing r and o.
func (r Rect) Union(o Rect) Rect {
	x := min(r.X, o.X)
	y := min(r.Y, o.Y)
	return Rect{
		X:      x,
		Y:      y,
		Width:  max(r.Right(), o.Right()) - x,
		Height: max(r.Bottom(), o.Bottom()) - y,
	}
}

// Element is one widget in the hierarchy.
//
// Geometry (X, Y, Width, Height) is always local to the parent and is the
// editor's canonical representation. HAlign, VAlign, Margin and the explicit
// sizes mirror the engine model and are only read by the layout translator
// and the persistence boundary.
//
// The zero value is usable as a detached element with no id; prefer
// [NewElement].
type Element struct {
	ID   string
	Name string
	Kind Kind

	X, Y, Width, Height float64

	HAlign Anchor
	VAlign Anchor
	Margin Margin
	// ExplicitWidth and ExplicitHeight are nil when the saved layout leaves
	// the size to the engine.
	ExplicitWidth  *float64
	ExplicitHeight *float64

	Text     string
	FontSize float64

	ZIndex int

	IsSystem      bool
	Locked        bool
	Selected      bool
	AllowOverflow bool

	parent   *Element
	children []*Element
}

// NewElement creates a detached element with a fresh id.
func NewElement(kind Kind, name string) *Element {
	return &Element{
		ID:     uuid.NewString(),
		Name:   name,
		Kind:   kind,
		HAlign: AnchorStart,
		VAlign: AnchorStart,
	}
}

// NewSystemRoot creates the hidden root container of a document.
func NewSystemRoot(width, height float64) *Element {
	e := NewElement(KindContainer, "__root__")
	e.IsSystem = true
	e.Width = width
	e.Height = height
	e.HAlign = AnchorStretch
	e.VAlign = AnchorStretch
	return e
}

// Parent returns the owning element, or nil for roots and detached elements.
func (e *Element) Parent() *Element { return e.parent }

// Children returns the ordered child list. The slice must not be modified.
func (e *Element) Children() []*Element { return e.children }

// ChildCount returns the number of direct children.
func (e *Element) ChildCount() int { return len(e.children) }

// Bounds returns the local geometry.
func (e *Element) Bounds() Rect {
	return Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
}

// Position returns the local origin.
func (e *Element) Position() Point { return Point{e.X, e.Y} }

// Walk visits e and its descendants in pre-order. Returning false from fn
// skips the element's subtree.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.children {
		c.Walk(fn)
	}
}

// Clone returns a deep copy of e and its subtree. Ids are preserved; the
// copy is detached.
func (e *Element) Clone() *Element {
	c := *e
	c.parent = nil
	c.children = nil
	if e.ExplicitWidth != nil {
		w := *e.ExplicitWidth
		c.ExplicitWidth = &w
	}
	if e.ExplicitHeight != nil {
		h := *e.ExplicitHeight
		c.ExplicitHeight = &h
	}
	for _, child := range e.children {
		cc := child.Clone()
		cc.parent = &c
		c.children = append(c.children, cc)
	}
	return &c
}
