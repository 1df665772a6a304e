package command

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/uiforge/pkg/scene"
)

var (
	// ErrUnknownProperty is returned for a property key with no accessor.
	ErrUnknownProperty = errors.New("unknown property")

	// ErrValueType is returned when a value does not match the type of the
	// property it is assigned to.
	ErrValueType = errors.New("value type does not match property")
)

// Property identifies an editable element property.
type Property string

const (
	PropName          Property = "name"
	PropText          Property = "text"
	PropFontSize      Property = "font_size"
	PropX             Property = "x"
	PropY             Property = "y"
	PropWidth         Property = "width"
	PropHeight        Property = "height"
	PropHAlign        Property = "h_align"
	PropVAlign        Property = "v_align"
	PropMarginLeft    Property = "margin.left"
	PropMarginTop     Property = "margin.top"
	PropMarginRight   Property = "margin.right"
	PropMarginBottom  Property = "margin.bottom"
	PropLocked        Property = "locked"
	PropAllowOverflow Property = "allow_overflow"
)

// ValueType tags the payload of a [Value].
type ValueType int

const (
	TypeNumber ValueType = iota
	TypeString
	TypeBool
	TypeAnchor
)

func (t ValueType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeBool:
		return "bool"
	case TypeAnchor:
		return "anchor"
	default:
		return "number"
	}
}

// Value is a typed property value.
type Value struct {
	typ    ValueType
	num    float64
	str    string
	flag   bool
	anchor scene.Anchor
}

func Number(v float64) Value           { return Value{typ: TypeNumber, num: v} }
func String(s string) Value            { return Value{typ: TypeString, str: s} }
func Bool(b bool) Value                { return Value{typ: TypeBool, flag: b} }
func AnchorValue(a scene.Anchor) Value { return Value{typ: TypeAnchor, anchor: a} }
func (v Value) Type() ValueType        { return v.typ }
func (v Value) Float() float64         { return v.num }
func (v Value) Str() string            { return v.str }
func (v Value) Bool() bool             { return v.flag }
func (v Value) Anchor() scene.Anchor   { return v.anchor }

// String formats the value for display.
func (v Value) String() string {
	switch v.typ {
	case TypeString:
		return strconv.Quote(v.str)
	case TypeBool:
		return strconv.FormatBool(v.flag)
	case TypeAnchor:
		return v.anchor.String()
	default:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	}
}

type accessor struct {
	typ ValueType
	get func(*scene.Element) Value
	set func(*scene.Element, Value)
}

func number(field func(*scene.Element) *float64) accessor {
	return accessor{
		typ: TypeNumber,
		get: func(e *scene.Element) Value { return Number(*field(e)) },
		set: func(e *scene.Element, v Value) { *field(e) = v.num },
	}
}

var properties = map[Property]accessor{
	PropName: {
		typ: TypeString,
		get: func(e *scene.Element) Value { return String(e.Name) },
		set: func(e *scene.Element, v Value) { e.Name = v.str },
	},
	PropText: {
		typ: TypeString,
		get: func(e *scene.Element) Value { return String(e.Text) },
		set: func(e *scene.Element, v Value) { e.Text = v.str },
	},
	PropFontSize:     number(func(e *scene.Element) *float64 { return &e.FontSize }),
	PropX:            number(func(e *scene.Element) *float64 { return &e.X }),
	PropY:            number(func(e *scene.Element) *float64 { return &e.Y }),
	PropWidth:        number(func(e *scene.Element) *float64 { return &e.Width }),
	PropHeight:       number(func(e *scene.Element) *float64 { return &e.Height }),
	PropMarginLeft:   number(func(e *scene.Element) *float64 { return &e.Margin.Left }),
	PropMarginTop:    number(func(e *scene.Element) *float64 { return &e.Margin.Top }),
	PropMarginRight:  number(func(e *scene.Element) *float64 { return &e.Margin.Right }),
	PropMarginBottom: number(func(e *scene.Element) *float64 { return &e.Margin.Bottom }),
	PropHAlign: {
		typ: TypeAnchor,
		get: func(e *scene.Element) Value { return AnchorValue(e.HAlign) },
		set: func(e *scene.Element, v Value) { e.HAlign = v.anchor },
	},
	PropVAlign: {
		typ: TypeAnchor,
		get: func(e *scene.Element) Value { return AnchorValue(e.VAlign) },
		set: func(e *scene.Element, v Value) { e.VAlign = v.anchor },
	},
	PropLocked: {
		typ: TypeBool,
		get: func(e *scene.Element) Value { return Bool(e.Locked) },
		set: func(e *scene.Element, v Value) { e.Locked = v.flag },
	},
	PropAllowOverflow: {
		typ: TypeBool,
		get: func(e *scene.Element) Value { return Bool(e.AllowOverflow) },
		set: func(e *scene.Element, v Value) { e.AllowOverflow = v.flag },
	},
}

// Properties returns every editable property key, sorted.
func Properties() []Property {
	keys := make([]Property, 0, len(properties))
	for k := range properties {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// TypeOf returns the value type of key.
func TypeOf(key Property) (ValueType, bool) {
	a, ok := properties[key]
	return a.typ, ok
}

// Get reads key from e.
func Get(e *scene.Element, key Property) (Value, error) {
	a, ok := properties[key]
	if !ok {
		return Value{}, fmt.Errorf("%w: %q", ErrUnknownProperty, key)
	}
	return a.get(e), nil
}

// ParseValue converts user input into a value of key's type. Anchors accept
// any name understood by [scene.ParseAnchor].
func ParseValue(key Property, s string) (Value, error) {
	a, ok := properties[key]
	if !ok {
		return Value{}, fmt.Errorf("%w: %q", ErrUnknownProperty, key)
	}
	s = strings.TrimSpace(s)
	switch a.typ {
	case TypeString:
		return String(s), nil
	case TypeBool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return Value{}, fmt.Errorf("%s: %w", key, err)
		}
		return Bool(b), nil
	case TypeAnchor:
		anchor, ok := scene.ParseAnchor(s)
		if !ok {
			return Value{}, fmt.Errorf("%s: unknown anchor %q", key, s)
		}
		return AnchorValue(anchor), nil
	default:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%s: %w", key, err)
		}
		return Number(f), nil
	}
}

// PropertyChange sets one property of one element.
type PropertyChange struct {
	elem          *scene.Element
	key           Property
	set           func(*scene.Element, Value)
	before, after Value
}

// NewPropertyChange returns a command setting key on e to v. The key and the
// value type are checked here; Execute and Undo cannot fail.
func NewPropertyChange(e *scene.Element, key Property, v Value) (*PropertyChange, error) {
	if e == nil {
		return nil, scene.ErrNilElement
	}
	a, ok := properties[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProperty, key)
	}
	if v.typ != a.typ {
		return nil, fmt.Errorf("%s: %w: got %s, want %s", key, ErrValueType, v.typ, a.typ)
	}
	if e.IsSystem {
		return nil, fmt.Errorf("set %s: %w", key, scene.ErrSystemElement)
	}
	return &PropertyChange{elem: e, key: key, set: a.set, before: a.get(e), after: v}, nil
}

func (c *PropertyChange) Execute()     { c.set(c.elem, c.after) }
func (c *PropertyChange) Undo()        { c.set(c.elem, c.before) }
func (c *PropertyChange) Name() string { return "set " + string(c.key) }

// Edit names one assignment of a [BatchPropertyChange].
type Edit struct {
	Element *scene.Element
	Key     Property
	Value   Value
}

// BatchPropertyChange applies several property edits as one undo step.
type BatchPropertyChange struct {
	changes []*PropertyChange
}

// NewBatchPropertyChange validates every edit and returns a command applying
// them in order.
func NewBatchPropertyChange(edits ...Edit) (*BatchPropertyChange, error) {
	if len(edits) == 0 {
		return nil, ErrNoElements
	}
	c := &BatchPropertyChange{changes: make([]*PropertyChange, 0, len(edits))}
	for _, ed := range edits {
		pc, err := NewPropertyChange(ed.Element, ed.Key, ed.Value)
		if err != nil {
			return nil, err
		}
		c.changes = append(c.changes, pc)
	}
	return c, nil
}

func (c *BatchPropertyChange) Execute() {
	for _, pc := range c.changes {
		pc.Execute()
	}
}

func (c *BatchPropertyChange) Undo() {
	for i := len(c.changes) - 1; i >= 0; i-- {
		c.changes[i].Undo()
	}
}

func (c *BatchPropertyChange) Name() string { return "set properties" }
