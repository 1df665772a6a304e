package document

import (
	"fmt"
	"math"

	"github.com/matzehuels/uiforge/pkg/arrange"
	"github.com/matzehuels/uiforge/pkg/command"
	uferrors "github.com/matzehuels/uiforge/pkg/errors"
	"github.com/matzehuels/uiforge/pkg/layout"
	"github.com/matzehuels/uiforge/pkg/planner"
	"github.com/matzehuels/uiforge/pkg/scene"
)

// Create adds a new element of kind at the snapped local position at inside
// parent (the top level when parent is nil). The element gets the next
// default name, a parent-relative default size (measured for text kinds),
// and becomes the selection.
func (d *Document) Create(kind scene.Kind, parent *scene.Element, at scene.Point) (*scene.Element, error) {
	if parent == nil {
		parent = d.root
	}
	e := scene.NewElement(kind, d.names.Next(kind))
	if kind.IsText() {
		e.Text = e.Name
	}
	at = d.snap.Point(at)
	e.Margin = scene.Margin{Left: at.X, Top: at.Y}
	d.translator.ImportElement(e, d.layoutParent(parent))

	c, err := command.NewCreate(d.graph, parent, e)
	if err != nil {
		return nil, err
	}
	if err := d.execute(c); err != nil {
		return nil, err
	}
	d.sel.Set(e)
	return e, nil
}

// Delete removes the root selection.
func (d *Document) Delete() error {
	targets, err := d.targets()
	if err != nil {
		return err
	}
	c, err := command.NewDeleteMany(d.graph, targets)
	if err != nil {
		return err
	}
	if err := d.execute(c); err != nil {
		return err
	}
	d.sel.Prune(d.graph)
	return nil
}

// MoveBy moves the root selection by (dx, dy). Each resulting position is
// snapped.
func (d *Document) MoveBy(dx, dy float64) error {
	targets, err := d.targets()
	if err != nil {
		return err
	}
	changes := make([]command.PointChange, len(targets))
	for i, e := range targets {
		from := e.Position()
		changes[i] = command.PointChange{
			Element: e,
			From:    from,
			To:      d.snap.Point(from.Add(scene.Point{X: dx, Y: dy})),
		}
	}
	c, err := command.NewBatchMove(d.graph, changes)
	if err != nil {
		return err
	}
	return d.execute(c)
}

// Resize sets e's local bounds. Sizes below the layout minimum are raised
// to it.
func (d *Document) Resize(e *scene.Element, r scene.Rect) error {
	if e.Locked {
		return uferrors.New(uferrors.ErrCodeInvalidInput, "%s is locked", e.Name)
	}
	r.Width = max(r.Width, layout.MinSize)
	r.Height = max(r.Height, layout.MinSize)
	c, err := command.NewResize(d.graph, e, r)
	if err != nil {
		return err
	}
	return d.execute(c)
}

// Drop reparents the root selection relative to target as the hierarchy
// view would: pointerY is measured from the top of target's row of the
// given height. A rejected plan is returned together with ErrInvalidDrop and
// nothing changes.
func (d *Document) Drop(target *scene.Element, pointerY, height float64) (planner.Plan, error) {
	dragged := d.sel.Roots()
	if len(dragged) == 0 {
		return planner.Plan{}, ErrEmptySelection
	}
	plan := planner.Compute(d.graph, dragged, target, pointerY, height)
	if !plan.Valid {
		return plan, fmt.Errorf("%w: %s", ErrInvalidDrop, plan.Reason)
	}
	c, err := command.NewReparentMany(d.graph, dragged, plan.Parent, plan.Index)
	if err != nil {
		return plan, err
	}
	return plan, d.execute(c)
}

// BringToFront moves the root selection to the end of its sibling lists.
func (d *Document) BringToFront() error { return d.zorder(true) }

// SendToBack moves the root selection to the start of its sibling lists.
func (d *Document) SendToBack() error { return d.zorder(false) }

func (d *Document) zorder(front bool) error {
	targets, err := d.targets()
	if err != nil {
		return err
	}
	var c *command.ZOrder
	if front {
		c, err = command.NewBringToFront(d.graph, targets)
	} else {
		c, err = command.NewSendToBack(d.graph, targets)
	}
	if err != nil {
		return err
	}
	return d.execute(c)
}

// Group wraps the root selection in a new container and selects it.
func (d *Document) Group() (*scene.Element, error) {
	targets, err := d.targets()
	if err != nil {
		return nil, err
	}
	container := scene.NewElement(scene.KindContainer, d.names.Next(scene.KindContainer))
	c, err := command.NewGroup(d.graph, d.sel, targets, container)
	if err != nil {
		return nil, err
	}
	if err := d.execute(c); err != nil {
		return nil, err
	}
	return container, nil
}

// Ungroup dissolves the primary selection and selects its former children.
func (d *Document) Ungroup() error {
	container := d.sel.Primary()
	if container == nil {
		return ErrEmptySelection
	}
	if container.ChildCount() == 0 {
		return uferrors.New(uferrors.ErrCodeInvalidInput, "%s has no children", container.Name)
	}
	c, err := command.NewUngroup(d.graph, d.sel, container)
	if err != nil {
		return err
	}
	return d.execute(c)
}

// Align applies an arrangement operation to the root selection.
func (d *Document) Align(op arrange.Op) error {
	roots := d.sel.Roots()
	if len(roots) == 0 {
		return ErrEmptySelection
	}
	c, err := arrange.Plan(d.graph, op, roots)
	if err != nil {
		return err
	}
	return d.execute(c)
}

// SetProperty assigns v to key on every selected element as one undo step.
func (d *Document) SetProperty(key command.Property, v command.Value) error {
	elems := d.sel.Elements()
	if len(elems) == 0 {
		return ErrEmptySelection
	}
	if key == command.PropName {
		if err := uferrors.ValidateElementName(v.Str()); err != nil {
			return err
		}
	}
	if layoutProperty(key) {
		return d.setLayoutProperty(elems, key, v)
	}
	edits := make([]command.Edit, len(elems))
	for i, e := range elems {
		edits[i] = command.Edit{Element: e, Key: key, Value: v}
	}
	c, err := command.NewBatchPropertyChange(edits...)
	if err != nil {
		return uferrors.Wrap(uferrors.ErrCodeInvalidProperty, err, "set %s", key)
	}
	return d.execute(c)
}

// layoutProperty reports whether key feeds the translator rather than the
// geometry directly, so the element has to be laid out again.
func layoutProperty(key command.Property) bool {
	switch key {
	case command.PropMarginLeft, command.PropMarginTop, command.PropMarginRight, command.PropMarginBottom,
		command.PropText, command.PropFontSize:
		return true
	}
	return false
}

// setLayoutProperty assigns key on every element together with the bounds
// the new layout hints produce, as one undo step.
func (d *Document) setLayoutProperty(elems []*scene.Element, key command.Property, v command.Value) error {
	var cmds []command.Command
	for _, e := range elems {
		pc, err := command.NewPropertyChange(e, key, v)
		if err != nil {
			return uferrors.Wrap(uferrors.ErrCodeInvalidProperty, err, "set %s", key)
		}
		cmds = append(cmds, pc)

		to, ok, err := d.relayout(e, key, v)
		if err != nil {
			return err
		}
		if ok && to != e.Bounds() {
			rc, err := command.NewResize(d.graph, e, to)
			if err != nil {
				return err
			}
			cmds = append(cmds, rc)
		}
	}
	return d.execute(command.NewComposite("set "+string(key), cmds...))
}

// relayout returns e's bounds after key is set to v. Margins are applied to
// the layout derived from the current geometry; text and font size
// re-measure text kinds on axes the saved layout left to the content. ok is
// false when the geometry does not depend on key.
func (d *Document) relayout(e *scene.Element, key command.Property, v command.Value) (to scene.Rect, ok bool, err error) {
	p := d.layoutParent(e.Parent())
	t := layout.Translator{Measurer: d.translator.Measurer, Mode: layout.ExportPreserve}
	l := t.ExportElement(e, p)
	content := layout.Content{Kind: e.Kind, Text: e.Text, FontSize: e.FontSize}

	switch key {
	case command.PropText, command.PropFontSize:
		if !e.Kind.IsText() || t.Measurer == nil {
			return scene.Rect{}, false, nil
		}
		if key == command.PropText {
			content.Text = v.Str()
		} else {
			content.FontSize = v.Float()
		}
		if e.ExplicitWidth == nil && l.HAlign != scene.AnchorStretch {
			l.Width = nil
		}
		if e.ExplicitHeight == nil && l.VAlign != scene.AnchorStretch {
			l.Height = nil
		}
		return t.Import(l, content, p), true, nil
	}

	side := marginSide(&l.Margin, key)
	*side = v.Float()
	to = t.Import(l, content, p)

	// A margin the anchor does not read would be recomputed from the
	// geometry on the next save.
	got := t.Export(to, l, p)
	if math.Abs(*marginSide(&got.Margin, key)-v.Float()) > marginTolerance {
		return scene.Rect{}, false, uferrors.New(uferrors.ErrCodeInvalidProperty,
			"%s of %s has no effect with h_align %s, v_align %s", key, e.Name, e.HAlign, e.VAlign)
	}
	return to, true, nil
}

const marginTolerance = 1e-6

func marginSide(m *scene.Margin, key command.Property) *float64 {
	switch key {
	case command.PropMarginTop:
		return &m.Top
	case command.PropMarginRight:
		return &m.Right
	case command.PropMarginBottom:
		return &m.Bottom
	default:
		return &m.Left
	}
}

// SetPropertyString parses s for key and assigns it like SetProperty.
func (d *Document) SetPropertyString(key command.Property, s string) error {
	v, err := command.ParseValue(key, s)
	if err != nil {
		return uferrors.Wrap(uferrors.ErrCodeInvalidProperty, err, "set %s", key)
	}
	return d.SetProperty(key, v)
}
