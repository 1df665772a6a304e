package command

import (
	"fmt"
	"slices"

	"github.com/matzehuels/uiforge/pkg/coords"
	"github.com/matzehuels/uiforge/pkg/scene"
	"github.com/matzehuels/uiforge/pkg/selection"
)

// Group wraps a root selection in a new container sized to the members'
// world bounding box. Members keep their world positions.
type Group struct {
	g         *scene.Graph
	sel       *selection.Model
	container *scene.Element
	members   []slot // document order
	parent    *scene.Element
	index     int
	previous  []*scene.Element
}

// NewGroup returns a command grouping elems under container. A nil container
// is replaced by a new container element named "Group".
//
// The container is inserted into the parent of the first member in document
// order, at the smallest original index among the members sharing that
// parent. When sel is non-nil the container becomes the selection and undo
// restores the previous one.
func NewGroup(g *scene.Graph, sel *selection.Model, elems []*scene.Element, container *scene.Element) (*Group, error) {
	if len(elems) == 0 {
		return nil, ErrNoElements
	}
	if container == nil {
		container = scene.NewElement(scene.KindContainer, "Group")
	}
	if g.IsAttached(container) {
		return nil, fmt.Errorf("group: container %s: %w", container.Name, scene.ErrAttached)
	}
	if container.IsSystem {
		return nil, fmt.Errorf("group: container: %w", scene.ErrSystemElement)
	}

	order := documentOrder(g)
	c := &Group{g: g, sel: sel, container: container}
	for _, e := range elems {
		if err := checkAttached(g, e); err != nil {
			return nil, fmt.Errorf("group: %w", err)
		}
		for _, o := range elems {
			if o != e && g.IsDescendantOf(o, e) {
				return nil, fmt.Errorf("group %s: %w", e.Name, ErrNotRootSelection)
			}
		}
		if slices.ContainsFunc(c.members, func(s slot) bool { return s.elem == e }) {
			continue
		}
		c.members = append(c.members, slotOf(g, e))
	}
	slices.SortFunc(c.members, func(a, b slot) int {
		return order[a.elem] - order[b.elem]
	})

	c.parent = c.members[0].parent
	c.index = c.members[0].index
	for _, m := range c.members {
		if m.parent == c.parent && m.index < c.index {
			c.index = m.index
		}
	}
	if sel != nil {
		c.previous = sel.Elements()
	}
	return c, nil
}

// Container returns the grouping container.
func (c *Group) Container() *scene.Element { return c.container }

func (c *Group) Execute() {
	worlds := make([]scene.Point, len(c.members))
	box := coords.WorldBounds(c.members[0].elem)
	for i, m := range c.members {
		b := coords.WorldBounds(m.elem)
		worlds[i] = b.Origin()
		box = box.Union(b)
	}
	local := coords.LocalFromWorld(box.Origin(), c.parent)

	for i := len(c.members) - 1; i >= 0; i-- {
		mustRemove(c.g, c.members[i].elem)
	}
	must(c.g.Insert(c.parent, c.container, c.index))
	c.g.SetBounds(c.container, scene.Rect{X: local.X, Y: local.Y, Width: box.Width, Height: box.Height})
	for i, m := range c.members {
		must(c.g.Insert(c.container, m.elem, -1))
		c.g.SetPosition(m.elem, worlds[i].Sub(box.Origin()))
	}
	if c.sel != nil {
		c.sel.Set(c.container)
	}
}

func (c *Group) Undo() {
	for i := len(c.members) - 1; i >= 0; i-- {
		mustRemove(c.g, c.members[i].elem)
	}
	mustRemove(c.g, c.container)
	for _, m := range byOldIndex(c.members) {
		must(c.g.Insert(m.parent, m.elem, m.index))
	}
	for _, m := range c.members {
		c.g.SetPosition(m.elem, m.pos)
	}
	if c.sel != nil {
		c.sel.Set(c.previous...)
	}
}

func (c *Group) Name() string { return "group" }

// Ungroup dissolves a container, moving its children into the container's
// parent at the container's position in the sibling list. Children keep
// their world positions.
type Ungroup struct {
	g         *scene.Graph
	sel       *selection.Model
	container slot
	children  []slot
	previous  []*scene.Element
}

// NewUngroup returns a command dissolving container. When sel is non-nil the
// former children become the selection.
func NewUngroup(g *scene.Graph, sel *selection.Model, container *scene.Element) (*Ungroup, error) {
	if err := checkAttached(g, container); err != nil {
		return nil, fmt.Errorf("ungroup: %w", err)
	}
	c := &Ungroup{g: g, sel: sel, container: slotOf(g, container)}
	for _, ch := range container.Children() {
		c.children = append(c.children, slotOf(g, ch))
	}
	if sel != nil {
		c.previous = sel.Elements()
	}
	return c, nil
}

func (c *Ungroup) Execute() {
	worlds := make([]scene.Point, len(c.children))
	for i, ch := range c.children {
		worlds[i] = coords.WorldPosition(ch.elem)
	}
	parent := c.container.parent

	mustRemove(c.g, c.container.elem)
	for i := len(c.children) - 1; i >= 0; i-- {
		mustRemove(c.g, c.children[i].elem)
	}
	elems := make([]*scene.Element, len(c.children))
	for i, ch := range c.children {
		must(c.g.Insert(parent, ch.elem, c.container.index+i))
		elems[i] = ch.elem
	}
	for i, ch := range c.children {
		c.g.SetPosition(ch.elem, coords.LocalFromWorld(worlds[i], parent))
	}
	if c.sel != nil {
		c.sel.Set(elems...)
	}
}

func (c *Ungroup) Undo() {
	for i := len(c.children) - 1; i >= 0; i-- {
		mustRemove(c.g, c.children[i].elem)
	}
	must(c.g.Insert(c.container.parent, c.container.elem, c.container.index))
	for _, ch := range c.children {
		must(c.g.Insert(c.container.elem, ch.elem, -1))
		c.g.SetPosition(ch.elem, ch.pos)
	}
	if c.sel != nil {
		c.sel.Set(c.previous...)
	}
}

func (c *Ungroup) Name() string { return "ungroup" }
