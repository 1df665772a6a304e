package command

import (
	"fmt"
	"slices"

	"github.com/matzehuels/uiforge/pkg/scene"
)

// CreateElement inserts a new element as the last child of its parent.
type CreateElement struct {
	g      *scene.Graph
	parent *scene.Element
	elem   *scene.Element
}

// NewCreate returns a command that appends the detached element e to
// parent's children, or to the root list when parent is nil.
func NewCreate(g *scene.Graph, parent, e *scene.Element) (*CreateElement, error) {
	if e == nil {
		return nil, scene.ErrNilElement
	}
	if g.IsAttached(e) {
		return nil, fmt.Errorf("create %s: %w", e.Name, scene.ErrAttached)
	}
	if e.IsSystem {
		return nil, fmt.Errorf("create %s: %w", e.Name, scene.ErrSystemElement)
	}
	if parent != nil && !g.IsAttached(parent) {
		return nil, fmt.Errorf("create %s under %s: %w", e.Name, parent.Name, scene.ErrDetached)
	}
	if err := checkTarget(g, parent, e); err != nil {
		return nil, err
	}
	return &CreateElement{g: g, parent: parent, elem: e}, nil
}

func (c *CreateElement) Execute() { must(c.g.Insert(c.parent, c.elem, -1)) }
func (c *CreateElement) Undo()    { mustRemove(c.g, c.elem) }
func (c *CreateElement) Name() string {
	return "create " + c.elem.Kind.String()
}

// Element returns the created element.
func (c *CreateElement) Element() *scene.Element { return c.elem }

// DeleteElement detaches an element and its subtree. The element is kept by
// the command so Undo can reinsert the same instance.
type DeleteElement struct {
	g      *scene.Graph
	elem   *scene.Element
	parent *scene.Element
	index  int
}

// NewDelete returns a command that removes e. The parent and index are
// captured now; Undo reinserts at that index, clamped to the current child
// count.
func NewDelete(g *scene.Graph, e *scene.Element) (*DeleteElement, error) {
	if err := checkAttached(g, e); err != nil {
		return nil, fmt.Errorf("delete: %w", err)
	}
	return &DeleteElement{g: g, elem: e, parent: e.Parent(), index: g.IndexOf(e)}, nil
}

func (c *DeleteElement) Execute() { mustRemove(c.g, c.elem) }
func (c *DeleteElement) Undo()    { must(c.g.Insert(c.parent, c.elem, c.index)) }
func (c *DeleteElement) Name() string {
	return "delete " + c.elem.Kind.String()
}

// NewDeleteMany deletes every element of elems. Elements are removed last
// sibling first so each captured index is still valid when its own delete
// runs, and undo restores them in ascending order. Elements nested under
// another member of elems are skipped; their ancestor's delete takes them
// along.
func NewDeleteMany(g *scene.Graph, elems []*scene.Element) (*Composite, error) {
	targets := rootsOf(g, elems)
	if len(targets) == 0 {
		return nil, ErrNoElements
	}
	order := documentOrder(g)
	slices.SortFunc(targets, func(a, b *scene.Element) int {
		return order[b] - order[a]
	})
	cmds := make([]Command, 0, len(targets))
	for _, e := range targets {
		d, err := NewDelete(g, e)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, d)
	}
	name := "delete"
	if len(cmds) > 1 {
		name = fmt.Sprintf("delete %d elements", len(cmds))
	}
	return NewComposite(name, cmds...), nil
}

// documentOrder maps each element to its pre-order position.
func documentOrder(g *scene.Graph) map[*scene.Element]int {
	all := g.All()
	order := make(map[*scene.Element]int, len(all))
	for i, e := range all {
		order[e] = i
	}
	return order
}

// rootsOf drops nil and duplicate entries and every element that has an
// ancestor in elems.
func rootsOf(g *scene.Graph, elems []*scene.Element) []*scene.Element {
	var out []*scene.Element
	for _, e := range elems {
		if e == nil || slices.Contains(out, e) {
			continue
		}
		nested := false
		for _, o := range elems {
			if o != e && g.IsDescendantOf(o, e) {
				nested = true
				break
			}
		}
		if !nested {
			out = append(out, e)
		}
	}
	return out
}
