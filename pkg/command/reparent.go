package command

import (
	"fmt"
	"slices"

	"github.com/matzehuels/uiforge/pkg/coords"
	"github.com/matzehuels/uiforge/pkg/scene"
)

// Reparent moves elements to a new parent without changing where they appear
// on screen.
type Reparent struct {
	g         *scene.Graph
	entries   []slot
	newParent *scene.Element
	newIndex  int
}

// slot is an element's place in the hierarchy before a command ran.
type slot struct {
	elem   *scene.Element
	parent *scene.Element
	index  int
	pos    scene.Point
}

func slotOf(g *scene.Graph, e *scene.Element) slot {
	return slot{elem: e, parent: e.Parent(), index: g.IndexOf(e), pos: e.Position()}
}

// NewReparent returns a command that moves e to position index of
// newParent's children (the root list when newParent is nil). A negative
// index appends.
//
// index is interpreted after e has been detached: when e moves within its
// current parent, positions past e's old slot are one lower than before.
func NewReparent(g *scene.Graph, e, newParent *scene.Element, index int) (*Reparent, error) {
	return NewReparentMany(g, []*scene.Element{e}, newParent, index)
}

// NewReparentMany moves every element of elems, keeping their order, into
// consecutive slots of newParent starting at index. index is interpreted
// with all of elems detached, the convention the drop planner uses.
func NewReparentMany(g *scene.Graph, elems []*scene.Element, newParent *scene.Element, index int) (*Reparent, error) {
	if len(elems) == 0 {
		return nil, ErrNoElements
	}
	if newParent != nil && !g.IsAttached(newParent) {
		return nil, fmt.Errorf("reparent into %s: %w", newParent.Name, scene.ErrDetached)
	}
	c := &Reparent{g: g, newParent: newParent, newIndex: index}
	for _, e := range elems {
		if err := checkAttached(g, e); err != nil {
			return nil, fmt.Errorf("reparent: %w", err)
		}
		if err := checkTarget(g, newParent, e); err != nil {
			return nil, fmt.Errorf("reparent: %w", err)
		}
		for _, o := range elems {
			if o != e && g.IsDescendantOf(o, e) {
				return nil, fmt.Errorf("reparent %s: %w", e.Name, ErrNotRootSelection)
			}
		}
		if slices.ContainsFunc(c.entries, func(en slot) bool { return en.elem == e }) {
			continue
		}
		c.entries = append(c.entries, slotOf(g, e))
	}
	return c, nil
}

// Execute keeps a strict order: target positions are computed from the
// current world positions before the hierarchy changes, and written only
// after every element sits in its final place.
func (c *Reparent) Execute() {
	locals := make([]scene.Point, len(c.entries))
	for i, en := range c.entries {
		locals[i] = coords.LocalFromWorld(coords.WorldPosition(en.elem), c.newParent)
	}
	for _, en := range c.entries {
		mustRemove(c.g, en.elem)
	}
	for i, en := range c.entries {
		at := -1
		if c.newIndex >= 0 {
			at = c.newIndex + i
		}
		must(c.g.Insert(c.newParent, en.elem, at))
	}
	for i, en := range c.entries {
		c.g.SetPosition(en.elem, locals[i])
	}
	c.g.Reindex(c.newParent)
}

func (c *Reparent) Undo() {
	for _, en := range c.entries {
		mustRemove(c.g, en.elem)
	}
	// Ascending original index restores each sibling list exactly.
	for _, en := range byOldIndex(c.entries) {
		must(c.g.Insert(en.parent, en.elem, en.index))
	}
	for _, en := range c.entries {
		c.g.SetPosition(en.elem, en.pos)
		c.g.Reindex(en.parent)
	}
}

func (c *Reparent) Name() string { return "reparent" }

// byOldIndex sorts entries by their original index, stable for ties.
func byOldIndex(entries []slot) []slot {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b slot) int {
		return a.index - b.index
	})
	return sorted
}
