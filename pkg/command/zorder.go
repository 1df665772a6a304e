package command

import (
	"fmt"
	"slices"

	"github.com/matzehuels/uiforge/pkg/scene"
)

// ZOrder moves elements to the end (front) or start (back) of their sibling
// lists. Relative order among the moved elements is preserved.
type ZOrder struct {
	g       *scene.Graph
	toFront bool
	entries []slot // ascending original index
}

// NewBringToFront returns a command moving elems to the front of their
// sibling lists.
func NewBringToFront(g *scene.Graph, elems []*scene.Element) (*ZOrder, error) {
	return newZOrder(g, elems, true)
}

// NewSendToBack returns a command moving elems to the back of their sibling
// lists. Roots never move ahead of the system root.
func NewSendToBack(g *scene.Graph, elems []*scene.Element) (*ZOrder, error) {
	return newZOrder(g, elems, false)
}

func newZOrder(g *scene.Graph, elems []*scene.Element, toFront bool) (*ZOrder, error) {
	if len(elems) == 0 {
		return nil, ErrNoElements
	}
	c := &ZOrder{g: g, toFront: toFront}
	for _, e := range elems {
		if err := checkAttached(g, e); err != nil {
			return nil, fmt.Errorf("%s: %w", c.Name(), err)
		}
		if slices.ContainsFunc(c.entries, func(s slot) bool { return s.elem == e }) {
			continue
		}
		c.entries = append(c.entries, slotOf(g, e))
	}
	c.entries = byOldIndex(c.entries)
	return c, nil
}

func (c *ZOrder) Execute() {
	if c.toFront {
		for _, s := range c.entries {
			mustRemove(c.g, s.elem)
			must(c.g.Insert(s.parent, s.elem, -1))
		}
		return
	}
	for i := len(c.entries) - 1; i >= 0; i-- {
		s := c.entries[i]
		mustRemove(c.g, s.elem)
		must(c.g.Insert(s.parent, s.elem, 0))
	}
}

// Undo detaches every moved element, then reinserts them in ascending
// original index so each lands exactly where it was.
func (c *ZOrder) Undo() {
	for _, s := range c.entries {
		mustRemove(c.g, s.elem)
	}
	for _, s := range c.entries {
		must(c.g.Insert(s.parent, s.elem, s.index))
	}
}

func (c *ZOrder) Name() string {
	if c.toFront {
		return "bring to front"
	}
	return "send to back"
}
