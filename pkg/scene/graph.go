package scene

import (
	"errors"
	"slices"
)

var (
	// ErrNilElement is returned when a nil element is passed to a structural
	// operation.
	ErrNilElement = errors.New("element must not be nil")

	// ErrAttached is returned by [Graph.Insert] when the element is already
	// owned by a collection. Remove it first.
	ErrAttached = errors.New("element is already attached")

	// ErrDetached is returned when an operation requires an attached element.
	ErrDetached = errors.New("element is not attached")

	// ErrCycle is returned when an insertion would make an element its own
	// ancestor.
	ErrCycle = errors.New("insertion would create a cycle")

	// ErrSystemElement is returned when a system element would end up
	// anywhere other than root index 0, or when a second one is added.
	ErrSystemElement = errors.New("invalid system element placement")
)

// Observer receives notifications about graph mutations. Notifications are
// delivered synchronously, after the mutation is complete.
type Observer interface {
	// StructureChanged is called after a child list changes. parent is nil
	// for the root list.
	StructureChanged(parent *Element)
	// GeometryChanged is called after SetPosition or SetBounds.
	GeometryChanged(e *Element)
}

// Graph owns the root list of an element hierarchy.
//
// The zero value is an empty graph ready for use. Graph is not safe for
// concurrent use.
type Graph struct {
	roots    []*Element
	observer Observer
}

// New creates an empty graph.
func New() *Graph { return &Graph{} }

// SetObserver installs o as the graph observer. Pass nil to remove it.
func (g *Graph) SetObserver(o Observer) { g.observer = o }

// Roots returns the root list. The slice must not be modified.
func (g *Graph) Roots() []*Element { return g.roots }

// SystemRoot returns the system element, or nil if the graph has none.
func (g *Graph) SystemRoot() *Element {
	if len(g.roots) > 0 && g.roots[0].IsSystem {
		return g.roots[0]
	}
	return nil
}

// AddRoot appends e to the root list. A system element is placed at index 0.
func (g *Graph) AddRoot(e *Element) error {
	return g.Insert(nil, e, -1)
}

// AddChild appends e to parent's children.
func (g *Graph) AddChild(parent, e *Element) error {
	if parent == nil {
		return ErrNilElement
	}
	return g.Insert(parent, e, -1)
}

// Insert places the detached element e into parent's child list (or the root
// list when parent is nil) at index. A negative or out-of-range index
// appends. Non-system roots are never placed ahead of the system root.
//
// Insert reindexes the target collection.
func (g *Graph) Insert(parent, e *Element, index int) error {
	if e == nil {
		return ErrNilElement
	}
	if g.IsAttached(e) {
		return ErrAttached
	}
	if parent != nil && (parent == e || g.IsDescendantOf(e, parent)) {
		return ErrCycle
	}
	if e.IsSystem && (parent != nil || g.SystemRoot() != nil) {
		return ErrSystemElement
	}

	if parent == nil {
		switch {
		case e.IsSystem:
			index = 0
		case index < 0 || index > len(g.roots):
			index = len(g.roots)
		case index == 0 && g.SystemRoot() != nil:
			index = 1
		}
		g.roots = slices.Insert(g.roots, index, e)
	} else {
		if index < 0 || index > len(parent.children) {
			index = len(parent.children)
		}
		parent.children = slices.Insert(parent.children, index, e)
	}
	e.parent = parent
	g.Reindex(parent)
	g.notifyStructure(parent)
	return nil
}

// Remove detaches e from whichever collection owns it and returns the former
// parent (nil for roots) and index. The element's own children travel with
// it. Remove reindexes the collection it left.
func (g *Graph) Remove(e *Element) (parent *Element, index int, err error) {
	if e == nil {
		return nil, -1, ErrNilElement
	}
	parent = e.parent
	index = g.IndexOf(e)
	if index < 0 {
		return nil, -1, ErrDetached
	}
	if parent == nil {
		g.roots = slices.Delete(g.roots, index, index+1)
	} else {
		parent.children = slices.Delete(parent.children, index, index+1)
	}
	e.parent = nil
	g.Reindex(parent)
	g.notifyStructure(parent)
	return parent, index, nil
}

// IndexOf returns e's position in its owning collection, or -1 if e is not
// attached to this graph.
func (g *Graph) IndexOf(e *Element) int {
	if e == nil {
		return -1
	}
	if e.parent != nil {
		return slices.Index(e.parent.children, e)
	}
	return slices.Index(g.roots, e)
}

// IsAttached reports whether e is owned by a collection of this graph or by
// a (possibly detached) parent element.
func (g *Graph) IsAttached(e *Element) bool {
	return e != nil && (e.parent != nil || slices.Contains(g.roots, e))
}

// Contains reports whether e is reachable from the root list. Unlike
// IsAttached it is false for elements inside a detached subtree.
func (g *Graph) Contains(e *Element) bool {
	if e == nil {
		return false
	}
	top := e
	for top.parent != nil {
		top = top.parent
	}
	return slices.Contains(g.roots, top)
}

// Siblings returns the collection that owns e: its parent's children or the
// root list.
func (g *Graph) Siblings(e *Element) []*Element {
	if e.parent != nil {
		return e.parent.children
	}
	return g.roots
}

// ChildrenOf returns parent's children, or the root list when parent is nil.
func (g *Graph) ChildrenOf(parent *Element) []*Element {
	if parent == nil {
		return g.roots
	}
	return parent.children
}

// Reindex sets ZIndex of every element in parent's child list (the root
// list when parent is nil) to its position.
func (g *Graph) Reindex(parent *Element) {
	for i, c := range g.ChildrenOf(parent) {
		c.ZIndex = i
	}
}

// IsDescendantOf reports whether ancestor appears on e's parent chain.
// An element is not its own descendant.
func (g *Graph) IsDescendantOf(ancestor, e *Element) bool {
	if ancestor == nil || e == nil {
		return false
	}
	for p := e.parent; p != nil; p = p.parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

// All returns every element in pre-order: roots in order, each followed by
// its subtree.
func (g *Graph) All() []*Element {
	var out []*Element
	for _, r := range g.roots {
		r.Walk(func(e *Element) bool {
			out = append(out, e)
			return true
		})
	}
	return out
}

// Len returns the total number of elements.
func (g *Graph) Len() int {
	n := 0
	for _, r := range g.roots {
		r.Walk(func(*Element) bool { n++; return true })
	}
	return n
}

// FindByID returns the element with the given id.
func (g *Graph) FindByID(id string) (*Element, bool) {
	return g.find(func(e *Element) bool { return e.ID == id })
}

// FindByName returns the first element, in pre-order, with the given name.
func (g *Graph) FindByName(name string) (*Element, bool) {
	return g.find(func(e *Element) bool { return e.Name == name })
}

func (g *Graph) find(match func(*Element) bool) (*Element, bool) {
	var found *Element
	for _, r := range g.roots {
		r.Walk(func(e *Element) bool {
			if found != nil {
				return false
			}
			if match(e) {
				found = e
				return false
			}
			return true
		})
		if found != nil {
			return found, true
		}
	}
	return nil, false
}

// SetPosition writes e's local origin and notifies the observer.
func (g *Graph) SetPosition(e *Element, p Point) {
	e.X, e.Y = p.X, p.Y
	g.notifyGeometry(e)
}

// SetBounds writes e's local geometry and notifies the observer.
func (g *Graph) SetBounds(e *Element, r Rect) {
	e.X, e.Y, e.Width, e.Height = r.X, r.Y, r.Width, r.Height
	g.notifyGeometry(e)
}

func (g *Graph) notifyStructure(parent *Element) {
	if g.observer != nil {
		g.observer.StructureChanged(parent)
	}
}

func (g *Graph) notifyGeometry(e *Element) {
	if g.observer != nil {
		g.observer.GeometryChanged(e)
	}
}

// Clone returns a deep copy of the graph. Ids are preserved, so elements of
// the copy can be matched to the original with FindByID. The observer is not
// copied.
func (g *Graph) Clone() *Graph {
	c := &Graph{roots: make([]*Element, len(g.roots))}
	for i, r := range g.roots {
		c.roots[i] = r.Clone()
	}
	return c
}
