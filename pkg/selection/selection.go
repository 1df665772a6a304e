// Package selection tracks which elements are selected and derives the root
// selection: the selected elements that have no selected ancestor. Group
// drags and grouping operate on the root selection so that a selected child
// of a selected parent is not moved twice.
package selection

import (
	"slices"

	"github.com/matzehuels/uiforge/pkg/scene"
)

// Model is an ordered set of selected elements. It keeps each element's
// Selected flag in sync with membership.
//
// The zero value is an empty selection ready for use.
type Model struct {
	items []*scene.Element
}

// New creates an empty selection.
func New() *Model { return &Model{} }

// Set replaces the selection with elems. Nil and duplicate entries are
// ignored.
func (m *Model) Set(elems ...*scene.Element) {
	m.Clear()
	for _, e := range elems {
		m.Add(e)
	}
}

// Add appends e to the selection if it is not already selected.
func (m *Model) Add(e *scene.Element) {
	if e == nil || m.Contains(e) {
		return
	}
	e.Selected = true
	m.items = append(m.items, e)
}

// Remove drops e from the selection.
func (m *Model) Remove(e *scene.Element) {
	i := slices.Index(m.items, e)
	if i < 0 {
		return
	}
	e.Selected = false
	m.items = slices.Delete(m.items, i, i+1)
}

// Toggle flips e's membership.
func (m *Model) Toggle(e *scene.Element) {
	if m.Contains(e) {
		m.Remove(e)
	} else {
		m.Add(e)
	}
}

// Clear deselects everything.
func (m *Model) Clear() {
	for _, e := range m.items {
		e.Selected = false
	}
	m.items = nil
}

// Contains reports whether e is selected.
func (m *Model) Contains(e *scene.Element) bool {
	return slices.Contains(m.items, e)
}

// Len returns the number of selected elements.
func (m *Model) Len() int { return len(m.items) }

// Elements returns a copy of the selection in selection order.
func (m *Model) Elements() []*scene.Element {
	return slices.Clone(m.items)
}

// Primary returns the first selected element, or nil.
func (m *Model) Primary() *scene.Element {
	if len(m.items) == 0 {
		return nil
	}
	return m.items[0]
}

// Roots returns the selected elements that have no selected ancestor, in
// selection order.
func (m *Model) Roots() []*scene.Element {
	var roots []*scene.Element
	for _, e := range m.items {
		if !m.hasSelectedAncestor(e) {
			roots = append(roots, e)
		}
	}
	return roots
}

func (m *Model) hasSelectedAncestor(e *scene.Element) bool {
	for p := e.Parent(); p != nil; p = p.Parent() {
		if m.Contains(p) {
			return true
		}
	}
	return false
}

// Prune drops elements that are no longer part of g, for example after the
// element or one of its ancestors was deleted.
func (m *Model) Prune(g *scene.Graph) {
	kept := m.items[:0]
	for _, e := range m.items {
		if g.Contains(e) {
			kept = append(kept, e)
		} else {
			e.Selected = false
		}
	}
	clear(m.items[len(kept):])
	m.items = kept
}
