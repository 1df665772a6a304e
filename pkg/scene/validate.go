package scene

import (
	"errors"
	"fmt"
)

var (
	// ErrBrokenParentLink is returned by [Graph.Validate] when a child's
	// back-reference does not point at the element that owns it.
	ErrBrokenParentLink = errors.New("parent back-reference does not match owner")

	// ErrDuplicateOwnership is returned by [Graph.Validate] when an element
	// is reachable from more than one collection.
	ErrDuplicateOwnership = errors.New("element owned by more than one collection")

	// ErrZIndexMismatch is returned by [Graph.Validate] when an element's
	// ZIndex differs from its position among its siblings.
	ErrZIndexMismatch = errors.New("z-index does not match sibling order")

	// ErrDuplicateID is returned by [Graph.Validate] when two elements share
	// an id.
	ErrDuplicateID = errors.New("duplicate element id")
)

// Validate checks every structural invariant of the graph:
//
//   - Roots have no parent; every child points back at its owner
//   - No element is reachable twice (which also rules out cycles)
//   - ZIndex matches sibling position everywhere
//   - Only root index 0 may be a system element
//   - Ids are unique
//
// Validate runs in O(N) and returns the first violation found, wrapped with
// the offending element's name.
func (g *Graph) Validate() error {
	seen := make(map[*Element]bool)
	ids := make(map[string]bool)

	var visit func(owner, e *Element, index int) error
	visit = func(owner, e *Element, index int) error {
		if seen[e] {
			return fmt.Errorf("%s: %w", e.Name, ErrDuplicateOwnership)
		}
		seen[e] = true
		if e.ID != "" {
			if ids[e.ID] {
				return fmt.Errorf("%s (%s): %w", e.Name, e.ID, ErrDuplicateID)
			}
			ids[e.ID] = true
		}
		if e.parent != owner {
			return fmt.Errorf("%s: %w", e.Name, ErrBrokenParentLink)
		}
		if e.ZIndex != index {
			return fmt.Errorf("%s: z=%d index=%d: %w", e.Name, e.ZIndex, index, ErrZIndexMismatch)
		}
		if e.IsSystem && (owner != nil || index != 0) {
			return fmt.Errorf("%s: %w", e.Name, ErrSystemElement)
		}
		for i, c := range e.children {
			if err := visit(e, c, i); err != nil {
				return err
			}
		}
		return nil
	}

	for i, r := range g.roots {
		if err := visit(nil, r, i); err != nil {
			return err
		}
	}
	return nil
}
