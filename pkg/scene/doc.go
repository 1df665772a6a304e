// Package scene provides the element hierarchy edited by uiforge.
//
// # Overview
//
// A uiforge document is a tree of [Element] values. Each element stores its
// geometry in local coordinates relative to its parent, plus the anchor and
// margin hints of the engine layout model it will eventually be exported to.
// The [Graph] owns the root list; every other element is owned by its
// parent's ordered child list and keeps a non-owning back-reference to that
// parent.
//
// # Basic Usage
//
//	g := scene.New()
//	panel := scene.NewElement(scene.KindContainer, "Panel1")
//	label := scene.NewElement(scene.KindText, "Text1")
//	g.AddRoot(panel)
//	g.AddChild(panel, label)
//
// Query the hierarchy with [Graph.Roots], [Graph.All], [Graph.FindByID] and
// [Graph.IsDescendantOf]. Use [Graph.Validate] to verify structural integrity
// after a series of edits.
//
// # Invariants
//
// The graph maintains the following invariants:
//
//   - Ownership is acyclic: an element is never inserted below itself
//   - Each element lives in exactly one owning collection
//   - ZIndex equals the element's position in its owning collection
//   - At most one root is a system element, and it is always root index 0
//
// Insert and Remove reindex the affected collections, so z-order stays
// consistent after every structural operation.
//
// # System Element
//
// A document may carry a single hidden system root (see [NewSystemRoot]). It
// contains the user-visible top-level elements, never appears in the
// user-visible hierarchy, and contributes nothing to world coordinates.
//
// # Observers
//
// Geometry writes made through [Graph.SetPosition] and [Graph.SetBounds] and
// every structural change are reported to the graph's [Observer], if any.
// Observers see the hierarchy exactly as it is at the moment of the write,
// which is why commands finish re-parenting before they write coordinates.
//
// # Concurrency
//
// Graph is not safe for concurrent use. All mutation happens on one
// goroutine, normally through the command stack.
package scene
