// Package planner decides where dragged elements land when dropped on a
// hover target in the hierarchy view.
//
// The target's visual extent is split into three zones:
//
//	[0, 20%)    before: sibling of the target, at the target's index
//	[20%, 80%]  inside: last child of the target
//	(80%, 100%] after:  sibling of the target, after it
//
// Both boundaries belong to the inside zone. A plan that would make an
// element its own ancestor is rejected; callers suppress the drop and build
// no command.
package planner

import (
	"github.com/matzehuels/uiforge/pkg/scene"
)

// Zone fractions of the target height.
const (
	BeforeFraction = 0.2
	AfterFraction  = 0.8
)

// Zone identifies where the pointer is relative to the target.
type Zone int

const (
	ZoneInside Zone = iota
	ZoneBefore
	ZoneAfter
)

// String returns the zone name.
func (z Zone) String() string {
	switch z {
	case ZoneBefore:
		return "before"
	case ZoneAfter:
		return "after"
	default:
		return "inside"
	}
}

// Reason explains why a plan was rejected.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonNoTarget
	ReasonNothingDragged
	ReasonTargetDragged
	ReasonTargetDescendant
	ReasonParentDragged
	ReasonLocked
	ReasonSystemElement
)

var reasonText = map[Reason]string{
	ReasonNone:             "",
	ReasonNoTarget:         "no drop target",
	ReasonNothingDragged:   "nothing dragged",
	ReasonTargetDragged:    "target is being dragged",
	ReasonTargetDescendant: "target is inside a dragged element",
	ReasonParentDragged:    "new parent is being dragged",
	ReasonLocked:           "dragged element is locked",
	ReasonSystemElement:    "system element cannot be moved",
}

// String returns a human readable description.
func (r Reason) String() string { return reasonText[r] }

// Plan is the outcome of a drop computation.
type Plan struct {
	Valid  bool
	Reason Reason
	Zone   Zone
	// Parent is the new parent; nil means the root list.
	Parent *scene.Element
	// Index is the insertion position in Parent's children, already
	// adjusted for dragged siblings removed ahead of it.
	Index int
}

func reject(r Reason) Plan { return Plan{Reason: r, Index: -1} }

// ZoneAt classifies pointerY within a target of the given height.
func ZoneAt(pointerY, height float64) Zone {
	switch {
	case pointerY < height*BeforeFraction:
		return ZoneBefore
	case pointerY > height*AfterFraction:
		return ZoneAfter
	default:
		return ZoneInside
	}
}

// Compute plans dropping dragged onto target with the pointer at pointerY
// (relative to the top of the target's visual extent of the given height).
func Compute(g *scene.Graph, dragged []*scene.Element, target *scene.Element, pointerY, height float64) Plan {
	if target == nil {
		return reject(ReasonNoTarget)
	}
	if len(dragged) == 0 {
		return reject(ReasonNothingDragged)
	}
	for _, d := range dragged {
		switch {
		case d == target:
			return reject(ReasonTargetDragged)
		case d.IsSystem:
			return reject(ReasonSystemElement)
		case d.Locked:
			return reject(ReasonLocked)
		case g.IsDescendantOf(d, target):
			return reject(ReasonTargetDescendant)
		}
	}

	zone := ZoneAt(pointerY, height)
	if target.IsSystem {
		zone = ZoneInside
	}

	var parent *scene.Element
	var index int
	switch zone {
	case ZoneBefore:
		parent, index = target.Parent(), g.IndexOf(target)
	case ZoneAfter:
		parent, index = target.Parent(), g.IndexOf(target)+1
	default:
		parent, index = target, target.ChildCount()
	}

	for _, d := range dragged {
		if d == parent {
			return reject(ReasonParentDragged)
		}
	}

	// Dragged siblings ahead of the insertion point shift it left once they
	// are detached.
	for _, d := range dragged {
		if d.Parent() == parent && g.IsAttached(d) {
			if i := g.IndexOf(d); i >= 0 && i < index {
				index--
			}
		}
	}

	return Plan{Valid: true, Zone: zone, Parent: parent, Index: index}
}
