// Package coords converts between local and world coordinates of scene
// elements and snaps positions to a grid.
//
// World coordinates are absolute canvas positions. They are obtained by
// accumulating local origins up the parent chain; the hidden system root
// contributes nothing and terminates the walk.
package coords

import (
	"math"

	"github.com/matzehuels/uiforge/pkg/scene"
)

// WorldPosition returns e's origin in world coordinates.
func WorldPosition(e *scene.Element) scene.Point {
	var p scene.Point
	for cur := e; cur != nil && !cur.IsSystem; cur = cur.Parent() {
		p.X += cur.X
		p.Y += cur.Y
	}
	return p
}

// WorldBounds returns e's box in world coordinates.
func WorldBounds(e *scene.Element) scene.Rect {
	p := WorldPosition(e)
	return scene.Rect{X: p.X, Y: p.Y, Width: e.Width, Height: e.Height}
}

// Origin returns the world position of the coordinate space established by
// parent. A nil parent is the world itself.
func Origin(parent *scene.Element) scene.Point {
	if parent == nil {
		return scene.Point{}
	}
	return WorldPosition(parent)
}

// LocalFromWorld converts a world point into the local space of newParent.
func LocalFromWorld(world scene.Point, newParent *scene.Element) scene.Point {
	return world.Sub(Origin(newParent))
}

// WorldFromLocal converts a point in parent's local space to world space.
func WorldFromLocal(local scene.Point, parent *scene.Element) scene.Point {
	return local.Add(Origin(parent))
}

// Snap configures grid and pixel snapping.
type Snap struct {
	// Grid enables rounding to the nearest multiple of GridSize.
	Grid     bool
	GridSize float64
	// Pixel enables rounding to the nearest whole unit, applied after grid
	// snapping.
	Pixel bool
}

// Value snaps a single coordinate.
func (s Snap) Value(v float64) float64 {
	if s.Grid && s.GridSize > 0 {
		v = math.Round(v/s.GridSize) * s.GridSize
	}
	if s.Pixel {
		v = math.Round(v)
	}
	return v
}

// Point snaps both coordinates of p.
func (s Snap) Point(p scene.Point) scene.Point {
	return scene.Point{X: s.Value(p.X), Y: s.Value(p.Y)}
}

// Enabled reports whether any snapping applies.
func (s Snap) Enabled() bool {
	return (s.Grid && s.GridSize > 0) || s.Pixel
}
