package command

import (
	"fmt"

	"github.com/matzehuels/uiforge/pkg/scene"
)

// Move sets an element's local position.
type Move struct {
	g        *scene.Graph
	elem     *scene.Element
	from, to scene.Point
}

// NewMove returns a command that moves e from its current position to to.
func NewMove(g *scene.Graph, e *scene.Element, to scene.Point) (*Move, error) {
	if err := checkAttached(g, e); err != nil {
		return nil, fmt.Errorf("move: %w", err)
	}
	return &Move{g: g, elem: e, from: e.Position(), to: to}, nil
}

// NewMoveFrom returns a command that moves e from from to to. The element's
// current position is not consulted; use it when the move already happened
// live and only needs to be recorded.
func NewMoveFrom(g *scene.Graph, e *scene.Element, from, to scene.Point) (*Move, error) {
	if err := checkAttached(g, e); err != nil {
		return nil, fmt.Errorf("move: %w", err)
	}
	return &Move{g: g, elem: e, from: from, to: to}, nil
}

func (c *Move) Execute()     { c.g.SetPosition(c.elem, c.to) }
func (c *Move) Undo()        { c.g.SetPosition(c.elem, c.from) }
func (c *Move) Name() string { return "move" }

// Resize sets an element's local bounds.
type Resize struct {
	g        *scene.Graph
	elem     *scene.Element
	from, to scene.Rect
}

// NewResize returns a command that changes e's bounds to to.
func NewResize(g *scene.Graph, e *scene.Element, to scene.Rect) (*Resize, error) {
	if err := checkAttached(g, e); err != nil {
		return nil, fmt.Errorf("resize: %w", err)
	}
	return &Resize{g: g, elem: e, from: e.Bounds(), to: to}, nil
}

func (c *Resize) Execute()     { c.g.SetBounds(c.elem, c.to) }
func (c *Resize) Undo()        { c.g.SetBounds(c.elem, c.from) }
func (c *Resize) Name() string { return "resize" }

// PointChange is one entry of a [BatchMove].
type PointChange struct {
	Element  *scene.Element
	From, To scene.Point
}

// BatchMove moves several elements at once.
type BatchMove struct {
	g       *scene.Graph
	changes []PointChange
}

// NewBatchMove returns a command applying every change. Entries whose From
// and To are equal are kept; they are harmless and keep the batch aligned
// with the caller's selection.
func NewBatchMove(g *scene.Graph, changes []PointChange) (*BatchMove, error) {
	if len(changes) == 0 {
		return nil, ErrNoElements
	}
	for _, c := range changes {
		if err := checkAttached(g, c.Element); err != nil {
			return nil, fmt.Errorf("batch move: %w", err)
		}
	}
	return &BatchMove{g: g, changes: append([]PointChange(nil), changes...)}, nil
}

func (c *BatchMove) Execute() {
	for _, ch := range c.changes {
		c.g.SetPosition(ch.Element, ch.To)
	}
}

func (c *BatchMove) Undo() {
	for i := len(c.changes) - 1; i >= 0; i-- {
		c.g.SetPosition(c.changes[i].Element, c.changes[i].From)
	}
}

func (c *BatchMove) Name() string { return "move" }

// BoundsChange is one entry of a [BatchResize].
type BoundsChange struct {
	Element  *scene.Element
	From, To scene.Rect
}

// BatchResize changes the bounds of several elements at once.
type BatchResize struct {
	g       *scene.Graph
	changes []BoundsChange
}

// NewBatchResize returns a command applying every change.
func NewBatchResize(g *scene.Graph, changes []BoundsChange) (*BatchResize, error) {
	if len(changes) == 0 {
		return nil, ErrNoElements
	}
	for _, c := range changes {
		if err := checkAttached(g, c.Element); err != nil {
			return nil, fmt.Errorf("batch resize: %w", err)
		}
	}
	return &BatchResize{g: g, changes: append([]BoundsChange(nil), changes...)}, nil
}

func (c *BatchResize) Execute() {
	for _, ch := range c.changes {
		c.g.SetBounds(ch.Element, ch.To)
	}
}

func (c *BatchResize) Undo() {
	for i := len(c.changes) - 1; i >= 0; i-- {
		c.g.SetBounds(c.changes[i].Element, c.changes[i].From)
	}
}

func (c *BatchResize) Name() string { return "resize" }
