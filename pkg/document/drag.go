package document

import (
	"github.com/matzehuels/uiforge/pkg/command"
	"github.com/matzehuels/uiforge/pkg/scene"
)

type dragState struct {
	elems []*scene.Element
	start []scene.Point
	delta scene.Point
}

// BeginDrag starts a live drag of the unlocked root selection.
func (d *Document) BeginDrag() error {
	if d.drag != nil {
		return ErrDragActive
	}
	targets, err := d.targets()
	if err != nil {
		return err
	}
	st := &dragState{elems: targets, start: make([]scene.Point, len(targets))}
	for i, e := range targets {
		st.start[i] = e.Position()
	}
	d.drag = st
	return nil
}

// DragBy accumulates (dx, dy) and writes the snapped preview positions
// directly to the graph. Nothing is recorded until EndDrag.
func (d *Document) DragBy(dx, dy float64) error {
	if d.drag == nil {
		return ErrNoDrag
	}
	d.drag.delta = d.drag.delta.Add(scene.Point{X: dx, Y: dy})
	for i, e := range d.drag.elems {
		d.graph.SetPosition(e, d.snap.Point(d.drag.start[i].Add(d.drag.delta)))
	}
	return nil
}

// EndDrag finishes the drag and records the already applied movement as a
// single undoable batch move. A drag that moved nothing records nothing.
func (d *Document) EndDrag() error {
	if d.drag == nil {
		return ErrNoDrag
	}
	st := d.drag
	d.drag = nil

	var changes []command.PointChange
	for i, e := range st.elems {
		if to := e.Position(); to != st.start[i] {
			changes = append(changes, command.PointChange{Element: e, From: st.start[i], To: to})
		}
	}
	if len(changes) == 0 {
		return nil
	}
	c, err := command.NewBatchMove(d.graph, changes)
	if err != nil {
		return err
	}
	if err := d.stack.RecordExecuted(c); err != nil {
		return err
	}
	d.logger.Debug("drag recorded", "elements", len(changes))
	return nil
}

// CancelDrag abandons the drag and restores the start positions.
func (d *Document) CancelDrag() {
	if d.drag == nil {
		return
	}
	for i, e := range d.drag.elems {
		d.graph.SetPosition(e, d.drag.start[i])
	}
	d.drag = nil
}

// Dragging reports whether a drag is in progress.
func (d *Document) Dragging() bool { return d.drag != nil }
