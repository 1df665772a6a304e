// Package document is the editing facade over a scene graph.
//
// A [Document] owns everything one open layout needs: the element graph with
// its hidden system root, the undo stack, the selection, the per-kind naming
// counters, the layout translator and the snap settings. Editing operations
// (Create, MoveBy, Drop, Group, Align, SetProperty, ...) validate their
// input, build the matching command and submit it to the stack, so every
// change is undoable.
//
// # Persistence Boundary
//
// Documents are exchanged with files as flat [layout.Record] lists. [Load]
// links records by parent id, rejects unknown parents, duplicate ids and
// parent cycles, then derives local geometry from each record's
// anchor+margin layout, parents first. [Document.Save] runs the translator in
// the other direction.
//
//	doc, err := document.Load(records, document.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	btn, _ := doc.Create(scene.KindButton, nil, scene.Point{X: 40, Y: 40})
//	doc.Select(btn)
//	doc.MoveBy(10, 0)
//	doc.Undo()
//	records = doc.Save()
//
// # Drag Gestures
//
// Pointer drags move elements live. [Document.BeginDrag] captures the start
// positions of the root selection, [Document.DragBy] writes previews
// directly to the graph, and [Document.EndDrag] records a single batch move
// that is already applied. [Document.CancelDrag] restores the start
// positions.
//
// A Document is not safe for concurrent use. Loading may run on a worker
// goroutine; the returned document then belongs to the caller.
package document
