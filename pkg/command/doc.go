// Package command implements the reversible mutations of a scene graph and
// the undo/redo stack that runs them.
//
// # Commands
//
// Every structural or geometric change is a [Command]: Execute applies it,
// Undo reverts it exactly, and the pair may be repeated any number of times
// in alternation. Commands never fail once constructed. Each constructor
// (NewCreate, NewReparent, NewGroup, ...) validates its preconditions and
// returns an error instead of a command when they do not hold; callers such
// as the drop planner reject invalid requests before a constructor is even
// reached.
//
// The catalogue:
//
//   - [CreateElement], [DeleteElement]: hierarchy membership
//   - [Move], [Resize], [BatchMove], [BatchResize]: geometry snapshots
//   - [Reparent]: hierarchy change preserving world position
//   - [ZOrder]: bring to front / send to back
//   - [Group], [Ungroup]: wrap root selections in a container and back
//   - [PropertyChange], [BatchPropertyChange]: keyed property edits
//   - [Composite]: ordered sequence, undone in reverse
//
// # Reparent Ordering
//
// [Reparent] computes the target local position before it touches the
// hierarchy, then detaches, inserts, and only then writes coordinates. A
// scene observer reacting to the coordinate write therefore always sees the
// final parent chain.
//
// # Stack
//
// [Stack] executes commands and keeps undo and redo histories:
//
//	stack := command.NewStack(command.WithLimit(100))
//	create, err := command.NewCreate(g, parent, elem)
//	if err != nil {
//	    return err
//	}
//	stack.Execute(create)
//	stack.Undo()
//	stack.Redo()
//
// [Stack.RecordExecuted] records a command whose effect was already applied,
// such as a drag that moved elements live during the gesture.
//
// The stack is not reentrant: a command must not submit other commands from
// Execute or Undo.
package command
