package command

import (
	"errors"
	"fmt"

	"github.com/matzehuels/uiforge/pkg/scene"
)

var (
	// ErrNilCommand is returned when a nil command is submitted.
	ErrNilCommand = errors.New("command must not be nil")

	// ErrReentrant is returned when a command is submitted while another
	// command is executing or being undone.
	ErrReentrant = errors.New("command stack is busy")

	// ErrNoElements is returned by constructors that need at least one
	// element.
	ErrNoElements = errors.New("no elements")

	// ErrNotRootSelection is returned when an element and one of its
	// ancestors are passed to the same grouping command.
	ErrNotRootSelection = errors.New("elements overlap in the hierarchy")
)

// Command is an atomic, invertible mutation.
type Command interface {
	// Execute applies the mutation.
	Execute()
	// Undo reverts the effect of the preceding Execute.
	Undo()
	// Name returns a short human readable label ("move", "group").
	Name() string
}

// Composite runs its members in order and undoes them in reverse.
type Composite struct {
	name     string
	commands []Command
}

// NewComposite bundles cmds into one command. Nil entries are dropped.
func NewComposite(name string, cmds ...Command) *Composite {
	c := &Composite{name: name}
	for _, cmd := range cmds {
		if cmd != nil {
			c.commands = append(c.commands, cmd)
		}
	}
	return c
}

func (c *Composite) Execute() {
	for _, cmd := range c.commands {
		cmd.Execute()
	}
}

func (c *Composite) Undo() {
	for i := len(c.commands) - 1; i >= 0; i-- {
		c.commands[i].Undo()
	}
}

func (c *Composite) Name() string { return c.name }

// Len returns the number of member commands.
func (c *Composite) Len() int { return len(c.commands) }

// must panics on a graph error inside Execute or Undo. Constructors verify
// every precondition, so reaching it means the graph was mutated outside
// the command stack.
func must(err error) {
	if err != nil {
		panic(fmt.Sprintf("command: scene invariant violated: %v", err))
	}
}

func mustRemove(g *scene.Graph, e *scene.Element) {
	_, _, err := g.Remove(e)
	must(err)
}

// checkAttached verifies that e can be the subject of a command on g.
func checkAttached(g *scene.Graph, e *scene.Element) error {
	switch {
	case e == nil:
		return scene.ErrNilElement
	case !g.IsAttached(e):
		return fmt.Errorf("%s: %w", e.Name, scene.ErrDetached)
	case e.IsSystem:
		return fmt.Errorf("%s: %w", e.Name, scene.ErrSystemElement)
	}
	return nil
}

// checkTarget verifies that e may be inserted below parent.
func checkTarget(g *scene.Graph, parent, e *scene.Element) error {
	if parent == nil {
		return nil
	}
	if parent == e || g.IsDescendantOf(e, parent) {
		return fmt.Errorf("%s into %s: %w", e.Name, parent.Name, scene.ErrCycle)
	}
	return nil
}
