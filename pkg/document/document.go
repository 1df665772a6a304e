package document

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/uiforge/pkg/command"
	"github.com/matzehuels/uiforge/pkg/coords"
	uferrors "github.com/matzehuels/uiforge/pkg/errors"
	"github.com/matzehuels/uiforge/pkg/layout"
	"github.com/matzehuels/uiforge/pkg/scene"
	"github.com/matzehuels/uiforge/pkg/selection"
)

// Default canvas size.
const (
	DefaultCanvasWidth  = 1920.0
	DefaultCanvasHeight = 1080.0
)

var (
	// ErrEmptySelection is returned by operations that act on the selection
	// when nothing is selected.
	ErrEmptySelection = errors.New("nothing selected")

	// ErrInvalidDrop is returned when the drop planner rejects a drop.
	ErrInvalidDrop = errors.New("invalid drop")

	// ErrDragActive is returned when a drag is started twice or an edit is
	// attempted during a drag.
	ErrDragActive = errors.New("drag in progress")

	// ErrNoDrag is returned by DragBy and EndDrag without a prior BeginDrag.
	ErrNoDrag = errors.New("no drag in progress")
)

// Options configures a [Document].
type Options struct {
	CanvasWidth  float64
	CanvasHeight float64

	// Snap applies to interactive moves and drags.
	Snap coords.Snap

	// HistoryLimit caps the undo history; zero means unlimited.
	HistoryLimit int

	// Measurer sizes text elements that have no explicit size. May be nil.
	Measurer layout.TextMeasurer

	// ExportMode selects how Save encodes positions.
	ExportMode layout.ExportMode

	// Logger receives debug output. Nil discards it.
	Logger *log.Logger
}

// DefaultOptions returns options with the default canvas and history limit.
func DefaultOptions() Options {
	return Options{
		CanvasWidth:  DefaultCanvasWidth,
		CanvasHeight: DefaultCanvasHeight,
		HistoryLimit: command.DefaultLimit,
	}
}

// Document is one open layout.
type Document struct {
	graph      *scene.Graph
	root       *scene.Element
	stack      *command.Stack
	sel        *selection.Model
	names      *scene.NamingContext
	translator *layout.Translator
	snap       coords.Snap
	logger     *log.Logger

	canvasWidth, canvasHeight float64

	drag *dragState
}

// New creates an empty document.
func New(opts Options) *Document {
	if opts.CanvasWidth <= 0 {
		opts.CanvasWidth = DefaultCanvasWidth
	}
	if opts.CanvasHeight <= 0 {
		opts.CanvasHeight = DefaultCanvasHeight
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	d := &Document{
		graph:        scene.New(),
		root:         scene.NewSystemRoot(opts.CanvasWidth, opts.CanvasHeight),
		sel:          selection.New(),
		names:        scene.NewNamingContext(),
		translator:   &layout.Translator{Measurer: opts.Measurer, Mode: opts.ExportMode},
		snap:         opts.Snap,
		logger:       logger,
		canvasWidth:  opts.CanvasWidth,
		canvasHeight: opts.CanvasHeight,
	}
	d.stack = command.NewStack(
		command.WithLimit(opts.HistoryLimit),
		command.WithLogger(logger.WithPrefix("history")),
	)
	// A fresh graph always accepts its system root.
	if err := d.graph.AddRoot(d.root); err != nil {
		panic(err)
	}
	return d
}

// Graph returns the element graph. Mutating it directly bypasses undo.
func (d *Document) Graph() *scene.Graph { return d.graph }

// Root returns the hidden system root. Top-level elements are its children.
func (d *Document) Root() *scene.Element { return d.root }

// Elements returns the top-level elements.
func (d *Document) Elements() []*scene.Element { return d.root.Children() }

// Stack returns the undo stack.
func (d *Document) Stack() *command.Stack { return d.stack }

// Selection returns the selection model.
func (d *Document) Selection() *selection.Model { return d.sel }

// Names returns the naming context.
func (d *Document) Names() *scene.NamingContext { return d.names }

// Translator returns the layout translator.
func (d *Document) Translator() *layout.Translator { return d.translator }

// Snap returns the snap settings.
func (d *Document) Snap() coords.Snap { return d.snap }

// SetSnap replaces the snap settings.
func (d *Document) SetSnap(s coords.Snap) { d.snap = s }

// CanvasSize returns the canvas dimensions.
func (d *Document) CanvasSize() (width, height float64) {
	return d.canvasWidth, d.canvasHeight
}

// Len returns the number of user elements.
func (d *Document) Len() int { return d.graph.Len() - 1 }

// Find looks an element up by id, then by name.
func (d *Document) Find(key string) (*scene.Element, error) {
	if e, ok := d.graph.FindByID(key); ok && !e.IsSystem {
		return e, nil
	}
	if e, ok := d.graph.FindByName(key); ok && !e.IsSystem {
		return e, nil
	}
	return nil, uferrors.New(uferrors.ErrCodeElementNotFound, "no element with id or name %q", key)
}

// Select replaces the selection. The system root is never selectable.
func (d *Document) Select(elems ...*scene.Element) {
	var keep []*scene.Element
	for _, e := range elems {
		if e != nil && !e.IsSystem && d.graph.Contains(e) {
			keep = append(keep, e)
		}
	}
	d.sel.Set(keep...)
}

// Validate checks the structural invariants of the graph.
func (d *Document) Validate() error {
	if err := d.graph.Validate(); err != nil {
		return uferrors.Wrap(uferrors.ErrCodeInternal, err, "scene graph is inconsistent")
	}
	return nil
}

// Undo reverts the last command. The selection is pruned of elements the
// undo detached.
func (d *Document) Undo() bool {
	if d.drag != nil {
		return false
	}
	ok := d.stack.Undo()
	d.sel.Prune(d.graph)
	return ok
}

// Redo re-applies the last undone command.
func (d *Document) Redo() bool {
	if d.drag != nil {
		return false
	}
	ok := d.stack.Redo()
	d.sel.Prune(d.graph)
	return ok
}

func (d *Document) execute(c command.Command) error {
	if d.drag != nil {
		return ErrDragActive
	}
	if err := d.stack.Execute(c); err != nil {
		return err
	}
	d.logger.Debug("applied", "command", c.Name(), "elements", d.Len())
	return nil
}

// targets returns the unlocked root selection.
func (d *Document) targets() ([]*scene.Element, error) {
	var out []*scene.Element
	for _, e := range d.sel.Roots() {
		if !e.Locked && !e.IsSystem {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return nil, ErrEmptySelection
	}
	return out, nil
}

// LayoutParent returns the layout parent of elements placed under parent:
// the canvas for the system root or nil, parent itself otherwise.
func (d *Document) LayoutParent(parent *scene.Element) layout.Parent {
	return d.layoutParent(parent)
}

func (d *Document) layoutParent(parent *scene.Element) layout.Parent {
	if parent == nil || parent.IsSystem {
		return layout.Parent{Kind: scene.KindContainer, Width: d.canvasWidth, Height: d.canvasHeight}
	}
	return layout.Parent{Kind: parent.Kind, Width: parent.Width, Height: parent.Height}
}
