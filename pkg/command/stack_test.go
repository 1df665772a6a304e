package command

import (
	"errors"
	"testing"
	"time"

	"github.com/matzehuels/uiforge/pkg/observability"
)

// counter is a command that increments and decrements a shared value.
type counter struct {
	name  string
	value *int
}

func (c *counter) Execute()     { *c.value++ }
func (c *counter) Undo()        { *c.value-- }
func (c *counter) Name() string { return c.name }

// reentrant tries to submit another command from inside Execute.
type reentrant struct {
	stack *Stack
	err   error
}

func (r *reentrant) Execute()     { r.err = r.stack.Execute(&counter{value: new(int)}) }
func (r *reentrant) Undo()        {}
func (r *reentrant) Name() string { return "reentrant" }

type pruneHooks struct {
	observability.NoopCommandHooks
	pruned int
}

func (h *pruneHooks) OnPrune(n int) { h.pruned += n }

func TestStackUndoRedo(t *testing.T) {
	v := 0
	s := NewStack()
	for _, name := range []string{"one", "two", "three"} {
		if err := s.Execute(&counter{name: name, value: &v}); err != nil {
			t.Fatal(err)
		}
	}
	if v != 3 || s.UndoLen() != 3 || s.UndoName() != "three" {
		t.Fatalf("v=%d UndoLen=%d UndoName=%q", v, s.UndoLen(), s.UndoName())
	}

	if !s.Undo() || !s.Undo() {
		t.Fatal("Undo() = false")
	}
	if v != 1 || s.RedoName() != "two" || !s.CanRedo() {
		t.Errorf("after two undos v=%d RedoName=%q", v, s.RedoName())
	}
	if !s.Redo() || v != 2 {
		t.Errorf("after redo v=%d, want 2", v)
	}

	// a new command clears redo history
	if err := s.Execute(&counter{name: "four", value: &v}); err != nil {
		t.Fatal(err)
	}
	if s.CanRedo() || s.Redo() {
		t.Error("redo history should be cleared by Execute")
	}

	for s.Undo() {
	}
	if v != 0 || s.CanUndo() {
		t.Errorf("after undoing everything v=%d CanUndo=%v", v, s.CanUndo())
	}
}

func TestStackLimit(t *testing.T) {
	hooks := &pruneHooks{}
	observability.SetCommandHooks(hooks)
	defer observability.Reset()

	v := 0
	s := NewStack(WithLimit(2))
	for i := 0; i < 5; i++ {
		if err := s.Execute(&counter{value: &v}); err != nil {
			t.Fatal(err)
		}
	}
	if s.UndoLen() != 2 {
		t.Errorf("UndoLen() = %d, want 2", s.UndoLen())
	}
	if hooks.pruned != 3 {
		t.Errorf("pruned = %d, want 3", hooks.pruned)
	}
	for s.Undo() {
	}
	if v != 3 {
		t.Errorf("v = %d, want 3 (only two commands undoable)", v)
	}
}

func TestStackUnlimited(t *testing.T) {
	v := 0
	s := NewStack(WithLimit(0))
	for i := 0; i < DefaultLimit+10; i++ {
		if err := s.Execute(&counter{value: &v}); err != nil {
			t.Fatal(err)
		}
	}
	if s.UndoLen() != DefaultLimit+10 || s.Limit() != 0 {
		t.Errorf("UndoLen() = %d, Limit() = %d", s.UndoLen(), s.Limit())
	}
}

func TestStackReentrant(t *testing.T) {
	s := NewStack()
	r := &reentrant{stack: s}
	if err := s.Execute(r); err != nil {
		t.Fatal(err)
	}
	if !errors.Is(r.err, ErrReentrant) {
		t.Errorf("nested Execute error = %v, want ErrReentrant", r.err)
	}
	if s.UndoLen() != 1 {
		t.Errorf("UndoLen() = %d, want 1", s.UndoLen())
	}
}

func TestStackRecordExecuted(t *testing.T) {
	v := 5
	s := NewStack()
	if err := s.RecordExecuted(&counter{name: "drag", value: &v}); err != nil {
		t.Fatal(err)
	}
	if v != 5 {
		t.Errorf("RecordExecuted ran the command: v=%d", v)
	}
	s.Undo()
	if v != 4 {
		t.Errorf("after undo v=%d, want 4", v)
	}
	if err := s.RecordExecuted(nil); !errors.Is(err, ErrNilCommand) {
		t.Errorf("RecordExecuted(nil) error = %v, want ErrNilCommand", err)
	}
}

func TestStackClear(t *testing.T) {
	v := 0
	s := NewStack()
	_ = s.Execute(&counter{value: &v})
	_ = s.Execute(&counter{value: &v})
	s.Undo()
	s.Clear()
	if s.CanUndo() || s.CanRedo() || s.UndoName() != "" || s.RedoName() != "" {
		t.Error("Clear() left history behind")
	}
}

type timingHooks struct {
	observability.NoopCommandHooks
	executed, undone, redone []string
}

func (h *timingHooks) OnExecute(name string, _ time.Duration) { h.executed = append(h.executed, name) }
func (h *timingHooks) OnUndo(name string, _ time.Duration)    { h.undone = append(h.undone, name) }
func (h *timingHooks) OnRedo(name string, _ time.Duration)    { h.redone = append(h.redone, name) }

func TestStackHooks(t *testing.T) {
	hooks := &timingHooks{}
	observability.SetCommandHooks(hooks)
	defer observability.Reset()

	v := 0
	s := NewStack()
	_ = s.Execute(&counter{name: "a", value: &v})
	s.Undo()
	s.Redo()
	if len(hooks.executed) != 1 || len(hooks.undone) != 1 || len(hooks.redone) != 1 {
		t.Errorf("hooks = %+v", hooks)
	}
}
