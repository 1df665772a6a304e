package command

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/uiforge/pkg/observability"
)

// DefaultLimit is the history depth used by [NewStack] when no limit option
// is given.
const DefaultLimit = 100

// Stack executes commands and records them for undo and redo.
//
// Executing a new command clears the redo history. When a history limit is
// set, the oldest undo entries are discarded once it is exceeded. Stack is
// not safe for concurrent use.
type Stack struct {
	undo   []Command
	redo   []Command
	limit  int
	busy   bool
	logger *log.Logger
}

// Option configures a [Stack].
type Option func(*Stack)

// WithLimit caps the undo history at n entries. Zero or a negative value
// disables the cap.
func WithLimit(n int) Option {
	return func(s *Stack) { s.limit = n }
}

// WithLogger routes debug output about executed commands to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Stack) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStack creates an empty stack.
func NewStack(opts ...Option) *Stack {
	s := &Stack{limit: DefaultLimit, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Execute runs c and pushes it onto the undo history.
func (s *Stack) Execute(c Command) error {
	if c == nil {
		return ErrNilCommand
	}
	if s.busy {
		return ErrReentrant
	}
	start := time.Now()
	s.run(c.Execute)
	observability.Commands().OnExecute(c.Name(), time.Since(start))
	s.logger.Debug("execute", "command", c.Name())
	s.push(c)
	return nil
}

// RecordExecuted pushes c onto the undo history without executing it. Use
// it for changes applied live, such as a drag gesture, whose command is
// built once the gesture ends.
func (s *Stack) RecordExecuted(c Command) error {
	if c == nil {
		return ErrNilCommand
	}
	if s.busy {
		return ErrReentrant
	}
	observability.Commands().OnExecute(c.Name(), 0)
	s.logger.Debug("record", "command", c.Name())
	s.push(c)
	return nil
}

// Undo reverts the most recent command. It reports false when there is
// nothing to undo or the stack is busy.
func (s *Stack) Undo() bool {
	if len(s.undo) == 0 || s.busy {
		return false
	}
	c := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]

	start := time.Now()
	s.run(c.Undo)
	observability.Commands().OnUndo(c.Name(), time.Since(start))
	s.logger.Debug("undo", "command", c.Name())

	s.redo = append(s.redo, c)
	return true
}

// Redo re-executes the most recently undone command.
func (s *Stack) Redo() bool {
	if len(s.redo) == 0 || s.busy {
		return false
	}
	c := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]

	start := time.Now()
	s.run(c.Execute)
	observability.Commands().OnRedo(c.Name(), time.Since(start))
	s.logger.Debug("redo", "command", c.Name())

	s.undo = append(s.undo, c)
	return true
}

// CanUndo reports whether Undo would do anything.
func (s *Stack) CanUndo() bool { return len(s.undo) > 0 && !s.busy }

// CanRedo reports whether Redo would do anything.
func (s *Stack) CanRedo() bool { return len(s.redo) > 0 && !s.busy }

// UndoName returns the name of the command Undo would revert, or "".
func (s *Stack) UndoName() string {
	if len(s.undo) == 0 {
		return ""
	}
	return s.undo[len(s.undo)-1].Name()
}

// RedoName returns the name of the command Redo would re-apply, or "".
func (s *Stack) RedoName() string {
	if len(s.redo) == 0 {
		return ""
	}
	return s.redo[len(s.redo)-1].Name()
}

// UndoLen returns the number of undoable commands.
func (s *Stack) UndoLen() int { return len(s.undo) }

// RedoLen returns the number of redoable commands.
func (s *Stack) RedoLen() int { return len(s.redo) }

// Limit returns the history cap, or 0 when unlimited.
func (s *Stack) Limit() int {
	if s.limit < 0 {
		return 0
	}
	return s.limit
}

// Clear drops both histories.
func (s *Stack) Clear() {
	clear(s.undo)
	clear(s.redo)
	s.undo = s.undo[:0]
	s.redo = s.redo[:0]
}

// run invokes fn with the busy flag held. The flag is released even when fn
// panics so the stack stays usable after a recovered invariant failure.
func (s *Stack) run(fn func()) {
	s.busy = true
	defer func() { s.busy = false }()
	fn()
}

func (s *Stack) push(c Command) {
	s.undo = append(s.undo, c)
	clear(s.redo)
	s.redo = s.redo[:0]
	if s.limit > 0 && len(s.undo) > s.limit {
		n := len(s.undo) - s.limit
		clear(s.undo[:n])
		s.undo = s.undo[n:]
		observability.Commands().OnPrune(n)
		s.logger.Debug("prune", "dropped", n)
	}
}
