// Package observability lets callers watch the command stack and the layout
// translator without those packages depending on a metrics or tracing
// backend.
//
// Hooks are process-wide and default to no-ops. Register them once at
// startup, before any document is loaded:
//
//	observability.SetCommandHooks(observability.NewLogHooks(logger))
//	observability.SetLayoutHooks(observability.NewLogHooks(logger))
//
// The stack reports every execute, undo, redo and history prune; the
// translator reports every element it imports or exports.
package observability

import (
	"sync"
	"time"
)

// CommandHooks receives command stack events. Commands recorded as already
// executed (a finished drag) are reported through OnExecute with a zero
// duration.
type CommandHooks interface {
	OnExecute(name string, duration time.Duration)
	OnUndo(name string, duration time.Duration)
	OnRedo(name string, duration time.Duration)
	// OnPrune reports commands dropped from the bottom of a full history.
	OnPrune(count int)
}

// LayoutHooks receives layout translator events.
type LayoutHooks interface {
	// OnImport reports one element resolved from anchor+margin to a rectangle.
	OnImport(kind string, duration time.Duration)
	// OnExport reports one element written back as anchor+margin.
	OnExport(absolute bool, duration time.Duration)
}

// NoopCommandHooks ignores every event.
type NoopCommandHooks struct{}

func (NoopCommandHooks) OnExecute(string, time.Duration) {}
func (NoopCommandHooks) OnUndo(string, time.Duration)    {}
func (NoopCommandHooks) OnRedo(string, time.Duration)    {}
func (NoopCommandHooks) OnPrune(int)                     {}

// NoopLayoutHooks ignores every event.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnImport(string, time.Duration) {}
func (NoopLayoutHooks) OnExport(bool, time.Duration)   {}

var (
	hooksMu      sync.RWMutex
	commandHooks CommandHooks = NoopCommandHooks{}
	layoutHooks  LayoutHooks  = NoopLayoutHooks{}
)

// SetCommandHooks installs h. A nil h is ignored.
func SetCommandHooks(h CommandHooks) {
	if h == nil {
		return
	}
	hooksMu.Lock()
	commandHooks = h
	hooksMu.Unlock()
}

// SetLayoutHooks installs h. A nil h is ignored.
func SetLayoutHooks(h LayoutHooks) {
	if h == nil {
		return
	}
	hooksMu.Lock()
	layoutHooks = h
	hooksMu.Unlock()
}

// Commands returns the installed command hooks.
func Commands() CommandHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return commandHooks
}

// Layout returns the installed layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Reset reinstalls the no-op hooks. Tests call it after installing their own.
func Reset() {
	hooksMu.Lock()
	commandHooks = NoopCommandHooks{}
	layoutHooks = NoopLayoutHooks{}
	hooksMu.Unlock()
}
