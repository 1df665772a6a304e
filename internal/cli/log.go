// Package cli implements the uiforge command-line interface.
//
// This package provides commands for inspecting, validating, converting and
// rendering layout documents, plus an interactive terminal editor. The CLI
// is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - inspect: Print the element hierarchy and document statistics
//   - check: Validate one or more documents concurrently
//   - convert: Re-save a document as JSON or TOML
//   - render: Generate wireframe or hierarchy diagrams (SVG, PDF, PNG, DOT)
//   - set, align: Apply a single edit from the command line
//   - edit: Interactive terminal editor with undo and redo
//   - cache: Manage the render cache
//
// # Configuration
//
// Editor settings (snapping, canvas size, history limit, text size, export
// mode) are read from --config or $XDG_CONFIG_HOME/uiforge/config.toml.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// logTimeFormat prints hours to hundredths of a second, e.g. "14:32:01.45".
const logTimeFormat = "15:04:05.00"

// newLogger returns a timestamped logger writing to w at level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      logTimeFormat,
		Level:           level,
	})
}

// progress logs how long a batch of work took. Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Checked 12 documents (84ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, p.elapsed())
}

func (p *progress) elapsed() time.Duration {
	return time.Since(p.start).Round(time.Millisecond)
}

type ctxKey struct{}

// withLogger attaches l to ctx for the commands run under it.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() so tests that build commands directly still log somewhere.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
