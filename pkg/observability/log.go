package observability

import (
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes command events to a logger at debug level and counts
// layout translations, which are too frequent to log one by one.
type LogHooks struct {
	logger   *log.Logger
	imported atomic.Int64
	exported atomic.Int64
}

// NewLogHooks returns hooks that log to l. It satisfies both CommandHooks
// and LayoutHooks.
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{logger: l.WithPrefix("history")}
}

func (h *LogHooks) OnExecute(name string, d time.Duration) {
	h.logger.Debug("execute", "command", name, "took", d)
}

func (h *LogHooks) OnUndo(name string, d time.Duration) {
	h.logger.Debug("undo", "command", name, "took", d)
}

func (h *LogHooks) OnRedo(name string, d time.Duration) {
	h.logger.Debug("redo", "command", name, "took", d)
}

func (h *LogHooks) OnPrune(count int) {
	h.logger.Debug("history full, dropped oldest", "count", count)
}

func (h *LogHooks) OnImport(string, time.Duration) { h.imported.Add(1) }

func (h *LogHooks) OnExport(bool, time.Duration) { h.exported.Add(1) }

// Report logs the translation counts. Callers run it once the command that
// installed the hooks has finished.
func (h *LogHooks) Report() {
	imported, exported := h.Translations()
	h.logger.Debug("layout translations", "imported", imported, "exported", exported)
}

// Translations returns how many elements were imported and exported.
func (h *LogHooks) Translations() (imported, exported int64) {
	return h.imported.Load(), h.exported.Load()
}
