package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info", log.InfoLevel, func(l *log.Logger) { l.Info("opened doc.json") }, true},
		{"debug at info", log.InfoLevel, func(l *log.Logger) { l.Debug("3 elements") }, false},
		{"debug at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("3 elements") }, true},
		{"warn at error", log.ErrorLevel, func(l *log.Logger) { l.Warn("text measurement disabled") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("wrote output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestLogLevelFlag(t *testing.T) {
	if LogDebug != log.DebugLevel || LogInfo != log.InfoLevel {
		t.Errorf("LogDebug, LogInfo = %v, %v, want debug, info", LogDebug, LogInfo)
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.start = prog.start.Add(-1500 * time.Millisecond)

	prog.done("Checked 2 documents")

	out := buf.String()
	if !strings.Contains(out, "Checked 2 documents") {
		t.Errorf("output = %q, want message", out)
	}
	if !strings.Contains(out, "(1.5s)") {
		t.Errorf("output = %q, want elapsed (1.5s)", out)
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext() without a logger should return log.Default()")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	got := loggerFromContext(withLogger(context.Background(), custom))
	if got != custom {
		t.Fatal("loggerFromContext() did not return the attached logger")
	}
	got.Info("saved")
	if buf.Len() == 0 {
		t.Error("attached logger should write to its buffer")
	}
}
