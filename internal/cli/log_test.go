package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info when quiet", false, func(l *log.Logger) { l.Info("lines retrieved") }, true},
		{"debug when quiet", false, func(l *log.Logger) { l.Debug("cache hit") }, false},
		{"debug when verbose", true, func(l *log.Logger) { l.Debug("cache hit") }, true},
		{"warn when quiet", false, func(l *log.Logger) { l.Warn("failed to parse") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, levelFor(tt.verbose)))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("Listed %d prefectures", 47)

	out := buf.String()
	if !strings.Contains(out, "Listed 47 prefectures (") {
		t.Errorf("progress output = %q", out)
	}
	if !strings.Contains(out, "s)") {
		t.Errorf("progress output lacks a duration: %q", out)
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext without a logger should return log.Default()")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), custom)
	if loggerFromContext(ctx) != custom {
		t.Fatal("loggerFromContext should return the attached logger")
	}
	loggerFromContext(ctx).Info("attached")
	if !strings.Contains(buf.String(), "attached") {
		t.Error("attached logger should write to its buffer")
	}
}
