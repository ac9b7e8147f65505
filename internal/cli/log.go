// Package cli implements the ekistations command-line interface.
//
// The fetch command runs a full crawl of ekidata.jp and writes the stations
// to a JSON file. The remaining commands list prefectures, re-sort an
// existing station file, and manage the optional HTTP response cache.
//
// # Configuration
//
// Settings are read from an optional TOML file (see --config) and can be
// overridden per run with flags. Without a file the defaults reproduce a
// plain crawl: all 47 prefectures, unbounded concurrency, no caching.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing timestamped lines ("14:32:01.45") to w.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// levelFor maps the --verbose flag to a log level.
func levelFor(verbose bool) log.Level {
	if verbose {
		return log.DebugLevel
	}
	return log.InfoLevel
}

// progress logs how long an operation took. Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs the formatted message followed by the elapsed time, rounded to
// the millisecond: "Listed 47 prefectures (1.234s)".
func (p *progress) done(format string, args ...any) {
	args = append(args, time.Since(p.start).Round(time.Millisecond))
	p.logger.Infof(format+" (%s)", args...)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
