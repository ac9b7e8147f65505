package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ekistations/pkg/observability"
)

// logHooks writes pipeline, HTTP and cache events to the debug log.
type logHooks struct {
	logger *log.Logger
}

// registerLogHooks installs logHooks globally. The returned func restores
// the previous hooks.
func registerLogHooks(logger *log.Logger) func() {
	return observability.Install(logHooks{logger: logger})
}

func (h logHooks) OnStageStart(_ context.Context, stage string) {
	h.logger.Debug("Stage started", "stage", stage)
}

func (h logHooks) OnStageComplete(_ context.Context, stage string, items int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("Stage failed", "stage", stage, "duration", d.Round(time.Millisecond), "err", err)
		return
	}
	h.logger.Debug("Stage complete", "stage", stage, "items", items, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnDegraded(_ context.Context, stage, unit string, _ error) {
	h.logger.Debug("Unit degraded", "stage", stage, "unit", unit)
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("Request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("Response", "method", method, "path", path, "status", status, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("Request failed", "method", method, "host", host, "path", path, "err", err)
}

func (h logHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("Cache hit", "key", key)
}

func (h logHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("Cache miss", "key", key)
}

func (h logHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("Cache set", "key", key, "bytes", size)
}
