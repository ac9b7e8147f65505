// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries emit events through the registered hooks; the default hooks do
// nothing. The CLI registers implementations that write debug log lines, and
// tests register recorders.
//
//	observability.Pipeline().OnStageStart(ctx, "fetch_lines")
//	// ... fan out ...
//	observability.Pipeline().OnStageComplete(ctx, "fetch_lines", 612, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the crawl pipeline.
type PipelineHooks interface {
	// OnStageStart fires when the orchestrator enters a stage.
	OnStageStart(ctx context.Context, stage string)
	// OnStageComplete fires when a stage ends. items is the number of
	// records the stage produced; err is non-nil when the stage failed.
	OnStageComplete(ctx context.Context, stage string, items int, duration time.Duration, err error)
	// OnDegraded fires for each unit whose response could not be parsed.
	OnDegraded(ctx context.Context, stage, unit string, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache lookups.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, key string)
	OnCacheMiss(ctx context.Context, key string)
	OnCacheSet(ctx context.Context, key string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records a transport failure (connection error, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnStageStart(context.Context, string) {}
func (NoopPipelineHooks) OnStageComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnDegraded(context.Context, string, string, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

// registry is replaced as a whole on every change, so readers load one
// pointer and never lock.
type registry struct {
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var (
	current  atomic.Pointer[registry]
	updateMu sync.Mutex
)

func init() { Reset() }

func update(fn func(r *registry)) {
	updateMu.Lock()
	defer updateMu.Unlock()
	next := *current.Load()
	fn(&next)
	current.Store(&next)
}

// SetPipelineHooks registers pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(r *registry) { r.pipeline = h })
	}
}

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(r *registry) { r.cache = h })
	}
}

// SetHTTPHooks registers HTTP hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(r *registry) { r.http = h })
	}
}

// Install registers h for every hook interface it implements and returns a
// func that restores the hooks that were registered before.
func Install(h any) (restore func()) {
	prev := *current.Load()
	update(func(r *registry) {
		if p, ok := h.(PipelineHooks); ok {
			r.pipeline = p
		}
		if c, ok := h.(CacheHooks); ok {
			r.cache = c
		}
		if hh, ok := h.(HTTPHooks); ok {
			r.http = hh
		}
	})
	return func() {
		update(func(r *registry) { *r = prev })
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return current.Load().pipeline }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return current.Load().cache }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return current.Load().http }

// Reset restores all hooks to their no-op defaults.
func Reset() {
	current.Store(&registry{
		pipeline: NoopPipelineHooks{},
		cache:    NoopCacheHooks{},
		http:     NoopHTTPHooks{},
	})
}
