// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about pattern loading, rendering, verification, cache
// operations and served HTTP requests.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so library packages never
// import a metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnVerifyStart(ctx, "dst", 2)
//	// ... run the round trips ...
//	observability.Pipeline().OnVerifyComplete(ctx, "dst", 2, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from loading, rendering and verification.
type PipelineHooks interface {
	// Load events
	OnLoadStart(ctx context.Context, format string)
	OnLoadComplete(ctx context.Context, format string, stitchCount int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)

	// Verify events
	OnVerifyStart(ctx context.Context, codec string, iterations int)
	OnVerifyIteration(ctx context.Context, iteration, divergences int)
	OnVerifyComplete(ctx context.Context, codec string, iterations int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP service.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the response sent for a request.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string) {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}
func (NoopPipelineHooks) OnVerifyStart(context.Context, string, int)                       {}
func (NoopPipelineHooks) OnVerifyIteration(context.Context, int, int)                      {}
func (NoopPipelineHooks) OnVerifyComplete(context.Context, string, int, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

// registry holds the active hooks. Reads vastly outnumber writes: hooks are
// set once at startup and read on every event.
type registry struct {
	mu       sync.RWMutex
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

func (r *registry) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pipeline = NoopPipelineHooks{}
	r.cache = NoopCacheHooks{}
	r.http = NoopHTTPHooks{}
}

var active = func() *registry {
	r := &registry{}
	r.reset()
	return r
}()

// SetPipelineHooks registers pipeline hooks. Nil is ignored.
// Call it at startup, before the first pattern is loaded.
func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	active.mu.Lock()
	defer active.mu.Unlock()
	active.pipeline = h
}

// SetCacheHooks registers cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	active.mu.Lock()
	defer active.mu.Unlock()
	active.cache = h
}

// SetHTTPHooks registers HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h == nil {
		return
	}
	active.mu.Lock()
	defer active.mu.Unlock()
	active.http = h
}

// SetAll registers h for every hook category it implements.
func SetAll(h any) {
	if p, ok := h.(PipelineHooks); ok {
		SetPipelineHooks(p)
	}
	if c, ok := h.(CacheHooks); ok {
		SetCacheHooks(c)
	}
	if x, ok := h.(HTTPHooks); ok {
		SetHTTPHooks(x)
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	active.mu.RLock()
	defer active.mu.RUnlock()
	return active.pipeline
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	active.mu.RLock()
	defer active.mu.RUnlock()
	return active.cache
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	active.mu.RLock()
	defer active.mu.RUnlock()
	return active.http
}

// Reset restores the no-op hooks. Tests use it to undo registrations.
func Reset() {
	active.reset()
}
