// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries in this module report events through hook interfaces instead of
// importing a metrics backend. The binaries register implementations at
// startup; everything else sees the no-op defaults.
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetAssignHooks(&myAssignHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Assign().OnSolveStart(ctx, mode, seats, groups)
//	// ... solve ...
//	observability.Assign().OnSolveComplete(ctx, mode, seats, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Assignment Hooks
// =============================================================================

// AssignHooks receives events from the assignment pipeline.
type AssignHooks interface {
	// OnParse records a parsed roster.
	OnParse(ctx context.Context, people, groups, locked int)

	// OnSolveStart fires before seats are assigned. mode is "solve",
	// "shuffle" or "ordered".
	OnSolveStart(ctx context.Context, mode string, seats, groups int)

	// OnSolveComplete fires after assignment, with the error if it failed.
	OnSolveComplete(ctx context.Context, mode string, seats int, duration time.Duration, err error)
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

// HTTPHooks receives events from the API server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records the response sent for a request.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopAssignHooks is a no-op implementation of AssignHooks.
type NoopAssignHooks struct{}

func (NoopAssignHooks) OnParse(context.Context, int, int, int)                             {}
func (NoopAssignHooks) OnSolveStart(context.Context, string, int, int)                     {}
func (NoopAssignHooks) OnSolveComplete(context.Context, string, int, time.Duration, error) {}

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

var (
	assignHooks AssignHooks = NoopAssignHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
	hooksMu     sync.RWMutex
)

// SetAssignHooks registers custom assignment hooks. Nil is ignored.
func SetAssignHooks(h AssignHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		assignHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Assign returns the registered assignment hooks.
func Assign() AssignHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return assignHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	assignHooks = NoopAssignHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
