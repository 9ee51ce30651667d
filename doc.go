// Package quiver implements a region-based (arena) allocator: callers carve
// many small blocks out of provider-backed pages with a cursor bump, then
// free everything at once by destroying the arena. There is no per-block
// free, no compaction, and no reuse of partially filled pages; the win is an
// O(1) allocation fast path and teardown cost proportional to pages, not
// blocks.
//
// # Usage
//
//	a := quiver.NewArena(hostmem.HeapProvider{})
//	defer a.Destroy()
//
//	b := a.Alloc(64)            // fatal on exhaustion
//	c, err := a.TryAlloc(1024)  // fail-soft variant
//
// Blocks are valid until Destroy or Reset. Alloc panics with the *AllocError
// that TryAlloc would return, so the failure contract is carried by the
// signature rather than a flag.
//
// # Providers
//
// Arenas draw pages through hostmem.Provider, never from the heap directly.
// The package ships heap, Arrow-allocator, anonymous-mmap, and tracking
// providers; anything satisfying the two-method interface works. Providers
// are borrowed and must outlive their arenas.
//
// # Pooling
//
// Startup/Shutdown bracket a process-wide pool of idle arena shells keyed by
// provider, so short-lived units of work can Acquire a ready arena and
// Release it back instead of constructing their own. Shells come back empty
// either way.
//
// # Diagnostics
//
// An Observer injected at construction sees every allocation: FaultSchedule
// forces deterministic host-failure paths in tests, Poisoner fills fresh
// blocks with 0xDD, MetricsObserver feeds Prometheus. Arenas without an
// observer pay one nil check.
//
// # Concurrency
//
// One arena, one goroutine; nothing in Arena is synchronized. The pool and
// the Prometheus collectors are safe for concurrent use.
package quiver
