package quiver

import (
	"sync"

	"github.com/23skdu/quiver/hostmem"
	"github.com/23skdu/quiver/internal/logging"
	"github.com/23skdu/quiver/internal/metrics"
)

// allocatorPool is the process-wide cache of idle arena shells, keyed by the
// provider they were bound to. One mutex guards all of it; the critical
// sections are a push or pop on a short list.
type allocatorPool struct {
	mu      sync.Mutex
	started bool
	cfg     Config
	idle    map[hostmem.Provider][]*Arena
}

var pool allocatorPool

// Startup initializes the process-wide arena pool, filling zero fields of
// cfg from DefaultConfig and applying its log settings. Every Startup must
// be matched by exactly one Shutdown; a second Startup without one panics.
func Startup(cfg Config) {
	if err := cfg.Validate(); err != nil {
		panic(err.Error())
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.PoolCapacity == 0 {
		cfg.PoolCapacity = DefaultConfig().PoolCapacity
	}
	if cfg.LogLevel != "" {
		logging.Configure(cfg.LogLevel, cfg.LogPretty)
	}

	pool.mu.Lock()
	defer pool.mu.Unlock()
	if pool.started {
		panic("quiver: Startup called twice without Shutdown")
	}
	pool.cfg = cfg
	pool.idle = make(map[hostmem.Provider][]*Arena)
	pool.started = true

	logging.Component("pool").Info().
		Int("page_size", cfg.PageSize).
		Int("capacity", cfg.PoolCapacity).
		Bool("bypass", cfg.BypassPool).
		Msg("allocator pool started")
}

// Shutdown discards every idle shell and releases the pool's state. Calling
// it without a prior Startup panics. Startup/Shutdown pairs may repeat
// sequentially over a process lifetime.
func Shutdown() {
	pool.mu.Lock()
	defer pool.mu.Unlock()
	if !pool.started {
		panic("quiver: Shutdown without Startup")
	}
	discarded := 0
	for _, shells := range pool.idle {
		discarded += len(shells)
	}
	pool.idle = nil
	pool.started = false
	metrics.PoolIdleShells.Set(0)

	logging.Component("pool").Info().Int("discarded", discarded).Msg("allocator pool stopped")
}

// Acquire returns an empty arena bound to p, reusing an idle shell when one
// exists for the same provider (interface equality). The caller owns the
// arena exclusively until Release. Acquire outside a Startup/Shutdown pair
// panics.
func Acquire(p hostmem.Provider) *Arena {
	if p == nil {
		panic("quiver: Acquire: nil provider")
	}
	pool.mu.Lock()
	if !pool.started {
		pool.mu.Unlock()
		panic("quiver: Acquire before Startup")
	}
	if shells := pool.idle[p]; !pool.cfg.BypassPool && len(shells) > 0 {
		a := shells[len(shells)-1]
		shells[len(shells)-1] = nil
		pool.idle[p] = shells[:len(shells)-1]
		pool.mu.Unlock()
		metrics.PoolAcquisitionsTotal.WithLabelValues("hit").Inc()
		metrics.PoolIdleShells.Dec()
		return a
	}
	cfg := pool.cfg
	pool.mu.Unlock()

	metrics.PoolAcquisitionsTotal.WithLabelValues("miss").Inc()
	opts := []Option{WithPageSize(cfg.PageSize)}
	if cfg.Poison {
		opts = append(opts, WithObserver(NewPoisoner()))
	}
	return NewArena(p, opts...)
}

// Release tears the arena down and parks the empty shell for reuse, up to
// the configured per-provider capacity; beyond that the shell is dropped so
// the pool's own footprint stays bounded. Releasing nil is a no-op.
func Release(a *Arena) {
	if a == nil {
		return
	}
	// Teardown runs outside the lock: Destroy is idempotent, and provider
	// calls must not happen under the pool mutex.
	a.Destroy()

	pool.mu.Lock()
	defer pool.mu.Unlock()
	if !pool.started {
		panic("quiver: Release before Startup")
	}
	if pool.cfg.BypassPool {
		return
	}
	shells := pool.idle[a.provider]
	if len(shells) >= pool.cfg.PoolCapacity {
		return
	}
	pool.idle[a.provider] = append(shells, a)
	metrics.PoolIdleShells.Inc()
}

// defaultPageSize is the process default: the configured size once the pool
// is up, the compiled-in default otherwise.
func defaultPageSize() int {
	pool.mu.Lock()
	defer pool.mu.Unlock()
	if pool.started {
		return pool.cfg.PageSize
	}
	return DefaultPageSize
}
