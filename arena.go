package quiver

import (
	"fmt"

	"github.com/23skdu/quiver/hostmem"
	"github.com/23skdu/quiver/internal/logging"
	"github.com/23skdu/quiver/internal/metrics"
)

const (
	// alignWord is the allocation granularity. Every block starts at an
	// offset rounded to this, so callers may store word-sized fields
	// directly in arena memory.
	alignWord = 8

	// DefaultPageSize is 16 OS pages. Large enough that page turnover is
	// rare under small-allocation workloads, small enough that a mostly
	// idle arena wastes little.
	DefaultPageSize = 16 * 4096
)

// page is one contiguous block drawn from the provider. Metadata lives out
// of band, so the whole buffer is usable body.
type page struct {
	buf []byte
	// used is the bytes consumed when the page was superseded. The current
	// page's usage is the arena cursor, not this field.
	used int
}

// Arena hands out sub-blocks of provider-backed pages by advancing a cursor
// and frees them all at once on Destroy. An arena is not safe for concurrent
// use; it belongs to one goroutine at a time.
type Arena struct {
	provider hostmem.Provider
	observer Observer

	pages []page
	off   int // next free byte in the current page
	limit int // len of the current page's buffer

	pageSize int
}

// Option configures an Arena at construction.
type Option func(*Arena)

// WithPageSize overrides the default page size for this arena.
func WithPageSize(n int) Option {
	if n <= 0 {
		panic(fmt.Sprintf("quiver: WithPageSize: non-positive size %d", n))
	}
	return func(a *Arena) { a.pageSize = n }
}

// WithObserver injects a diagnostics observer consulted on every allocation.
func WithObserver(o Observer) Option {
	return func(a *Arena) { a.observer = o }
}

// NewArena returns an empty arena bound to p. No memory is requested until
// the first allocation. The provider is borrowed, not owned, and must outlive
// the arena.
func NewArena(p hostmem.Provider, opts ...Option) *Arena {
	if p == nil {
		panic("quiver: NewArena: nil provider")
	}
	a := &Arena{provider: p, pageSize: defaultPageSize()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Alloc returns a block of at least size bytes, uniquely owned by the caller
// until the arena is destroyed. On host exhaustion it panics with the
// *AllocError that TryAlloc would have returned. A non-positive size panics.
func (a *Arena) Alloc(size int) []byte {
	b, err := a.alloc("Alloc", size)
	if err != nil {
		panic(err)
	}
	return b
}

// TryAlloc is the fail-soft variant of Alloc: host exhaustion comes back as
// an *AllocError wrapping ErrHostExhausted instead of a panic, and the arena
// is left exactly as it was before the call.
func (a *Arena) TryAlloc(size int) ([]byte, error) {
	return a.alloc("TryAlloc", size)
}

func (a *Arena) alloc(op string, size int) ([]byte, error) {
	if size <= 0 {
		panic(fmt.Sprintf("quiver: %s: non-positive size %d", op, size))
	}
	rounded := roundUp(size)
	if rounded < size {
		// Rounding wrapped past the top of the int range.
		return nil, hostFailure(op, size, errSizeOverflow)
	}

	if a.observer != nil && a.observer.FailNext(size) {
		return nil, hostFailure(op, size, errInjected)
	}

	// Written as a subtraction so the comparison cannot itself overflow.
	if rounded > a.limit-a.off {
		if err := a.grow(rounded); err != nil {
			return nil, hostFailure(op, size, err)
		}
	}

	buf := a.pages[len(a.pages)-1].buf
	block := buf[a.off : a.off+size : a.off+rounded]
	a.off += rounded

	if a.observer != nil {
		a.observer.Allocated(block)
	}
	return block, nil
}

// grow appends a fresh page able to hold rounded bytes and points the cursor
// at it. The outgoing page's accounting is closed first. On provider failure
// nothing is linked and the cursor is untouched.
func (a *Arena) grow(rounded int) error {
	blockSize := a.pageSize
	class := "default"
	if rounded > blockSize {
		// Oversize request: size the page to exactly fit instead of
		// wasting a default page at a smaller excess.
		blockSize = rounded
		class = "oversize"
	}

	buf, err := a.provider.RequestBlock(blockSize)
	if err != nil {
		metrics.HostFailuresTotal.Inc()
		logging.Component("arena").Warn().Int("size", blockSize).Err(err).Msg("host block request failed")
		return err
	}

	if n := len(a.pages); n > 0 {
		a.pages[n-1].used = a.off
	}
	a.pages = append(a.pages, page{buf: buf})
	a.off = 0
	a.limit = len(buf)

	metrics.PagesAcquiredTotal.WithLabelValues(class).Inc()
	metrics.BytesRequestedTotal.Add(float64(len(buf)))
	if class == "oversize" {
		logging.Component("arena").Debug().Int("size", blockSize).Msg("oversize page acquired")
	}
	return nil
}

// Destroy returns every page to the provider and resets the arena to its
// uninitialized state. Idempotent: destroying an empty arena is a no-op. The
// arena is immediately reusable; the next allocation starts a fresh chain.
func (a *Arena) Destroy() {
	if len(a.pages) == 0 {
		return
	}
	n := len(a.pages)
	for i := range a.pages {
		a.provider.ReleaseBlock(a.pages[i].buf)
		a.pages[i] = page{}
	}
	a.pages = nil
	a.off, a.limit = 0, 0
	metrics.PagesReleasedTotal.Add(float64(n))
}

// Reset rewinds the arena for reuse without a round-trip through the
// provider: the first page is kept with its cursor at zero, every later page
// is released. An arena whose first page is oversize, or that has no pages,
// degenerates to Destroy. Cheaper than Destroy when the caller is about to
// fill the arena again.
func (a *Arena) Reset() {
	if len(a.pages) == 0 {
		return
	}
	if len(a.pages[0].buf) != a.pageSize {
		a.Destroy()
		return
	}
	released := len(a.pages) - 1
	for i := 1; i < len(a.pages); i++ {
		a.provider.ReleaseBlock(a.pages[i].buf)
		a.pages[i] = page{}
	}
	a.pages = a.pages[:1]
	a.pages[0].used = 0
	a.off = 0
	a.limit = len(a.pages[0].buf)
	if released > 0 {
		metrics.PagesReleasedTotal.Add(float64(released))
	}
}

// TotalBytesAllocated reports the high-water mark of memory drawn from the
// provider: the sum of every page's capacity, used or not.
func (a *Arena) TotalBytesAllocated() int {
	total := 0
	for i := range a.pages {
		total += len(a.pages[i].buf)
	}
	return total
}

// TotalBytesUsed reports the bytes consumed by allocations, alignment
// padding included: closed pages contribute their recorded usage, the
// current page its cursor.
func (a *Arena) TotalBytesUsed() int {
	if len(a.pages) == 0 {
		return 0
	}
	total := a.off
	for i := 0; i < len(a.pages)-1; i++ {
		total += a.pages[i].used
	}
	return total
}

// Pages reports the number of pages in the chain.
func (a *Arena) Pages() int { return len(a.pages) }

// Remaining reports the free bytes left in the current page.
func (a *Arena) Remaining() int { return a.limit - a.off }

func roundUp(n int) int {
	return (n + alignWord - 1) &^ (alignWord - 1)
}
