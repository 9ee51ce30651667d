package quiver

import (
	"unsafe"

	"github.com/apache/arrow-go/v18/arrow/memory"
)

// arrowAlign matches Arrow's buffer alignment so builders backed by an arena
// get the same guarantees as the stock Go allocator.
const arrowAlign = 64

// ArrowAllocator adapts an arena to Arrow's memory.Allocator, letting record
// builders and buffers live in arena memory. Free is a no-op: blocks return
// to the provider when the arena is destroyed. Like the arena itself, it is
// single-goroutine.
type ArrowAllocator struct {
	arena *Arena
}

var _ memory.Allocator = (*ArrowAllocator)(nil)

// ArrowAllocator returns an Arrow-compatible view of the arena.
func (a *Arena) ArrowAllocator() *ArrowAllocator {
	return &ArrowAllocator{arena: a}
}

// Allocate returns a 64-byte-aligned block of the given size drawn from the
// arena. Exhaustion panics, matching both Alloc and Arrow's own allocators.
func (al *ArrowAllocator) Allocate(size int) []byte {
	if size < 0 {
		panic("quiver: ArrowAllocator.Allocate: negative size")
	}
	if size == 0 {
		return nil
	}
	// Over-allocate and shift to the next 64-byte boundary; the arena only
	// guarantees word alignment relative to the page base.
	raw := al.arena.Alloc(size + arrowAlign)
	addr := uintptr(unsafe.Pointer(&raw[0]))
	shift := 0
	if r := int(addr & (arrowAlign - 1)); r != 0 {
		shift = arrowAlign - r
	}
	return raw[shift : shift+size : shift+size]
}

// Reallocate returns a block of the new size holding b's contents. Shrinking
// reslices in place; growing allocates fresh arena memory and copies, since
// bump allocation cannot extend a block.
func (al *ArrowAllocator) Reallocate(size int, b []byte) []byte {
	if size <= cap(b) {
		return b[:size]
	}
	block := al.Allocate(size)
	copy(block, b)
	return block
}

// Free is a no-op; arena memory is reclaimed all at once by Destroy.
func (al *ArrowAllocator) Free(b []byte) {}
