// Package hostmem is the boundary between arenas and the memory that backs
// them: a Provider hands out raw blocks and takes them back. Implementations
// decide what actually backs a block; the package ships heap, Arrow, mmap,
// and tracking providers.
package hostmem

// Provider supplies raw blocks to arenas and accepts them back at teardown.
//
// RequestBlock returns a block of at least size bytes or an error; it is
// never called with a non-positive size. Blocks must start at an
// 8-byte-aligned address: arenas place sub-blocks by offset alone, so every
// alignment guarantee they make is inherited from the page. ReleaseBlock is
// called at most once per returned block, always with the identical slice.
// A provider outlives every arena bound to it.
//
// Pooled arenas are keyed by provider equality: implementations meant to
// share one pool should be comparable values, per-instance providers should
// be pointers.
type Provider interface {
	RequestBlock(size int) ([]byte, error)
	ReleaseBlock(block []byte)
}

// HeapProvider draws blocks from the Go heap. ReleaseBlock is a no-op; the
// collector reclaims a block once the arena drops it. The zero value is
// ready to use, and all HeapProviders compare equal, so heap-backed arenas
// share one pool.
type HeapProvider struct{}

var _ Provider = HeapProvider{}

func (HeapProvider) RequestBlock(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func (HeapProvider) ReleaseBlock([]byte) {}
