package hostmem

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow/memory"
)

// ArrowProvider draws blocks from an Apache Arrow allocator, giving arenas
// 64-byte-aligned pages and, with memory.CheckedAllocator underneath, exact
// release accounting in tests. Use one *ArrowProvider per allocator; pointer
// identity keys the arena pool.
type ArrowProvider struct {
	alloc memory.Allocator
}

var _ Provider = (*ArrowProvider)(nil)

// NewArrowProvider wraps alloc; nil means memory.DefaultAllocator.
func NewArrowProvider(alloc memory.Allocator) *ArrowProvider {
	if alloc == nil {
		alloc = memory.DefaultAllocator
	}
	return &ArrowProvider{alloc: alloc}
}

// RequestBlock allocates through the Arrow allocator. Arrow allocators
// signal exhaustion by panicking, so the panic is converted to an error at
// this boundary.
func (p *ArrowProvider) RequestBlock(size int) (block []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			block = nil
			err = fmt.Errorf("arrow allocator: %v", r)
		}
	}()
	return p.alloc.Allocate(size), nil
}

func (p *ArrowProvider) ReleaseBlock(block []byte) {
	p.alloc.Free(block)
}
