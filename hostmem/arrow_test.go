package hostmem

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type panicAllocator struct{}

func (panicAllocator) Allocate(int) []byte           { panic("allocation failed") }
func (panicAllocator) Reallocate(int, []byte) []byte { panic("allocation failed") }
func (panicAllocator) Free([]byte)                   {}

func TestArrowProvider_RoundTrip(t *testing.T) {
	checked := memory.NewCheckedAllocator(memory.NewGoAllocator())
	p := NewArrowProvider(checked)

	b1, err := p.RequestBlock(4096)
	require.NoError(t, err)
	require.Len(t, b1, 4096)
	b2, err := p.RequestBlock(100)
	require.NoError(t, err)
	require.Len(t, b2, 100)

	p.ReleaseBlock(b1)
	p.ReleaseBlock(b2)

	// Every block went back to the allocator.
	checked.AssertSize(t, 0)
}

func TestArrowProvider_PanicBecomesError(t *testing.T) {
	p := NewArrowProvider(panicAllocator{})

	block, err := p.RequestBlock(1 << 20)
	assert.Nil(t, block)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arrow allocator")
	assert.Contains(t, err.Error(), "allocation failed")
}

func TestArrowProvider_NilDefaultsToStock(t *testing.T) {
	p := NewArrowProvider(nil)
	block, err := p.RequestBlock(256)
	require.NoError(t, err)
	assert.Len(t, block, 256)
	p.ReleaseBlock(block)
}
