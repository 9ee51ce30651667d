package hostmem

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeapProvider_RequestBlock(t *testing.T) {
	p := HeapProvider{}

	block, err := p.RequestBlock(4096)
	require.NoError(t, err)
	require.Len(t, block, 4096)

	// Blocks are writable and zeroed.
	assert.Equal(t, byte(0), block[0])
	block[0], block[4095] = 0xAA, 0xBB
	assert.Equal(t, byte(0xAA), block[0])

	p.ReleaseBlock(block)
}

func TestHeapProvider_InstancesCompareEqual(t *testing.T) {
	// All heap providers are one pool key.
	a, b := Provider(HeapProvider{}), Provider(HeapProvider{})
	assert.True(t, a == b)
}

func TestProvider_Contract(t *testing.T) {
	testCases := []struct {
		name     string
		provider Provider
	}{
		{"Heap", HeapProvider{}},
		{"Mmap", MmapProvider{}},
		{"Tracking", NewTrackingProvider(nil)},
		{"Arrow", NewArrowProvider(nil)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			blocks := make([][]byte, 0, 3)
			for _, size := range []int{1, 4096, 100000} {
				block, err := tc.provider.RequestBlock(size)
				require.NoError(t, err)
				require.GreaterOrEqual(t, len(block), size)

				// Blocks start word aligned, as the interface requires.
				addr := uintptr(unsafe.Pointer(&block[0]))
				require.Zero(t, addr%8, "size %d", size)

				// Every byte is writable.
				block[0] = 0x5A
				block[size-1] = 0x5A
				blocks = append(blocks, block)
			}
			for _, block := range blocks {
				tc.provider.ReleaseBlock(block)
			}
		})
	}
}
