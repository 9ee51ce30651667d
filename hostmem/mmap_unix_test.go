//go:build unix

package hostmem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMmapProvider_RoundTrip(t *testing.T) {
	p := MmapProvider{}

	block, err := p.RequestBlock(1 << 16)
	require.NoError(t, err)
	require.Len(t, block, 1<<16)

	// Mapped pages are writable and zero-filled.
	assert.Equal(t, byte(0), block[0])
	block[0] = 0x42
	block[len(block)-1] = 0x43
	assert.Equal(t, byte(0x42), block[0])
	assert.Equal(t, byte(0x43), block[len(block)-1])

	p.ReleaseBlock(block)
}

func TestMmapProvider_SubPageSize(t *testing.T) {
	p := MmapProvider{}

	// Requests smaller than a system page still round-trip cleanly.
	block, err := p.RequestBlock(100)
	require.NoError(t, err)
	require.Len(t, block, 100)
	p.ReleaseBlock(block)
}

func TestMmapProvider_ReleaseEmpty(t *testing.T) {
	p := MmapProvider{}
	assert.NotPanics(t, func() { p.ReleaseBlock(nil) })
}
