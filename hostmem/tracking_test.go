package hostmem

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type refusingProvider struct {
	err error
}

func (p refusingProvider) RequestBlock(int) ([]byte, error) { return nil, p.err }
func (p refusingProvider) ReleaseBlock([]byte)              {}

func TestTrackingProvider_Counts(t *testing.T) {
	p := NewTrackingProvider(nil)

	b1, err := p.RequestBlock(4096)
	require.NoError(t, err)
	b2, err := p.RequestBlock(1024)
	require.NoError(t, err)

	assert.Equal(t, int64(2), p.BlocksOutstanding())
	assert.Equal(t, int64(5120), p.BytesOutstanding())
	assert.Equal(t, int64(2), p.BlocksTotal())
	assert.Equal(t, int64(5120), p.BytesTotal())

	p.ReleaseBlock(b1)
	assert.Equal(t, int64(1), p.BlocksOutstanding())
	assert.Equal(t, int64(1024), p.BytesOutstanding())

	p.ReleaseBlock(b2)
	assert.Zero(t, p.BlocksOutstanding())
	assert.Zero(t, p.BytesOutstanding())

	// Lifetime totals never go down.
	assert.Equal(t, int64(2), p.BlocksTotal())
	assert.Equal(t, int64(5120), p.BytesTotal())
}

func TestTrackingProvider_ErrorPassThrough(t *testing.T) {
	cause := errors.New("no memory")
	p := NewTrackingProvider(refusingProvider{err: cause})

	block, err := p.RequestBlock(4096)
	assert.Nil(t, block)
	assert.ErrorIs(t, err, cause)

	// Failed requests leave the counters untouched.
	assert.Zero(t, p.BlocksOutstanding())
	assert.Zero(t, p.BlocksTotal())
}

func TestTrackingProvider_NilDefaultsToHeap(t *testing.T) {
	p := NewTrackingProvider(nil)
	block, err := p.RequestBlock(64)
	require.NoError(t, err)
	assert.Len(t, block, 64)
	p.ReleaseBlock(block)
}
