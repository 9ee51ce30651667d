package hostmem

import (
	"sync/atomic"

	"github.com/23skdu/quiver/internal/metrics"
)

// TrackingProvider wraps another Provider and counts the traffic through it:
// blocks and bytes currently outstanding plus lifetime totals, mirrored to
// Prometheus gauges. Useful in production to watch host pressure and in
// tests to prove every block came back.
type TrackingProvider struct {
	inner Provider

	blocksOutstanding atomic.Int64
	bytesOutstanding  atomic.Int64
	blocksTotal       atomic.Int64
	bytesTotal        atomic.Int64
}

var _ Provider = (*TrackingProvider)(nil)

// NewTrackingProvider wraps inner; nil means HeapProvider.
func NewTrackingProvider(inner Provider) *TrackingProvider {
	if inner == nil {
		inner = HeapProvider{}
	}
	return &TrackingProvider{inner: inner}
}

func (p *TrackingProvider) RequestBlock(size int) ([]byte, error) {
	block, err := p.inner.RequestBlock(size)
	if err != nil {
		return nil, err
	}
	n := int64(len(block))
	p.blocksOutstanding.Add(1)
	p.bytesOutstanding.Add(n)
	p.blocksTotal.Add(1)
	p.bytesTotal.Add(n)
	metrics.HostBlocksOutstanding.Inc()
	metrics.HostBytesOutstanding.Add(float64(n))
	return block, nil
}

func (p *TrackingProvider) ReleaseBlock(block []byte) {
	n := int64(len(block))
	p.blocksOutstanding.Add(-1)
	p.bytesOutstanding.Add(-n)
	metrics.HostBlocksOutstanding.Dec()
	metrics.HostBytesOutstanding.Sub(float64(n))
	p.inner.ReleaseBlock(block)
}

// BlocksOutstanding reports blocks currently held by arenas.
func (p *TrackingProvider) BlocksOutstanding() int64 { return p.blocksOutstanding.Load() }

// BytesOutstanding reports bytes currently held by arenas.
func (p *TrackingProvider) BytesOutstanding() int64 { return p.bytesOutstanding.Load() }

// BlocksTotal reports blocks handed out over the provider's lifetime.
func (p *TrackingProvider) BlocksTotal() int64 { return p.blocksTotal.Load() }

// BytesTotal reports bytes handed out over the provider's lifetime.
func (p *TrackingProvider) BytesTotal() int64 { return p.bytesTotal.Load() }
