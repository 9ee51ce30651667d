// Package metrics holds the library's Prometheus collectors, registered on
// the default registry at import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PagesAcquiredTotal counts pages drawn from host providers, by sizing
	// class ("default" or "oversize").
	PagesAcquiredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiver_pages_acquired_total",
			Help: "Pages requested from host memory providers",
		},
		[]string{"class"},
	)

	// PagesReleasedTotal counts pages returned to host providers.
	PagesReleasedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quiver_pages_released_total",
			Help: "Pages returned to host memory providers",
		},
	)

	// BytesRequestedTotal counts bytes drawn from host providers.
	BytesRequestedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quiver_host_bytes_requested_total",
			Help: "Bytes drawn from host memory providers",
		},
	)

	// HostFailuresTotal counts refused block requests.
	HostFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quiver_host_failures_total",
			Help: "Block requests refused by host memory providers",
		},
	)

	// AllocationsTotal counts blocks handed out by arenas carrying a
	// metrics observer.
	AllocationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quiver_allocations_total",
			Help: "Blocks handed out by observed arenas",
		},
	)

	// AllocatedBytesTotal counts bytes handed out by observed arenas.
	AllocatedBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quiver_allocated_bytes_total",
			Help: "Bytes handed out by observed arenas",
		},
	)

	// PoolAcquisitionsTotal counts pool acquisitions by result ("hit" when
	// an idle shell was reused, "miss" when one was constructed).
	PoolAcquisitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiver_pool_acquisitions_total",
			Help: "Arena pool acquisitions by result",
		},
		[]string{"result"},
	)

	// PoolIdleShells gauges arena shells parked in the process pool.
	PoolIdleShells = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "quiver_pool_idle_shells",
			Help: "Arena shells currently parked in the process pool",
		},
	)

	// HostBlocksOutstanding gauges blocks currently out with arenas, as
	// seen by tracking providers.
	HostBlocksOutstanding = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "quiver_host_blocks_outstanding",
			Help: "Blocks out with arenas, as seen by tracking providers",
		},
	)

	// HostBytesOutstanding gauges bytes currently out with arenas, as seen
	// by tracking providers.
	HostBytesOutstanding = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "quiver_host_bytes_outstanding",
			Help: "Bytes out with arenas, as seen by tracking providers",
		},
	)
)
