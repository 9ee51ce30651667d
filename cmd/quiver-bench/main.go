package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/23skdu/quiver"
	"github.com/23skdu/quiver/hostmem"
)

// benchOptions is the flag surface. QUIVER_* environment variables configure
// the library itself; flags override where both apply.
type benchOptions struct {
	provider    string
	workers     int
	rounds      int
	allocs      int
	maxAlloc    int
	pageSize    int
	seed        int64
	metricsAddr string
	hold        time.Duration
}

func main() {
	_ = godotenv.Load()

	var opts benchOptions
	flag.StringVar(&opts.provider, "provider", "heap", "page source: heap, mmap, arrow or tracking")
	flag.IntVar(&opts.workers, "workers", runtime.GOMAXPROCS(0), "concurrent workers, one arena each")
	flag.IntVar(&opts.rounds, "rounds", 64, "acquire/release cycles per worker")
	flag.IntVar(&opts.allocs, "allocs", 4096, "allocations per cycle")
	flag.IntVar(&opts.maxAlloc, "max-alloc", 512, "largest allocation in bytes")
	flag.IntVar(&opts.pageSize, "page-size", 0, "page size override (0 = QUIVER_PAGE_SIZE or built-in default)")
	flag.Int64Var(&opts.seed, "seed", 1, "workload seed")
	flag.StringVar(&opts.metricsAddr, "metrics", "", "Prometheus listen address (empty = off)")
	flag.DurationVar(&opts.hold, "hold", 0, "keep serving metrics this long after the run")
	flag.Parse()

	// Setup JSON Logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := quiver.FromEnv()
	if err != nil {
		logger.Error("Bad configuration", "error", err)
		os.Exit(1)
	}
	cfg = applyFlags(cfg, opts)

	provider, tracking, err := buildProvider(opts.provider)
	if err != nil {
		logger.Error("Bad provider", "error", err)
		os.Exit(1)
	}

	// Start Metrics Server
	if opts.metricsAddr != "" {
		go func() {
			logger.Info("Starting metrics server", "address", opts.metricsAddr)
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(opts.metricsAddr, nil); err != nil {
				logger.Error("Failed to start metrics server", "error", err)
			}
		}()
	}

	quiver.Startup(cfg)
	defer quiver.Shutdown()

	pageSize := cfg.PageSize
	if pageSize == 0 {
		pageSize = quiver.DefaultPageSize
	}

	logger.Info("Benchmark starting",
		"provider", opts.provider,
		"workers", opts.workers,
		"rounds", opts.rounds,
		"allocs", opts.allocs,
		"max_alloc", opts.maxAlloc,
		"page_size", pageSize,
	)

	start := time.Now()
	var wg sync.WaitGroup
	for w := 0; w < opts.workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(opts.seed + int64(worker)))
			for r := 0; r < opts.rounds; r++ {
				runRound(provider, rng, opts.allocs, opts.maxAlloc, pageSize)
			}
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start)

	total := int64(opts.workers) * int64(opts.rounds) * int64(opts.allocs)
	rate := float64(total) / elapsed.Seconds()

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	logger.Info("Benchmark complete",
		"allocations", total,
		"elapsed", elapsed.String(),
		"allocs_per_sec", int64(rate),
		"heap_alloc_bytes", ms.HeapAlloc,
		"total_alloc_bytes", ms.TotalAlloc,
		"num_gc", ms.NumGC,
	)
	if tracking != nil {
		logger.Info("Host traffic",
			"blocks_outstanding", tracking.BlocksOutstanding(),
			"bytes_outstanding", tracking.BytesOutstanding(),
			"blocks_total", tracking.BlocksTotal(),
			"bytes_total", tracking.BytesTotal(),
		)
	}

	if opts.hold > 0 {
		logger.Info("Holding for metrics scrape", "duration", opts.hold.String())
		time.Sleep(opts.hold)
	}
}

// runRound drives one arena through a pool round-trip: many small blocks,
// one oversize block to force an exact-fit page, then release.
func runRound(provider hostmem.Provider, rng *rand.Rand, allocs, maxAlloc, pageSize int) {
	a := quiver.Acquire(provider)
	for i := 0; i < allocs; i++ {
		block := a.Alloc(1 + rng.Intn(maxAlloc))
		block[0] = byte(i)
		block[len(block)-1] = byte(i >> 8)
	}
	oversize := a.Alloc(pageSize * 2)
	oversize[0] = 1
	quiver.Release(a)
}

// applyFlags folds flag overrides into the environment-derived config.
func applyFlags(cfg quiver.Config, opts benchOptions) quiver.Config {
	if opts.pageSize > 0 {
		cfg.PageSize = opts.pageSize
	}
	return cfg
}

// buildProvider maps a flag name to a host memory provider. The tracking
// provider is returned separately so the report can read its counters.
func buildProvider(name string) (hostmem.Provider, *hostmem.TrackingProvider, error) {
	switch name {
	case "heap":
		return hostmem.HeapProvider{}, nil, nil
	case "mmap":
		return hostmem.MmapProvider{}, nil, nil
	case "arrow":
		return hostmem.NewArrowProvider(nil), nil, nil
	case "tracking":
		t := hostmem.NewTrackingProvider(hostmem.HeapProvider{})
		return t, t, nil
	default:
		return nil, nil, fmt.Errorf("unknown provider %q", name)
	}
}
