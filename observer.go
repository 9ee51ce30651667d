package quiver

import (
	"errors"

	"github.com/23skdu/quiver/internal/metrics"
)

// Observer is a diagnostics capability consulted on every allocation. It is
// injected at construction; arenas without one pay a single nil check on the
// fast path.
type Observer interface {
	// FailNext reports whether this allocation should be treated as host
	// exhaustion. When true the arena fails exactly as if the provider had
	// refused the block and leaves the page chain untouched.
	FailNext(size int) bool

	// Allocated runs on every returned block before the caller sees it.
	Allocated(block []byte)
}

// errInjected is the cause recorded beneath ErrHostExhausted when a probe
// forces a failure. Callers observe the same error shape as a genuine
// provider refusal.
var errInjected = errors.New("block request refused")

// FaultSchedule is a deterministic failure probe for tests: it refuses the
// allocations whose ordinals (counting from 1) were given at construction.
type FaultSchedule struct {
	fail map[int]bool
	seen int
}

var _ Observer = (*FaultSchedule)(nil)

// NewFaultSchedule returns a schedule failing the given allocation ordinals.
func NewFaultSchedule(ordinals ...int) *FaultSchedule {
	s := &FaultSchedule{fail: make(map[int]bool, len(ordinals))}
	for _, n := range ordinals {
		s.fail[n] = true
	}
	return s
}

func (s *FaultSchedule) FailNext(int) bool {
	s.seen++
	return s.fail[s.seen]
}

func (s *FaultSchedule) Allocated([]byte) {}

// Probes reports how many allocations the schedule has been consulted for.
func (s *FaultSchedule) Probes() int { return s.seen }

// PoisonByte is the fill pattern Poisoner writes into fresh blocks.
const PoisonByte = 0xDD

// Poisoner fills every returned block with a fixed pattern so reads of
// uninitialized arena memory show up in dumps and assertions instead of as
// silent zeroes.
type Poisoner struct {
	Pattern byte
}

var _ Observer = (*Poisoner)(nil)

// NewPoisoner returns a Poisoner using PoisonByte.
func NewPoisoner() *Poisoner { return &Poisoner{Pattern: PoisonByte} }

func (p *Poisoner) FailNext(int) bool { return false }

func (p *Poisoner) Allocated(block []byte) {
	for i := range block {
		block[i] = p.Pattern
	}
}

// MetricsObserver counts blocks and bytes handed out in Prometheus. It is
// the production wiring of the same capability the fault schedule uses in
// tests.
type MetricsObserver struct{}

var _ Observer = MetricsObserver{}

func (MetricsObserver) FailNext(int) bool { return false }

func (MetricsObserver) Allocated(block []byte) {
	metrics.AllocationsTotal.Inc()
	metrics.AllocatedBytesTotal.Add(float64(len(block)))
}

// Observers composes several observers into one: the first probe to report
// failure wins, and every Allocated hook runs in order.
func Observers(list ...Observer) Observer {
	return multiObserver(list)
}

type multiObserver []Observer

func (m multiObserver) FailNext(size int) bool {
	for _, o := range m {
		if o.FailNext(size) {
			return true
		}
	}
	return false
}

func (m multiObserver) Allocated(block []byte) {
	for _, o := range m {
		o.Allocated(block)
	}
}
