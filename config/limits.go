// Package config centralizes the numeric limits and feature flags that the
// rest of the simulator is built against. None of it is package-level mutable
// state: callers construct a Limits_t (or use Default()) and pass it
// explicitly to the constructors that need it.
package config

import "sync/atomic"

// Page geometry. PGSHIFT picks a small page size (256 bytes) so that unit
// tests can exercise swap-in/swap-out with a handful of frames instead of
// needing megabytes of backing store.
const (
	PGSHIFT uint = 8
	PGSIZE  int  = 1 << PGSHIFT
	PGOFFST int  = PGSIZE - 1
)

// Page-directory and symbol-table sizing.
const (
	MAXPGN    = 16 * 1024 // entries in one page directory
	SYMTBLSZ  = 30        // PAGING_MAX_SYMTBL_SZ
	MAXMMSWAP = 4         // PAGING_MAX_MMSWP, max swap devices attachable to one pcb
)

// Scheduler sizing.
const (
	MAXQSZ  = 10  // MAX_QUEUE_SIZE
	MAXPRIO = 139 // MAX_PRIO
)

// Variant_t selects the scheduling discipline. It replaces the MLQ_SCHED
// compile-time flag with a runtime value on the scheduler object.
type Variant_t int

const (
	MLQ  Variant_t = iota // multi-level, per-level cpuRemainder quotas
	FCFS                  // single ready queue, first-come first-served
)

// Flags_t replaces the IODUMP/MEMPHYS_DUMP preprocessor flags with runtime
// fields; they are handed to trace.New, and the paging engine consults the
// resulting trace sink.
type Flags_t struct {
	IODUMP      bool
	MEMPHYSDUMP bool
}

// Limits_t is the one place every PAGING_MAX_*/MAX_* constant and feature
// flag lives: a single struct built once via a constructor and handed to
// whatever needs it, rather than scattered package-level globals.
type Limits_t struct {
	Variant Variant_t
	Flags   Flags_t

	// RamFrames/SwapFrames size the default MEMPHY stores a test harness
	// or cmd/simrun driver wires up; the memphy package itself takes an
	// explicit frame count and does not read these, but callers that
	// build a whole simulated machine from a Limits_t use them.
	RamFrames  int
	SwapFrames int
}

// Default returns the limits cmd/simrun starts from: the
// multi-level scheduler, tracing off, and a small RAM/swap footprint (2
// RAM frames, 4 swap frames) sized for exercising swap-in/swap-out without
// needing megabytes of backing store.
func Default() *Limits_t {
	return &Limits_t{
		Variant:    MLQ,
		RamFrames:  2,
		SwapFrames: 4,
	}
}

// Gauge_t is an atomically-updated resource gauge: Take/Give move it
// down/up and Take refuses to drive the gauge negative.
type Gauge_t int64

// Give increases the gauge by n.
func (g *Gauge_t) Give(n int64) {
	if n < 0 {
		panic("Gauge_t.Give: negative amount")
	}
	atomic.AddInt64((*int64)(g), n)
}

// Take decreases the gauge by n, returning false (and leaving the gauge
// unchanged) if that would drive it negative.
func (g *Gauge_t) Take(n int64) bool {
	if n < 0 {
		panic("Gauge_t.Take: negative amount")
	}
	if atomic.AddInt64((*int64)(g), -n) >= 0 {
		return true
	}
	atomic.AddInt64((*int64)(g), n)
	return false
}

// Load returns the current gauge value.
func (g *Gauge_t) Load() int64 {
	return atomic.LoadInt64((*int64)(g))
}
