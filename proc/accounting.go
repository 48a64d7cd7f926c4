package proc

import (
	"sync"
	"sync/atomic"
	"time"
)

// Usage_t accumulates per-process CPU-time accounting: atomic nanosecond
// counters with a lock taken only when a caller wants a consistent
// snapshot of both fields together.
type Usage_t struct {
	// Nanoseconds spent running this PCB's own instructions.
	Runns int64
	// Nanoseconds spent inside the paging engine servicing this PCB's faults.
	Faultns int64
	sync.Mutex
}

// Runadd adds delta nanoseconds to the run-time counter.
func (a *Usage_t) Runadd(delta time.Duration) {
	atomic.AddInt64(&a.Runns, int64(delta))
}

// Faultadd adds delta nanoseconds to the fault-servicing counter.
func (a *Usage_t) Faultadd(delta time.Duration) {
	atomic.AddInt64(&a.Faultns, int64(delta))
}

// Snapshot_t is a consistent point-in-time copy of a Usage_t.
type Snapshot_t struct {
	Run   time.Duration
	Fault time.Duration
}

// Fetch returns a consistent snapshot of both counters.
func (a *Usage_t) Fetch() Snapshot_t {
	a.Lock()
	defer a.Unlock()
	return Snapshot_t{Run: time.Duration(a.Runns), Fault: time.Duration(a.Faultns)}
}

// Add merges another usage record into this one, e.g. when a child's
// accounting is folded into a parent on reparenting.
func (a *Usage_t) Add(n *Usage_t) {
	n.Lock()
	run, fault := n.Runns, n.Faultns
	n.Unlock()
	a.Lock()
	a.Runns += run
	a.Faultns += fault
	a.Unlock()
}
