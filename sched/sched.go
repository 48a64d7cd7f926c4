// Package sched is the multi-level ready-queue scheduler: a fixed array of
// per-priority FIFO queues with per-level CPU-time quotas ("cpuRemainder"),
// plus the single-queue FCFS variant the same structure degenerates to when
// config.Variant_t is FCFS. Queue and lock ownership follow a pattern of one
// object passed explicitly to dispatchers rather than package-level mutable
// state.
package sched

import (
	"sync"

	"vmkernel/config"
	"vmkernel/counters"
	"vmkernel/proc"
	"vmkernel/trace"
)

type level_t struct {
	q            *readyQueue_t
	cpuRemainder int
}

// Scheduler_t is the scheduler object. All operations are serialized by a
// single embedded mutex standing in for a global queue lock.
type Scheduler_t struct {
	mu       sync.Mutex
	levels   []level_t
	trace    *trace.Sink_t
	counters *counters.Sched
	fcfs     bool // FCFS variant: GetProc does not enforce cpuRemainder
}

// NewMLQ builds a multi-level scheduler with numPrio priority levels, each
// with capacity queueCap. Level i's initial quota is numPrio-i: higher
// priority means more slots per rotation.
func NewMLQ(numPrio, queueCap int, tr *trace.Sink_t, ctr *counters.Sched) *Scheduler_t {
	if ctr == nil {
		ctr = &counters.Sched{}
	}
	s := &Scheduler_t{trace: tr, counters: ctr}
	s.levels = make([]level_t, numPrio)
	for i := range s.levels {
		s.levels[i] = level_t{q: newReadyQueue(queueCap), cpuRemainder: numPrio - i}
	}
	return s
}

// NewFCFS builds the single-queue FCFS variant: a multi-level scheduler
// degenerated to one priority level whose quota GetProc does not enforce,
// so every queued PCB is dispatchable in arrival order. It is the behavior
// config.Variant_t's FCFS setting selects in place of NewMLQ.
func NewFCFS(queueCap int, tr *trace.Sink_t, ctr *counters.Sched) *Scheduler_t {
	s := NewMLQ(1, queueCap, tr, ctr)
	s.fcfs = true
	return s
}

// New dispatches to NewMLQ or NewFCFS according to lim.Variant.
func New(lim *config.Limits_t, tr *trace.Sink_t, ctr *counters.Sched) *Scheduler_t {
	if lim.Variant == config.FCFS {
		return NewFCFS(config.MAXQSZ, tr, ctr)
	}
	return NewMLQ(config.MAXPRIO, config.MAXQSZ, tr, ctr)
}

func (s *Scheduler_t) levelFor(p *proc.Proc_t) int {
	if p.Prio < 0 || p.Prio >= len(s.levels) {
		return len(s.levels) - 1
	}
	return p.Prio
}

// AddProc enqueues p on its priority's ready queue. A full queue drops the
// enqueue as a non-fatal logged event rather than blocking or erroring.
func (s *Scheduler_t) AddProc(p *proc.Proc_t) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lvl := s.levelFor(p)
	if !s.levels[lvl].q.Enqueue(p) {
		s.counters.Drops.Inc()
		s.trace.SchedDrop(p.Pid, p.Prio)
	}
}

// GetProc scans priority levels from 0 up, returning the first PCB whose
// level has both a non-empty queue and cpuRemainder > 0, decrementing that
// level's remainder. It returns ok=false if no level currently qualifies.
// The FCFS variant skips the cpuRemainder check.
func (s *Scheduler_t) GetProc() (p *proc.Proc_t, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.levels {
		lvl := &s.levels[i]
		if lvl.q.Empty() || (!s.fcfs && lvl.cpuRemainder <= 0) {
			continue
		}
		p, ok = lvl.q.Dequeue()
		if !ok {
			continue
		}
		lvl.cpuRemainder--
		s.counters.Dispatches.Inc()
		return p, true
	}
	return nil, false
}

// PutProc re-enqueues p (it yielded the CPU without finishing) and
// replenishes its level's quota by one.
func (s *Scheduler_t) PutProc(p *proc.Proc_t) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lvl := &s.levels[s.levelFor(p)]
	if !lvl.q.Enqueue(p) {
		s.counters.Drops.Inc()
		s.trace.SchedDrop(p.Pid, p.Prio)
	}
	lvl.cpuRemainder++
	s.counters.Replenish.Inc()
}

// FinishProc releases p (it has terminated) and replenishes its level's
// quota by one.
func (s *Scheduler_t) FinishProc(p *proc.Proc_t) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lvl := &s.levels[s.levelFor(p)]
	lvl.cpuRemainder++
	s.counters.Replenish.Inc()
}

// QueueEmpty reports whether every priority level's queue is empty.
func (s *Scheduler_t) QueueEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.levels {
		if !s.levels[i].q.Empty() {
			return false
		}
	}
	return true
}

// InitScheduler is a no-op beyond New; it exists so callers that want an
// init_scheduler/finish_scheduler pair one-for-one have both halves.
func InitScheduler(lim *config.Limits_t, tr *trace.Sink_t, ctr *counters.Sched) *Scheduler_t {
	return New(lim, tr, ctr)
}

// FinishScheduler releases a scheduler. There is no external resource to
// close in this simulator; it exists for symmetry with InitScheduler.
func (s *Scheduler_t) FinishScheduler() {}
