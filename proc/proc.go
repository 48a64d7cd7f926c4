// Package proc is the process control block: the unit the scheduler
// dispatches and the mm/paging packages operate on behalf of. It implements
// mm.Caller (address space plus frame-store handles) so the mm and paging
// packages never need to import proc directly.
package proc

import (
	"time"

	"vmkernel/memphy"
	"vmkernel/mm"
)

// Proc_t is one process control block.
type Proc_t struct {
	Pid  int
	Prio int

	mm   *mm.MM_t
	ram  *memphy.Store_t
	swap *memphy.Store_t
	// swapDev identifies which swap device slot SwapDev() reports; this
	// PCB's active swap is always that same device, matching the data
	// model's "active mswp" singular-device simplification.
	swapDev uint32

	Usage Usage_t
}

// New builds a PCB with a fresh empty address space, backed by the given
// RAM and swap stores. swapDev is the device id recorded in swapped PTEs
// this PCB's faults create.
func New(pid, prio int, ram, swap *memphy.Store_t, swapDev uint32) *Proc_t {
	return &Proc_t{
		Pid:     pid,
		Prio:    prio,
		mm:      mm.New(),
		ram:     ram,
		swap:    swap,
		swapDev: swapDev,
	}
}

// MM implements mm.Caller.
func (p *Proc_t) MM() *mm.MM_t { return p.mm }

// RAM implements mm.Caller.
func (p *Proc_t) RAM() *memphy.Store_t { return p.ram }

// Swap implements mm.Caller.
func (p *Proc_t) Swap() *memphy.Store_t { return p.swap }

// SwapDev implements mm.Caller.
func (p *Proc_t) SwapDev() uint32 { return p.swapDev }

// Faultadd implements mm.Caller, recording fault-servicing time against p's
// own accounting.
func (p *Proc_t) Faultadd(delta time.Duration) { p.Usage.Faultadd(delta) }

// Destroy tears down p's address space, returning every frame it owns (in
// RAM or swap) to the corresponding store's free list. Callers invoke this
// once a PCB has finished (e.g. after sched.FinishProc); p must not be used
// afterward.
func (p *Proc_t) Destroy() {
	mm.Destroy(p)
}
