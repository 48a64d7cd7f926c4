// Package mm is the address-space manager: it owns a process's page
// directory, the ordered list of VMAs carved out of that address space, the
// per-VMA free-region lists, and the symbol-region table user code
// allocates/frees through. A single mutex guards the page table and region
// bookkeeping together, the way a real virtual-memory struct would, but
// generalized away from any hardware page-table format to a 32-bit
// present/swapped PTE model.
package mm

import (
	"sync"
	"time"

	"vmkernel/config"
	"vmkernel/memphy"
	"vmkernel/pte"
)

// Region_t is one [Start, End) byte range.
type Region_t struct {
	Start, End int
}

// Len reports the byte length of the region.
func (r Region_t) Len() int { return r.End - r.Start }

// SymReg_t is one symbol-region-table slot.
type SymReg_t struct {
	Region_t
	Alloc bool
}

// VMA_t is one virtual memory area: a contiguous sub-range of an address
// space with its own break cursor and free-region list.
type VMA_t struct {
	ID    int
	Start int
	End   int
	Sbrk  int

	// FreeRegions is the VMA's free-region list, kept as an owned sequence
	// rather than a hand-rolled linked list; order does not matter (the
	// list is explicitly unordered), so a slice is the natural fit.
	FreeRegions []Region_t
}

// MM_t is one process's address space.
type MM_t struct {
	mu sync.Mutex

	Pgd [config.MAXPGN]pte.Pte_t

	Vmas []*VMA_t

	Symtbl [config.SYMTBLSZ]SymReg_t

	// FifoPgn records which page numbers are resident, in the same
	// newest-first/oldest-at-tail order memphy.Store_t's used list keeps.
	FifoPgn []int
}

// Caller is what the mm package needs from whatever PCB-like value drives an
// operation: its own address space plus the physical-frame stores backing
// it. Defining the interface here (rather than importing a concrete PCB
// type) keeps mm independent of proc, breaking what would otherwise be an
// mm -> proc -> mm import cycle (proc's PCB embeds an *MM_t).
type Caller interface {
	MM() *MM_t
	RAM() *memphy.Store_t
	Swap() *memphy.Store_t
	SwapDev() uint32

	// Faultadd records delta nanoseconds spent servicing a page fault
	// against this caller's address space, for its CPU-time accounting.
	Faultadd(delta time.Duration)
}

// RamMapper is the paging engine's half of inc_vma_limit: given a freshly
// grown virtual range, back it with real RAM frames (evicting a victim if
// RAM is full). mm defines the interface it needs; the paging package
// implements it, again to avoid a package cycle (paging already needs mm's
// concrete types).
type RamMapper interface {
	MapRange(c Caller, startVA, npage int) error
}

// New creates an empty address space: one VMA of id 0 with
// vm_start = sbrk = vm_end = 0.
func New() *MM_t {
	m := &MM_t{}
	m.Vmas = append(m.Vmas, &VMA_t{ID: 0})
	return m
}

// Lock acquires the address-space mutex. Exported so the paging engine,
// which executes its page-fault service under this lock, can hold it
// across a multi-step operation without mm needing to know about its
// caller.
func (m *MM_t) Lock() { m.mu.Lock() }

// Unlock releases the address-space mutex.
func (m *MM_t) Unlock() { m.mu.Unlock() }

// VMA returns the VMA with the given id.
func (m *MM_t) VMA(id int) (*VMA_t, bool) {
	for _, v := range m.Vmas {
		if v.ID == id {
			return v, true
		}
	}
	return nil, false
}

// AddVMA appends a new VMA to the address space after validating it does
// not overlap any existing one. Used by test/driver code that builds
// multi-VMA address spaces (e.g. the overlap-rejection scenario).
func (m *MM_t) AddVMA(id, start, end int) error {
	if err := ValidateOverlap(m, -1, start, end); err != nil {
		return err
	}
	m.Vmas = append(m.Vmas, &VMA_t{ID: id, Start: start, End: end, Sbrk: end})
	return nil
}

// EnlistFifo inserts pgn at the head of the FIFO page list (the newest
// entry), if it is not already present.
func (m *MM_t) EnlistFifo(pgn int) {
	for _, p := range m.FifoPgn {
		if p == pgn {
			return
		}
	}
	m.FifoPgn = append([]int{pgn}, m.FifoPgn...)
}

// DelistFifo removes pgn from the FIFO page list, if present.
func (m *MM_t) DelistFifo(pgn int) {
	for i, p := range m.FifoPgn {
		if p == pgn {
			m.FifoPgn = append(m.FifoPgn[:i], m.FifoPgn[i+1:]...)
			return
		}
	}
}
