// Package paging is the demand-paging engine: it backs newly grown virtual
// ranges with real RAM frames, services reads/writes through present or
// swapped PTEs, and runs victim selection when RAM is full. Its case
// analysis (present vs. swapped vs. unmapped, insert-into-used-list /
// remove-from-used-list) is an explicit call made by the external
// pgalloc/pgread/pgwrite interface, rather than a hardware page-fault trap
// handler.
package paging

import (
	"vmkernel/config"
	"vmkernel/counters"
	"vmkernel/errs"
	"vmkernel/memphy"
	"vmkernel/mm"
	"vmkernel/pte"
	"vmkernel/trace"
)

// Engine_t is the paging engine. It is stateless beyond its instrumentation
// hooks; all the state it operates on (page directories, frame stores)
// belongs to the mm.Caller it is handed on each call.
type Engine_t struct {
	Trace    *trace.Sink_t
	Counters *counters.Paging
}

// New builds an engine with the given trace sink and counters. Either may
// be nil: trace.Sink_t's methods are nil-safe, and a nil ctr is replaced by
// an empty counters.Paging.
func New(tr *trace.Sink_t, ctr *counters.Paging) *Engine_t {
	if ctr == nil {
		ctr = &counters.Paging{}
	}
	return &Engine_t{Trace: tr, Counters: ctr}
}

// pageRange returns the first page number, startVA/PGSIZE, of the npage
// pages starting at startVA.
func pageRange(startVA, npage int) (first int) {
	return startVA / config.PGSIZE
}

// MapRange implements mm.RamMapper: back npage freshly committed pages
// starting at startVA with real RAM frames, evicting a victim page per
// frame whenever RAM has none free. Unlike PgGetPage's swapped branch, a
// freshly grown page has no existing swap content to restore -- the freed
// frame is simply handed straight to the new page.
func (e *Engine_t) MapRange(c mm.Caller, startVA, npage int) error {
	m := c.MM()
	ram := c.RAM()
	first := pageRange(startVA, npage)

	for i := 0; i < npage; i++ {
		pgn := first + i
		if pgn < 0 || pgn >= config.MAXPGN {
			return errs.ErrInvalidRegion
		}

		fpn, err := ram.GetFreeFP()
		if err != nil {
			fpn, err = e.evictVictim(c)
			if err != nil {
				return err
			}
		}

		m.Pgd[pgn] = pte.NewPresent(fpn)
		ram.RegisterUsed(fpn, m, pgn, c)
		m.EnlistFifo(pgn)
	}
	return nil
}

// evictVictim frees up exactly one RAM frame by running victim selection
// and, for a chosen victim, leaves the frame's old owner PTE consistent:
// swapped for any page still backed by a live PTE. It returns the raw frame
// number, already detached from the used list and NOT pushed onto the free
// list -- the caller immediately hands it to a new owner. The swap frame is
// reserved before victim selection runs, so running out of swap leaves the
// used list and every PTE untouched.
func (e *Engine_t) evictVictim(c mm.Caller) (uint32, error) {
	ram := c.RAM()
	swap := c.Swap()

	swpfpn, err := swap.GetFreeFP()
	if err != nil {
		return 0, errs.ErrOutOfSwap
	}

	victim, err := e.FindVictimPage(c)
	if err != nil {
		swap.PutFreeFP(swpfpn)
		return 0, err
	}

	if err := memphy.SwapCopyPage(ram, victim.Fpn, swap, swpfpn); err != nil {
		return 0, err
	}

	if owner, ok := victim.Owner.(*mm.MM_t); ok {
		owner.Pgd[victim.PteID] = pte.NewSwapped(c.SwapDev(), swpfpn)
		owner.DelistFifo(victim.PteID)
	}

	e.Counters.Evictions.Inc()
	e.Counters.SwapOuts.Inc()
	e.Trace.PageFault(0, victim.PteID, int(victim.Fpn), -1)
	return victim.Fpn, nil
}

// FindVictimPage picks a RAM frame to reclaim. It first looks for a frame
// backing a page that lies in one of the caller's own free (unallocated)
// regions -- stealing that costs nothing since no live symbol owns the
// bytes -- and only falls back to the globally oldest resident frame (which
// may belong to a different address space sharing the same RAM store) when
// no such frame exists.
func (e *Engine_t) FindVictimPage(c mm.Caller) (memphy.UsedEntry_t, error) {
	ram := c.RAM()
	m := c.MM()

	if victim, ok := stealLiveFreePage(m, ram); ok {
		e.Counters.StolenLive.Inc()
		return victim, nil
	}

	victim, ok := ram.OldestUsed()
	if !ok {
		return memphy.UsedEntry_t{}, errs.ErrNoVictim
	}
	return victim, nil
}

// stealLiveFreePage scans m's own VMAs for a free region containing a
// present page, removes that page's frame from the used list, and carves
// its exact byte range out of the free-region list (invariant 1's
// allocated-union-free coverage rule is explicitly scoped to sequences with
// no intervening page faults, so shrinking free-region coverage here to
// reflect a page whose frame has been reassigned is in bounds).
func stealLiveFreePage(m *mm.MM_t, ram *memphy.Store_t) (memphy.UsedEntry_t, bool) {
	for _, vma := range m.Vmas {
		for i, r := range vma.FreeRegions {
			startPgn := r.Start / config.PGSIZE
			endPgn := (r.End - 1) / config.PGSIZE
			for pgn := startPgn; pgn <= endPgn; pgn++ {
				if pgn < 0 || pgn >= config.MAXPGN {
					continue
				}
				if !m.Pgd[pgn].IsPresent() {
					continue
				}
				fpn := m.Pgd[pgn].Frame()
				entry, ok := ram.RemoveUsed(fpn)
				if !ok {
					continue
				}
				splitOutPage(vma, i, pgn)
				return entry, true
			}
		}
	}
	return memphy.UsedEntry_t{}, false
}

// splitOutPage removes the byte range of page pgn from free region index i
// of vma, replacing it with its (up to two) flanking remainders.
func splitOutPage(vma *mm.VMA_t, i, pgn int) {
	r := vma.FreeRegions[i]
	pgStart := pgn * config.PGSIZE
	pgEnd := pgStart + config.PGSIZE
	var remainder []mm.Region_t
	if pgStart > r.Start {
		remainder = append(remainder, mm.Region_t{Start: r.Start, End: pgStart})
	}
	if pgEnd < r.End {
		remainder = append(remainder, mm.Region_t{Start: pgEnd, End: r.End})
	}
	vma.FreeRegions = append(vma.FreeRegions[:i], append(remainder, vma.FreeRegions[i+1:]...)...)
}
