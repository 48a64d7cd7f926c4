package paging

import (
	"time"

	"vmkernel/config"
	"vmkernel/errs"
	"vmkernel/memphy"
	"vmkernel/mm"
	"vmkernel/pte"
)

// DefaultVMAID is the VMA every pgalloc/pgfree_data/pgread/pgwrite call
// operates against. The external interface never threads a vmaid through
// (unlike __read/__write, which take one explicitly) because every scenario
// in scope here runs one VMA per address space.
const DefaultVMAID = 0

// PgGetPage resolves pgn to a RAM frame number, servicing a page fault if
// pgn's PTE currently points at swap. caller supplies the frame stores and
// address space the fault is serviced against; m is the page directory pgn
// is looked up in (ordinarily caller.MM(), but kept separate so a caller can
// service a fault against another address space's directory). Time spent
// servicing a fault (victim selection, swap copy, success or not) is charged
// to caller's own accounting via Faultadd.
func (e *Engine_t) PgGetPage(m *mm.MM_t, pgn int, caller mm.Caller) (uint32, error) {
	if pgn < 0 || pgn >= config.MAXPGN {
		return 0, errs.ErrInvalidAccess
	}
	p := m.Pgd[pgn]

	if p.IsPresent() {
		return p.Frame(), nil
	}
	if !p.IsSwapped() {
		return 0, errs.ErrInvalidAccess
	}

	e.Counters.Faults.Inc()
	start := time.Now()
	tgtfpn := p.SwapFrame()

	ram := caller.RAM()
	swap := caller.Swap()

	fpn, err := ram.GetFreeFP()
	if err != nil {
		fpn, err = e.evictVictim(caller)
		if err != nil {
			caller.Faultadd(time.Since(start))
			return 0, err
		}
	}

	if err := memphy.SwapCopyPage(swap, tgtfpn, ram, fpn); err != nil {
		caller.Faultadd(time.Since(start))
		return 0, err
	}
	swap.PutFreeFP(tgtfpn)

	m.Pgd[pgn] = pte.NewPresent(fpn)
	m.EnlistFifo(pgn)
	ram.RegisterUsed(fpn, m, pgn, caller)

	e.Counters.SwapIns.Inc()
	e.Trace.PageFault(0, pgn, -1, int(fpn))
	caller.Faultadd(time.Since(start))

	return fpn, nil
}

// translate splits a virtual address into (pgn, offset).
func translate(addr int) (pgn, off int) {
	return addr / config.PGSIZE, addr % config.PGSIZE
}

// PgGetVal reads the byte at virtual address addr within m's address space.
func (e *Engine_t) PgGetVal(m *mm.MM_t, addr int, caller mm.Caller) (uint8, error) {
	pgn, off := translate(addr)
	fpn, err := e.PgGetPage(m, pgn, caller)
	if err != nil {
		return 0, err
	}
	return caller.RAM().Read(memphy.FrameAddr(fpn) + off)
}

// PgSetVal writes val at virtual address addr within m's address space.
func (e *Engine_t) PgSetVal(m *mm.MM_t, addr int, val uint8, caller mm.Caller) error {
	pgn, off := translate(addr)
	fpn, err := e.PgGetPage(m, pgn, caller)
	if err != nil {
		return err
	}
	return caller.RAM().Write(memphy.FrameAddr(fpn)+off, val)
}

// symRegion looks up symbol slot rgid and the VMA it lives in, applying the
// __read/__write validation rules: the slot must be allocated, its VMA must
// exist, and (for writes) offset must land inside the slot's range.
func symRegion(m *mm.MM_t, vmaid, rgid, offset int, forWrite bool) (*mm.VMA_t, mm.Region_t, error) {
	if rgid < 0 || rgid >= config.SYMTBLSZ {
		return nil, mm.Region_t{}, errs.ErrInvalidRegion
	}
	slot := m.Symtbl[rgid]
	if !slot.Alloc {
		return nil, mm.Region_t{}, errs.ErrInvalidRegion
	}
	vma, ok := m.VMA(vmaid)
	if !ok {
		return nil, mm.Region_t{}, errs.ErrInvalidVMA
	}
	if forWrite && offset > slot.Len()-1 {
		return nil, mm.Region_t{}, errs.ErrAccessViolation
	}
	return vma, slot.Region_t, nil
}

// read implements __read: resolve symbol slot rgid in address space c.MM(),
// then delegate to PgGetVal on rg_start + offset.
func (e *Engine_t) read(c mm.Caller, vmaid, rgid, offset int) (uint8, error) {
	m := c.MM()
	_, rg, err := symRegion(m, vmaid, rgid, offset, false)
	if err != nil {
		return 0, err
	}
	return e.PgGetVal(m, rg.Start+offset, c)
}

// write implements __write: resolve symbol slot rgid, bounds-check offset
// against its length, then delegate to PgSetVal.
func (e *Engine_t) write(c mm.Caller, vmaid, rgid, offset int, val uint8) error {
	m := c.MM()
	_, rg, err := symRegion(m, vmaid, rgid, offset, true)
	if err != nil {
		return err
	}
	return e.PgSetVal(m, rg.Start+offset, val, c)
}

// Pgalloc allocates size bytes into symbol slot regIndex of c's default VMA,
// returning 0 on success or -1 on failure (the external status-word
// contract every boundary function here honors).
func (e *Engine_t) Pgalloc(c mm.Caller, size, regIndex int) int {
	m := c.MM()
	m.Lock()
	defer m.Unlock()
	_, err := mm.Alloc(c, e, DefaultVMAID, regIndex, size)
	e.traceLogicError("pgalloc", err)
	return errs.Status(err)
}

// PgfreeData returns symbol slot regIndex's range to its VMA's free list.
func (e *Engine_t) PgfreeData(c mm.Caller, regIndex int) int {
	m := c.MM()
	m.Lock()
	defer m.Unlock()
	err := mm.Free(m, DefaultVMAID, regIndex)
	e.traceLogicError("pgfree_data", err)
	return errs.Status(err)
}

// Pgread reads one byte from symbol slot srcReg at offset and optionally
// traces it, per IODUMP. dst receives the value only on success.
func (e *Engine_t) Pgread(c mm.Caller, srcReg, offset int, dst *uint8) int {
	m := c.MM()
	m.Lock()
	defer m.Unlock()
	val, err := e.read(c, DefaultVMAID, srcReg, offset)
	if err == nil && dst != nil {
		*dst = val
	}
	e.traceLogicError("pgread", err)
	if e.Trace.IODumpEnabled() {
		e.Trace.PageAccess("read", 0, DefaultVMAID, srcReg, offset, val, -1)
		e.maybeDumpRAM(c)
	}
	return errs.Status(err)
}

// Pgwrite writes value val into symbol slot dstReg at offset.
func (e *Engine_t) Pgwrite(c mm.Caller, val uint8, dstReg, offset int) int {
	m := c.MM()
	m.Lock()
	defer m.Unlock()
	err := e.write(c, DefaultVMAID, dstReg, offset, val)
	e.traceLogicError("pgwrite", err)
	if e.Trace.IODumpEnabled() {
		e.Trace.PageAccess("write", 0, DefaultVMAID, dstReg, offset, val, -1)
		e.maybeDumpRAM(c)
	}
	return errs.Status(err)
}

// traceLogicError logs err through the trace sink when it belongs to the
// caller-bug class (double-free, read of an unallocated region, and similar
// programmer mistakes), per the propagation policy's requirement that logic
// errors are logged but do not abort the simulation. Resource-exhaustion
// and planned-growth-rejection errors are not logged here; those are
// ordinary, expected outcomes rather than caller bugs.
func (e *Engine_t) traceLogicError(op string, err error) {
	if err != nil && errs.IsLogicError(err) {
		e.Trace.Invariant(op, err)
	}
}

// maybeDumpRAM emits a full RAM dump after a traced access, per MEMPHYS_DUMP.
func (e *Engine_t) maybeDumpRAM(c mm.Caller) {
	if e.Trace == nil || !e.Trace.MemphysDumpEnabled() {
		return
	}
	e.Trace.MemphyDump("ram", c.RAM().Dump())
}
