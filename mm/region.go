package mm

import (
	"vmkernel/config"
	"vmkernel/errs"
)

// ValidateOverlap reports whether [start, end) overlaps any VMA in m other
// than skipID. It spells out the four-way overlap test explicitly (either
// endpoint of the candidate falling inside an existing VMA, or the
// candidate fully enclosing one) rather than collapsing it to a single
// "a < bEnd && b < aEnd" one-liner, since IncVmaLimit and AddVMA both
// need to explain a rejection the same way. An inverted range (start > end)
// is rejected with ErrOverlap before any VMA is consulted.
func ValidateOverlap(m *MM_t, skipID, start, end int) error {
	if start > end {
		return errs.ErrOverlap
	}
	for _, v := range m.Vmas {
		if v.ID == skipID {
			continue
		}
		// A zero-extent VMA (a freshly created address space's lone
		// placeholder, before its first alloc) satisfies none of the four
		// overlap conditions below and so is implicitly skipped.
		switch {
		case start >= v.Start && start < v.End:
			return errs.ErrOverlap
		case end > v.Start && end <= v.End:
			return errs.ErrOverlap
		case start <= v.Start && end >= v.End && v.End > v.Start:
			return errs.ErrOverlap
		case start >= v.Start && end <= v.End && v.End > v.Start:
			return errs.ErrOverlap
		}
	}
	return nil
}

// GetFreeVmrgArea first-fit scans vma's free-region list for a region at
// least size bytes long, carves the requested range off its front, and
// returns it. The remainder (if any) replaces the consumed region in place;
// an exact fit removes the entry outright. No coalescing is performed,
// matching the data model's explicit "no coalescing of adjacent free
// regions" rule.
func GetFreeVmrgArea(vma *VMA_t, size int) (Region_t, bool) {
	for i, r := range vma.FreeRegions {
		if r.Len() < size {
			continue
		}
		chosen := Region_t{Start: r.Start, End: r.Start + size}
		if r.End > chosen.End {
			vma.FreeRegions[i] = Region_t{Start: chosen.End, End: r.End}
		} else {
			vma.FreeRegions = append(vma.FreeRegions[:i], vma.FreeRegions[i+1:]...)
		}
		return chosen, true
	}
	return Region_t{}, false
}

// symSlot returns a pointer to symbol slot rgid, or ErrInvalidRegion if
// rgid is out of range. Whether the slot is allocated is checked by the
// caller (Alloc needs a free slot, Free an allocated one).
func symSlot(m *MM_t, rgid int) (*SymReg_t, error) {
	if rgid < 0 || rgid >= config.SYMTBLSZ {
		return nil, errs.ErrInvalidRegion
	}
	return &m.Symtbl[rgid], nil
}

// Alloc implements the symbol-region allocator: satisfy size bytes from
// vmaid's free-region list if possible, otherwise grow the VMA via sbrk
// (mapper.MapRange backs the new pages with real RAM), then record the
// chosen range in symbol slot rgid and return its start offset.
//
// size is page-aligned up front, before either the free-region search or
// the sbrk grow sees it -- a free region that exactly matches a previous
// page-aligned allocation must be consumed whole, not split into a
// sub-page-sized piece plus a leftover.
func Alloc(c Caller, mapper RamMapper, vmaid, rgid, size int) (int, error) {
	if size <= 0 {
		return 0, errs.ErrInvalidSize
	}
	aligned := ((size + config.PGOFFST) / config.PGSIZE) * config.PGSIZE
	m := c.MM()
	slot, err := symSlot(m, rgid)
	if err != nil {
		return 0, err
	}
	if slot.Alloc {
		return 0, errs.ErrInvalidRegion
	}
	vma, ok := m.VMA(vmaid)
	if !ok {
		return 0, errs.ErrInvalidVMA
	}

	if rg, ok := GetFreeVmrgArea(vma, aligned); ok {
		*slot = SymReg_t{Region_t: rg, Alloc: true}
		return rg.Start, nil
	}

	oldSbrk, err := IncVmaLimit(c, mapper, vmaid, aligned)
	if err != nil {
		return 0, err
	}
	*slot = SymReg_t{Region_t: Region_t{Start: oldSbrk, End: oldSbrk + aligned}, Alloc: true}
	return oldSbrk, nil
}

// Free returns symbol slot rgid's range to its VMA's free-region list. The
// range is prepended as a brand new entry, so the first-fit search tries the
// most recently freed range first; per the data model, adjacent free
// regions are never coalesced.
func Free(m *MM_t, vmaid, rgid int) error {
	slot, err := symSlot(m, rgid)
	if err != nil {
		return err
	}
	if !slot.Alloc {
		return errs.ErrInvalidRegion
	}
	vma, ok := m.VMA(vmaid)
	if !ok {
		return errs.ErrInvalidVMA
	}
	vma.FreeRegions = append([]Region_t{slot.Region_t}, vma.FreeRegions...)
	*slot = SymReg_t{}
	return nil
}

// IncVmaLimit grows vmaid's break by size bytes (rounded up to a whole
// number of pages), maps the newly committed pages into RAM via mapper, and
// returns the old sbrk value the grown range starts at. The overlap check
// runs against the incremental candidate range [oldSbrk, oldSbrk+incSz) --
// the bytes this call would newly commit -- not the VMA's full prospective
// [vm_start, newEnd) span, which would flag a VMA as overlapping its own
// already-owned bytes. Overlap with another VMA aborts the grow before any
// state is mutated.
func IncVmaLimit(c Caller, mapper RamMapper, vmaid, size int) (int, error) {
	m := c.MM()
	vma, ok := m.VMA(vmaid)
	if !ok {
		return 0, errs.ErrInvalidVMA
	}

	npage := (size + config.PGOFFST) / config.PGSIZE
	incSz := npage * config.PGSIZE
	oldSbrk := vma.Sbrk
	newEnd := vma.End
	if oldSbrk+incSz > newEnd {
		newEnd = oldSbrk + incSz
	}

	if err := ValidateOverlap(m, vmaid, oldSbrk, oldSbrk+incSz); err != nil {
		return 0, err
	}

	if mapper != nil {
		if err := mapper.MapRange(c, oldSbrk, npage); err != nil {
			return 0, err
		}
	}

	vma.Sbrk = oldSbrk + incSz
	vma.End = newEnd
	return oldSbrk, nil
}
