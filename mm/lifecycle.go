package mm

import (
	"vmkernel/config"
	"vmkernel/pte"
)

// Destroy releases every physical frame still referenced by c's page
// directory back to the owning store's free list -- present pages to RAM,
// swapped pages to swap -- then clears m's own bookkeeping. It is the
// teardown counterpart to New: once called, m retains no resident state and
// must not be used again.
//
// A present PTE's frame is first detached from RAM's used-frame list
// (PutFreeFP panics on a frame it still finds there) before being freed; a
// swapped PTE's frame is freed directly, since swap frames are never placed
// on a used-frame list in the first place.
func Destroy(c Caller) {
	m := c.MM()
	ram := c.RAM()
	swap := c.Swap()

	for pgn := range m.Pgd {
		p := m.Pgd[pgn]
		switch {
		case p.IsPresent():
			fpn := p.Frame()
			ram.RemoveUsed(fpn)
			ram.PutFreeFP(fpn)
		case p.IsSwapped():
			swap.PutFreeFP(p.SwapFrame())
		default:
			continue
		}
		m.Pgd[pgn] = pte.Unmapped
	}

	m.Vmas = nil
	m.Symtbl = [config.SYMTBLSZ]SymReg_t{}
	m.FifoPgn = nil
}
