package paging_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"vmkernel/memphy"
	"vmkernel/paging"
	"vmkernel/proc"
)

// Invariant 2: a present PTE's frame is never also sitting on its store's
// free list, and a PTE is always exactly one of present/swapped/unmapped.
func TestPresentFrameNotOnFreeList(t *testing.T) {
	ram := memphy.New(2)
	swap := memphy.New(2)
	p := proc.New(0, 0, ram, swap, 0)
	eng := paging.New(nil, nil)

	require.Equal(t, 0, eng.Pgalloc(p, 100, 0))

	pte0 := p.MM().Pgd[0]
	require.True(t, pte0.IsPresent())
	require.False(t, pte0.IsSwapped())
	require.False(t, pte0.IsUnmapped())

	fpn := pte0.Frame()
	_, onUsed := ram.LookupUsed(fpn)
	require.True(t, onUsed, "present PTE's frame must be on the used list")

	// An unmapped page (never allocated) satisfies none of the predicates
	// present/swapped claim.
	unmapped := p.MM().Pgd[1]
	require.True(t, unmapped.IsUnmapped())
	require.False(t, unmapped.IsPresent())
	require.False(t, unmapped.IsSwapped())
}

// Invariant 3: for every present PTE, RAM's used-frame entry for its frame
// carries the matching owner address space and page number.
func TestPresentPTEMatchesUsedEntry(t *testing.T) {
	ram := memphy.New(1)
	swap := memphy.New(4)
	p := proc.New(0, 0, ram, swap, 0)
	eng := paging.New(nil, nil)

	require.Equal(t, 0, eng.Pgalloc(p, 200, 0))

	pgn := 0
	fpn := p.MM().Pgd[pgn].Frame()

	entry, ok := ram.LookupUsed(fpn)
	require.True(t, ok)
	require.Same(t, p.MM(), entry.Owner)
	require.Equal(t, pgn, entry.PteID)
}
