package mm_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"vmkernel/memphy"
	"vmkernel/mm"
	"vmkernel/paging"
	"vmkernel/proc"
)

// Destroy must hand back frames for both present and swapped pages: one RAM
// frame's worth of capacity here forces the first page out to swap once the
// second is allocated, leaving one present PTE and one swapped PTE to tear
// down.
func TestDestroyReturnsPresentAndSwappedFrames(t *testing.T) {
	ram := memphy.New(1)
	swap := memphy.New(4)
	p := proc.New(0, 0, ram, swap, 0)
	eng := paging.New(nil, nil)

	require.Equal(t, 0, eng.Pgalloc(p, 256, 0)) // pgn 0, present
	require.Equal(t, 0, eng.Pgalloc(p, 256, 1)) // pgn 1, present; evicts pgn 0 to swap

	require.True(t, p.MM().Pgd[0].IsSwapped())
	require.True(t, p.MM().Pgd[1].IsPresent())
	require.Equal(t, 0, ram.FreeCount())
	require.Equal(t, 3, swap.FreeCount())

	mm.Destroy(p)

	require.Equal(t, 1, ram.FreeCount())
	require.Equal(t, 4, swap.FreeCount())
	require.True(t, p.MM().Pgd[0].IsUnmapped())
	require.True(t, p.MM().Pgd[1].IsUnmapped())
	require.Empty(t, p.MM().Vmas)
	require.Empty(t, p.MM().FifoPgn)
}

// Proc_t.Destroy delegates to mm.Destroy against the PCB's own stores.
func TestProcDestroyDelegatesToMM(t *testing.T) {
	ram := memphy.New(2)
	swap := memphy.New(2)
	p := proc.New(0, 0, ram, swap, 0)
	eng := paging.New(nil, nil)

	require.Equal(t, 0, eng.Pgalloc(p, 100, 0))
	require.Equal(t, 1, ram.NumFrames()-ram.FreeCount())

	p.Destroy()

	require.Equal(t, 2, ram.FreeCount())
	require.True(t, p.MM().Pgd[0].IsUnmapped())
}
