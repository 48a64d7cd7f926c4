package mm_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"vmkernel/memphy"
	"vmkernel/mm"
	"vmkernel/paging"
	"vmkernel/proc"
)

func newHarness(t *testing.T, ramFrames, swapFrames int) (*proc.Proc_t, *paging.Engine_t) {
	t.Helper()
	ram := memphy.New(ramFrames)
	swap := memphy.New(swapFrames)
	p := proc.New(0, 0, ram, swap, 0)
	eng := paging.New(nil, nil)
	return p, eng
}

// S1: grow by alloc.
func TestAllocGrowsSbrk(t *testing.T) {
	p, eng := newHarness(t, 2, 4)

	off, err := mm.Alloc(p, eng, 0, 0, 100)
	require.NoError(t, err)
	require.Equal(t, 0, off)

	vma, ok := p.MM().VMA(0)
	require.True(t, ok)
	require.Equal(t, 256, vma.Sbrk)

	slot := p.MM().Symtbl[0]
	require.True(t, slot.Alloc)
	require.Equal(t, 0, slot.Start)
	require.Equal(t, 256, slot.End)
}

// S2: free and reuse.
func TestFreeAndReuse(t *testing.T) {
	p, eng := newHarness(t, 2, 4)

	_, err := mm.Alloc(p, eng, 0, 0, 100)
	require.NoError(t, err)

	require.NoError(t, mm.Free(p.MM(), 0, 0))

	off, err := mm.Alloc(p, eng, 0, 1, 50)
	require.NoError(t, err)
	require.Equal(t, 0, off)

	vma, _ := p.MM().VMA(0)
	require.Empty(t, vma.FreeRegions)
	require.Equal(t, 256, vma.Sbrk)
}

// S5: overlap rejection. V0 = [0, 1024) is already established; V1 sits at
// base 512 and attempts to grow to [512, 2048), which would overlap V0.
func TestIncVmaLimitRejectsOverlap(t *testing.T) {
	p, eng := newHarness(t, 2, 4)
	m := p.MM()

	v0, _ := m.VMA(0)
	v0.Start, v0.End, v0.Sbrk = 0, 1024, 0
	m.Vmas = append(m.Vmas, &mm.VMA_t{ID: 1, Start: 512, End: 512, Sbrk: 512})

	_, err := mm.IncVmaLimit(p, eng, 1, 1536)
	require.Error(t, err)

	v0after, _ := m.VMA(0)
	require.Equal(t, 0, v0after.Start)
	require.Equal(t, 1024, v0after.End)
	require.Equal(t, 0, v0after.Sbrk)

	v1after, _ := m.VMA(1)
	require.Equal(t, 512, v1after.Start)
	require.Equal(t, 512, v1after.End)
	require.Equal(t, 512, v1after.Sbrk)
}

// IncVmaLimit must validate the incremental candidate range the grow would
// newly commit, not the VMA's full span from its original start. V0 has
// already grown once (Start=0, Sbrk=500, so Start < Sbrk); V1 sits entirely
// inside V0's already-owned bytes at [100, 200), which a correct check never
// consults since it only looks at [oldSbrk, oldSbrk+incSz) = [500, 756).
// Validating against the full [Start, newEnd) = [0, 756) span instead would
// wrongly enclose V1 and reject a grow that doesn't actually overlap anything.
func TestIncVmaLimitChecksIncrementalRangeOnly(t *testing.T) {
	p, eng := newHarness(t, 2, 4)
	m := p.MM()

	v0, _ := m.VMA(0)
	v0.Start, v0.End, v0.Sbrk = 0, 500, 500
	m.Vmas = append(m.Vmas, &mm.VMA_t{ID: 1, Start: 100, End: 200, Sbrk: 200})

	oldSbrk, err := mm.IncVmaLimit(p, eng, 0, 256)
	require.NoError(t, err)
	require.Equal(t, 500, oldSbrk)

	v0after, _ := m.VMA(0)
	require.Equal(t, 756, v0after.Sbrk)
	require.Equal(t, 756, v0after.End)
}

func TestGetFreeVmrgAreaFirstFitNoCoalesce(t *testing.T) {
	vma := &mm.VMA_t{FreeRegions: []mm.Region_t{{Start: 0, End: 100}, {Start: 100, End: 300}}}

	rg, ok := mm.GetFreeVmrgArea(vma, 50)
	require.True(t, ok)
	require.Equal(t, mm.Region_t{Start: 0, End: 50}, rg)
	require.Equal(t, []mm.Region_t{{Start: 50, End: 100}, {Start: 100, End: 300}}, vma.FreeRegions)
}
