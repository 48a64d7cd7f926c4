package proc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"vmkernel/memphy"
)

func TestNewBuildsEmptyAddressSpace(t *testing.T) {
	ram := memphy.New(2)
	swap := memphy.New(2)
	p := New(7, 1, ram, swap, 3)

	require.Equal(t, 7, p.Pid)
	require.Equal(t, 1, p.Prio)
	require.Same(t, ram, p.RAM())
	require.Same(t, swap, p.Swap())
	require.Equal(t, uint32(3), p.SwapDev())

	vma, ok := p.MM().VMA(0)
	require.True(t, ok)
	require.Equal(t, 0, vma.Start)
	require.Equal(t, 0, vma.End)
}

func TestUsageFetchAndAdd(t *testing.T) {
	var a, b Usage_t
	a.Runadd(5 * time.Second)
	a.Faultadd(2 * time.Second)
	b.Runadd(1 * time.Second)

	a.Add(&b)
	snap := a.Fetch()
	require.Equal(t, 6*time.Second, snap.Run)
	require.Equal(t, 2*time.Second, snap.Fault)
}
