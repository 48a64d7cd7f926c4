package sched_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"vmkernel/memphy"
	"vmkernel/proc"
	"vmkernel/sched"
)

func newPCB(pid, prio int) *proc.Proc_t {
	return proc.New(pid, prio, memphy.New(1), memphy.New(1), 0)
}

// S6: scheduler quotas, exercising add/get/put in the order the design
// scenario lays out: MAX_PRIO = 3, A at prio 0, B at prio 1, initial quotas
// (3, 2, 1). get_proc always scans from priority 0 up, so once A is
// dequeued and not immediately requeued, B becomes reachable; once both
// queues are drained, get_proc reports none until a put replenishes the
// level it touches.
func TestSchedulerQuotas(t *testing.T) {
	s := sched.NewMLQ(3, 10, nil, nil)
	a := newPCB(1, 0)
	b := newPCB(2, 1)

	s.AddProc(a)
	s.AddProc(b)

	got, ok := s.GetProc()
	require.True(t, ok)
	require.Same(t, a, got)

	got, ok = s.GetProc()
	require.True(t, ok)
	require.Same(t, b, got)

	_, ok = s.GetProc()
	require.False(t, ok, "both queues drained, nothing left to dispatch")

	s.PutProc(a)
	got, ok = s.GetProc()
	require.True(t, ok)
	require.Same(t, a, got)
}

func TestFinishProcReplenishes(t *testing.T) {
	s := sched.NewMLQ(1, 10, nil, nil)
	a := newPCB(1, 0)

	s.AddProc(a)
	_, ok := s.GetProc()
	require.True(t, ok)

	_, ok = s.GetProc()
	require.False(t, ok)

	s.FinishProc(a)
	s.AddProc(a)
	_, ok = s.GetProc()
	require.True(t, ok)
}

func TestQueueEmpty(t *testing.T) {
	s := sched.NewMLQ(2, 10, nil, nil)
	require.True(t, s.QueueEmpty())
	s.AddProc(newPCB(1, 0))
	require.False(t, s.QueueEmpty())
}

func TestAddProcDropsOnFullQueue(t *testing.T) {
	s := sched.NewMLQ(1, 1, nil, nil)
	a := newPCB(1, 0)
	b := newPCB(2, 0)

	s.AddProc(a)
	s.AddProc(b) // dropped: queue at capacity 1

	got, ok := s.GetProc()
	require.True(t, ok)
	require.Same(t, a, got)

	_, ok = s.GetProc()
	require.False(t, ok)
}
