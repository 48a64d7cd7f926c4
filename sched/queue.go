package sched

import "vmkernel/proc"

// readyQueue_t is a single priority level's FIFO ready queue: a fixed
// capacity circular buffer indexed by monotonically increasing head/tail
// counters taken modulo capacity, the same head/tail arithmetic a byte ring
// buffer uses, here holding PCBs instead of bytes.
type readyQueue_t struct {
	slots []*proc.Proc_t
	head  int
	tail  int
}

func newReadyQueue(capacity int) *readyQueue_t {
	return &readyQueue_t{slots: make([]*proc.Proc_t, capacity)}
}

func (q *readyQueue_t) Full() bool { return q.head-q.tail == len(q.slots) }

func (q *readyQueue_t) Empty() bool { return q.head == q.tail }

// Enqueue appends p to the tail of the queue. It reports false without
// mutating state if the queue is at capacity.
func (q *readyQueue_t) Enqueue(p *proc.Proc_t) bool {
	if q.Full() {
		return false
	}
	q.slots[q.head%len(q.slots)] = p
	q.head++
	return true
}

// Dequeue removes and returns the PCB at the head of the queue.
func (q *readyQueue_t) Dequeue() (*proc.Proc_t, bool) {
	if q.Empty() {
		return nil, false
	}
	p := q.slots[q.tail%len(q.slots)]
	q.slots[q.tail%len(q.slots)] = nil
	q.tail++
	return p, true
}
