// Package memphy implements MEMPHY, the simulated physical-frame store: a
// byte-addressable buffer plus a free-frame pool. Both RAM and each swap
// device instantiate the same Store_t; callers tell them apart only by which
// one they pass as the "ram" vs. "active swap" handle.
//
// The free list is an intrusive, index-based singly linked list threaded
// through the frame descriptor array itself (no separate allocation per
// frame). The used-frame list is kept in a slice in insertion order (the
// source of truth for FIFO victim order) with a frame-number index
// alongside it for O(1) lookup; a removal shifts the slice and rebuilds the
// index -- plenty for the frame counts a teaching simulator runs at, without
// reaching for a sharded concurrent map.
package memphy

import (
	"fmt"

	"vmkernel/config"
)

const noNext = ^uint32(0)

type frameDesc_t struct {
	nexti uint32 // next free frame index, or noNext
	free  bool
}

// UsedEntry_t is one record in the used-frame list: the frame number plus
// the owning (address space, page number) pair and the PCB that mapped it.
// Owner and Pcb are untyped references on purpose -- memphy must not import
// mm or proc, on pain of an import cycle, so it carries these as opaque
// handles the caller compares with ==, per the design notes' "non-owning
// handle" treatment of the MM-owns-page-owns-frame-owns-MM cycle.
type UsedEntry_t struct {
	Fpn   uint32
	Owner any
	PteID int
	Pcb   any
}

// Store_t is one MEMPHY instance (RAM or one swap device).
type Store_t struct {
	buf       []byte
	frames    []frameDesc_t
	freeHead  uint32
	freeCount int

	used    []UsedEntry_t  // insertion order; index 0 is newest, tail is oldest
	usedIdx map[uint32]int // fpn -> index into used

	InUse config.Gauge_t
}

// New allocates a store backing nframes frames of config.PGSIZE bytes each.
func New(nframes int) *Store_t {
	if nframes <= 0 {
		panic("memphy.New: nframes must be positive")
	}
	s := &Store_t{
		buf:     make([]byte, nframes*config.PGSIZE),
		frames:  make([]frameDesc_t, nframes),
		usedIdx: make(map[uint32]int),
	}
	for i := range s.frames {
		s.frames[i].free = true
		if i == len(s.frames)-1 {
			s.frames[i].nexti = noNext
		} else {
			s.frames[i].nexti = uint32(i + 1)
		}
	}
	s.freeHead = 0
	s.freeCount = nframes
	return s
}

// NumFrames returns the total frame capacity of the store.
func (s *Store_t) NumFrames() int { return len(s.frames) }

// FreeCount returns how many frames are currently on the free list.
func (s *Store_t) FreeCount() int { return s.freeCount }

// GetFreeFP pops the head of the free-frame list.
func (s *Store_t) GetFreeFP() (uint32, error) {
	if s.freeCount == 0 {
		return 0, ErrOutOfFrames
	}
	fp := s.freeHead
	s.freeHead = s.frames[fp].nexti
	s.frames[fp].free = false
	s.freeCount--
	s.InUse.Give(1)
	return fp, nil
}

// PutFreeFP pushes fpn onto the free-frame list. The caller guarantees fpn
// is not currently on the free list or the used list.
func (s *Store_t) PutFreeFP(fpn uint32) {
	if int(fpn) >= len(s.frames) {
		panic("memphy.PutFreeFP: frame number out of range")
	}
	if s.frames[fpn].free {
		panic("memphy.PutFreeFP: frame already free")
	}
	if _, onUsed := s.usedIdx[fpn]; onUsed {
		panic("memphy.PutFreeFP: frame still on the used list")
	}
	s.frames[fpn].free = true
	s.frames[fpn].nexti = s.freeHead
	s.freeHead = fpn
	s.freeCount++
	if !s.InUse.Take(1) {
		panic("memphy.PutFreeFP: InUse gauge underflow")
	}
}

// Read returns the byte at phyaddr.
func (s *Store_t) Read(phyaddr int) (uint8, error) {
	if phyaddr < 0 || phyaddr >= len(s.buf) {
		return 0, ErrOutOfRange
	}
	return s.buf[phyaddr], nil
}

// Write stores val at phyaddr.
func (s *Store_t) Write(phyaddr int, val uint8) error {
	if phyaddr < 0 || phyaddr >= len(s.buf) {
		return ErrOutOfRange
	}
	s.buf[phyaddr] = val
	return nil
}

// FrameAddr maps a frame number to its byte offset in the backing buffer.
func FrameAddr(fpn uint32) int {
	return int(fpn) << config.PGSHIFT
}

// SwapCopyPage copies config.PGSIZE bytes from frame srcFpn of src to frame
// dstFpn of dst. src is left logically unchanged; dst is overwritten.
func SwapCopyPage(src *Store_t, srcFpn uint32, dst *Store_t, dstFpn uint32) error {
	so := FrameAddr(srcFpn)
	do := FrameAddr(dstFpn)
	if so < 0 || so+config.PGSIZE > len(src.buf) {
		return ErrOutOfRange
	}
	if do < 0 || do+config.PGSIZE > len(dst.buf) {
		return ErrOutOfRange
	}
	copy(dst.buf[do:do+config.PGSIZE], src.buf[so:so+config.PGSIZE])
	return nil
}

// RegisterUsed appends a new used-frame entry recording that fpn is owned by
// (owner, pteID) and was mapped in on behalf of pcb. The entry is inserted
// at the head of the list; index 0 is always the newest entry and the tail
// is the oldest, matching the FIFO convention victim selection relies on.
func (s *Store_t) RegisterUsed(fpn uint32, owner any, pteID int, pcb any) {
	if _, dup := s.usedIdx[fpn]; dup {
		panic("memphy.RegisterUsed: frame already on the used list")
	}
	s.used = append([]UsedEntry_t{{Fpn: fpn, Owner: owner, PteID: pteID, Pcb: pcb}}, s.used...)
	s.reindex()
}

// reindex rebuilds usedIdx after a slice mutation. The used list in a
// teaching-scale simulator never holds more than a handful of entries, so a
// full rebuild on each mutation is simpler than maintaining index deltas and
// does not show up as a real cost.
func (s *Store_t) reindex() {
	for k := range s.usedIdx {
		delete(s.usedIdx, k)
	}
	for i, e := range s.used {
		s.usedIdx[e.Fpn] = i
	}
}

// LookupUsed returns the used-frame entry for fpn, if any.
func (s *Store_t) LookupUsed(fpn uint32) (UsedEntry_t, bool) {
	i, ok := s.usedIdx[fpn]
	if !ok {
		return UsedEntry_t{}, false
	}
	return s.used[i], true
}

// RemoveUsed detaches the entry for fpn from the used list (it does not
// return fpn to the free list; callers decide where the frame goes next).
func (s *Store_t) RemoveUsed(fpn uint32) (UsedEntry_t, bool) {
	i, ok := s.usedIdx[fpn]
	if !ok {
		return UsedEntry_t{}, false
	}
	e := s.used[i]
	s.used = append(s.used[:i], s.used[i+1:]...)
	s.reindex()
	return e, true
}

// OldestUsed detaches and returns the tail of the used list -- the
// longest-resident frame -- or ok=false if the list is empty.
func (s *Store_t) OldestUsed() (UsedEntry_t, bool) {
	if len(s.used) == 0 {
		return UsedEntry_t{}, false
	}
	last := len(s.used) - 1
	e := s.used[last]
	s.used = s.used[:last]
	s.reindex()
	return e, true
}

// UsedEntries returns a snapshot of the used-frame list, newest first. It is
// intended for invariant tests, not for hot-path use.
func (s *Store_t) UsedEntries() []UsedEntry_t {
	out := make([]UsedEntry_t, len(s.used))
	copy(out, s.used)
	return out
}

// Dump renders every frame currently on the used list as one line (frame
// number, page number, owner pointer), oldest first, for the MEMPHYS_DUMP
// trace. Frame contents are not included (a teaching simulator's pages are
// rarely interesting to eyeball byte-for-byte).
func (s *Store_t) Dump() []string {
	lines := make([]string, 0, len(s.used))
	for i := len(s.used) - 1; i >= 0; i-- {
		e := s.used[i]
		lines = append(lines, fmt.Sprintf("fpn=%d pte_id=%d owner=%p", e.Fpn, e.PteID, e.Owner))
	}
	return lines
}
