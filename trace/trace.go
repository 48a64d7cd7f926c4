// Package trace is the IODUMP/MEMPHYS_DUMP sink: a structured logger, built
// on zerolog, that the paging engine and scheduler write to. Page-access
// events and RAM dumps are emitted only when the matching config.Flags_t bit
// is set; page faults, dropped enqueues and logic errors are always logged.
// It never influences control flow;
// every call site here is already past the point where the operation
// succeeded or failed.
package trace

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Sink_t wraps a zerolog.Logger gated by the two trace flags. The zero value
// is a valid, fully-disabled sink (both flags false).
type Sink_t struct {
	log         zerolog.Logger
	ioDump      bool
	memphysDump bool
}

// New builds a sink writing to w (os.Stdout in production, a bytes.Buffer in
// tests that want to assert on trace output) with the given flags.
func New(w io.Writer, ioDump, memphysDump bool) *Sink_t {
	if w == nil {
		w = os.Stdout
	}
	return &Sink_t{
		log:         zerolog.New(w).With().Timestamp().Logger(),
		ioDump:      ioDump,
		memphysDump: memphysDump,
	}
}

// Disabled returns a sink that drops everything; safe zero-value substitute
// for callers that construct a Sink_t without New.
func Disabled() *Sink_t {
	return &Sink_t{log: zerolog.Nop()}
}

// IODumpEnabled reports whether pgread/pgwrite tracing is active.
func (s *Sink_t) IODumpEnabled() bool {
	return s != nil && s.ioDump
}

// MemphysDumpEnabled reports whether a RAM dump should follow each trace.
func (s *Sink_t) MemphysDumpEnabled() bool {
	return s != nil && s.memphysDump
}

// PageAccess logs one pgread/pgwrite event. op is "read" or "write".
func (s *Sink_t) PageAccess(op string, pid, vmaid, rgid, offset int, val uint8, fpn int) {
	if s == nil {
		return
	}
	s.log.Info().
		Str("op", op).
		Int("pid", pid).
		Int("vma", vmaid).
		Int("region", rgid).
		Int("offset", offset).
		Uint8("value", val).
		Int("fpn", fpn).
		Msg("page access")
}

// PageFault logs a swap-in eviction cycle.
func (s *Sink_t) PageFault(pid, pgn, victimFpn, newFpn int) {
	if s == nil {
		return
	}
	s.log.Info().
		Int("pid", pid).
		Int("pgn", pgn).
		Int("victim_fpn", victimFpn).
		Int("new_fpn", newFpn).
		Msg("page fault serviced by swap")
}

// MemphyDump logs a full frame listing; callers only build the listing when
// MemphysDumpEnabled is true, since formatting it is not free.
func (s *Sink_t) MemphyDump(label string, frames []string) {
	if s == nil {
		return
	}
	ev := s.log.Info().Str("store", label)
	ev.Strs("frames", frames)
	ev.Msg("memphy dump")
}

// SchedDrop logs a dropped enqueue (ready queue at capacity).
func (s *Sink_t) SchedDrop(pid, prio int) {
	if s == nil {
		return
	}
	s.log.Warn().Int("pid", pid).Int("prio", prio).Msg("ready queue full, enqueue dropped")
}

// Invariant logs a caller-visible logic error (double free, bad region, ...)
// without aborting the simulation.
func (s *Sink_t) Invariant(msg string, err error) {
	if s == nil {
		return
	}
	s.log.Error().Err(err).Time("at", time.Now()).Msg(msg)
}
