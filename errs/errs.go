// Package errs holds the sentinel error taxonomy shared by mm, paging and
// memphy, and the single place that translates an error into the one-word
// status code (0 success, -1 failure) that the external pgalloc/pgfree_data/
// pgread/pgwrite boundary promises callers.
package errs

import "errors"

var (
	// Caller-bug errors: no side effects occur before these are returned.
	ErrInvalidSize     = errors.New("invalid size")
	ErrInvalidRegion   = errors.New("invalid region id")
	ErrInvalidVMA      = errors.New("invalid vma id")
	ErrAccessViolation = errors.New("access beyond region bound")
	ErrInvalidAccess   = errors.New("out-of-range or unmapped access")

	// Planned-growth rejection.
	ErrOverlap = errors.New("vma growth would overlap another vma")

	// Resource exhaustion.
	ErrOutOfFrames = errors.New("no free physical frame")
	ErrOutOfSwap   = errors.New("no free swap frame")
	ErrNoVictim    = errors.New("no victim page available for eviction")
	ErrOutOfMemory = errors.New("out of memory")
)

// Status converts err into a single status word: 0 on nil, -1 otherwise.
// Every externally-visible operation funnels its return value through this
// at the last moment, keeping the internals idiomatic (value, error) while
// the boundary keeps the historical C-style contract.
func Status(err error) int {
	if err == nil {
		return 0
	}
	return -1
}

// IsLogicError reports whether err belongs to the caller-bug class: a
// double-free, a read of an unallocated region, and similar programmer
// mistakes that are logged before being returned as a failure, as opposed
// to a resource-exhaustion or planned-growth-rejection outcome.
func IsLogicError(err error) bool {
	switch err {
	case ErrInvalidSize, ErrInvalidRegion, ErrInvalidVMA, ErrAccessViolation, ErrInvalidAccess:
		return true
	default:
		return false
	}
}
