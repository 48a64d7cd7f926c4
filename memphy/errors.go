package memphy

import "vmkernel/errs"

// ErrOutOfFrames is returned by GetFreeFP when the free list is empty.
var ErrOutOfFrames = errs.ErrOutOfFrames

// ErrOutOfRange is returned by Read/Write/SwapCopyPage for an out-of-bounds
// physical address.
var ErrOutOfRange = errs.ErrInvalidAccess
