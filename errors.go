// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slotmap

import "fmt"

// ErrOutOfSlots is the one recoverable error this package raises. Alloc
// returns it exactly when the Slotmap is at capacity and either growth is
// disabled (the GROW flag is unset) or capacity already equals the maximum
// index representable by IndexBits. Every other misuse (invalid handle,
// out-of-bounds index, a payload pointer that did not originate from this
// Slotmap) is a contract violation, not a runtime error. Invalid handles and
// out-of-bounds indices are caught by debugAssert; a foreign payload pointer
// is not checked, and HandleOf's result for one is undefined.
type ErrOutOfSlots struct {
	Capacity uint64 // capacity at the time of the failed Alloc
	IndexMax uint64 // the largest index representable by IndexBits
}

func (e *ErrOutOfSlots) Error() string {
	if e.Capacity >= e.IndexMax {
		return fmt.Sprintf("slotmap: out of slots: capacity %d has reached the index-bit limit %d", e.Capacity, e.IndexMax)
	}
	return fmt.Sprintf("slotmap: out of slots: capacity %d exhausted and growth is disabled", e.Capacity)
}

// debugAssert panics with msg if cond is false. It exists to give contract
// violations (invalid handle, out-of-bounds index, foreign payload
// reference) a single, greppable choke point, in the same spirit as the
// teacher package's heavy use of MUST/MUST NOT prose backed by explicit
// checks in debug builds rather than silent undefined behavior.
func debugAssert(cond bool, msg string) {
	if !cond {
		panic("slotmap: " + msg)
	}
}
