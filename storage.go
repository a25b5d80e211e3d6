// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slotmap

import "github.com/cznic/mathutil"

// Storage owns the payload values and the per-slot handle metadata for a
// Slotmap, independent of physical layout. Two layouts satisfy
// this contract: AggregateStorage, an array of {payload, handle} structs,
// and SegregateStorage, two parallel arrays. Both are grounded on
// lldb/memfiler.go's growable, page-backed byte buffer, generalized here to
// a typed, slice-backed one: Grow doubles capacity the same way MemFiler's
// backing map grows by whole pages rather than one byte at a time.
//
// A slot's handle.Generation() == 0 iff the slot is vacant; Storage itself
// is oblivious to liveness, it only stores and reports what Slotmap asks it
// to.
type Storage[P any, W Unsigned] interface {
	// HandleAt returns the handle currently stored at slot i.
	HandleAt(i int) Handle[W]
	// SetHandleAt overwrites the handle stored at slot i.
	SetHandleAt(i int, h Handle[W])
	// HandleOf recovers the handle of the slot holding payload, given a
	// pointer to a live payload obtained from this Storage. Behavior is
	// undefined if payload did not originate from this Storage.
	HandleOf(payload *P) Handle[W]
	// ValueAt returns a pointer to the payload stored at slot i.
	ValueAt(i int) *P
	// Grow appends at least one slot, newly appended slots reading as
	// vacant (handle generation zero), and returns the new capacity,
	// clamped to indexMax.
	Grow(indexMax W) int
	// Cap reports the current number of physical slots.
	Cap() int
}

// growCapacity computes the next capacity when appending at least one slot:
// double the current capacity (or start at 1), then clamp to indexMax. Per
// construction, capacity itself is bounded above by IndexMax, leaving the index
// value IndexMax permanently unused as the Slotmap's free-list sentinel.
// This mirrors the amortized growth discipline of lldb/memfiler.go,
// translated from byte pages to typed slots, and reuses the same mathutil
// helper that file uses for its own size clamping.
func growCapacity[W Unsigned](current int, indexMax W) int {
	next := current * 2
	if next <= current {
		next = current + 1
	}
	return mathutil.Min(next, int(indexMax))
}
