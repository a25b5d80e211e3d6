// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slotmap

// Flags amend the behavior of a Slotmap, selected once at construction time
// Modeled directly on dbm/options.go's ACID iota group: one bit
// (or, there, one exclusive value) per behavior, each documented in its own
// paragraph.
type Flags uint8

const (
	// FlagGrow allows Alloc to grow the backing Storage past its initial
	// capacity, up to IndexMax. Without it, Alloc returns ErrOutOfSlots as
	// soon as the Slotmap reaches its initial capacity, even if IndexMax
	// has not been reached.
	FlagGrow Flags = 1 << iota

	// FlagSkipField enables the jump-count SkipField backing
	// Filtered iteration, giving O(1)-per-step advances regardless of how
	// many dead slots separate two live ones. Without it, a degenerate
	// no-op field is used and Filtered iteration falls back to linear
	// scanning, which is O(dead-slots-scanned) per step.
	FlagSkipField

	// FlagSegregate forces the two-array Storage layout (SegregateStorage)
	// even when the payload type would be safe to use with the
	// single-array AggregateStorage. Use this when the caller does not
	// want to vouch for P's addressability as the first field of an
	// aggregate struct.
	FlagSegregate
)

// Options configures a new Slotmap. Capacity, IndexBits and
// Flags are mandatory in spirit (zero values are legal but degenerate: a
// Capacity of 0 starts empty, an IndexBits of 0 is rejected by New).
// Generation defaults to 1 when left at its zero value, for deterministic
// behavior across runs; callers needing a different starting
// generation (but never 0) may set it explicitly.
type Options[W Unsigned] struct {
	// Capacity is the initial number of physical slots, clamped to
	// IndexMax (2^IndexBits - 1).
	Capacity int

	// IndexBits splits the packed handle word between index and
	// generation: IndexBits + GenerationBits == bit width of W, and both
	// must be greater than zero. GenerationBits is derived, not supplied
	// directly.
	IndexBits uint8

	// Generation is the initial value of the generation clock. Zero means
	// "use the default of 1"; any explicit nonzero value must lie in
	// [1, GenerationMax].
	Generation W

	// Flags selects GROW/SKIPFIELD/SEGREGATE behavior; see the Flag*
	// constants.
	Flags Flags
}
