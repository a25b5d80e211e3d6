// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slotmap

import (
	"fmt"
	"math/bits"
)

// Unsigned enumerates the machine word widths a Handle may be packed into.
// The spec requires 8/16/32/64 bit words to all be supported; W fixes
// HandleBits for a given Slotmap instantiation at compile time.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// wordBits returns the bit width of W, i.e. HandleBits. ^W(0) is the
// all-ones pattern for W, so its popcount-free bit length equals the word's
// width; no branch is needed for any of the four supported widths.
func wordBits[W Unsigned]() uint {
	var zero W
	return uint(bits.Len64(uint64(^zero)))
}

// Handle is a packed (index, generation) pair: an opaque, trivially-copyable,
// equality-comparable identifier for a slot. The zero Handle is the canonical
// null handle (generation 0, meaning "no live value"). Handle carries no
// ownership of the slot it names.
//
// indexBits records where, within the packed word, the index/generation
// split falls for this handle's originating Slotmap; it is copied alongside
// the packed value so a Handle remains self-decoding without a reference
// back to its Slotmap.
type Handle[W Unsigned] struct {
	packed    W
	indexBits uint8
}

// newHandle packs index and generation into a single word, low indexBits
// bits holding index, the remainder holding generation. Callers MUST ensure
// index and generation each fit in their allotted bit count; Slotmap enforces
// this at construction and during allocation.
func newHandle[W Unsigned](indexBits uint8, index, generation W) Handle[W] {
	return Handle[W]{
		packed:    index | generation<<indexBits,
		indexBits: indexBits,
	}
}

// NullHandle returns the all-zero handle: Valid reports false, Index and
// Generation both report zero.
func NullHandle[W Unsigned]() Handle[W] {
	return Handle[W]{}
}

// freeLink returns the handle value stored in a vacant slot: index holds the
// next free-list link (or the slotmap's index-max sentinel for "end of free
// list"), generation is 0 so the slot reads as vacant.
func freeLink[W Unsigned](indexBits uint8, next W) Handle[W] {
	return Handle[W]{packed: next, indexBits: indexBits}
}

// Index returns the packed index component.
func (h Handle[W]) Index() W {
	if h.indexBits == 0 {
		return h.packed
	}
	return h.packed & (W(1)<<h.indexBits - 1)
}

// Generation returns the packed generation component. A Generation of 0
// means the handle is invalid (it was never returned from a successful
// allocation, or names a slot that has since been freed and not yet
// re-stamped with this exact generation).
func (h Handle[W]) Generation() W {
	return h.packed >> h.indexBits
}

// Valid reports whether h carries a nonzero generation. It does NOT check
// that h actually resolves to a live slot in any particular Slotmap; use
// Slotmap.Find for that.
func (h Handle[W]) Valid() bool {
	return h.Generation() != 0
}

// Equal reports field-wise equality of the index and generation components.
// Handles minted with different indexBits splits (i.e. from differently
// configured Slotmaps) are never equal, even if numerically packed the same.
func (h Handle[W]) Equal(other Handle[W]) bool {
	return h.indexBits == other.indexBits && h.Index() == other.Index() && h.Generation() == other.Generation()
}

// String renders h as "index@generation" for logging and test failure
// messages; the null handle renders as "null".
func (h Handle[W]) String() string {
	if !h.Valid() {
		return "null"
	}
	return fmt.Sprintf("%d@%d", h.Index(), h.Generation())
}

// evolve advances a generation counter: increment, wrap modulo
// genMax+1 via masking, then clamp away from zero so the null sentinel is
// never minted as a live generation.
func evolve[W Unsigned](genMax, g W) W {
	next := (g + 1) & genMax
	if next == 0 {
		next = 1
	}
	return next
}
