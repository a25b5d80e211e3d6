// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*

Package slotmap implements a generational slotmap: a container that
allocates values in contiguous, index-addressable slots and hands out
stable, opaque Handle values that remain safe to resolve after unrelated
erasures, and that detect use-after-free once a slot has been reused.

Terms MUST or MUST NOT, where used in this package's documentation, describe
a requirement on the implementation, not a promise enforced at runtime on
caller behavior unless explicitly stated.

Handles

A Handle is a packed (index, generation) pair. Generation zero is the
sentinel meaning "no live value"; the zero Handle is the canonical null
handle and is never returned by a successful Alloc or Push.

Free list

Vacated slots are threaded into a singly linked free list, rooted at
freeHead and running through the index field of each vacant slot's stored
handle (a vacant slot's handle always carries generation zero). Popping the
free list preserves index stability: an index, once assigned, is reused only
after its handle has been invalidated by a generation bump.

Growth

A Slotmap either has a fixed capacity (the default) or may grow past its
initial capacity up to IndexMax, the largest index representable by
IndexBits, if constructed with FlagGrow. Growth reallocates the backing
Storage; prior payload pointers (but not Handles) are invalidated by it.

*/
package slotmap

// Slotmap orchestrates allocation, the free list, the generation clock and
// capacity growth over a Storage and, optionally, a SkipField. It is not
// safe for concurrent use.
type Slotmap[P any, W Unsigned] struct {
	storage   Storage[P, W]
	skipfield SkipField[W]

	indexBits uint8
	indexMax  W // 2^IndexBits - 1
	genMax    W // 2^GenerationBits - 1

	flags      Flags
	top        int // indices < top have been touched at least once
	size       int // count of live slots
	freeHead   W   // head of the free list, or indexMax for "empty"
	generation W   // next generation to stamp
}

// New constructs a Slotmap per opts. IndexBits must be strictly between 0
// and the bit width of W; a zero or out-of-range IndexBits, or an explicit
// Generation outside [1, GenerationMax], is a construction-time contract
// violation and panics, in the same spirit as the rest of this package's
// debugAssert-guarded invariants.
func New[P any, W Unsigned](opts Options[W]) *Slotmap[P, W] {
	bits := wordBits[W]()
	debugAssert(opts.IndexBits > 0 && uint(opts.IndexBits) < bits, "New: IndexBits must be in (0, word bit width)")

	generationBits := bits - uint(opts.IndexBits)
	genMax := W(1)<<generationBits - 1
	indexMax := W(1)<<opts.IndexBits - 1

	generation := opts.Generation
	if generation == 0 {
		generation = 1
	}
	debugAssert(generation >= 1 && generation <= genMax, "New: Generation must be in [1, GenerationMax]")

	capacity := opts.Capacity
	if max := int(indexMax); capacity > max {
		capacity = max
	}

	var storage Storage[P, W]
	if opts.Flags&FlagSegregate != 0 {
		storage = NewSegregateStorage[P, W](capacity)
	} else {
		storage = NewAggregateStorage[P, W](capacity)
	}

	var skipfield SkipField[W]
	if opts.Flags&FlagSkipField != 0 {
		skipfield = NewDenseSkipField[W](capacity)
	} else {
		skipfield = NullSkipField[W]{}
	}

	return &Slotmap[P, W]{
		storage:    storage,
		skipfield:  skipfield,
		indexBits:  opts.IndexBits,
		indexMax:   indexMax,
		genMax:     genMax,
		flags:      opts.Flags,
		freeHead:   indexMax,
		generation: generation,
	}
}

// Len returns the count of live slots.
func (s *Slotmap[P, W]) Len() int { return s.size }

// Cap returns the number of physical slots currently backing the Slotmap.
func (s *Slotmap[P, W]) Cap() int { return s.storage.Cap() }

// IsEmpty reports whether the Slotmap holds no live values.
func (s *Slotmap[P, W]) IsEmpty() bool { return s.size == 0 }

// IndexMax returns the largest index representable by this Slotmap's
// IndexBits, i.e. 2^IndexBits - 1.
func (s *Slotmap[P, W]) IndexMax() W { return s.indexMax }

// Reserve grows the backing Storage, if necessary and if FlagGrow is set,
// until its capacity is at least n (clamped to IndexMax). It is a
// supplement to the core spec: a way to pay Storage.Grow's cost once,
// ahead of a known batch of Alloc/Push calls, rather than amortized across
// them. Reserve is a no-op if capacity already covers n, or if FlagGrow is
// unset and n is unreachable without growth.
func (s *Slotmap[P, W]) Reserve(n int) {
	if s.flags&FlagGrow == 0 {
		return
	}
	for s.storage.Cap() < n && s.storage.Cap() < int(s.indexMax) {
		s.storage.Grow(s.indexMax)
	}
}

// alloc runs the core allocation algorithm and returns the index of the
// newly stamped slot.
func (s *Slotmap[P, W]) alloc() (int, error) {
	var i int
	if uint64(s.freeHead) < uint64(s.top) {
		i = int(s.freeHead)
		s.freeHead = s.storage.HandleAt(i).Index()
		s.skipfield.Unskip(i)
	} else {
		if s.size == s.storage.Cap() {
			if s.flags&FlagGrow == 0 || s.storage.Cap() >= int(s.indexMax) {
				return 0, &ErrOutOfSlots{Capacity: uint64(s.storage.Cap()), IndexMax: uint64(s.indexMax)}
			}
			s.storage.Grow(s.indexMax)
		}
		i = s.top
		s.top++
		s.skipfield.Grow()
	}

	h := newHandle(s.indexBits, W(i), s.generation)
	s.storage.SetHandleAt(i, h)
	s.size++
	s.generation = evolve(s.genMax, s.generation)
	return i, nil
}

// Alloc allocates a new slot and returns a pointer to its (zero-valued,
// unless previously used and not wiped) payload. The returned pointer is
// invalidated by any subsequent Alloc/Push that grows Storage, and by
// Free/Clear of that slot.
func (s *Slotmap[P, W]) Alloc() (*P, error) {
	i, err := s.alloc()
	if err != nil {
		return nil, err
	}
	return s.storage.ValueAt(i), nil
}

// Push allocates a new slot, assigns value into it, and returns its Handle.
func (s *Slotmap[P, W]) Push(value P) (Handle[W], error) {
	i, err := s.alloc()
	if err != nil {
		return NullHandle[W](), err
	}
	*s.storage.ValueAt(i) = value
	return s.storage.HandleAt(i), nil
}

// Find resolves h to a pointer to its payload, or returns nil if h is stale
// (the slot has since been freed, possibly reused with a new generation) or
// otherwise does not name a currently live slot. h must be Valid(); passing
// an invalid handle is a contract violation.
func (s *Slotmap[P, W]) Find(h Handle[W]) *P {
	debugAssert(h.Valid(), "Find: handle is not valid (generation zero)")
	i := int(h.Index())
	debugAssert(i >= 0 && i < s.storage.Cap(), "Find: handle index out of bounds")

	if !s.storage.HandleAt(i).Equal(h) {
		return nil
	}
	return s.storage.ValueAt(i)
}

// HandleOf recovers the Handle of a live payload obtained from this
// Slotmap, or NullHandle if the slot it names is no longer live. value must
// have originated from this Slotmap; passing a foreign pointer is undefined
// behavior, in the same sense that indexing past the end of a slice is.
func (s *Slotmap[P, W]) HandleOf(value *P) Handle[W] {
	h := s.storage.HandleOf(value)
	if !h.Valid() {
		return NullHandle[W]()
	}
	return h
}

// Free invalidates h's slot, returning it to the free list, and reports
// whether it did so. It returns false, without effect, if h is stale (the
// slot was already free, or has since been reused under a different
// generation) — that is the documented way to test a handle's liveness, not
// an error. h must be Valid().
func (s *Slotmap[P, W]) Free(h Handle[W]) bool {
	debugAssert(h.Valid(), "Free: handle is not valid (generation zero)")
	i := int(h.Index())
	debugAssert(i >= 0 && i < s.storage.Cap(), "Free: handle index out of bounds")

	if !s.storage.HandleAt(i).Equal(h) {
		return false
	}

	old := s.freeHead
	s.freeHead = W(i)
	s.skipfield.Skip(i)
	s.storage.SetHandleAt(i, freeLink[W](s.indexBits, old))
	s.size--
	return true
}

// FreeValue resolves value to its Handle via HandleOf and frees it,
// reporting whether a live slot was found and freed.
func (s *Slotmap[P, W]) FreeValue(value *P) bool {
	h := s.storage.HandleOf(value)
	if !h.Valid() {
		return false
	}
	return s.Free(h)
}

// Clear invalidates every live handle, empties the Slotmap and resets top
// and the free list, while leaving Cap() unchanged. The generation clock is
// advanced once (not reset), so the first post-Clear Alloc stamps a
// generation different from the last one minted before the Clear whenever
// GenerationMax is above 1. Generations still repeat once the clock wraps,
// so an older pre-Clear handle can equal a post-Clear one.
func (s *Slotmap[P, W]) Clear() {
	for i := 0; i < s.top; i++ {
		s.storage.SetHandleAt(i, NullHandle[W]())
	}
	s.skipfield.Clear()
	s.size = 0
	s.top = 0
	s.freeHead = s.indexMax
	s.generation = evolve(s.genMax, s.generation)
}
