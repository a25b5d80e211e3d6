// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slotmap

// DenseIter visits every slot in [0, top), live or dead, in index order
// It is a non-owning view; any Alloc/Push that grows Storage,
// or any Free/Clear, invalidates pointers already returned but not the
// iterator's position itself.
type DenseIter[P any, W Unsigned] struct {
	s *Slotmap[P, W]
	i int
}

// Dense returns an iterator over all touched slots, including dead ones.
func (s *Slotmap[P, W]) Dense() *DenseIter[P, W] {
	return &DenseIter[P, W]{s: s}
}

// Next advances the iterator and returns the next slot's payload pointer,
// or (nil, false) once [0, top) is exhausted.
func (it *DenseIter[P, W]) Next() (*P, bool) {
	if it.i >= it.s.top {
		return nil, false
	}
	v := it.s.storage.ValueAt(it.i)
	it.i++
	return v, true
}

// Handle returns the handle of the slot last returned by Next, valid or
// not (a dead slot's handle carries generation zero).
func (it *DenseIter[P, W]) Handle() Handle[W] {
	return it.s.storage.HandleAt(it.i - 1)
}

// FilteredIter visits only live slots, forward or backward. It
// accelerates via the Slotmap's SkipField when FlagSkipField was set at
// construction; otherwise it falls back to linear scanning, skipping dead
// slots one at a time. Which strategy applies is decided once, at iterator
// construction, not re-checked on every step.
type FilteredIter[P any, W Unsigned] struct {
	s          *Slotmap[P, W]
	accel      bool
	i          int // index of the last slot returned; before the first, -1 (forward) or top (reverse)
	forwardEnd bool
}

// Filtered returns a forward iterator over live slots only.
func (s *Slotmap[P, W]) Filtered() *FilteredIter[P, W] {
	return &FilteredIter[P, W]{s: s, accel: s.flags&FlagSkipField != 0, i: -1}
}

// FilteredReverse returns a backward iterator over live slots only,
// starting past the last slot.
func (s *Slotmap[P, W]) FilteredReverse() *FilteredIter[P, W] {
	return &FilteredIter[P, W]{s: s, accel: s.flags&FlagSkipField != 0, i: s.top}
}

// Next advances the iterator forward to the next live slot, or returns
// (nil, false) once no live slots remain.
func (it *FilteredIter[P, W]) Next() (*P, bool) {
	s := it.s
	p := it.i + 1
	if it.accel {
		for p < s.top && s.skipfield.At(p) != 0 {
			p += int(s.skipfield.At(p))
		}
	} else {
		for p < s.top && !isLive(s, p) {
			p++
		}
	}
	if p >= s.top {
		it.i = s.top
		return nil, false
	}
	it.i = p
	return s.storage.ValueAt(p), true
}

// Prev moves the iterator backward to the previous live slot, or returns
// (nil, false) once no live slots remain before the current position.
func (it *FilteredIter[P, W]) Prev() (*P, bool) {
	s := it.s
	p := it.i - 1
	if it.accel {
		if p >= 0 {
			if x := s.skipfield.At(p); x != 0 {
				p -= int(x)
			}
		}
	} else {
		for p >= 0 && !isLive(s, p) {
			p--
		}
	}
	if p < 0 {
		it.i = -1
		return nil, false
	}
	it.i = p
	return s.storage.ValueAt(p), true
}

// Handle returns the handle of the slot last returned by Next or Prev.
func (it *FilteredIter[P, W]) Handle() Handle[W] {
	return it.s.storage.HandleAt(it.i)
}

// isLive reports whether slot i currently holds a live value.
func isLive[P any, W Unsigned](s *Slotmap[P, W], i int) bool {
	return s.storage.HandleAt(i).Valid()
}
