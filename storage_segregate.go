// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slotmap

import "unsafe"

// SegregateStorage is the segregate layout: two parallel arrays,
// one of payloads and one of handles. Use it when P is not safe to address
// as the first field of an aggregate struct (e.g. it embeds a pointer back
// into itself, or the caller simply does not want to vouch for layout);
// HandleOf costs one extra pointer-arithmetic step against the payload
// array's base address instead of a direct reinterpretation.
type SegregateStorage[P any, W Unsigned] struct {
	payloads []P
	handles  []Handle[W]
}

var _ Storage[struct{}, uint32] = (*SegregateStorage[struct{}, uint32])(nil)

// NewSegregateStorage returns a Storage of the given initial capacity, all
// slots vacant (zero handle).
func NewSegregateStorage[P any, W Unsigned](capacity int) *SegregateStorage[P, W] {
	return &SegregateStorage[P, W]{
		payloads: make([]P, capacity),
		handles:  make([]Handle[W], capacity),
	}
}

func (s *SegregateStorage[P, W]) Cap() int { return len(s.payloads) }

func (s *SegregateStorage[P, W]) HandleAt(i int) Handle[W] {
	return s.handles[i]
}

func (s *SegregateStorage[P, W]) SetHandleAt(i int, h Handle[W]) {
	s.handles[i] = h
}

func (s *SegregateStorage[P, W]) ValueAt(i int) *P {
	return &s.payloads[i]
}

// HandleOf recovers the index of payload by pointer arithmetic against the
// payload array's base address, then looks up the handle array at that
// index. This is only valid for a *P returned by ValueAt on this Storage,
// and only while the backing array has not since been reallocated by Grow.
func (s *SegregateStorage[P, W]) HandleOf(payload *P) Handle[W] {
	var zero P
	elemSize := unsafe.Sizeof(zero)
	base := unsafe.Pointer(&s.payloads[0])
	off := uintptr(unsafe.Pointer(payload)) - uintptr(base)
	return s.handles[off/elemSize]
}

func (s *SegregateStorage[P, W]) Grow(indexMax W) int {
	newCap := growCapacity(len(s.payloads), indexMax)

	grownPayloads := make([]P, newCap)
	copy(grownPayloads, s.payloads)
	s.payloads = grownPayloads

	grownHandles := make([]Handle[W], newCap)
	copy(grownHandles, s.handles)
	s.handles = grownHandles

	return newCap
}
