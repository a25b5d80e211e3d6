// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slotmap

import "unsafe"

// aggregateSlot is {payload, handle}, payload first. That ordering is load
// bearing: HandleOf reinterprets a *P obtained from ValueAt as a pointer to
// this struct, which is only sound because payload is the struct's first
// field (so the two addresses coincide).
type aggregateSlot[P any, W Unsigned] struct {
	payload P
	handle  Handle[W]
}

// AggregateStorage is the aggregate layout: a single array of
// {payload, handle} structs. It recovers a handle from a payload pointer in
// O(1) via pointer reinterpretation, at the cost of requiring callers to
// vouch that P is safe to address this way (no self-referential pointers
// into the struct, no field reordering assumptions beyond what this file
// establishes).
type AggregateStorage[P any, W Unsigned] struct {
	slots []aggregateSlot[P, W]
}

var _ Storage[struct{}, uint32] = (*AggregateStorage[struct{}, uint32])(nil)

// NewAggregateStorage returns a Storage of the given initial capacity, all
// slots vacant (zero handle).
func NewAggregateStorage[P any, W Unsigned](capacity int) *AggregateStorage[P, W] {
	return &AggregateStorage[P, W]{slots: make([]aggregateSlot[P, W], capacity)}
}

func (s *AggregateStorage[P, W]) Cap() int { return len(s.slots) }

func (s *AggregateStorage[P, W]) HandleAt(i int) Handle[W] {
	return s.slots[i].handle
}

func (s *AggregateStorage[P, W]) SetHandleAt(i int, h Handle[W]) {
	s.slots[i].handle = h
}

func (s *AggregateStorage[P, W]) ValueAt(i int) *P {
	return &s.slots[i].payload
}

// HandleOf reinterprets payload as a pointer to the aggregateSlot that owns
// it. This is only valid for a *P returned by ValueAt on this Storage.
func (s *AggregateStorage[P, W]) HandleOf(payload *P) Handle[W] {
	slot := (*aggregateSlot[P, W])(unsafe.Pointer(payload))
	return slot.handle
}

func (s *AggregateStorage[P, W]) Grow(indexMax W) int {
	newCap := growCapacity(len(s.slots), indexMax)
	grown := make([]aggregateSlot[P, W], newCap)
	copy(grown, s.slots)
	s.slots = grown
	return newCap
}
