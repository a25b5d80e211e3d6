// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slotmap

import "testing"

func buildSparse(t *testing.T, flags Flags) (*Slotmap[int, uint32], []Handle[uint32]) {
	t.Helper()
	sm := New[int, uint32](Options[uint32]{Capacity: 8, IndexBits: 20, Flags: flags})
	var handles []Handle[uint32]
	for i := 0; i < 8; i++ {
		h, err := sm.Push(i)
		if err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
		handles = append(handles, h)
	}
	// Free slots 1, 2 and 5, leaving dead runs of length 2 and 1 between live slots.
	for _, i := range []int{1, 2, 5} {
		if !sm.Free(handles[i]) {
			t.Fatalf("free %d: got false", i)
		}
	}
	return sm, handles
}

func TestFilteredForwardBackwardAgree(t *testing.T) {
	for _, flags := range []Flags{0, FlagSkipField} {
		sm, _ := buildSparse(t, flags)

		var forward []int
		it := sm.Filtered()
		for v, ok := it.Next(); ok; v, ok = it.Next() {
			forward = append(forward, *v)
		}

		var backward []int
		rit := sm.FilteredReverse()
		for v, ok := rit.Prev(); ok; v, ok = rit.Prev() {
			backward = append(backward, *v)
		}
		for i, j := 0, len(backward)-1; i < j; i, j = i+1, j-1 {
			backward[i], backward[j] = backward[j], backward[i]
		}

		if len(forward) != len(backward) {
			t.Fatalf("flags=%v: forward len %d != backward len %d", flags, len(forward), len(backward))
		}
		for i := range forward {
			if forward[i] != backward[i] {
				t.Fatalf("flags=%v: forward %v != reversed-backward %v", flags, forward, backward)
			}
		}
		want := []int{0, 3, 4, 6, 7}
		if len(forward) != len(want) {
			t.Fatalf("flags=%v: forward = %v, want %v", flags, forward, want)
		}
		for i := range want {
			if forward[i] != want[i] {
				t.Fatalf("flags=%v: forward = %v, want %v", flags, forward, want)
			}
		}
	}
}

func TestDenseIteratorIncludesDead(t *testing.T) {
	sm, _ := buildSparse(t, 0)
	count := 0
	it := sm.Dense()
	for _, ok := it.Next(); ok; _, ok = it.Next() {
		count++
	}
	if count != 8 {
		t.Fatalf("dense iteration count = %d, want 8 (top)", count)
	}
}
