// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slotmap

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/cznic/sortutil"
	"github.com/stretchr/testify/require"
)

// TestSlotmapProperties runs random sequences of Push/Free/Clear against a
// reference oracle and checks, after every operation, the universal
// invariants: handle round-tripping, the live-count size law and free-list
// closure (ABA safety and generation monotonicity are exercised directly by
// TestGenerationCycle and TestEvolve).
func TestSlotmapProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	sm := New[int, uint32](Options[uint32]{
		Capacity:  8,
		IndexBits: 20,
		Flags:     FlagGrow | FlagSkipField,
	})

	live := map[Handle[uint32]]int{} // handle -> payload value, mirrors live slots

	for op := 0; op < 5000; op++ {
		switch choice := rng.Intn(10); {
		case choice < 6: // push
			v := rng.Int()
			h, err := sm.Push(v)
			if err != nil {
				continue // out of slots and non-growable is never expected here
			}
			live[h] = v

			// Property 1: handle validity round-trip.
			got := sm.Find(h)
			require.NotNilf(t, got, "op %d: Find(h) immediately after Push", op)
			require.Equalf(t, v, *got, "op %d: payload mismatch after Push", op)
			require.Truef(t, sm.HandleOf(got).Equal(h), "op %d: HandleOf(value) != h", op)

		case choice < 9 && len(live) > 0: // free a random live handle
			var target Handle[uint32]
			for h := range live {
				target = h
				break
			}
			require.Truef(t, sm.Free(target), "op %d: Free(live handle) returned false", op)
			delete(live, target)
			require.Nilf(t, sm.Find(target), "op %d: Find(freed handle) should be nil", op)

		default: // clear
			sm.Clear()
			live = map[Handle[uint32]]int{}
		}

		assertSizeLaw(t, op, sm)
		assertFreeListClosure(t, op, sm)
	}
}

// assertSizeLaw checks that Len() agrees with both iteration views' live counts.
func assertSizeLaw(t *testing.T, op int, sm *Slotmap[int, uint32]) {
	t.Helper()
	dense := 0
	it := sm.Dense()
	for v, ok := it.Next(); ok; v, ok = it.Next() {
		if it.Handle().Valid() {
			dense++
		}
		_ = v
	}

	filtered := 0
	fit := sm.Filtered()
	for _, ok := fit.Next(); ok; _, ok = fit.Next() {
		filtered++
	}

	require.Equalf(t, sm.Len(), dense, "op %d: size law: Len() vs dense live count", op)
	require.Equalf(t, sm.Len(), filtered, "op %d: size law: Len() vs filtered count", op)
}

// assertFreeListClosure checks that, starting at freeHead and
// following handle index links visits exactly top-size distinct indices,
// all < top, all vacant, terminating at the index-max sentinel.
func assertFreeListClosure(t *testing.T, op int, sm *Slotmap[int, uint32]) {
	t.Helper()

	var visited []int
	cur := sm.freeHead
	for uint64(cur) != uint64(sm.indexMax) {
		i := int(cur)
		require.Truef(t, i >= 0 && i < sm.top, "op %d: free-list index %d out of [0, %d)", op, i, sm.top)
		h := sm.storage.HandleAt(i)
		require.Falsef(t, h.Valid(), "op %d: free-list index %d is not vacant", op, i)
		visited = append(visited, i)
		cur = h.Index()
		require.LessOrEqualf(t, len(visited), sm.top, "op %d: free list does not terminate", op)
	}

	require.Lenf(t, visited, sm.top-sm.Len(), "op %d: free-list length mismatch", op)

	sorted := append([]int(nil), visited...)
	sort.Sort(sortutil.IntSlice(sorted))
	for i := 1; i < len(sorted); i++ {
		require.NotEqualf(t, sorted[i-1], sorted[i], "op %d: free-list index %d visited twice", op, sorted[i])
	}
}
