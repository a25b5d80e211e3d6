// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slotmap

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// assertEncoding checks the run-length encoding against a boolean oracle: for
// every i < len, s[i] == 0 iff oracle[i] is live, and every maximal dead run
// [a, a+L) carries s[a] == L, s[a+k] == k+1.
func assertEncoding(t *testing.T, f *DenseSkipField[uint32], live []bool) {
	t.Helper()
	n := len(live)
	require.Equal(t, n+1, f.Len(), "skip field length")

	i := 0
	for i < n {
		if live[i] {
			require.EqualValuesf(t, 0, f.At(i), "index %d expected live (s=0)", i)
			i++
			continue
		}
		a := i
		for i < n && !live[i] {
			i++
		}
		L := uint32(i - a)
		require.EqualValuesf(t, L, f.At(a), "run [%d,%d): head value", a, i)
		for k := 1; k < int(L); k++ {
			require.EqualValuesf(t, k+1, f.At(a+k), "run [%d,%d): tail offset at %d", a, i, a+k)
		}
	}
}

func TestSkipFieldBasicRuns(t *testing.T) {
	const n = 12
	f := NewDenseSkipField[uint32](n)
	live := make([]bool, n)
	for i := range live {
		live[i] = true
	}
	assertEncoding(t, f, live)

	toggle := func(i int) {
		if live[i] {
			f.Skip(i)
		} else {
			f.Unskip(i)
		}
		live[i] = !live[i]
	}

	for _, i := range []int{5, 6, 7, 2, 9, 6, 0, 11} {
		toggle(i)
		assertEncoding(t, f, live)
	}
}

// TestSkipFieldProperty runs 10_000 random skip/unskip toggles against a
// boolean oracle, asserting the run-length encoding after every toggle.
func TestSkipFieldProperty(t *testing.T) {
	const n = 100
	rng := rand.New(rand.NewSource(1))
	f := NewDenseSkipField[uint32](n)
	live := make([]bool, n)
	for i := range live {
		live[i] = true
	}

	for iter := 0; iter < 10_000; iter++ {
		i := rng.Intn(n)
		if live[i] {
			f.Skip(i)
		} else {
			f.Unskip(i)
		}
		live[i] = !live[i]
		assertEncoding(t, f, live)
	}
}

func TestNullSkipFieldIsNoOp(t *testing.T) {
	var f NullSkipField[uint32]
	f.Skip(3)
	f.Unskip(3)
	f.Grow()
	f.Clear()
	if f.At(3) != 0 {
		t.Errorf("NullSkipField.At() = %d, want 0", f.At(3))
	}
	if f.Len() != 0 {
		t.Errorf("NullSkipField.Len() = %d, want 0", f.Len())
	}
}
