// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command slotmapdemo pushes four strings into a
// growable, skip-field-accelerated Slotmap, free one of the middle ones,
// and print both the dense and the filtered view.
package main

import (
	"fmt"
	"os"

	"github.com/joeycumines/stumpy"
	"github.com/spf13/cobra"

	"github.com/twiggler/slotmap"
)

func main() {
	var capacity int
	var indexBits int

	root := &cobra.Command{
		Use:   "slotmapdemo",
		Short: "Demonstrates the generational slotmap's core operations.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(capacity, indexBits)
		},
	}
	root.Flags().IntVar(&capacity, "capacity", 10, "initial Slotmap capacity")
	root.Flags().IntVar(&indexBits, "index-bits", 16, "bits of the packed handle reserved for the index")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(capacity, indexBits int) error {
	logger := stumpy.L.New(stumpy.L.WithStumpy())

	sm := slotmap.New[string, uint32](slotmap.Options[uint32]{
		Capacity:  capacity,
		IndexBits: uint8(indexBits),
		Flags:     slotmap.FlagGrow | slotmap.FlagSkipField,
	})

	words := []string{"Roel ", "de ", "de ", "Jong"}
	var second slotmap.Handle[uint32]
	for i, w := range words {
		h, err := sm.Push(w)
		if err != nil {
			return fmt.Errorf("push %q: %w", w, err)
		}
		logger.Info().Str(`word`, w).Int64(`index`, int64(h.Index())).Int64(`generation`, int64(h.Generation())).Log(`pushed`)
		if i == 1 {
			second = h
		}
	}

	if v := sm.Find(second); v != nil {
		logger.Info().Str(`value`, *v).Log(`resolved second handle`)
		if sm.FreeValue(v) {
			logger.Info().Log(`freed second handle via its payload pointer`)
		}
	}
	if sm.Free(second) {
		logger.Err().Log(`double free unexpectedly succeeded`)
	} else {
		logger.Info().Log(`second free correctly reported stale handle`)
	}

	dense := collect(sm.Dense())
	logger.Info().Int64(`count`, int64(len(dense))).Log(`dense view`)
	for _, v := range dense {
		logger.Info().Str(`value`, v).Log(`dense slot`)
	}

	filtered := collectFiltered(sm)
	logger.Info().Int64(`count`, int64(len(filtered))).Log(`filtered view`)
	for _, v := range filtered {
		logger.Info().Str(`value`, v).Log(`live slot`)
	}

	logger.Info().Int64(`size`, int64(sm.Len())).Int64(`capacity`, int64(sm.Cap())).Log(`final state`)
	return nil
}

func collect(it *slotmapDenseIter) []string {
	var out []string
	for v, ok := it.Next(); ok; v, ok = it.Next() {
		out = append(out, *v)
	}
	return out
}

func collectFiltered(sm *slotmapType) []string {
	var out []string
	it := sm.Filtered()
	for v, ok := it.Next(); ok; v, ok = it.Next() {
		out = append(out, *v)
	}
	return out
}

type (
	slotmapType    = slotmap.Slotmap[string, uint32]
	slotmapDenseIter = slotmap.DenseIter[string, uint32]
)
