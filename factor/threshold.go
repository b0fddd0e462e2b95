package factor

import (
	"math"

	"github.com/katalvlaran/dynfactor/lcsr"
	"github.com/katalvlaran/dynfactor/orderstat"
)

// FreedSlots carries the slot indices unlinked by RemoveBelow, grouped
// per store, for hand-off to InsertCandidates. Slots listed here are
// marked freed but not yet pooled; the insertion protocol either reuses
// them or returns them to the free pool.
type FreedSlots struct {
	Sides [][]int
}

// Total returns the freed-slot count across all stores.
func (fs *FreedSlots) Total() int {
	t := 0
	for _, s := range fs.Sides {
		t += len(s)
	}
	return t
}

// SetThreshold returns the magnitude of the numRM-th smallest live entry
// across the factor's stores — the cutoff under which RemoveBelow drops
// entries. numRM = 0 yields 0, which removes nothing. numRM beyond the
// live count clamps to it.
//
// The live values are copied into scratch; the selection never touches
// the stores. Returns ErrNegativeCount for numRM < 0.
func (f *Factor) SetThreshold(numRM int) (float64, error) {
	if numRM < 0 {
		return 0, ErrNegativeCount
	}
	if numRM == 0 {
		return 0, nil
	}

	var scratch []float64
	for _, sd := range f.sides() {
		st := sd.store
		for r := 0; r < st.N; r++ {
			st.Walk(r, func(slot int) bool {
				scratch = append(scratch, st.Val[slot])
				return true
			})
		}
	}
	if numRM > len(scratch) {
		numRM = len(scratch)
	}
	return orderstat.Select(scratch, numRM, orderstat.Smallest, nil)
}

// RemoveBelow unlinks every off-diagonal entry whose magnitude is
// strictly below threshold and reports the freed slots. Diagonals are
// never removed. Row-parallel: each worker owns a disjoint row range,
// so all chain mutations are row-local; freed slots collect in
// per-worker buffers merged after the barrier.
//
// Invariants I2–I5 survive because unlinking preserves chain order and
// skips the diagonal; the freed slots extend the free set (I6).
func (f *Factor) RemoveBelow(threshold float64) (*FreedSlots, error) {
	if threshold < 0 {
		return nil, ErrNegativeCount
	}
	fs := &FreedSlots{}
	for _, sd := range f.sides() {
		st := sd.store
		buffers := make([][]int, f.opts.Workers)
		parallelChunks(f.opts.Workers, st.N, func(chunk, lo, hi int) {
			var buf []int
			for r := lo; r < hi; r++ {
				prev := 0
				curr := st.First(r)
				for curr != lcsr.EndOfRow {
					next := st.List[curr]
					if st.Col[curr] != r && math.Abs(st.Val[curr]) < threshold {
						// Unlink: head pointer or predecessor link.
						st.Val[curr] = 0
						st.List[curr] = lcsr.Freed
						if prev == 0 {
							st.Row[r] = next
						} else {
							st.List[prev] = next
						}
						buf = append(buf, curr)
					} else {
						prev = curr
					}
					curr = next
				}
			}
			buffers[chunk] = buf
		})

		var freed []int
		for _, buf := range buffers {
			freed = append(freed, buf...)
		}
		st.AdjustLive(-len(freed))
		fs.Sides = append(fs.Sides, freed)
	}
	return fs, nil
}
