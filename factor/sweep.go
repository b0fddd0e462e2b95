package factor

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/katalvlaran/dynfactor/lcsr"
)

// Sweep performs one asynchronous fixed-point pass over every live
// entry, slot-parallel. For an entry e = (r, c) of the lower store the
// update is
//
//	val(e) = √(A[r,r] − Σₖ L[r,k]·L[c,k])        r == c, IC
//	val(e) = (A[r,c] − Σₖ ...) / diag(c)         r > c
//
// with the sum running over k < c (the merge walk's final matched term
// is dropped). The ILU form keeps the unit L diagonal fixed and assigns
// the Uᵀ diagonal A[c,c] − Σ directly; its off-diagonal divisors are
// the Uᵀ pivots on the L side and the unit diagonal on the Uᵀ side.
//
// Each slot is written by exactly one task; reads of neighboring slots
// may observe values from before or after their own update in the same
// pass. The iteration is a fixed point in the Chow–Patel sense and
// converges under any read order, so the kernel takes no locks —
// callers wanting bit-reproducible sweeps must run with Workers = 1.
//
// A non-positive IC pivot or a zero divisor leaves the entry's previous
// value in place; the pass completes and reports the count through a
// wrapped ErrNonPositiveDiagonal (soft — more sweeps usually repair it).
func (f *Factor) Sweep() error {
	var bad atomic.Int64
	for _, sd := range f.sides() {
		st := sd.store
		parallelChunks(f.opts.Workers, st.Cap(), func(_, lo, hi int) {
			for idx := lo; idx < hi; idx++ {
				slot := idx + 1 // slot 0 is the sentinel
				if st.List[slot] == lcsr.Freed || st.RowIdx[slot] < 0 {
					continue
				}
				if !sweepSlot(f, sd, slot) {
					bad.Add(1)
				}
			}
		})
	}
	if n := bad.Load(); n > 0 {
		return fmt.Errorf("factor: %d entries skipped: %w", n, ErrNonPositiveDiagonal)
	}
	return nil
}

// sweepSlot updates one live entry in place and reports numeric health.
func sweepSlot(f *Factor, sd side, slot int) bool {
	st := sd.store
	r, c := st.RowIdx[slot], st.Col[slot]
	ae := sd.systemAt(f.A, r, c)

	sum, last, jold := mergeWalk(st, st.First(r), sd.partner, sd.partner.First(c))
	// The final matched product pairs the entry itself with the column
	// row's diagonal; the fixed-point update excludes it.
	sum -= last

	if r == c {
		switch {
		case f.opts.Form == ILU && !sd.upper:
			// Unit L diagonal stays 1 by convention.
		case f.opts.Form == ILU:
			st.Val[slot] = ae - sum
		default:
			arg := ae - sum
			if arg <= 0 {
				return false
			}
			st.Val[slot] = math.Sqrt(arg)
		}
		return true
	}

	div := sd.partner.Val[jold]
	if div == 0 {
		return false
	}
	st.Val[slot] = (ae - sum) / div
	return true
}
