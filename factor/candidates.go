package factor

import "github.com/katalvlaran/dynfactor/lcsr"

// Candidates is a flat COO list of positions currently absent from one
// store, each a potential fill-in location. After EvaluateResiduals,
// Val[e] carries the residual A[pos] − (L·Lᵀ)[pos] (resp. L·U) at the
// candidate position.
type Candidates struct {
	RowIdx []int
	Col    []int
	Val    []float64
}

// NNZ returns the number of candidates in the list.
func (c *Candidates) NNZ() int { return len(c.Val) }

// CandidateSet groups the per-store candidate lists of a factor:
// one list for IC, two (L then Uᵀ) for ILU.
type CandidateSet struct {
	Sides []Candidates
}

// Total returns the candidate count across all stores.
func (cs *CandidateSet) Total() int {
	t := 0
	for i := range cs.Sides {
		t += cs.Sides[i].NNZ()
	}
	return t
}

// DiscoverCandidates enumerates the symbolic fill-in positions of the
// factor: every (c1, c2) with c1 > c2 absent from the pattern such that
// some row m holds live entries at both (m, c1) and (m, c2) — the
// symbolic product of two existing entries spills into (c1, c2).
//
// The kernel is row-parallel and runs in two passes to avoid a global
// mutex: pass A counts candidates per enumerating row, an exclusive
// scan turns counts into write offsets, pass B re-enumerates and emits
// into the reserved regions. A position may be emitted by several
// enumerating rows; duplicates are tolerated here (their residuals are
// identical) and rejected by the insertion protocol.
//
// Must not run concurrently with mutating kernels; the driver invokes
// it between rounds, when chains are quiescent.
func (f *Factor) DiscoverCandidates() *CandidateSet {
	cs := &CandidateSet{}
	for _, sd := range f.sides() {
		cs.Sides = append(cs.Sides, discoverStore(sd.store, f.opts.Workers))
	}
	return cs
}

// discoverStore runs both passes over one store.
func discoverStore(st *lcsr.Store, workers int) Candidates {
	n := st.N

	// Pass A: per-row candidate counts, offset by one for the scan.
	add := make([]int, n+1)
	parallelRows(workers, n, func(r int) {
		count := 0
		enumeratePairs(st, r, func(c1, c2 int) {
			count++
		})
		add[r+1] = count
	})

	// Exclusive scan: add[r] becomes the write offset of row r.
	for i := 0; i < n; i++ {
		add[i+1] += add[i]
	}

	out := Candidates{
		RowIdx: make([]int, add[n]),
		Col:    make([]int, add[n]),
		Val:    make([]float64, add[n]),
	}

	// Pass B: re-enumerate and emit into the reserved region.
	parallelRows(workers, n, func(r int) {
		at := add[r]
		enumeratePairs(st, r, func(c1, c2 int) {
			out.RowIdx[at] = c1
			out.Col[at] = c2
			out.Val[at] = 0
			at++
		})
	})
	return out
}

// enumeratePairs visits, for row r, every pair of strictly-sub-diagonal
// entries (a, b) with col(a) > col(b) whose product position
// (c1, c2) = (col(a), col(b)) is absent from the store, invoking emit
// for each. The outer cursor stops one short of the chain end, which by
// the diagonal-last invariant excludes the diagonal from both roles.
func enumeratePairs(st *lcsr.Store, r int, emit func(c1, c2 int)) {
	for a := st.First(r); st.Next(a) != lcsr.EndOfRow; a = st.Next(a) {
		for b := st.First(r); b != a; b = st.Next(b) {
			c1, c2 := st.Col[a], st.Col[b]
			if !st.Has(c1, c2) {
				emit(c1, c2)
			}
		}
	}
}
