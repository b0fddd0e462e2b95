package factor

// EvaluateResiduals computes, for every candidate position, the residual
//
//	res = A[r,c] − Σₖ L[r,k]·L[c,k]   (IC)
//	res = A[r,c] − Σₖ L[r,k]·U[k,c]   (ILU, analogously on the Uᵀ side)
//
// by merge-walking the two relevant row chains, and stores it in the
// candidate's Val. Since a candidate is absent from the pattern, the
// merge never matches at column c itself; the sum runs over the common
// prefix k < c exactly.
//
// Candidate-parallel; reads the stores, writes only the candidate list.
func (f *Factor) EvaluateResiduals(cs *CandidateSet) error {
	sides := f.sides()
	if cs == nil || len(cs.Sides) != len(sides) {
		return ErrDimension
	}
	for si, sd := range sides {
		c := &cs.Sides[si]
		parallelChunks(f.opts.Workers, c.NNZ(), func(_, lo, hi int) {
			for e := lo; e < hi; e++ {
				row, col := c.RowIdx[e], c.Col[e]
				sum, _, _ := mergeWalk(
					sd.store, sd.store.First(row),
					sd.partner, sd.partner.First(col),
				)
				c.Val[e] = sd.systemAt(f.A, row, col) - sum
			}
		})
	}
	return nil
}
