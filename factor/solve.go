package factor

import "github.com/katalvlaran/dynfactor/lcsr"

// SolveLower solves L·y = b by forward substitution over the lower
// store's chains. Chains are ascending with the diagonal last, so each
// row folds its off-diagonal terms before dividing by the pivot.
// For the ILU form the stored unit diagonal makes the division a no-op.
func (f *Factor) SolveLower(b []float64) ([]float64, error) {
	if len(b) != f.A.N {
		return nil, ErrDimension
	}
	st := f.lower
	y := make([]float64, len(b))
	copy(y, b)
	for i := 0; i < st.N; i++ {
		acc := y[i]
		diag := 1.0
		for slot := st.First(i); slot != lcsr.EndOfRow; slot = st.Next(slot) {
			if j := st.Col[slot]; j < i {
				acc -= st.Val[slot] * y[j]
			} else {
				diag = st.Val[slot]
			}
		}
		y[i] = acc / diag
	}
	return y, nil
}

// SolveUpper solves Lᵀ·x = b (IC) or U·x = b (ILU) by backward
// substitution. Both cases walk the same shape: the IC upper triangle
// is the lower store read column-wise, and the ILU U is stored
// transposed already, so row i of the walked store scatters its
// contribution x[i] into every earlier unknown.
func (f *Factor) SolveUpper(b []float64) ([]float64, error) {
	if len(b) != f.A.N {
		return nil, ErrDimension
	}
	st := f.lower
	if f.opts.Form == ILU {
		st = f.upper
	}
	x := make([]float64, len(b))
	copy(x, b)
	for i := st.N - 1; i >= 0; i-- {
		// The pivot is the chain's final entry by the diagonal-last invariant.
		diag := 1.0
		for slot := st.First(i); slot != lcsr.EndOfRow; slot = st.Next(slot) {
			if st.Col[slot] == i {
				diag = st.Val[slot]
			}
		}
		x[i] /= diag
		for slot := st.First(i); slot != lcsr.EndOfRow; slot = st.Next(slot) {
			if j := st.Col[slot]; j < i {
				x[j] -= st.Val[slot] * x[i]
			}
		}
	}
	return x, nil
}

// Apply performs one preconditioner application: it returns
// (L·Lᵀ)⁻¹·b for IC or (L·U)⁻¹·b for ILU.
func (f *Factor) Apply(b []float64) ([]float64, error) {
	y, err := f.SolveLower(b)
	if err != nil {
		return nil, err
	}
	return f.SolveUpper(y)
}
