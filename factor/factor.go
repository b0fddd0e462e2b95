package factor

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/dynfactor/csr"
	"github.com/katalvlaran/dynfactor/lcsr"
)

// Factor is a dynamic incomplete factorization of a sparse matrix A.
// The lower store holds L; for the ILU form a second store holds Uᵀ
// row-wise, so both triangles merge-walk with the same kernel code.
// A stays immutable for the lifetime of the factor.
type Factor struct {
	A    *csr.Matrix
	opts Options

	lower *lcsr.Store
	upper *lcsr.Store // Uᵀ; nil for IC

	lowerLocks []sync.Mutex // one row lock per row of the lower store
	upperLocks []sync.Mutex // likewise for Uᵀ (nil for IC)
}

// side binds one linked store to its merge partner, its locks and its
// coordinate orientation. Every kernel iterates f.sides() so IC and ILU
// share a single implementation.
type side struct {
	store   *lcsr.Store
	partner *lcsr.Store  // chains walked for the column row of an entry
	locks   []sync.Mutex // row locks of store
	upper   bool         // true: entries are (i,k) ↦ U[k,i], A lookups transpose
}

// sides returns the kernel iteration set: {L} for IC, {L, Uᵀ} for ILU.
func (f *Factor) sides() []side {
	if f.opts.Form == IC {
		return []side{{store: f.lower, partner: f.lower, locks: f.lowerLocks}}
	}
	return []side{
		{store: f.lower, partner: f.upper, locks: f.lowerLocks},
		{store: f.upper, partner: f.lower, locks: f.upperLocks, upper: true},
	}
}

// systemAt reads A at an entry's position, transposing for the Uᵀ side.
func (sd *side) systemAt(A *csr.Matrix, r, c int) float64 {
	if sd.upper {
		return A.At(c, r)
	}
	return A.At(r, c)
}

// L exposes the lower-triangular store. Downstream triangular solves
// walk Row[i] → List[…] → 0 and read Col/Val.
func (f *Factor) L() *lcsr.Store { return f.lower }

// Ut exposes the transposed-upper store of the ILU form, or nil for IC.
func (f *Factor) Ut() *lcsr.Store { return f.upper }

// Options returns the normalized options the factor runs with.
func (f *Factor) Options() Options { return f.opts }

// Build constructs a Factor for A with the given slot capacity per
// store. The initial pattern is chosen by opts.Pattern; initial values
// follow the form's diagonal convention (IC: √A[i,i]; ILU: unit L
// diagonal, A[i,i] on the Uᵀ diagonal; off-diagonals start at zero and
// are filled by the first sweep).
//
// Stages:
//  1. Validate: A non-nil, every diagonal present, symmetric within
//     opts.Epsilon when Form == IC, positive diagonal when Form == IC.
//  2. Prepare: allocate stores and row locks.
//  3. Execute: insert the initial pattern row by row.
//
// Returns ErrNilMatrix, ErrUnknownForm, ErrUnknownPattern,
// ErrMissingDiagonal, ErrNotSymmetric, ErrNonPositiveDiagonal or
// ErrCapacity.
func Build(A *csr.Matrix, capacity int, opts Options) (*Factor, error) {
	// Stage 1: validation
	if A == nil {
		return nil, ErrNilMatrix
	}
	if opts.Form != IC && opts.Form != ILU {
		return nil, ErrUnknownForm
	}
	if opts.Pattern != PatternDiagonal && opts.Pattern != PatternLower {
		return nil, ErrUnknownPattern
	}
	opts.normalize()
	for i := 0; i < A.N; i++ {
		d := A.Diag(i)
		if d == 0 {
			return nil, ErrMissingDiagonal
		}
		if opts.Form == IC && d < 0 {
			return nil, ErrNonPositiveDiagonal
		}
	}
	if opts.Form == IC && !A.IsSymmetric(opts.Epsilon) {
		return nil, ErrNotSymmetric
	}

	// Stage 2: stores and locks
	f := &Factor{A: A, opts: opts}
	var err error
	if f.lower, err = lcsr.New(A.N, capacity); err != nil {
		return nil, ErrCapacity
	}
	f.lowerLocks = make([]sync.Mutex, A.N)
	if opts.Form == ILU {
		if f.upper, err = lcsr.New(A.N, capacity); err != nil {
			return nil, ErrCapacity
		}
		f.upperLocks = make([]sync.Mutex, A.N)
	}

	// Stage 3: initial pattern, row-major so slot order follows rows
	for i := 0; i < A.N; i++ {
		if opts.Pattern == PatternLower {
			for p := A.RowPtr[i]; p < A.RowPtr[i+1]; p++ {
				j := A.Col[p]
				if j >= i {
					break
				}
				if _, err = f.lower.Insert(i, j, 0); err != nil {
					return nil, ErrCapacity
				}
			}
		}
		if _, err = f.lower.Insert(i, i, diagInit(opts.Form, A.Diag(i))); err != nil {
			return nil, ErrCapacity
		}
	}
	if opts.Form == ILU {
		for i := 0; i < A.N; i++ {
			if _, err = f.upper.Insert(i, i, A.Diag(i)); err != nil {
				return nil, ErrCapacity
			}
		}
		if opts.Pattern == PatternLower {
			// Uᵀ row i mirrors column i of A's upper triangle: entry
			// A[j,i] with j < i lands at position (i,j) of the store.
			for j := 0; j < A.N; j++ {
				for p := A.RowPtr[j]; p < A.RowPtr[j+1]; p++ {
					if i := A.Col[p]; i > j {
						if _, err = f.upper.Insert(i, j, 0); err != nil {
							return nil, ErrCapacity
						}
					}
				}
			}
		}
	}
	return f, nil
}

// diagInit returns the initial diagonal value for the lower store.
func diagInit(form Form, aii float64) float64 {
	if form == IC {
		return math.Sqrt(aii)
	}
	return 1 // unit-diagonal L; the Uᵀ store carries the pivot
}

// mergeWalk simultaneously walks the chain starting at slot i of ls and
// the chain starting at slot j of rs, accumulating products of entries
// with matching columns. It returns the full accumulated sum, the last
// partial product (zero when the final step was a plain advance) and
// the last slot visited on the right chain.
//
// Callers subtract `last` to drop the final matched term — for an entry
// (r,c) of the pattern that term is val(r,c)·diag(c), which the
// fixed-point update excludes — and use jold to address the right
// chain's diagonal, which by the ordering invariant is its final entry.
func mergeWalk(ls *lcsr.Store, i int, rs *lcsr.Store, j int) (sum, last float64, jold int) {
	if i == lcsr.EndOfRow || j == lcsr.EndOfRow {
		return 0, 0, j
	}
	for {
		last = 0
		jold = j
		icol, jcol := ls.Col[i], rs.Col[j]
		switch {
		case icol == jcol:
			last = ls.Val[i] * rs.Val[j]
			sum += last
			i = ls.List[i]
			j = rs.List[j]
		case icol < jcol:
			i = ls.List[i]
		default:
			j = rs.List[j]
		}
		if i == lcsr.EndOfRow || j == lcsr.EndOfRow {
			return sum, last, jold
		}
	}
}

// ResidualNorm returns the Frobenius norm of A − L·Lᵀ (IC) or A − L·U
// (ILU) restricted to the live pattern. The driver uses it as its
// convergence measure; repeated sweeps on a fixed pattern drive it
// towards zero.
func (f *Factor) ResidualNorm() float64 {
	var res []float64
	for _, sd := range f.sides() {
		st := sd.store
		for r := 0; r < st.N; r++ {
			for e := st.First(r); e != lcsr.EndOfRow; e = st.Next(e) {
				c := st.Col[e]
				if f.opts.Form == ILU && !sd.upper && c == r {
					continue // the unit L diagonal is structural, not a residual
				}
				sum, _, _ := mergeWalk(sd.store, st.First(r), sd.partner, sd.partner.First(c))
				res = append(res, sd.systemAt(f.A, r, c)-sum)
			}
		}
	}
	if len(res) == 0 {
		return 0
	}
	return floats.Norm(res, 2)
}
