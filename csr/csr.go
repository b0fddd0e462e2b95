package csr

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a square sparse matrix in classic CSR form.
// RowPtr has length N+1; Col and Val have length RowPtr[N].
// Within each row, Col is strictly increasing. The matrix is immutable
// once constructed; the factorization engine only reads it.
type Matrix struct {
	N      int       // number of rows and columns
	RowPtr []int     // row i occupies Col/Val[RowPtr[i]:RowPtr[i+1]]
	Col    []int     // column index per stored entry
	Val    []float64 // value per stored entry
}

// New validates the given CSR triplet and wraps it in a Matrix.
// The slices are retained, not copied; callers must not mutate them after.
//
// Validation stages:
//  1. shape: n > 0, len(RowPtr) == n+1, RowPtr monotone from 0 to len(Col).
//  2. per-row: columns strictly increasing and inside [0, n).
//  3. values: finite (no NaN, no ±Inf).
//
// Returns ErrBadShape, ErrUnsorted, ErrOutOfRange or ErrNaNInf.
func New(n int, rowPtr, col []int, val []float64) (*Matrix, error) {
	// Stage 1: shape
	if n <= 0 || len(rowPtr) != n+1 || rowPtr[0] != 0 {
		return nil, ErrBadShape
	}
	if len(col) != rowPtr[n] || len(val) != rowPtr[n] {
		return nil, ErrBadShape
	}

	// Stage 2+3: per-row ordering, bounds and value sanity
	for i := 0; i < n; i++ {
		if rowPtr[i] > rowPtr[i+1] {
			return nil, ErrBadShape
		}
		prev := -1
		for p := rowPtr[i]; p < rowPtr[i+1]; p++ {
			c := col[p]
			if c < 0 || c >= n {
				return nil, ErrOutOfRange
			}
			if c <= prev {
				return nil, ErrUnsorted
			}
			prev = c
			if math.IsNaN(val[p]) || math.IsInf(val[p], 0) {
				return nil, ErrNaNInf
			}
		}
	}

	return &Matrix{N: n, RowPtr: rowPtr, Col: col, Val: val}, nil
}

// NNZ returns the number of stored entries.
func (m *Matrix) NNZ() int { return m.RowPtr[m.N] }

// At returns the stored value at (i, j), or 0 if the position is absent.
// The lookup is a linear scan of row i; rows are expected to be short.
func (m *Matrix) At(i, j int) float64 {
	for p := m.RowPtr[i]; p < m.RowPtr[i+1]; p++ {
		if m.Col[p] == j {
			return m.Val[p]
		}
		if m.Col[p] > j {
			break // columns are sorted; j cannot appear further right
		}
	}
	return 0
}

// Diag returns the diagonal value of row i, or 0 if absent.
func (m *Matrix) Diag(i int) float64 { return m.At(i, i) }

// MulVec computes y = A·x. Returns ErrDimensionMismatch if len(x) != N.
func (m *Matrix) MulVec(x []float64) ([]float64, error) {
	if len(x) != m.N {
		return nil, ErrDimensionMismatch
	}
	y := make([]float64, m.N)
	for i := 0; i < m.N; i++ {
		acc := 0.0
		for p := m.RowPtr[i]; p < m.RowPtr[i+1]; p++ {
			acc += m.Val[p] * x[m.Col[p]]
		}
		y[i] = acc
	}
	return y, nil
}

// IsSymmetric reports whether the matrix equals its transpose within eps.
// Structural zeros compare equal to stored zeros.
func (m *Matrix) IsSymmetric(eps float64) bool {
	for i := 0; i < m.N; i++ {
		for p := m.RowPtr[i]; p < m.RowPtr[i+1]; p++ {
			j := m.Col[p]
			if j == i {
				continue
			}
			if math.Abs(m.Val[p]-m.At(j, i)) > eps {
				return false
			}
		}
	}
	return true
}

// ToDense expands the matrix into a gonum dense matrix.
// Intended for small cross-checks and examples, not for production sizes.
func (m *Matrix) ToDense() *mat.Dense {
	d := mat.NewDense(m.N, m.N, nil)
	for i := 0; i < m.N; i++ {
		for p := m.RowPtr[i]; p < m.RowPtr[i+1]; p++ {
			d.Set(i, m.Col[p], m.Val[p])
		}
	}
	return d
}
