package csr

import (
	"math/rand"
	"sort"
)

// NewTridiagonal builds the n×n tridiagonal matrix with the given diagonal
// and off-diagonal values. With diag=4, off=-1 the result is the classic
// well-conditioned SPD test matrix.
func NewTridiagonal(n int, diag, off float64) (*Matrix, error) {
	rowPtr := make([]int, n+1)
	var col []int
	var val []float64
	for i := 0; i < n; i++ {
		if i > 0 {
			col = append(col, i-1)
			val = append(val, off)
		}
		col = append(col, i)
		val = append(val, diag)
		if i < n-1 {
			col = append(col, i+1)
			val = append(val, off)
		}
		rowPtr[i+1] = len(col)
	}
	return New(n, rowPtr, col, val)
}

// NewIdentity builds the n×n identity matrix.
func NewIdentity(n int) (*Matrix, error) {
	rowPtr := make([]int, n+1)
	col := make([]int, n)
	val := make([]float64, n)
	for i := 0; i < n; i++ {
		rowPtr[i+1] = i + 1
		col[i] = i
		val[i] = 1
	}
	return New(n, rowPtr, col, val)
}

// NewRandomSPD builds a random sparse symmetric positive-definite matrix
// with roughly extraPerRow off-diagonal pairs per row.
// Off-diagonal values are uniform in (-1, 0]; the diagonal is set to the
// row's absolute off-diagonal sum plus shift, which makes the matrix
// strictly diagonally dominant and hence SPD. The rng seed fixes the
// pattern, so tests and benchmarks are reproducible.
func NewRandomSPD(n, extraPerRow int, shift float64, seed int64) (*Matrix, error) {
	r := rand.New(rand.NewSource(seed))

	// Collect the strict lower pattern first, mirrored on emission.
	lower := make([]map[int]float64, n)
	for i := range lower {
		lower[i] = make(map[int]float64, extraPerRow)
	}
	for i := 1; i < n; i++ {
		for k := 0; k < extraPerRow; k++ {
			j := r.Intn(i)
			if _, ok := lower[i][j]; ok {
				continue // duplicate draw, keep the first
			}
			lower[i][j] = -r.Float64()
		}
	}

	rowPtr := make([]int, n+1)
	var col []int
	var val []float64
	for i := 0; i < n; i++ {
		cols := make([]int, 0, 2*extraPerRow+1)
		for j := range lower[i] {
			cols = append(cols, j)
		}
		// mirror: entries (j, i) for j > i live in lower[j][i]
		for j := i + 1; j < n; j++ {
			if _, ok := lower[j][i]; ok {
				cols = append(cols, j)
			}
		}
		cols = append(cols, i)
		sort.Ints(cols)

		rowSum := 0.0
		diagAt := -1
		for _, j := range cols {
			var v float64
			switch {
			case j == i:
				diagAt = len(val) // patched below once the row sum is known
				v = 0
			case j < i:
				v = lower[i][j]
			default:
				v = lower[j][i]
			}
			if j != i {
				rowSum += -v // off-diagonals are negative
			}
			col = append(col, j)
			val = append(val, v)
		}
		val[diagAt] = rowSum + shift
		rowPtr[i+1] = len(col)
	}
	return New(n, rowPtr, col, val)
}
