package factor_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dynfactor/csr"
	"github.com/katalvlaran/dynfactor/factor"
)

// serialOpts pins Workers=1 so value updates are Gauss–Seidel ordered
// and tests can assert exact numbers.
func serialOpts(form factor.Form, pattern factor.Pattern) factor.Options {
	o := factor.DefaultOptions()
	o.Workers = 1
	o.Form = form
	o.Pattern = pattern
	return o
}

// two2 is the SPD matrix [[4,1],[1,3]].
func two2(t *testing.T) *csr.Matrix {
	t.Helper()
	m, err := csr.New(2, []int{0, 2, 4}, []int{0, 1, 0, 1}, []float64{4, 1, 1, 3})
	require.NoError(t, err)
	return m
}

// validateAll checks the structural invariants of every store.
func validateAll(t *testing.T, f *factor.Factor) {
	t.Helper()
	require.NoError(t, f.L().Validate())
	if ut := f.Ut(); ut != nil {
		require.NoError(t, ut.Validate())
	}
}

//----------------------------------------------------------------------------//
// Build validation
//----------------------------------------------------------------------------//

// TestBuild_Errors verifies every fatal construction error.
func TestBuild_Errors(t *testing.T) {
	sym := two2(t)
	asym, err := csr.New(2, []int{0, 2, 4}, []int{0, 1, 0, 1}, []float64{4, 9, 1, 3})
	require.NoError(t, err)
	noDiag, err := csr.New(2, []int{0, 1, 2}, []int{1, 0}, []float64{1, 1})
	require.NoError(t, err)
	negDiag, err := csr.New(1, []int{0, 1}, []int{0}, []float64{-4})
	require.NoError(t, err)

	cases := []struct {
		name string
		a    *csr.Matrix
		cap  int
		opts factor.Options
		err  error
	}{
		{"NilMatrix", nil, 8, serialOpts(factor.IC, factor.PatternDiagonal), factor.ErrNilMatrix},
		{"UnknownForm", sym, 8, factor.Options{Form: factor.Form(9)}, factor.ErrUnknownForm},
		{"UnknownPattern", sym, 8, factor.Options{Pattern: factor.Pattern(9)}, factor.ErrUnknownPattern},
		{"Asymmetric", asym, 8, serialOpts(factor.IC, factor.PatternDiagonal), factor.ErrNotSymmetric},
		{"MissingDiagonal", noDiag, 8, serialOpts(factor.IC, factor.PatternDiagonal), factor.ErrMissingDiagonal},
		{"NegativeDiagonal", negDiag, 8, serialOpts(factor.IC, factor.PatternDiagonal), factor.ErrNonPositiveDiagonal},
		{"CapacityTooSmall", sym, 1, serialOpts(factor.IC, factor.PatternDiagonal), factor.ErrCapacity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := factor.Build(tc.a, tc.cap, tc.opts)
			if !errors.Is(err, tc.err) {
				t.Errorf("Build() error = %v; want %v", err, tc.err)
			}
		})
	}
}

// TestBuild_InitialState checks patterns and diagonal conventions.
func TestBuild_InitialState(t *testing.T) {
	a := two2(t)

	t.Run("IC_Diagonal", func(t *testing.T) {
		f, err := factor.Build(a, 8, serialOpts(factor.IC, factor.PatternDiagonal))
		require.NoError(t, err)
		validateAll(t, f)
		require.Equal(t, 2, f.L().NNZ())
		v, ok := f.L().At(0, 0)
		require.True(t, ok)
		require.Equal(t, 2.0, v)
		v, _ = f.L().At(1, 1)
		require.InDelta(t, math.Sqrt(3), v, 1e-15)
	})

	t.Run("IC_Lower", func(t *testing.T) {
		f, err := factor.Build(a, 8, serialOpts(factor.IC, factor.PatternLower))
		require.NoError(t, err)
		validateAll(t, f)
		require.Equal(t, 3, f.L().NNZ())
		v, ok := f.L().At(1, 0)
		require.True(t, ok)
		require.Equal(t, 0.0, v, "off-diagonals start at zero")
	})

	t.Run("ILU_Lower", func(t *testing.T) {
		asym, err := csr.New(2, []int{0, 2, 4}, []int{0, 1, 0, 1}, []float64{2, 1, 4, 3})
		require.NoError(t, err)
		f, err := factor.Build(asym, 8, serialOpts(factor.ILU, factor.PatternLower))
		require.NoError(t, err)
		validateAll(t, f)
		v, _ := f.L().At(0, 0)
		require.Equal(t, 1.0, v, "unit L diagonal")
		v, _ = f.Ut().At(1, 1)
		require.Equal(t, 3.0, v, "Uᵀ diagonal carries A[i,i]")
		require.True(t, f.Ut().Has(1, 0), "Uᵀ mirrors A's upper entry")
	})
}

//----------------------------------------------------------------------------//
// Scenario tests
//----------------------------------------------------------------------------//

// TestIdentity: A = I₄ with diagonal pattern discovers nothing and is
// already exact.
func TestIdentity(t *testing.T) {
	a, err := csr.NewIdentity(4)
	require.NoError(t, err)
	f, err := factor.Build(a, 8, serialOpts(factor.IC, factor.PatternDiagonal))
	require.NoError(t, err)

	cs := f.DiscoverCandidates()
	require.Equal(t, 0, cs.Total(), "identity has no fill-in candidates")

	require.NoError(t, f.Sweep())
	for i := 0; i < 4; i++ {
		v, ok := f.L().At(i, i)
		require.True(t, ok)
		require.Equal(t, 1.0, v)
	}
	require.Equal(t, 0.0, f.ResidualNorm())
}

// TestTwoByTwo: one sweep on [[4,1],[1,3]] lands the textbook values.
func TestTwoByTwo(t *testing.T) {
	f, err := factor.Build(two2(t), 8, serialOpts(factor.IC, factor.PatternLower))
	require.NoError(t, err)

	require.NoError(t, f.Sweep())

	v, _ := f.L().At(0, 0)
	require.InDelta(t, 2.0, v, 1e-15)
	v, _ = f.L().At(1, 0)
	require.InDelta(t, 0.5, v, 1e-15)
	v, _ = f.L().At(1, 1)
	require.InDelta(t, math.Sqrt(2.75), v, 1e-15)
	require.InDelta(t, 0, f.ResidualNorm(), 1e-14, "full pattern: one ordered sweep is exact")
}

// TestILU_Exact: the ILU form reproduces the exact LU of a dense 2×2
// within a few sweeps.
func TestILU_Exact(t *testing.T) {
	a, err := csr.New(2, []int{0, 2, 4}, []int{0, 1, 0, 1}, []float64{2, 1, 4, 3})
	require.NoError(t, err)
	f, err := factor.Build(a, 8, serialOpts(factor.ILU, factor.PatternLower))
	require.NoError(t, err)

	for s := 0; s < 3; s++ {
		require.NoError(t, f.Sweep())
	}
	validateAll(t, f)

	// Exact factors: L = [[1,0],[2,1]], U = [[2,1],[0,1]].
	v, _ := f.L().At(1, 0)
	require.InDelta(t, 2.0, v, 1e-14)
	v, _ = f.Ut().At(0, 0)
	require.InDelta(t, 2.0, v, 1e-14)
	v, _ = f.Ut().At(1, 0) // U[0,1]
	require.InDelta(t, 1.0, v, 1e-14)
	v, _ = f.Ut().At(1, 1)
	require.InDelta(t, 1.0, v, 1e-14)
	require.InDelta(t, 0, f.ResidualNorm(), 1e-13)
}

//----------------------------------------------------------------------------//
// Triangular solves
//----------------------------------------------------------------------------//

// TestSolve_IC applies the converged factor as a preconditioner and
// recovers x from (L·Lᵀ)x = b on a matrix the factor represents exactly.
func TestSolve_IC(t *testing.T) {
	a, err := csr.NewTridiagonal(5, 4, -1)
	require.NoError(t, err)
	f, err := factor.Build(a, 16, serialOpts(factor.IC, factor.PatternLower))
	require.NoError(t, err)
	for s := 0; s < 5; s++ {
		require.NoError(t, f.Sweep())
	}

	// The tridiagonal Cholesky pattern is complete, so L·Lᵀ = A and
	// Apply must invert A itself: check A·(Apply(b)) = b.
	b := []float64{1, 2, 3, 4, 5}
	x, err := f.Apply(b)
	require.NoError(t, err)
	back, err := a.MulVec(x)
	require.NoError(t, err)
	require.InDeltaSlice(t, b, back, 1e-10)

	_, err = f.SolveLower([]float64{1})
	require.ErrorIs(t, err, factor.ErrDimension)
}

// TestSolve_ILU does the same through the L·U path.
func TestSolve_ILU(t *testing.T) {
	a, err := csr.New(2, []int{0, 2, 4}, []int{0, 1, 0, 1}, []float64{2, 1, 4, 3})
	require.NoError(t, err)
	f, err := factor.Build(a, 8, serialOpts(factor.ILU, factor.PatternLower))
	require.NoError(t, err)
	for s := 0; s < 3; s++ {
		require.NoError(t, f.Sweep())
	}

	b := []float64{3, 7}
	x, err := f.Apply(b)
	require.NoError(t, err)
	back, err := a.MulVec(x)
	require.NoError(t, err)
	require.InDeltaSlice(t, b, back, 1e-12)
}
