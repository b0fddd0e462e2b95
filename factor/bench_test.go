package factor_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/dynfactor/csr"
	"github.com/katalvlaran/dynfactor/factor"
)

// benchFactor builds a settled factor over a random SPD system.
func benchFactor(b *testing.B, n, workers int) (*csr.Matrix, *factor.Factor) {
	b.Helper()
	a, err := csr.NewRandomSPD(n, 4, 1, 13)
	if err != nil {
		b.Fatal(err)
	}
	opts := factor.DefaultOptions()
	opts.Workers = workers
	opts.Pattern = factor.PatternLower
	if factor.RaceEnabled {
		opts.Workers = 1
	}
	f, err := factor.Build(a, a.NNZ(), opts)
	if err != nil {
		b.Fatal(err)
	}
	for s := 0; s < 3; s++ {
		_ = f.Sweep()
	}
	return a, f
}

// BenchmarkKernels times the individual kernels on n=2000 at several
// worker widths.
func BenchmarkKernels(b *testing.B) {
	const n = 2000
	for _, workers := range []int{1, 4, 8} {
		_, f := benchFactor(b, n, workers)

		b.Run(fmt.Sprintf("Discover/w%d", workers), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = f.DiscoverCandidates()
			}
		})
		b.Run(fmt.Sprintf("Residuals/w%d", workers), func(b *testing.B) {
			cs := f.DiscoverCandidates()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				f.EvaluateResiduals(cs)
			}
		})
		b.Run(fmt.Sprintf("Sweep/w%d", workers), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = f.Sweep()
			}
		})
	}
}

// BenchmarkRound times a whole outer round (swap 16, two sweeps).
func BenchmarkRound(b *testing.B) {
	for _, n := range []int{500, 2000} {
		_, f := benchFactor(b, n, 8)
		b.Run(fmt.Sprintf("n%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := f.Round(16, 2); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
