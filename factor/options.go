package factor

import (
	"os"
	"runtime"
	"strconv"
)

// Form selects the factorization kind.
type Form int

const (
	// IC produces an incomplete Cholesky factor: A ≈ L·Lᵀ, lower triangle
	// stored, upper mirrored on the fly during merge walks.
	IC Form = iota
	// ILU produces an incomplete LU factor: A ≈ L·U, unit-diagonal L and
	// a second store holding Uᵀ row-wise.
	ILU
)

// Pattern selects the initial nonzero pattern of the factor.
type Pattern int

const (
	// PatternDiagonal starts from the diagonal only.
	PatternDiagonal Pattern = iota
	// PatternLower starts from A's lower-triangular pattern.
	PatternLower
)

// Defaults for Options; see DefaultOptions.
const (
	// DefaultEpsilon is the symmetry tolerance applied when Form == IC.
	DefaultEpsilon = 1e-10

	// WorkersEnv names the environment variable overriding the worker
	// count when Options.Workers is zero.
	WorkersEnv = "DYNFACTOR_WORKERS"
)

// Options configures a Factor.
//   - Workers: parallel width of the kernels. 0 consults WorkersEnv,
//     then falls back to runtime.NumCPU().
//   - Form: IC (default) or ILU.
//   - Pattern: initial pattern, PatternDiagonal (default) or PatternLower.
//   - Epsilon: symmetry tolerance for the IC input check (default 1e-10).
//   - Verbose: if true, the driver prints one line per round.
type Options struct {
	Workers int
	Form    Form
	Pattern Pattern
	Epsilon float64
	Verbose bool
}

// DefaultOptions returns Options with default settings:
// auto worker count, IC form, diagonal pattern, Epsilon=1e-10.
func DefaultOptions() Options {
	return Options{Epsilon: DefaultEpsilon}
}

// normalize fills zero values with their documented defaults.
func (o *Options) normalize() {
	if o.Workers <= 0 {
		o.Workers = workersFromEnv()
	}
	if o.Epsilon <= 0 {
		o.Epsilon = DefaultEpsilon
	}
}

// workersFromEnv resolves the worker count from WorkersEnv, falling back
// to the hardware parallelism.
func workersFromEnv() int {
	if v := os.Getenv(WorkersEnv); v != "" {
		if w, err := strconv.Atoi(v); err == nil && w > 0 {
			return w
		}
	}
	return runtime.NumCPU()
}
