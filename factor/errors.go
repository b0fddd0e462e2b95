package factor

import "errors"

// Sentinel errors for the factorization engine.
//
// Soft conditions (ErrInsufficientCandidates, ErrCapacityExhausted,
// ErrNonPositiveDiagonal) leave the factor in a valid state; the outer
// driver tolerates them and may retry. Everything else is fatal for the
// call that returned it.
var (
	// ErrNilMatrix indicates a nil system matrix.
	ErrNilMatrix = errors.New("factor: nil system matrix")
	// ErrNotSymmetric indicates the IC form was requested for a matrix
	// that is not symmetric within Options.Epsilon.
	ErrNotSymmetric = errors.New("factor: matrix not symmetric within epsilon")
	// ErrMissingDiagonal indicates a structurally zero diagonal entry in A.
	ErrMissingDiagonal = errors.New("factor: structural zero on the diagonal")
	// ErrUnknownForm indicates an Options.Form outside {IC, ILU}.
	ErrUnknownForm = errors.New("factor: unknown factorization form")
	// ErrUnknownPattern indicates an Options.Pattern outside the defined set.
	ErrUnknownPattern = errors.New("factor: unknown initial pattern")
	// ErrCapacity indicates a slot capacity too small for the initial pattern.
	ErrCapacity = errors.New("factor: capacity below initial pattern")
	// ErrNegativeCount indicates a negative swap or sweep count.
	ErrNegativeCount = errors.New("factor: negative count")
	// ErrDimension indicates a vector operand of the wrong length.
	ErrDimension = errors.New("factor: dimension mismatch")

	// ErrInsufficientCandidates is the soft failure of a round whose
	// requested swap count exceeds the discovered candidate set.
	ErrInsufficientCandidates = errors.New("factor: fewer candidates than requested swaps")
	// ErrCapacityExhausted is the soft failure of an insertion that ran
	// out of freed slots; excess candidates are dropped.
	ErrCapacityExhausted = errors.New("factor: free slots exhausted during insertion")
	// ErrNonPositiveDiagonal is the soft numeric failure of an IC sweep
	// hitting sqrt of a non-positive pivot (or a zero divisor). The
	// affected entries keep their previous values.
	ErrNonPositiveDiagonal = errors.New("factor: non-positive diagonal in sweep")
)
