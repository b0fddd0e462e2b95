// Package factor implements the dynamic incomplete factorization
// engine: four interlocking data-parallel kernels and an insertion
// protocol that together adapt both the values and the nonzero pattern
// of an incomplete Cholesky (IC) or incomplete LU (ILU) factor.
//
// What:
//
//   - Build constructs a Factor over an immutable csr.Matrix with a
//     fixed slot budget and an initial pattern (diagonal or A's lower
//     triangle).
//   - DiscoverCandidates enumerates symbolic fill-in positions outside
//     the current pattern (two-pass, row-parallel, exclusive scan).
//   - EvaluateResiduals merge-walks row chains to score each candidate
//     with its signed residual A − L·Lᵀ (resp. A − L·U); insertion ranks
//     candidates by its magnitude.
//   - SetThreshold / RemoveBelow drop the smallest current entries
//     (diagonal protected) and collect the freed slots.
//   - InsertCandidates grafts the largest-residual candidates into the
//     freed slots under per-row locks, strictly position-sorted.
//   - Sweep runs one asynchronous Chow–Patel fixed-point pass over all
//     live values.
//   - Round/Run chain the kernels into the outer loop:
//     discover → evaluate → threshold → remove → insert → sweep×N.
//   - SolveLower/SolveUpper/Apply use the finished factor as a
//     preconditioner.
//
// Why:
//
//   - A factor whose pattern adapts to where the residual actually
//     lives reaches a better approximation than level- or
//     threshold-static patterns of the same size, while the linked-CSR
//     store (package lcsr) keeps every pattern swap O(row).
//
// Concurrency:
//
//   - Kernels are data-parallel with a barrier between kernels; the
//     matrix is mutated by at most one kernel at a time.
//   - Threshold removal owns disjoint row ranges per worker; insertion
//     holds one row lock around each chain splice; at most one row lock
//     is ever held per goroutine.
//   - The sweep writes each slot from exactly one task and reads
//     neighbors without synchronization; value freshness affects only
//     the convergence rate, never the fixed point. Run with Workers=1
//     for bit-reproducible sweeps.
//
// Errors:
//
//   - Fatal: ErrNilMatrix, ErrNotSymmetric, ErrMissingDiagonal,
//     ErrUnknownForm, ErrUnknownPattern, ErrCapacity, ErrNegativeCount,
//     ErrDimension.
//   - Soft (round degrades, state stays valid): ErrInsufficientCandidates,
//     ErrCapacityExhausted, ErrNonPositiveDiagonal.
package factor
