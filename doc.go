// Package dynfactor is an in-memory engine for dynamic incomplete
// Cholesky (IC) and incomplete LU (ILU) factorizations of large sparse
// matrices — factorizations whose nonzero pattern *adapts* while the
// values converge.
//
// 🚀 What is dynfactor?
//
//	Given a sparse SPD matrix A, the engine iteratively produces an
//	incomplete factor L with L·Lᵀ ≈ A (or L·U ≈ A for the ILU form),
//	keeping the number of nonzeros bounded while repeatedly:
//		• discovering fill-in candidates outside the current pattern
//		• evaluating their residual magnitudes
//		• admitting the largest candidates and dropping the smallest entries
//		• running asynchronous fixed-point value sweeps (Chow–Patel style)
//
// ✨ Why choose dynfactor?
//
//   - Bounded memory – the factor never exceeds a caller-chosen slot budget
//   - Higher quality – an adaptive pattern beats a static one of equal size
//   - Parallel kernels – data-parallel discovery, removal and sweeps with
//     per-row locking only where chains actually mutate
//   - Pure Go core – slot-indexed linked structure, no pointers, trivially
//     serializable and deterministic to debug
//
// Under the hood, everything is organized under four subpackages:
//
//	csr/       — immutable classic CSR input matrices + small generators
//	lcsr/      — the linked-CSR slot arena with per-row chains & free pool
//	orderstat/ — k-th order-statistics selection over parallel arrays
//	factor/    — the four interlocking kernels, insertion protocol & driver
//
// Quick ASCII sketch of one outer round:
//
//	discover → evaluate → (threshold ∥ rank) → remove → insert → sweep×N
//
// Dive into each package's doc.go for invariants, complexity notes and
// runnable examples.
//
//	go get github.com/katalvlaran/dynfactor
package dynfactor
