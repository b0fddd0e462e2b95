// Package csr provides the immutable compressed-sparse-row input format
// consumed by the dynamic factorization engine.
//
// What:
//
//   - Matrix is a classic CSR triplet (RowPtr, Col, Val) with strictly
//     increasing columns inside every row.
//   - Construction validates shape, ordering and value sanity once; the
//     matrix is treated as read-only afterwards.
//   - At performs the linear row scan the factorization kernels rely on
//     (rows are short; no binary search is attempted).
//   - Generators build tridiagonal and random well-conditioned SPD
//     matrices for tests and benchmarks.
//
// Why:
//
//   - The factorization mutates its own linked-CSR store (package lcsr);
//     the system matrix A stays frozen for the whole run, so a plain
//     contiguous layout is the fastest thing to merge-walk against.
//
// Complexity:
//
//   - New:         O(nnz) validation, Memory O(1) beyond the input slices.
//   - At:          O(row cardinality).
//   - MulVec:      O(nnz).
//   - IsSymmetric: O(nnz · row cardinality); each entry's mirror is
//     found with At, no transpose index is built.
//
// Errors:
//
//   - ErrBadShape: n ≤ 0 or slice lengths inconsistent with RowPtr.
//   - ErrUnsorted: a row's columns are not strictly increasing.
//   - ErrOutOfRange: a column index falls outside [0, n).
//   - ErrNaNInf: a NaN or ±Inf value was supplied.
package csr
