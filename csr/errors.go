package csr

import "errors"

// Sentinel errors for CSR construction and queries.
var (
	// ErrBadShape indicates n ≤ 0 or slice lengths inconsistent with RowPtr.
	ErrBadShape = errors.New("csr: invalid shape")
	// ErrUnsorted indicates a row whose column indices are not strictly increasing.
	ErrUnsorted = errors.New("csr: row columns not strictly increasing")
	// ErrOutOfRange indicates a column index outside [0, n).
	ErrOutOfRange = errors.New("csr: column index out of range")
	// ErrNaNInf indicates a NaN or ±Inf entry value.
	ErrNaNInf = errors.New("csr: NaN or Inf encountered")
	// ErrDimensionMismatch indicates an operand of incompatible length.
	ErrDimensionMismatch = errors.New("csr: dimension mismatch")
)
