package lcsr

import (
	"errors"
	"fmt"
)

// Sentinel errors for store construction and mutation.
var (
	// ErrBadShape indicates n ≤ 0 or a capacity too small for n diagonals.
	ErrBadShape = errors.New("lcsr: invalid shape or capacity")
	// ErrNoSlot indicates the free pool is exhausted.
	ErrNoSlot = errors.New("lcsr: no free slot")
	// ErrDuplicate indicates an insertion at an already-occupied position.
	ErrDuplicate = errors.New("lcsr: position already occupied")
	// ErrOutOfRange indicates a row or column index outside [0, n).
	ErrOutOfRange = errors.New("lcsr: index out of range")
	// ErrInvariant indicates Validate detected structural corruption.
	ErrInvariant = errors.New("lcsr: invariant violation")
)

// InvariantError carries the position at which Validate detected
// corruption. It wraps ErrInvariant, so errors.Is(err, ErrInvariant)
// matches.
type InvariantError struct {
	Row  int    // offending row, or -1 when not row-local
	Slot int    // offending slot, or -1 when not slot-local
	Msg  string // human-readable description
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("lcsr: invariant violation at row %d slot %d: %s", e.Row, e.Slot, e.Msg)
}

// Unwrap lets errors.Is match ErrInvariant.
func (e *InvariantError) Unwrap() error { return ErrInvariant }
