// Package lcsr implements the linked-CSR store: a fixed-capacity slot
// arena holding a sparse matrix whose rows are singly-linked chains,
// allowing O(1) removal and O(row) sorted insertion without moving data.
//
// What:
//
//   - Store owns parallel slot arrays Col, RowIdx, Val and the chain
//     array List, plus the per-row head array Row and a free-slot pool.
//   - List[s] is the next slot of s's row; 0 terminates a chain (slot 0
//     is a reserved sentinel and never carries data); -1 marks s freed.
//   - Insert splices a new entry at its column-sorted position; Release
//     returns a slot to the free pool; Walk iterates a row in ascending
//     column order.
//   - Validate checks the structural invariants and is wired into the
//     engine's randomized tests after every kernel.
//
// Why:
//
//   - The dynamic factorization swaps pattern entries every round; a
//     contiguous CSR would pay O(nnz) per mutation. Chains make the swap
//     O(row) and keep slot identity stable while an entry lives, which
//     the parallel kernels rely on.
//   - Slots are indices, never references: the structure serializes
//     trivially and debugging stays deterministic.
//
// Invariants (checked by Validate):
//
//   - chains terminate at 0 within nnz hops (no cycles)
//   - columns strictly increase along every chain
//   - RowIdx[s] matches the chain containing s; live slots have List ≥ 0
//   - the diagonal of each row is present and last in chain order
//   - live slots + freed slots account for every slot but the sentinel
//
// Errors:
//
//   - ErrBadShape, ErrNoSlot, ErrDuplicate, ErrOutOfRange and the
//     Validate-only ErrInvariant (wrapped by InvariantError with
//     positional context).
package lcsr
