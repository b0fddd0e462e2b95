// Package orderstat selects the k-th smallest or largest magnitude of a
// value slice while partially permuting the slice so the k extremal
// entries occupy its front.
//
// What:
//
//   - Select(vals, k, mode, swap) returns the k-th extremal |value| and
//     rearranges vals so vals[:k] holds the k extremal entries (in no
//     particular order).
//   - The optional swap hook mirrors every exchange onto parallel arrays,
//     so COO triplets (rowidx, col, val) stay aligned through the
//     permutation.
//
// Why:
//
//   - The factorization engine ranks removal thresholds (k-th smallest
//     live magnitude) and admission sets (k-th largest candidate
//     residual); both need a partial selection, not a full sort.
//
// Complexity:
//
//   - Expected O(N) via median-of-three quickselect.
//   - Worst case O(N log N): after 2·(⌊log₂ N⌋+2) partition rounds,
//     balanced or not, the routine falls back to an in-place heap selection.
//
// Errors:
//
//   - ErrRank: k outside [1, len(vals)].
package orderstat
