package factor

import (
	"errors"

	"github.com/katalvlaran/dynfactor/lcsr"
	"github.com/katalvlaran/dynfactor/orderstat"
)

// InsertCandidates grafts the numRM largest-residual candidates of each
// store into the freed slots produced by RemoveBelow, and returns the
// number of entries inserted across stores.
//
// Per store the protocol is:
//
//	Step 1 (rank): Select permutes the candidate COO arrays so the
//	largest-magnitude residuals occupy the front. If the store has fewer
//	candidates than requested swaps, its swap is skipped — a soft
//	failure reported as ErrInsufficientCandidates after all stores ran.
//
//	Step 2 (graft): a candidate cursor i and a slot cursor advance
//	independently; each admitted candidate takes the next freed slot and
//	splices at its column-sorted position under the row lock. A
//	candidate already present (emitted twice by discovery, or raced into
//	the pattern) is skipped without consuming a slot. The loop stops
//	when the slots are paired off or the candidate list is exhausted.
//
// Freed slots left unused return to the store's free pool, so slot
// accounting stays exact. Inserted entries carry value zero; the next
// sweep assigns them their fixed-point value.
func (f *Factor) InsertCandidates(cs *CandidateSet, freed *FreedSlots, numRM int) (int, error) {
	if numRM < 0 {
		return 0, ErrNegativeCount
	}
	sides := f.sides()
	if cs == nil || freed == nil || len(cs.Sides) != len(sides) || len(freed.Sides) != len(sides) {
		return 0, ErrDimension
	}

	total := 0
	var soft error
	for si, sd := range sides {
		cands := &cs.Sides[si]
		slots := freed.Sides[si]

		// Removal below a strict threshold frees fewer slots than the
		// requested swap count; top up from the store's free pool.
		// Falling short just shrinks the admitted set; only a store
		// with no slots at all degrades to the soft capacity failure.
		for len(slots) < numRM {
			slot, err := sd.store.Alloc()
			if err != nil {
				break
			}
			slots = append(slots, slot)
		}
		if numRM > 0 && len(slots) == 0 {
			soft = errors.Join(soft, ErrCapacityExhausted)
		}

		target := numRM
		if target > len(slots) {
			target = len(slots)
		}
		if numRM > cands.NNZ() {
			// Insufficient candidates: skip this store's swap entirely.
			soft = errors.Join(soft, ErrInsufficientCandidates)
			target = 0
		}

		inserted := graft(sd, cands, slots, target)
		sd.store.AdjustLive(inserted)
		for _, slot := range slots[inserted:] {
			sd.store.Release(slot)
		}
		total += inserted
	}
	return total, soft
}

// graft runs the ranking and the locked splice loop for one store.
func graft(sd side, cands *Candidates, slots []int, target int) int {
	if target == 0 {
		return 0
	}

	// Step 1: bring the target largest residuals to the front,
	// permuting all three COO arrays in lock step.
	_, err := orderstat.Select(cands.Val, target, orderstat.Largest, func(i, j int) {
		cands.RowIdx[i], cands.RowIdx[j] = cands.RowIdx[j], cands.RowIdx[i]
		cands.Col[i], cands.Col[j] = cands.Col[j], cands.Col[i]
	})
	if err != nil {
		return 0 // target ≤ NNZ is guaranteed by the caller
	}

	// Step 2: graft loop. i advances over candidates, inserted over slots.
	st := sd.store
	inserted := 0
	for i := 0; inserted < target && i < cands.NNZ(); i++ {
		loc := slots[inserted]
		newRow, newCol := cands.RowIdx[i], cands.Col[i]

		sd.locks[newRow].Lock()
		head := st.Row[newRow]
		switch {
		case head == lcsr.EndOfRow || newCol < st.Col[head]:
			// Empty row or new head: prepend.
			st.List[loc] = head
			st.Row[newRow] = loc
			writeEntry(st, loc, newRow, newCol)
			inserted++
		case st.Col[head] == newCol:
			// Duplicate at the head; do not consume the slot.
		default:
			prev, curr := head, st.List[head]
			for {
				if st.Col[prev] == newCol || (curr != lcsr.EndOfRow && st.Col[curr] == newCol) {
					break // duplicate somewhere in the chain
				}
				if curr == lcsr.EndOfRow || st.Col[curr] > newCol {
					// Splice between prev and curr.
					st.List[loc] = curr
					st.List[prev] = loc
					writeEntry(st, loc, newRow, newCol)
					inserted++
					break
				}
				prev, curr = curr, st.List[curr]
			}
		}
		sd.locks[newRow].Unlock()
	}
	return inserted
}

// writeEntry fills the slot fields of a freshly linked entry.
func writeEntry(st *lcsr.Store, slot, row, col int) {
	st.RowIdx[slot] = row
	st.Col[slot] = col
	st.Val[slot] = 0
}
