package lcsr

import "fmt"

// Validate checks the structural invariants of the store and returns an
// *InvariantError (wrapping ErrInvariant) describing the first failure:
//
//   - every chain terminates at the sentinel within Cap hops
//   - columns strictly increase along every chain
//   - every live slot's RowIdx matches its chain and List[s] ≠ Freed
//   - every row chain ends at its diagonal
//   - live + freed slots account for every slot but the sentinel, and
//     every pooled slot is marked Freed
//
// Validate walks the whole arena; it is meant for tests and debugging,
// not for per-round production use.
func (s *Store) Validate() error {
	seen := make([]bool, len(s.List))
	live := 0

	for r := 0; r < s.N; r++ {
		prevCol := -1
		hops := 0
		last := EndOfRow
		for slot := s.Row[r]; slot != EndOfRow; slot = s.List[slot] {
			if slot < 0 || slot >= len(s.List) {
				return &InvariantError{Row: r, Slot: slot, Msg: "chain leaves the arena"}
			}
			if hops++; hops > s.Cap() {
				return &InvariantError{Row: r, Slot: slot, Msg: "chain exceeds capacity hops (cycle?)"}
			}
			if s.List[slot] == Freed {
				return &InvariantError{Row: r, Slot: slot, Msg: "freed slot reachable from chain"}
			}
			if seen[slot] {
				return &InvariantError{Row: r, Slot: slot, Msg: "slot linked twice"}
			}
			seen[slot] = true
			if s.RowIdx[slot] != r {
				return &InvariantError{Row: r, Slot: slot,
					Msg: fmt.Sprintf("RowIdx %d does not match chain row", s.RowIdx[slot])}
			}
			if s.Col[slot] <= prevCol {
				return &InvariantError{Row: r, Slot: slot,
					Msg: fmt.Sprintf("column %d not above predecessor %d", s.Col[slot], prevCol)}
			}
			prevCol = s.Col[slot]
			last = slot
			live++
		}
		if last == EndOfRow {
			return &InvariantError{Row: r, Slot: -1, Msg: "row empty: diagonal missing"}
		}
		if s.Col[last] != r {
			return &InvariantError{Row: r, Slot: last,
				Msg: fmt.Sprintf("chain ends at column %d, not the diagonal", s.Col[last])}
		}
	}

	if live != s.live {
		return &InvariantError{Row: -1, Slot: -1,
			Msg: fmt.Sprintf("live count %d disagrees with reachable entries %d", s.live, live)}
	}

	// Slot accounting: everything but the sentinel is live or freed.
	freed := 0
	for slot := 1; slot < len(s.List); slot++ {
		if s.List[slot] == Freed {
			freed++
			if seen[slot] {
				return &InvariantError{Row: -1, Slot: slot, Msg: "freed slot also reachable"}
			}
		} else if !seen[slot] {
			return &InvariantError{Row: -1, Slot: slot, Msg: "slot neither freed nor reachable"}
		}
	}
	if live+freed != s.Cap() {
		return &InvariantError{Row: -1, Slot: -1,
			Msg: fmt.Sprintf("live %d + freed %d != capacity %d", live, freed, s.Cap())}
	}
	for _, slot := range s.pool {
		if s.List[slot] != Freed {
			return &InvariantError{Row: -1, Slot: slot, Msg: "pooled slot not marked freed"}
		}
	}
	return nil
}
