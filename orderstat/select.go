package orderstat

import (
	"errors"
	"math"
	"math/bits"
)

// ErrRank indicates a selection rank outside [1, len(vals)].
var ErrRank = errors.New("orderstat: rank out of range")

// Mode chooses which end of the magnitude ordering Select extracts.
type Mode int

const (
	// Smallest selects the k smallest magnitudes.
	Smallest Mode = iota
	// Largest selects the k largest magnitudes.
	Largest
)

// Select partially permutes vals so that the k extremal magnitudes occupy
// vals[:k] (unordered) and returns the magnitude of the k-th extremal
// entry — the selection pivot.
//
// swap, when non-nil, is invoked for every element exchange so callers
// can keep parallel arrays consistent with the permutation. Passing nil
// permutes vals alone.
//
// The comparison key is |v|; signs are preserved in the slice.
// Returns ErrRank unless 1 ≤ k ≤ len(vals).
func Select(vals []float64, k int, mode Mode, swap func(i, j int)) (float64, error) {
	if k < 1 || k > len(vals) {
		return 0, ErrRank
	}

	s := selector{vals: vals, swap: swap}
	if mode == Largest {
		s.flip = true
	}
	// Depth budget: after 2·(⌊log₂ N⌋+2) partition rounds, degrade to heap selection.
	s.quickselect(0, len(vals)-1, k-1, 2*(bits.Len(uint(len(vals)))+1))
	return math.Abs(vals[k-1]), nil
}

// selector carries the slice, the mirror hook and the ordering direction
// through the recursion.
type selector struct {
	vals []float64
	swap func(i, j int)
	flip bool // true: order by descending magnitude (Largest mode)
}

// key maps an element to its ordering value: ascending magnitude for
// Smallest, descending for Largest.
func (s *selector) key(i int) float64 {
	m := math.Abs(s.vals[i])
	if s.flip {
		return -m
	}
	return m
}

func (s *selector) exchange(i, j int) {
	if i == j {
		return
	}
	s.vals[i], s.vals[j] = s.vals[j], s.vals[i]
	if s.swap != nil {
		s.swap(i, j)
	}
}

// quickselect places the element of rank want (0-based, within the whole
// slice) at position want, with smaller-keyed elements to its left.
func (s *selector) quickselect(lo, hi, want, depth int) {
	for lo < hi {
		if depth == 0 {
			s.heapSelect(lo, hi, want)
			return
		}
		depth--

		p := s.partition(lo, hi)
		switch {
		case want < p:
			hi = p - 1
		case want > p:
			lo = p + 1
		default:
			return
		}
	}
}

// partition splits [lo, hi] around a median-of-three pivot and returns
// the pivot's final position.
func (s *selector) partition(lo, hi int) int {
	mid := lo + (hi-lo)/2
	// Order lo, mid, hi so the median lands at mid, then park it at hi-1.
	if s.key(mid) < s.key(lo) {
		s.exchange(mid, lo)
	}
	if s.key(hi) < s.key(lo) {
		s.exchange(hi, lo)
	}
	if s.key(hi) < s.key(mid) {
		s.exchange(hi, mid)
	}
	if hi-lo < 3 {
		return mid
	}
	s.exchange(mid, hi-1)
	pivot := s.key(hi - 1)

	// key(lo) ≤ pivot ≤ key(hi) act as scan sentinels.
	i, j := lo, hi-1
	for {
		for i++; s.key(i) < pivot; i++ {
		}
		for j--; s.key(j) > pivot; j-- {
		}
		if i >= j {
			break
		}
		s.exchange(i, j)
	}
	s.exchange(i, hi-1)
	return i
}

// heapSelect is the O(N log N) fallback: it grows a max-heap (by key)
// over [lo, lo+m) and sifts every later element through it, leaving the
// m smallest-keyed elements at the front. m = want-lo+1.
func (s *selector) heapSelect(lo, hi, want int) {
	m := want - lo + 1

	// Build the heap over the first m slots.
	for i := m/2 - 1; i >= 0; i-- {
		s.siftDown(lo, i, m)
	}
	// Sweep the remainder: anything below the heap root displaces it.
	for j := lo + m; j <= hi; j++ {
		if s.key(j) < s.key(lo) {
			s.exchange(j, lo)
			s.siftDown(lo, 0, m)
		}
	}
	// The root is now the maximum of the selected set: the wanted rank.
	s.exchange(lo, want)
}

func (s *selector) siftDown(base, i, m int) {
	for {
		l := 2*i + 1
		if l >= m {
			return
		}
		big := l
		if r := l + 1; r < m && s.key(base+r) > s.key(base+l) {
			big = r
		}
		if s.key(base+big) <= s.key(base+i) {
			return
		}
		s.exchange(base+i, base+big)
		i = big
	}
}
