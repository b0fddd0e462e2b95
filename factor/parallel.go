package factor

import (
	"sync"

	"golang.org/x/exp/constraints"
)

// ceilDiv rounds the quotient a/b up.
func ceilDiv[T constraints.Integer](a, b T) T {
	return (a + b - 1) / b
}

// parallelChunks splits [0, n) into at most `workers` contiguous chunks
// and runs body(chunk, lo, hi) on each concurrently, blocking until all
// finish (the inter-kernel barrier). Chunk ids are dense in [0, workers).
// With workers ≤ 1 the body runs inline on the whole range.
func parallelChunks(workers, n int, body func(chunk, lo, hi int)) {
	if n <= 0 {
		return
	}
	if workers <= 1 || n == 1 {
		body(0, 0, n)
		return
	}
	if workers > n {
		workers = n
	}
	size := ceilDiv(n, workers)

	var wg sync.WaitGroup
	chunk := 0
	for lo := 0; lo < n; lo += size {
		hi := lo + size
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(chunk, lo, hi int) {
			defer wg.Done()
			body(chunk, lo, hi)
		}(chunk, lo, hi)
		chunk++
	}
	wg.Wait()
}

// parallelRows runs body(r) for every row r in [0, n), chunked over the
// worker pool. Rows are disjoint, so bodies that touch only their own
// row need no locking.
func parallelRows(workers, n int, body func(r int)) {
	parallelChunks(workers, n, func(_, lo, hi int) {
		for r := lo; r < hi; r++ {
			body(r)
		}
	})
}
