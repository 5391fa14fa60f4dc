// Package subset enumerates index subsets of a value sequence that combine
// to a target under an operator.
package subset

import "github.com/NirB94/EfsharHeshbon/internal/domain"

// Match returns every non-empty index subset of values whose combined value
// equals target exactly. The scan is exhaustive over all 2^n−1 non-empty
// subsets; sequences stay small (a board row), so this is fine. An empty
// result means the row is unsatisfiable, which is a normal outcome.
//
// Subsets come back in ascending bitmask order, so the result order is
// deterministic for identical input. Callers rely on that for pinned
// tie-breaking during search.
func Match(values []int, target int, op domain.Operator) [][]int {
	n := len(values)
	var out [][]int
	for bits := 1; bits < 1<<n; bits++ {
		acc := 0
		first := true
		for i := 0; i < n; i++ {
			if bits&(1<<i) == 0 {
				continue
			}
			if first {
				acc = values[i]
				first = false
			} else if op == domain.Product {
				acc *= values[i]
			} else {
				acc += values[i]
			}
		}
		if acc != target {
			continue
		}
		idx := make([]int, 0, n)
		for i := 0; i < n; i++ {
			if bits&(1<<i) != 0 {
				idx = append(idx, i)
			}
		}
		out = append(out, idx)
	}
	return out
}
