package generator

import (
	"math/rand"
	"sort"

	"github.com/NirB94/EfsharHeshbon/internal/domain"
)

// commonFactors lists the digits that divide both targets, smallest first.
func commonFactors(rowTarget, colTarget int, digits []int) []int {
	if rowTarget <= 0 || colTarget <= 0 {
		return nil
	}
	var out []int
	for _, n := range digits {
		if rowTarget%n == 0 && colTarget%n == 0 {
			out = append(out, n)
		}
	}
	return out
}

// smartDigits returns the decoy digit pool for a row, narrowed by the
// difficulty and the row's target.
func smartDigits(rng *rand.Rand, target int, op domain.Operator, digits []int, difficulty domain.Difficulty) []int {
	switch difficulty {
	case domain.Easy:
		if op == domain.Sum && target < 9 {
			return filterDigits(digits, func(n int) bool { return n <= target })
		}
		if op == domain.Product && target < 20 {
			return filterDigits(digits, func(n int) bool { return n <= 5 })
		}
		return digits
	case domain.Medium:
		if op == domain.Sum && target < 15 {
			return filterDigits(digits, func(n int) bool { return n <= target+2 })
		}
		if op == domain.Product && target < 50 {
			return filterDigits(digits, func(n int) bool { return n <= 7 })
		}
		return digits
	default:
		return confusingDigits(rng, target, op, digits)
	}
}

func filterDigits(digits []int, keep func(int) bool) []int {
	out := make([]int, 0, len(digits))
	for _, n := range digits {
		if keep(n) {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return digits
	}
	return out
}

// confusingDigits builds the hard-mode decoy pool: digits that plausibly
// belong to alternative combinations for the target.
func confusingDigits(rng *rand.Rand, target int, op domain.Operator, digits []int) []int {
	var pool []int
	add := func(n int) { pool = append(pool, n) }

	if op == domain.Product {
		var factors []int
		for _, n := range digits {
			if target > 0 && target%n == 0 {
				factors = append(factors, n)
				add(n)
			}
		}
		for _, factor := range factors {
			if rem := target / factor; contains(digits, rem) {
				add(rem)
			}
			// Digits whose product with a factor lands near the target look
			// like halves of a valid pair.
			for _, n := range digits {
				p := factor * n
				if 10*p >= 7*target && 10*p <= 13*target && p != target {
					add(n)
				}
			}
		}
		for _, cf := range []int{2, 3, 4, 6} {
			if !contains(digits, cf) {
				continue
			}
			add(cf)
			for _, mult := range []int{2, 3} {
				if v := cf * mult; contains(digits, v) {
					add(v)
				}
			}
		}
		if len(factors) >= 3 {
			for _, n := range digits {
				if n <= 6 {
					add(n)
				}
			}
		}
	} else {
		if target <= 6 {
			add(1)
		}
		var middle []int
		for _, n := range digits {
			if n >= 2 && n <= 7 {
				middle = append(middle, n)
			}
		}
		// Rank mid-range digits by how many 2- and 3-digit combinations
		// they can participate in without overshooting the target.
		counts := make(map[int]int, len(middle))
		for _, n := range middle {
			c := 0
			for _, other := range middle {
				if n != other && n+other >= 2 && n+other <= target {
					c++
				}
				for _, third := range middle {
					if n != other && n != third && other != third && n+other+third >= 3 && n+other+third <= target {
						c++
					}
				}
			}
			counts[n] = c
		}
		versatile := append([]int(nil), middle...)
		sort.SliceStable(versatile, func(i, j int) bool { return counts[versatile[i]] > counts[versatile[j]] })
		for i, n := range versatile {
			if i >= 5 {
				break
			}
			add(n)
		}
		for _, frac := range []int{target / 2, target / 3, target / 4} {
			for off := -2; off <= 2; off++ {
				if v := frac + off; v > 1 && contains(digits, v) {
					add(v)
				}
			}
		}
		for _, n := range digits {
			if n >= 2 && n < target {
				if comp := target - n; comp != n && comp > 1 && contains(digits, comp) {
					add(n)
					add(comp)
				}
			}
		}
		if target >= 10 {
			for _, n := range digits {
				if n > 1 && n >= target/4 && n <= target/2 {
					add(n)
				}
			}
		}
	}

	pool = dedupe(pool)

	// Under SUM, a pool full of 1s defeats the point: keep at most one 1
	// when enough alternatives exist.
	if op == domain.Sum {
		var noOnes []int
		hasOne := false
		for _, n := range pool {
			if n == 1 {
				hasOne = true
			} else {
				noOnes = append(noOnes, n)
			}
		}
		if hasOne && len(noOnes) >= 3 {
			pool = append(noOnes, 1)
		}
	}

	for len(pool) < 4 && len(pool) < len(digits) {
		var remaining []int
		for _, n := range digits {
			if !contains(pool, n) {
				remaining = append(remaining, n)
			}
		}
		if len(remaining) == 0 {
			break
		}
		if op == domain.Sum {
			var nonOnes []int
			for _, n := range remaining {
				if n != 1 {
					nonOnes = append(nonOnes, n)
				}
			}
			if len(nonOnes) > 0 {
				remaining = nonOnes
			}
		}
		pool = append(pool, remaining[rng.Intn(len(remaining))])
	}

	if len(pool) == 0 {
		return digits
	}
	return pool
}

// ultraConfusingDigit scores every candidate digit for one decoy cell and
// picks randomly among the top three, so equally hard boards still vary.
func ultraConfusingDigit(rng *rand.Rand, row, col, rowTarget int, colTargets, digits, existing []int, board domain.Board, solution domain.Mask) int {
	colTarget := colTargets[col]

	var rowFactors, colFactors []int
	for _, n := range digits {
		if rowTarget%n == 0 {
			rowFactors = append(rowFactors, n)
		}
		if colTarget%n == 0 {
			colFactors = append(colFactors, n)
		}
	}
	var common []int
	for _, n := range rowFactors {
		if contains(colFactors, n) {
			common = append(common, n)
		}
	}

	type scored struct {
		digit, score int
	}
	var candidates []scored
	for _, f := range common {
		candidates = append(candidates, scored{f, 150})
	}

	maxDigit := digits[len(digits)-1]
	for _, digit := range digits {
		score := 0

		// Would this digit, joined to the row's marked cells, also hit the
		// row target? That plants a false solvable-looking path.
		var rowMarked []int
		for i := range board[row] {
			if i != col && solution[row][i] == 1 {
				rowMarked = append(rowMarked, board[row][i])
			}
		}
		if len(rowMarked) > 0 && combineFor(rowTarget, append(rowMarked, digit)) == rowTarget {
			score += 120
		}
		var colMarked []int
		for i := range board {
			if i != row && solution[i][col] == 1 {
				colMarked = append(colMarked, board[i][col])
			}
		}
		if len(colMarked) > 0 && combineFor(colTarget, append(colMarked, digit)) == colTarget {
			score += 120
		}

		switch {
		case contains(rowFactors, digit) && contains(colFactors, digit):
			score += 100
		case contains(rowFactors, digit):
			score += 60
		case contains(colFactors, digit):
			score += 60
		}

		combo := 0
		for _, other := range rowFactors {
			if other != digit && digit*other <= maxDigit*2 {
				combo += 20
			}
		}
		for _, other := range colFactors {
			if other != digit && digit*other <= maxDigit*2 {
				combo += 20
			}
		}
		if combo > 80 {
			combo = 80
		}
		score += combo

		if contains(existing, digit) {
			score -= 10
		}
		if digit <= 4 {
			score += 30
		}
		if score > 0 {
			candidates = append(candidates, scored{digit, score})
		}
	}

	if len(candidates) > 0 {
		sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })
		top := len(candidates)
		if top > 3 {
			top = 3
		}
		return candidates[rng.Intn(top)].digit
	}
	if len(common) > 0 {
		return common[rng.Intn(len(common))]
	}
	var small []int
	for _, n := range digits {
		if n <= 4 {
			small = append(small, n)
		}
	}
	if len(small) > 0 {
		return small[rng.Intn(len(small))]
	}
	return digits[rng.Intn(len(digits))]
}

// combineFor folds values the way a player testing a target would: larger
// targets read as products, small ones as sums.
func combineFor(target int, values []int) int {
	op := domain.Sum
	if target > 15 {
		op = domain.Product
	}
	return op.Combine(values)
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func dedupe(s []int) []int {
	seen := make(map[int]bool, len(s))
	out := s[:0]
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
