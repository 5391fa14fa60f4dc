package generator

import "github.com/NirB94/EfsharHeshbon/internal/domain"

// Hard-mode boards scoring below this are discarded and regenerated.
const confusionThreshold = 400

// ConfusionScore rates a puzzle's decoys against its targets. Exposed for
// difficulty diagnostics; generation uses the same scoring internally.
func ConfusionScore(p *domain.Puzzle) int {
	return evaluateConfusion(p.Board, p.RowTargets, p.ColTargets, p.Solution, p.Operator.ValidDigits())
}

// evaluateConfusion rates how misleading the decoy cells are. Each decoy
// scores 50 when it divides both its row and column target, or 25 when it
// divides either one; targets rich in digit divisors add a flat bonus per
// target. Higher is harder.
func evaluateConfusion(board domain.Board, rowTargets, colTargets []int, solution domain.Mask, digits []int) int {
	score := 0
	size := len(board)

	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if solution[r][c] != 0 {
				continue
			}
			rowTarget := rowTargets[r]
			colTarget := colTargets[c]
			value := board[r][c]

			if contains(commonFactors(rowTarget, colTarget, digits), value) {
				score += 50
			}
			if rowTarget%value == 0 || colTarget%value == 0 {
				score += 25
			}
		}
	}

	for _, target := range append(append([]int(nil), rowTargets...), colTargets...) {
		if target <= 0 {
			continue
		}
		divisors := 0
		for _, n := range digits {
			if target%n == 0 {
				divisors++
			}
		}
		switch {
		case divisors >= 4:
			score += 30
		case divisors >= 3:
			score += 15
		}
	}

	return score
}
