// Package generator builds puzzle boards around a randomly embedded
// solution, with difficulty heuristics choosing the decoy cells.
package generator

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/NirB94/EfsharHeshbon/internal/domain"
	"github.com/NirB94/EfsharHeshbon/internal/ports"
)

// ErrRestartsExceeded reports that the internal regeneration loop gave up.
// Distinct from the caller's own retry budget around Generate.
var ErrRestartsExceeded = errors.New("generator: too many internal restarts")

// maxRestarts bounds whole-board regeneration on an oversized column target
// or an under-threshold confusion score.
const maxRestarts = 64

// EmbeddedSolutionGenerator builds each row from drawn solution values,
// fills the rest with decoys, and derives the targets from the embedded
// solution so the board is always solvable.
type EmbeddedSolutionGenerator struct{}

func NewEmbeddedSolutionGenerator() *EmbeddedSolutionGenerator {
	return &EmbeddedSolutionGenerator{}
}

// Generate creates a puzzle of size×size cells. Any rejection discards the
// whole board and starts over; there is no row-level repair. Stats.Nodes
// counts internal restarts.
func (g *EmbeddedSolutionGenerator) Generate(ctx context.Context, seed int64, op domain.Operator, size, maxTarget int, difficulty domain.Difficulty) (*domain.Puzzle, ports.Stats, error) {
	start := time.Now()
	rng := rand.New(rand.NewSource(seed))

	restarts := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, ports.Stats{Nodes: restarts, Duration: time.Since(start)}, err
		}
		p, ok := buildOnce(rng, op, size, maxTarget, difficulty)
		if ok {
			p.Seed = seed
			p.CreatedAt = time.Now().UnixNano()
			if restarts > 0 {
				logrus.WithFields(logrus.Fields{
					"restarts": restarts, "difficulty": difficulty.String(),
				}).Debug("board accepted after restarts")
			}
			return p, ports.Stats{Nodes: restarts, Duration: time.Since(start)}, nil
		}
		restarts++
		if restarts >= maxRestarts {
			return nil, ports.Stats{Nodes: restarts, Duration: time.Since(start)}, ErrRestartsExceeded
		}
	}
}

// buildOnce runs a single generation pass. ok=false asks for a restart.
func buildOnce(rng *rand.Rand, op domain.Operator, size, maxTarget int, difficulty domain.Difficulty) (*domain.Puzzle, bool) {
	digits := op.ValidDigits()
	board := make(domain.Board, 0, size)
	solution := make(domain.Mask, 0, size)
	rowTargets := make([]int, 0, size)

	// At most one row in the whole board gets a single-cell solution.
	hasSingleCellRow := false

	for r := 0; r < size; r++ {
		count := weightedChoice(rng, countWeights(size, hasSingleCellRow))
		if count == 1 {
			hasSingleCellRow = true
		}

		values, target := drawSolutionValues(rng, op, count, difficulty, digits)
		for target > maxTarget {
			values = values[:0]
			for i := 0; i < count; i++ {
				values = append(values, digits[rng.Intn(len(digits))])
			}
			target = op.Combine(values)
		}

		pool := smartDigits(rng, target, op, digits, difficulty)
		row := append([]int(nil), values...)
		for i := count; i < size; i++ {
			row = append(row, pool[rng.Intn(len(pool))])
		}
		rng.Shuffle(len(row), func(i, j int) { row[i], row[j] = row[j], row[i] })

		// Reconstruct the mask by claiming the first occurrence of each
		// still-unclaimed solution value, scanning left to right. A decoy
		// equal to an unclaimed value may claim the mark instead; the row
		// still meets its target, so the policy is kept as is.
		maskRow := make([]int, size)
		remaining := append([]int(nil), values...)
		claimed := 0
		for i, v := range row {
			if claimed >= count {
				break
			}
			if j := indexOf(remaining, v); j >= 0 {
				maskRow[i] = 1
				remaining = append(remaining[:j], remaining[j+1:]...)
				claimed++
			}
		}

		board = append(board, row)
		solution = append(solution, maskRow)
		rowTargets = append(rowTargets, target)
	}

	colTargets := make([]int, size)
	for c := 0; c < size; c++ {
		var marked []int
		for r := 0; r < size; r++ {
			if solution[r][c] == 1 {
				marked = append(marked, board[r][c])
			}
		}
		target := 0
		if len(marked) > 0 {
			target = op.Combine(marked)
		}
		if target > maxTarget {
			return nil, false
		}
		colTargets[c] = target
	}

	if difficulty == domain.Hard {
		// Second pass: rescore every decoy cell now that column targets
		// are known, planting values that mimic alternative solutions.
		for r := 0; r < size; r++ {
			for c := 0; c < size; c++ {
				if solution[r][c] != 0 {
					continue
				}
				existing := make([]int, 0, size-1)
				for k := 0; k < size; k++ {
					if k != c {
						existing = append(existing, board[r][k])
					}
				}
				board[r][c] = ultraConfusingDigit(rng, r, c, rowTargets[r], colTargets, digits, existing, board, solution)
			}
		}

		if score := evaluateConfusion(board, rowTargets, colTargets, solution, digits); score < confusionThreshold {
			logrus.WithField("score", score).Debug("board below confusion threshold, restarting")
			return nil, false
		}
	}

	return &domain.Puzzle{
		Operator:   op,
		Difficulty: difficulty,
		Board:      board,
		RowTargets: rowTargets,
		ColTargets: colTargets,
		Solution:   solution,
	}, true
}

// countWeights returns the weight, per mark count 1..size, used to draw a
// row's solution-cell count. Once a single-cell row exists its weight drops
// to zero; weightedChoice normalizes by the total, which redistributes the
// remainder proportionally.
func countWeights(size int, hasSingleCellRow bool) []float64 {
	w := make([]float64, size)
	w[0] = 0.1
	for i := 1; i < size; i++ {
		switch {
		case i <= 2:
			w[i] = 0.4
		default:
			w[i] = 0.1 / float64(size-3)
		}
	}
	if size == 2 {
		w[1] = 0.9
	}
	if hasSingleCellRow {
		w[0] = 0
	}
	return w
}

// weightedChoice draws an index (1-based) from the weight distribution.
func weightedChoice(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := rng.Float64() * total
	upto := 0.0
	for i, w := range weights {
		if upto+w >= r {
			return i + 1
		}
		upto += w
	}
	return len(weights)
}

// weightedPick draws one option with integer weights, random.choices style.
func weightedPick(rng *rand.Rand, options, weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	r := rng.Intn(total)
	for i, w := range weights {
		if r < w {
			return options[i]
		}
		r -= w
	}
	return options[len(options)-1]
}

// drawSolutionValues draws a row's solution values with difficulty-specific
// sampling and returns them with their combined target.
func drawSolutionValues(rng *rand.Rand, op domain.Operator, count int, difficulty domain.Difficulty, digits []int) ([]int, int) {
	if difficulty == domain.Hard {
		return drawHardSolutionValues(rng, op, count, digits)
	}

	maxOnes := 1
	if difficulty == domain.Easy {
		maxOnes = 2
	}
	values := make([]int, 0, count)
	onesUsed := 0
	for i := 0; i < count; i++ {
		var v int
		switch {
		case op == domain.Sum && onesUsed >= maxOnes:
			v = 2 + rng.Intn(8)
		case op == domain.Sum:
			v = weightedPick(rng, digits, []int{2, 4, 4, 4, 3, 3, 3, 3, 2})
			if v == 1 {
				onesUsed++
			}
		default:
			v = digits[rng.Intn(len(digits))]
		}
		values = append(values, v)
	}
	return values, op.Combine(values)
}

// Row targets hard mode tries to land on under PRODUCT: medium-sized with
// many small factors.
var preferredProductTargets = map[int]bool{
	12: true, 15: true, 18: true, 20: true, 21: true, 24: true, 28: true, 30: true,
	35: true, 36: true, 42: true, 45: true, 48: true, 60: true, 63: true, 72: true,
}

const hardDrawAttempts = 50

func drawHardSolutionValues(rng *rand.Rand, op domain.Operator, count int, digits []int) ([]int, int) {
	if op == domain.Product {
		for attempt := 0; attempt < hardDrawAttempts; attempt++ {
			values := make([]int, 0, count)
			for i := 0; i < count; i++ {
				values = append(values, weightedPick(rng, digits, []int{1, 4, 5, 6, 4, 4, 3, 2}))
			}
			target := op.Combine(values)
			factors := 0
			for n := 2; n <= 9; n++ {
				if target%n == 0 {
					factors++
				}
			}
			if preferredProductTargets[target] || (target >= 10 && target <= 80 && factors >= 3) {
				return values, target
			}
		}
		// Fallback: small factors only, so the target still decomposes.
		values := make([]int, 0, count)
		for i := 0; i < count; i++ {
			values = append(values, 2+rng.Intn(6))
		}
		return values, op.Combine(values)
	}

	// SUM: aim for a mid-range target formable in several ways; at most one
	// 1 per row so marks cannot be shaken out cheaply.
	for attempt := 0; attempt < hardDrawAttempts; attempt++ {
		values := make([]int, 0, count)
		onesUsed := 0
		for i := 0; i < count; i++ {
			var v int
			if onesUsed >= 1 {
				v = weightedPick(rng, []int{2, 3, 4, 5, 6, 7, 8, 9}, []int{6, 6, 5, 5, 4, 4, 2, 1})
			} else {
				v = weightedPick(rng, digits, []int{1, 6, 6, 5, 5, 4, 4, 2, 1})
				if v == 1 {
					onesUsed++
				}
			}
			values = append(values, v)
		}
		target := op.Combine(values)
		if target >= 12 && target < 28 {
			return values, target
		}
	}
	values := []int{2 + rng.Intn(5)}
	for i := 1; i < count; i++ {
		values = append(values, weightedPick(rng, []int{1, 2, 3, 4, 5, 6, 7}, []int{1, 4, 4, 4, 3, 3, 2}))
	}
	return values, op.Combine(values)
}

func indexOf(s []int, v int) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
