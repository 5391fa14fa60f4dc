package solver

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/NirB94/EfsharHeshbon/internal/domain"
	"github.com/NirB94/EfsharHeshbon/internal/ports"
)

// SolveMinimal returns a valid mask with the fewest marked cells, or a nil
// mask when the search space holds no valid assignment. Ties break to the
// first mask discovered; candidate order is deterministic, so repeated runs
// return the same count and mask.
func (s *DFSSolver) SolveMinimal(ctx context.Context, board domain.Board, rowTargets, colTargets []int, op domain.Operator) (domain.Mask, int, ports.Stats, error) {
	start := time.Now()
	if err := checkShape(board, rowTargets, colTargets); err != nil {
		return nil, 0, ports.Stats{}, err
	}

	cands := rowCandidates(board, rowTargets, op)
	mask := domain.NewMask(len(board), len(board[0]))
	nodes := 0
	bestCount := -1
	var best domain.Mask

	var dfs func(row int)
	dfs = func(row int) {
		if ctx.Err() != nil {
			return
		}
		if row == len(board) {
			if validColumns(mask, board, colTargets, op) {
				marked := mask.Count()
				if bestCount < 0 || marked < bestCount {
					bestCount = marked
					best = mask.Clone()
				}
			}
			return
		}
		for _, cand := range cands[row] {
			nodes++
			copy(mask[row], cand)
			if partialValidColumns(mask, row, board, colTargets, op) {
				dfs(row + 1)
			}
		}
		for i := range mask[row] {
			mask[row][i] = 0
		}
	}
	dfs(0)

	st := ports.Stats{Nodes: nodes, Duration: time.Since(start)}
	logrus.WithFields(logrus.Fields{
		"nodes": nodes, "marked": bestCount, "dur": st.Duration,
	}).Debug("minimal search done")
	if best == nil {
		return nil, 0, st, nil
	}
	return best, bestCount, st, nil
}
