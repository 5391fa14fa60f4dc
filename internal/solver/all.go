package solver

import (
	"context"
	"time"

	"github.com/NirB94/EfsharHeshbon/internal/domain"
	"github.com/NirB94/EfsharHeshbon/internal/ports"
)

// SolveAll enumerates every valid mask. The same pruned traversal as
// SolveMinimal, collecting each valid terminal assignment instead of
// keeping only the best. An empty result means no solution.
func (s *DFSSolver) SolveAll(ctx context.Context, board domain.Board, rowTargets, colTargets []int, op domain.Operator) ([]domain.Mask, ports.Stats, error) {
	start := time.Now()
	if err := checkShape(board, rowTargets, colTargets); err != nil {
		return nil, ports.Stats{}, err
	}

	cands := rowCandidates(board, rowTargets, op)
	mask := domain.NewMask(len(board), len(board[0]))
	nodes := 0
	var all []domain.Mask

	var dfs func(row int)
	dfs = func(row int) {
		if ctx.Err() != nil {
			return
		}
		if row == len(board) {
			if validColumns(mask, board, colTargets, op) {
				all = append(all, mask.Clone())
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

	return all, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
}
