// Package solver implements the pruned depth-first search for selection
// masks meeting row and column targets.
package solver

import (
	"fmt"

	"github.com/NirB94/EfsharHeshbon/internal/domain"
	"github.com/NirB94/EfsharHeshbon/internal/subset"
)

// DFSSolver is a straightforward recursive solver over per-row candidates.
type DFSSolver struct{}

func NewDFSSolver() *DFSSolver { return &DFSSolver{} }

// checkShape rejects mismatched board/target dimensions. This is a contract
// violation by the caller, not a runtime condition to recover from.
func checkShape(board domain.Board, rowTargets, colTargets []int) error {
	if len(board) == 0 || len(board[0]) == 0 {
		return fmt.Errorf("empty board")
	}
	if len(rowTargets) != len(board) {
		return fmt.Errorf("row target count %d does not match %d board rows", len(rowTargets), len(board))
	}
	if len(colTargets) != len(board[0]) {
		return fmt.Errorf("column target count %d does not match %d board columns", len(colTargets), len(board[0]))
	}
	return nil
}

// rowCandidates precomputes, per row, every row mask that alone meets the
// row's target. Order is the deterministic order of subset.Match.
func rowCandidates(board domain.Board, rowTargets []int, op domain.Operator) [][][]int {
	cols := len(board[0])
	cands := make([][][]int, len(board))
	for r, row := range board {
		for _, idx := range subset.Match(row, rowTargets[r], op) {
			mask := make([]int, cols)
			for _, i := range idx {
				mask[i] = 1
			}
			cands[r] = append(cands[r], mask)
		}
	}
	return cands
}

// partialValidColumns checks columns using only rows 0..rowIdx of the mask.
// Sound as a pruning test because cell values are ≥1, so both sum and
// product only grow as more rows commit. Columns with no marked cell yet
// are skipped: they are not decidable.
func partialValidColumns(mask domain.Mask, rowIdx int, board domain.Board, colTargets []int, op domain.Operator) bool {
	for c := 0; c < len(board[0]); c++ {
		acc := 0
		seen := false
		for r := 0; r <= rowIdx; r++ {
			if mask[r][c] != 1 {
				continue
			}
			if !seen {
				acc = board[r][c]
				seen = true
			} else if op == domain.Product {
				acc *= board[r][c]
			} else {
				acc += board[r][c]
			}
		}
		if !seen {
			continue
		}
		if acc > colTargets[c] {
			return false
		}
		// Product-mode digits exclude 0, but a zero cell would poison the
		// column forever; reject rather than search a dead subtree.
		if op == domain.Product && acc == 0 && colTargets[c] != 0 {
			return false
		}
	}
	return true
}

// validColumns checks a complete assignment: every column must have at
// least one marked cell and combine to its target exactly.
func validColumns(mask domain.Mask, board domain.Board, colTargets []int, op domain.Operator) bool {
	for c := 0; c < len(board[0]); c++ {
		acc := 0
		seen := false
		for r := 0; r < len(board); r++ {
			if mask[r][c] != 1 {
				continue
			}
			if !seen {
				acc = board[r][c]
				seen = true
			} else if op == domain.Product {
				acc *= board[r][c]
			} else {
				acc += board[r][c]
			}
		}
		if !seen || acc != colTargets[c] {
			return false
		}
	}
	return true
}
