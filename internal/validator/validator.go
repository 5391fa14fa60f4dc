// Package validator checks user-entered puzzles before they reach the
// solver, which assumes pre-validated, shape-consistent input.
package validator

import (
	"context"
	"fmt"

	"github.com/NirB94/EfsharHeshbon/internal/domain"
)

type InputValidator struct{}

func New() *InputValidator { return &InputValidator{} }

// Validate reports every problem it finds as a human-readable issue.
// Structural problems short-circuit; value and feasibility problems
// accumulate so the user can fix them all at once.
func (v *InputValidator) Validate(ctx context.Context, board domain.Board, rowTargets, colTargets []int, op domain.Operator) (bool, []string, error) {
	var issues []string

	if len(board) == 0 {
		return false, []string{"board must not be empty"}, nil
	}
	cols := len(board[0])
	if cols == 0 {
		return false, []string{"board rows must not be empty"}, nil
	}
	for i, row := range board {
		if len(row) != cols {
			return false, []string{fmt.Sprintf("row %d has %d cells, expected %d", i+1, len(row), cols)}, nil
		}
	}
	if len(rowTargets) != len(board) {
		return false, []string{fmt.Sprintf("expected %d row targets, got %d", len(board), len(rowTargets))}, nil
	}
	if len(colTargets) != cols {
		return false, []string{fmt.Sprintf("expected %d column targets, got %d", cols, len(colTargets))}, nil
	}
	if op != domain.Sum && op != domain.Product {
		return false, []string{fmt.Sprintf("operation must be %q or %q", domain.Sum, domain.Product)}, nil
	}

	lo := 1
	if op == domain.Product {
		lo = 2
	}
	for i, row := range board {
		for j, val := range row {
			if val < lo || val > 9 {
				issues = append(issues, fmt.Sprintf("cell at row %d, column %d must be between %d and 9", i+1, j+1, lo))
			}
		}
	}

	for i, t := range rowTargets {
		if t <= 0 {
			issues = append(issues, fmt.Sprintf("row %d target must be positive", i+1))
		}
	}
	for i, t := range colTargets {
		if t <= 0 {
			issues = append(issues, fmt.Sprintf("column %d target must be positive", i+1))
		}
	}

	issues = append(issues, feasibility("row", rowTargets, cols, op)...)
	issues = append(issues, feasibility("column", colTargets, len(board), op)...)

	return len(issues) == 0, issues, nil
}

// feasibility bounds each target by the extremes a line of that length can
// reach: a single minimal cell up to every cell at 9.
func feasibility(kind string, targets []int, lineLen int, op domain.Operator) []string {
	var min, max int
	if op == domain.Product {
		min = 2
		max = 1
		for i := 0; i < lineLen; i++ {
			max *= 9
		}
	} else {
		min = 1
		max = 9 * lineLen
	}

	var issues []string
	for i, t := range targets {
		if t > max {
			issues = append(issues, fmt.Sprintf("%s %d target (%d) is too high: maximum reachable is %d", kind, i+1, t, max))
		} else if t > 0 && t < min {
			issues = append(issues, fmt.Sprintf("%s %d target (%d) is too low: minimum reachable is %d", kind, i+1, t, min))
		}
	}
	return issues
}
