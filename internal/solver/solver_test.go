package solver

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/NirB94/EfsharHeshbon/internal/domain"
)

// A 5×5 product puzzle with a single valid solution of 14 marks.
var (
	productBoard = domain.Board{
		{9, 3, 3, 9, 2},
		{3, 3, 8, 4, 3},
		{3, 9, 8, 3, 3},
		{5, 3, 2, 4, 2},
		{3, 8, 4, 4, 6},
	}
	productRowTargets = []int{18, 72, 27, 24, 96}
	productColTargets = []int{81, 72, 32, 12, 36}
)

func checkMask(t *testing.T, mask domain.Mask, board domain.Board, rowTargets, colTargets []int, op domain.Operator) {
	t.Helper()
	for r := range board {
		var vals []int
		for c := range board[r] {
			if mask[r][c] == 1 {
				vals = append(vals, board[r][c])
			}
		}
		if len(vals) == 0 || op.Combine(vals) != rowTargets[r] {
			t.Fatalf("row %d combines to %d, want %d (mask %v)", r, op.Combine(vals), rowTargets[r], mask[r])
		}
	}
	for c := range board[0] {
		var vals []int
		for r := range board {
			if mask[r][c] == 1 {
				vals = append(vals, board[r][c])
			}
		}
		if len(vals) == 0 || op.Combine(vals) != colTargets[c] {
			t.Fatalf("column %d combines to %d, want %d", c, op.Combine(vals), colTargets[c])
		}
	}
}

func TestSolveMinimalProductFixture(t *testing.T) {
	s := NewDFSSolver()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	mask, marked, st, err := s.SolveMinimal(ctx, productBoard, productRowTargets, productColTargets, domain.Product)
	if err != nil {
		t.Fatalf("SolveMinimal failed: %v", err)
	}
	if mask == nil {
		t.Fatal("expected a solution, got none")
	}
	if marked != 14 {
		t.Fatalf("marked = %d, want 14", marked)
	}
	checkMask(t, mask, productBoard, productRowTargets, productColTargets, domain.Product)
	t.Logf("solved in %v, nodes=%d", st.Duration, st.Nodes)
}

func TestSolveMinimalDeterministic(t *testing.T) {
	s := NewDFSSolver()
	ctx := context.Background()
	first, firstCount, _, err := s.SolveMinimal(ctx, productBoard, productRowTargets, productColTargets, domain.Product)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		mask, count, _, err := s.SolveMinimal(ctx, productBoard, productRowTargets, productColTargets, domain.Product)
		if err != nil {
			t.Fatal(err)
		}
		if count != firstCount || !reflect.DeepEqual(mask, first) {
			t.Fatalf("run %d differs: count=%d mask=%v", i, count, mask)
		}
	}
}

func TestSolveAllContainsMinimal(t *testing.T) {
	s := NewDFSSolver()
	ctx := context.Background()
	minimal, _, _, err := s.SolveMinimal(ctx, productBoard, productRowTargets, productColTargets, domain.Product)
	if err != nil {
		t.Fatal(err)
	}
	all, _, err := s.SolveAll(ctx, productBoard, productRowTargets, productColTargets, domain.Product)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("expected exactly 1 solution for fixture, got %d", len(all))
	}
	found := false
	for _, m := range all {
		checkMask(t, m, productBoard, productRowTargets, productColTargets, domain.Product)
		if reflect.DeepEqual(m, minimal) {
			found = true
		}
	}
	if !found {
		t.Fatal("SolveAll result does not contain the minimal mask")
	}
}

func TestSolveSumBoard(t *testing.T) {
	board := domain.Board{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	}
	// Mark everything: rows sum to 6, 15, 24; columns to 12, 15, 18.
	s := NewDFSSolver()
	mask, marked, _, err := s.SolveMinimal(context.Background(), board, []int{6, 15, 24}, []int{12, 15, 18}, domain.Sum)
	if err != nil {
		t.Fatal(err)
	}
	if mask == nil {
		t.Fatal("expected full-board solution")
	}
	checkMask(t, mask, board, []int{6, 15, 24}, []int{12, 15, 18}, domain.Sum)
	if marked != 9 {
		t.Fatalf("marked = %d, want 9", marked)
	}
}

func TestNoSolutionIsDataNotError(t *testing.T) {
	board := domain.Board{
		{2, 4},
		{6, 8},
	}
	// Row 0 cannot reach 5 by summing 2 and 4 in any subset.
	s := NewDFSSolver()
	mask, marked, _, err := s.SolveMinimal(context.Background(), board, []int{5, 14}, []int{8, 12}, domain.Sum)
	if err != nil {
		t.Fatalf("no-solution must not be an error, got %v", err)
	}
	if mask != nil || marked != 0 {
		t.Fatalf("expected nil mask, got %v (marked=%d)", mask, marked)
	}
	all, _, err := s.SolveAll(context.Background(), board, []int{5, 14}, []int{8, 12}, domain.Sum)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 0 {
		t.Fatalf("expected no solutions, got %d", len(all))
	}
}

func TestShapeMismatchIsError(t *testing.T) {
	s := NewDFSSolver()
	_, _, _, err := s.SolveMinimal(context.Background(), domain.Board{{1, 2}}, []int{3, 4}, []int{1, 2}, domain.Sum)
	if err == nil {
		t.Fatal("expected error for mismatched row targets")
	}
	_, _, err = s.SolveAll(context.Background(), domain.Board{{1, 2}}, []int{3}, []int{1}, domain.Sum)
	if err == nil {
		t.Fatal("expected error for mismatched column targets")
	}
}

func TestPartialPruneOvershoot(t *testing.T) {
	// Column 0 target is 3; committing row 0's mark already reaches 9,
	// so the subtree must be pruned without recursing further.
	board := domain.Board{{9}, {3}}
	mask := domain.NewMask(2, 1)
	mask[0][0] = 1
	if partialValidColumns(mask, 0, board, []int{3}, domain.Sum) {
		t.Fatal("overshoot not pruned")
	}
}
