package storage

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/NirB94/EfsharHeshbon/internal/domain"
)

func openTemp(t *testing.T) *SQLite {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "puzzles.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func samplePuzzle(id string) *domain.Puzzle {
	return &domain.Puzzle{
		ID:          id,
		Seed:        99,
		Operator:    domain.Product,
		Difficulty:  domain.Hard,
		Board:       domain.Board{{2, 3}, {4, 5}},
		RowTargets:  []int{6, 20},
		ColTargets:  []int{8, 15},
		Solution:    domain.Mask{{1, 1}, {1, 1}},
		MarkedCount: 4,
		CreatedAt:   1234,
		Name:        "sample",
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	p := samplePuzzle("p1")
	if err := s.Save(ctx, p); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load(ctx, "p1")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, p) {
		t.Fatalf("round trip mismatch:\ngot  %+v\nwant %+v", got, p)
	}
}

func TestSaveRequiresID(t *testing.T) {
	s := openTemp(t)
	p := samplePuzzle("")
	if err := s.Save(context.Background(), p); err == nil {
		t.Fatal("expected error for missing ID")
	}
}

func TestLoadMissing(t *testing.T) {
	s := openTemp(t)
	if _, err := s.Load(context.Background(), "missing"); err == nil {
		t.Fatal("expected error for unknown ID")
	}
}

func TestListNewestFirst(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	older := samplePuzzle("old")
	older.CreatedAt = 100
	newer := samplePuzzle("new")
	newer.CreatedAt = 200
	if err := s.Save(ctx, older); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, newer); err != nil {
		t.Fatal(err)
	}
	metas, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(metas) != 2 || metas[0].ID != "new" || metas[1].ID != "old" {
		t.Fatalf("unexpected listing: %+v", metas)
	}
	if metas[0].Operator != domain.Product || metas[0].Difficulty != domain.Hard {
		t.Fatalf("metadata lost: %+v", metas[0])
	}
}

func TestSaveOverwrites(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	p := samplePuzzle("p1")
	if err := s.Save(ctx, p); err != nil {
		t.Fatal(err)
	}
	p.Name = "renamed"
	if err := s.Save(ctx, p); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load(ctx, "p1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "renamed" {
		t.Fatalf("overwrite lost: %q", got.Name)
	}
	metas, _ := s.List(ctx)
	if len(metas) != 1 {
		t.Fatalf("expected 1 row after overwrite, got %d", len(metas))
	}
}
