package hint

import (
	"errors"
	"testing"

	"github.com/NirB94/EfsharHeshbon/internal/domain"
)

func TestRevealRowMajorOrder(t *testing.T) {
	tr := NewTracker()
	solution := domain.Mask{
		{0, 1, 0},
		{1, 0, 1},
		{0, 0, 0},
	}
	id := tr.Start(solution)

	want := []domain.CellCoord{{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 2}}
	for i, w := range want {
		cell, found, err := tr.Next(id)
		if err != nil || !found {
			t.Fatalf("hint %d: found=%v err=%v", i, found, err)
		}
		if cell != w {
			t.Fatalf("hint %d = %v, want %v", i, cell, w)
		}
	}

	// Every marked cell revealed exactly once; the next call reports done.
	if _, found, err := tr.Next(id); found || err != nil {
		t.Fatalf("expected exhaustion, found=%v err=%v", found, err)
	}
}

func TestResetStartsOver(t *testing.T) {
	tr := NewTracker()
	id := tr.Start(domain.Mask{{1, 0}, {0, 1}})
	first, _, _ := tr.Next(id)
	if err := tr.Reset(id); err != nil {
		t.Fatal(err)
	}
	again, found, err := tr.Next(id)
	if err != nil || !found || again != first {
		t.Fatalf("after reset got %v (found=%v err=%v), want %v", again, found, err, first)
	}
}

func TestUnknownSession(t *testing.T) {
	tr := NewTracker()
	if _, _, err := tr.Next("nope"); !errors.Is(err, ErrUnknownSession) {
		t.Fatalf("err = %v, want ErrUnknownSession", err)
	}
	if err := tr.Reset("nope"); !errors.Is(err, ErrUnknownSession) {
		t.Fatalf("err = %v, want ErrUnknownSession", err)
	}
}

func TestSessionsIndependent(t *testing.T) {
	tr := NewTracker()
	a := tr.Start(domain.Mask{{1, 1}})
	b := tr.Start(domain.Mask{{1, 1}})
	if a == b {
		t.Fatal("duplicate session IDs")
	}
	tr.Next(a)
	tr.Next(a)
	if _, found, _ := tr.Next(b); !found {
		t.Fatal("session b affected by session a")
	}
}
