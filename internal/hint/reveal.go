// Package hint tracks which solution cells have been revealed to a player.
// State is per session, owned here, never inside the solver or generator.
package hint

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/NirB94/EfsharHeshbon/internal/domain"
)

var ErrUnknownSession = errors.New("hint: unknown session")

// Tracker hands out marked cells one at a time, scanning the solution mask
// in row-major order and skipping cells already revealed.
type Tracker struct {
	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	solution domain.Mask
	revealed map[domain.CellCoord]bool
}

func NewTracker() *Tracker {
	return &Tracker{sessions: make(map[string]*session)}
}

// Start registers a solution mask and returns the session ID for it.
func (t *Tracker) Start(solution domain.Mask) string {
	id := uuid.NewString()
	t.mu.Lock()
	t.sessions[id] = &session{
		solution: solution.Clone(),
		revealed: make(map[domain.CellCoord]bool),
	}
	t.mu.Unlock()
	return id
}

// Next reveals the first not-yet-revealed marked cell. ok=false means
// every marked cell has already been revealed.
func (t *Tracker) Next(sessionID string) (domain.CellCoord, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, found := t.sessions[sessionID]
	if !found {
		return domain.CellCoord{}, false, ErrUnknownSession
	}
	for r := range s.solution {
		for c := range s.solution[r] {
			cell := domain.CellCoord{Row: r, Col: c}
			if s.solution[r][c] == 1 && !s.revealed[cell] {
				s.revealed[cell] = true
				return cell, true, nil
			}
		}
	}
	return domain.CellCoord{}, false, nil
}

// Reset forgets all revealed cells for the session.
func (t *Tracker) Reset(sessionID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, found := t.sessions[sessionID]
	if !found {
		return ErrUnknownSession
	}
	s.revealed = make(map[domain.CellCoord]bool)
	return nil
}
