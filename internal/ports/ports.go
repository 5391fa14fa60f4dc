package ports

import (
	"context"
	"time"

	"github.com/NirB94/EfsharHeshbon/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Nodes    int
	Duration time.Duration
}

// Solver searches a board for selection masks meeting the targets.
// A nil mask / empty slice means no solution exists; that is not an error.
type Solver interface {
	SolveMinimal(ctx context.Context, board domain.Board, rowTargets, colTargets []int, op domain.Operator) (domain.Mask, int, Stats, error)
	SolveAll(ctx context.Context, board domain.Board, rowTargets, colTargets []int, op domain.Operator) ([]domain.Mask, Stats, error)
}

// Generator creates new puzzles with an embedded guaranteed solution.
type Generator interface {
	Generate(ctx context.Context, seed int64, op domain.Operator, size, maxTarget int, difficulty domain.Difficulty) (*domain.Puzzle, Stats, error)
}

// Validator checks user-supplied boards and targets before solving.
type Validator interface {
	Validate(ctx context.Context, board domain.Board, rowTargets, colTargets []int, op domain.Operator) (ok bool, issues []string, err error)
}

// Hinter owns per-session reveal state for solution masks.
type Hinter interface {
	Start(solution domain.Mask) (sessionID string)
	Next(sessionID string) (domain.CellCoord, bool, error)
	Reset(sessionID string) error
}

// Storage persists and retrieves puzzles.
type Storage interface {
	Save(ctx context.Context, p *domain.Puzzle) error
	Load(ctx context.Context, id string) (*domain.Puzzle, error)
	List(ctx context.Context) ([]domain.PuzzleMeta, error)
}
