package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/NirB94/EfsharHeshbon/internal/domain"
	"github.com/NirB94/EfsharHeshbon/internal/generator"
	"github.com/NirB94/EfsharHeshbon/internal/ports"
)

// ErrGenerationExhausted reports that the outer retry loop around the
// generator ran out of attempts; the user should simply try again.
var ErrGenerationExhausted = errors.New("failed to generate a valid board")

var errNotConfigured = errors.New("usecase dependency not configured")

type Service struct {
	Solver    ports.Solver
	Generator ports.Generator
	Validator ports.Validator
	Hinter    ports.Hinter
	Storage   ports.Storage

	Size        int
	MaxTarget   int
	MaxAttempts int
}

func NewService(s ports.Solver, g ports.Generator, v ports.Validator, h ports.Hinter, st ports.Storage, size, maxTarget, maxAttempts int) *Service {
	return &Service{
		Solver: s, Generator: g, Validator: v, Hinter: h, Storage: st,
		Size: size, MaxTarget: maxTarget, MaxAttempts: maxAttempts,
	}
}

// SolveResult carries the minimal solution together with the full set.
type SolveResult struct {
	Minimal     domain.Mask
	MarkedCount int
	All         []domain.Mask
	Stats       ports.Stats
}

// Solve returns the minimal-mark solution plus every valid solution.
// A nil Minimal means no solution exists; that is a normal outcome.
func (u *Service) Solve(ctx context.Context, board domain.Board, rowTargets, colTargets []int, op domain.Operator) (*SolveResult, error) {
	if u.Solver == nil {
		return nil, errNotConfigured
	}
	minimal, marked, st, err := u.Solver.SolveMinimal(ctx, board, rowTargets, colTargets, op)
	if err != nil {
		return nil, err
	}
	all, allStats, err := u.Solver.SolveAll(ctx, board, rowTargets, colTargets, op)
	if err != nil {
		return nil, err
	}
	st.Nodes += allStats.Nodes
	st.Duration += allStats.Duration
	return &SolveResult{Minimal: minimal, MarkedCount: marked, All: all, Stats: st}, nil
}

// NewGame generates a puzzle and confirms it solvable before returning it.
// Each attempt reseeds the generator so a rejected board is not retried.
func (u *Service) NewGame(ctx context.Context, seed int64, op domain.Operator, difficulty domain.Difficulty) (*domain.Puzzle, error) {
	if u.Generator == nil || u.Solver == nil {
		return nil, errNotConfigured
	}
	for attempt := 0; attempt < u.MaxAttempts; attempt++ {
		p, _, err := u.Generator.Generate(ctx, seed+int64(attempt), op, u.Size, u.MaxTarget, difficulty)
		if err != nil {
			if errors.Is(err, generator.ErrRestartsExceeded) {
				continue
			}
			return nil, err
		}
		minimal, marked, _, err := u.Solver.SolveMinimal(ctx, p.Board, p.RowTargets, p.ColTargets, p.Operator)
		if err != nil {
			return nil, err
		}
		if minimal == nil {
			continue
		}
		p.ID = uuid.NewString()
		p.MinimalMask = minimal
		p.MarkedCount = marked
		return p, nil
	}
	return nil, ErrGenerationExhausted
}

// SolutionStats summarizes the mark counts across all solutions.
type SolutionStats struct {
	Total        int         `json:"totalSolutions"`
	MinMarked    int         `json:"minMarked"`
	MaxMarked    int         `json:"maxMarked"`
	AvgMarked    float64     `json:"avgMarked"`
	Distribution map[int]int `json:"markedDistribution"`
}

// ManualResult is the outcome of solving a user-entered puzzle.
type ManualResult struct {
	Success     bool
	Issues      []string
	Minimal     domain.Mask
	MarkedCount int
	All         []domain.Mask
	Stats       SolutionStats
}

// SolveManual validates a user-entered puzzle, then solves it. Validation
// failures and unsolvable boards both come back as unsuccessful results,
// never as errors.
func (u *Service) SolveManual(ctx context.Context, board domain.Board, rowTargets, colTargets []int, op domain.Operator) (*ManualResult, error) {
	if u.Validator == nil || u.Solver == nil {
		return nil, errNotConfigured
	}
	ok, issues, err := u.Validator.Validate(ctx, board, rowTargets, colTargets, op)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &ManualResult{Issues: issues, Stats: solutionStats(nil)}, nil
	}
	res, err := u.Solve(ctx, board, rowTargets, colTargets, op)
	if err != nil {
		return nil, err
	}
	if res.Minimal == nil {
		return &ManualResult{
			Issues: []string{"no solution exists for this puzzle"},
			Stats:  solutionStats(nil),
		}, nil
	}
	return &ManualResult{
		Success:     true,
		Minimal:     res.Minimal,
		MarkedCount: res.MarkedCount,
		All:         res.All,
		Stats:       solutionStats(res.All),
	}, nil
}

func solutionStats(all []domain.Mask) SolutionStats {
	st := SolutionStats{Distribution: map[int]int{}}
	if len(all) == 0 {
		return st
	}
	st.Total = len(all)
	sum := 0
	for i, m := range all {
		n := m.Count()
		if i == 0 || n < st.MinMarked {
			st.MinMarked = n
		}
		if n > st.MaxMarked {
			st.MaxMarked = n
		}
		sum += n
		st.Distribution[n]++
	}
	st.AvgMarked = float64(sum) / float64(len(all))
	return st
}

// TargetFactors describes one target's digit divisors.
type TargetFactors struct {
	Target  int   `json:"target"`
	Count   int   `json:"factorCount"`
	Factors []int `json:"factors"`
}

// DifficultyReport is a diagnostic snapshot of one generated board.
type DifficultyReport struct {
	Puzzle         *domain.Puzzle  `json:"puzzle"`
	SingleCellRows int             `json:"singleCellRows"`
	AvgRowTarget   float64         `json:"avgRowTarget"`
	AvgColTarget   float64         `json:"avgColTarget"`
	MinTarget      int             `json:"minTarget"`
	MaxTarget      int             `json:"maxTarget"`
	FactorAnalysis []TargetFactors `json:"factorAnalysis,omitempty"`
	RichTargets    int             `json:"targetsWithManyFactors"`
	ConfusionScore int             `json:"confusionScore"`
}

// InspectDifficulty generates one board at the given difficulty and reports
// the heuristics' view of it. Diagnostic only.
func (u *Service) InspectDifficulty(ctx context.Context, op domain.Operator, difficulty domain.Difficulty) (*DifficultyReport, error) {
	if u.Generator == nil {
		return nil, errNotConfigured
	}
	p, _, err := u.Generator.Generate(ctx, time.Now().UnixNano(), op, u.Size, u.MaxTarget, difficulty)
	if err != nil {
		return nil, err
	}

	rep := &DifficultyReport{Puzzle: p}
	for _, row := range p.Solution {
		marks := 0
		for _, v := range row {
			marks += v
		}
		if marks == 1 {
			rep.SingleCellRows++
		}
	}

	rowSum, colSum := 0, 0
	for _, t := range p.RowTargets {
		rowSum += t
	}
	for _, t := range p.ColTargets {
		colSum += t
	}
	rep.AvgRowTarget = float64(rowSum) / float64(len(p.RowTargets))
	rep.AvgColTarget = float64(colSum) / float64(len(p.ColTargets))

	targets := append(append([]int(nil), p.RowTargets...), p.ColTargets...)
	rep.MinTarget, rep.MaxTarget = targets[0], targets[0]
	for _, t := range targets {
		if t < rep.MinTarget {
			rep.MinTarget = t
		}
		if t > rep.MaxTarget {
			rep.MaxTarget = t
		}
	}

	if op == domain.Product {
		for _, t := range targets {
			if t <= 0 {
				continue
			}
			tf := TargetFactors{Target: t}
			for n := 2; n <= 9; n++ {
				if t%n == 0 {
					tf.Factors = append(tf.Factors, n)
				}
			}
			tf.Count = len(tf.Factors)
			if tf.Count >= 3 {
				rep.RichTargets++
			}
			rep.FactorAnalysis = append(rep.FactorAnalysis, tf)
		}
	}

	rep.ConfusionScore = generator.ConfusionScore(p)
	return rep, nil
}

// Hints

func (u *Service) StartHint(solution domain.Mask) (string, error) {
	if u.Hinter == nil {
		return "", errNotConfigured
	}
	return u.Hinter.Start(solution), nil
}

func (u *Service) NextHint(sessionID string) (domain.CellCoord, bool, error) {
	if u.Hinter == nil {
		return domain.CellCoord{}, false, errNotConfigured
	}
	return u.Hinter.Next(sessionID)
}

func (u *Service) ResetHint(sessionID string) error {
	if u.Hinter == nil {
		return errNotConfigured
	}
	return u.Hinter.Reset(sessionID)
}

// Persistence

func (u *Service) Save(ctx context.Context, p *domain.Puzzle) error {
	if u.Storage == nil {
		return errNotConfigured
	}
	return u.Storage.Save(ctx, p)
}

func (u *Service) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.Load(ctx, id)
}

func (u *Service) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.List(ctx)
}
