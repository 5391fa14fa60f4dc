// Package storage persists puzzles in a local SQLite database.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/NirB94/EfsharHeshbon/internal/domain"
)

type SQLite struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and migrates the schema.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS puzzles (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		seed INTEGER NOT NULL DEFAULT 0,
		operation TEXT NOT NULL,
		difficulty INTEGER NOT NULL DEFAULT 1,
		board TEXT NOT NULL,
		row_targets TEXT NOT NULL,
		col_targets TEXT NOT NULL,
		solution TEXT NOT NULL DEFAULT '',
		minimal_mask TEXT NOT NULL DEFAULT '',
		marked_count INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_puzzles_created_at ON puzzles(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Grids are stored as JSON text columns; boards are tiny, so readability
// wins over a packed encoding.
func marshalGrid(v any) (string, error) {
	b, err := json.Marshal(v)
	return string(b), err
}

func unmarshalGrid(data string, v any) error {
	if data == "" {
		return nil
	}
	return json.Unmarshal([]byte(data), v)
}

func (s *SQLite) Save(ctx context.Context, p *domain.Puzzle) error {
	if p == nil || p.ID == "" {
		return fmt.Errorf("invalid puzzle: missing ID")
	}
	board, err := marshalGrid(p.Board)
	if err != nil {
		return err
	}
	rowT, err := marshalGrid(p.RowTargets)
	if err != nil {
		return err
	}
	colT, err := marshalGrid(p.ColTargets)
	if err != nil {
		return err
	}
	sol, err := marshalGrid(p.Solution)
	if err != nil {
		return err
	}
	minimal, err := marshalGrid(p.MinimalMask)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO puzzles
		(id, name, seed, operation, difficulty, board, row_targets, col_targets, solution, minimal_mask, marked_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Seed, string(p.Operator), int(p.Difficulty),
		board, rowT, colT, sol, minimal, p.MarkedCount, p.CreatedAt,
	)
	return err
}

func (s *SQLite) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, seed, operation, difficulty, board, row_targets, col_targets, solution, minimal_mask, marked_count, created_at
		FROM puzzles WHERE id = ?`, id)

	var p domain.Puzzle
	var operation string
	var difficulty int
	var board, rowT, colT, sol, minimal string
	err := row.Scan(&p.ID, &p.Name, &p.Seed, &operation, &difficulty,
		&board, &rowT, &colT, &sol, &minimal, &p.MarkedCount, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.Operator = domain.Operator(operation)
	p.Difficulty = domain.Difficulty(difficulty)
	if err := unmarshalGrid(board, &p.Board); err != nil {
		return nil, err
	}
	if err := unmarshalGrid(rowT, &p.RowTargets); err != nil {
		return nil, err
	}
	if err := unmarshalGrid(colT, &p.ColTargets); err != nil {
		return nil, err
	}
	if err := unmarshalGrid(sol, &p.Solution); err != nil {
		return nil, err
	}
	if err := unmarshalGrid(minimal, &p.MinimalMask); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *SQLite) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, operation, difficulty, created_at
		FROM puzzles ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PuzzleMeta
	for rows.Next() {
		var m domain.PuzzleMeta
		var operation string
		var difficulty int
		if err := rows.Scan(&m.ID, &m.Name, &operation, &difficulty, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Operator = domain.Operator(operation)
		m.Difficulty = domain.Difficulty(difficulty)
		out = append(out, m)
	}
	return out, rows.Err()
}
