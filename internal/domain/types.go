package domain

// Board is an R×C grid of positive cell values.
type Board [][]int

// Mask marks selected cells of a board with 1, everything else 0.
type Mask [][]int

// CellCoord identifies a cell on the board.
type CellCoord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Puzzle is a generated or saved game with its targets and embedded solution.
type Puzzle struct {
	ID         string     `json:"id,omitempty"`
	Seed       int64      `json:"seed,omitempty"`
	Operator   Operator   `json:"operation"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
	Board      Board      `json:"board"`
	RowTargets []int      `json:"targetRows"`
	ColTargets []int      `json:"targetCols"`
	Solution   Mask       `json:"solution,omitempty"`
	// Minimal solution as confirmed by the solver; may differ from Solution.
	MinimalMask Mask  `json:"minimalSolution,omitempty"`
	MarkedCount int   `json:"markedCount,omitempty"`
	CreatedAt   int64 `json:"createdAt,omitempty"`
	// Optional user metadata
	Name string `json:"name,omitempty"`
}

// PuzzleMeta is a lightweight listing entry.
type PuzzleMeta struct {
	ID         string     `json:"id"`
	Name       string     `json:"name,omitempty"`
	Operator   Operator   `json:"operation"`
	Difficulty Difficulty `json:"difficulty"`
	CreatedAt  int64      `json:"createdAt"`
}

// NewMask returns an all-zero mask with the given dimensions.
func NewMask(rows, cols int) Mask {
	m := make(Mask, rows)
	for i := range m {
		m[i] = make([]int, cols)
	}
	return m
}

// Clone deep-copies the mask.
func (m Mask) Clone() Mask {
	out := make(Mask, len(m))
	for i, row := range m {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// Count returns the number of marked cells.
func (m Mask) Count() int {
	n := 0
	for _, row := range m {
		for _, v := range row {
			n += v
		}
	}
	return n
}

// Clone deep-copies the board.
func (b Board) Clone() Board {
	out := make(Board, len(b))
	for i, row := range b {
		out[i] = append([]int(nil), row...)
	}
	return out
}
