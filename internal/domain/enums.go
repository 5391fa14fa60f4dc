package domain

import "fmt"

// Operator combines selected cell values within a row or column.
// The wire form matches the game notation: "+" or "*".
type Operator string

const (
	Sum     Operator = "+"
	Product Operator = "*"
)

// ParseOperator accepts the wire notation and rejects anything else.
func ParseOperator(s string) (Operator, error) {
	switch Operator(s) {
	case Sum, Product:
		return Operator(s), nil
	}
	return "", fmt.Errorf("invalid operation %q: must be %q or %q", s, Sum, Product)
}

// Combine folds values with the operator. Empty input yields the identity
// (0 for sum, 1 for product); callers treat unmarked lines separately.
func (o Operator) Combine(values []int) int {
	if len(values) == 0 {
		if o == Product {
			return 1
		}
		return 0
	}
	acc := values[0]
	for _, v := range values[1:] {
		if o == Product {
			acc *= v
		} else {
			acc += v
		}
	}
	return acc
}

// ValidDigits returns the cell-value domain for the operator.
// Products exclude 1 so no cell is a free no-op mark.
func (o Operator) ValidDigits() []int {
	lo := 1
	if o == Product {
		lo = 2
	}
	out := make([]int, 0, 9)
	for d := lo; d <= 9; d++ {
		out = append(out, d)
	}
	return out
}

// Difficulty labels puzzle generation heuristics.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Hard:
		return "hard"
	default:
		return "medium"
	}
}

// ParseDifficulty defaults to Medium for unknown labels.
func ParseDifficulty(s string) Difficulty {
	switch s {
	case "easy":
		return Easy
	case "hard":
		return Hard
	default:
		return Medium
	}
}
