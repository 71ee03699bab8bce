package gobblet

import "fmt"

// Coord addresses a single board cell as (row, column), zero based.
type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

// Stack is the ordered pile of pieces in one cell, bottom first. Only the
// last (top) piece is visible for occupancy and win checks; a covered piece
// stays in the stack.
type Stack []Piece

// Top returns the visible piece of the stack.
func (s Stack) Top() (Piece, bool) {
	if len(s) == 0 {
		return Piece{}, false
	}
	return s[len(s)-1], true
}

// Empty reports whether the stack holds no pieces.
func (s Stack) Empty() bool {
	return len(s) == 0
}

// Push appends a piece, making it the new top.
func (s *Stack) Push(p Piece) {
	*s = append(*s, p)
}

// Pop removes and returns the top piece.
func (s *Stack) Pop() (Piece, bool) {
	if len(*s) == 0 {
		return Piece{}, false
	}
	p := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return p, true
}

// Copy returns an independent copy of the stack. Pieces are values, so the
// copy shares nothing with the original.
func (s Stack) Copy() Stack {
	if s == nil {
		return nil
	}
	return append(Stack{}, s...)
}

// Board is an N×N grid of cells, each holding a stack of pieces. Stacks
// only grow: covering a piece hides it, it does not remove it.
type Board struct {
	size  int
	cells [][]Stack
}

// NewBoard returns a board of the given dimension with every cell empty.
func NewBoard(size int) (*Board, error) {
	if size < 3 {
		return nil, fmt.Errorf("board size %d is too small", size)
	}
	cells := make([][]Stack, size)
	for i := range cells {
		cells[i] = make([]Stack, size)
	}
	return &Board{size: size, cells: cells}, nil
}

// Size returns the board dimension N.
func (b *Board) Size() int {
	return b.size
}

func (b *Board) inRange(c Coord) bool {
	return c.Row >= 0 && c.Row < b.size && c.Col >= 0 && c.Col < b.size
}

// Cell returns the live stack at c. Appending to it is the only mutation
// the board supports. Coordinates outside the grid fail loudly.
func (b *Board) Cell(c Coord) (*Stack, error) {
	if !b.inRange(c) {
		return nil, fmt.Errorf("cell %s: %w", c, ErrOutOfRange)
	}
	return &b.cells[c.Row][c.Col], nil
}

// Column returns the stack at every row for a fixed column, in row order.
func (b *Board) Column(col int) ([]*Stack, error) {
	if col < 0 || col >= b.size {
		return nil, fmt.Errorf("column %d: %w", col, ErrOutOfRange)
	}
	out := make([]*Stack, b.size)
	for row := range b.cells {
		out[row] = &b.cells[row][col]
	}
	return out, nil
}

// Place appends p to the stack at c. This is the commit primitive: an
// already-validated move is applied by appending to its destination.
func (b *Board) Place(c Coord, p Piece) error {
	cell, err := b.Cell(c)
	if err != nil {
		return err
	}
	cell.Push(p)
	return nil
}

// Cells returns a deep copy of the whole grid, for rendering and
// serialization. Mutating the copy never reaches the board.
func (b *Board) Cells() [][]Stack {
	out := make([][]Stack, b.size)
	for row := range b.cells {
		out[row] = make([]Stack, b.size)
		for col := range b.cells[row] {
			out[row][col] = b.cells[row][col].Copy()
		}
	}
	return out
}
