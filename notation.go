package gobblet

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Move is a single move in text notation. A place move draws from the
// dugout: "2a1" puts the size-2 piece on square a1. A board move lifts a
// stack top: "a1>b2". A square is a column letter plus a 1-based row
// number.
type Move struct {
	// Place only; -1 for board moves.
	Size int

	Src  *Coord
	Dest *Coord

	Text string
}

// (size)(square)
var placeRegex = regexp.MustCompile(`^(\d)([a-z]\d+)$`)

// (square)>(square)
var moveRegex = regexp.MustCompile(`^([a-z]\d+)>([a-z]\d+)$`)

// NewMove takes in a move string and returns a move object that has been
// parsed.
func NewMove(mv string) (*Move, error) {
	mv = strings.Trim(strings.TrimSpace(mv), "\"'?!")
	m := &Move{Text: mv, Size: -1}
	err := m.Parse()
	return m, err
}

// Parse takes the Text of a move and fills the rest of the attributes of
// the Move object. It overwrites past parses.
func (m *Move) Parse() error {
	if m.Text == "" {
		return fmt.Errorf("move cannot be empty")
	}

	if placeRegex.MatchString(m.Text) {
		return m.parsePlace()
	}

	if moveRegex.MatchString(m.Text) {
		return m.parseMove()
	}

	return fmt.Errorf("invalid move format: %s", m.Text)
}

// IsPlace reports whether the move draws from the dugout.
func (m *Move) IsPlace() bool {
	return m.Size >= 0
}

func (m *Move) parsePlace() error {
	parts := placeRegex.FindStringSubmatch(m.Text)

	size, err := strconv.Atoi(parts[1])
	if err != nil {
		return err
	}

	dest, err := ParseSquare(parts[2])
	if err != nil {
		return err
	}

	m.Size = size
	m.Src = nil
	m.Dest = &dest

	return nil
}

func (m *Move) parseMove() error {
	parts := moveRegex.FindStringSubmatch(m.Text)

	src, err := ParseSquare(parts[1])
	if err != nil {
		return err
	}

	dest, err := ParseSquare(parts[2])
	if err != nil {
		return err
	}

	m.Size = -1
	m.Src = &src
	m.Dest = &dest

	return nil
}

// ParseSquare converts a square like "a1" into a Coord. The letter is the
// column, the number the 1-based row.
func ParseSquare(sq string) (Coord, error) {
	if len(sq) < 2 || sq[0] < 'a' || sq[0] > 'z' {
		return Coord{}, fmt.Errorf("invalid square: %s", sq)
	}

	row, err := strconv.Atoi(sq[1:])
	if err != nil || row < 1 {
		return Coord{}, fmt.Errorf("invalid square: %s", sq)
	}

	return Coord{Row: row - 1, Col: int(sq[0] - 'a')}, nil
}

// Square renders the coordinate in move notation.
func (c Coord) Square() string {
	return fmt.Sprintf("%c%d", rune('a'+c.Col), c.Row+1)
}
