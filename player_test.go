package gobblet

import (
	"strings"
	"testing"
)

func noop() {}

func newTestPlayer(t *testing.T) (*Player, *Board) {
	t.Helper()

	board, err := NewBoard(4)
	if err != nil {
		t.Fatalf("%+v", err)
	}

	return NewPlayer(noop, board, []string{"small", "large"}, 2), board
}

func assertInvalidMove(t *testing.T, p *Player, dugoutSrc *Piece, src, dest *Coord, substr string) {
	t.Helper()

	err := p.Validate(dugoutSrc, BoardMove{Src: src, Dest: dest})
	if err == nil {
		t.Fatalf("expected rejection containing %q, move was accepted", substr)
	}
	if !IsInvalidMove(err) {
		t.Fatalf("expected an InvalidMoveError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), substr) {
		t.Errorf("expected rejection containing %q, got %q", substr, err.Error())
	}
}

func assertValidMove(t *testing.T, p *Player, dugoutSrc *Piece, src, dest *Coord) {
	t.Helper()

	if err := p.Validate(dugoutSrc, BoardMove{Src: src, Dest: dest}); err != nil {
		t.Errorf("expected a valid move, got %v", err)
	}
}

func TestPlayerInit(t *testing.T) {
	player, _ := newTestPlayer(t)

	// The dugout holds an opaque ID, not the Player itself. This lets
	// pieces be copied freely and still compare to the original owner.
	for _, p := range player.Dugout().AvailablePieces() {
		if p.Player != player.ID() {
			t.Errorf("dugout piece owned by %d, expected %d", p.Player, player.ID())
		}
	}
}

func TestDugoutAPI(t *testing.T) {
	player, _ := newTestPlayer(t)
	api := player.DugoutView()

	available := api.AvailablePieces()
	if len(available) != 2 {
		t.Fatalf("expected 2 available pieces, got %d", len(available))
	}

	if api.Move() != nil {
		t.Errorf("pending selection should default to nil")
	}

	// The pieces are copied; mutating one must not reach the dugout.
	available[0].Name = "hacked"
	if player.Dugout().AvailablePieces()[0].Name == "hacked" {
		t.Errorf("mutating an API piece leaked into the dugout")
	}

	piece := api.AvailablePieces()[0]
	api.UsePiece(piece)

	move := api.Move()
	if move == nil || !move.Equal(piece) {
		t.Errorf("UsePiece should record the selection, got %+v", move)
	}

	// Recording a selection must not consume the real dugout.
	if len(player.Dugout().pieces[piece.Size]) != 2 {
		t.Errorf("UsePiece should not consume the dugout before commit")
	}
}

func TestBoardAPI(t *testing.T) {
	player, board := newTestPlayer(t)
	api := player.BoardView()

	if api.Size() != 4 {
		t.Errorf("expected size 4, got %d", api.Size())
	}

	src, dest := api.Move()
	if src != nil || dest != nil {
		t.Errorf("pending board move should default to (nil, nil)")
	}

	from := Coord{Row: 0, Col: 0}
	to := Coord{Row: 0, Col: 1}
	api.SetMove(&from, &to)

	src, dest = api.Move()
	if src == nil || dest == nil || *src != from || *dest != to {
		t.Errorf("expected pending move (%s, %s), got (%v, %v)", from, to, src, dest)
	}

	// SetMove doesn't actually change the board.
	cell, err := api.Cell(to)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if !cell.Empty() {
		t.Errorf("SetMove should not touch the board")
	}

	// Live board state is visible through the API.
	if err := board.Place(Coord{Row: 1, Col: 1}, Piece{Player: player.ID(), Size: 1}); err != nil {
		t.Fatalf("%+v", err)
	}
	cell, err = api.Cell(Coord{Row: 1, Col: 1})
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if len(cell) != 1 {
		t.Errorf("board mutation should be visible through the API")
	}

	// Public modification of the internal board via the API is prevented.
	cell, err = api.Cell(Coord{Row: 2, Col: 2})
	if err != nil {
		t.Fatalf("%+v", err)
	}
	cell.Push(Piece{Player: player.ID(), Size: 0})

	internal, err := board.Cell(Coord{Row: 2, Col: 2})
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if !internal.Empty() {
		t.Errorf("appending to an API stack leaked into the board")
	}
}

func TestValidate(t *testing.T) {
	player, board := newTestPlayer(t)

	coord := func(row, col int) *Coord {
		return &Coord{Row: row, Col: col}
	}

	// Two sources
	assertInvalidMove(t, player, &Piece{Size: 1}, coord(0, 1), nil,
		"both a board source and a dugout source")

	// Empty board source
	assertInvalidMove(t, player, nil, coord(0, 0), nil, "Board source is empty")

	// A dugout piece of a size the dugout never had
	assertInvalidMove(t, player, &Piece{Size: 5}, nil, coord(0, 0), "Invalid dugout piece")

	// No source
	assertInvalidMove(t, player, nil, nil, nil, "No source")

	// Move a piece from the dugout to the board.
	piece, err := player.Dugout().Use(RefSize(1))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if err := board.Place(Coord{Row: 0, Col: 0}, piece); err != nil {
		t.Fatalf("%+v", err)
	}

	// No destination
	assertInvalidMove(t, player, nil, coord(0, 0), nil, "No destination")

	// A piece owned by some other player
	other := piece.Copy()
	other.Player = 424242
	if err := board.Place(Coord{Row: 1, Col: 1}, other); err != nil {
		t.Fatalf("%+v", err)
	}
	assertInvalidMove(t, player, nil, coord(1, 1), coord(2, 2), "other player's piece")

	// A small piece cannot cover a large one.
	small := piece.Copy()
	small.Size = 0
	if err := board.Place(Coord{Row: 2, Col: 2}, small); err != nil {
		t.Fatalf("%+v", err)
	}
	assertInvalidMove(t, player, nil, coord(2, 2), coord(0, 0), "piece of equal or larger size")

	// Out-of-range coordinates fail loudly.
	assertInvalidMove(t, player, nil, coord(9, 9), coord(0, 1), "out of range")
	assertInvalidMove(t, player, &Piece{Size: 0}, nil, coord(9, 9), "out of range")

	// Valid moves. These don't modify any state; think of them as probes,
	// not as actually moving pieces.

	// Take a large piece from the dugout and place it on an empty cell.
	assertValidMove(t, player, &Piece{Size: 1}, nil, coord(0, 1))

	// Take a small piece from the dugout and place it on an empty cell.
	assertValidMove(t, player, &Piece{Size: 0}, nil, coord(0, 2))

	// Move a large piece to an empty cell.
	assertValidMove(t, player, nil, coord(0, 0), coord(0, 3))

	// Move a small piece to an empty cell.
	assertValidMove(t, player, nil, coord(2, 2), coord(0, 3))

	// Move a large piece over a small piece.
	assertValidMove(t, player, nil, coord(0, 0), coord(2, 2))
}

func TestValidateExhaustedDugoutPiece(t *testing.T) {
	player, _ := newTestPlayer(t)

	// Drain every large piece; offering one afterwards must be rejected.
	for i := 0; i < 2; i++ {
		if _, err := player.Dugout().Use(RefSize(1)); err != nil {
			t.Fatalf("%+v", err)
		}
	}

	assertInvalidMove(t, player, &Piece{Size: 1}, nil, &Coord{Row: 0, Col: 0},
		"Invalid dugout piece")
}

func TestCheckHorizontalWin(t *testing.T) {
	player, board := newTestPlayer(t)
	piece := player.Dugout().AvailablePieces()[0]

	for col := 0; col < board.Size(); col++ {
		if err := board.Place(Coord{Row: 0, Col: col}, piece); err != nil {
			t.Fatalf("%+v", err)
		}
	}

	if !player.CheckWin(board) {
		t.Errorf("expected a horizontal win")
	}
}

func TestCheckVerticalWin(t *testing.T) {
	player, board := newTestPlayer(t)
	piece := player.Dugout().AvailablePieces()[0]

	for row := 0; row < board.Size(); row++ {
		if err := board.Place(Coord{Row: row, Col: 0}, piece); err != nil {
			t.Fatalf("%+v", err)
		}
	}

	if !player.CheckWin(board) {
		t.Errorf("expected a vertical win")
	}
}

func TestCheckDiagonalWins(t *testing.T) {
	t.Run("TopLeft", func(t *testing.T) {
		player, board := newTestPlayer(t)
		piece := player.Dugout().AvailablePieces()[0]

		for i := 0; i < board.Size(); i++ {
			if err := board.Place(Coord{Row: i, Col: i}, piece); err != nil {
				t.Fatalf("%+v", err)
			}
		}

		if !player.CheckWin(board) {
			t.Errorf("expected a diagonal win")
		}
	})

	t.Run("TopRight", func(t *testing.T) {
		player, board := newTestPlayer(t)
		piece := player.Dugout().AvailablePieces()[0]

		for i := 0; i < board.Size(); i++ {
			if err := board.Place(Coord{Row: i, Col: board.Size() - 1 - i}, piece); err != nil {
				t.Fatalf("%+v", err)
			}
		}

		if !player.CheckWin(board) {
			t.Errorf("expected an anti-diagonal win")
		}
	})
}

func TestNotWin(t *testing.T) {
	player, board := newTestPlayer(t)

	if player.CheckWin(board) {
		t.Errorf("an empty board should not be a win")
	}

	// Three in a row for this player, the last cell owned by another.
	mine := player.Dugout().AvailablePieces()[0]
	theirs := mine.Copy()
	theirs.Player = 424242

	for col := 0; col < 3; col++ {
		if err := board.Place(Coord{Row: 0, Col: col}, mine); err != nil {
			t.Fatalf("%+v", err)
		}
	}
	if err := board.Place(Coord{Row: 0, Col: 3}, theirs); err != nil {
		t.Fatalf("%+v", err)
	}

	if player.CheckWin(board) {
		t.Errorf("a split line should not be a win")
	}
}

func TestWinRequiresTopOwnership(t *testing.T) {
	player, board := newTestPlayer(t)

	mine := player.Dugout().AvailablePieces()[1]
	small := Piece{Player: 424242, Size: 0}

	// The other player's small piece is covered in one cell; the covering
	// piece is what counts.
	for col := 0; col < board.Size(); col++ {
		if col == 2 {
			if err := board.Place(Coord{Row: 0, Col: col}, small); err != nil {
				t.Fatalf("%+v", err)
			}
		}
		if err := board.Place(Coord{Row: 0, Col: col}, mine); err != nil {
			t.Fatalf("%+v", err)
		}
	}

	if !player.CheckWin(board) {
		t.Errorf("covered pieces should not block a win")
	}
}
