package gobblet

// Player owns a dugout and a reference to the shared board, and judges
// moves on its own behalf: legality through Validate, victory through
// CheckWin. Many players share one board; each owns exactly one dugout.
type Player struct {
	id        PlayerID
	name      string
	board     *Board
	dugout    *Dugout
	onTurnEnd func()

	// Transient move-in-progress state, written through the capability
	// views and cleared when a move commits.
	pendingPiece *Piece
	pendingSrc   *Coord
	pendingDest  *Coord
}

// NewPlayer creates a player with a full dugout. onTurnEnd is invoked by
// the orchestrator after each committed move; it may be nil.
func NewPlayer(onTurnEnd func(), board *Board, sizeNames []string, numStacks int) *Player {
	p := &Player{
		board:     board,
		onTurnEnd: onTurnEnd,
	}
	p.id = NewPlayerID()
	p.dugout = NewDugout(p.id, sizeNames, numStacks)
	return p
}

// ID returns the ownership token stamped on this player's pieces.
func (p *Player) ID() PlayerID {
	return p.id
}

// Name returns the display name.
func (p *Player) Name() string {
	return p.name
}

// SetName sets the display name.
func (p *Player) SetName(name string) {
	p.name = name
}

// Dugout returns the player's raw dugout. Orchestration code that must not
// see internals uses DugoutView instead.
func (p *Player) Dugout() *Dugout {
	return p.dugout
}

func (p *Player) clearPending() {
	p.pendingPiece = nil
	p.pendingSrc = nil
	p.pendingDest = nil
}

// BoardMove proposes a transfer onto Dest, sourced from the board cell Src
// when Src is non-nil, or from the dugout otherwise.
type BoardMove struct {
	Src  *Coord
	Dest *Coord
}

// Validate judges a proposed move without applying it. dugoutSrc is the
// dugout piece selected for this move, nil when the source is a board
// cell. The call is read only, so a caller can probe any number of
// candidate moves without corrupting state. Rejections are returned as
// *InvalidMoveError.
func (p *Player) Validate(dugoutSrc *Piece, mv BoardMove) error {
	if dugoutSrc != nil && mv.Src != nil {
		return invalidMove("a move cannot have both a board source and a dugout source")
	}

	var srcStack *Stack
	if mv.Src != nil {
		cell, err := p.board.Cell(*mv.Src)
		if err != nil {
			return invalidMove("board source %s is out of range", *mv.Src)
		}
		if cell.Empty() {
			return invalidMove("Board source is empty")
		}
		srcStack = cell
	}

	if dugoutSrc != nil {
		available := false
		for _, piece := range p.dugout.AvailablePieces() {
			if piece.Equal(*dugoutSrc) {
				available = true
				break
			}
		}
		if !available {
			return invalidMove("Invalid dugout piece")
		}
	}

	if dugoutSrc == nil && mv.Src == nil {
		return invalidMove("No source")
	}

	if mv.Dest == nil {
		return invalidMove("No destination")
	}

	var moving Piece
	if srcStack != nil {
		top, _ := srcStack.Top()
		if top.Player != p.id {
			return invalidMove("cannot move another player's piece")
		}
		moving = top
	} else {
		moving = *dugoutSrc
	}

	dest, err := p.board.Cell(*mv.Dest)
	if err != nil {
		return invalidMove("board destination %s is out of range", *mv.Dest)
	}
	if top, ok := dest.Top(); ok && !moving.Covers(top) {
		return invalidMove("destination holds a piece of equal or larger size")
	}

	return nil
}

// CheckWin reports whether this player owns the visible piece of every
// cell in any full row, any full column, or either diagonal of b. An empty
// cell disqualifies its line; there is no partial-line scoring.
func (p *Player) CheckWin(b *Board) bool {
	n := b.Size()

	for row := 0; row < n; row++ {
		line := make([]Coord, n)
		for col := 0; col < n; col++ {
			line[col] = Coord{Row: row, Col: col}
		}
		if p.ownsLine(b, line) {
			return true
		}
	}

	for col := 0; col < n; col++ {
		line := make([]Coord, n)
		for row := 0; row < n; row++ {
			line[row] = Coord{Row: row, Col: col}
		}
		if p.ownsLine(b, line) {
			return true
		}
	}

	diagA := make([]Coord, n)
	diagB := make([]Coord, n)
	for i := 0; i < n; i++ {
		diagA[i] = Coord{Row: i, Col: i}
		diagB[i] = Coord{Row: i, Col: n - 1 - i}
	}

	return p.ownsLine(b, diagA) || p.ownsLine(b, diagB)
}

func (p *Player) ownsLine(b *Board, line []Coord) bool {
	for _, c := range line {
		cell, err := b.Cell(c)
		if err != nil {
			return false
		}
		top, ok := cell.Top()
		if !ok || top.Player != p.id {
			return false
		}
	}
	return true
}
