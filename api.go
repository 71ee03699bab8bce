package gobblet

// The capability views below are the only surfaces handed to move
// orchestration and UI code. They list exactly the permitted operations;
// everything else on the underlying Board and Dugout stays out of reach.
// Note the deliberate asymmetry: the dugout view copies every piece it
// hands out, the board view copies the cell stack but serves the board
// dimension and pending move directly.

// DugoutAPI is the restricted dugout view. It can list available pieces
// and record a selection, but never touches the dugout's stacks.
type DugoutAPI struct {
	player *Player
}

// DugoutView returns the restricted view of this player's dugout.
func (p *Player) DugoutView() *DugoutAPI {
	return &DugoutAPI{player: p}
}

// AvailablePieces returns independent copies of the dugout's available
// pieces. Mutating a returned piece never changes internal state.
func (a *DugoutAPI) AvailablePieces() []Piece {
	available := a.player.dugout.AvailablePieces()
	out := make([]Piece, len(available))
	for i, piece := range available {
		out[i] = piece.Copy()
	}
	return out
}

// UsePiece records piece as the pending dugout selection for this turn.
// The real dugout is only consumed once the move validates and commits.
// piece may be (and normally is) a copy returned by AvailablePieces; the
// dugout matches it back to the internal piece by size at commit time.
func (a *DugoutAPI) UsePiece(piece Piece) {
	selected := piece
	a.player.pendingPiece = &selected
}

// Move returns the pending dugout selection, nil if none.
func (a *DugoutAPI) Move() *Piece {
	return a.player.pendingPiece
}

// BoardAPI is the restricted board view: read-only inspection plus an
// advisory pending move. Nothing here mutates the board.
type BoardAPI struct {
	player *Player
}

// BoardView returns the restricted view of the shared board.
func (p *Player) BoardView() *BoardAPI {
	return &BoardAPI{player: p}
}

// Size returns the board dimension.
func (a *BoardAPI) Size() int {
	return a.player.board.Size()
}

// SetMove records an advisory board-to-board move. The board itself is
// not touched; only a committed move changes it.
func (a *BoardAPI) SetMove(src, dest *Coord) {
	a.player.pendingSrc = src
	a.player.pendingDest = dest
}

// Move returns the pending (src, dest) pair, (nil, nil) by default.
func (a *BoardAPI) Move() (src, dest *Coord) {
	return a.player.pendingSrc, a.player.pendingDest
}

// Cell returns a copy of the stack at c. Appending to the result never
// leaks into the board.
func (a *BoardAPI) Cell(c Coord) (Stack, error) {
	cell, err := a.player.board.Cell(c)
	if err != nil {
		return nil, err
	}
	return cell.Copy(), nil
}
