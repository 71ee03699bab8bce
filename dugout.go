package gobblet

import "fmt"

// Dugout is one player's private supply of unplaced pieces, one stack per
// size, consumed top first. Keeping a stack per size makes "numStacks
// pieces of each size" a structural invariant instead of a runtime check.
type Dugout struct {
	player    PlayerID
	sizeNames []string
	numStacks int
	pieces    []Stack
}

// NewDugout builds a full dugout for player. sizeNames is ordered smallest
// to largest; the index of a name is the size value of its pieces.
func NewDugout(player PlayerID, sizeNames []string, numStacks int) *Dugout {
	d := &Dugout{
		player:    player,
		sizeNames: append([]string(nil), sizeNames...),
		numStacks: numStacks,
		pieces:    make([]Stack, len(sizeNames)),
	}
	for size, name := range d.sizeNames {
		for i := 0; i < numStacks; i++ {
			d.pieces[size].Push(Piece{Player: player, Name: name, Size: size})
		}
	}
	return d
}

// Player returns the owning identity the dugout stamps on its pieces.
func (d *Dugout) Player() PlayerID {
	return d.player
}

// SizeNames returns the size names, smallest first.
func (d *Dugout) SizeNames() []string {
	return append([]string(nil), d.sizeNames...)
}

// AvailablePieces returns the next usable piece of every size that still
// has pieces left, in ascending size order. The pieces are not copies;
// callers needing isolation must copy (the DugoutAPI does).
func (d *Dugout) AvailablePieces() []Piece {
	var out []Piece
	for _, stack := range d.pieces {
		if top, ok := stack.Top(); ok {
			out = append(out, top)
		}
	}
	return out
}

// PieceRef selects a dugout piece either by size index or by matching an
// existing piece value. Pieces match by size alone, so a deep copy of a
// previously returned piece resolves to the real internal one.
type PieceRef struct {
	bySize bool
	size   int
	piece  Piece
}

// RefSize selects the piece with the given size index.
func RefSize(size int) PieceRef {
	return PieceRef{bySize: true, size: size}
}

// RefPiece selects the piece matching p.
func RefPiece(p Piece) PieceRef {
	return PieceRef{piece: p}
}

func (r PieceRef) sizeIndex() int {
	if r.bySize {
		return r.size
	}
	return r.piece.Size
}

// Use removes the top piece of the selected size and returns it. It fails
// with ErrNoSuchPiece for an unknown size or an exhausted stack.
func (d *Dugout) Use(ref PieceRef) (Piece, error) {
	size := ref.sizeIndex()
	if size < 0 || size >= len(d.pieces) {
		return Piece{}, fmt.Errorf("size %d: %w", size, ErrNoSuchPiece)
	}
	p, ok := d.pieces[size].Pop()
	if !ok {
		return Piece{}, fmt.Errorf("size %d is exhausted: %w", size, ErrNoSuchPiece)
	}
	return p, nil
}
